package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryReset(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	mem.Reset()

	assert.Equal(MEMORY_WORDS, mem.Len())
	for addr := uint32(0); addr < MEMORY_WORDS*WORD_SIZE; addr += WORD_SIZE {
		assert.Equal(int32(0), mem.Load(addr))
	}
}

func TestMemoryDefaultZero(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	mem.Reset()

	// Unwritten addresses beyond the dense range read as zero.
	assert.Equal(int32(0), mem.Load(0x1000))
	assert.Equal(MEMORY_WORDS, mem.Len())
}

func TestMemoryStoreGrows(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	mem.Reset()

	mem.Store(0x1000, -5)
	assert.Equal(int32(-5), mem.Load(0x1000))
	assert.Equal(MEMORY_WORDS+1, mem.Len())

	// Reset discards the stray cell.
	mem.Reset()
	assert.Equal(int32(0), mem.Load(0x1000))
	assert.Equal(MEMORY_WORDS, mem.Len())
}

func TestMemorySnapshotIndependent(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	mem.Reset()
	mem.Store(0, 11)

	snap := mem.Snapshot()
	snap[0] = 99
	assert.Equal(int32(11), mem.Load(0))
}
