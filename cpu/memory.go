package cpu

import (
	"maps"
)

const (
	WORD_SIZE    = 4  // Bytes per memory word.
	MEMORY_WORDS = 64 // Words pre-populated with zero at reset.
)

// Memory is a word-addressed store. A dense range of MEMORY_WORDS words
// is populated at reset; any word address outside that range springs
// into existence on the first store, and reads as zero before that.
type Memory struct {
	cells map[uint32]int32
}

// Reset repopulates the dense word range with zero and discards any
// cells a prior store introduced beyond it.
func (mem *Memory) Reset() {
	mem.cells = make(map[uint32]int32, MEMORY_WORDS)
	for addr := uint32(0); addr < MEMORY_WORDS*WORD_SIZE; addr += WORD_SIZE {
		mem.cells[addr] = 0
	}
}

// Load reads the word at addr. Unwritten addresses read as zero.
func (mem *Memory) Load(addr uint32) int32 {
	return mem.cells[addr]
}

// Store writes the word at addr.
func (mem *Memory) Store(addr uint32, value int32) {
	if mem.cells == nil {
		mem.Reset()
	}
	mem.cells[addr] = value
}

// Len returns the number of populated cells.
func (mem *Memory) Len() int {
	return len(mem.cells)
}

// Snapshot returns an independent copy of all populated cells.
func (mem *Memory) Snapshot() map[uint32]int32 {
	return maps.Clone(mem.cells)
}
