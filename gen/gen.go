// Package gen produces programs for the simulator.
//
// A Source turns something external - a script, a random seed, a text
// block from a hosted generator - into a loadable program. All source
// output passes through the cpu package sanitizer, so free-form text
// with code fences, line numbers, or comments is acceptable.
package gen

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/ezrec/cyclesim/cpu"
)

// Source supplies ordered instruction text to load into the machine.
type Source interface {
	Generate() (*cpu.Program, error)
}

const (
	FALLBACK_MIN_LINES = 3  // Smallest generated program, HALT included.
	FALLBACK_MAX_LINES = 10 // Largest generated program, HALT included.
)

// Fallback emits a small random program when no external source is
// available. All addresses stay inside the dense memory range.
type Fallback struct {
	Rand  *rand.Rand // Optional deterministic source.
	Lines int        // Instruction count; outside the envelope picks randomly.
}

var _ Source = (*Fallback)(nil)

// Generate builds a random program ending in HALT.
func (fb *Fallback) Generate() (prog *cpu.Program, err error) {
	rng := fb.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	count := fb.Lines
	if count < FALLBACK_MIN_LINES || count > FALLBACK_MAX_LINES {
		count = FALLBACK_MIN_LINES + rng.Intn(FALLBACK_MAX_LINES-FALLBACK_MIN_LINES+1)
	}

	reg := func() string {
		return cpu.RegisterName(rng.Intn(cpu.NUM_REGISTERS))
	}
	addr := func() string {
		return fmt.Sprintf("0x%03X", rng.Intn(cpu.MEMORY_WORDS)*cpu.WORD_SIZE)
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("MOV %v %d", reg(), rng.Intn(100)))
	for len(lines) < count-1 {
		switch rng.Intn(6) {
		case 0:
			lines = append(lines, fmt.Sprintf("MOV %v %d", reg(), rng.Intn(100)))
		case 1:
			lines = append(lines, fmt.Sprintf("ADD %v %v %v", reg(), reg(), reg()))
		case 2:
			lines = append(lines, fmt.Sprintf("SUB %v %v %v", reg(), reg(), reg()))
		case 3:
			lines = append(lines, fmt.Sprintf("STORE %v %v", reg(), addr()))
		case 4:
			lines = append(lines, fmt.Sprintf("LOAD %v %v", reg(), addr()))
		case 5:
			lines = append(lines, "NOP")
		}
	}
	lines = append(lines, "HALT")

	prog = &cpu.Program{Lines: lines}
	return
}
