package cpu

import (
	"maps"
	"slices"
)

// Snapshot is an independent copy of every externally observable piece
// of machine state. Presenters read a snapshot after each stage call;
// mutating one never touches the machine.
type Snapshot struct {
	Pc       int
	Stage    Stage
	Ir       string
	Op       Op
	Operands []string

	Registers map[string]int32
	Memory    map[uint32]int32

	Signals Signals
	Halted  bool

	AluOp  Op
	AluA   int32
	AluB   int32
	AluOut int32

	ChangedRegisters []string // Sorted register identifiers.
	ChangedMemory    []uint32 // Sorted word addresses.
}

// Snapshot captures the current machine state.
func (cpu *Cpu) Snapshot() (snap Snapshot) {
	snap = Snapshot{
		Pc:       cpu.Pc,
		Stage:    cpu.Pending.Stage,
		Ir:       cpu.Pending.Text,
		Op:       cpu.Pending.Op,
		Operands: slices.Clone(cpu.Pending.Operands),

		Registers: make(map[string]int32, NUM_REGISTERS),
		Memory:    cpu.Memory.Snapshot(),

		Signals: cpu.Signals,
		Halted:  cpu.Halted,

		AluOp:  cpu.AluOp,
		AluA:   cpu.AluA,
		AluB:   cpu.AluB,
		AluOut: cpu.AluOut,

		ChangedRegisters: slices.Sorted(maps.Keys(cpu.ChangedRegisters)),
		ChangedMemory:    slices.Sorted(maps.Keys(cpu.ChangedMemory)),
	}

	for n, value := range cpu.Register {
		snap.Registers[RegisterName(n)] = value
	}

	return
}
