// Package simulator drives the instruction-cycle machine one stage at
// a time and records an execution trace for presenters.
package simulator

import (
	"iter"
	"strings"

	"github.com/ezrec/cyclesim/cpu"
)

// Simulator wraps a Cpu with the stage sequencing an external driver
// needs: one entry point that advances exactly one of fetch, decode,
// or execute per call.
//
// A Simulator is single-threaded; a driver that steps it from more
// than one goroutine must serialize the calls itself.
type Simulator struct {
	Verbose  bool // If set, enables verbose logging.
	*cpu.Cpu      // The machine being driven.

	Trace []Entry // Execution trace, appended per stage.
}

// NewSimulator creates a simulator around a fresh machine.
func NewSimulator() (sim *Simulator) {
	sim = &Simulator{
		Cpu: cpu.NewCpu(),
	}

	return
}

// Defines returns an iterator over all of the defines
func (sim *Simulator) Defines() iter.Seq2[string, string] {
	return sim.Cpu.Defines()
}

// Reset wipes the machine and the execution trace.
func (sim *Simulator) Reset() {
	sim.Cpu.Verbose = sim.Verbose
	sim.Cpu.Reset()
	sim.Trace = sim.Trace[:0]
	sim.trace("system", "reset")
}

// Load replaces the running program, rewinding the cycle but keeping
// register and memory contents.
func (sim *Simulator) Load(prog *cpu.Program) {
	sim.Cpu.Verbose = sim.Verbose
	sim.Cpu.Load(prog)
	sim.trace("program", f("loaded %d instructions", prog.Len()))
}

// Step advances the machine by exactly one stage. Failures carry the
// program index of the instruction that caused them; the machine has
// already halted itself by the time one is returned.
func (sim *Simulator) Step() (outcome cpu.Outcome, err error) {
	sim.Cpu.Verbose = sim.Verbose

	if sim.Cpu.Halted {
		outcome = cpu.ALREADY_HALTED
		return
	}

	pc := sim.Cpu.Pc
	defer func() {
		if err != nil {
			err = &ErrRuntime{Pc: pc, Err: err}
		}
	}()

	switch sim.Cpu.Pending.Stage {
	case cpu.STAGE_IDLE:
		outcome = sim.Cpu.Fetch()
		if outcome == cpu.CONTINUED {
			sim.trace("fetch", f("pc=%d ir='%v'", sim.Cpu.Pc, sim.Cpu.Pending.Text))
		} else {
			sim.trace("fetch", "end of program")
		}

	case cpu.STAGE_FETCHED:
		err = sim.Cpu.Decode()
		if err != nil {
			return
		}
		outcome = cpu.CONTINUED
		sim.trace("decode", f("opcode=%v operands=%v", sim.Cpu.Pending.Op, sim.Cpu.Pending.Operands))

	case cpu.STAGE_DECODED:
		outcome, err = sim.Cpu.Execute()
		sim.traceExecute(outcome, err)
	}

	return
}

// traceExecute records the result of an execute stage, including every
// register and memory update it made.
func (sim *Simulator) traceExecute(outcome cpu.Outcome, err error) {
	if err != nil {
		sim.trace("execute", f("failed: %v", err))
		return
	}

	snap := sim.Cpu.Snapshot()
	for _, name := range snap.ChangedRegisters {
		sim.trace("register", f("%v = %v", name, snap.Registers[name]))
	}
	for _, addr := range snap.ChangedMemory {
		sim.trace("memory", f("0x%04x = %v", addr, snap.Memory[addr]))
	}

	if outcome == cpu.CONTINUED {
		sim.trace("execute", f("pc now %d", snap.Pc))
	} else {
		sim.trace("execute", "halted")
	}
}

// Run steps the machine until it halts, fails, or limit stages have
// elapsed. A limit of zero or less means no limit.
func (sim *Simulator) Run(limit int) (outcome cpu.Outcome, err error) {
	for n := 0; limit <= 0 || n < limit; n++ {
		outcome, err = sim.Step()
		if err != nil || outcome != cpu.CONTINUED {
			return
		}
	}

	err = ErrStepLimit
	return
}

// TraceText renders the execution trace as one string.
func (sim *Simulator) TraceText() string {
	var lines []string
	for _, entry := range sim.Trace {
		lines = append(lines, entry.String())
	}
	return strings.Join(lines, "\n")
}
