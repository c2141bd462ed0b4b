package simulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/cyclesim/cpu"
)

func TestSimulator(t *testing.T) {
	assert := assert.New(t)

	sim := NewSimulator()

	assert.False(sim.Verbose)
	assert.NotNil(sim.Cpu)
	assert.Empty(sim.Trace)
}

func TestScenario(t *testing.T) {
	assert := assert.New(t)

	sim := NewSimulator()
	sim.Load(&cpu.Program{Lines: []string{
		"MOV R1 10",
		"MOV R2 20",
		"ADD R3 R1 R2",
		"STORE R3 0x100",
		"LOAD R4 0x100",
		"SUB R5 R4 R1",
		"BEQ R5 R2 8",
		"MOV R6 99",
		"HALT",
		"MOV R6 42",
	}})

	outcome, err := sim.Run(1000)
	assert.NoError(err)
	assert.Equal(cpu.HALTED_NOW, outcome)

	snap := sim.Snapshot()
	assert.Equal(int32(10), snap.Registers["R1"])
	assert.Equal(int32(20), snap.Registers["R2"])
	assert.Equal(int32(30), snap.Registers["R3"])
	assert.Equal(int32(30), snap.Memory[0x100])
	assert.Equal(int32(30), snap.Registers["R4"])
	assert.Equal(int32(20), snap.Registers["R5"])

	// The taken branch lands on the HALT at index 8, so neither MOV
	// into R6 ever runs.
	assert.Equal(int32(0), snap.Registers["R6"])
	assert.Equal(8, snap.Pc)
	assert.True(snap.Halted)
}

func TestStepGranularity(t *testing.T) {
	assert := assert.New(t)

	sim := NewSimulator()
	sim.Load(&cpu.Program{Lines: []string{"MOV R1 1", "HALT"}})

	outcome, err := sim.Step()
	assert.NoError(err)
	assert.Equal(cpu.CONTINUED, outcome)
	assert.Equal(cpu.STAGE_FETCHED, sim.Cpu.Pending.Stage)
	assert.True(sim.Snapshot().Signals.Fetch)

	outcome, err = sim.Step()
	assert.NoError(err)
	assert.Equal(cpu.CONTINUED, outcome)
	assert.Equal(cpu.STAGE_DECODED, sim.Cpu.Pending.Stage)
	assert.True(sim.Snapshot().Signals.Decode)

	outcome, err = sim.Step()
	assert.NoError(err)
	assert.Equal(cpu.CONTINUED, outcome)
	assert.Equal(cpu.STAGE_IDLE, sim.Cpu.Pending.Stage)
	assert.True(sim.Snapshot().Signals.Writeback)
	assert.Equal(int32(1), sim.Snapshot().Registers["R1"])
}

func TestUnknownOpcodeHalts(t *testing.T) {
	assert := assert.New(t)

	sim := NewSimulator()
	sim.Load(&cpu.Program{Lines: []string{"FOO R1 R2"}})

	outcome, err := sim.Run(100)
	assert.Equal(cpu.HALTED_NOW, outcome)
	assert.ErrorIs(err, cpu.ErrUnknownOp(""))

	var runtime *ErrRuntime
	require.ErrorAs(t, err, &runtime)
	assert.Equal(0, runtime.Pc)

	assert.True(sim.Cpu.Halted)
	assert.Equal([8]int32{}, sim.Cpu.Register)
}

func TestAlreadyHalted(t *testing.T) {
	assert := assert.New(t)

	sim := NewSimulator()
	sim.Load(&cpu.Program{Lines: []string{"HALT"}})

	outcome, err := sim.Run(100)
	assert.NoError(err)
	assert.Equal(cpu.HALTED_NOW, outcome)

	outcome, err = sim.Step()
	assert.NoError(err)
	assert.Equal(cpu.ALREADY_HALTED, outcome)
}

func TestEmptyProgram(t *testing.T) {
	assert := assert.New(t)

	sim := NewSimulator()
	sim.Load(&cpu.Program{})

	outcome, err := sim.Step()
	assert.NoError(err)
	assert.Equal(cpu.HALTED_NOW, outcome)
	assert.True(sim.Cpu.Halted)
}

func TestRunLimit(t *testing.T) {
	assert := assert.New(t)

	sim := NewSimulator()
	sim.Load(&cpu.Program{Lines: []string{"JUMP 0"}})

	_, err := sim.Run(50)
	assert.ErrorIs(err, ErrStepLimit)
}

func TestTrace(t *testing.T) {
	assert := assert.New(t)

	sim := NewSimulator()
	sim.Load(&cpu.Program{Lines: []string{"MOV R1 5", "STORE R1 0x10", "HALT"}})

	_, err := sim.Run(1000)
	assert.NoError(err)

	actions := map[string]int{}
	for _, entry := range sim.Trace {
		actions[entry.Action]++
	}

	assert.NotZero(actions["program"])
	assert.NotZero(actions["fetch"])
	assert.NotZero(actions["decode"])
	assert.NotZero(actions["execute"])
	assert.NotZero(actions["register"])
	assert.NotZero(actions["memory"])

	assert.NotEmpty(sim.TraceText())

	sim.Reset()
	assert.Len(sim.Trace, 1)
}

func TestManualPcOverride(t *testing.T) {
	assert := assert.New(t)

	sim := NewSimulator()
	sim.Load(&cpu.Program{Lines: []string{"MOV R1 1", "MOV R2 2", "HALT"}})

	assert.NoError(sim.SetPc(1))

	outcome, err := sim.Run(1000)
	assert.NoError(err)
	assert.Equal(cpu.HALTED_NOW, outcome)

	snap := sim.Snapshot()
	assert.Equal(int32(0), snap.Registers["R1"])
	assert.Equal(int32(2), snap.Registers["R2"])
}
