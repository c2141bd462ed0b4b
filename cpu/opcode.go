package cpu

import (
	"fmt"
	"strings"
)

// Op is a decoded instruction mnemonic, normalized to upper case.
type Op string

const (
	OP_ADD   = Op("ADD")
	OP_SUB   = Op("SUB")
	OP_MOV   = Op("MOV")
	OP_LOAD  = Op("LOAD")
	OP_STORE = Op("STORE")
	OP_JUMP  = Op("JUMP")
	OP_BEQ   = Op("BEQ")
	OP_NOP   = Op("NOP")
	OP_HALT  = Op("HALT")
)

// opArity maps each supported opcode to its required operand count.
// An opcode absent from this map is unknown to the machine.
var opArity = map[Op]int{
	OP_ADD:   3,
	OP_SUB:   3,
	OP_MOV:   2,
	OP_LOAD:  2,
	OP_STORE: 2,
	OP_JUMP:  1,
	OP_BEQ:   3,
	OP_NOP:   0,
	OP_HALT:  0,
}

var _op_defines = func() map[string]string {
	defines := make(map[string]string, len(opArity))
	for op := range opArity {
		defines["OP_"+string(op)] = string(op)
	}
	return defines
}()

// Stage is the position of the pending instruction in the cycle.
type Stage int

const (
	STAGE_IDLE    = Stage(iota) // idle
	STAGE_FETCHED               // fetched
	STAGE_DECODED               // decoded
)

var stageNames = map[Stage]string{
	STAGE_IDLE:    "idle",
	STAGE_FETCHED: "fetched",
	STAGE_DECODED: "decoded",
}

func (stage Stage) String() string {
	name, ok := stageNames[stage]
	if !ok {
		return fmt.Sprintf("Stage(%d)", int(stage))
	}
	return name
}

// Pending is the instruction between cycle stages: nothing at all, a
// fetched raw line, or a decoded opcode with its operand tokens.
type Pending struct {
	Stage    Stage
	Text     string   // Raw instruction text; set unless STAGE_IDLE.
	Op       Op       // Set at STAGE_DECODED.
	Operands []string // Set at STAGE_DECODED.
}

// Outcome reports how a stage call left the machine.
type Outcome int

const (
	CONTINUED      = Outcome(iota) // continued
	HALTED_NOW                     // halted
	ALREADY_HALTED                 // already halted
)

var outcomeNames = map[Outcome]string{
	CONTINUED:      "continued",
	HALTED_NOW:     "halted",
	ALREADY_HALTED: "already halted",
}

func (outcome Outcome) String() string {
	name, ok := outcomeNames[outcome]
	if !ok {
		return fmt.Sprintf("Outcome(%d)", int(outcome))
	}
	return name
}

// Signals are the per-stage control lines.
type Signals struct {
	Fetch     bool
	Decode    bool
	Execute   bool
	Memory    bool
	Writeback bool
}

func (sig Signals) String() string {
	var active []string
	if sig.Fetch {
		active = append(active, "fetch")
	}
	if sig.Decode {
		active = append(active, "decode")
	}
	if sig.Execute {
		active = append(active, "execute")
	}
	if sig.Memory {
		active = append(active, "memory")
	}
	if sig.Writeback {
		active = append(active, "writeback")
	}
	if len(active) == 0 {
		return "none"
	}
	return strings.Join(active, " ")
}
