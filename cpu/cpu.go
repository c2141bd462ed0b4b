package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"strconv"
	"strings"

	"github.com/ezrec/cyclesim/internal"
)

// NUM_REGISTERS is the size of the general purpose register bank.
const NUM_REGISTERS = 8

var registerNames = func() (names [NUM_REGISTERS]string) {
	for n := range names {
		names[n] = fmt.Sprintf("R%d", n)
	}
	return
}()

var registerIndexes = func() map[string]int {
	indexes := make(map[string]int, NUM_REGISTERS)
	for n, name := range registerNames {
		indexes[name] = n
	}
	return indexes
}()

// RegisterName returns the identifier of register bank entry n.
func RegisterName(n int) string {
	return registerNames[n]
}

var _cpu_defines = map[string]string{
	"NUM_REGISTERS": fmt.Sprintf("%v", NUM_REGISTERS),
	"MEMORY_WORDS":  fmt.Sprintf("%v", MEMORY_WORDS),
	"WORD_SIZE":     fmt.Sprintf("%v", WORD_SIZE),
	"MEMORY_BYTES":  fmt.Sprintf("%v", MEMORY_WORDS*WORD_SIZE),
}

// Cpu is the instruction-cycle machine: registers, memory, program
// counter, the pending instruction, and change tracking for the most
// recent execute stage.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Program *Program // Currently loaded program listing.

	Register [NUM_REGISTERS]int32 // Register bank.
	Memory   Memory               // Word-addressed memory.
	Pc       int                  // Program counter, an index into Program.
	Pending  Pending              // Instruction between cycle stages.
	Signals  Signals              // Control lines for the active stage.
	Halted   bool                 // Set on HALT, end of program, or execute failure.

	// Last ALU operation, retained until the next ADD or SUB.
	AluOp  Op
	AluA   int32
	AluB   int32
	AluOut int32

	// Registers and memory addresses mutated by the most recent
	// execute stage. Replaced, never accumulated, on each execute.
	ChangedRegisters map[string]struct{}
	ChangedMemory    map[uint32]struct{}
}

// NewCpu creates a machine with an empty program, ready to run.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}
	cpu.Reset()
	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_cpu_defines), maps.All(_op_defines))
}

// String returns the current machine state as a string.
func (cpu *Cpu) String() (text string) {
	text = fmt.Sprintf("% 7s: %v\n", "pc", cpu.Pc)
	text += fmt.Sprintf("% 7s: %v\n", "stage", cpu.Pending.Stage)
	if cpu.Pending.Stage != STAGE_IDLE {
		text += fmt.Sprintf("% 7s: %v\n", "ir", cpu.Pending.Text)
	}
	for n, value := range cpu.Register {
		text += fmt.Sprintf("% 7s: %v\n", RegisterName(n), value)
	}
	if cpu.AluOp != "" {
		text += fmt.Sprintf("% 7s: %v %v %v -> %v\n", "alu", cpu.AluOp, cpu.AluA, cpu.AluB, cpu.AluOut)
	}
	text += fmt.Sprintf("% 7s: %v\n", "signals", cpu.Signals)
	text += fmt.Sprintf("% 7s: %v\n", "halted", cpu.Halted)
	return
}

// Reset wipes the machine back to power-on state: registers and the
// dense memory range zeroed, pc 0, no pending instruction, no program,
// signals clear, change sets empty, not halted.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Register[:])
	cpu.Memory.Reset()
	cpu.Program = &Program{}
	cpu.Pc = 0
	cpu.Pending = Pending{}
	cpu.Signals = Signals{}
	cpu.Halted = false
	cpu.AluOp = ""
	cpu.AluA = 0
	cpu.AluB = 0
	cpu.AluOut = 0
	cpu.ChangedRegisters = make(map[string]struct{})
	cpu.ChangedMemory = make(map[uint32]struct{})
}

// Load replaces the current program and rewinds the cycle: pc 0, no
// pending instruction, not halted, change sets empty. Register and
// memory contents are preserved; Reset clears those. An empty program
// is valid; the first Fetch reports end of program and halts.
func (cpu *Cpu) Load(prog *Program) {
	if prog == nil {
		prog = &Program{}
	}

	if cpu.Verbose {
		log.Printf("cpu: load %d instructions", prog.Len())
	}

	cpu.Program = prog
	cpu.Pc = 0
	cpu.Pending = Pending{}
	cpu.Halted = false
	clear(cpu.ChangedRegisters)
	clear(cpu.ChangedMemory)
}

// SetPc overrides the program counter, forcing the next step to
// re-fetch. Values outside [0, program length) are rejected without
// side effect.
func (cpu *Cpu) SetPc(value int) (err error) {
	if value < 0 || value >= cpu.Program.Len() {
		err = ErrPcRange
		return
	}

	cpu.Pc = value
	cpu.Pending = Pending{}

	if cpu.Verbose {
		log.Printf("cpu: pc set to %d", value)
	}

	return
}

// Fetch copies the program line at pc into the pending instruction.
// When pc has run past the end of the program the machine halts and
// the signals are left untouched; nothing is fetched.
func (cpu *Cpu) Fetch() (outcome Outcome) {
	if cpu.Halted {
		outcome = ALREADY_HALTED
		return
	}

	if cpu.Pc >= cpu.Program.Len() {
		if cpu.Verbose {
			log.Printf("cpu: fetch: end of program at pc %d", cpu.Pc)
		}
		cpu.Halted = true
		outcome = HALTED_NOW
		return
	}

	cpu.Signals = Signals{Fetch: true}
	cpu.Pending = Pending{Stage: STAGE_FETCHED, Text: cpu.Program.Line(cpu.Pc)}

	if cpu.Verbose {
		log.Printf("cpu: fetch: pc %d ir '%v'", cpu.Pc, cpu.Pending.Text)
	}

	outcome = CONTINUED
	return
}

// Decode tokenizes the fetched instruction text by whitespace. The
// first token becomes the opcode, normalized to upper case; the rest
// become operand tokens, not yet validated. Calling Decode with no
// fetched instruction is a sequencing bug and returns ErrNotFetched.
func (cpu *Cpu) Decode() (err error) {
	cpu.Signals = Signals{Decode: true}

	if cpu.Pending.Stage == STAGE_IDLE {
		err = ErrNotFetched
		return
	}

	words := strings.Fields(cpu.Pending.Text)
	if len(words) == 0 {
		err = ErrNotFetched
		return
	}

	cpu.Pending.Op = Op(strings.ToUpper(words[0]))
	cpu.Pending.Operands = words[1:]
	cpu.Pending.Stage = STAGE_DECODED

	if cpu.Verbose {
		log.Printf("cpu: decode: opcode %v operands %v", cpu.Pending.Op, cpu.Pending.Operands)
	}

	return
}

// Execute dispatches the decoded instruction. On success the writeback
// signal is raised and pc advances by one; JUMP and a taken BEQ first
// redirect pc to target-1 so that the advance lands exactly on the
// target. HALT, an unknown opcode, or an operand failure halts the
// machine; the latter two also return the failure.
func (cpu *Cpu) Execute() (outcome Outcome, err error) {
	if cpu.Halted {
		outcome = ALREADY_HALTED
		return
	}

	cpu.Signals = Signals{Execute: true}

	pend := cpu.Pending
	if pend.Stage != STAGE_DECODED {
		err = ErrNotDecoded
		return
	}

	// The instruction leaves the cycle no matter how execution ends.
	cpu.Pending = Pending{}

	clear(cpu.ChangedRegisters)
	clear(cpu.ChangedMemory)

	if cpu.Verbose {
		log.Printf("cpu: %3d: %v %v", cpu.Pc, pend.Op, strings.Join(pend.Operands, " "))
	}

	want, known := opArity[pend.Op]
	if !known {
		cpu.Halted = true
		outcome = HALTED_NOW
		err = ErrUnknownOp(pend.Op)
		return
	}
	if len(pend.Operands) != want {
		cpu.Halted = true
		outcome = HALTED_NOW
		err = errors.Join(ErrOperand, ErrOperandCount)
		return
	}

	switch pend.Op {
	case OP_ADD, OP_SUB:
		var rd int
		var a, b int32
		rd, err = regIndex(pend.Operands[0])
		if err == nil {
			a, err = cpu.regValue(pend.Operands[1])
		}
		if err == nil {
			b, err = cpu.regValue(pend.Operands[2])
		}
		if err != nil {
			break
		}
		cpu.AluOp = pend.Op
		cpu.AluA = a
		cpu.AluB = b
		if pend.Op == OP_ADD {
			cpu.AluOut = a + b
		} else {
			cpu.AluOut = a - b
		}
		cpu.Register[rd] = cpu.AluOut
		cpu.ChangedRegisters[RegisterName(rd)] = struct{}{}

	case OP_MOV:
		var rd int
		var imm int32
		rd, err = regIndex(pend.Operands[0])
		if err == nil {
			imm, err = parseImmediate(pend.Operands[1])
		}
		if err != nil {
			break
		}
		cpu.Register[rd] = imm
		cpu.ChangedRegisters[RegisterName(rd)] = struct{}{}

	case OP_LOAD:
		var rd int
		var addr uint32
		rd, err = regIndex(pend.Operands[0])
		if err == nil {
			addr, err = parseAddress(pend.Operands[1])
		}
		if err != nil {
			break
		}
		cpu.Signals.Memory = true
		cpu.Register[rd] = cpu.Memory.Load(addr)
		cpu.ChangedRegisters[RegisterName(rd)] = struct{}{}

	case OP_STORE:
		var value int32
		var addr uint32
		value, err = cpu.regValue(pend.Operands[0])
		if err == nil {
			addr, err = parseAddress(pend.Operands[1])
		}
		if err != nil {
			break
		}
		cpu.Signals.Memory = true
		cpu.Memory.Store(addr, value)
		cpu.ChangedMemory[addr] = struct{}{}

	case OP_JUMP:
		var addr uint32
		addr, err = parseAddress(pend.Operands[0])
		if err != nil {
			break
		}
		// The +1 advance below lands on the target.
		cpu.Pc = int(addr) - 1

	case OP_BEQ:
		var a, b int32
		var addr uint32
		a, err = cpu.regValue(pend.Operands[0])
		if err == nil {
			b, err = cpu.regValue(pend.Operands[1])
		}
		if err == nil {
			addr, err = parseAddress(pend.Operands[2])
		}
		if err != nil {
			break
		}
		if a == b {
			cpu.Pc = int(addr) - 1
		}

	case OP_NOP:
		// pass

	case OP_HALT:
		cpu.Halted = true
		outcome = HALTED_NOW
		return
	}

	if err != nil {
		cpu.Halted = true
		outcome = HALTED_NOW
		err = errors.Join(ErrOperand, err)
		return
	}

	cpu.Signals.Writeback = true
	cpu.Pc++
	outcome = CONTINUED
	return
}

// regIndex resolves a register identifier to its bank index.
func regIndex(name string) (index int, err error) {
	index, ok := registerIndexes[name]
	if !ok {
		err = ErrRegister(name)
	}
	return
}

// regValue resolves a register identifier to its current value.
func (cpu *Cpu) regValue(name string) (value int32, err error) {
	index, err := regIndex(name)
	if err != nil {
		return
	}
	value = cpu.Register[index]
	return
}

// parseAddress parses a decimal or 0x-prefixed hexadecimal address
// literal.
func parseAddress(token string) (addr uint32, err error) {
	var value uint64
	var perr error
	if strings.HasPrefix(token, "0x") {
		value, perr = strconv.ParseUint(token[2:], 16, 32)
	} else {
		value, perr = strconv.ParseUint(token, 10, 32)
	}
	if perr != nil {
		err = ErrParseNumber(token)
		return
	}
	addr = uint32(value)
	return
}

// parseImmediate parses a decimal integer literal.
func parseImmediate(token string) (value int32, err error) {
	v64, perr := strconv.ParseInt(token, 10, 32)
	if perr != nil {
		err = ErrParseNumber(token)
		return
	}
	value = int32(v64)
	return
}
