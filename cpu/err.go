package cpu

import (
	"errors"

	"github.com/ezrec/cyclesim/translate"
)

var f = translate.From

var (
	// Stage sequencing errors
	ErrNotFetched = errors.New(f("no instruction fetched"))
	ErrNotDecoded = errors.New(f("no instruction decoded"))

	// Operand resolution errors
	ErrOperand      = errors.New(f("operand"))
	ErrOperandCount = errors.New(f("operand count"))

	// Driver errors
	ErrPcRange      = errors.New(f("pc out of range"))
	ErrProgramEmpty = errors.New(f("program empty"))
)

type ErrUnknownOp Op

func (eo ErrUnknownOp) Error() string {
	return f("unknown opcode '%v'", string(eo))
}

func (eo ErrUnknownOp) Is(err error) (ok bool) {
	_, ok = err.(ErrUnknownOp)
	return
}

type ErrRegister string

func (er ErrRegister) Error() string {
	return f("'%v' is not a register", string(er))
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}
