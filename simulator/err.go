package simulator

import (
	"errors"

	"github.com/ezrec/cyclesim/translate"
)

var f = translate.From

var ErrStepLimit = errors.New(f("step limit reached"))

// ErrRuntime indicates the program index of a runtime failure.
type ErrRuntime struct {
	Pc  int
	Err error
}

func (err *ErrRuntime) Error() string {
	return f("pc %d %v", err.Pc, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
