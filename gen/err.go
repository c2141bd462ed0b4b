package gen

import (
	"github.com/ezrec/cyclesim/translate"
)

var f = translate.From

// ErrScriptProgram indicates a script that did not assign a usable
// `program` value.
type ErrScriptProgram string

func (err ErrScriptProgram) Error() string {
	return f("script %v did not produce a program", string(err))
}
