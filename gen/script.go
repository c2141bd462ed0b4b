package gen

import (
	"iter"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/cyclesim/cpu"
)

// Scripted runs a Starlark script to produce a program.
//
// The machine defines are predeclared as script globals, integer
// values as ints and everything else as strings. The script must
// assign either a text block or a list of instruction strings to
// `program`.
type Scripted struct {
	Name    string                    // Script name, for diagnostics.
	Script  string                    // Starlark source text.
	Defines iter.Seq2[string, string] // Machine defines to predeclare.
}

var _ Source = (*Scripted)(nil)

// Generate executes the script and sanitizes its program output.
func (sc *Scripted) Generate() (prog *cpu.Program, err error) {
	thread := starlark.Thread{Name: sc.Name}
	opts := syntax.FileOptions{}

	pred := starlark.StringDict{}
	if sc.Defines != nil {
		for key, str := range sc.Defines {
			value, perr := strconv.ParseInt(str, 0, 64)
			if perr == nil {
				pred[key] = starlark.MakeInt64(value)
			} else {
				pred[key] = starlark.String(str)
			}
		}
	}

	dict, err := starlark.ExecFileOptions(&opts, &thread, sc.Name, sc.Script, pred)
	if err != nil {
		return
	}

	output, ok := dict["program"]
	if !ok {
		err = ErrScriptProgram(sc.Name)
		return
	}

	var text string
	switch value := output.(type) {
	case starlark.String:
		text = string(value)
	case *starlark.List:
		var lines []string
		for n := range value.Len() {
			line, ok := starlark.AsString(value.Index(n))
			if !ok {
				err = ErrScriptProgram(sc.Name)
				return
			}
			lines = append(lines, line)
		}
		text = strings.Join(lines, "\n")
	default:
		err = ErrScriptProgram(sc.Name)
		return
	}

	prog, err = cpu.FromText(text)
	return
}
