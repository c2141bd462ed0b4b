package cpu

import (
	"bufio"
	"io"
	"regexp"
	"strings"
)

// Program is an ordered, immutable-once-loaded sequence of instruction
// text lines, indexed by the program counter.
type Program struct {
	Lines []string
}

// Len returns the number of instructions.
func (prog *Program) Len() int {
	if prog == nil {
		return 0
	}
	return len(prog.Lines)
}

// Line returns the instruction text at the given program counter index.
func (prog *Program) Line(index int) string {
	return prog.Lines[index]
}

// linePrefix matches a leading line-number prefix, ie "3: MOV R1 5".
var linePrefix = regexp.MustCompile(`^\d+\s*:\s*`)

// sanitizeLine reduces one line of program text to bare instruction
// text: line-number prefixes and '#' comments are stripped. Returns
// the empty string for lines with no instruction content.
func sanitizeLine(line string) string {
	line = strings.TrimSpace(line)
	line = linePrefix.ReplaceAllString(line, "")
	if at := strings.IndexByte(line, '#'); at >= 0 {
		line = line[:at]
	}
	return strings.TrimSpace(line)
}

// FromText builds a Program from a free-form text block, such as the
// output of an external program generator. Markdown code fences,
// line-number prefixes, comments, and blank lines are dropped. Returns
// ErrProgramEmpty when nothing remains.
func FromText(text string) (prog *Program, err error) {
	prog = &Program{}
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			continue
		}
		trimmed = sanitizeLine(trimmed)
		if trimmed == "" {
			continue
		}
		prog.Lines = append(prog.Lines, trimmed)
	}

	if prog.Len() == 0 {
		err = ErrProgramEmpty
		return
	}

	return
}

// Read loads a Program from an instruction-text stream, one
// instruction per line. Comment-only and blank lines are dropped; an
// empty stream yields a valid zero-instruction program.
func Read(r io.Reader) (prog *Program, err error) {
	prog = &Program{}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := sanitizeLine(scanner.Text())
		if line == "" {
			continue
		}
		prog.Lines = append(prog.Lines, line)
	}
	err = scanner.Err()

	return
}
