package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromText(t *testing.T) {
	assert := assert.New(t)

	text := strings.Join([]string{
		"```assembly",
		"1: MOV R1 5",
		"2: ADD R2 R1 R1  # double it",
		"",
		"# comment only",
		"HALT",
		"```",
	}, "\n")

	prog, err := FromText(text)
	assert.NoError(err)
	assert.Equal([]string{
		"MOV R1 5",
		"ADD R2 R1 R1",
		"HALT",
	}, prog.Lines)
}

func TestFromTextEmpty(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		text string
	}){
		{"empty", ""},
		{"blank", "\n\n  \n"},
		{"comments", "# one\n# two"},
		{"fences", "```\n```"},
	}

	for _, entry := range table {
		_, err := FromText(entry.text)
		assert.ErrorIs(err, ErrProgramEmpty, entry.name)
	}
}

func TestRead(t *testing.T) {
	assert := assert.New(t)

	prog, err := Read(strings.NewReader("MOV R1 1\n# setup done\nHALT\n"))
	assert.NoError(err)
	assert.Equal(2, prog.Len())
	assert.Equal("MOV R1 1", prog.Line(0))
	assert.Equal("HALT", prog.Line(1))
}

func TestReadEmpty(t *testing.T) {
	assert := assert.New(t)

	prog, err := Read(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, prog.Len())
}
