package dis

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/willowmere/scribe/compiler"
	"github.com/willowmere/scribe/parser"
)

func TestDisassemble(t *testing.T) {
	program, err := parser.Parse("if hp > 5\n  say(\"ok\")\nend")
	require.Nil(t, err)
	code, err := compiler.Compile(program)
	require.Nil(t, err)

	var buf bytes.Buffer
	require.Nil(t, Disassemble(code, &buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, code.Len()+1)
	require.Contains(t, lines[0], "IDX")
	require.Contains(t, lines[0], "OPCODE")
	require.Contains(t, buf.String(), "VALUE")
	require.Contains(t, buf.String(), "hp")
	require.Contains(t, buf.String(), "IFFALSE")
	require.Contains(t, buf.String(), "-> ")
	require.Contains(t, buf.String(), "say/1")
}

func TestDisassembleEmpty(t *testing.T) {
	program, err := parser.Parse("")
	require.Nil(t, err)
	code, err := compiler.Compile(program)
	require.Nil(t, err)

	var buf bytes.Buffer
	require.Nil(t, Disassemble(code, &buf))
	require.Equal(t, 1, strings.Count(buf.String(), "\n")) // header only
}
