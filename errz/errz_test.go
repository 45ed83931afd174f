package errz

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorMessage(t *testing.T) {
	err := NewParseError(3, "x = $", "unexpected character %q", "$")
	require.Equal(t, `parse error: unexpected character "$" (line 3)`, err.Error())

	err = &ParseError{Message: "bad input"}
	require.Equal(t, "parse error: bad input", err.Error())
}

func TestFriendlyErrorMessage(t *testing.T) {
	err := NewParseError(2, "y = $oops", "unexpected character %q", "$")
	err.Column = 5
	lines := strings.Split(err.FriendlyErrorMessage(), "\n")
	require.Equal(t, `parse error: unexpected character "$" (line 2)`, lines[0])
	require.Equal(t, " | y = $oops", lines[1])
	require.Equal(t, " |     ^", lines[2])
}

func TestFriendlyErrorMessageWithoutColumn(t *testing.T) {
	err := NewParseError(1, "if x", "unexpected end of input")
	msg := err.FriendlyErrorMessage()
	require.Contains(t, msg, " | if x")
	require.NotContains(t, msg, "^")
}

func TestNoMoreToken(t *testing.T) {
	require.Equal(t, "no more tokens", (&NoMoreToken{}).Error())
	require.Equal(t, "no more tokens while parsing expression",
		(&NoMoreToken{Rule: "expression"}).Error())
}

func TestNeedMore(t *testing.T) {
	err := &NeedMore{Message: "unterminated if statement"}
	require.Equal(t, "incomplete input: unterminated if statement", err.Error())
}

func TestTypeAndRuntimeErrors(t *testing.T) {
	require.Equal(t, "type error: cannot negate string",
		TypeErrorf("cannot negate %s", "string").Error())
	require.Equal(t, "runtime error: division by zero",
		RuntimeErrorf("division by zero").Error())
}
