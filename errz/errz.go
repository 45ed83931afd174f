// Package errz defines the error types shared across the Scribe pipeline.
//
// The taxonomy matters to callers: a *ParseError or *TypeError is surfaced
// verbatim to whoever authored the failing script, a *NoMoreToken is
// recoverable backtracking state inside the parser, and a *NeedMore signals
// that the source is incomplete rather than wrong, so an interactive host
// should keep reading input instead of reporting a failure.
package errz

import (
	"bytes"
	"fmt"
	"strings"
)

// ParseError indicates that lexing or parsing failed. It carries the
// 1-indexed line number and the full line text so the message can be shown
// with context. A ParseError always aborts compilation; no partial script
// is ever executed.
type ParseError struct {
	Message  string
	Line     int    // 1-indexed
	LineText string // full text of the offending line
	Column   int    // 1-indexed column of the offending character, 0 if unknown
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s (line %d)", e.Message, e.Line)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

// FriendlyErrorMessage returns the error with a source snippet and caret.
func (e *ParseError) FriendlyErrorMessage() string {
	var msg bytes.Buffer
	msg.WriteString(e.Error())
	msg.WriteString("\n")
	if e.LineText != "" {
		msg.WriteString(" | ")
		msg.WriteString(e.LineText)
		msg.WriteString("\n")
		if e.Column > 0 {
			msg.WriteString(" | ")
			msg.WriteString(strings.Repeat(" ", e.Column-1))
			msg.WriteString("^\n")
		}
	}
	return msg.String()
}

// NewParseError creates a ParseError for the given source position.
func NewParseError(line int, lineText, format string, args ...any) *ParseError {
	return &ParseError{
		Message:  fmt.Sprintf(format, args...),
		Line:     line,
		LineText: lineText,
	}
}

// NoMoreToken indicates that a parse rule ran out of tokens before it could
// complete. An enclosing alternation treats this as "this alternative
// failed" and backtracks; it is never surfaced to the script author
// directly.
type NoMoreToken struct {
	Rule string // name of the rule that ran dry, may be empty
}

// Error implements the error interface.
func (e *NoMoreToken) Error() string {
	if e.Rule != "" {
		return fmt.Sprintf("no more tokens while parsing %s", e.Rule)
	}
	return "no more tokens"
}

// NeedMore indicates that the source is syntactically incomplete and more
// input is expected, such as an if block with no closing "end". Interactive
// hosts use this to prompt for continuation lines instead of failing.
type NeedMore struct {
	Message string
}

// Error implements the error interface.
func (e *NeedMore) Error() string {
	return fmt.Sprintf("incomplete input: %s", e.Message)
}

// TypeError indicates that the optional pre-execution type check rejected
// the script. It is surfaced before any instruction runs.
type TypeError struct {
	Message string
}

// Error implements the error interface.
func (e *TypeError) Error() string {
	return fmt.Sprintf("type error: %s", e.Message)
}

// TypeErrorf creates a TypeError with a formatted message.
func TypeErrorf(format string, args ...any) *TypeError {
	return &TypeError{Message: fmt.Sprintf(format, args...)}
}

// RuntimeError indicates that an instruction failed during execution:
// division by zero, an undefined variable, an unresolvable attribute or
// call. It transitions the failing Script to its FAILED state; side effects
// of earlier instructions in the same run are not rolled back.
type RuntimeError struct {
	Message string
}

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error: %s", e.Message)
}

// RuntimeErrorf creates a RuntimeError with a formatted message.
func RuntimeErrorf(format string, args ...any) *RuntimeError {
	return &RuntimeError{Message: fmt.Sprintf(format, args...)}
}
