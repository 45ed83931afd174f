package parser

import (
	"github.com/willowmere/scribe/errz"
	"github.com/willowmere/scribe/token"
)

// TokenStream is a cursor over a token sequence with the same
// speculative-rollback contract as the lexer's character stream: rules
// take a mark, attempt a match, and reset to the mark on failure.
//
// The stream also records the farthest position any rule reached before
// failing, so that after heavy backtracking the reported parse error
// points at the actual trouble spot rather than wherever the last
// alternative gave up.
type TokenStream struct {
	tokens []token.Token
	pos    int

	// farthest failure bookkeeping
	farthest  int
	expected  []string
	exhausted bool // a rule ran out of tokens at the farthest position
}

// NewTokenStream creates a stream over the given tokens.
func NewTokenStream(tokens []token.Token) *TokenStream {
	return &TokenStream{tokens: tokens, farthest: -1}
}

// Mark returns the current cursor position.
func (ts *TokenStream) Mark() int {
	return ts.pos
}

// Reset rolls the cursor back to a previously captured position.
func (ts *TokenStream) Reset(mark int) {
	ts.pos = mark
}

// Done reports whether all tokens have been consumed.
func (ts *TokenStream) Done() bool {
	return ts.pos >= len(ts.tokens)
}

// Peek returns the token at the cursor without consuming it.
func (ts *TokenStream) Peek() (token.Token, bool) {
	if ts.Done() {
		return token.Token{}, false
	}
	return ts.tokens[ts.pos], true
}

// Next consumes and returns the token at the cursor. Running out of
// tokens is a *errz.NoMoreToken, which enclosing alternations treat as a
// failed alternative.
func (ts *TokenStream) Next() (token.Token, error) {
	if ts.Done() {
		ts.recordExhausted()
		return token.Token{}, &errz.NoMoreToken{}
	}
	tok := ts.tokens[ts.pos]
	ts.pos++
	return tok, nil
}

// recordFailure notes that a rule expecting the given form failed at the
// current position.
func (ts *TokenStream) recordFailure(expected string) {
	switch {
	case ts.pos > ts.farthest:
		ts.farthest = ts.pos
		ts.expected = append(ts.expected[:0], expected)
		ts.exhausted = false
	case ts.pos == ts.farthest:
		for _, e := range ts.expected {
			if e == expected {
				return
			}
		}
		ts.expected = append(ts.expected, expected)
	}
}

func (ts *TokenStream) recordExhausted() {
	if ts.pos >= ts.farthest {
		ts.farthest = ts.pos
		ts.exhausted = true
	}
}

// FailureError builds the ParseError describing the farthest failure the
// stream observed.
func (ts *TokenStream) FailureError() *errz.ParseError {
	if ts.farthest >= 0 && ts.farthest < len(ts.tokens) {
		tok := ts.tokens[ts.farthest]
		msg := "unexpected token " + quoted(tok)
		if len(ts.expected) > 0 {
			msg += ", expected " + joinAlternatives(ts.expected)
		}
		return errz.NewParseError(tok.LineNumber(), tok.LineText, "%s", msg)
	}
	// Failure at end of input
	line, lineText := 1, ""
	if n := len(ts.tokens); n > 0 {
		line = ts.tokens[n-1].LineNumber()
		lineText = ts.tokens[n-1].LineText
	}
	msg := "unexpected end of input"
	if len(ts.expected) > 0 {
		msg += ", expected " + joinAlternatives(ts.expected)
	}
	return errz.NewParseError(line, lineText, "%s", msg)
}

func quoted(tok token.Token) string {
	if tok.Tag == token.NEWLINE {
		return "newline"
	}
	return "\"" + tok.Literal + "\""
}

func joinAlternatives(alts []string) string {
	switch len(alts) {
	case 1:
		return alts[0]
	default:
		out := alts[0]
		for _, alt := range alts[1 : len(alts)-1] {
			out += ", " + alt
		}
		return out + " or " + alts[len(alts)-1]
	}
}
