// Package lexer converts Scribe source text into a sequence of tokens.
//
// The lexer is matcher-driven: a fixed, ordered list of token matchers is
// tried at the cursor and the first matcher that consumes one or more
// characters wins. Matchers that produce a token with the NONE tag
// (whitespace, comments) advance the cursor but emit nothing. If no matcher
// consumes anything, lexing fails with a ParseError naming the offending
// character and line.
package lexer

import (
	"sort"

	"github.com/willowmere/scribe/errz"
	"github.com/willowmere/scribe/token"
)

// A Matcher attempts to recognize one token at the stream cursor. On
// success it leaves the cursor advanced past the match and returns the
// token. On failure it must leave the cursor where it found it.
type Matcher func(s *Stream) (token.Token, bool)

// matchers is the priority-ordered matcher list. Order is significant:
// keywords before identifiers, floats before ints, multi-character
// operators before their single-character prefixes.
var matchers = []Matcher{
	matchComment,
	matchWhitespace,
	matchNewline,
	matchKeyword,
	matchIdent,
	matchFloat,
	matchInt,
	matchString,
	matchOperator,
}

// Tokenize converts source text into tokens. Returns a *errz.ParseError if
// any input cannot be matched.
func Tokenize(src string) ([]token.Token, error) {
	s := NewStream(src)
	var tokens []token.Token
	for !s.Done() {
		matched := false
		for _, m := range matchers {
			start := s.Pos()
			tok, ok := m(s)
			if !ok {
				continue
			}
			if s.Pos() == start {
				// A matcher that consumes nothing did not match.
				continue
			}
			matched = true
			if tok.Tag != token.NONE {
				tokens = append(tokens, tok)
			}
			break
		}
		if !matched {
			err := errz.NewParseError(s.Line()+1, s.LineText(),
				"unexpected character %q", s.Peek())
			err.Column = posInLine(s) + 1
			return nil, err
		}
	}
	return tokens, nil
}

func posInLine(s *Stream) int {
	return s.Pos() - s.lineStart
}

// begin captures everything needed to build a token once a match succeeds.
func begin(s *Stream) (Mark, int, int, string) {
	return s.Mark(), s.Pos(), s.Line(), s.LineText()
}

func emit(s *Stream, tag token.Tag, start, line int, lineText string) (token.Token, bool) {
	return token.Token{
		Tag:      tag,
		Literal:  s.Slice(start, s.Pos()),
		Line:     line,
		LineText: lineText,
		StartPos: start,
		EndPos:   s.Pos(),
	}, true
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isWordChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch)
}

// keywordsByLength holds the reserved words sorted longest-first, so that a
// keyword that is a prefix of a longer reserved word can never win on
// ordering alone.
var keywordsByLength = func() []string {
	words := []string{
		token.IF, token.ELSE, token.END, token.WHILE,
		token.AND, token.OR, token.NOT, token.TRUE, token.FALSE,
	}
	sort.Slice(words, func(i, j int) bool {
		return len(words[i]) > len(words[j])
	})
	return words
}()

func matchKeyword(s *Stream) (token.Token, bool) {
	mark, start, line, lineText := begin(s)
	for _, word := range keywordsByLength {
		if s.ConsumePrefix(word) {
			// Reject "iffy" matching "if": a keyword must end at a word
			// boundary.
			if isWordChar(s.Peek()) {
				s.Reset(mark)
				return token.Token{}, false
			}
			return emit(s, token.KEYWORD, start, line, lineText)
		}
	}
	return token.Token{}, false
}

func matchIdent(s *Stream) (token.Token, bool) {
	_, start, line, lineText := begin(s)
	if !isLetter(s.Peek()) {
		return token.Token{}, false
	}
	for isWordChar(s.Peek()) {
		s.Next()
	}
	return emit(s, token.IDENT, start, line, lineText)
}

func matchFloat(s *Stream) (token.Token, bool) {
	mark, start, line, lineText := begin(s)
	if !isDigit(s.Peek()) {
		return token.Token{}, false
	}
	for isDigit(s.Peek()) {
		s.Next()
	}
	if s.Peek() != '.' {
		s.Reset(mark)
		return token.Token{}, false
	}
	s.Next()
	if !isDigit(s.Peek()) {
		// "1." is not a float literal; attribute access needs the period.
		s.Reset(mark)
		return token.Token{}, false
	}
	for isDigit(s.Peek()) {
		s.Next()
	}
	return emit(s, token.FLOAT, start, line, lineText)
}

func matchInt(s *Stream) (token.Token, bool) {
	_, start, line, lineText := begin(s)
	if !isDigit(s.Peek()) {
		return token.Token{}, false
	}
	for isDigit(s.Peek()) {
		s.Next()
	}
	return emit(s, token.INT, start, line, lineText)
}

func matchString(s *Stream) (token.Token, bool) {
	mark, start, line, lineText := begin(s)
	if s.Peek() != '"' {
		return token.Token{}, false
	}
	s.Next()
	for {
		if s.Done() || s.Peek() == '\n' {
			s.Reset(mark)
			return token.Token{}, false
		}
		ch := s.Next()
		if ch == '"' {
			return emit(s, token.STRING, start, line, lineText)
		}
	}
}

// operatorsByLength lists operator spellings longest-first so that "==" is
// tried before "=" and "<=" before "<".
var operatorsByLength = []string{
	token.EQ, token.NOT_EQ, token.LT_EQ, token.GT_EQ,
	token.ASSIGN, token.PLUS, token.MINUS, token.ASTERISK, token.SLASH,
	token.LT, token.GT, token.LPAREN, token.RPAREN, token.COMMA, token.PERIOD,
}

func matchOperator(s *Stream) (token.Token, bool) {
	_, start, line, lineText := begin(s)
	for _, op := range operatorsByLength {
		if s.ConsumePrefix(op) {
			return emit(s, token.OP, start, line, lineText)
		}
	}
	return token.Token{}, false
}

func matchNewline(s *Stream) (token.Token, bool) {
	_, start, line, lineText := begin(s)
	if s.Peek() != '\n' {
		return token.Token{}, false
	}
	s.Next()
	return emit(s, token.NEWLINE, start, line, lineText)
}

func matchWhitespace(s *Stream) (token.Token, bool) {
	consumed := false
	for s.Peek() == ' ' || s.Peek() == '\t' || s.Peek() == '\r' {
		s.Next()
		consumed = true
	}
	return token.Token{Tag: token.NONE}, consumed
}

func matchComment(s *Stream) (token.Token, bool) {
	if s.Peek() != '#' {
		return token.Token{}, false
	}
	for !s.Done() && s.Peek() != '\n' {
		s.Next()
	}
	return token.Token{Tag: token.NONE}, true
}
