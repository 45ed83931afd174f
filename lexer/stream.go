package lexer

import "strings"

// Stream is a cursor over raw source text. It supports speculative
// consumption: callers take a Mark, try a match, and roll back to the mark
// if the match fails. This is the backtracking primitive underneath every
// token matcher.
type Stream struct {
	src       string
	pos       int // byte offset of the cursor
	line      int // 0-indexed line of the cursor
	lineStart int // byte offset where the current line begins
}

// NewStream creates a Stream over the given source text.
func NewStream(src string) *Stream {
	return &Stream{src: src}
}

// Mark captures the current cursor position for a later Reset.
type Mark struct {
	pos       int
	line      int
	lineStart int
}

// Mark returns the current cursor position.
func (s *Stream) Mark() Mark {
	return Mark{pos: s.pos, line: s.line, lineStart: s.lineStart}
}

// Reset rolls the cursor back to a previously captured Mark.
func (s *Stream) Reset(m Mark) {
	s.pos = m.pos
	s.line = m.line
	s.lineStart = m.lineStart
}

// Done reports whether the cursor has consumed all input.
func (s *Stream) Done() bool {
	return s.pos >= len(s.src)
}

// Pos returns the byte offset of the cursor.
func (s *Stream) Pos() int {
	return s.pos
}

// Line returns the 0-indexed line the cursor is on.
func (s *Stream) Line() int {
	return s.line
}

// Peek returns the byte at the cursor without consuming it. Returns 0 at
// end of input.
func (s *Stream) Peek() byte {
	if s.Done() {
		return 0
	}
	return s.src[s.pos]
}

// Next consumes and returns the byte at the cursor. Returns 0 at end of
// input.
func (s *Stream) Next() byte {
	if s.Done() {
		return 0
	}
	ch := s.src[s.pos]
	s.pos++
	if ch == '\n' {
		s.line++
		s.lineStart = s.pos
	}
	return ch
}

// ConsumePrefix consumes the given literal if it appears at the cursor and
// reports whether it did.
func (s *Stream) ConsumePrefix(prefix string) bool {
	if !strings.HasPrefix(s.src[s.pos:], prefix) {
		return false
	}
	for range prefix {
		s.Next()
	}
	return true
}

// LineText returns the full text of the current line, without its
// terminating newline.
func (s *Stream) LineText() string {
	end := strings.IndexByte(s.src[s.lineStart:], '\n')
	if end < 0 {
		return s.src[s.lineStart:]
	}
	return s.src[s.lineStart : s.lineStart+end]
}

// Slice returns the source text between two byte offsets.
func (s *Stream) Slice(start, end int) string {
	return s.src[start:end]
}
