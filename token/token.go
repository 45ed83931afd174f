// Package token defines the lexical tokens of the Scribe scripting language
// and the keywords reserved by it.
package token

// Tag categorizes a token as a string.
type Tag string

// Token tags
const (
	// NONE marks a match that consumes input but produces no token, such
	// as whitespace or a comment. The lexer discards these.
	NONE Tag = ""

	IDENT   Tag = "IDENT"
	INT     Tag = "INT"
	FLOAT   Tag = "FLOAT"
	STRING  Tag = "STRING"
	KEYWORD Tag = "KEYWORD"
	OP      Tag = "OP"
	NEWLINE Tag = "NEWLINE"
)

// Keywords reserved by the language. Matched longest-first so that a
// keyword that prefixes another is never preferred by accident.
const (
	IF    = "if"
	ELSE  = "else"
	END   = "end"
	WHILE = "while"
	AND   = "and"
	OR    = "or"
	NOT   = "not"
	TRUE  = "true"
	FALSE = "false"
)

// Operator spellings.
const (
	ASSIGN   = "="
	PLUS     = "+"
	MINUS    = "-"
	ASTERISK = "*"
	SLASH    = "/"
	EQ       = "=="
	NOT_EQ   = "!="
	LT       = "<"
	LT_EQ    = "<="
	GT       = ">"
	GT_EQ    = ">="
	LPAREN   = "("
	RPAREN   = ")"
	COMMA    = ","
	PERIOD   = "."
)

// Token is one lexical unit produced from source text. Tokens are immutable
// once produced and carry enough position information to report a useful
// diagnostic without re-reading the source.
type Token struct {
	Tag      Tag
	Literal  string
	Line     int    // 0-indexed line the token starts on
	LineText string // full text of that line, for diagnostics
	StartPos int    // byte offset of the first character
	EndPos   int    // byte offset one past the last character
}

// LineNumber returns the 1-indexed line number for this token.
func (t Token) LineNumber() int {
	return t.Line + 1
}

// Is reports whether the token has the given tag and literal text.
func (t Token) Is(tag Tag, literal string) bool {
	return t.Tag == tag && t.Literal == literal
}

// IsKeyword reports whether the token is the given keyword.
func (t Token) IsKeyword(word string) bool {
	return t.Tag == KEYWORD && t.Literal == word
}
