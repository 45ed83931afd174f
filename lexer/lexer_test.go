package lexer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/willowmere/scribe/errz"
	"github.com/willowmere/scribe/token"
)

func tags(tokens []token.Token) []token.Tag {
	out := make([]token.Tag, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, t.Tag)
	}
	return out
}

func literals(tokens []token.Token) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, t.Literal)
	}
	return out
}

func TestTokenizeExpression(t *testing.T) {
	tokens, err := Tokenize("a + b * 2")
	require.Nil(t, err)
	require.Equal(t, []token.Tag{
		token.IDENT, token.OP, token.IDENT, token.OP, token.INT,
	}, tags(tokens))
	require.Equal(t, []string{"a", "+", "b", "*", "2"}, literals(tokens))
}

func TestTokenizeKeywords(t *testing.T) {
	tokens, err := Tokenize("if x and not y else end while or true false")
	require.Nil(t, err)
	for _, tok := range tokens {
		require.Equal(t, token.KEYWORD, tok.Tag, "token %q", tok.Literal)
	}
	require.Equal(t, []string{
		"if", "x", "and", "not", "y", "else", "end", "while", "or", "true", "false",
	}, literals(tokens))
}

func TestKeywordPrefixOfIdent(t *testing.T) {
	// "iffy" and "android" must lex as identifiers, not keyword + rest.
	tokens, err := Tokenize("iffy android nothing")
	require.Nil(t, err)
	require.Equal(t, []token.Tag{token.IDENT, token.IDENT, token.IDENT}, tags(tokens))
	require.Equal(t, []string{"iffy", "android", "nothing"}, literals(tokens))
}

func TestLongestOperatorWins(t *testing.T) {
	tokens, err := Tokenize("a <= b == c != d >= e")
	require.Nil(t, err)
	require.Equal(t, []string{"a", "<=", "b", "==", "c", "!=", "d", ">=", "e"},
		literals(tokens))
}

func TestNumbers(t *testing.T) {
	tokens, err := Tokenize("42 3.14 7")
	require.Nil(t, err)
	require.Equal(t, []token.Tag{token.INT, token.FLOAT, token.INT}, tags(tokens))
}

func TestFloatRequiresFractionDigits(t *testing.T) {
	// "1." is an int followed by a period (attribute access needs it).
	tokens, err := Tokenize("1.x")
	require.Nil(t, err)
	require.Equal(t, []token.Tag{token.INT, token.OP, token.IDENT}, tags(tokens))
}

func TestStrings(t *testing.T) {
	tokens, err := Tokenize(`say("hello world")`)
	require.Nil(t, err)
	require.Equal(t, []token.Tag{
		token.IDENT, token.OP, token.STRING, token.OP,
	}, tags(tokens))
	require.Equal(t, `"hello world"`, tokens[2].Literal)
}

func TestUnterminatedString(t *testing.T) {
	_, err := Tokenize(`x = "oops`)
	require.NotNil(t, err)
	var parseErr *errz.ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, 1, parseErr.Line)
}

func TestCommentsAndWhitespaceAreSkipped(t *testing.T) {
	tokens, err := Tokenize("x = 1  # set up the counter\ny = 2")
	require.Nil(t, err)
	require.Equal(t, []string{"x", "=", "1", "\n", "y", "=", "2"}, literals(tokens))
}

func TestNewlinesAreKept(t *testing.T) {
	tokens, err := Tokenize("a\nb")
	require.Nil(t, err)
	require.Equal(t, []token.Tag{token.IDENT, token.NEWLINE, token.IDENT}, tags(tokens))
}

func TestUnexpectedCharacter(t *testing.T) {
	_, err := Tokenize("x = 1\ny = $oops")
	require.NotNil(t, err)
	var parseErr *errz.ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, 2, parseErr.Line)
	require.Equal(t, "y = $oops", parseErr.LineText)
	require.Contains(t, parseErr.Message, "$")
}

func TestLineNumbersAndLineText(t *testing.T) {
	tokens, err := Tokenize("a = 1\nb = 2")
	require.Nil(t, err)
	last := tokens[len(tokens)-1]
	require.Equal(t, 2, last.LineNumber())
	require.Equal(t, "b = 2", last.LineText)
}

// Reconstructing source from token text reproduces the non-whitespace
// content of the input.
func TestRoundTrip(t *testing.T) {
	sources := []string{
		"a = 2\nb = 3\nc = a + b * 2",
		`if x > 1 print("big") else print("small") end`,
		"while n < 10 n = n + 1 end",
		"result = character.health - 5",
	}
	strip := strings.NewReplacer(" ", "", "\t", "")
	for _, src := range sources {
		tokens, err := Tokenize(src)
		require.Nil(t, err, src)
		require.Equal(t, strip.Replace(src), strings.Join(literals(tokens), ""), src)
	}
}

func TestByteOffsets(t *testing.T) {
	tokens, err := Tokenize("ab + cd")
	require.Nil(t, err)
	require.Equal(t, 0, tokens[0].StartPos)
	require.Equal(t, 2, tokens[0].EndPos)
	require.Equal(t, 5, tokens[2].StartPos)
	require.Equal(t, 7, tokens[2].EndPos)
}

func TestStreamSpeculation(t *testing.T) {
	s := NewStream("abc")
	mark := s.Mark()
	require.Equal(t, byte('a'), s.Next())
	require.Equal(t, byte('b'), s.Next())
	s.Reset(mark)
	require.Equal(t, byte('a'), s.Next())
	require.False(t, s.Done())
}
