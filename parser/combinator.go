package parser

import (
	"errors"

	"github.com/willowmere/scribe/errz"
	"github.com/willowmere/scribe/token"
)

// A Rule matches a portion of the token stream and produces a result,
// usually an AST node or a raw token. Every Rule restores the stream
// cursor to where it started before reporting failure, so alternation and
// repetition can backtrack without bookkeeping of their own.
//
// Failure is communicated through explicit error values, never panics:
// *errz.NoMoreToken when input ran out mid-rule, *errz.NeedMore when the
// source is incomplete but well-formed so far, and a recoverable match
// failure otherwise. Only the parser entry point converts failures into a
// surfaced *errz.ParseError.
type Rule interface {
	// Name describes the rule in diagnostics, such as "expression" or
	// `"while"`.
	Name() string

	// Parse attempts the rule at the stream cursor.
	Parse(ts *TokenStream) (any, error)
}

// errNoMatch is the recoverable "this alternative failed" signal.
// Diagnostics come from the stream's farthest-failure bookkeeping, not
// from this value.
var errNoMatch = errors.New("no match")

// recoverable reports whether an enclosing Alternate may retry after err.
func recoverable(err error) bool {
	if errors.Is(err, errNoMatch) {
		return true
	}
	var nmt *errz.NoMoreToken
	return errors.As(err, &nmt)
}

type alternate struct {
	name  string
	rules []Rule
}

// Alternate tries each sub-rule in order at the same cursor position and
// returns the first success. The cursor is rolled back before every
// attempt. If no alternative matches, the failure names all of them.
func Alternate(name string, rules ...Rule) Rule {
	return &alternate{name: name, rules: rules}
}

func (r *alternate) Name() string { return r.name }

func (r *alternate) Parse(ts *TokenStream) (any, error) {
	mark := ts.Mark()
	for _, sub := range r.rules {
		ts.Reset(mark)
		result, err := sub.Parse(ts)
		if err == nil {
			return result, nil
		}
		if !recoverable(err) {
			ts.Reset(mark)
			return nil, err
		}
	}
	ts.Reset(mark)
	for _, sub := range r.rules {
		ts.recordFailure(sub.Name())
	}
	return nil, errNoMatch
}

type concat struct {
	name  string
	rules []Rule
}

// Concat requires every sub-rule to succeed in sequence. Any failure
// rolls the cursor back to where the whole concatenation started and
// fails the concatenation; an enclosing Alternate may still try its next
// alternative.
func Concat(name string, rules ...Rule) Rule {
	return &concat{name: name, rules: rules}
}

func (r *concat) Name() string { return r.name }

func (r *concat) Parse(ts *TokenStream) (any, error) {
	mark := ts.Mark()
	results := make([]any, 0, len(r.rules))
	for _, sub := range r.rules {
		result, err := sub.Parse(ts)
		if err != nil {
			ts.Reset(mark)
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

type rep struct {
	rule Rule
}

// Rep applies the rule repeatedly until it fails, returning the possibly
// empty ordered slice of results. Rep itself never fails.
func Rep(rule Rule) Rule {
	return &rep{rule: rule}
}

func (r *rep) Name() string { return r.rule.Name() + "*" }

func (r *rep) Parse(ts *TokenStream) (any, error) {
	var results []any
	for {
		mark := ts.Mark()
		result, err := r.rule.Parse(ts)
		if err != nil {
			if !recoverable(err) {
				return nil, err
			}
			ts.Reset(mark)
			return results, nil
		}
		results = append(results, result)
	}
}

type process struct {
	rule Rule
	fn   func(any) any
}

// Process applies the rule and transforms its result, shedding parse-tree
// noise and building AST nodes from raw matches.
func Process(rule Rule, fn func(any) any) Rule {
	return &process{rule: rule, fn: fn}
}

func (r *process) Name() string { return r.rule.Name() }

func (r *process) Parse(ts *TokenStream) (any, error) {
	result, err := r.rule.Parse(ts)
	if err != nil {
		return nil, err
	}
	return r.fn(result), nil
}

type optional struct {
	rule Rule
}

// Optional applies the rule if it matches and produces nil otherwise.
// Like Rep, it never fails.
func Optional(rule Rule) Rule {
	return &optional{rule: rule}
}

func (r *optional) Name() string { return r.rule.Name() + "?" }

func (r *optional) Parse(ts *TokenStream) (any, error) {
	mark := ts.Mark()
	result, err := r.rule.Parse(ts)
	if err != nil {
		if !recoverable(err) {
			return nil, err
		}
		ts.Reset(mark)
		return nil, nil
	}
	return result, nil
}

type commit struct {
	name  string
	after int
	rules []Rule
}

// Commit behaves like Concat, except that once the first `after`
// sub-rules have succeeded, running out of tokens is reported as
// *errz.NeedMore rather than a failed alternative: the source is
// incomplete, not wrong. Block statements use this so that an unclosed
// "if" prompts an interactive host for more input.
func Commit(name string, after int, rules ...Rule) Rule {
	return &commit{name: name, after: after, rules: rules}
}

func (r *commit) Name() string { return r.name }

func (r *commit) Parse(ts *TokenStream) (any, error) {
	mark := ts.Mark()
	results := make([]any, 0, len(r.rules))
	for i, sub := range r.rules {
		result, err := sub.Parse(ts)
		if err != nil {
			ts.Reset(mark)
			var nmt *errz.NoMoreToken
			if i >= r.after && errors.As(err, &nmt) {
				return nil, &errz.NeedMore{Message: "unterminated " + r.name}
			}
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

type terminal struct {
	name  string
	match func(token.Token) bool
}

// Terminal matches a single token satisfying the given predicate and
// produces the token itself.
func Terminal(name string, match func(token.Token) bool) Rule {
	return &terminal{name: name, match: match}
}

func (r *terminal) Name() string { return r.name }

func (r *terminal) Parse(ts *TokenStream) (any, error) {
	mark := ts.Mark()
	tok, err := ts.Next()
	if err != nil {
		return nil, err
	}
	if !r.match(tok) {
		ts.Reset(mark)
		ts.recordFailure(r.name)
		return nil, errNoMatch
	}
	return tok, nil
}

// Tag matches any token with the given tag.
func Tag(tag token.Tag) Rule {
	return Terminal(string(tag), func(tok token.Token) bool {
		return tok.Tag == tag
	})
}

// Op matches the operator with the given spelling.
func Op(literal string) Rule {
	return Terminal(`"`+literal+`"`, func(tok token.Token) bool {
		return tok.Is(token.OP, literal)
	})
}

// Keyword matches the given reserved word.
func Keyword(word string) Rule {
	return Terminal(`"`+word+`"`, func(tok token.Token) bool {
		return tok.IsKeyword(word)
	})
}

type lookahead struct {
	rule Rule
}

// Lookahead succeeds when the rule matches at the cursor, without
// consuming anything either way.
func Lookahead(rule Rule) Rule {
	return &lookahead{rule: rule}
}

func (r *lookahead) Name() string { return r.rule.Name() }

func (r *lookahead) Parse(ts *TokenStream) (any, error) {
	mark := ts.Mark()
	result, err := r.rule.Parse(ts)
	ts.Reset(mark)
	if err != nil {
		return nil, err
	}
	return result, nil
}

type endOfInput struct{}

// EndOfInput matches only when all tokens have been consumed. It consumes
// nothing and produces nil.
func EndOfInput() Rule {
	return &endOfInput{}
}

func (r *endOfInput) Name() string { return "end of input" }

func (r *endOfInput) Parse(ts *TokenStream) (any, error) {
	if !ts.Done() {
		ts.recordFailure(r.Name())
		return nil, errNoMatch
	}
	return nil, nil
}

type ref struct {
	name string
	fn   func() Rule
}

// Ref defers rule resolution until parse time, breaking the definition
// cycles that recursive grammars need.
func Ref(name string, fn func() Rule) Rule {
	return &ref{name: name, fn: fn}
}

func (r *ref) Name() string { return r.name }

func (r *ref) Parse(ts *TokenStream) (any, error) {
	return r.fn().Parse(ts)
}
