// Package parser generates the abstract syntax tree (AST) for a Scribe
// script.
//
// The grammar is built from backtracking combinators (Alternate, Concat,
// Rep, Process) over a token stream with save/restore. The entry point
// first attempts to parse the input as a single full expression and, on
// failure, rewinds and attempts a program (statement sequence), so inline
// expression scripts and multi-statement scripts share one entry point.
package parser

import (
	"errors"
	"strconv"

	"github.com/willowmere/scribe/ast"
	"github.com/willowmere/scribe/errz"
	"github.com/willowmere/scribe/lexer"
	"github.com/willowmere/scribe/token"
)

// Parse tokenizes and parses the given source text. The error, when not
// nil, is a *errz.ParseError or, for well-formed but unfinished input
// such as an unclosed block, a *errz.NeedMore.
func Parse(src string) (*ast.Program, error) {
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	ts := NewTokenStream(tokens)

	// First attempt: the whole input is one expression.
	if result, err := expression.Parse(ts); err == nil {
		skipNewlines(ts)
		if ts.Done() {
			x := result.(ast.Expr)
			return &ast.Program{Stmts: []ast.Stmt{&ast.ExprStmt{X: x}}}, nil
		}
	}

	// Second attempt: a sequence of statements.
	ts.Reset(0)
	result, err := program.Parse(ts)
	if err != nil {
		var needMore *errz.NeedMore
		if errors.As(err, &needMore) {
			return nil, needMore
		}
		return nil, ts.FailureError()
	}
	if !ts.Done() {
		return nil, ts.FailureError()
	}
	return &ast.Program{Stmts: result.([]ast.Stmt)}, nil
}

func skipNewlines(ts *TokenStream) {
	for {
		tok, ok := ts.Peek()
		if !ok || tok.Tag != token.NEWLINE {
			return
		}
		ts.Next()
	}
}

// Grammar rules, assigned in init so the mutual recursion between
// expressions, statements, and blocks does not form an initialization
// cycle. Back-references go through Ref, which resolves at parse time.
var (
	expression Rule
	statement  Rule
	program    Rule
)

func init() {
	exprRef := Ref("expression", func() Rule { return expression })
	stmtRef := Ref("statement", func() Rule { return statement })

	// Expression grammar, loosest precedence first.

	argList := Process(
		Concat("arguments",
			exprRef,
			Rep(Concat("argument", Op(token.COMMA), exprRef))),
		func(v any) any {
			parts := v.([]any)
			args := []ast.Expr{parts[0].(ast.Expr)}
			for _, raw := range asSlice(parts[1]) {
				pair := raw.([]any)
				args = append(args, pair[1].(ast.Expr))
			}
			return args
		})

	// Callees may be dotted paths, so host object methods are callable:
	// character.heal(5). The path resolves through the namespace chain at
	// execution time.
	calleeName := Process(
		Concat("call",
			Tag(token.IDENT),
			Rep(Concat("call", Op(token.PERIOD), Tag(token.IDENT)))),
		func(v any) any {
			parts := v.([]any)
			nameTok := parts[0].(token.Token)
			name := nameTok.Literal
			for _, raw := range asSlice(parts[1]) {
				pair := raw.([]any)
				name += "." + pair[1].(token.Token).Literal
			}
			return []any{nameTok, name}
		})

	call := Process(
		Concat("call",
			calleeName, Op(token.LPAREN), Optional(argList), Op(token.RPAREN)),
		func(v any) any {
			parts := v.([]any)
			callee := parts[0].([]any)
			var args []ast.Expr
			if parts[2] != nil {
				args = parts[2].([]ast.Expr)
			}
			return &ast.Call{
				Tok:  callee[0].(token.Token),
				Name: callee[1].(string),
				Args: args,
			}
		})

	grouped := Process(
		Concat("grouped expression", Op(token.LPAREN), exprRef, Op(token.RPAREN)),
		func(v any) any { return v.([]any)[1] })

	primary := Alternate("expression",
		call,
		Process(Tag(token.FLOAT), func(v any) any {
			tok := v.(token.Token)
			value, _ := strconv.ParseFloat(tok.Literal, 64)
			return &ast.Float{Tok: tok, Value: value}
		}),
		Process(Tag(token.INT), func(v any) any {
			tok := v.(token.Token)
			value, _ := strconv.ParseInt(tok.Literal, 10, 64)
			return &ast.Int{Tok: tok, Value: value}
		}),
		Process(Tag(token.STRING), func(v any) any {
			tok := v.(token.Token)
			return &ast.String{Tok: tok, Value: tok.Literal[1 : len(tok.Literal)-1]}
		}),
		Process(Keyword(token.TRUE), func(v any) any {
			return &ast.Bool{Tok: v.(token.Token), Value: true}
		}),
		Process(Keyword(token.FALSE), func(v any) any {
			return &ast.Bool{Tok: v.(token.Token), Value: false}
		}),
		Process(Tag(token.IDENT), func(v any) any {
			tok := v.(token.Token)
			return &ast.Ident{Tok: tok, Name: tok.Literal}
		}),
		grouped,
	)

	// Dotted attribute access nests left-to-right: a.b.c is (a.b).c.
	postfix := Process(
		Concat("term",
			primary,
			Rep(Concat("attribute access", Op(token.PERIOD), Tag(token.IDENT)))),
		func(v any) any {
			parts := v.([]any)
			x := parts[0].(ast.Expr)
			for _, raw := range asSlice(parts[1]) {
				access := raw.([]any)
				nameTok := access[1].(token.Token)
				x = &ast.GetAttr{Object: x, Tok: nameTok, Name: nameTok.Literal}
			}
			return x
		})

	var unary Rule
	unary = Alternate("term",
		Process(
			Concat("negation", Op(token.MINUS), Ref("term", func() Rule { return unary })),
			func(v any) any {
				parts := v.([]any)
				return &ast.Prefix{
					Tok: parts[0].(token.Token),
					Op:  token.MINUS,
					X:   parts[1].(ast.Expr),
				}
			}),
		postfix,
	)

	product := infixLevel("product",
		Alternate("operator", Op(token.ASTERISK), Op(token.SLASH)), unary)
	sum := infixLevel("sum",
		Alternate("operator", Op(token.PLUS), Op(token.MINUS)), product)

	comparison := infixLevel("comparison",
		Alternate("comparison operator",
			Op(token.EQ), Op(token.NOT_EQ),
			Op(token.LT_EQ), Op(token.GT_EQ), Op(token.LT), Op(token.GT)),
		sum)

	var notExpr Rule
	notExpr = Alternate("expression",
		Process(
			Concat(`"not"`, Keyword(token.NOT), Ref("expression", func() Rule { return notExpr })),
			func(v any) any {
				parts := v.([]any)
				return &ast.Prefix{
					Tok: parts[0].(token.Token),
					Op:  token.NOT,
					X:   parts[1].(ast.Expr),
				}
			}),
		comparison,
	)

	andExpr := infixLevel("expression", Keyword(token.AND), notExpr)
	expression = infixLevel("expression", Keyword(token.OR), andExpr)

	// Statement grammar.

	assign := Process(
		Concat("assignment", Tag(token.IDENT), Op(token.ASSIGN), exprRef),
		func(v any) any {
			parts := v.([]any)
			nameTok := parts[0].(token.Token)
			return &ast.Assign{Tok: nameTok, Name: nameTok.Literal, Value: parts[2].(ast.Expr)}
		})

	exprStmt := Process(exprRef, func(v any) any {
		return &ast.ExprStmt{X: v.(ast.Expr)}
	})

	// A statement ends at a newline, at the end of input, or just before
	// a block-closing keyword.
	lineEnd := Alternate("end of statement",
		Tag(token.NEWLINE),
		Lookahead(Keyword(token.END)),
		Lookahead(Keyword(token.ELSE)),
		EndOfInput())

	// A line is either blank or one statement with its terminator.
	line := Alternate("statement",
		Process(Tag(token.NEWLINE), func(any) any { return nil }),
		Process(Concat("statement", stmtRef, lineEnd), func(v any) any {
			return v.([]any)[0]
		}),
	)

	block := Process(Rep(line), func(v any) any {
		stmts := []ast.Stmt{}
		for _, raw := range asSlice(v) {
			if raw != nil {
				stmts = append(stmts, raw.(ast.Stmt))
			}
		}
		return stmts
	})

	elseBlock := Process(
		Concat(`"else"`, Keyword(token.ELSE), block),
		func(v any) any { return v.([]any)[1] })

	// Commit after the opening keyword: running out of tokens in an open
	// block reports NeedMore instead of failing the alternative.
	ifStmt := Process(
		Commit("if statement", 1,
			Keyword(token.IF), exprRef, block, Optional(elseBlock), Keyword(token.END)),
		func(v any) any {
			parts := v.([]any)
			stmt := &ast.If{
				Tok:         parts[0].(token.Token),
				Cond:        parts[1].(ast.Expr),
				Consequence: parts[2].([]ast.Stmt),
			}
			if parts[3] != nil {
				stmt.Alternative = parts[3].([]ast.Stmt)
			}
			return stmt
		})

	whileStmt := Process(
		Commit("while statement", 1,
			Keyword(token.WHILE), exprRef, block, Keyword(token.END)),
		func(v any) any {
			parts := v.([]any)
			return &ast.While{
				Tok:  parts[0].(token.Token),
				Cond: parts[1].(ast.Expr),
				Body: parts[2].([]ast.Stmt),
			}
		})

	statement = Alternate("statement", assign, ifStmt, whileStmt, exprStmt)

	program = block
}

// infixLevel builds one precedence level, next (op next)*, folded into
// left-associative Infix nodes.
func infixLevel(name string, opRule Rule, operand Rule) Rule {
	return Process(
		Concat(name, operand, Rep(Concat(name, opRule, operand))),
		func(v any) any {
			parts := v.([]any)
			x := parts[0].(ast.Expr)
			for _, raw := range asSlice(parts[1]) {
				pair := raw.([]any)
				opTok := pair[0].(token.Token)
				x = &ast.Infix{X: x, Tok: opTok, Op: opTok.Literal, Y: pair[1].(ast.Expr)}
			}
			return x
		})
}

func asSlice(v any) []any {
	if v == nil {
		return nil
	}
	return v.([]any)
}
