package ast

import (
	"bytes"
	"strings"

	"github.com/willowmere/scribe/token"
)

// Ident is an expression node that refers to a variable by name.
type Ident struct {
	Tok  token.Token
	Name string
}

func (x *Ident) exprNode() {}

func (x *Ident) Token() token.Token { return x.Tok }
func (x *Ident) String() string     { return x.Name }

// Int is an integer literal.
type Int struct {
	Tok   token.Token
	Value int64
}

func (x *Int) exprNode() {}

func (x *Int) Token() token.Token { return x.Tok }
func (x *Int) String() string     { return x.Tok.Literal }

// Float is a floating point literal.
type Float struct {
	Tok   token.Token
	Value float64
}

func (x *Float) exprNode() {}

func (x *Float) Token() token.Token { return x.Tok }
func (x *Float) String() string     { return x.Tok.Literal }

// String is a string literal. Value holds the text without the enclosing
// quotes.
type String struct {
	Tok   token.Token
	Value string
}

func (x *String) exprNode() {}

func (x *String) Token() token.Token { return x.Tok }
func (x *String) String() string     { return x.Tok.Literal }

// Bool is a "true" or "false" literal.
type Bool struct {
	Tok   token.Token
	Value bool
}

func (x *Bool) exprNode() {}

func (x *Bool) Token() token.Token { return x.Tok }
func (x *Bool) String() string     { return x.Tok.Literal }

// Prefix is an operator expression where the operator precedes the
// operand: "-x" or "not flag".
type Prefix struct {
	Tok token.Token // the operator token
	Op  string      // "-" or "not"
	X   Expr
}

func (x *Prefix) exprNode() {}

func (x *Prefix) Token() token.Token { return x.Tok }

func (x *Prefix) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(x.Op)
	if x.Op == token.NOT {
		out.WriteString(" ")
	}
	out.WriteString(x.X.String())
	out.WriteString(")")
	return out.String()
}

// Infix is an operator expression with the operator between the operands:
// "x + y", "a == b", "p and q".
type Infix struct {
	X   Expr
	Tok token.Token // the operator token
	Op  string
	Y   Expr
}

func (x *Infix) exprNode() {}

func (x *Infix) Token() token.Token { return x.X.Token() }

func (x *Infix) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(x.X.String())
	out.WriteString(" ")
	out.WriteString(x.Op)
	out.WriteString(" ")
	out.WriteString(x.Y.String())
	out.WriteString(")")
	return out.String()
}

// GetAttr is a dotted attribute access: "character.health". Object may
// itself be a GetAttr, so "a.b.c" nests left-to-right.
type GetAttr struct {
	Object Expr
	Tok    token.Token // the attribute name token
	Name   string
}

func (x *GetAttr) exprNode() {}

func (x *GetAttr) Token() token.Token { return x.Object.Token() }

func (x *GetAttr) String() string {
	return x.Object.String() + "." + x.Name
}

// Call is a function invocation with a fixed number of arguments. The
// callee name is resolved through the namespace chain at execution time.
type Call struct {
	Tok  token.Token // the function name token
	Name string
	Args []Expr
}

func (x *Call) exprNode() {}

func (x *Call) Token() token.Token { return x.Tok }

func (x *Call) String() string {
	args := make([]string, 0, len(x.Args))
	for _, arg := range x.Args {
		args = append(args, arg.String())
	}
	return x.Name + "(" + strings.Join(args, ", ") + ")"
}
