// Package ast defines the abstract syntax tree representation of Scribe
// scripts.
//
// The tree is a pure tree: each node exclusively owns its children, there
// are no back-edges or shared subtrees, and the whole structure is
// discarded with the script that owns it.
package ast

import (
	"bytes"

	"github.com/willowmere/scribe/token"
)

// Node represents a portion of the syntax tree.
type Node interface {
	// Token returns the first token belonging to the node, used for
	// diagnostics.
	Token() token.Token

	// String returns a human friendly representation of the node. This
	// should be similar to the original source code, but not necessarily
	// identical.
	String() string
}

// Stmt represents a statement node. Statements cause side effects but do
// not evaluate to a value.
type Stmt interface {
	Node
	stmtNode()
}

// Expr represents an expression node. Expressions evaluate to a value and
// may be embedded within other expressions.
type Expr interface {
	Node
	exprNode()
}

// Program is the root node: an ordered sequence of statements.
type Program struct {
	Stmts []Stmt
}

func (p *Program) Token() token.Token {
	if len(p.Stmts) == 0 {
		return token.Token{}
	}
	return p.Stmts[0].Token()
}

func (p *Program) String() string {
	var out bytes.Buffer
	for i, stmt := range p.Stmts {
		if i > 0 {
			out.WriteString("\n")
		}
		out.WriteString(stmt.String())
	}
	return out.String()
}
