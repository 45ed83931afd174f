package ast

import (
	"bytes"

	"github.com/willowmere/scribe/token"
)

// Assign is a "name = expr" statement.
type Assign struct {
	Tok   token.Token // the variable name token
	Name  string
	Value Expr
}

func (s *Assign) stmtNode() {}

func (s *Assign) Token() token.Token { return s.Tok }

func (s *Assign) String() string {
	return s.Name + " = " + s.Value.String()
}

// ExprStmt is an expression used in statement position, such as a bare
// call: "print(msg)".
type ExprStmt struct {
	X Expr
}

func (s *ExprStmt) stmtNode() {}

func (s *ExprStmt) Token() token.Token { return s.X.Token() }
func (s *ExprStmt) String() string     { return s.X.String() }

// If is an "if <cond> <block> [else <block>] end" statement.
type If struct {
	Tok         token.Token // the "if" token
	Cond        Expr
	Consequence []Stmt
	Alternative []Stmt // nil when there is no else branch
}

func (s *If) stmtNode() {}

func (s *If) Token() token.Token { return s.Tok }

func (s *If) String() string {
	var out bytes.Buffer
	out.WriteString("if ")
	out.WriteString(s.Cond.String())
	writeBlock(&out, s.Consequence)
	if s.Alternative != nil {
		out.WriteString(" else")
		writeBlock(&out, s.Alternative)
	}
	out.WriteString(" end")
	return out.String()
}

// While is a "while <cond> <block> end" statement.
type While struct {
	Tok  token.Token // the "while" token
	Cond Expr
	Body []Stmt
}

func (s *While) stmtNode() {}

func (s *While) Token() token.Token { return s.Tok }

func (s *While) String() string {
	var out bytes.Buffer
	out.WriteString("while ")
	out.WriteString(s.Cond.String())
	writeBlock(&out, s.Body)
	out.WriteString(" end")
	return out.String()
}

func writeBlock(out *bytes.Buffer, stmts []Stmt) {
	for _, stmt := range stmts {
		out.WriteString(" ")
		out.WriteString(stmt.String())
	}
}
