// Package compiler flattens a Scribe AST into the linear instruction
// sequence executed by the virtual machine.
//
// The flatten is structure preserving and post-order: operands are
// emitted before the operators that combine them, so the result is
// directly executable by a stack machine. Control flow uses absolute jump
// targets within the same sequence; jumps are emitted with a placeholder
// operand and patched once the position they refer to is known, which is
// what makes the flat form safe to interrupt and resume at any
// instruction boundary.
package compiler

import (
	"fmt"

	"github.com/willowmere/scribe/ast"
	"github.com/willowmere/scribe/object"
	"github.com/willowmere/scribe/op"
	"github.com/willowmere/scribe/token"
)

// Placeholder is a temporary jump target written during compilation. It
// is always replaced before compilation completes.
const Placeholder = -1

// ResultVar is the reserved variable receiving the value of each bare
// expression statement. Storing into it keeps the evaluation stack empty
// at every statement boundary, and lets hosts read the value of an
// expression script after it completes.
const ResultVar = "_"

// Compile flattens the program into executable code.
func Compile(program *ast.Program) (*Code, error) {
	c := &compiler{}
	for _, stmt := range program.Stmts {
		if err := c.compileStmt(stmt); err != nil {
			return nil, err
		}
	}
	return &Code{instrs: c.instrs, source: program.String()}, nil
}

type compiler struct {
	instrs []Instruction
}

// emit appends an instruction and returns its index.
func (c *compiler) emit(instr Instruction) int {
	c.instrs = append(c.instrs, instr)
	return len(c.instrs) - 1
}

// patch replaces the placeholder jump target of the instruction at pos.
func (c *compiler) patch(pos, target int) {
	c.instrs[pos].Target = target
}

// next returns the index the next emitted instruction will have.
func (c *compiler) next() int {
	return len(c.instrs)
}

func (c *compiler) compileStmt(stmt ast.Stmt) error {
	switch stmt := stmt.(type) {
	case *ast.Assign:
		if err := c.compileExpr(stmt.Value); err != nil {
			return err
		}
		c.emit(Instruction{Op: op.Store, Name: stmt.Name})
		return nil
	case *ast.ExprStmt:
		if err := c.compileExpr(stmt.X); err != nil {
			return err
		}
		c.emit(Instruction{Op: op.Store, Name: ResultVar})
		return nil
	case *ast.If:
		return c.compileIf(stmt)
	case *ast.While:
		return c.compileWhile(stmt)
	}
	return fmt.Errorf("compile error: unsupported statement: %s", stmt.String())
}

func (c *compiler) compileIf(stmt *ast.If) error {
	if err := c.compileExpr(stmt.Cond); err != nil {
		return err
	}
	skipConseq := c.emit(Instruction{Op: op.IfFalse, Target: Placeholder})
	for _, s := range stmt.Consequence {
		if err := c.compileStmt(s); err != nil {
			return err
		}
	}
	if stmt.Alternative == nil {
		c.patch(skipConseq, c.next())
		return nil
	}
	skipAlt := c.emit(Instruction{Op: op.Goto, Target: Placeholder})
	c.patch(skipConseq, c.next())
	for _, s := range stmt.Alternative {
		if err := c.compileStmt(s); err != nil {
			return err
		}
	}
	c.patch(skipAlt, c.next())
	return nil
}

func (c *compiler) compileWhile(stmt *ast.While) error {
	start := c.next()
	if err := c.compileExpr(stmt.Cond); err != nil {
		return err
	}
	exit := c.emit(Instruction{Op: op.IfFalse, Target: Placeholder})
	for _, s := range stmt.Body {
		if err := c.compileStmt(s); err != nil {
			return err
		}
	}
	c.emit(Instruction{Op: op.Goto, Target: start})
	c.patch(exit, c.next())
	return nil
}

func (c *compiler) compileExpr(expr ast.Expr) error {
	switch expr := expr.(type) {
	case *ast.Int:
		c.emit(Instruction{Op: op.Const, Const: object.NewInt(expr.Value)})
		return nil
	case *ast.Float:
		c.emit(Instruction{Op: op.Const, Const: object.NewFloat(expr.Value)})
		return nil
	case *ast.String:
		c.emit(Instruction{Op: op.Const, Const: object.NewString(expr.Value)})
		return nil
	case *ast.Bool:
		c.emit(Instruction{Op: op.Const, Const: object.NewBool(expr.Value)})
		return nil
	case *ast.Ident:
		c.emit(Instruction{Op: op.Value, Name: expr.Name})
		return nil
	case *ast.GetAttr:
		return c.compileGetAttr(expr)
	case *ast.Prefix:
		return c.compilePrefix(expr)
	case *ast.Infix:
		return c.compileInfix(expr)
	case *ast.Call:
		return c.compileCall(expr)
	}
	return fmt.Errorf("compile error: unsupported expression: %s", expr.String())
}

func (c *compiler) compilePrefix(expr *ast.Prefix) error {
	if err := c.compileExpr(expr.X); err != nil {
		return err
	}
	switch expr.Op {
	case token.MINUS:
		c.emit(Instruction{Op: op.Neg})
	case token.NOT:
		c.emit(Instruction{Op: op.Not})
	default:
		return fmt.Errorf("compile error: unsupported prefix operator %q", expr.Op)
	}
	return nil
}

var infixOpcodes = map[string]op.Code{
	token.PLUS:     op.Add,
	token.MINUS:    op.Sub,
	token.ASTERISK: op.Mul,
	token.SLASH:    op.Div,
	token.EQ:       op.Eq,
	token.NOT_EQ:   op.Ne,
	token.LT:       op.Lt,
	token.LT_EQ:    op.Le,
	token.GT:       op.Gt,
	token.GT_EQ:    op.Ge,
}

func (c *compiler) compileInfix(expr *ast.Infix) error {
	switch expr.Op {
	case token.AND, token.OR:
		return c.compileLogical(expr)
	}
	code, ok := infixOpcodes[expr.Op]
	if !ok {
		return fmt.Errorf("compile error: unsupported operator %q", expr.Op)
	}
	if err := c.compileExpr(expr.X); err != nil {
		return err
	}
	if err := c.compileExpr(expr.Y); err != nil {
		return err
	}
	c.emit(Instruction{Op: code})
	return nil
}

// compileLogical emits short-circuit evaluation for "and" and "or" using
// conditional jumps, since the instruction set has no logical opcodes.
// The result is always a bool.
func (c *compiler) compileLogical(expr *ast.Infix) error {
	shortCircuit := op.IfFalse
	if expr.Op == token.OR {
		shortCircuit = op.IfTrue
	}
	if err := c.compileExpr(expr.X); err != nil {
		return err
	}
	jumpX := c.emit(Instruction{Op: shortCircuit, Target: Placeholder})
	if err := c.compileExpr(expr.Y); err != nil {
		return err
	}
	jumpY := c.emit(Instruction{Op: shortCircuit, Target: Placeholder})

	// Fallthrough: neither operand short-circuited.
	fallthroughResult := object.True
	shortCircuitResult := object.False
	if expr.Op == token.OR {
		fallthroughResult, shortCircuitResult = object.False, object.True
	}
	c.emit(Instruction{Op: op.Const, Const: fallthroughResult})
	done := c.emit(Instruction{Op: op.Goto, Target: Placeholder})
	c.patch(jumpX, c.next())
	c.patch(jumpY, c.next())
	c.emit(Instruction{Op: op.Const, Const: shortCircuitResult})
	c.patch(done, c.next())
	return nil
}

// compileGetAttr flattens a chain of attribute accesses rooted at a
// variable into a single VALUE instruction with a dotted name; the VM
// resolves the path through the namespace chain and the representation
// layer. Attribute access on computed values has no opcode and is
// rejected here.
func (c *compiler) compileGetAttr(expr *ast.GetAttr) error {
	path, ok := attrPath(expr)
	if !ok {
		return fmt.Errorf("compile error: attribute access requires a variable, got %s",
			expr.Object.String())
	}
	c.emit(Instruction{Op: op.Value, Name: path})
	return nil
}

func attrPath(expr ast.Expr) (string, bool) {
	switch expr := expr.(type) {
	case *ast.Ident:
		return expr.Name, true
	case *ast.GetAttr:
		base, ok := attrPath(expr.Object)
		if !ok {
			return "", false
		}
		return base + "." + expr.Name, true
	}
	return "", false
}

func (c *compiler) compileCall(expr *ast.Call) error {
	// Arguments are pushed in declaration order; the VM pops them back
	// into order at call time.
	for _, arg := range expr.Args {
		if err := c.compileExpr(arg); err != nil {
			return err
		}
	}
	c.emit(Instruction{Op: op.Call, Name: expr.Name, NumArgs: len(expr.Args)})
	return nil
}
