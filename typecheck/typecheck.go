// Package typecheck implements the optional pre-execution type checking
// pass over a script's AST.
//
// The checker infers static types for sub-expressions and validates them
// against the variable types declared for the triggering event. Running it
// trades a little up-front cost for failing before any instruction runs,
// so a badly-typed script cannot leave partially-applied side effects
// behind. Skipping the pass is a supported trade-off: execution is then
// free to fail mid-run, or to produce inconsistent results on badly-typed
// input, instead of reporting a clean TypeError.
package typecheck

import (
	"strconv"
	"strings"

	"github.com/willowmere/scribe/ast"
	"github.com/willowmere/scribe/errz"
	"github.com/willowmere/scribe/namespace"
	"github.com/willowmere/scribe/object"
	"github.com/willowmere/scribe/token"
)

// Unknown marks a type the checker cannot determine statically, such as
// the result of a host call. Unknown values pass every check; errors they
// would cause surface at runtime instead.
const Unknown object.Type = "unknown"

// Checker validates one script against a set of declared variable types.
type Checker struct {
	vars     map[string]object.Type
	kinds    map[string]string // variable name -> host object kind
	registry *namespace.Registry
	builtins namespace.Namespace
}

// Option configures a Checker.
type Option func(*Checker)

// WithVariableTypes declares the types of variables the script may assume
// are present, typically from the triggering event's declaration.
func WithVariableTypes(types map[string]object.Type) Option {
	return func(c *Checker) {
		for name, typ := range types {
			c.vars[name] = typ
		}
	}
}

// WithHostKinds declares which variables hold host objects of which kind,
// letting the checker validate attribute access against the kind's
// registered representation.
func WithHostKinds(kinds map[string]string, registry *namespace.Registry) Option {
	return func(c *Checker) {
		for name, kind := range kinds {
			c.kinds[name] = kind
			c.vars[name] = object.HOST
		}
		c.registry = registry
	}
}

// WithBuiltins supplies the namespace of callable builtins, so unknown
// function names are rejected before execution.
func WithBuiltins(ns namespace.Namespace) Option {
	return func(c *Checker) {
		c.builtins = ns
	}
}

// New creates a Checker.
func New(opts ...Option) *Checker {
	c := &Checker{
		vars:  map[string]object.Type{},
		kinds: map[string]string{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check walks the program and returns a *errz.TypeError on the first
// inconsistency found.
func (c *Checker) Check(program *ast.Program) error {
	return c.checkStmts(program.Stmts)
}

func (c *Checker) checkStmts(stmts []ast.Stmt) error {
	for _, stmt := range stmts {
		if err := c.checkStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (c *Checker) checkStmt(stmt ast.Stmt) error {
	switch stmt := stmt.(type) {
	case *ast.Assign:
		typ, err := c.inferExpr(stmt.Value)
		if err != nil {
			return err
		}
		c.vars[stmt.Name] = typ
		return nil
	case *ast.ExprStmt:
		_, err := c.inferExpr(stmt.X)
		return err
	case *ast.If:
		// Conditions accept any type; execution coerces truthiness.
		if _, err := c.inferExpr(stmt.Cond); err != nil {
			return err
		}
		if err := c.checkStmts(stmt.Consequence); err != nil {
			return err
		}
		return c.checkStmts(stmt.Alternative)
	case *ast.While:
		if _, err := c.inferExpr(stmt.Cond); err != nil {
			return err
		}
		return c.checkStmts(stmt.Body)
	}
	return errz.TypeErrorf("unsupported statement: %s", stmt.String())
}

func (c *Checker) inferExpr(expr ast.Expr) (object.Type, error) {
	switch expr := expr.(type) {
	case *ast.Int:
		return object.INT, nil
	case *ast.Float:
		return object.FLOAT, nil
	case *ast.String:
		return object.STRING, nil
	case *ast.Bool:
		return object.BOOL, nil
	case *ast.Ident:
		if typ, ok := c.vars[expr.Name]; ok {
			return typ, nil
		}
		return "", typeError(expr.Tok, "undefined variable %q", expr.Name)
	case *ast.Prefix:
		return c.inferPrefix(expr)
	case *ast.Infix:
		return c.inferInfix(expr)
	case *ast.GetAttr:
		return c.inferGetAttr(expr)
	case *ast.Call:
		return c.inferCall(expr)
	}
	return "", errz.TypeErrorf("unsupported expression: %s", expr.String())
}

func (c *Checker) inferPrefix(expr *ast.Prefix) (object.Type, error) {
	typ, err := c.inferExpr(expr.X)
	if err != nil {
		return "", err
	}
	if expr.Op == token.NOT {
		// "not" coerces any operand to its boolean truthiness first.
		return object.BOOL, nil
	}
	switch typ {
	case object.INT, object.FLOAT, Unknown:
		return typ, nil
	}
	return "", typeError(expr.Tok, "cannot negate %s", typ)
}

func (c *Checker) inferInfix(expr *ast.Infix) (object.Type, error) {
	left, err := c.inferExpr(expr.X)
	if err != nil {
		return "", err
	}
	right, err := c.inferExpr(expr.Y)
	if err != nil {
		return "", err
	}
	switch expr.Op {
	case token.AND, token.OR:
		return object.BOOL, nil
	case token.EQ, token.NOT_EQ:
		return object.BOOL, nil
	case token.LT, token.LT_EQ, token.GT, token.GT_EQ:
		if comparable(left, right) {
			return object.BOOL, nil
		}
		return "", typeError(expr.Tok, "cannot compare %s and %s", left, right)
	case token.PLUS:
		if left == object.STRING && right == object.STRING {
			return object.STRING, nil
		}
		fallthrough
	case token.MINUS, token.ASTERISK, token.SLASH:
		return c.inferArithmetic(expr, left, right)
	}
	return "", typeError(expr.Tok, "unsupported operator %q", expr.Op)
}

func (c *Checker) inferArithmetic(expr *ast.Infix, left, right object.Type) (object.Type, error) {
	if left == Unknown || right == Unknown {
		return Unknown, nil
	}
	if !numeric(left) || !numeric(right) {
		return "", typeError(expr.Tok,
			"unsupported operand types for %q: %s and %s", expr.Op, left, right)
	}
	if left == object.FLOAT || right == object.FLOAT {
		return object.FLOAT, nil
	}
	return object.INT, nil
}

func (c *Checker) inferGetAttr(expr *ast.GetAttr) (object.Type, error) {
	typ, err := c.inferExpr(expr.Object)
	if err != nil {
		return "", err
	}
	if typ != object.HOST && typ != Unknown {
		return "", typeError(expr.Tok, "%s has no attributes", typ)
	}
	// When the base is a variable with a declared host kind, the attribute
	// name can be validated against the kind's capability table.
	if ident, ok := expr.Object.(*ast.Ident); ok && c.registry != nil {
		if kind, ok := c.kinds[ident.Name]; ok {
			rep, found := c.registry.Lookup(kind)
			if !found {
				return "", typeError(expr.Tok, "no representation for kind %q", kind)
			}
			if !exposes(rep, expr.Name) {
				return "", typeError(expr.Tok,
					"%s objects do not expose %q", kind, expr.Name)
			}
		}
	}
	return Unknown, nil
}

func (c *Checker) inferCall(expr *ast.Call) (object.Type, error) {
	for _, arg := range expr.Args {
		if _, err := c.inferExpr(arg); err != nil {
			return "", err
		}
	}
	if head, rest, dotted := strings.Cut(expr.Name, "."); dotted {
		// A dotted callee is a host object method. The head must be a known
		// variable; a single-level method name on a declared kind is
		// validated against the capability table.
		if _, ok := c.vars[head]; !ok {
			return "", typeError(expr.Tok, "undefined variable %q", head)
		}
		if kind, ok := c.kinds[head]; ok && c.registry != nil && !strings.Contains(rest, ".") {
			rep, found := c.registry.Lookup(kind)
			if !found {
				return "", typeError(expr.Tok, "no representation for kind %q", kind)
			}
			if !exposes(rep, rest) {
				return "", typeError(expr.Tok, "%s objects do not expose %q", kind, rest)
			}
		}
		return Unknown, nil
	}
	if c.builtins != nil {
		if _, ok := c.builtins.Resolve(expr.Name); !ok {
			if _, ok := c.vars[expr.Name]; !ok {
				return "", typeError(expr.Tok, "unknown function %q", expr.Name)
			}
		}
	}
	return Unknown, nil
}

func exposes(rep *namespace.Representation, name string) bool {
	for _, n := range rep.Names() {
		if n == name {
			return true
		}
	}
	return false
}

func numeric(typ object.Type) bool {
	return typ == object.INT || typ == object.FLOAT
}

func comparable(left, right object.Type) bool {
	if left == Unknown || right == Unknown {
		return true
	}
	if numeric(left) && numeric(right) {
		return true
	}
	return left == object.STRING && right == object.STRING
}

func typeError(tok token.Token, format string, args ...any) error {
	err := errz.TypeErrorf(format, args...)
	err.Message += " (line " + strconv.Itoa(tok.LineNumber()) + ")"
	return err
}
