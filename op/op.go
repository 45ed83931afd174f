// Package op defines the opcodes executed by the Scribe virtual machine.
package op

// Code is an integer opcode that indicates an operation to execute.
type Code uint16

const (
	Invalid Code = 0

	// Arithmetic: pop two operands, push one result
	Add Code = 1
	Sub Code = 2
	Mul Code = 3
	Div Code = 4

	// Unary: pop one operand, push one result
	Neg Code = 10
	Not Code = 11

	// Comparison: pop two operands, push a bool
	Eq Code = 20
	Ne Code = 21
	Lt Code = 22
	Le Code = 23
	Gt Code = 24
	Ge Code = 25

	// Control flow. Jump targets are absolute indices into the same
	// instruction sequence, resolved at compile time. IfTrue and IfFalse
	// pop the condition.
	Goto    Code = 30
	IfTrue  Code = 31
	IfFalse Code = 32

	// Values and variables
	Const Code = 40 // push a literal
	Value Code = 41 // push the value of a named variable
	Store Code = 42 // pop into a named variable

	// Call pops a fixed number of arguments, resolves the callee through
	// the namespace chain, invokes it, and pushes the result. A call may
	// suspend the executing script instead of returning.
	Call Code = 50
)

// Info contains information about an opcode.
type Info struct {
	Code     Code
	Name     string
	Operands OperandKind
}

// OperandKind describes which literal operands an instruction carries.
type OperandKind int

const (
	OperandsNone   OperandKind = iota
	OperandConst               // a literal value
	OperandName                // a variable name
	OperandTarget              // an absolute jump target
	OperandsCall               // a callee name and an argument count
)

var infos = make([]Info, 64)

func init() {
	ops := []Info{
		{Add, "ADD", OperandsNone},
		{Sub, "SUB", OperandsNone},
		{Mul, "MUL", OperandsNone},
		{Div, "DIV", OperandsNone},
		{Neg, "NEG", OperandsNone},
		{Not, "NOT", OperandsNone},
		{Eq, "EQ", OperandsNone},
		{Ne, "NE", OperandsNone},
		{Lt, "LT", OperandsNone},
		{Le, "LE", OperandsNone},
		{Gt, "GT", OperandsNone},
		{Ge, "GE", OperandsNone},
		{Goto, "GOTO", OperandTarget},
		{IfTrue, "IFTRUE", OperandTarget},
		{IfFalse, "IFFALSE", OperandTarget},
		{Const, "CONST", OperandConst},
		{Value, "VALUE", OperandName},
		{Store, "STORE", OperandName},
		{Call, "CALL", OperandsCall},
	}
	for _, o := range ops {
		infos[o.Code] = o
	}
}

// GetInfo returns information about the given opcode.
func GetInfo(code Code) Info {
	return infos[code]
}
