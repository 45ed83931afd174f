package compiler

import (
	"fmt"
	"strings"

	"github.com/willowmere/scribe/object"
	"github.com/willowmere/scribe/op"
)

// Instruction is one opcode with its literal operands. At most two
// operand fields are meaningful for any opcode; which ones is described
// by op.GetInfo.
type Instruction struct {
	Op op.Code

	// Const is the literal pushed by CONST.
	Const object.Object

	// Name is the variable name for VALUE and STORE, or the callee path
	// for CALL. A dotted name resolves through the namespace chain.
	Name string

	// Target is the absolute instruction index for GOTO, IFTRUE and
	// IFFALSE, resolved at compile time.
	Target int

	// NumArgs is the fixed argument count for CALL.
	NumArgs int
}

// String returns a disassembly-style rendering of the instruction.
func (instr Instruction) String() string {
	info := op.GetInfo(instr.Op)
	switch info.Operands {
	case op.OperandConst:
		return fmt.Sprintf("%s %s", info.Name, instr.Const.Inspect())
	case op.OperandName:
		return fmt.Sprintf("%s %s", info.Name, instr.Name)
	case op.OperandTarget:
		return fmt.Sprintf("%s %d", info.Name, instr.Target)
	case op.OperandsCall:
		return fmt.Sprintf("%s %s %d", info.Name, instr.Name, instr.NumArgs)
	}
	return info.Name
}

// Code is the compiled form of one script: a flat, ordered instruction
// sequence. It is append-only during compilation and immutable once the
// compiler returns it; any number of Scripts may execute the same Code
// concurrently.
type Code struct {
	instrs []Instruction
	source string
}

// Len returns the number of instructions.
func (c *Code) Len() int {
	return len(c.instrs)
}

// At returns the instruction at the given index.
func (c *Code) At(index int) Instruction {
	return c.instrs[index]
}

// Source returns the source text the code was compiled from, when known.
func (c *Code) Source() string {
	return c.source
}

// String returns the full disassembly, one instruction per line.
func (c *Code) String() string {
	var out strings.Builder
	for i, instr := range c.instrs {
		fmt.Fprintf(&out, "%4d  %s\n", i, instr.String())
	}
	return out.String()
}
