// Package dis disassembles compiled Scribe code for authoring and debug
// tooling.
package dis

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/willowmere/scribe/compiler"
	"github.com/willowmere/scribe/op"
)

// Disassemble writes a table of the instruction sequence: index, opcode
// name, and operands, with jump targets annotated.
func Disassemble(code *compiler.Code, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "IDX\tOPCODE\tOPERANDS")
	for i := 0; i < code.Len(); i++ {
		instr := code.At(i)
		info := op.GetInfo(instr.Op)
		fmt.Fprintf(tw, "%d\t%s\t%s\n", i, info.Name, operands(instr, info))
	}
	return tw.Flush()
}

func operands(instr compiler.Instruction, info op.Info) string {
	switch info.Operands {
	case op.OperandConst:
		return instr.Const.Inspect()
	case op.OperandName:
		return instr.Name
	case op.OperandTarget:
		return fmt.Sprintf("-> %d", instr.Target)
	case op.OperandsCall:
		return fmt.Sprintf("%s/%d", instr.Name, instr.NumArgs)
	}
	return ""
}
