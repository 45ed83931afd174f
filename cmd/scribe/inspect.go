package main

import (
	"fmt"

	prettyjson "github.com/hokaccha/go-prettyjson"
	"github.com/spf13/cobra"

	scribe "github.com/willowmere/scribe"
	"github.com/willowmere/scribe/ast"
	"github.com/willowmere/scribe/dis"
)

func astCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ast [file]",
		Short: "Print the syntax tree of a script",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(cmd, args)
			if err != nil {
				return err
			}
			program, err := scribe.Parse(src)
			if err != nil {
				return err
			}
			asJSON, _ := cmd.Flags().GetBool("json")
			if !asJSON {
				fmt.Fprintln(cmd.OutOrStdout(), program.String())
				return nil
			}
			out, err := prettyjson.Marshal(astTree(program))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	cmd.Flags().StringP("code", "c", "", "script source to inspect")
	cmd.Flags().Bool("json", false, "print the tree as JSON")
	return cmd
}

func disCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dis [file]",
		Short: "Disassemble a compiled script",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(cmd, args)
			if err != nil {
				return err
			}
			code, err := scribe.Compile(src)
			if err != nil {
				return err
			}
			return dis.Disassemble(code, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringP("code", "c", "", "script source to disassemble")
	return cmd
}

// astTree converts the AST into plain maps for JSON rendering.
func astTree(node ast.Node) any {
	switch node := node.(type) {
	case *ast.Program:
		stmts := make([]any, 0, len(node.Stmts))
		for _, s := range node.Stmts {
			stmts = append(stmts, astTree(s))
		}
		return map[string]any{"node": "program", "stmts": stmts}
	case *ast.Assign:
		return map[string]any{"node": "assign", "name": node.Name, "value": astTree(node.Value)}
	case *ast.ExprStmt:
		return map[string]any{"node": "expr_stmt", "expr": astTree(node.X)}
	case *ast.If:
		tree := map[string]any{
			"node":        "if",
			"cond":        astTree(node.Cond),
			"consequence": stmtsTree(node.Consequence),
		}
		if node.Alternative != nil {
			tree["alternative"] = stmtsTree(node.Alternative)
		}
		return tree
	case *ast.While:
		return map[string]any{
			"node": "while",
			"cond": astTree(node.Cond),
			"body": stmtsTree(node.Body),
		}
	case *ast.Infix:
		return map[string]any{
			"node": "infix", "op": node.Op,
			"left": astTree(node.X), "right": astTree(node.Y),
		}
	case *ast.Prefix:
		return map[string]any{"node": "prefix", "op": node.Op, "operand": astTree(node.X)}
	case *ast.Call:
		args := make([]any, 0, len(node.Args))
		for _, arg := range node.Args {
			args = append(args, astTree(arg))
		}
		return map[string]any{"node": "call", "name": node.Name, "args": args}
	case *ast.GetAttr:
		return map[string]any{"node": "attr", "object": astTree(node.Object), "name": node.Name}
	case *ast.Ident:
		return map[string]any{"node": "ident", "name": node.Name}
	case *ast.Int:
		return map[string]any{"node": "int", "value": node.Value}
	case *ast.Float:
		return map[string]any{"node": "float", "value": node.Value}
	case *ast.String:
		return map[string]any{"node": "string", "value": node.Value}
	case *ast.Bool:
		return map[string]any{"node": "bool", "value": node.Value}
	}
	return map[string]any{"node": fmt.Sprintf("%T", node)}
}

func stmtsTree(stmts []ast.Stmt) []any {
	out := make([]any, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, astTree(s))
	}
	return out
}
