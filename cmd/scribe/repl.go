package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	scribe "github.com/willowmere/scribe"
	"github.com/willowmere/scribe/errz"
	"github.com/willowmere/scribe/object"
)

func replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive script console",
		RunE: func(cmd *cobra.Command, args []string) error {
			return repl(cmd)
		},
	}
}

func repl(cmd *cobra.Command) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          color.CyanString(">> "),
		HistoryFile:     "/tmp/scribe_history",
		InterruptPrompt: "^C",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Fprintf(rl.Stdout(), "scribe %s (end with an empty line, ctrl-d to exit)\n", version)

	// Variables persist across inputs, so assignments in one entry are
	// visible to the next.
	vars := map[string]any{}

	var pending []string
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			pending = nil
			rl.SetPrompt(color.CyanString(">> "))
			continue
		}
		if err != nil {
			// io.EOF on ctrl-d
			return nil
		}
		pending = append(pending, line)
		src := strings.Join(pending, "\n")

		script, err := scribe.CreateScript(src, scribe.WithVariables(vars))
		if err != nil {
			var needMore *errz.NeedMore
			if errors.As(err, &needMore) {
				// Unfinished block: keep reading continuation lines.
				rl.SetPrompt(color.CyanString(".. "))
				continue
			}
			pending = nil
			rl.SetPrompt(color.CyanString(">> "))
			var parseErr *errz.ParseError
			if errors.As(err, &parseErr) {
				fmt.Fprint(rl.Stderr(), color.RedString(parseErr.FriendlyErrorMessage()))
			} else {
				fmt.Fprintln(rl.Stderr(), color.RedString("error: %v", err))
			}
			continue
		}
		pending = nil
		rl.SetPrompt(color.CyanString(">> "))

		if err := drive(cmd.Context(), script); err != nil {
			fmt.Fprintln(rl.Stderr(), color.RedString("error: %v", err))
			continue
		}
		for name, value := range script.Variables() {
			vars[name] = value
		}
		if result := script.Result(); result != object.Nil {
			fmt.Fprintln(rl.Stdout(), color.GreenString(result.Inspect()))
		}
	}
}
