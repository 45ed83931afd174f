// Package builtins provides the top-level functions available to every
// Scribe script.
package builtins

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/willowmere/scribe/errz"
	"github.com/willowmere/scribe/format"
	"github.com/willowmere/scribe/namespace"
	"github.com/willowmere/scribe/object"
)

// Config customizes the builtin namespace.
type Config struct {
	// Output receives print output. Defaults to os.Stdout.
	Output io.Writer

	// Vars, when set, is consulted by the say builtin for placeholder
	// substitution. Hosts pass the executing script's variable view.
	Vars func() map[string]object.Object
}

// Namespace builds the builtin function namespace.
func Namespace(cfg Config) namespace.Namespace {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	ns := namespace.Map{
		"print": object.NewBuiltin("print", printFunc(out)),
		"str":   object.NewBuiltin("str", strFunc),
		"int":   object.NewBuiltin("int", intFunc),
		"sleep": object.NewBuiltin("sleep", sleepFunc),
	}
	if cfg.Vars != nil {
		ns["say"] = object.NewBuiltin("say", sayFunc(out, cfg.Vars))
	}
	return ns
}

// printFunc writes its arguments separated by spaces, followed by a
// newline. Strings print bare, other values in their inspect form.
func printFunc(out io.Writer) object.BuiltinFunction {
	return func(ctx context.Context, args ...object.Object) (object.Object, error) {
		parts := make([]string, 0, len(args))
		for _, arg := range args {
			if s, ok := arg.(*object.String); ok {
				parts = append(parts, s.Value())
			} else {
				parts = append(parts, arg.Inspect())
			}
		}
		fmt.Fprintln(out, strings.Join(parts, " "))
		return object.Nil, nil
	}
}

// sayFunc renders a format template against the script's variables and
// prints the result: say("I have {n} {n:apple/apples}").
func sayFunc(out io.Writer, vars func() map[string]object.Object) object.BuiltinFunction {
	return func(ctx context.Context, args ...object.Object) (object.Object, error) {
		if len(args) != 1 {
			return nil, errz.RuntimeErrorf("say takes 1 argument (%d given)", len(args))
		}
		template, ok := args[0].(*object.String)
		if !ok {
			return nil, errz.RuntimeErrorf("say requires a string (got %s)", args[0].Type())
		}
		text, err := format.Format(template.Value(), vars())
		if err != nil {
			return nil, errz.RuntimeErrorf("%s", err.Error())
		}
		fmt.Fprintln(out, text)
		return object.Nil, nil
	}
}

func strFunc(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, errz.RuntimeErrorf("str takes 1 argument (%d given)", len(args))
	}
	if s, ok := args[0].(*object.String); ok {
		return s, nil
	}
	return object.NewString(args[0].Inspect()), nil
}

func intFunc(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, errz.RuntimeErrorf("int takes 1 argument (%d given)", len(args))
	}
	switch arg := args[0].(type) {
	case *object.Int:
		return arg, nil
	case *object.Float:
		return object.NewInt(int64(arg.Value())), nil
	case *object.Bool:
		if arg.Value() {
			return object.NewInt(1), nil
		}
		return object.NewInt(0), nil
	}
	return nil, errz.RuntimeErrorf("cannot convert %s to int", args[0].Type())
}

// sleepFunc suspends the calling script. The payload is the delay; the
// host's scheduler is expected to call Resume once it elapses.
func sleepFunc(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, errz.RuntimeErrorf("sleep takes 1 argument (%d given)", len(args))
	}
	var seconds float64
	switch arg := args[0].(type) {
	case *object.Int:
		seconds = float64(arg.Value())
	case *object.Float:
		seconds = arg.Value()
	default:
		return nil, errz.RuntimeErrorf("sleep requires a number (got %s)", args[0].Type())
	}
	delay := time.Duration(seconds * float64(time.Second))
	return object.NewSuspension("sleep", delay), nil
}
