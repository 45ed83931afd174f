// Package scribe embeds a small, sandboxed scripting language in a host
// application.
//
// World builders attach scripts to world objects; the host compiles each
// script once and creates a Script execution context per trigger. The
// pipeline is lexer, combinator parser, optional type check, assembly
// compiler, and a resumable stack machine:
//
//	script, err := scribe.CreateScript(`say("hello {name}")`)
//	if err != nil { ... }
//	script.SetVariables(map[string]any{"name": "Mira"})
//	state, err := script.Run(ctx)
//
// A Script suspends when a host call must wait (a timed action, a
// dialogue choice); the host parks it, and later calls Resume with the
// call's result. Suspension is observably transparent to the script.
package scribe

import (
	"context"
	"errors"

	"github.com/willowmere/scribe/ast"
	"github.com/willowmere/scribe/builtins"
	"github.com/willowmere/scribe/compiler"
	"github.com/willowmere/scribe/namespace"
	"github.com/willowmere/scribe/object"
	"github.com/willowmere/scribe/parser"
	"github.com/willowmere/scribe/typecheck"
	"github.com/willowmere/scribe/vm"
)

// Script is one executable instance of a piece of scripted content.
type Script = vm.Script

var errSuspendedEval = errors.New("script suspended; drive it with Run and Resume instead of Eval")

// State re-exports the VM run states for host convenience.
type State = vm.State

// Run states.
const (
	Ready     = vm.Ready
	Running   = vm.Running
	Suspended = vm.Suspended
	Done      = vm.Done
	Failed    = vm.Failed
)

// Option configures script creation.
type Option func(*options)

type options struct {
	vars      map[string]any
	types     map[string]object.Type
	kinds     map[string]string
	registry  *namespace.Registry
	typeCheck bool
	observer  vm.Observer
	builtins  namespace.Namespace
}

// WithVariables supplies initial script variables.
func WithVariables(vars map[string]any) Option {
	return func(o *options) {
		if o.vars == nil {
			o.vars = map[string]any{}
		}
		for name, value := range vars {
			o.vars[name] = value
		}
	}
}

// WithVariableTypes declares variable types for the type checking pass,
// typically from the triggering event's declaration.
func WithVariableTypes(types map[string]object.Type) Option {
	return func(o *options) {
		o.types = types
	}
}

// WithHostKinds declares which variables hold host objects of which
// registered kind, enabling capability checking of attribute access
// before execution.
func WithHostKinds(kinds map[string]string, registry *namespace.Registry) Option {
	return func(o *options) {
		o.kinds = kinds
		o.registry = registry
	}
}

// WithTypeCheck enables the pre-execution type checking pass. Without it,
// badly-typed scripts fail mid-run, after earlier instructions have
// already taken effect, or produce inconsistent results; with it they are
// rejected up front with a TypeError. Skipping the pass is a supported
// performance trade-off, not a safety feature.
func WithTypeCheck() Option {
	return func(o *options) {
		o.typeCheck = true
	}
}

// WithObserver registers a VM observer for tracing.
func WithObserver(observer vm.Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}

// WithBuiltins replaces the default builtin namespace.
func WithBuiltins(ns namespace.Namespace) Option {
	return func(o *options) {
		o.builtins = ns
	}
}

// Parse returns the AST for the given source without compiling it.
func Parse(source string) (*ast.Program, error) {
	return parser.Parse(source)
}

// Compile parses and compiles source into an instruction sequence.
func Compile(source string) (*compiler.Code, error) {
	program, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}
	return compiler.Compile(program)
}

// CreateScript builds a ready-to-run Script from source: tokenize, parse,
// optionally type check, compile, and wrap in an execution context. The
// error is a *errz.ParseError, *errz.NeedMore, or *errz.TypeError.
func CreateScript(source string, opts ...Option) (*Script, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	program, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}

	if o.typeCheck {
		checkOpts := []typecheck.Option{}
		if o.types != nil {
			checkOpts = append(checkOpts, typecheck.WithVariableTypes(o.types))
		}
		if varTypes := inferVarTypes(o.vars); len(varTypes) > 0 {
			checkOpts = append(checkOpts, typecheck.WithVariableTypes(varTypes))
		}
		if o.kinds != nil {
			checkOpts = append(checkOpts, typecheck.WithHostKinds(o.kinds, o.registry))
		}
		checker := typecheck.New(checkOpts...)
		if err := checker.Check(program); err != nil {
			return nil, err
		}
	}

	code, err := compiler.Compile(program)
	if err != nil {
		return nil, err
	}

	var script *Script
	ns := o.builtins
	if ns == nil {
		ns = builtins.Namespace(builtins.Config{
			Vars: func() map[string]object.Object { return script.Variables() },
		})
	}
	vmOpts := []vm.Option{vm.WithBuiltins(ns)}
	if o.observer != nil {
		vmOpts = append(vmOpts, vm.WithObserver(o.observer))
	}
	script = vm.New(code, vmOpts...)
	if o.vars != nil {
		if err := script.SetVariables(o.vars); err != nil {
			return nil, err
		}
	}
	return script, nil
}

// Eval compiles and runs source to completion, returning the value of its
// last expression statement. Scripts that suspend cannot be driven by
// Eval; use CreateScript and Resume for those.
func Eval(ctx context.Context, source string, opts ...Option) (object.Object, error) {
	script, err := CreateScript(source, opts...)
	if err != nil {
		return nil, err
	}
	state, err := script.Run(ctx)
	if err != nil {
		return nil, err
	}
	if state == vm.Suspended {
		return nil, errSuspendedEval
	}
	return script.Result(), nil
}

// RegisterRepresentation adds a host object representation to the default
// registry. Hosts call this once per object kind at startup.
func RegisterRepresentation(rep *namespace.Representation) error {
	return namespace.Register(rep)
}

// inferVarTypes derives checker declarations from concrete initial
// variable values.
func inferVarTypes(vars map[string]any) map[string]object.Type {
	if len(vars) == 0 {
		return nil
	}
	types := map[string]object.Type{}
	for name, value := range vars {
		obj, err := object.FromGoValue(value)
		if err != nil {
			continue
		}
		if obj.Type() == object.HOST {
			types[name] = typecheck.Unknown
		} else {
			types[name] = obj.Type()
		}
	}
	return types
}
