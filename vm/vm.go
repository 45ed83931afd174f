// Package vm executes compiled Scribe code on a virtual stack machine.
//
// Each Script is one execution of one piece of compiled code: it owns its
// instruction pointer, evaluation stack, and variable mapping, and is
// never shared across concurrent executions. Execution is cooperative and
// single-threaded per Script; suspension is the only concurrency
// primitive. A Script parks itself when a host call returns a suspension
// marker and resumes later, at exactly the recorded instruction pointer
// with the exact recorded stack and variables, when the host supplies the
// call's result.
package vm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/willowmere/scribe/compiler"
	"github.com/willowmere/scribe/errz"
	"github.com/willowmere/scribe/namespace"
	"github.com/willowmere/scribe/object"
	"github.com/willowmere/scribe/op"
)

// Script is one execution context for compiled code.
type Script struct {
	id         string
	code       *compiler.Code
	ip         int
	stack      []object.Object
	vars       map[string]object.Object
	state      State
	err        error
	builtins   namespace.Namespace
	observer   Observer
	suspension *object.Suspension
}

// New creates a Script in the READY state for the given compiled code.
func New(code *compiler.Code, opts ...Option) *Script {
	s := &Script{
		id:   uuid.NewString(),
		code: code,
		vars: map[string]object.Object{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the unique identifier of this script instance.
func (s *Script) ID() string { return s.id }

// State returns the current run state.
func (s *Script) State() State { return s.state }

// IP returns the instruction pointer.
func (s *Script) IP() int { return s.ip }

// Err returns the error that moved the script to FAILED, if any.
func (s *Script) Err() error { return s.err }

// Code returns the compiled code this script executes.
func (s *Script) Code() *compiler.Code { return s.code }

// Suspension describes why a SUSPENDED script is parked.
func (s *Script) Suspension() *object.Suspension { return s.suspension }

// SetVariables converts and installs host-supplied variables. It may be
// called before the first step or between suspensions, never mid-step.
func (s *Script) SetVariables(vars map[string]interface{}) error {
	objs, err := object.AsObjects(vars)
	if err != nil {
		return err
	}
	for name, obj := range objs {
		s.vars[name] = obj
	}
	return nil
}

// SetVariable installs a single script variable.
func (s *Script) SetVariable(name string, value object.Object) {
	s.vars[name] = value
}

// Var returns the current value of a script variable.
func (s *Script) Var(name string) (object.Object, bool) {
	obj, ok := s.vars[name]
	return obj, ok
}

// Variables returns a copy of the variable mapping.
func (s *Script) Variables() map[string]object.Object {
	out := make(map[string]object.Object, len(s.vars))
	for name, obj := range s.vars {
		out[name] = obj
	}
	return out
}

// Result returns the value of the most recently evaluated expression
// statement, or nil-object if there is none. Expression scripts leave
// their value here.
func (s *Script) Result() object.Object {
	if obj, ok := s.vars[compiler.ResultVar]; ok {
		return obj
	}
	return object.Nil
}

// Step executes exactly one instruction and returns the resulting state.
// Stepping a READY script moves it to RUNNING first; stepping a DONE,
// FAILED, or SUSPENDED script is an error.
func (s *Script) Step(ctx context.Context) (State, error) {
	switch s.state {
	case Ready:
		s.state = Running
	case Running:
	default:
		return s.state, fmt.Errorf("cannot step a %s script", s.state)
	}
	if s.ip >= s.code.Len() {
		s.state = Done
		return s.state, nil
	}
	if err := s.step(ctx); err != nil {
		return s.fail(err)
	}
	if s.state == Running && s.ip >= s.code.Len() {
		s.state = Done
	}
	return s.state, nil
}

// Run executes instructions until the script finishes, fails, suspends,
// or the context is cancelled.
func (s *Script) Run(ctx context.Context) (State, error) {
	for {
		if err := ctx.Err(); err != nil {
			return s.fail(err)
		}
		state, err := s.Step(ctx)
		if err != nil || state != Running {
			return state, err
		}
	}
}

// Resume continues a SUSPENDED script: the host result becomes the return
// value of the call that suspended, and execution proceeds from the
// recorded instruction pointer. The round trip through suspension is
// observably lossless.
func (s *Script) Resume(ctx context.Context, hostResult interface{}) (State, error) {
	if s.state != Suspended {
		return s.state, fmt.Errorf("cannot resume a %s script", s.state)
	}
	result, err := object.FromGoValue(hostResult)
	if err != nil {
		return s.fail(err)
	}
	s.push(result)
	s.suspension = nil
	s.state = Running
	return s.Run(ctx)
}

// step executes the instruction at the current instruction pointer. The
// pointer is advanced before dispatch, so a jump target assigned by the
// instruction wins.
func (s *Script) step(ctx context.Context) error {
	instr := s.code.At(s.ip)
	if s.observer != nil {
		event := StepEvent{
			ScriptID:    s.id,
			IP:          s.ip,
			Instruction: instr.String(),
			StackDepth:  len(s.stack),
		}
		if !s.observer.OnStep(event) {
			return errz.RuntimeErrorf("execution halted by observer")
		}
	}
	s.ip++

	switch instr.Op {
	case op.Add, op.Sub, op.Mul, op.Div, op.Eq, op.Ne, op.Lt, op.Le, op.Gt, op.Ge:
		right, err := s.pop()
		if err != nil {
			return err
		}
		left, err := s.pop()
		if err != nil {
			return err
		}
		result, err := object.BinaryOp(instr.Op, left, right)
		if err != nil {
			return err
		}
		s.push(result)

	case op.Neg:
		operand, err := s.pop()
		if err != nil {
			return err
		}
		result, err := object.Negate(operand)
		if err != nil {
			return err
		}
		s.push(result)

	case op.Not:
		// Any operand is coerced to its boolean truthiness first.
		operand, err := s.pop()
		if err != nil {
			return err
		}
		s.push(object.NewBool(!operand.IsTruthy()))

	case op.Goto:
		s.ip = instr.Target

	case op.IfTrue:
		cond, err := s.pop()
		if err != nil {
			return err
		}
		if cond.IsTruthy() {
			s.ip = instr.Target
		}

	case op.IfFalse:
		cond, err := s.pop()
		if err != nil {
			return err
		}
		if !cond.IsTruthy() {
			s.ip = instr.Target
		}

	case op.Const:
		s.push(instr.Const)

	case op.Value:
		value, err := s.resolve(instr.Name)
		if err != nil {
			return err
		}
		s.push(value)

	case op.Store:
		value, err := s.pop()
		if err != nil {
			return err
		}
		s.vars[instr.Name] = value

	case op.Call:
		return s.call(ctx, instr)

	default:
		return errz.RuntimeErrorf("invalid opcode %d at instruction %d", instr.Op, s.ip-1)
	}
	return nil
}

// call pops the fixed number of arguments, resolves the callee through
// the namespace chain, and invokes it. A callable returning a suspension
// marker parks the script instead of pushing a value; the argument pops
// and instruction pointer advance have already happened, so the recorded
// state resumes cleanly.
func (s *Script) call(ctx context.Context, instr compiler.Instruction) error {
	args := make([]object.Object, instr.NumArgs)
	for i := instr.NumArgs - 1; i >= 0; i-- {
		arg, err := s.pop()
		if err != nil {
			return err
		}
		args[i] = arg
	}
	callee, err := s.resolve(instr.Name)
	if err != nil {
		return err
	}
	fn, ok := callee.(object.Callable)
	if !ok {
		return errz.RuntimeErrorf("%q is not callable (got %s)", instr.Name, callee.Type())
	}
	result, err := fn.Call(ctx, args...)
	if err != nil {
		return err
	}
	if result == nil {
		result = object.Nil
	}
	if susp, ok := result.(*object.Suspension); ok {
		s.suspension = susp
		s.state = Suspended
		return nil
	}
	s.push(result)
	return nil
}

// resolve looks up a possibly dotted identifier path: the head segment
// through the script's variables and then the builtin namespace,
// remaining segments as attribute access through the value's
// representation. Misses are runtime errors, never silent host access.
func (s *Script) resolve(path string) (object.Object, error) {
	segments := strings.Split(path, ".")
	head := segments[0]
	value, ok := s.vars[head]
	if !ok && s.builtins != nil {
		value, ok = s.builtins.Resolve(head)
	}
	if !ok {
		return nil, errz.RuntimeErrorf("undefined variable %q", head)
	}
	for _, name := range segments[1:] {
		attr, found := value.GetAttr(name)
		if !found {
			return nil, errz.RuntimeErrorf("%s object has no attribute %q", value.Type(), name)
		}
		value = attr
	}
	return value, nil
}

func (s *Script) push(obj object.Object) {
	s.stack = append(s.stack, obj)
}

func (s *Script) pop() (object.Object, error) {
	if len(s.stack) == 0 {
		return nil, errz.RuntimeErrorf("evaluation stack underflow at instruction %d", s.ip-1)
	}
	obj := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return obj, nil
}

func (s *Script) fail(err error) (State, error) {
	s.state = Failed
	s.err = err
	return Failed, err
}
