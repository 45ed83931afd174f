package object

import (
	"context"
	"fmt"
	"strconv"
)

// Int is an integer value.
type Int struct {
	value int64
}

func NewInt(value int64) *Int { return &Int{value: value} }

func (obj *Int) Value() int64 { return obj.value }

func (obj *Int) Type() Type             { return INT }
func (obj *Int) Inspect() string        { return strconv.FormatInt(obj.value, 10) }
func (obj *Int) Interface() interface{} { return obj.value }
func (obj *Int) IsTruthy() bool         { return obj.value != 0 }

func (obj *Int) GetAttr(name string) (Object, bool) { return nil, false }

func (obj *Int) Equals(other Object) bool {
	switch other := other.(type) {
	case *Int:
		return obj.value == other.value
	case *Float:
		return float64(obj.value) == other.value
	}
	return false
}

// Float is a floating point value.
type Float struct {
	value float64
}

func NewFloat(value float64) *Float { return &Float{value: value} }

func (obj *Float) Value() float64 { return obj.value }

func (obj *Float) Type() Type             { return FLOAT }
func (obj *Float) Inspect() string        { return strconv.FormatFloat(obj.value, 'g', -1, 64) }
func (obj *Float) Interface() interface{} { return obj.value }
func (obj *Float) IsTruthy() bool         { return obj.value != 0 }

func (obj *Float) GetAttr(name string) (Object, bool) { return nil, false }

func (obj *Float) Equals(other Object) bool {
	switch other := other.(type) {
	case *Float:
		return obj.value == other.value
	case *Int:
		return obj.value == float64(other.value)
	}
	return false
}

// String is a text value.
type String struct {
	value string
}

func NewString(value string) *String { return &String{value: value} }

func (obj *String) Value() string { return obj.value }

func (obj *String) Type() Type             { return STRING }
func (obj *String) Inspect() string        { return strconv.Quote(obj.value) }
func (obj *String) Interface() interface{} { return obj.value }
func (obj *String) IsTruthy() bool         { return obj.value != "" }

func (obj *String) GetAttr(name string) (Object, bool) { return nil, false }

func (obj *String) Equals(other Object) bool {
	if other, ok := other.(*String); ok {
		return obj.value == other.value
	}
	return false
}

// Bool is a true or false value. Use NewBool to get one of the two
// interned instances.
type Bool struct {
	value bool
}

func (obj *Bool) Value() bool { return obj.value }

func (obj *Bool) Type() Type             { return BOOL }
func (obj *Bool) Inspect() string        { return strconv.FormatBool(obj.value) }
func (obj *Bool) Interface() interface{} { return obj.value }
func (obj *Bool) IsTruthy() bool         { return obj.value }

func (obj *Bool) GetAttr(name string) (Object, bool) { return nil, false }

func (obj *Bool) Equals(other Object) bool {
	if other, ok := other.(*Bool); ok {
		return obj.value == other.value
	}
	return false
}

// NilType is the absence of a value.
type NilType struct{}

func (obj *NilType) Type() Type             { return NIL }
func (obj *NilType) Inspect() string        { return "nil" }
func (obj *NilType) Interface() interface{} { return nil }
func (obj *NilType) IsTruthy() bool         { return false }

func (obj *NilType) GetAttr(name string) (Object, bool) { return nil, false }

func (obj *NilType) Equals(other Object) bool {
	_, ok := other.(*NilType)
	return ok
}

// BuiltinFunction is the signature for functions exposed to scripts.
type BuiltinFunction func(ctx context.Context, args ...Object) (Object, error)

// Builtin wraps a host Go function so scripts can call it.
type Builtin struct {
	name string
	fn   BuiltinFunction
}

// NewBuiltin wraps the given function as a callable object.
func NewBuiltin(name string, fn BuiltinFunction) *Builtin {
	return &Builtin{name: name, fn: fn}
}

func (obj *Builtin) Name() string { return obj.name }

func (obj *Builtin) Type() Type             { return BUILTIN }
func (obj *Builtin) Inspect() string        { return fmt.Sprintf("builtin(%s)", obj.name) }
func (obj *Builtin) Interface() interface{} { return obj.fn }
func (obj *Builtin) IsTruthy() bool         { return true }

func (obj *Builtin) GetAttr(name string) (Object, bool) { return nil, false }

func (obj *Builtin) Equals(other Object) bool { return obj == other }

// Call invokes the wrapped Go function.
func (obj *Builtin) Call(ctx context.Context, args ...Object) (Object, error) {
	return obj.fn(ctx, args...)
}

// Suspension is returned by a callable that must pause the executing
// script, for example an action that completes after a time delay. The VM
// parks the script when a call produces one; the host later supplies the
// call's real return value via Resume.
type Suspension struct {
	// Reason describes why the script suspended, for host-side logging
	// and scheduling ("sleep", "dialogue_choice", ...).
	Reason string

	// Payload is host-defined data describing how to complete the
	// suspended operation, such as a delay duration.
	Payload interface{}
}

// NewSuspension creates a Suspension marker value.
func NewSuspension(reason string, payload interface{}) *Suspension {
	return &Suspension{Reason: reason, Payload: payload}
}

func (obj *Suspension) Type() Type             { return SUSPEND }
func (obj *Suspension) Inspect() string        { return fmt.Sprintf("suspend(%s)", obj.Reason) }
func (obj *Suspension) Interface() interface{} { return obj.Payload }
func (obj *Suspension) IsTruthy() bool         { return true }

func (obj *Suspension) GetAttr(name string) (Object, bool) { return nil, false }

func (obj *Suspension) Equals(other Object) bool { return obj == other }
