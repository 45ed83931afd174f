// Package object provides the runtime value types manipulated by Scribe
// scripts.
//
// Script-facing code usually type asserts an object.Object to a concrete
// type, for example:
//
//	switch obj := obj.(type) {
//	case *object.Int:
//		// do something with obj.Value()
//	case *object.String:
//		// do something with obj.Value()
//	}
//
// The Type() method of each object may also be used to get a string name
// of the object type, such as "string" or "int".
package object

import "context"

// Type of an object as a string.
type Type string

// Type constants
const (
	BOOL    Type = "bool"
	BUILTIN Type = "builtin"
	FLOAT   Type = "float"
	HOST    Type = "host"
	INT     Type = "int"
	NIL     Type = "nil"
	STRING  Type = "string"
	SUSPEND Type = "suspend"
)

var (
	Nil   = &NilType{}
	True  = &Bool{value: true}
	False = &Bool{value: false}
)

// Object is the interface that all Scribe value types must implement.
type Object interface {
	// Type of the object.
	Type() Type

	// Inspect returns a string representation of the given object.
	Inspect() string

	// Interface converts the given object to a native Go value.
	Interface() interface{}

	// Equals returns true if the given object is equal to this object.
	Equals(other Object) bool

	// GetAttr returns the attribute with the given name from this object.
	GetAttr(name string) (Object, bool)

	// IsTruthy returns true if the object is considered "truthy".
	IsTruthy() bool
}

// Callable is implemented by objects that scripts can invoke. A callable
// may return a *Suspension instead of a plain value, which parks the
// calling script until the host resumes it.
type Callable interface {
	Object

	// Call invokes the callable with the given arguments.
	Call(ctx context.Context, args ...Object) (Object, error)
}

// NewBool returns one of the interned bool objects.
func NewBool(value bool) *Bool {
	if value {
		return True
	}
	return False
}
