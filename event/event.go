// Package event describes the trigger points scripts attach to.
//
// An event declaration names a trigger ("on_enter", "on_damage", ...) and
// the variables a script attached to it may assume are present, with
// their expected types. Hosts typically keep these declarations as data;
// LoadFile reads a YAML file of them.
package event

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/willowmere/scribe/object"
)

// Event is a named trigger point with its declared script variables.
type Event struct {
	Name string `yaml:"name"`

	// Vars maps variable name to expected type name: "int", "float",
	// "string", "bool", or a registered host object kind.
	Vars map[string]string `yaml:"vars"`
}

// primitive script value types, as spelled in declarations
var primitives = map[string]object.Type{
	"int":    object.INT,
	"float":  object.FLOAT,
	"string": object.STRING,
	"bool":   object.BOOL,
}

// VariableTypes splits the declaration into primitive variable types and
// host object kinds, the two inputs the type checker takes.
func (e *Event) VariableTypes() (types map[string]object.Type, kinds map[string]string) {
	types = map[string]object.Type{}
	kinds = map[string]string{}
	for name, typeName := range e.Vars {
		if typ, ok := primitives[typeName]; ok {
			types[name] = typ
		} else {
			kinds[name] = typeName
		}
	}
	return types, kinds
}

// Validate checks that the variables a host supplies for this event match
// the declaration: every declared variable is present and every primitive
// type matches. Extra variables are allowed.
func (e *Event) Validate(vars map[string]object.Object) error {
	for name, typeName := range e.Vars {
		value, ok := vars[name]
		if !ok {
			return fmt.Errorf("event %s: missing variable %q", e.Name, name)
		}
		if expected, isPrimitive := primitives[typeName]; isPrimitive {
			if value.Type() != expected {
				return fmt.Errorf("event %s: variable %q is %s, expected %s",
					e.Name, name, value.Type(), expected)
			}
		}
	}
	return nil
}

// LoadFile reads a YAML file containing a list of event declarations.
func LoadFile(path string) ([]*Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var events []*Event
	if err := yaml.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("invalid event file %s: %w", path, err)
	}
	for _, e := range events {
		if e.Name == "" {
			return nil, fmt.Errorf("invalid event file %s: event with no name", path)
		}
	}
	return events, nil
}
