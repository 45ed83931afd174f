// Package format renders user-facing text with variable substitution and
// pluralization.
//
// A format string contains {name} and {name:singular/plural} placeholders.
// Plain placeholders resolve dotted paths against a variable mapping.
// Pluralization placeholders pick between two literal alternatives based
// on whether the referenced variable's numeric value equals 1; the format
// spec is split on its first "/".
package format

import (
	"fmt"
	"strings"

	"github.com/willowmere/scribe/object"
)

// Format substitutes the placeholders in template using the given
// variable mapping. Missing variables, missing path segments, and
// malformed placeholders are errors.
func Format(template string, vars map[string]object.Object) (string, error) {
	var out strings.Builder
	rest := template
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			out.WriteString(rest)
			return out.String(), nil
		}
		out.WriteString(rest[:open])
		rest = rest[open+1:]
		closing := strings.IndexByte(rest, '}')
		if closing < 0 {
			return "", fmt.Errorf("format error: unclosed placeholder in %q", template)
		}
		placeholder := rest[:closing]
		rest = rest[closing+1:]
		substituted, err := substitute(placeholder, vars)
		if err != nil {
			return "", err
		}
		out.WriteString(substituted)
	}
}

func substitute(placeholder string, vars map[string]object.Object) (string, error) {
	name := placeholder
	spec := ""
	if i := strings.IndexByte(placeholder, ':'); i >= 0 {
		name, spec = placeholder[:i], placeholder[i+1:]
	}
	value, err := resolve(name, vars)
	if err != nil {
		return "", err
	}
	if spec == "" {
		return render(value), nil
	}
	return pluralize(name, spec, value)
}

// resolve walks a dotted path through the variable mapping and attribute
// access on the resolved values.
func resolve(path string, vars map[string]object.Object) (object.Object, error) {
	segments := strings.Split(path, ".")
	value, ok := vars[segments[0]]
	if !ok {
		return nil, fmt.Errorf("format error: unknown variable %q", segments[0])
	}
	for _, name := range segments[1:] {
		attr, found := value.GetAttr(name)
		if !found {
			return nil, fmt.Errorf("format error: %s has no attribute %q", value.Type(), name)
		}
		value = attr
	}
	return value, nil
}

// pluralize selects singular for a numeric value of exactly 1 and plural
// otherwise.
func pluralize(name, spec string, value object.Object) (string, error) {
	slash := strings.IndexByte(spec, '/')
	if slash < 0 {
		return "", fmt.Errorf("format error: %q needs a singular/plural spec, got %q", name, spec)
	}
	singular, plural := spec[:slash], spec[slash+1:]
	var n float64
	switch value := value.(type) {
	case *object.Int:
		n = float64(value.Value())
	case *object.Float:
		n = value.Value()
	default:
		return "", fmt.Errorf("format error: %q is not numeric (got %s)", name, value.Type())
	}
	if n == 1 {
		return singular, nil
	}
	return plural, nil
}

func render(value object.Object) string {
	// Strings render bare, without the quotes Inspect adds.
	if s, ok := value.(*object.String); ok {
		return s.Value()
	}
	return value.Inspect()
}
