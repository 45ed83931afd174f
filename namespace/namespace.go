// Package namespace controls what Scribe scripts can see of the host
// application.
//
// Identifier resolution walks a chain of namespaces: a script's local
// variables first, then the host's top-level builtins. Values that wrap
// host objects expose only the attributes and methods their registered
// representation declares; everything else fails with a lookup error. This
// is the sandboxing boundary between scripts and the host.
package namespace

import "github.com/willowmere/scribe/object"

// Namespace resolves an identifier to a value, callable, or nested
// namespace-like object.
type Namespace interface {
	Resolve(name string) (object.Object, bool)
}

// Map is a simple namespace backed by a Go map.
type Map map[string]object.Object

// Resolve implements the Namespace interface.
func (m Map) Resolve(name string) (object.Object, bool) {
	obj, ok := m[name]
	return obj, ok
}

// Chain resolves identifiers against an ordered list of namespaces,
// returning the first hit.
type Chain []Namespace

// Resolve implements the Namespace interface.
func (c Chain) Resolve(name string) (object.Object, bool) {
	for _, ns := range c {
		if obj, ok := ns.Resolve(name); ok {
			return obj, true
		}
	}
	return nil, false
}
