package namespace

import (
	"context"
	"fmt"
	"sort"

	"github.com/willowmere/scribe/object"
)

// Getter reads one attribute from a host object.
type Getter func(host interface{}) (object.Object, error)

// Method invokes one operation on a host object. A Method may return an
// *object.Suspension to park the calling script.
type Method func(ctx context.Context, host interface{}, args ...object.Object) (object.Object, error)

// Representation is a capability table for one kind of host object: the
// closed set of attribute and method names that scripts may reach. There
// is no fallback to reflection; a name absent from the table does not
// exist as far as scripts are concerned.
type Representation struct {
	kind    string
	getters map[string]Getter
	methods map[string]Method
}

// NewRepresentation creates an empty representation for the given host
// object kind.
func NewRepresentation(kind string) *Representation {
	return &Representation{
		kind:    kind,
		getters: map[string]Getter{},
		methods: map[string]Method{},
	}
}

// Kind returns the host object kind this representation describes.
func (r *Representation) Kind() string { return r.kind }

// Attr declares a readable attribute. Returns the representation for
// chaining.
func (r *Representation) Attr(name string, get Getter) *Representation {
	r.getters[name] = get
	return r
}

// Method declares a callable method. Returns the representation for
// chaining.
func (r *Representation) Method(name string, fn Method) *Representation {
	r.methods[name] = fn
	return r
}

// Names returns the sorted set of attribute and method names the
// representation exposes.
func (r *Representation) Names() []string {
	names := make([]string, 0, len(r.getters)+len(r.methods))
	for name := range r.getters {
		names = append(names, name)
	}
	for name := range r.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Wrap pairs the representation with one host object, producing a script
// value.
func (r *Representation) Wrap(host interface{}) *HostObject {
	return &HostObject{rep: r, host: host}
}

// HostObject is a host value as seen from a script: exactly one underlying
// host object, viewed through its representation's capability table.
type HostObject struct {
	rep  *Representation
	host interface{}
}

// Rep returns the representation describing this object.
func (obj *HostObject) Rep() *Representation { return obj.rep }

// Host returns the wrapped host object.
func (obj *HostObject) Host() interface{} { return obj.host }

func (obj *HostObject) Type() object.Type { return object.HOST }

func (obj *HostObject) Inspect() string {
	return fmt.Sprintf("%s(%v)", obj.rep.kind, obj.host)
}

func (obj *HostObject) Interface() interface{} { return obj.host }
func (obj *HostObject) IsTruthy() bool         { return true }

func (obj *HostObject) Equals(other object.Object) bool {
	if other, ok := other.(*HostObject); ok {
		return obj.host == other.host
	}
	return false
}

// GetAttr resolves a name through the capability table. Attributes produce
// their current value; methods produce a callable bound to the host
// object.
func (obj *HostObject) GetAttr(name string) (object.Object, bool) {
	if get, ok := obj.rep.getters[name]; ok {
		value, err := get(obj.host)
		if err != nil {
			return nil, false
		}
		return value, true
	}
	if fn, ok := obj.rep.methods[name]; ok {
		bound := object.NewBuiltin(obj.rep.kind+"."+name,
			func(ctx context.Context, args ...object.Object) (object.Object, error) {
				return fn(ctx, obj.host, args...)
			})
		return bound, true
	}
	return nil, false
}
