package vm

import (
	"encoding/json"
	"fmt"

	"github.com/willowmere/scribe/compiler"
	"github.com/willowmere/scribe/object"
)

// Snapshot is the serializable state of a suspended Script: the
// instruction pointer plus the full stack and variable contents. Because
// the VM is flattened to avoid nested native call frames, this is the
// only state that must be captured for a lossless resume. Compiled code
// is not part of the snapshot; the host keeps it and supplies it again on
// restore.
type Snapshot struct {
	ID             string                 `json:"id"`
	IP             int                    `json:"ip"`
	Stack          []ValueRecord          `json:"stack"`
	Vars           map[string]ValueRecord `json:"vars"`
	SuspendReason  string                 `json:"suspend_reason,omitempty"`
	SuspendPayload any                    `json:"suspend_payload,omitempty"`
}

// ValueRecord is one serialized script value.
type ValueRecord struct {
	Type  object.Type `json:"type"`
	Value any         `json:"value"`
}

// Snapshot captures a SUSPENDED script for persistence. Scripts holding
// host object values cannot be snapshotted; the host must re-wrap its
// objects on restore instead.
func (s *Script) Snapshot() (*Snapshot, error) {
	if s.state != Suspended {
		return nil, fmt.Errorf("cannot snapshot a %s script", s.state)
	}
	snap := &Snapshot{
		ID:    s.id,
		IP:    s.ip,
		Stack: make([]ValueRecord, 0, len(s.stack)),
		Vars:  make(map[string]ValueRecord, len(s.vars)),
	}
	if s.suspension != nil {
		snap.SuspendReason = s.suspension.Reason
		snap.SuspendPayload = s.suspension.Payload
	}
	for _, obj := range s.stack {
		rec, err := encodeValue(obj)
		if err != nil {
			return nil, err
		}
		snap.Stack = append(snap.Stack, rec)
	}
	for name, obj := range s.vars {
		rec, err := encodeValue(obj)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", name, err)
		}
		snap.Vars[name] = rec
	}
	return snap, nil
}

// Restore rebuilds a SUSPENDED script from a snapshot and the code it was
// executing. The restored script accepts Resume exactly as the original
// would have.
func Restore(code *compiler.Code, snap *Snapshot, opts ...Option) (*Script, error) {
	s := New(code, opts...)
	s.id = snap.ID
	s.ip = snap.IP
	s.state = Suspended
	s.suspension = object.NewSuspension(snap.SuspendReason, snap.SuspendPayload)
	for _, rec := range snap.Stack {
		obj, err := decodeValue(rec)
		if err != nil {
			return nil, err
		}
		s.stack = append(s.stack, obj)
	}
	for name, rec := range snap.Vars {
		obj, err := decodeValue(rec)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", name, err)
		}
		s.vars[name] = obj
	}
	return s, nil
}

func encodeValue(obj object.Object) (ValueRecord, error) {
	switch obj.Type() {
	case object.INT, object.FLOAT, object.STRING, object.BOOL:
		return ValueRecord{Type: obj.Type(), Value: obj.Interface()}, nil
	case object.NIL:
		return ValueRecord{Type: object.NIL}, nil
	}
	return ValueRecord{}, fmt.Errorf("cannot snapshot a %s value", obj.Type())
}

func decodeValue(rec ValueRecord) (object.Object, error) {
	switch rec.Type {
	case object.NIL:
		return object.Nil, nil
	case object.INT:
		switch v := rec.Value.(type) {
		case int64:
			return object.NewInt(v), nil
		case float64:
			// JSON round trips integers as float64.
			return object.NewInt(int64(v)), nil
		case json.Number:
			n, err := v.Int64()
			if err != nil {
				return nil, err
			}
			return object.NewInt(n), nil
		}
	case object.FLOAT:
		switch v := rec.Value.(type) {
		case float64:
			return object.NewFloat(v), nil
		case int64:
			return object.NewFloat(float64(v)), nil
		}
	case object.STRING:
		if v, ok := rec.Value.(string); ok {
			return object.NewString(v), nil
		}
	case object.BOOL:
		if v, ok := rec.Value.(bool); ok {
			return object.NewBool(v), nil
		}
	}
	return nil, fmt.Errorf("cannot restore a %s value from %T", rec.Type, rec.Value)
}
