package vm

import "github.com/willowmere/scribe/namespace"

// Option configures a Script at creation time.
type Option func(*Script)

// WithBuiltins supplies the namespace of top-level functions and values
// available to the script after its own variables.
func WithBuiltins(ns namespace.Namespace) Option {
	return func(s *Script) {
		s.builtins = ns
	}
}

// WithObserver registers an observer receiving a callback before every
// instruction.
func WithObserver(observer Observer) Option {
	return func(s *Script) {
		s.observer = observer
	}
}

// WithID sets the script instance id instead of generating one. Used when
// restoring a snapshot.
func WithID(id string) Option {
	return func(s *Script) {
		s.id = id
	}
}
