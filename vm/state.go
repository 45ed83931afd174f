package vm

// State is the run state of a Script.
type State int

const (
	// Ready means the script has not executed its first instruction, or
	// has been resumed and not yet stepped.
	Ready State = iota

	// Running means the script is between instructions mid-run.
	Running

	// Suspended means a host call parked the script. It resumes at the
	// recorded instruction pointer with identical stack and variable
	// state when the host supplies the call's result.
	Suspended

	// Done means the instruction pointer passed the end of the sequence.
	Done

	// Failed means an unrecoverable error occurred; the error is
	// recorded on the script. Side effects of earlier instructions are
	// not rolled back.
	Failed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Ready:
		return "READY"
	case Running:
		return "RUNNING"
	case Suspended:
		return "SUSPENDED"
	case Done:
		return "DONE"
	case Failed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// Terminal reports whether the script can make no further progress.
func (s State) Terminal() bool {
	return s == Done || s == Failed
}
