package vm

// StepEvent describes one instruction about to execute.
type StepEvent struct {
	ScriptID    string
	IP          int
	Instruction string
	StackDepth  int
}

// Observer receives callbacks for script execution events. OnStep runs
// before each instruction; returning false halts execution with an error.
type Observer interface {
	OnStep(event StepEvent) bool
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(event StepEvent) bool

// OnStep implements the Observer interface.
func (fn ObserverFunc) OnStep(event StepEvent) bool {
	return fn(event)
}
