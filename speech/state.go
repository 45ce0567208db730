package speech

// State represents the playback state of the speech subsystem.
type State int

const (
	// Idle indicates nothing is being spoken. Initial and terminal state.
	Idle State = iota
	// Speaking indicates an utterance is actively being synthesized.
	Speaking
	// Paused indicates the in-flight utterance is suspended.
	Paused
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Speaking:
		return "speaking"
	case Paused:
		return "paused"
	default:
		return "unknown"
	}
}

// StateMachine manages playback state transitions. The transition table is
// the single source of truth: engine callbacks and user gestures alike go
// through Transition, so no path can reach a state the table disallows.
type StateMachine struct {
	current     State
	transitions map[State][]State
}

// NewStateMachine creates a state machine starting at Idle.
func NewStateMachine() *StateMachine {
	return &StateMachine{
		current: Idle,
		transitions: map[State][]State{
			Idle:     {Speaking},
			Speaking: {Paused, Idle},
			Paused:   {Speaking, Idle},
		},
	}
}

// Transition attempts to move to the given state and reports whether the
// move was allowed.
func (sm *StateMachine) Transition(to State) bool {
	for _, allowed := range sm.transitions[sm.current] {
		if allowed == to {
			sm.current = to
			return true
		}
	}
	return false
}

// Current returns the current state.
func (sm *StateMachine) Current() State {
	return sm.current
}
