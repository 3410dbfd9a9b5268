package stream

import "strconv"

// State is the position of a Driver in its read loop.
type State uint32

const (
	StateAwaitingBytes State = iota
	StateClassifying
	StateStructuralSkip
	StateDecoding
	StateAdvancing

	// Terminal states.
	StateCompleted
	StateCanceled
	StateStopped
	StateFaulted
)

var stateNames = [...]string{
	StateAwaitingBytes:  "AwaitingBytes",
	StateClassifying:    "Classifying",
	StateStructuralSkip: "StructuralSkip",
	StateDecoding:       "Decoding",
	StateAdvancing:      "Advancing",
	StateCompleted:      "Completed",
	StateCanceled:       "Canceled",
	StateStopped:        "Stopped",
	StateFaulted:        "Faulted",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}

	return "State(" + strconv.Itoa(int(s)) + ")"
}

// Terminal reports whether the driver has stopped.
func (s State) Terminal() bool {
	return s >= StateCompleted
}
