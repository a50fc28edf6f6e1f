//
// Copyright (c) 2026 EM-10A-VU Secure Private Computation Project contributors
//
// All rights reserved.
//

package protocol

// State is a node in the protocol's finite state machine, identical on
// both roles per spec.md §4.6; only the actions taken at each transition
// differ by role.
type State int

// States of the single-shot protocol FSM.
const (
	Idle State = iota
	Handshake
	InputsExchanged
	Evaluating
	OutputsExchanged
	Done
	Aborted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Handshake:
		return "Handshake"
	case InputsExchanged:
		return "InputsExchanged"
	case Evaluating:
		return "Evaluating"
	case OutputsExchanged:
		return "OutputsExchanged"
	case Done:
		return "Done"
	case Aborted:
		return "Aborted"
	default:
		return "Unknown"
	}
}

// fsm tracks the current protocol state for one role's run. Any
// decryption failure, unexpected message tag, malformed circuit, or
// transport error moves it directly to Aborted regardless of where in
// the sequence it occurs.
type fsm struct {
	state State
}

func newFSM() *fsm {
	return &fsm{state: Idle}
}

func (f *fsm) advance(to State) {
	f.state = to
}

func (f *fsm) abort() {
	f.state = Aborted
}
