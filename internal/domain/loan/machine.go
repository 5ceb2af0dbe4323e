package loan

// Event is a lifecycle action requested against a loan.
type Event string

const (
	EventApprove  Event = "approve"
	EventReject   Event = "reject"
	EventInvest   Event = "invest"
	EventDisburse Event = "disburse"
)

// transitions is the full set of legal state changes. Anything not listed
// here is rejected with ErrInvalidState. EventInvest lands on StateFunding by
// default; the controller substitutes StateFullyFunded when the accepted
// amount fills the cap in the same commit.
var transitions = map[State]map[Event]State{
	StateProposed: {
		EventApprove: StateApproved,
		EventReject:  StateRejected,
	},
	StateApproved: {
		EventInvest: StateFunding,
	},
	StateFunding: {
		EventInvest: StateFunding,
	},
	StateFullyFunded: {
		EventDisburse: StateDisbursed,
	},
}

// Next returns the state an event leads to from the given state.
func Next(from State, ev Event) (State, error) {
	to, ok := transitions[from][ev]
	if !ok {
		return from, ErrInvalidState
	}
	return to, nil
}

// CanTransition reports whether an event is legal from the given state.
func CanTransition(from State, ev Event) bool {
	_, ok := transitions[from][ev]
	return ok
}
