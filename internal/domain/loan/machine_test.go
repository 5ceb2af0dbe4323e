package loan

import (
	"errors"
	"testing"
)

func TestNext_LegalTransitions(t *testing.T) {
	cases := []struct {
		from State
		ev   Event
		want State
	}{
		{StateProposed, EventApprove, StateApproved},
		{StateProposed, EventReject, StateRejected},
		{StateApproved, EventInvest, StateFunding},
		{StateFunding, EventInvest, StateFunding},
		{StateFullyFunded, EventDisburse, StateDisbursed},
	}
	for _, tc := range cases {
		got, err := Next(tc.from, tc.ev)
		if err != nil {
			t.Fatalf("Next(%s, %s): %v", tc.from, tc.ev, err)
		}
		if got != tc.want {
			t.Fatalf("Next(%s, %s) = %s, want %s", tc.from, tc.ev, got, tc.want)
		}
	}
}

func TestNext_IllegalTransitions(t *testing.T) {
	cases := []struct {
		from State
		ev   Event
	}{
		{StateProposed, EventInvest},
		{StateProposed, EventDisburse},
		{StateApproved, EventApprove},
		{StateApproved, EventDisburse},
		{StateApproved, EventReject},
		{StateFunding, EventDisburse},
		{StateFunding, EventApprove},
		{StateFullyFunded, EventInvest},
		{StateFullyFunded, EventApprove},
		{StateDisbursed, EventDisburse},
		{StateDisbursed, EventInvest},
		{StateRejected, EventApprove},
		{StateRejected, EventInvest},
	}
	for _, tc := range cases {
		if CanTransition(tc.from, tc.ev) {
			t.Fatalf("CanTransition(%s, %s) = true, want false", tc.from, tc.ev)
		}
		if _, err := Next(tc.from, tc.ev); !errors.Is(err, ErrInvalidState) {
			t.Fatalf("Next(%s, %s) err = %v, want ErrInvalidState", tc.from, tc.ev, err)
		}
	}
}

func TestTerminalStates(t *testing.T) {
	for _, st := range []State{StateDisbursed, StateRejected} {
		if len(transitions[st]) != 0 {
			t.Fatalf("terminal state %s has outgoing transitions", st)
		}
		if !(&Loan{State: st}).Terminal() {
			t.Fatalf("Terminal() = false for %s", st)
		}
	}
	for _, st := range []State{StateProposed, StateApproved, StateFunding, StateFullyFunded} {
		if (&Loan{State: st}).Terminal() {
			t.Fatalf("Terminal() = true for %s", st)
		}
	}
}

func TestRemaining(t *testing.T) {
	l := &Loan{Principal: 5_000_000, FundedTotal: 1_500_000}
	if got := l.Remaining(); got != 3_500_000 {
		t.Fatalf("Remaining() = %d", got)
	}
}
