package loan

import "errors"

var (
	ErrNotFound          = errors.New("loan not found")
	ErrDuplicateBorrower = errors.New("borrower already exists with an active loan")
	ErrInvalidState      = errors.New("loan is not in a valid state for this action")
	ErrInvalidAmount     = errors.New("amount must be a positive number")
	ErrOverfunded        = errors.New("investment exceeds remaining principal")
	ErrInvalidProof      = errors.New("proof url must be a well-formed url")
	ErrInvalidAgreement  = errors.New("signed agreement must be a well-formed url")
	ErrInvalidInput      = errors.New("invalid input")

	// ErrVersionConflict means the compare-and-swap lost to a concurrent
	// commit; callers reload and retry. ErrContention is surfaced once the
	// retry budget is exhausted and is the only transient failure.
	ErrVersionConflict = errors.New("loan version conflict")
	ErrContention      = errors.New("loan is under contention, retry later")
)
