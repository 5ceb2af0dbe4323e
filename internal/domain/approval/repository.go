package approval

import "context"

type Repository interface {
	// Create inserts a new approval; the unique index on loan_id keeps at
	// most one per loan.
	Create(ctx context.Context, a *Approval) error

	// GetByLoanID looks up the approval by the loan's numeric id.
	GetByLoanID(ctx context.Context, loanID uint64) (*Approval, error)
}
