package investment

import "context"

type Repository interface {
	Create(ctx context.Context, inv *Investment) error

	// ListByLoanID returns all investments for the loan's numeric id,
	// oldest first.
	ListByLoanID(ctx context.Context, loanID uint64) ([]Investment, error)
}
