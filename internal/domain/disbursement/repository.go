package disbursement

import "context"

type Repository interface {
	Create(ctx context.Context, d *Disbursement) error
	GetByLoanID(ctx context.Context, loanID uint64) (*Disbursement, error)
}
