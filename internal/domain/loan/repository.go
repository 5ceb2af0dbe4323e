package loan

import "context"

type Repository interface {
	// Create inserts the loan, failing with ErrDuplicateBorrower when the
	// borrower already holds an active loan. The uniqueness check and the
	// insert are one atomic operation at the storage layer.
	Create(ctx context.Context, l *Loan) error

	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)

	// CompareAndSwap persists l's mutable fields iff the stored version
	// equals expectedVersion, bumping the version on success. It is the
	// sole mutation primitive; ErrVersionConflict signals a lost race.
	CompareAndSwap(ctx context.Context, l *Loan, expectedVersion uint64) error

	ListByBorrowerID(ctx context.Context, borrowerID string) ([]Loan, error)
	ListByState(ctx context.Context, st State) ([]Loan, error)
	List(ctx context.Context, page, limit int) ([]Loan, error)
}
