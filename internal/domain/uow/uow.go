package uow

import (
	"context"

	"lending-engine/internal/domain/approval"
	"lending-engine/internal/domain/disbursement"
	"lending-engine/internal/domain/investment"
	"lending-engine/internal/domain/loan"
)

// Repos bundles the repositories bound to one transaction.
type Repos struct {
	Loans         loan.Repository
	Approvals     approval.Repository
	Investments   investment.Repository
	Disbursements disbursement.Repository
}

// UnitOfWork runs a function inside a single storage transaction. The loan
// compare-and-swap and its side-table writes (approval, investment,
// disbursement rows) commit or roll back together, so a failed operation is
// always a no-op against the store.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
