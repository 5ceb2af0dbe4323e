package lifecycle

import (
	"context"
	"errors"

	"lending-engine/internal/domain/loan"
	"lending-engine/internal/domain/uow"
)

// Get returns the loan with its approval, investments and disbursement
// sub-records.
func (c *Controller) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := c.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	dto := toLoanDTO(l)

	err = c.uow.WithinTx(ctx, func(r uow.Repos) error {
		if a, err := r.Approvals.GetByLoanID(ctx, l.ID); err == nil {
			dto.Approval = &ApprovalDTO{
				ApprovalID:  a.ApprovalID,
				ValidatorID: a.ValidatorID,
				ProofURL:    a.ProofURL,
				ApprovedAt:  a.ApprovedAt,
			}
		} else if !errors.Is(err, loan.ErrNotFound) {
			return err
		}

		invs, err := r.Investments.ListByLoanID(ctx, l.ID)
		if err != nil {
			return err
		}
		for _, inv := range invs {
			dto.Investments = append(dto.Investments, InvestmentDTO{
				InvestmentID: inv.InvestmentID,
				InvestorID:   inv.InvestorID,
				Email:        inv.Email,
				Amount:       inv.Amount,
				CreatedAt:    inv.CreatedAt,
			})
		}

		if d, err := r.Disbursements.GetByLoanID(ctx, l.ID); err == nil {
			dto.Disbursement = &DisbursementDTO{
				DisbursementID:  d.DisbursementID,
				FieldOfficerID:  d.FieldOfficerID,
				SignedAgreement: d.SignedAgreementURL,
				DisbursedAt:     d.DisbursedAt,
			}
		} else if !errors.Is(err, loan.ErrNotFound) {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// ListByBorrower returns every loan a borrower has held, active or not.
func (c *Controller) ListByBorrower(ctx context.Context, borrowerID string) ([]LoanDTO, error) {
	if borrowerID == "" {
		return nil, loan.ErrInvalidInput
	}
	ls, err := c.loans.ListByBorrowerID(ctx, borrowerID)
	if err != nil {
		return nil, err
	}
	return toLoanDTOs(ls), nil
}

// ListByState returns all loans currently in the given state.
func (c *Controller) ListByState(ctx context.Context, st loan.State) ([]LoanDTO, error) {
	switch st {
	case loan.StateProposed, loan.StateApproved, loan.StateFunding,
		loan.StateFullyFunded, loan.StateDisbursed, loan.StateRejected:
	default:
		return nil, loan.ErrInvalidInput
	}
	ls, err := c.loans.ListByState(ctx, st)
	if err != nil {
		return nil, err
	}
	return toLoanDTOs(ls), nil
}

// List returns a page of loans, newest first.
func (c *Controller) List(ctx context.Context, page, limit int) ([]LoanDTO, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	ls, err := c.loans.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	return toLoanDTOs(ls), nil
}

func toLoanDTOs(ls []loan.Loan) []LoanDTO {
	out := make([]LoanDTO, 0, len(ls))
	for i := range ls {
		out = append(out, *toLoanDTO(&ls[i]))
	}
	return out
}
