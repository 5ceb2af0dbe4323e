package lifecycle

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"lending-engine/internal/domain/investment"
	"lending-engine/internal/domain/loan"
	"lending-engine/internal/domain/uow"
	"lending-engine/pkg/id"
)

// reserveInvestment is the investment ledger: it computes the candidate
// investment row, the new funded total, and the resulting state against the
// snapshot it was given. The reservation only becomes durable when the
// caller's compare-and-swap commits; overfunding amounts are rejected in
// full, never truncated.
func reserveInvestment(l *loan.Loan, in InvestInput) (*investment.Investment, int64, loan.State, error) {
	if !loan.CanTransition(l.State, loan.EventInvest) {
		// A racer that lost the last unit of capacity re-validates against
		// a fully funded loan; report that as overfunding, not a bad state.
		if l.State == loan.StateFullyFunded {
			return nil, 0, l.State, loan.ErrOverfunded
		}
		return nil, 0, l.State, loan.ErrInvalidState
	}
	if in.Amount <= 0 {
		return nil, 0, l.State, loan.ErrInvalidAmount
	}
	if strings.TrimSpace(in.InvestorID) == "" || strings.TrimSpace(in.Email) == "" {
		return nil, 0, l.State, loan.ErrInvalidInput
	}

	newTotal := l.FundedTotal + in.Amount
	if newTotal > l.Principal {
		return nil, 0, l.State, loan.ErrOverfunded
	}

	next := loan.StateFunding
	if newTotal == l.Principal {
		next = loan.StateFullyFunded
	}

	inv := &investment.Investment{
		InvestmentID: id.NewID32(),
		LoanID:       l.ID,
		InvestorID:   strings.TrimSpace(in.InvestorID),
		Email:        strings.TrimSpace(in.Email),
		Amount:       in.Amount,
		CreatedAt:    time.Now().UTC(),
	}
	return inv, newTotal, next, nil
}

// Invest records an investor's contribution. The capacity check runs against
// the version read at load time; the compare-and-swap commit is what makes
// the reservation durable, so two investors racing for the last unit of
// capacity cannot both succeed. On filling the cap the loan transitions to
// fully_funded in the same commit.
func (c *Controller) Invest(ctx context.Context, in InvestInput) (*InvestmentDTO, error) {
	var (
		dto    *InvestmentDTO
		filled bool
	)
	err := c.commit(ctx, in.LoanID, func(l *loan.Loan, r uow.Repos) error {
		inv, newTotal, next, err := reserveInvestment(l, in)
		if err != nil {
			return err
		}

		expected := l.Version
		l.FundedTotal = newTotal
		l.State = next
		l.StateUpdatedAt = inv.CreatedAt
		if err := r.Loans.CompareAndSwap(ctx, l, expected); err != nil {
			return err
		}
		if err := r.Investments.Create(ctx, inv); err != nil {
			return err
		}

		filled = next == loan.StateFullyFunded
		dto = &InvestmentDTO{
			InvestmentID: inv.InvestmentID,
			InvestorID:   inv.InvestorID,
			Email:        inv.Email,
			Amount:       inv.Amount,
			CreatedAt:    inv.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.log.WithFields(logrus.Fields{
		"loan_id":     in.LoanID,
		"investor_id": in.InvestorID,
		"amount":      in.Amount,
	}).Info("investment accepted")

	c.notifyInvestor(ctx, in.LoanID, dto, filled)
	return dto, nil
}

// notifyInvestor dispatches best-effort emails after a committed investment:
// a receipt to the new investor, and agreement letters to every investor of
// the loan once the cap is filled. Send failures are logged, never surfaced.
func (c *Controller) notifyInvestor(ctx context.Context, loanID string, dto *InvestmentDTO, filled bool) {
	if c.email == nil {
		return
	}
	if err := c.email.SendInvestmentReceipt(dto.Email, loanID, dto.Amount); err != nil {
		c.log.WithFields(logrus.Fields{"loan_id": loanID, "email": dto.Email, "error": err.Error()}).
			Warn("failed to send investment receipt")
	}
	if !filled {
		return
	}

	l, err := c.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		c.log.WithFields(logrus.Fields{"loan_id": loanID, "error": err.Error()}).
			Warn("failed to reload loan for agreement emails")
		return
	}
	var invs []investment.Investment
	err = c.uow.WithinTx(ctx, func(r uow.Repos) error {
		invs, err = r.Investments.ListByLoanID(ctx, l.ID)
		return err
	})
	if err != nil {
		c.log.WithFields(logrus.Fields{"loan_id": loanID, "error": err.Error()}).
			Warn("failed to list investors for agreement emails")
		return
	}
	for _, inv := range invs {
		if err := c.email.SendAgreementEmail(inv.Email, loanID, l.AgreementLink); err != nil {
			c.log.WithFields(logrus.Fields{
				"loan_id":     loanID,
				"investor_id": inv.InvestorID,
				"error":       err.Error(),
			}).Warn("failed to send agreement email")
		}
	}
}
