package lifecycle

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"lending-engine/internal/domain/approval"
	"lending-engine/internal/domain/loan"
	"lending-engine/internal/domain/uow"
	"lending-engine/pkg/id"
)

// validateApproval is the approval tracker: pure validation plus record
// construction against the loaded snapshot. It never touches storage.
func validateApproval(l *loan.Loan, in ApproveInput) (*approval.Approval, error) {
	if !loan.CanTransition(l.State, loan.EventApprove) {
		return nil, loan.ErrInvalidState
	}
	if strings.TrimSpace(in.ValidatorID) == "" {
		return nil, loan.ErrInvalidInput
	}
	if !wellFormedURL(in.ProofURL) {
		return nil, loan.ErrInvalidProof
	}
	return &approval.Approval{
		ApprovalID:  id.NewID32(),
		LoanID:      l.ID,
		ValidatorID: strings.TrimSpace(in.ValidatorID),
		ProofURL:    strings.TrimSpace(in.ProofURL),
		ApprovedAt:  time.Now().UTC(),
	}, nil
}

// Approve moves a proposed loan to approved, persisting the validator's
// decision and field-visit proof in the same commit as the state change.
func (c *Controller) Approve(ctx context.Context, in ApproveInput) (*ApprovalDTO, error) {
	var dto *ApprovalDTO
	err := c.commit(ctx, in.LoanID, func(l *loan.Loan, r uow.Repos) error {
		a, err := validateApproval(l, in)
		if err != nil {
			return err
		}

		expected := l.Version
		l.State = loan.StateApproved
		l.StateUpdatedAt = a.ApprovedAt
		if err := r.Loans.CompareAndSwap(ctx, l, expected); err != nil {
			return err
		}
		if err := r.Approvals.Create(ctx, a); err != nil {
			return err
		}

		dto = &ApprovalDTO{
			ApprovalID:  a.ApprovalID,
			ValidatorID: a.ValidatorID,
			ProofURL:    a.ProofURL,
			ApprovedAt:  a.ApprovedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.log.WithFields(logrus.Fields{
		"loan_id":      in.LoanID,
		"validator_id": in.ValidatorID,
	}).Info("loan approved")
	return dto, nil
}
