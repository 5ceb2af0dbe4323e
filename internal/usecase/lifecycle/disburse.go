package lifecycle

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"lending-engine/internal/domain/disbursement"
	"lending-engine/internal/domain/loan"
	"lending-engine/internal/domain/uow"
	"lending-engine/pkg/id"
)

// validateDisbursement is the disbursement gate: a fully funded loan, a
// named field officer, and a well-formed signed agreement URL. A disbursed
// loan has no legal disburse transition left, so the gate is one-shot.
func validateDisbursement(l *loan.Loan, in DisburseInput) (*disbursement.Disbursement, error) {
	if !loan.CanTransition(l.State, loan.EventDisburse) {
		return nil, loan.ErrInvalidState
	}
	if strings.TrimSpace(in.FieldOfficerID) == "" {
		return nil, loan.ErrInvalidInput
	}
	if !wellFormedURL(in.SignedAgreement) {
		return nil, loan.ErrInvalidAgreement
	}
	return &disbursement.Disbursement{
		DisbursementID:     id.NewID32(),
		LoanID:             l.ID,
		FieldOfficerID:     strings.TrimSpace(in.FieldOfficerID),
		SignedAgreementURL: strings.TrimSpace(in.SignedAgreement),
		DisbursedAt:        time.Now().UTC(),
	}, nil
}

// Disburse releases funds for a fully funded loan, recording the signed
// agreement and field officer in the same commit as the terminal state
// change.
func (c *Controller) Disburse(ctx context.Context, in DisburseInput) (*DisbursementDTO, error) {
	var dto *DisbursementDTO
	err := c.commit(ctx, in.LoanID, func(l *loan.Loan, r uow.Repos) error {
		d, err := validateDisbursement(l, in)
		if err != nil {
			return err
		}

		expected := l.Version
		l.State = loan.StateDisbursed
		l.StateUpdatedAt = d.DisbursedAt
		if err := r.Loans.CompareAndSwap(ctx, l, expected); err != nil {
			return err
		}
		if err := r.Disbursements.Create(ctx, d); err != nil {
			return err
		}

		dto = &DisbursementDTO{
			DisbursementID:  d.DisbursementID,
			FieldOfficerID:  d.FieldOfficerID,
			SignedAgreement: d.SignedAgreementURL,
			DisbursedAt:     d.DisbursedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.log.WithFields(logrus.Fields{
		"loan_id":          in.LoanID,
		"field_officer_id": in.FieldOfficerID,
	}).Info("loan disbursed")
	return dto, nil
}
