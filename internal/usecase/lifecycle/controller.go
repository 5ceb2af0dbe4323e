package lifecycle

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"lending-engine/internal/domain/loan"
	"lending-engine/internal/domain/uow"
	"lending-engine/pkg/id"
)

// DefaultCommitRetries bounds the optimistic-retry loop. A mutation that
// loses the compare-and-swap this many times in a row fails with
// loan.ErrContention.
const DefaultCommitRetries = 5

// EmailSender dispatches investor notifications. Sends are best-effort; a
// failure is logged and never rolls back a committed investment.
type EmailSender interface {
	SendInvestmentReceipt(email, loanID string, amount int64) error
	SendAgreementEmail(email, loanID, agreementURL string) error
}

// Controller is the single authority over loan state. Every mutation loads a
// snapshot, runs pure validation against it, and commits via the store's
// compare-and-swap inside one transaction, retrying on version conflicts.
type Controller struct {
	loans   loan.Repository
	uow     uow.UnitOfWork
	email   EmailSender
	log     *logrus.Logger
	retries int
}

func NewController(loans loan.Repository, tx uow.UnitOfWork, email EmailSender, log *logrus.Logger) *Controller {
	return &Controller{loans: loans, uow: tx, email: email, log: log, retries: DefaultCommitRetries}
}

// WithCommitRetries overrides the optimistic retry budget.
func (c *Controller) WithCommitRetries(n int) *Controller {
	if n > 0 {
		c.retries = n
	}
	return c
}

// Create registers a new loan in the proposed state. Borrower uniqueness is
// enforced by the store's atomic insert, not a check-then-write.
func (c *Controller) Create(ctx context.Context, in CreateLoanInput) (*LoanDTO, error) {
	if strings.TrimSpace(in.BorrowerID) == "" {
		return nil, loan.ErrInvalidInput
	}
	if in.Principal <= 0 || in.Rate <= 0 || in.ROI <= 0 {
		return nil, loan.ErrInvalidAmount
	}

	borrower := strings.TrimSpace(in.BorrowerID)
	now := time.Now().UTC()
	l := &loan.Loan{
		LoanID:           id.NewID32(),
		BorrowerID:       borrower,
		ActiveBorrowerID: &borrower,
		Principal:        in.Principal,
		Rate:             in.Rate,
		ROI:              in.ROI,
		State:            loan.StateProposed,
		Version:          1,
		StateUpdatedAt:   now,
	}

	if err := c.loans.Create(ctx, l); err != nil {
		return nil, err
	}

	c.log.WithFields(logrus.Fields{
		"loan_id":     l.LoanID,
		"borrower_id": l.BorrowerID,
		"principal":   l.Principal,
	}).Info("loan created")
	return toLoanDTO(l), nil
}

// commit runs the load→validate→CAS loop. attempt receives a fresh snapshot
// and the transactional repos, performs the compare-and-swap itself, and
// returns loan.ErrVersionConflict to request a reload.
func (c *Controller) commit(ctx context.Context, loanID string, attempt func(l *loan.Loan, r uow.Repos) error) error {
	for i := 0; i < c.retries; i++ {
		l, err := c.loans.GetByLoanID(ctx, loanID)
		if err != nil {
			return err
		}
		err = c.uow.WithinTx(ctx, func(r uow.Repos) error {
			return attempt(l, r)
		})
		if errors.Is(err, loan.ErrVersionConflict) {
			c.log.WithFields(logrus.Fields{"loan_id": loanID, "attempt": i + 1}).
				Warn("commit lost version race, retrying")
			continue
		}
		return err
	}
	return loan.ErrContention
}

// Reject moves a proposed loan to the terminal rejected state and frees the
// borrower's active slot.
func (c *Controller) Reject(ctx context.Context, in RejectInput) (*LoanDTO, error) {
	var out *LoanDTO
	err := c.commit(ctx, in.LoanID, func(l *loan.Loan, r uow.Repos) error {
		next, err := loan.Next(l.State, loan.EventReject)
		if err != nil {
			return err
		}
		expected := l.Version
		l.State = next
		l.ActiveBorrowerID = nil
		l.StateUpdatedAt = time.Now().UTC()
		if err := r.Loans.CompareAndSwap(ctx, l, expected); err != nil {
			return err
		}
		out = toLoanDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	c.log.WithFields(logrus.Fields{"loan_id": in.LoanID, "validator_id": in.ValidatorID}).
		Info("loan rejected")
	return out, nil
}

// AttachAgreementLetter stores the generated agreement letter URL on the
// loan. Rejected loans cannot receive one.
func (c *Controller) AttachAgreementLetter(ctx context.Context, loanID, letterURL string) error {
	if !wellFormedURL(letterURL) {
		return loan.ErrInvalidAgreement
	}
	err := c.commit(ctx, loanID, func(l *loan.Loan, r uow.Repos) error {
		if l.State == loan.StateRejected {
			return loan.ErrInvalidState
		}
		expected := l.Version
		l.AgreementLink = letterURL
		return r.Loans.CompareAndSwap(ctx, l, expected)
	})
	if err != nil {
		return err
	}
	c.log.WithFields(logrus.Fields{"loan_id": loanID, "letter_url": letterURL}).
		Info("agreement letter attached")
	return nil
}

// wellFormedURL accepts absolute http(s) URLs only.
func wellFormedURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
