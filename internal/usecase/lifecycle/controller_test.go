package lifecycle

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"

	"lending-engine/internal/domain/loan"
	"lending-engine/internal/testutil/storemock"
)

// ----- test doubles -----

// captureSender records notification calls.
type captureSender struct {
	mu         sync.Mutex
	receipts   []string // emails that got a receipt
	agreements []string // emails that got an agreement letter
	failWith   error
}

func (s *captureSender) SendInvestmentReceipt(email, loanID string, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	s.receipts = append(s.receipts, email)
	return nil
}

func (s *captureSender) SendAgreementEmail(email, loanID, agreementURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	s.agreements = append(s.agreements, email)
	return nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestController() (*Controller, *storemock.Store, *captureSender) {
	store := storemock.New()
	sender := &captureSender{}
	return NewController(store, store, sender, quietLogger()), store, sender
}

func mustCreate(t *testing.T, c *Controller, borrowerID string, principal int64) *LoanDTO {
	t.Helper()
	dto, err := c.Create(context.Background(), CreateLoanInput{
		BorrowerID: borrowerID,
		Principal:  principal,
		Rate:       0.22,
		ROI:        0.18,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return dto
}

func mustApprove(t *testing.T, c *Controller, loanID string) {
	t.Helper()
	_, err := c.Approve(context.Background(), ApproveInput{
		LoanID:      loanID,
		ValidatorID: "VALID-001",
		ProofURL:    "https://storage.example.com/loan-proof/visit123.jpeg",
	})
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
}

// ----- create -----

func TestCreate_Success(t *testing.T) {
	c, _, _ := newTestController()

	dto := mustCreate(t, c, "B001", 5_000_000)
	if len(dto.ID) != 32 {
		t.Fatalf("loan id length = %d", len(dto.ID))
	}
	if dto.State != string(loan.StateProposed) {
		t.Fatalf("state = %s", dto.State)
	}
	if dto.FundedTotal != 0 {
		t.Fatalf("funded_total = %d", dto.FundedTotal)
	}
}

func TestCreate_DuplicateBorrower(t *testing.T) {
	c, _, _ := newTestController()
	ctx := context.Background()

	first := mustCreate(t, c, "B001", 5_000_000)

	_, err := c.Create(ctx, CreateLoanInput{BorrowerID: "B001", Principal: 6_000_000, Rate: 0.12, ROI: 0.18})
	if !errors.Is(err, loan.ErrDuplicateBorrower) {
		t.Fatalf("err = %v, want ErrDuplicateBorrower", err)
	}

	// The original loan is untouched.
	got, err := c.Get(ctx, first.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.State != string(loan.StateProposed) || got.Principal != 5_000_000 {
		t.Fatalf("original loan modified: %+v", got)
	}
}

func TestCreate_InvalidInput(t *testing.T) {
	c, _, _ := newTestController()
	ctx := context.Background()

	cases := []CreateLoanInput{
		{BorrowerID: "", Principal: 100, Rate: 0.1, ROI: 0.1},
		{BorrowerID: "B002", Principal: 0, Rate: 0.1, ROI: 0.1},
		{BorrowerID: "B002", Principal: -5, Rate: 0.1, ROI: 0.1},
		{BorrowerID: "B002", Principal: 100, Rate: 0, ROI: 0.1},
		{BorrowerID: "B002", Principal: 100, Rate: 0.1, ROI: -1},
	}
	for _, in := range cases {
		if _, err := c.Create(ctx, in); err == nil {
			t.Fatalf("Create(%+v) succeeded, want error", in)
		}
	}
}

// ----- approve / reject -----

func TestApprove_Success(t *testing.T) {
	c, _, _ := newTestController()
	ctx := context.Background()

	dto := mustCreate(t, c, "B001", 5_000_000)
	a, err := c.Approve(ctx, ApproveInput{
		LoanID:      dto.ID,
		ValidatorID: "VALID-001",
		ProofURL:    "https://storage.example.com/loan-proof/visit123.jpeg",
	})
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if len(a.ApprovalID) != 32 || a.ValidatorID != "VALID-001" {
		t.Fatalf("approval = %+v", a)
	}

	got, _ := c.Get(ctx, dto.ID)
	if got.State != string(loan.StateApproved) {
		t.Fatalf("state = %s", got.State)
	}
	if got.Approval == nil || got.Approval.ProofURL != "https://storage.example.com/loan-proof/visit123.jpeg" {
		t.Fatalf("approval record missing: %+v", got)
	}
}

func TestApprove_WrongState(t *testing.T) {
	c, _, _ := newTestController()
	ctx := context.Background()

	dto := mustCreate(t, c, "B001", 5_000_000)
	mustApprove(t, c, dto.ID)

	_, err := c.Approve(ctx, ApproveInput{LoanID: dto.ID, ValidatorID: "VALID-002", ProofURL: "https://example.com/p.jpg"})
	if !errors.Is(err, loan.ErrInvalidState) {
		t.Fatalf("err = %v, want ErrInvalidState", err)
	}
}

func TestApprove_BadProofURL(t *testing.T) {
	c, _, _ := newTestController()
	ctx := context.Background()

	dto := mustCreate(t, c, "B001", 5_000_000)
	for _, proof := range []string{"", "   ", "not-a-url", "ftp://example.com/x"} {
		_, err := c.Approve(ctx, ApproveInput{LoanID: dto.ID, ValidatorID: "VALID-001", ProofURL: proof})
		if !errors.Is(err, loan.ErrInvalidProof) {
			t.Fatalf("proof %q: err = %v, want ErrInvalidProof", proof, err)
		}
	}
}

func TestApprove_UnknownLoan(t *testing.T) {
	c, _, _ := newTestController()
	_, err := c.Approve(context.Background(), ApproveInput{
		LoanID:      "ffffffffffffffffffffffffffffffff",
		ValidatorID: "VALID-001",
		ProofURL:    "https://example.com/p.jpg",
	})
	if !errors.Is(err, loan.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestReject_FreesBorrowerSlot(t *testing.T) {
	c, _, _ := newTestController()
	ctx := context.Background()

	dto := mustCreate(t, c, "B001", 5_000_000)
	rejected, err := c.Reject(ctx, RejectInput{LoanID: dto.ID, ValidatorID: "VALID-001"})
	if err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if rejected.State != string(loan.StateRejected) {
		t.Fatalf("state = %s", rejected.State)
	}

	// Borrower may propose again after rejection.
	if _, err := c.Create(ctx, CreateLoanInput{BorrowerID: "B001", Principal: 1_000_000, Rate: 0.2, ROI: 0.1}); err != nil {
		t.Fatalf("Create after reject: %v", err)
	}

	// The rejected loan is terminal.
	_, err = c.Approve(ctx, ApproveInput{LoanID: dto.ID, ValidatorID: "VALID-001", ProofURL: "https://example.com/p.jpg"})
	if !errors.Is(err, loan.ErrInvalidState) {
		t.Fatalf("approve rejected loan: err = %v", err)
	}
}

func TestReject_NonProposed(t *testing.T) {
	c, _, _ := newTestController()
	ctx := context.Background()

	dto := mustCreate(t, c, "B001", 5_000_000)
	mustApprove(t, c, dto.ID)

	_, err := c.Reject(ctx, RejectInput{LoanID: dto.ID, ValidatorID: "VALID-001"})
	if !errors.Is(err, loan.ErrInvalidState) {
		t.Fatalf("err = %v, want ErrInvalidState", err)
	}
}

// ----- agreement letter -----

func TestAttachAgreementLetter(t *testing.T) {
	c, _, _ := newTestController()
	ctx := context.Background()

	dto := mustCreate(t, c, "B001", 5_000_000)
	if err := c.AttachAgreementLetter(ctx, dto.ID, "https://storage.example.com/agreements/a.pdf"); err != nil {
		t.Fatalf("AttachAgreementLetter: %v", err)
	}
	got, _ := c.Get(ctx, dto.ID)
	if got.AgreementLink != "https://storage.example.com/agreements/a.pdf" {
		t.Fatalf("agreement_link = %q", got.AgreementLink)
	}

	if err := c.AttachAgreementLetter(ctx, dto.ID, "junk"); !errors.Is(err, loan.ErrInvalidAgreement) {
		t.Fatalf("err = %v, want ErrInvalidAgreement", err)
	}

	if _, err := c.Reject(ctx, RejectInput{LoanID: dto.ID, ValidatorID: "V"}); err != nil {
		t.Fatalf("Reject: %v", err)
	}
	err := c.AttachAgreementLetter(ctx, dto.ID, "https://example.com/a.pdf")
	if !errors.Is(err, loan.ErrInvalidState) {
		t.Fatalf("attach to rejected loan: err = %v", err)
	}
}

// ----- reads -----

func TestListByBorrowerAndState(t *testing.T) {
	c, _, _ := newTestController()
	ctx := context.Background()

	a := mustCreate(t, c, "B001", 1_000_000)
	mustCreate(t, c, "B002", 2_000_000)
	mustApprove(t, c, a.ID)

	byBorrower, err := c.ListByBorrower(ctx, "B001")
	if err != nil {
		t.Fatalf("ListByBorrower: %v", err)
	}
	if len(byBorrower) != 1 || byBorrower[0].ID != a.ID {
		t.Fatalf("byBorrower = %+v", byBorrower)
	}

	approved, err := c.ListByState(ctx, loan.StateApproved)
	if err != nil {
		t.Fatalf("ListByState: %v", err)
	}
	if len(approved) != 1 || approved[0].ID != a.ID {
		t.Fatalf("approved = %+v", approved)
	}

	if _, err := c.ListByState(ctx, loan.State("bogus")); !errors.Is(err, loan.ErrInvalidInput) {
		t.Fatalf("bogus state err = %v", err)
	}

	page, err := c.List(ctx, 1, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("List returned %d loans", len(page))
	}
}
