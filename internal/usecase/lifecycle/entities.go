package lifecycle

import (
	"time"

	"lending-engine/internal/domain/loan"
)

type CreateLoanInput struct {
	BorrowerID string  `json:"borrower_id"`
	Principal  int64   `json:"principal_amount"`
	Rate       float64 `json:"rate"`
	ROI        float64 `json:"roi"`
}

type ApproveInput struct {
	LoanID      string
	ValidatorID string
	ProofURL    string
}

type RejectInput struct {
	LoanID      string
	ValidatorID string
}

type InvestInput struct {
	LoanID     string
	InvestorID string
	Email      string
	Amount     int64
}

type DisburseInput struct {
	LoanID          string
	FieldOfficerID  string
	SignedAgreement string
}

type ApprovalDTO struct {
	ApprovalID  string    `json:"approval_id"`
	ValidatorID string    `json:"validator_id"`
	ProofURL    string    `json:"proof_url"`
	ApprovedAt  time.Time `json:"approved_at"`
}

type InvestmentDTO struct {
	InvestmentID string    `json:"investment_id"`
	InvestorID   string    `json:"investor_id"`
	Email        string    `json:"email"`
	Amount       int64     `json:"amount"`
	CreatedAt    time.Time `json:"created_at"`
}

type DisbursementDTO struct {
	DisbursementID  string    `json:"disbursement_id"`
	FieldOfficerID  string    `json:"field_officer_id"`
	SignedAgreement string    `json:"signed_agreement"`
	DisbursedAt     time.Time `json:"disbursed_at"`
}

// LoanDTO is the public shape of a loan; ID is the 32-hex public identifier.
type LoanDTO struct {
	ID            string           `json:"id"`
	BorrowerID    string           `json:"borrower_id"`
	Principal     int64            `json:"principal_amount"`
	Rate          float64          `json:"rate"`
	ROI           float64          `json:"roi"`
	State         string           `json:"state"`
	FundedTotal   int64            `json:"funded_total"`
	AgreementLink string           `json:"agreement_link,omitempty"`
	Approval      *ApprovalDTO     `json:"approval,omitempty"`
	Investments   []InvestmentDTO  `json:"investments,omitempty"`
	Disbursement  *DisbursementDTO `json:"disbursement,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

func toLoanDTO(l *loan.Loan) *LoanDTO {
	return &LoanDTO{
		ID:            l.LoanID,
		BorrowerID:    l.BorrowerID,
		Principal:     l.Principal,
		Rate:          l.Rate,
		ROI:           l.ROI,
		State:         string(l.State),
		FundedTotal:   l.FundedTotal,
		AgreementLink: l.AgreementLink,
		CreatedAt:     l.CreatedAt,
	}
}
