package disbursement

import (
	"time"
)

// Disbursement records the one-shot release of funds to the borrower, with
// the field officer who collected the signed agreement.
type Disbursement struct {
	ID                 uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	DisbursementID     string    `gorm:"column:disbursement_id;type:char(32);not null;uniqueIndex:ux_disbursements_disbursement_id" json:"disbursement_id"`
	LoanID             uint64    `gorm:"column:loan_id;not null;uniqueIndex:ux_disbursements_loan" json:"-"`
	FieldOfficerID     string    `gorm:"column:field_officer_id;size:64;not null" json:"field_officer_id"`
	SignedAgreementURL string    `gorm:"column:signed_agreement_url;type:text;not null" json:"signed_agreement_url"`
	DisbursedAt        time.Time `gorm:"column:disbursed_at;not null" json:"disbursed_at"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
}

func (Disbursement) TableName() string { return "disbursements" }
