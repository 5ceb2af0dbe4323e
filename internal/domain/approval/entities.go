package approval

import (
	"time"
)

// Approval records the validator decision that moved a loan out of the
// proposed state. At most one approval exists per loan.
type Approval struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	ApprovalID  string    `gorm:"column:approval_id;type:char(32);not null;uniqueIndex:ux_approvals_approval_id"`
	LoanID      uint64    `gorm:"column:loan_id;not null;uniqueIndex:ux_approvals_loan"`
	ValidatorID string    `gorm:"column:validator_id;size:64;not null"`
	ProofURL    string    `gorm:"column:proof_url;type:text;not null"`
	ApprovedAt  time.Time `gorm:"column:approved_at;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Approval) TableName() string { return "approvals" }
