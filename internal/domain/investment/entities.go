package investment

import (
	"time"
)

// Investment is a single investor's accepted contribution toward a loan's
// principal. Amount is in the smallest currency unit. Rows are append-only;
// an accepted investment is never retroactively invalidated.
type Investment struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	InvestmentID string    `gorm:"column:investment_id;type:char(32);not null;uniqueIndex:ux_investments_investment_id" json:"investment_id"`
	LoanID       uint64    `gorm:"column:loan_id;not null;index:idx_investments_loan" json:"-"`
	InvestorID   string    `gorm:"column:investor_id;size:64;not null" json:"investor_id"`
	Email        string    `gorm:"column:email;size:255;not null" json:"email"`
	Amount       int64     `gorm:"column:amount;not null" json:"amount"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Investment) TableName() string { return "investments" }
