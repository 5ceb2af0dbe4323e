package loan

import (
	"time"
)

type State string

const (
	StateProposed    State = "proposed"
	StateApproved    State = "approved"
	StateFunding     State = "funding"
	StateFullyFunded State = "fully_funded"
	StateDisbursed   State = "disbursed"
	StateRejected    State = "rejected"
)

// Loan is the lending record tracked through its lifecycle. Principal and
// FundedTotal are in the smallest currency unit. Version backs the
// compare-and-swap commit protocol; it starts at 1 and increments on every
// successful mutation.
type Loan struct {
	ID         uint64 `gorm:"primaryKey;column:id" json:"-"`
	LoanID     string `gorm:"size:32;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	BorrowerID string `gorm:"size:64;index:idx_loans_borrower" json:"borrower_id"`
	// ActiveBorrowerID mirrors BorrowerID while the loan is live and is
	// cleared on rejection. The unique index on it makes borrower
	// uniqueness a single atomic insert (NULLs are exempt).
	ActiveBorrowerID *string   `gorm:"size:64;uniqueIndex:ux_loans_active_borrower" json:"-"`
	Principal        int64     `gorm:"column:principal" json:"principal_amount"`
	Rate             float64   `gorm:"type:decimal(6,4)" json:"rate"`
	ROI              float64   `gorm:"type:decimal(6,4)" json:"roi"`
	AgreementLink    string    `gorm:"type:text" json:"agreement_link"`
	State            State     `gorm:"type:enum('proposed','approved','funding','fully_funded','disbursed','rejected');default:'proposed'" json:"state"`
	FundedTotal      int64     `gorm:"column:funded_total;default:0" json:"funded_total"`
	Version          uint64    `gorm:"column:version;default:1" json:"-"`
	StateUpdatedAt   time.Time `gorm:"autoCreateTime" json:"state_updated_at"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }

// Remaining reports how much principal is still open for investment.
func (l *Loan) Remaining() int64 { return l.Principal - l.FundedTotal }

// Terminal reports whether the loan can never transition again.
func (l *Loan) Terminal() bool {
	return l.State == StateDisbursed || l.State == StateRejected
}
