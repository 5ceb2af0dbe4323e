package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	loanDomain "lending-engine/internal/domain/loan"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

// Create inserts the loan. The unique index on active_borrower_id makes the
// borrower-uniqueness check and the insert one atomic statement; the
// duplicate-key error is translated to the domain error. Requires the gorm
// connection to be opened with TranslateError.
func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	if err := r.db.WithContext(ctx).Create(l).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return loanDomain.ErrDuplicateBorrower
		}
		return err
	}
	return nil
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	err := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loanDomain.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

// CompareAndSwap writes the loan's mutable fields guarded by the version
// read at load time, bumping the version in the same statement. Zero rows
// affected means either a stale version or an unknown loan; the follow-up
// read disambiguates.
func (r *LoanRepository) CompareAndSwap(ctx context.Context, l *loanDomain.Loan, expectedVersion uint64) error {
	res := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).
		Where("loan_id = ? AND version = ?", l.LoanID, expectedVersion).
		Updates(map[string]any{
			"state":              l.State,
			"funded_total":       l.FundedTotal,
			"agreement_link":     l.AgreementLink,
			"active_borrower_id": l.ActiveBorrowerID,
			"state_updated_at":   l.StateUpdatedAt,
			"updated_at":         time.Now().UTC(),
			"version":            expectedVersion + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetByLoanID(ctx, l.LoanID); err != nil {
			return err
		}
		return loanDomain.ErrVersionConflict
	}
	l.Version = expectedVersion + 1
	return nil
}

func (r *LoanRepository) ListByBorrowerID(ctx context.Context, borrowerID string) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	err := r.db.WithContext(ctx).
		Where("borrower_id = ?", borrowerID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *LoanRepository) ListByState(ctx context.Context, st loanDomain.State) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	err := r.db.WithContext(ctx).
		Where("state = ?", st).
		Order("state_updated_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *LoanRepository) List(ctx context.Context, page, limit int) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&out).Error
	return out, err
}
