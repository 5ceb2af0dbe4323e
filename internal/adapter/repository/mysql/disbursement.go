package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	disbursementDomain "lending-engine/internal/domain/disbursement"
	loanDomain "lending-engine/internal/domain/loan"
)

type DisbursementRepository struct{ db *gorm.DB }

func NewDisbursementRepository(db *gorm.DB) *DisbursementRepository {
	return &DisbursementRepository{db: db}
}

func (r *DisbursementRepository) Create(ctx context.Context, d *disbursementDomain.Disbursement) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DisbursementRepository) GetByLoanID(ctx context.Context, loanID uint64) (*disbursementDomain.Disbursement, error) {
	var out disbursementDomain.Disbursement
	err := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loanDomain.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}
