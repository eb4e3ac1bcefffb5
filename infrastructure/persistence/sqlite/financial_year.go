package sqlite

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"hrdesk-backend/domain/model"
)

// FinancialYearStore implements the financial-year contract on GORM. The
// at-most-one-active invariant is kept by activating the target and
// deactivating the rest inside one transaction.
type FinancialYearStore struct {
	db *gorm.DB
}

func NewFinancialYearStore(r *Repository) *FinancialYearStore {
	return &FinancialYearStore{db: r.db}
}

func (s *FinancialYearStore) Create(ctx context.Context, fy *model.FinancialYear) (*model.FinancialYear, error) {
	ts := now()
	fy.CreatedDate = ts
	fy.UpdatedDate = ts

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if fy.IsActive {
			if err := tx.Model(&model.FinancialYear{}).
				Where("is_active = ?", true).
				Update("is_active", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(fy).Error
	})
	if err != nil {
		return nil, err
	}
	return fy, nil
}

func (s *FinancialYearStore) GetByID(ctx context.Context, id int) (*model.FinancialYear, error) {
	var fy model.FinancialYear
	err := s.db.WithContext(ctx).First(&fy, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &fy, nil
}

func (s *FinancialYearStore) List(ctx context.Context) ([]model.FinancialYear, error) {
	var years []model.FinancialYear
	if err := s.db.WithContext(ctx).Order("year DESC").Find(&years).Error; err != nil {
		return nil, err
	}
	return years, nil
}

func (s *FinancialYearStore) GetActive(ctx context.Context) (*model.FinancialYear, error) {
	var fy model.FinancialYear
	err := s.db.WithContext(ctx).Where("is_active = ?", true).First(&fy).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &fy, nil
}

// SetActive activates the given year and deactivates every other one. When
// the id matches no row, nothing changes and the currently active year stays
// active.
func (s *FinancialYearStore) SetActive(ctx context.Context, id int) (bool, error) {
	var matched int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.FinancialYear{}).
			Where("id = ?", id).
			Updates(withUpdatedDate(model.Fields{"is_active": true}))
		if result.Error != nil {
			return result.Error
		}
		matched = result.RowsAffected
		if matched == 0 {
			return nil
		}
		return tx.Model(&model.FinancialYear{}).
			Where("is_active = ? AND id <> ?", true, id).
			Update("is_active", false).Error
	})
	if err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (s *FinancialYearStore) Update(ctx context.Context, id int, fields model.Fields) (bool, error) {
	if active, ok := fields["is_active"].(bool); ok && active {
		return s.SetActive(ctx, id)
	}

	result := s.db.WithContext(ctx).Model(&model.FinancialYear{}).
		Where("id = ?", id).
		Updates(withUpdatedDate(fields))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
