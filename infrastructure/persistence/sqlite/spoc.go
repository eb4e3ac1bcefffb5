package sqlite

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"hrdesk-backend/domain/model"
)

// SPOCStore implements the SPOC contract on GORM.
type SPOCStore struct {
	db *gorm.DB
}

func NewSPOCStore(r *Repository) *SPOCStore {
	return &SPOCStore{db: r.db}
}

func (s *SPOCStore) Create(ctx context.Context, sp *model.SPOC) (*model.SPOC, error) {
	ts := now()
	sp.CreatedDate = ts
	sp.UpdatedDate = ts
	if sp.Status == "" {
		sp.Status = model.StatusActive
	}
	if err := s.db.WithContext(ctx).Create(sp).Error; err != nil {
		return nil, err
	}
	return sp, nil
}

func (s *SPOCStore) GetByID(ctx context.Context, id int) (*model.SPOC, error) {
	var sp model.SPOC
	err := s.db.WithContext(ctx).First(&sp, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sp, nil
}

func (s *SPOCStore) List(ctx context.Context) ([]model.SPOC, error) {
	var spocs []model.SPOC
	if err := s.db.WithContext(ctx).Find(&spocs).Error; err != nil {
		return nil, err
	}
	return spocs, nil
}

func (s *SPOCStore) ListByCompany(ctx context.Context, companyID int) ([]model.SPOC, error) {
	var spocs []model.SPOC
	if err := s.db.WithContext(ctx).Where("company_id = ?", companyID).Find(&spocs).Error; err != nil {
		return nil, err
	}
	return spocs, nil
}

func (s *SPOCStore) Update(ctx context.Context, id int, fields model.Fields) (bool, error) {
	result := s.db.WithContext(ctx).Model(&model.SPOC{}).
		Where("id = ?", id).
		Updates(withUpdatedDate(fields))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
