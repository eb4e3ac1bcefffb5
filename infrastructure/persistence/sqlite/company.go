package sqlite

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"hrdesk-backend/domain/errs"
	"hrdesk-backend/domain/model"
)

// CompanyStore implements the company contract on GORM.
type CompanyStore struct {
	db *gorm.DB
}

// NewCompanyStore creates a company store over the shared database handle.
func NewCompanyStore(r *Repository) *CompanyStore {
	return &CompanyStore{db: r.db}
}

// Create inserts a company after a case-insensitive name pre-check.
func (s *CompanyStore) Create(ctx context.Context, c *model.Company) (*model.Company, error) {
	existing, err := s.GetByName(ctx, c.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errs.ErrDuplicateName
	}

	ts := now()
	c.CreatedDate = ts
	c.UpdatedDate = ts
	if c.Status == "" {
		c.Status = model.StatusActive
	}
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// GetByID returns the company or nil when absent.
func (s *CompanyStore) GetByID(ctx context.Context, id int) (*model.Company, error) {
	var c model.Company
	err := s.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByName matches the company name case-insensitively.
func (s *CompanyStore) GetByName(ctx context.Context, name string) (*model.Company, error) {
	var c model.Company
	err := s.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CompanyStore) List(ctx context.Context) ([]model.Company, error) {
	var companies []model.Company
	if err := s.db.WithContext(ctx).Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

func (s *CompanyStore) ListActive(ctx context.Context) ([]model.Company, error) {
	var companies []model.Company
	if err := s.db.WithContext(ctx).Where("status = ?", model.StatusActive).Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

// Update applies the supplied fields and stamps updated_date, reporting
// whether a row matched.
func (s *CompanyStore) Update(ctx context.Context, id int, fields model.Fields) (bool, error) {
	result := s.db.WithContext(ctx).Model(&model.Company{}).
		Where("id = ?", id).
		Updates(withUpdatedDate(fields))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
