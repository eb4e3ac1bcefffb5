package sqlite

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"hrdesk-backend/domain/model"
)

// RequirementStore implements the requirement contract on GORM.
type RequirementStore struct {
	db *gorm.DB
}

func NewRequirementStore(r *Repository) *RequirementStore {
	return &RequirementStore{db: r.db}
}

func (s *RequirementStore) Create(ctx context.Context, r *model.Requirement) (*model.Requirement, error) {
	ts := now()
	r.CreatedDate = ts
	r.UpdatedDate = ts
	if r.StatusID == 0 {
		r.StatusID = model.OpenRequirementStatuses[0]
	}
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		return nil, err
	}
	return r, nil
}

func (s *RequirementStore) GetByID(ctx context.Context, id int) (*model.Requirement, error) {
	var r model.Requirement
	err := s.db.WithContext(ctx).First(&r, "requirement_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *RequirementStore) List(ctx context.Context) ([]model.Requirement, error) {
	var reqs []model.Requirement
	if err := s.db.WithContext(ctx).Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func (s *RequirementStore) ListOpenByCompany(ctx context.Context, companyID int) ([]model.Requirement, error) {
	var reqs []model.Requirement
	err := s.db.WithContext(ctx).
		Where("company_id = ? AND status_id IN ?", companyID, model.OpenRequirementStatuses).
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

// ListOpenByCompanyAndRecruiter restricts open requirements to those with a
// process-profile assignment for the recruiter.
func (s *RequirementStore) ListOpenByCompanyAndRecruiter(ctx context.Context, companyID int, recruiter string) ([]model.Requirement, error) {
	var reqs []model.Requirement
	err := s.db.WithContext(ctx).
		Where("company_id = ? AND status_id IN ?", companyID, model.OpenRequirementStatuses).
		Where("requirement_id IN (?)",
			s.db.Model(&model.ProcessProfile{}).
				Select("requirement_id").
				Where("recruiter_name = ?", recruiter)).
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

func (s *RequirementStore) Update(ctx context.Context, id int, fields model.Fields) (bool, error) {
	result := s.db.WithContext(ctx).Model(&model.Requirement{}).
		Where("requirement_id = ?", id).
		Updates(withUpdatedDate(fields))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *RequirementStore) ListStatuses(ctx context.Context) ([]model.RequirementStatus, error) {
	var statuses []model.RequirementStatus
	if err := s.db.WithContext(ctx).Order("id").Find(&statuses).Error; err != nil {
		return nil, err
	}
	return statuses, nil
}
