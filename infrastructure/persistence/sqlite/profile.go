package sqlite

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"hrdesk-backend/domain/errs"
	"hrdesk-backend/domain/model"
)

// ProfileStore implements the candidate profile contract on GORM.
type ProfileStore struct {
	db *gorm.DB
}

func NewProfileStore(r *Repository) *ProfileStore {
	return &ProfileStore{db: r.db}
}

func (s *ProfileStore) Create(ctx context.Context, p *model.Profile) (*model.Profile, error) {
	if p.Status != 0 {
		var count int64
		if err := s.db.WithContext(ctx).Model(&model.ProfileStatus{}).
			Where("id = ?", p.Status).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, errs.ErrInvalidStatus
		}
	}

	ts := now()
	p.CreatedDate = ts
	p.UpdatedDate = ts
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProfileStore) GetByID(ctx context.Context, id int) (*model.Profile, error) {
	var p model.Profile
	err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProfileStore) List(ctx context.Context) ([]model.Profile, error) {
	var profiles []model.Profile
	if err := s.db.WithContext(ctx).Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (s *ProfileStore) Update(ctx context.Context, id int, fields model.Fields) (bool, error) {
	result := s.db.WithContext(ctx).Model(&model.Profile{}).
		Where("id = ?", id).
		Updates(withUpdatedDate(fields))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *ProfileStore) ListStatuses(ctx context.Context) ([]model.ProfileStatus, error) {
	var statuses []model.ProfileStatus
	if err := s.db.WithContext(ctx).Order("id").Find(&statuses).Error; err != nil {
		return nil, err
	}
	return statuses, nil
}

// ListByDateRange reports profiles created in [start, end] joined to their
// process-profile assignment and the company it is pipelined for, entirely
// in relational query syntax.
func (s *ProfileStore) ListByDateRange(ctx context.Context, start, end time.Time, recruiter string) ([]model.ProfileReport, error) {
	endOfDay := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, end.Location())

	q := s.db.WithContext(ctx).
		Table("profiles").
		Select(`profiles.id AS profile_id,
			profiles.name AS name,
			profiles.status AS status,
			process_profiles.recruiter_name AS recruiter_name,
			process_profiles.requirement_id AS requirement_id,
			companies.name AS company_name`).
		Joins("LEFT JOIN process_profiles ON process_profiles.profile_id = profiles.id").
		Joins("LEFT JOIN requirements ON requirements.requirement_id = process_profiles.requirement_id").
		Joins("LEFT JOIN companies ON companies.id = requirements.company_id").
		Where("profiles.created_date BETWEEN ? AND ?", start, endOfDay)
	if recruiter != "" {
		q = q.Where("process_profiles.recruiter_name = ?", recruiter)
	}

	var rows []model.ProfileReport
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
