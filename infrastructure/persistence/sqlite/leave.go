package sqlite

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"hrdesk-backend/domain/model"
)

// LeaveStore implements the leave contract on GORM.
type LeaveStore struct {
	db *gorm.DB
}

func NewLeaveStore(r *Repository) *LeaveStore {
	return &LeaveStore{db: r.db}
}

func (s *LeaveStore) Create(ctx context.Context, l *model.Leave) (*model.Leave, error) {
	ts := now()
	l.CreatedDate = ts
	l.UpdatedDate = ts
	if l.Status == "" {
		l.Status = model.LeavePending
	}
	if err := s.db.WithContext(ctx).Create(l).Error; err != nil {
		return nil, err
	}
	return l, nil
}

func (s *LeaveStore) GetByID(ctx context.Context, id int) (*model.Leave, error) {
	var l model.Leave
	err := s.db.WithContext(ctx).First(&l, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *LeaveStore) ListByUser(ctx context.Context, username string) ([]model.Leave, error) {
	var leaves []model.Leave
	err := s.db.WithContext(ctx).
		Where("username = ?", username).
		Order("created_date DESC").
		Find(&leaves).Error
	if err != nil {
		return nil, err
	}
	return leaves, nil
}

func (s *LeaveStore) ListPending(ctx context.Context) ([]model.Leave, error) {
	var leaves []model.Leave
	err := s.db.WithContext(ctx).
		Where("status = ?", model.LeavePending).
		Order("created_date DESC").
		Find(&leaves).Error
	if err != nil {
		return nil, err
	}
	return leaves, nil
}

func (s *LeaveStore) List(ctx context.Context) ([]model.Leave, error) {
	var leaves []model.Leave
	if err := s.db.WithContext(ctx).Order("created_date DESC").Find(&leaves).Error; err != nil {
		return nil, err
	}
	return leaves, nil
}

func (s *LeaveStore) Update(ctx context.Context, id int, fields model.Fields) (bool, error) {
	result := s.db.WithContext(ctx).Model(&model.Leave{}).
		Where("id = ?", id).
		Updates(withUpdatedDate(fields))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *LeaveStore) CreateBalance(ctx context.Context, username string) (*model.LeaveBalance, error) {
	ts := now()
	balance := &model.LeaveBalance{
		Username:    username,
		AnnualLeave: model.DefaultAnnualLeave,
		SickLeave:   model.DefaultSickLeave,
		CasualLeave: model.DefaultCasualLeave,
		Year:        time.Now().Year(),
		CreatedDate: ts,
		UpdatedDate: ts,
	}
	if err := s.db.WithContext(ctx).Create(balance).Error; err != nil {
		return nil, err
	}
	return balance, nil
}

func (s *LeaveStore) GetBalance(ctx context.Context, username string) (*model.LeaveBalance, error) {
	var balance model.LeaveBalance
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&balance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &balance, nil
}

func (s *LeaveStore) UpdateBalance(ctx context.Context, username string, fields model.Fields) (bool, error) {
	result := s.db.WithContext(ctx).Model(&model.LeaveBalance{}).
		Where("username = ?", username).
		Updates(withUpdatedDate(fields))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
