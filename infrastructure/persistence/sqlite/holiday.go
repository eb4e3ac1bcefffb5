package sqlite

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"hrdesk-backend/domain/model"
)

// HolidayStore implements the holiday-calendar contract on GORM.
type HolidayStore struct {
	db *gorm.DB
}

func NewHolidayStore(r *Repository) *HolidayStore {
	return &HolidayStore{db: r.db}
}

func (s *HolidayStore) Create(ctx context.Context, h *model.Holiday) (*model.Holiday, error) {
	ts := now()
	h.CreatedDate = ts
	h.UpdatedDate = ts
	if err := s.db.WithContext(ctx).Create(h).Error; err != nil {
		return nil, err
	}
	return h, nil
}

func (s *HolidayStore) GetByID(ctx context.Context, id int) (*model.Holiday, error) {
	var h model.Holiday
	err := s.db.WithContext(ctx).First(&h, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (s *HolidayStore) ListByYear(ctx context.Context, financialYearID int) ([]model.Holiday, error) {
	return s.list(ctx, s.db.Where("financial_year_id = ?", financialYearID))
}

func (s *HolidayStore) ListMandatory(ctx context.Context, financialYearID int) ([]model.Holiday, error) {
	return s.list(ctx, s.db.Where("financial_year_id = ? AND is_mandatory = ?", financialYearID, true))
}

func (s *HolidayStore) ListOptional(ctx context.Context, financialYearID int) ([]model.Holiday, error) {
	return s.list(ctx, s.db.Where("financial_year_id = ? AND is_mandatory = ?", financialYearID, false))
}

func (s *HolidayStore) list(ctx context.Context, q *gorm.DB) ([]model.Holiday, error) {
	var holidays []model.Holiday
	if err := q.WithContext(ctx).Order("date").Find(&holidays).Error; err != nil {
		return nil, err
	}
	return holidays, nil
}

func (s *HolidayStore) Update(ctx context.Context, id int, fields model.Fields) (bool, error) {
	result := s.db.WithContext(ctx).Model(&model.Holiday{}).
		Where("id = ?", id).
		Updates(withUpdatedDate(fields))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Delete removes the holiday; the only hard delete in the system.
func (s *HolidayStore) Delete(ctx context.Context, id int) (bool, error) {
	result := s.db.WithContext(ctx).Delete(&model.Holiday{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// SelectOptional replaces the user's optional-holiday picks for the year.
func (s *HolidayStore) SelectOptional(ctx context.Context, username string, holidayIDs []int, financialYearID int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("username = ? AND financial_year_id = ?", username, financialYearID).
			Delete(&model.UserHolidaySelection{}).Error; err != nil {
			return err
		}
		for _, holidayID := range holidayIDs {
			selection := model.UserHolidaySelection{
				Username:        username,
				HolidayID:       holidayID,
				FinancialYearID: financialYearID,
				CreatedDate:     now(),
			}
			if err := tx.Create(&selection).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UserSelections resolves the user's picks to full holiday rows.
func (s *HolidayStore) UserSelections(ctx context.Context, username string, financialYearID int) ([]model.Holiday, error) {
	var holidays []model.Holiday
	err := s.db.WithContext(ctx).
		Table("holiday_calendar").
		Joins("JOIN user_holiday_selections ON user_holiday_selections.holiday_id = holiday_calendar.id").
		Where("user_holiday_selections.username = ? AND user_holiday_selections.financial_year_id = ?", username, financialYearID).
		Order("holiday_calendar.date").
		Find(&holidays).Error
	if err != nil {
		return nil, err
	}
	return holidays, nil
}
