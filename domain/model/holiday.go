package model

import "time"

// MaxMandatoryHolidays caps how many mandatory holidays a financial year may
// carry; enforced at the handler layer, not by storage.
const MaxMandatoryHolidays = 8

// FinancialYear is an April-to-March accounting year. At most one row may be
// active; activation deactivates all others first.
type FinancialYear struct {
	ID          int       `json:"id" gorm:"primaryKey"`
	Year        int       `json:"year" gorm:"uniqueIndex"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	IsActive    bool      `json:"is_active"`
	CreatedDate time.Time `json:"created_date"`
	UpdatedDate time.Time `json:"updated_date"`
}

func (FinancialYear) TableName() string { return "financial_years" }

// Holiday is a calendar entry for a financial year. Holidays are the only
// entity supporting hard deletion.
type Holiday struct {
	ID              int       `json:"id" gorm:"primaryKey"`
	FinancialYearID int       `json:"financial_year_id" gorm:"index"`
	Name            string    `json:"name"`
	Date            time.Time `json:"date"`
	IsMandatory     bool      `json:"is_mandatory"`
	CreatedDate     time.Time `json:"created_date"`
	UpdatedDate     time.Time `json:"updated_date"`
}

func (Holiday) TableName() string { return "holiday_calendar" }

// UserHolidaySelection records one optional holiday picked by a user for a
// financial year. Re-selecting replaces the user's previous picks for that
// year.
type UserHolidaySelection struct {
	ID              int       `json:"id" gorm:"primaryKey"`
	Username        string    `json:"username" gorm:"index"`
	HolidayID       int       `json:"holiday_id"`
	FinancialYearID int       `json:"financial_year_id" gorm:"index"`
	CreatedDate     time.Time `json:"created_date"`
}

func (UserHolidaySelection) TableName() string { return "user_holiday_selections" }

// UserHolidays is the per-user holiday view for a financial year.
type UserHolidays struct {
	Mandatory         []Holiday `json:"mandatory_holidays"`
	SelectedOptional  []Holiday `json:"selected_optional_holidays"`
	AvailableOptional []Holiday `json:"available_optional_holidays"`
}
