// Package sqlite implements the storage contract on a relational engine via
// GORM. The engine supplies primary-key generation, uniqueness enforcement
// and transactional updates; each call runs a short-lived session against a
// shared connection pool.
package sqlite

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"hrdesk-backend/domain/model"
)

// Repository owns the shared *gorm.DB and hands out entity stores.
type Repository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// Open connects to the SQLite database, creates the schema idempotently and
// seeds the status lookup tables when empty.
func Open(path string, logger *zap.Logger) (*Repository, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := migrate(db); err != nil {
		return nil, err
	}

	return &Repository{db: db, logger: logger}, nil
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Company{},
		&model.SPOC{},
		&model.RequirementStatus{},
		&model.Requirement{},
		&model.ProfileStatus{},
		&model.Profile{},
		&model.ProcessProfile{},
		&model.Invoice{},
		&model.Leave{},
		&model.LeaveBalance{},
		&model.FinancialYear{},
		&model.Holiday{},
		&model.UserHolidaySelection{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return seedStatuses(db)
}

// seedStatuses populates the status lookup tables on first start.
func seedStatuses(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.RequirementStatus{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		statuses := model.DefaultRequirementStatuses
		if err := db.Create(&statuses).Error; err != nil {
			return fmt.Errorf("failed to seed requirement statuses: %w", err)
		}
	}

	if err := db.Model(&model.ProfileStatus{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		statuses := model.DefaultProfileStatuses
		if err := db.Create(&statuses).Error; err != nil {
			return fmt.Errorf("failed to seed profile statuses: %w", err)
		}
	}
	return nil
}

// Close releases the underlying connection pool.
func (r *Repository) Close() error {
	db, err := r.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}

// now returns the timestamp stamped on created/updated records.
func now() time.Time {
	return time.Now().UTC()
}

// withUpdatedDate copies the partial fields and stamps updated_date, leaving
// the caller's map untouched.
func withUpdatedDate(fields model.Fields) map[string]interface{} {
	updates := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		updates[k] = v
	}
	updates["updated_date"] = now()
	return updates
}
