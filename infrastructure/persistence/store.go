// Package persistence defines the storage contract every backend implements
// and the selector that picks a backend at process start. Handlers depend on
// these interfaces only; they never see a concrete adapter type.
package persistence

import (
	"context"
	"time"

	"hrdesk-backend/domain/model"
)

// Get operations return (nil, nil) when the record is absent. Update
// operations return false when no row matched. Conflicts from the proactive
// uniqueness pre-check surface as errs.ErrDuplicateName.

// CompanyStore persists companies.
type CompanyStore interface {
	Create(ctx context.Context, c *model.Company) (*model.Company, error)
	GetByID(ctx context.Context, id int) (*model.Company, error)
	GetByName(ctx context.Context, name string) (*model.Company, error)
	List(ctx context.Context) ([]model.Company, error)
	ListActive(ctx context.Context) ([]model.Company, error)
	Update(ctx context.Context, id int, fields model.Fields) (bool, error)
}

// SPOCStore persists company contacts.
type SPOCStore interface {
	Create(ctx context.Context, s *model.SPOC) (*model.SPOC, error)
	GetByID(ctx context.Context, id int) (*model.SPOC, error)
	List(ctx context.Context) ([]model.SPOC, error)
	ListByCompany(ctx context.Context, companyID int) ([]model.SPOC, error)
	Update(ctx context.Context, id int, fields model.Fields) (bool, error)
}

// RequirementStore persists requirements and their status lookup.
type RequirementStore interface {
	Create(ctx context.Context, r *model.Requirement) (*model.Requirement, error)
	GetByID(ctx context.Context, id int) (*model.Requirement, error)
	List(ctx context.Context) ([]model.Requirement, error)
	ListOpenByCompany(ctx context.Context, companyID int) ([]model.Requirement, error)
	ListOpenByCompanyAndRecruiter(ctx context.Context, companyID int, recruiter string) ([]model.Requirement, error)
	Update(ctx context.Context, id int, fields model.Fields) (bool, error)
	ListStatuses(ctx context.Context) ([]model.RequirementStatus, error)
}

// ProfileStore persists candidate profiles and their status lookup.
type ProfileStore interface {
	Create(ctx context.Context, p *model.Profile) (*model.Profile, error)
	GetByID(ctx context.Context, id int) (*model.Profile, error)
	List(ctx context.Context) ([]model.Profile, error)
	Update(ctx context.Context, id int, fields model.Fields) (bool, error)
	ListStatuses(ctx context.Context) ([]model.ProfileStatus, error)
	ListByDateRange(ctx context.Context, start, end time.Time, recruiter string) ([]model.ProfileReport, error)
}

// ProcessProfileStore persists requirement/profile pipeline rows.
type ProcessProfileStore interface {
	// Create is idempotent on (requirement_id, recruiter_name): an existing
	// assignment row is returned instead of inserting a duplicate.
	Create(ctx context.Context, pp *model.ProcessProfile) (*model.ProcessProfile, error)
	// Upsert merges on (requirement_id, profile_id), inserting when absent.
	Upsert(ctx context.Context, pp *model.ProcessProfile) (*model.ProcessProfile, error)
	UpdateRecruiter(ctx context.Context, requirementID int, recruiter string) (bool, error)
	UpdateByProfile(ctx context.Context, requirementID, profileID int, fields model.Fields) (bool, error)
	UpdateActivelyWorkingByRecruiter(ctx context.Context, requirementID int, recruiter, activelyWorking string) (bool, error)
	// ProfilesByRequirement returns pipeline rows with a profile attached,
	// annotated with the stage derived from the profile status lookup. Rows
	// whose profile cannot be loaded are excluded.
	ProfilesByRequirement(ctx context.Context, requirementID int) ([]model.RequirementProfile, error)
	ProfilesByRequirementAndRecruiter(ctx context.Context, requirementID int, recruiter string) ([]model.RequirementProfile, error)
}

// InvoiceStore persists invoices.
type InvoiceStore interface {
	Create(ctx context.Context, inv *model.Invoice) (*model.Invoice, error)
	GetByID(ctx context.Context, id int) (*model.Invoice, error)
	List(ctx context.Context) ([]model.Invoice, error)
	ListByCompany(ctx context.Context, companyID int) ([]model.Invoice, error)
	Update(ctx context.Context, id int, fields model.Fields) (bool, error)
}

// LeaveStore persists leave requests and balances.
type LeaveStore interface {
	Create(ctx context.Context, l *model.Leave) (*model.Leave, error)
	GetByID(ctx context.Context, id int) (*model.Leave, error)
	ListByUser(ctx context.Context, username string) ([]model.Leave, error)
	ListPending(ctx context.Context) ([]model.Leave, error)
	List(ctx context.Context) ([]model.Leave, error)
	Update(ctx context.Context, id int, fields model.Fields) (bool, error)

	CreateBalance(ctx context.Context, username string) (*model.LeaveBalance, error)
	GetBalance(ctx context.Context, username string) (*model.LeaveBalance, error)
	UpdateBalance(ctx context.Context, username string, fields model.Fields) (bool, error)
}

// FinancialYearStore persists financial years. SetActive guarantees at most
// one active year by deactivating all others first.
type FinancialYearStore interface {
	Create(ctx context.Context, fy *model.FinancialYear) (*model.FinancialYear, error)
	GetByID(ctx context.Context, id int) (*model.FinancialYear, error)
	List(ctx context.Context) ([]model.FinancialYear, error)
	GetActive(ctx context.Context) (*model.FinancialYear, error)
	SetActive(ctx context.Context, id int) (bool, error)
	Update(ctx context.Context, id int, fields model.Fields) (bool, error)
}

// HolidayStore persists holiday calendars and per-user optional selections.
type HolidayStore interface {
	Create(ctx context.Context, h *model.Holiday) (*model.Holiday, error)
	GetByID(ctx context.Context, id int) (*model.Holiday, error)
	ListByYear(ctx context.Context, financialYearID int) ([]model.Holiday, error)
	ListMandatory(ctx context.Context, financialYearID int) ([]model.Holiday, error)
	ListOptional(ctx context.Context, financialYearID int) ([]model.Holiday, error)
	Update(ctx context.Context, id int, fields model.Fields) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)

	SelectOptional(ctx context.Context, username string, holidayIDs []int, financialYearID int) error
	UserSelections(ctx context.Context, username string, financialYearID int) ([]model.Holiday, error)
}

// UserStore persists local user records.
type UserStore interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

// Store is the façade handed to handlers: one named sub-store per entity.
// Both backends populate the same shape, so callers cannot depend on
// engine-specific behavior.
type Store struct {
	Company        CompanyStore
	SPOC           SPOCStore
	Requirement    RequirementStore
	Profile        ProfileStore
	ProcessProfile ProcessProfileStore
	Invoice        InvoiceStore
	Leave          LeaveStore
	FinancialYear  FinancialYearStore
	Holiday        HolidayStore
	User           UserStore

	closer func() error
}

// Close releases backend resources (the relational connection pool; a no-op
// for the key-value client).
func (s *Store) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}
