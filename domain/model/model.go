// Package model defines the flat entity records shared by both storage
// backends. Every entity is identified by an integer primary key; relations
// are plain foreign-key fields resolved by a second lookup.
package model

// Fields carries a partial update: column name to new value. Only the keys
// present are written; adapters stamp updated_date on every update.
type Fields map[string]interface{}

// Entity statuses shared across handlers and adapters.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Counter table names used by the key-value backend's ID sequence.
const (
	CounterCompanies       = "companies"
	CounterSPOCs           = "spocs"
	CounterRequirements    = "requirements"
	CounterProfiles        = "profiles"
	CounterProcessProfiles = "process_profiles"
	CounterInvoices        = "invoices"
	CounterLeaves          = "leaves"
	CounterLeaveBalances   = "leave_balances"
	CounterFinancialYears  = "financial_years"
	CounterHolidays        = "holidays"
	CounterSelections      = "holiday_selections"
	CounterUsers           = "users"
)
