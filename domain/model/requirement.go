package model

import "time"

// RequirementStatus is a lookup row mapping a status id to its display name.
type RequirementStatus struct {
	ID     int    `json:"id" gorm:"primaryKey"`
	Status string `json:"status" gorm:"uniqueIndex"`
}

func (RequirementStatus) TableName() string { return "requirement_status" }

// DefaultRequirementStatuses seeds the requirement status lookup on first
// start of either backend.
var DefaultRequirementStatuses = []RequirementStatus{
	{ID: 1, Status: "Open"},
	{ID: 2, Status: "Sourcing"},
	{ID: 3, Status: "Interviewing"},
	{ID: 4, Status: "Offered"},
	{ID: 5, Status: "On Hold"},
	{ID: 6, Status: "Awaiting Confirmation"},
	{ID: 7, Status: "Joined"},
	{ID: 8, Status: "Invoiced"},
	{ID: 9, Status: "Closed"},
	{ID: 10, Status: "Cancelled"},
}

// Requirement status ids considered open or terminal. A requirement entering
// a terminal status gets its closed_date stamped.
var (
	OpenRequirementStatuses     = []int{1, 2, 3}
	TerminalRequirementStatuses = []int{9, 10}
)

// IsTerminalRequirementStatus reports whether the status id closes a requirement.
func IsTerminalRequirementStatus(statusID int) bool {
	for _, id := range TerminalRequirementStatuses {
		if id == statusID {
			return true
		}
	}
	return false
}

// Requirement is an open position raised by a company.
type Requirement struct {
	RequirementID       int        `json:"requirement_id" gorm:"primaryKey"`
	CompanyID           int        `json:"company_id" gorm:"index"`
	KeySkill            string     `json:"key_skill"`
	JD                  string     `json:"jd"`
	StatusID            int        `json:"status_id" gorm:"index"`
	RecruiterName       string     `json:"recruiter_name"`
	ClosedDate          *time.Time `json:"closed_date,omitempty"`
	Budget              float64    `json:"budget"`
	ExpectedBillingDate *time.Time `json:"expected_billing_date,omitempty"`
	Location            string     `json:"location"`
	Remarks             string     `json:"remarks"`
	ReqCustRefID        string     `json:"req_cust_ref_id"`
	CreatedDate         time.Time  `json:"created_date"`
	UpdatedDate         time.Time  `json:"updated_date"`
}

func (Requirement) TableName() string { return "requirements" }
