package model

import "time"

// ProfileStatus is the lookup row mapping a candidate pipeline status id to
// its human-readable stage name.
type ProfileStatus struct {
	ID     int    `json:"id" gorm:"primaryKey"`
	Status string `json:"status" gorm:"uniqueIndex"`
}

func (ProfileStatus) TableName() string { return "profile_status" }

// DefaultProfileStatuses seeds the profile status lookup on first start of
// either backend.
var DefaultProfileStatuses = []ProfileStatus{
	{ID: 1, Status: "Sourced"},
	{ID: 2, Status: "Screening"},
	{ID: 3, Status: "Interview"},
	{ID: 4, Status: "Offered"},
	{ID: 5, Status: "Joined"},
	{ID: 6, Status: "Rejected"},
	{ID: 7, Status: "On Hold"},
}

// StageUnknown is attached when a profile's status has no lookup entry.
const StageUnknown = "Unknown"

// Profile is a candidate profile moving through the hiring pipeline. Status
// must be one of the ids present in the profile status lookup; remarks is an
// append-only log.
type Profile struct {
	ID             int       `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name"`
	EmailID        string    `json:"email_id"`
	Phone          string    `json:"phone"`
	KeySkill       string    `json:"key_skill"`
	TotalExp       float64   `json:"total_exp"`
	CurrentCompany string    `json:"current_company"`
	CurrentCTC     float64   `json:"current_ctc"`
	ExpectedCTC    float64   `json:"expected_ctc"`
	NoticePeriod   string    `json:"notice_period"`
	Location       string    `json:"location"`
	Status         int       `json:"status" gorm:"index"`
	Remarks        string    `json:"remarks"`
	CreatedDate    time.Time `json:"created_date"`
	UpdatedDate    time.Time `json:"updated_date"`
}

func (Profile) TableName() string { return "profiles" }

// ProcessProfile links a profile to a requirement it is being processed for.
// At most one row per (requirement_id, profile_id) pair is intended; enforced
// by upsert logic rather than a storage constraint. A row with ProfileID zero
// and an empty recruiter is the unassigned sentinel.
type ProcessProfile struct {
	ID              int       `json:"id" gorm:"primaryKey"`
	RequirementID   int       `json:"requirement_id" gorm:"index"`
	ProfileID       int       `json:"profile_id" gorm:"index"`
	RecruiterName   string    `json:"recruiter_name"`
	Status          int       `json:"status"`
	ActivelyWorking string    `json:"actively_working" gorm:"default:No"`
	Remarks         string    `json:"remarks"`
	CreatedDate     time.Time `json:"created_date"`
	UpdatedDate     time.Time `json:"updated_date"`
}

func (ProcessProfile) TableName() string { return "process_profiles" }

// RequirementProfile is a ProcessProfile row joined to its Profile and
// annotated with the pipeline stage derived from the profile status lookup.
type RequirementProfile struct {
	ProcessProfile
	Profile Profile `json:"profile"`
	Stage   string  `json:"stage"`
}

// ProfileReport is one row of the profiles-by-date-range report: a profile
// joined to its process-profile assignment and the company it is pipelined
// for.
type ProfileReport struct {
	ProfileID     int    `json:"profile_id"`
	Name          string `json:"name"`
	Status        int    `json:"status"`
	RecruiterName string `json:"recruiter_name"`
	RequirementID int    `json:"requirement_id"`
	CompanyName   string `json:"company_name"`
}
