package model

import "time"

// Leave types and statuses.
const (
	LeaveAnnual = "annual"
	LeaveSick   = "sick"
	LeaveCasual = "casual"

	LeavePending  = "pending"
	LeaveApproved = "approved"
	LeaveRejected = "rejected"
)

// LeaveTypes lists the accepted leave_type values.
var LeaveTypes = []string{LeaveAnnual, LeaveSick, LeaveCasual}

// Yearly leave allocations granted when a balance row is first created.
const (
	DefaultAnnualLeave = 20
	DefaultSickLeave   = 10
	DefaultCasualLeave = 7
)

// Leave is a leave request. Days is derived from the date range: sick leave
// counts calendar days, annual and casual skip weekends.
type Leave struct {
	ID          int       `json:"id" gorm:"primaryKey"`
	Username    string    `json:"username" gorm:"index"`
	LeaveType   string    `json:"leave_type"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Days        int       `json:"days"`
	Reason      string    `json:"reason"`
	Status      string    `json:"status" gorm:"default:pending;index"`
	Comments    string    `json:"comments"`
	CreatedDate time.Time `json:"created_date"`
	UpdatedDate time.Time `json:"updated_date"`
}

func (Leave) TableName() string { return "leaves" }

// LeaveBalance tracks remaining leave per user; counters are decremented only
// when a leave is approved.
type LeaveBalance struct {
	ID          int       `json:"id" gorm:"primaryKey"`
	Username    string    `json:"username" gorm:"uniqueIndex"`
	AnnualLeave int       `json:"annual_leave"`
	SickLeave   int       `json:"sick_leave"`
	CasualLeave int       `json:"casual_leave"`
	Year        int       `json:"year"`
	CreatedDate time.Time `json:"created_date"`
	UpdatedDate time.Time `json:"updated_date"`
}

func (LeaveBalance) TableName() string { return "leave_balances" }

// LeaveDays derives the day count for a leave between start and end
// inclusive. Sick leave includes weekends; annual and casual do not.
func LeaveDays(start, end time.Time, leaveType string) int {
	if end.Before(start) {
		return 0
	}
	if leaveType == LeaveSick {
		return int(end.Sub(start).Hours()/24) + 1
	}
	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days++
		}
	}
	return days
}
