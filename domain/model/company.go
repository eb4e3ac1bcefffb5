package model

import "time"

// Company is a client organization that raises requirements and receives
// invoices. Names are unique case-insensitively.
type Company struct {
	ID          int       `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;size:255"`
	SPOC        string    `json:"spoc"`
	EmailID     string    `json:"email_id"`
	Status      string    `json:"status" gorm:"default:active"`
	CreatedDate time.Time `json:"created_date"`
	UpdatedDate time.Time `json:"updated_date"`
}

func (Company) TableName() string { return "companies" }

// SPOC is a single point of contact at a company.
type SPOC struct {
	ID          int       `json:"id" gorm:"primaryKey"`
	CompanyID   int       `json:"company_id" gorm:"index"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	EmailID     string    `json:"email_id"`
	Location    string    `json:"location"`
	Status      string    `json:"status" gorm:"default:active"`
	CreatedDate time.Time `json:"created_date"`
	UpdatedDate time.Time `json:"updated_date"`
}

func (SPOC) TableName() string { return "spocs" }
