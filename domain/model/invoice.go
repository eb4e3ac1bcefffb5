package model

import "time"

// Invoice statuses.
const (
	InvoicePending   = "pending"
	InvoicePaid      = "paid"
	InvoiceCancelled = "cancelled"
	InvoiceOverdue   = "overdue"
)

// Invoice is a bill raised against a company.
type Invoice struct {
	ID            int        `json:"id" gorm:"primaryKey"`
	InvoiceNumber string     `json:"invoice_number" gorm:"uniqueIndex"`
	Reference     string     `json:"reference"`
	CompanyID     int        `json:"company_id" gorm:"index"`
	PONumber      string     `json:"po_number"`
	Amount        float64    `json:"amount"`
	RaisedDate    *time.Time `json:"raised_date,omitempty"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	Status        string     `json:"status" gorm:"default:pending"`
	Remarks       string     `json:"remarks"`
	CreatedDate   time.Time  `json:"created_date"`
	UpdatedDate   time.Time  `json:"updated_date"`
}

func (Invoice) TableName() string { return "invoices" }
