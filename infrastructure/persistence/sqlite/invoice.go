package sqlite

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"hrdesk-backend/domain/model"
)

// InvoiceStore implements the invoice contract on GORM.
type InvoiceStore struct {
	db *gorm.DB
}

func NewInvoiceStore(r *Repository) *InvoiceStore {
	return &InvoiceStore{db: r.db}
}

func (s *InvoiceStore) Create(ctx context.Context, inv *model.Invoice) (*model.Invoice, error) {
	ts := now()
	inv.CreatedDate = ts
	inv.UpdatedDate = ts
	if inv.Status == "" {
		inv.Status = model.InvoicePending
	}
	if err := s.db.WithContext(ctx).Create(inv).Error; err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *InvoiceStore) GetByID(ctx context.Context, id int) (*model.Invoice, error) {
	var inv model.Invoice
	err := s.db.WithContext(ctx).First(&inv, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (s *InvoiceStore) List(ctx context.Context) ([]model.Invoice, error) {
	var invoices []model.Invoice
	if err := s.db.WithContext(ctx).Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

func (s *InvoiceStore) ListByCompany(ctx context.Context, companyID int) ([]model.Invoice, error) {
	var invoices []model.Invoice
	if err := s.db.WithContext(ctx).Where("company_id = ?", companyID).Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

func (s *InvoiceStore) Update(ctx context.Context, id int, fields model.Fields) (bool, error) {
	result := s.db.WithContext(ctx).Model(&model.Invoice{}).
		Where("id = ?", id).
		Updates(withUpdatedDate(fields))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
