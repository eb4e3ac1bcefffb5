package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"hrdesk-backend/domain/model"
	"hrdesk-backend/infrastructure/persistence"
	"hrdesk-backend/pkg/common"
	"hrdesk-backend/pkg/utils"
)

// InvoiceHandler serves invoices.
type InvoiceHandler struct {
	store  *persistence.Store
	logger *zap.Logger
}

func NewInvoiceHandler(store *persistence.Store, logger *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{store: store, logger: logger}
}

type createInvoiceRequest struct {
	InvoiceNumber string  `json:"invoice_number" validate:"required"`
	Reference     string  `json:"reference"`
	CompanyID     int     `json:"company_id" validate:"required,gt=0"`
	PONumber      string  `json:"po_number"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	RaisedDate    string  `json:"raised_date"`
	DueDate       string  `json:"due_date"`
	Remarks       string  `json:"remarks"`
}

type updateInvoiceRequest struct {
	Reference *string  `json:"reference"`
	PONumber  *string  `json:"po_number"`
	Amount    *float64 `json:"amount" validate:"omitempty,gt=0"`
	DueDate   *string  `json:"due_date"`
	Status    *string  `json:"status" validate:"omitempty,oneof=pending paid cancelled overdue"`
	Remarks   *string  `json:"remarks"`
}

func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createInvoiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	company, err := h.store.Company.GetByID(r.Context(), req.CompanyID)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	if company == nil {
		respondNotFound(w, "company")
		return
	}

	invoice := &model.Invoice{
		InvoiceNumber: req.InvoiceNumber,
		Reference:     req.Reference,
		CompanyID:     req.CompanyID,
		PONumber:      req.PONumber,
		Amount:        req.Amount,
		Remarks:       req.Remarks,
	}
	if req.RaisedDate != "" {
		d, err := utils.ParseDate(req.RaisedDate)
		if err != nil {
			common.RespondError(w, http.StatusBadRequest,
				common.StandardErrorCodes.ValidationError, "raised_date must be YYYY-MM-DD")
			return
		}
		invoice.RaisedDate = &d
	}
	if req.DueDate != "" {
		d, err := utils.ParseDate(req.DueDate)
		if err != nil {
			common.RespondError(w, http.StatusBadRequest,
				common.StandardErrorCodes.ValidationError, "due_date must be YYYY-MM-DD")
			return
		}
		invoice.DueDate = &d
	}

	invoice, err = h.store.Invoice.Create(r.Context(), invoice)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, invoice)
}

func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "invoiceID")
	if !ok {
		return
	}
	invoice, err := h.store.Invoice.GetByID(r.Context(), id)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	if invoice == nil {
		respondNotFound(w, "invoice")
		return
	}
	common.RespondJSON(w, http.StatusOK, invoice)
}

func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.store.Invoice.List(r.Context())
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, invoices)
}

func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "invoiceID")
	if !ok {
		return
	}
	var req updateInvoiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fields := model.Fields{}
	if req.Reference != nil {
		fields["reference"] = *req.Reference
	}
	if req.PONumber != nil {
		fields["po_number"] = *req.PONumber
	}
	if req.Amount != nil {
		fields["amount"] = *req.Amount
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.Remarks != nil {
		fields["remarks"] = *req.Remarks
	}
	if req.DueDate != nil {
		d, err := utils.ParseDate(*req.DueDate)
		if err != nil {
			common.RespondError(w, http.StatusBadRequest,
				common.StandardErrorCodes.ValidationError, "due_date must be YYYY-MM-DD")
			return
		}
		fields["due_date"] = d
	}
	if len(fields) == 0 {
		common.RespondError(w, http.StatusBadRequest,
			common.StandardErrorCodes.ValidationError, "no fields to update")
		return
	}

	matched, err := h.store.Invoice.Update(r.Context(), id, fields)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	if !matched {
		respondNotFound(w, "invoice")
		return
	}
	invoice, err := h.store.Invoice.GetByID(r.Context(), id)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, invoice)
}
