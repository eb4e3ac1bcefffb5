package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"hrdesk-backend/domain/model"
	"hrdesk-backend/infrastructure/persistence"
	"hrdesk-backend/pkg/common"
)

// CompanyHandler serves the company resource.
type CompanyHandler struct {
	store  *persistence.Store
	logger *zap.Logger
}

func NewCompanyHandler(store *persistence.Store, logger *zap.Logger) *CompanyHandler {
	return &CompanyHandler{store: store, logger: logger}
}

type createCompanyRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	SPOC    string `json:"spoc"`
	EmailID string `json:"email_id" validate:"omitempty,email"`
}

type updateCompanyRequest struct {
	Name    *string `json:"name" validate:"omitempty,max=255"`
	SPOC    *string `json:"spoc"`
	EmailID *string `json:"email_id" validate:"omitempty,email"`
	Status  *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (h *CompanyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCompanyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	company, err := h.store.Company.Create(r.Context(), &model.Company{
		Name:    req.Name,
		SPOC:    req.SPOC,
		EmailID: req.EmailID,
	})
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, company)
}

func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "companyID")
	if !ok {
		return
	}
	company, err := h.store.Company.GetByID(r.Context(), id)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	if company == nil {
		respondNotFound(w, "company")
		return
	}
	common.RespondJSON(w, http.StatusOK, company)
}

func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	companies, err := h.store.Company.List(r.Context())
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, companies)
}

func (h *CompanyHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	companies, err := h.store.Company.ListActive(r.Context())
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, companies)
}

func (h *CompanyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "companyID")
	if !ok {
		return
	}
	var req updateCompanyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fields := model.Fields{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.SPOC != nil {
		fields["spoc"] = *req.SPOC
	}
	if req.EmailID != nil {
		fields["email_id"] = *req.EmailID
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if len(fields) == 0 {
		common.RespondError(w, http.StatusBadRequest,
			common.StandardErrorCodes.ValidationError, "no fields to update")
		return
	}

	matched, err := h.store.Company.Update(r.Context(), id, fields)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	if !matched {
		respondNotFound(w, "company")
		return
	}
	company, err := h.store.Company.GetByID(r.Context(), id)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, company)
}

// ListSPOCs returns the company's contacts.
func (h *CompanyHandler) ListSPOCs(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "companyID")
	if !ok {
		return
	}
	spocs, err := h.store.SPOC.ListByCompany(r.Context(), id)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, spocs)
}

// ListOpenRequirements returns the company's open requirements, optionally
// narrowed to one recruiter's assignments.
func (h *CompanyHandler) ListOpenRequirements(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "companyID")
	if !ok {
		return
	}
	recruiter := r.URL.Query().Get("recruiter")

	var (
		requirements []model.Requirement
		err          error
	)
	if recruiter != "" {
		requirements, err = h.store.Requirement.ListOpenByCompanyAndRecruiter(r.Context(), id, recruiter)
	} else {
		requirements, err = h.store.Requirement.ListOpenByCompany(r.Context(), id)
	}
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, requirements)
}

// ListInvoices returns the company's invoices.
func (h *CompanyHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "companyID")
	if !ok {
		return
	}
	invoices, err := h.store.Invoice.ListByCompany(r.Context(), id)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, invoices)
}
