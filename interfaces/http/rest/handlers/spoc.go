package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"hrdesk-backend/domain/model"
	"hrdesk-backend/infrastructure/persistence"
	"hrdesk-backend/pkg/common"
)

// SPOCHandler serves company contacts.
type SPOCHandler struct {
	store  *persistence.Store
	logger *zap.Logger
}

func NewSPOCHandler(store *persistence.Store, logger *zap.Logger) *SPOCHandler {
	return &SPOCHandler{store: store, logger: logger}
}

type createSPOCRequest struct {
	CompanyID int    `json:"company_id" validate:"required,gt=0"`
	Name      string `json:"name" validate:"required,max=255"`
	Phone     string `json:"phone"`
	EmailID   string `json:"email_id" validate:"omitempty,email"`
	Location  string `json:"location"`
}

type updateSPOCRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=255"`
	Phone    *string `json:"phone"`
	EmailID  *string `json:"email_id" validate:"omitempty,email"`
	Location *string `json:"location"`
	Status   *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (h *SPOCHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSPOCRequest
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

	spoc, err := h.store.SPOC.Create(r.Context(), &model.SPOC{
		CompanyID: req.CompanyID,
		Name:      req.Name,
		Phone:     req.Phone,
		EmailID:   req.EmailID,
		Location:  req.Location,
	})
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, spoc)
}

func (h *SPOCHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "spocID")
	if !ok {
		return
	}
	spoc, err := h.store.SPOC.GetByID(r.Context(), id)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	if spoc == nil {
		respondNotFound(w, "spoc")
		return
	}
	common.RespondJSON(w, http.StatusOK, spoc)
}

func (h *SPOCHandler) List(w http.ResponseWriter, r *http.Request) {
	spocs, err := h.store.SPOC.List(r.Context())
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, spocs)
}

func (h *SPOCHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "spocID")
	if !ok {
		return
	}
	var req updateSPOCRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fields := model.Fields{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.EmailID != nil {
		fields["email_id"] = *req.EmailID
	}
	if req.Location != nil {
		fields["location"] = *req.Location
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if len(fields) == 0 {
		common.RespondError(w, http.StatusBadRequest,
			common.StandardErrorCodes.ValidationError, "no fields to update")
		return
	}

	matched, err := h.store.SPOC.Update(r.Context(), id, fields)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	if !matched {
		respondNotFound(w, "spoc")
		return
	}
	spoc, err := h.store.SPOC.GetByID(r.Context(), id)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, spoc)
}
