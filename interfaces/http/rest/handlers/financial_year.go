package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"hrdesk-backend/domain/model"
	"hrdesk-backend/infrastructure/persistence"
	"hrdesk-backend/pkg/common"
	"hrdesk-backend/pkg/utils"
)

// FinancialYearHandler serves financial years.
type FinancialYearHandler struct {
	store  *persistence.Store
	logger *zap.Logger
}

func NewFinancialYearHandler(store *persistence.Store, logger *zap.Logger) *FinancialYearHandler {
	return &FinancialYearHandler{store: store, logger: logger}
}

type createFinancialYearRequest struct {
	Year      int    `json:"year" validate:"required,gt=2000"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
	IsActive  bool   `json:"is_active"`
}

type updateFinancialYearRequest struct {
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	IsActive  *bool   `json:"is_active"`
}

func (h *FinancialYearHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createFinancialYearRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	start, err := utils.ParseDate(req.StartDate)
	if err != nil {
		common.RespondError(w, http.StatusBadRequest,
			common.StandardErrorCodes.ValidationError, "start_date must be YYYY-MM-DD")
		return
	}
	end, err := utils.ParseDate(req.EndDate)
	if err != nil {
		common.RespondError(w, http.StatusBadRequest,
			common.StandardErrorCodes.ValidationError, "end_date must be YYYY-MM-DD")
		return
	}
	if !end.After(start) {
		common.RespondError(w, http.StatusBadRequest,
			common.StandardErrorCodes.ValidationError, "end_date must be after start_date")
		return
	}

	years, err := h.store.FinancialYear.List(r.Context())
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	for _, fy := range years {
		if fy.Year == req.Year {
			common.RespondError(w, http.StatusConflict,
				common.StandardErrorCodes.Conflict, "financial year already exists")
			return
		}
	}

	fy, err := h.store.FinancialYear.Create(r.Context(), &model.FinancialYear{
		Year:      req.Year,
		StartDate: start,
		EndDate:   end,
		IsActive:  req.IsActive,
	})
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, fy)
}

func (h *FinancialYearHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "yearID")
	if !ok {
		return
	}
	fy, err := h.store.FinancialYear.GetByID(r.Context(), id)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	if fy == nil {
		respondNotFound(w, "financial year")
		return
	}
	common.RespondJSON(w, http.StatusOK, fy)
}

func (h *FinancialYearHandler) List(w http.ResponseWriter, r *http.Request) {
	years, err := h.store.FinancialYear.List(r.Context())
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, years)
}

func (h *FinancialYearHandler) GetActive(w http.ResponseWriter, r *http.Request) {
	fy, err := h.store.FinancialYear.GetActive(r.Context())
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	if fy == nil {
		respondNotFound(w, "active financial year")
		return
	}
	common.RespondJSON(w, http.StatusOK, fy)
}

// Activate makes this the single active year.
func (h *FinancialYearHandler) Activate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "yearID")
	if !ok {
		return
	}
	matched, err := h.store.FinancialYear.SetActive(r.Context(), id)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	if !matched {
		respondNotFound(w, "financial year")
		return
	}
	fy, err := h.store.FinancialYear.GetByID(r.Context(), id)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, fy)
}

func (h *FinancialYearHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "yearID")
	if !ok {
		return
	}
	var req updateFinancialYearRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fields := model.Fields{}
	if req.StartDate != nil {
		d, err := utils.ParseDate(*req.StartDate)
		if err != nil {
			common.RespondError(w, http.StatusBadRequest,
				common.StandardErrorCodes.ValidationError, "start_date must be YYYY-MM-DD")
			return
		}
		fields["start_date"] = d
	}
	if req.EndDate != nil {
		d, err := utils.ParseDate(*req.EndDate)
		if err != nil {
			common.RespondError(w, http.StatusBadRequest,
				common.StandardErrorCodes.ValidationError, "end_date must be YYYY-MM-DD")
			return
		}
		fields["end_date"] = d
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	if len(fields) == 0 {
		common.RespondError(w, http.StatusBadRequest,
			common.StandardErrorCodes.ValidationError, "no fields to update")
		return
	}

	matched, err := h.store.FinancialYear.Update(r.Context(), id, fields)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	if !matched {
		respondNotFound(w, "financial year")
		return
	}
	fy, err := h.store.FinancialYear.GetByID(r.Context(), id)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, fy)
}
