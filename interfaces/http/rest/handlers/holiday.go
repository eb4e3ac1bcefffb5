package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"hrdesk-backend/domain/model"
	"hrdesk-backend/infrastructure/persistence"
	"hrdesk-backend/interfaces/http/rest/middleware"
	"hrdesk-backend/pkg/common"
	"hrdesk-backend/pkg/utils"
)

// HolidayHandler serves holiday calendars and per-user optional selections.
type HolidayHandler struct {
	store  *persistence.Store
	logger *zap.Logger
}

func NewHolidayHandler(store *persistence.Store, logger *zap.Logger) *HolidayHandler {
	return &HolidayHandler{store: store, logger: logger}
}

type createHolidayRequest struct {
	FinancialYearID int    `json:"financial_year_id" validate:"required,gt=0"`
	Name            string `json:"name" validate:"required,max=255"`
	Date            string `json:"date" validate:"required"`
	IsMandatory     bool   `json:"is_mandatory"`
}

type updateHolidayRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Date        *string `json:"date"`
	IsMandatory *bool   `json:"is_mandatory"`
}

type selectHolidaysRequest struct {
	FinancialYearID int   `json:"financial_year_id" validate:"required,gt=0"`
	HolidayIDs      []int `json:"holiday_ids" validate:"required,min=1,dive,gt=0"`
}

// Create adds a holiday. Mandatory holidays are capped per financial year.
func (h *HolidayHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createHolidayRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	date, err := utils.ParseDate(req.Date)
	if err != nil {
		common.RespondError(w, http.StatusBadRequest,
			common.StandardErrorCodes.ValidationError, "date must be YYYY-MM-DD")
		return
	}

	fy, err := h.store.FinancialYear.GetByID(r.Context(), req.FinancialYearID)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	if fy == nil {
		respondNotFound(w, "financial year")
		return
	}

	if req.IsMandatory {
		mandatory, err := h.store.Holiday.ListMandatory(r.Context(), req.FinancialYearID)
		if err != nil {
			respondStoreError(w, h.logger, err)
			return
		}
		if len(mandatory) >= model.MaxMandatoryHolidays {
			common.RespondError(w, http.StatusConflict,
				common.StandardErrorCodes.Conflict, "mandatory holiday limit reached for this year")
			return
		}
	}

	holiday, err := h.store.Holiday.Create(r.Context(), &model.Holiday{
		FinancialYearID: req.FinancialYearID,
		Name:            req.Name,
		Date:            date,
		IsMandatory:     req.IsMandatory,
	})
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, holiday)
}

func (h *HolidayHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "holidayID")
	if !ok {
		return
	}
	holiday, err := h.store.Holiday.GetByID(r.Context(), id)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	if holiday == nil {
		respondNotFound(w, "holiday")
		return
	}
	common.RespondJSON(w, http.StatusOK, holiday)
}

func (h *HolidayHandler) ListByYear(w http.ResponseWriter, r *http.Request) {
	yearID, ok := idParam(w, r, "yearID")
	if !ok {
		return
	}
	holidays, err := h.store.Holiday.ListByYear(r.Context(), yearID)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, holidays)
}

func (h *HolidayHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "holidayID")
	if !ok {
		return
	}
	var req updateHolidayRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	existing, err := h.store.Holiday.GetByID(r.Context(), id)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	if existing == nil {
		respondNotFound(w, "holiday")
		return
	}

	fields := model.Fields{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Date != nil {
		d, err := utils.ParseDate(*req.Date)
		if err != nil {
			common.RespondError(w, http.StatusBadRequest,
				common.StandardErrorCodes.ValidationError, "date must be YYYY-MM-DD")
			return
		}
		fields["date"] = d
	}
	if req.IsMandatory != nil {
		if *req.IsMandatory && !existing.IsMandatory {
			mandatory, err := h.store.Holiday.ListMandatory(r.Context(), existing.FinancialYearID)
			if err != nil {
				respondStoreError(w, h.logger, err)
				return
			}
			if len(mandatory) >= model.MaxMandatoryHolidays {
				common.RespondError(w, http.StatusConflict,
					common.StandardErrorCodes.Conflict, "mandatory holiday limit reached for this year")
				return
			}
		}
		fields["is_mandatory"] = *req.IsMandatory
	}
	if len(fields) == 0 {
		common.RespondError(w, http.StatusBadRequest,
			common.StandardErrorCodes.ValidationError, "no fields to update")
		return
	}

	if _, err := h.store.Holiday.Update(r.Context(), id, fields); err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	holiday, err := h.store.Holiday.GetByID(r.Context(), id)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, holiday)
}

func (h *HolidayHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "holidayID")
	if !ok {
		return
	}
	matched, err := h.store.Holiday.Delete(r.Context(), id)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	if !matched {
		respondNotFound(w, "holiday")
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// Select replaces the caller's optional-holiday picks for a financial year.
func (h *HolidayHandler) Select(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.FromContext(r.Context())
	if !ok {
		common.RespondError(w, http.StatusUnauthorized,
			common.StandardErrorCodes.Unauthorized, "missing identity")
		return
	}
	var req selectHolidaysRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	optional, err := h.store.Holiday.ListOptional(r.Context(), req.FinancialYearID)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	optionalIDs := make(map[int]bool, len(optional))
	for _, holiday := range optional {
		optionalIDs[holiday.ID] = true
	}
	for _, id := range req.HolidayIDs {
		if !optionalIDs[id] {
			common.RespondError(w, http.StatusBadRequest,
				common.StandardErrorCodes.ValidationError, "holiday is not optional in this year")
			return
		}
	}

	if err := h.store.Holiday.SelectOptional(r.Context(), p.Username, req.HolidayIDs, req.FinancialYearID); err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	selected, err := h.store.Holiday.UserSelections(r.Context(), p.Username, req.FinancialYearID)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, selected)
}

// Mine returns the caller's holiday view for a financial year: mandatory
// holidays, selected optional ones, and the optional ones still selectable.
func (h *HolidayHandler) Mine(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.FromContext(r.Context())
	if !ok {
		common.RespondError(w, http.StatusUnauthorized,
			common.StandardErrorCodes.Unauthorized, "missing identity")
		return
	}
	yearID, ok := idParam(w, r, "yearID")
	if !ok {
		return
	}

	mandatory, err := h.store.Holiday.ListMandatory(r.Context(), yearID)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	selected, err := h.store.Holiday.UserSelections(r.Context(), p.Username, yearID)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	optional, err := h.store.Holiday.ListOptional(r.Context(), yearID)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}

	selectedIDs := make(map[int]bool, len(selected))
	for _, holiday := range selected {
		selectedIDs[holiday.ID] = true
	}
	available := make([]model.Holiday, 0, len(optional))
	for _, holiday := range optional {
		if !selectedIDs[holiday.ID] {
			available = append(available, holiday)
		}
	}

	common.RespondJSON(w, http.StatusOK, model.UserHolidays{
		Mandatory:         mandatory,
		SelectedOptional:  selected,
		AvailableOptional: available,
	})
}
