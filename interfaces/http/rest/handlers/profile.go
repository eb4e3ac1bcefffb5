package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"hrdesk-backend/domain/model"
	"hrdesk-backend/infrastructure/persistence"
	"hrdesk-backend/interfaces/http/rest/middleware"
	"hrdesk-backend/pkg/common"
	"hrdesk-backend/pkg/remarks"
	"hrdesk-backend/pkg/utils"
)

// ProfileHandler serves candidate profiles and their pipeline rows.
type ProfileHandler struct {
	store  *persistence.Store
	logger *zap.Logger
}

func NewProfileHandler(store *persistence.Store, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{store: store, logger: logger}
}

type createProfileRequest struct {
	Name           string  `json:"name" validate:"required,max=255"`
	EmailID        string  `json:"email_id" validate:"omitempty,email"`
	Phone          string  `json:"phone"`
	KeySkill       string  `json:"key_skill"`
	TotalExp       float64 `json:"total_exp" validate:"omitempty,gte=0"`
	CurrentCompany string  `json:"current_company"`
	CurrentCTC     float64 `json:"current_ctc" validate:"omitempty,gte=0"`
	ExpectedCTC    float64 `json:"expected_ctc" validate:"omitempty,gte=0"`
	NoticePeriod   string  `json:"notice_period"`
	Location       string  `json:"location"`
	Status         int     `json:"status" validate:"omitempty,gt=0"`
	Remarks        string  `json:"remarks"`
}

type updateProfileRequest struct {
	Name           *string  `json:"name" validate:"omitempty,max=255"`
	EmailID        *string  `json:"email_id" validate:"omitempty,email"`
	Phone          *string  `json:"phone"`
	KeySkill       *string  `json:"key_skill"`
	TotalExp       *float64 `json:"total_exp" validate:"omitempty,gte=0"`
	CurrentCompany *string  `json:"current_company"`
	CurrentCTC     *float64 `json:"current_ctc" validate:"omitempty,gte=0"`
	ExpectedCTC    *float64 `json:"expected_ctc" validate:"omitempty,gte=0"`
	NoticePeriod   *string  `json:"notice_period"`
	Location       *string  `json:"location"`
	Status         *int     `json:"status" validate:"omitempty,gt=0"`
	Remarks        *string  `json:"remarks"`
}

type processProfileRequest struct {
	RequirementID   int    `json:"requirement_id" validate:"required,gt=0"`
	ProfileID       int    `json:"profile_id" validate:"required,gt=0"`
	RecruiterName   string `json:"recruiter_name" validate:"required"`
	Status          int    `json:"status" validate:"required,gt=0"`
	ActivelyWorking string `json:"actively_working" validate:"omitempty,oneof=Yes No"`
	Remarks         string `json:"remarks"`
}

type updateProcessProfileRequest struct {
	Status          *int    `json:"status" validate:"omitempty,gt=0"`
	ActivelyWorking *string `json:"actively_working" validate:"omitempty,oneof=Yes No"`
	Remarks         *string `json:"remarks"`
}

func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	status := req.Status
	if status == 0 {
		status = model.DefaultProfileStatuses[0].ID
	}
	profile := &model.Profile{
		Name:           req.Name,
		EmailID:        req.EmailID,
		Phone:          req.Phone,
		KeySkill:       req.KeySkill,
		TotalExp:       req.TotalExp,
		CurrentCompany: req.CurrentCompany,
		CurrentCTC:     req.CurrentCTC,
		ExpectedCTC:    req.ExpectedCTC,
		NoticePeriod:   req.NoticePeriod,
		Location:       req.Location,
		Status:         status,
	}
	if req.Remarks != "" {
		if p, ok := middleware.FromContext(r.Context()); ok {
			profile.Remarks = remarks.Append("", req.Remarks, p.Username)
		}
	}

	profile, err := h.store.Profile.Create(r.Context(), profile)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, profile)
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "profileID")
	if !ok {
		return
	}
	profile, err := h.store.Profile.GetByID(r.Context(), id)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	if profile == nil {
		respondNotFound(w, "profile")
		return
	}
	common.RespondJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.store.Profile.List(r.Context())
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, profiles)
}

func (h *ProfileHandler) ListStatuses(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.store.Profile.ListStatuses(r.Context())
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, statuses)
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "profileID")
	if !ok {
		return
	}
	var req updateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fields := model.Fields{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.EmailID != nil {
		fields["email_id"] = *req.EmailID
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.KeySkill != nil {
		fields["key_skill"] = *req.KeySkill
	}
	if req.TotalExp != nil {
		fields["total_exp"] = *req.TotalExp
	}
	if req.CurrentCompany != nil {
		fields["current_company"] = *req.CurrentCompany
	}
	if req.CurrentCTC != nil {
		fields["current_ctc"] = *req.CurrentCTC
	}
	if req.ExpectedCTC != nil {
		fields["expected_ctc"] = *req.ExpectedCTC
	}
	if req.NoticePeriod != nil {
		fields["notice_period"] = *req.NoticePeriod
	}
	if req.Location != nil {
		fields["location"] = *req.Location
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.Remarks != nil && *req.Remarks != "" {
		existing, err := h.store.Profile.GetByID(r.Context(), id)
		if err != nil {
			respondStoreError(w, h.logger, err)
			return
		}
		if existing == nil {
			respondNotFound(w, "profile")
			return
		}
		username := ""
		if p, ok := middleware.FromContext(r.Context()); ok {
			username = p.Username
		}
		fields["remarks"] = remarks.Append(existing.Remarks, *req.Remarks, username)
	}
	if len(fields) == 0 {
		common.RespondError(w, http.StatusBadRequest,
			common.StandardErrorCodes.ValidationError, "no fields to update")
		return
	}

	matched, err := h.store.Profile.Update(r.Context(), id, fields)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	if !matched {
		respondNotFound(w, "profile")
		return
	}
	profile, err := h.store.Profile.GetByID(r.Context(), id)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, profile)
}

// Process records or merges the profile's pipeline row for a requirement.
func (h *ProfileHandler) Process(w http.ResponseWriter, r *http.Request) {
	var req processProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	profile, err := h.store.Profile.GetByID(r.Context(), req.ProfileID)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	if profile == nil {
		respondNotFound(w, "profile")
		return
	}
	requirement, err := h.store.Requirement.GetByID(r.Context(), req.RequirementID)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	if requirement == nil {
		respondNotFound(w, "requirement")
		return
	}

	row := &model.ProcessProfile{
		RequirementID:   req.RequirementID,
		ProfileID:       req.ProfileID,
		RecruiterName:   req.RecruiterName,
		Status:          req.Status,
		ActivelyWorking: req.ActivelyWorking,
	}
	if req.Remarks != "" {
		if p, ok := middleware.FromContext(r.Context()); ok {
			row.Remarks = remarks.Append("", req.Remarks, p.Username)
		}
	}

	row, err = h.store.ProcessProfile.Upsert(r.Context(), row)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, row)
}

// UpdateProcess applies a partial update to the (requirement, profile)
// pipeline row.
func (h *ProfileHandler) UpdateProcess(w http.ResponseWriter, r *http.Request) {
	requirementID, ok := idParam(w, r, "requirementID")
	if !ok {
		return
	}
	profileID, ok := idParam(w, r, "profileID")
	if !ok {
		return
	}
	var req updateProcessProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fields := model.Fields{}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.ActivelyWorking != nil {
		fields["actively_working"] = *req.ActivelyWorking
	}
	if req.Remarks != nil && *req.Remarks != "" {
		username := ""
		if p, ok := middleware.FromContext(r.Context()); ok {
			username = p.Username
		}
		fields["remarks"] = remarks.Append("", *req.Remarks, username)
	}
	if len(fields) == 0 {
		common.RespondError(w, http.StatusBadRequest,
			common.StandardErrorCodes.ValidationError, "no fields to update")
		return
	}

	matched, err := h.store.ProcessProfile.UpdateByProfile(r.Context(), requirementID, profileID, fields)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	if !matched {
		respondNotFound(w, "pipeline row")
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]bool{"updated": true})
}

// Report lists profiles created inside a date range, joined to assignment
// and company, optionally for one recruiter.
func (h *ProfileHandler) Report(w http.ResponseWriter, r *http.Request) {
	startStr := r.URL.Query().Get("start_date")
	endStr := r.URL.Query().Get("end_date")
	if startStr == "" || endStr == "" {
		common.RespondError(w, http.StatusBadRequest,
			common.StandardErrorCodes.ValidationError, "start_date and end_date are required")
		return
	}
	start, err := utils.ParseDate(startStr)
	if err != nil {
		common.RespondError(w, http.StatusBadRequest,
			common.StandardErrorCodes.ValidationError, "start_date must be YYYY-MM-DD")
		return
	}
	end, err := utils.ParseDate(endStr)
	if err != nil {
		common.RespondError(w, http.StatusBadRequest,
			common.StandardErrorCodes.ValidationError, "end_date must be YYYY-MM-DD")
		return
	}
	if end.Before(start) {
		common.RespondError(w, http.StatusBadRequest,
			common.StandardErrorCodes.ValidationError, "end_date must not be before start_date")
		return
	}

	reports, err := h.store.Profile.ListByDateRange(r.Context(),
		start, utils.EndOfDay(end), r.URL.Query().Get("recruiter"))
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, reports)
}
