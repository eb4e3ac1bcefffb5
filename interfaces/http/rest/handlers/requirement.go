package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"hrdesk-backend/domain/model"
	"hrdesk-backend/infrastructure/persistence"
	"hrdesk-backend/interfaces/http/rest/middleware"
	"hrdesk-backend/pkg/common"
	"hrdesk-backend/pkg/remarks"
	"hrdesk-backend/pkg/utils"
)

// RequirementHandler serves requirements and their pipeline operations.
type RequirementHandler struct {
	store  *persistence.Store
	logger *zap.Logger
}

func NewRequirementHandler(store *persistence.Store, logger *zap.Logger) *RequirementHandler {
	return &RequirementHandler{store: store, logger: logger}
}

type createRequirementRequest struct {
	CompanyID           int     `json:"company_id" validate:"required,gt=0"`
	KeySkill            string  `json:"key_skill" validate:"required"`
	JD                  string  `json:"jd"`
	Budget              float64 `json:"budget" validate:"omitempty,gt=0"`
	Location            string  `json:"location"`
	RecruiterName       string  `json:"recruiter_name"`
	ExpectedBillingDate string  `json:"expected_billing_date"`
	ReqCustRefID        string  `json:"req_cust_ref_id"`
	Remarks             string  `json:"remarks"`
}

type updateRequirementRequest struct {
	KeySkill            *string  `json:"key_skill"`
	JD                  *string  `json:"jd"`
	StatusID            *int     `json:"status_id" validate:"omitempty,gt=0"`
	Budget              *float64 `json:"budget" validate:"omitempty,gt=0"`
	Location            *string  `json:"location"`
	ExpectedBillingDate *string  `json:"expected_billing_date"`
	ReqCustRefID        *string  `json:"req_cust_ref_id"`
	Remarks             *string  `json:"remarks"`
}

type assignRecruiterRequest struct {
	RecruiterName string `json:"recruiter_name" validate:"required"`
}

type activelyWorkingRequest struct {
	RecruiterName   string `json:"recruiter_name" validate:"required"`
	ActivelyWorking string `json:"actively_working" validate:"required,oneof=Yes No"`
}

func (h *RequirementHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequirementRequest
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

	requirement := &model.Requirement{
		CompanyID:     req.CompanyID,
		KeySkill:      req.KeySkill,
		JD:            req.JD,
		StatusID:      model.OpenRequirementStatuses[0],
		RecruiterName: req.RecruiterName,
		Budget:        req.Budget,
		Location:      req.Location,
		ReqCustRefID:  req.ReqCustRefID,
	}
	if req.ExpectedBillingDate != "" {
		d, err := utils.ParseDate(req.ExpectedBillingDate)
		if err != nil {
			common.RespondError(w, http.StatusBadRequest,
				common.StandardErrorCodes.ValidationError, "expected_billing_date must be YYYY-MM-DD")
			return
		}
		requirement.ExpectedBillingDate = &d
	}
	if req.Remarks != "" {
		if p, ok := middleware.FromContext(r.Context()); ok {
			requirement.Remarks = remarks.Append("", req.Remarks, p.Username)
		}
	}

	requirement, err = h.store.Requirement.Create(r.Context(), requirement)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}

	// An initial recruiter assignment lands as the unassigned-profile
	// pipeline row.
	if req.RecruiterName != "" {
		_, err = h.store.ProcessProfile.Create(r.Context(), &model.ProcessProfile{
			RequirementID: requirement.RequirementID,
			RecruiterName: req.RecruiterName,
		})
		if err != nil {
			respondStoreError(w, h.logger, err)
			return
		}
	}
	common.RespondJSON(w, http.StatusCreated, requirement)
}

func (h *RequirementHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "requirementID")
	if !ok {
		return
	}
	requirement, err := h.store.Requirement.GetByID(r.Context(), id)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	if requirement == nil {
		respondNotFound(w, "requirement")
		return
	}
	common.RespondJSON(w, http.StatusOK, requirement)
}

func (h *RequirementHandler) List(w http.ResponseWriter, r *http.Request) {
	requirements, err := h.store.Requirement.List(r.Context())
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, requirements)
}

func (h *RequirementHandler) ListStatuses(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.store.Requirement.ListStatuses(r.Context())
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, statuses)
}

// Update applies a partial update. Moving the requirement into a terminal
// status stamps closed_date.
func (h *RequirementHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "requirementID")
	if !ok {
		return
	}
	var req updateRequirementRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fields := model.Fields{}
	if req.KeySkill != nil {
		fields["key_skill"] = *req.KeySkill
	}
	if req.JD != nil {
		fields["jd"] = *req.JD
	}
	if req.Budget != nil {
		fields["budget"] = *req.Budget
	}
	if req.Location != nil {
		fields["location"] = *req.Location
	}
	if req.ReqCustRefID != nil {
		fields["req_cust_ref_id"] = *req.ReqCustRefID
	}
	if req.ExpectedBillingDate != nil {
		d, err := utils.ParseDate(*req.ExpectedBillingDate)
		if err != nil {
			common.RespondError(w, http.StatusBadRequest,
				common.StandardErrorCodes.ValidationError, "expected_billing_date must be YYYY-MM-DD")
			return
		}
		fields["expected_billing_date"] = d
	}
	if req.StatusID != nil {
		fields["status_id"] = *req.StatusID
		if model.IsTerminalRequirementStatus(*req.StatusID) {
			fields["closed_date"] = time.Now().UTC()
		}
	}
	if req.Remarks != nil && *req.Remarks != "" {
		existing, err := h.store.Requirement.GetByID(r.Context(), id)
		if err != nil {
			respondStoreError(w, h.logger, err)
			return
		}
		if existing == nil {
			respondNotFound(w, "requirement")
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

	matched, err := h.store.Requirement.Update(r.Context(), id, fields)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	if !matched {
		respondNotFound(w, "requirement")
		return
	}
	requirement, err := h.store.Requirement.GetByID(r.Context(), id)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, requirement)
}

// AssignRecruiter moves every pipeline row of the requirement to a new
// recruiter, creating the assignment row when none exists yet.
func (h *RequirementHandler) AssignRecruiter(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "requirementID")
	if !ok {
		return
	}
	var req assignRecruiterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	requirement, err := h.store.Requirement.GetByID(r.Context(), id)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	if requirement == nil {
		respondNotFound(w, "requirement")
		return
	}

	if _, err := h.store.Requirement.Update(r.Context(), id,
		model.Fields{"recruiter_name": req.RecruiterName}); err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	matched, err := h.store.ProcessProfile.UpdateRecruiter(r.Context(), id, req.RecruiterName)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	if !matched {
		if _, err := h.store.ProcessProfile.Create(r.Context(), &model.ProcessProfile{
			RequirementID: id,
			RecruiterName: req.RecruiterName,
		}); err != nil {
			respondStoreError(w, h.logger, err)
			return
		}
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"recruiter_name": req.RecruiterName})
}

// Profiles lists the requirement's pipeline rows with profile and stage
// attached, optionally narrowed to one recruiter.
func (h *RequirementHandler) Profiles(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "requirementID")
	if !ok {
		return
	}
	recruiter := r.URL.Query().Get("recruiter")

	var (
		profiles []model.RequirementProfile
		err      error
	)
	if recruiter != "" {
		profiles, err = h.store.ProcessProfile.ProfilesByRequirementAndRecruiter(r.Context(), id, recruiter)
	} else {
		profiles, err = h.store.ProcessProfile.ProfilesByRequirement(r.Context(), id)
	}
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, profiles)
}

// SetActivelyWorking flips the recruiter's actively-working flag on their
// pipeline rows for the requirement.
func (h *RequirementHandler) SetActivelyWorking(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "requirementID")
	if !ok {
		return
	}
	var req activelyWorkingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	matched, err := h.store.ProcessProfile.UpdateActivelyWorkingByRecruiter(
		r.Context(), id, req.RecruiterName, req.ActivelyWorking)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	if !matched {
		respondNotFound(w, "assignment")
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"actively_working": req.ActivelyWorking})
}
