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

// LeaveHandler serves leave requests and balances. Apply and balance reads
// act on the caller's own identity; approval endpoints act on anyone's.
type LeaveHandler struct {
	store  *persistence.Store
	logger *zap.Logger
}

func NewLeaveHandler(store *persistence.Store, logger *zap.Logger) *LeaveHandler {
	return &LeaveHandler{store: store, logger: logger}
}

type applyLeaveRequest struct {
	LeaveType string `json:"leave_type" validate:"required,oneof=annual sick casual"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
	Reason    string `json:"reason" validate:"required"`
}

type decideLeaveRequest struct {
	Comments string `json:"comments"`
}

// Apply files a leave request for the caller. A user may hold at most one
// pending request at a time, and the requested days must fit the balance.
func (h *LeaveHandler) Apply(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.FromContext(r.Context())
	if !ok {
		common.RespondError(w, http.StatusUnauthorized,
			common.StandardErrorCodes.Unauthorized, "missing identity")
		return
	}
	var req applyLeaveRequest
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
	if end.Before(start) {
		common.RespondError(w, http.StatusBadRequest,
			common.StandardErrorCodes.ValidationError, "end_date must not be before start_date")
		return
	}
	days := model.LeaveDays(start, end, req.LeaveType)
	if days == 0 {
		common.RespondError(w, http.StatusBadRequest,
			common.StandardErrorCodes.ValidationError, "leave covers no working days")
		return
	}

	existing, err := h.store.Leave.ListByUser(r.Context(), p.Username)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	for _, l := range existing {
		if l.Status == model.LeavePending {
			common.RespondError(w, http.StatusConflict,
				common.StandardErrorCodes.Conflict, "a pending leave request already exists")
			return
		}
	}

	balance, err := h.ensureBalance(r, p.Username)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	if remaining(balance, req.LeaveType) < days {
		common.RespondError(w, http.StatusBadRequest,
			common.StandardErrorCodes.ValidationError, "insufficient leave balance")
		return
	}

	leave, err := h.store.Leave.Create(r.Context(), &model.Leave{
		Username:  p.Username,
		LeaveType: req.LeaveType,
		StartDate: start,
		EndDate:   end,
		Days:      days,
		Reason:    req.Reason,
	})
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, leave)
}

func (h *LeaveHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "leaveID")
	if !ok {
		return
	}
	leave, err := h.store.Leave.GetByID(r.Context(), id)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	if leave == nil {
		respondNotFound(w, "leave")
		return
	}
	common.RespondJSON(w, http.StatusOK, leave)
}

// Mine lists the caller's own leave history.
func (h *LeaveHandler) Mine(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.FromContext(r.Context())
	if !ok {
		common.RespondError(w, http.StatusUnauthorized,
			common.StandardErrorCodes.Unauthorized, "missing identity")
		return
	}
	leaves, err := h.store.Leave.ListByUser(r.Context(), p.Username)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, leaves)
}

func (h *LeaveHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	leaves, err := h.store.Leave.ListPending(r.Context())
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, leaves)
}

func (h *LeaveHandler) List(w http.ResponseWriter, r *http.Request) {
	leaves, err := h.store.Leave.List(r.Context())
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, leaves)
}

// Approve grants a pending leave and decrements the user's balance. The
// balance moves only here, never at apply time.
func (h *LeaveHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, model.LeaveApproved)
}

// Reject declines a pending leave; the balance is untouched.
func (h *LeaveHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, model.LeaveRejected)
}

func (h *LeaveHandler) decide(w http.ResponseWriter, r *http.Request, status string) {
	id, ok := idParam(w, r, "leaveID")
	if !ok {
		return
	}
	var req decideLeaveRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	leave, err := h.store.Leave.GetByID(r.Context(), id)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	if leave == nil {
		respondNotFound(w, "leave")
		return
	}
	if leave.Status != model.LeavePending {
		common.RespondError(w, http.StatusConflict,
			common.StandardErrorCodes.Conflict, "leave request already decided")
		return
	}

	if status == model.LeaveApproved {
		balance, err := h.ensureBalance(r, leave.Username)
		if err != nil {
			respondStoreError(w, h.logger, err)
			return
		}
		if remaining(balance, leave.LeaveType) < leave.Days {
			common.RespondError(w, http.StatusBadRequest,
				common.StandardErrorCodes.ValidationError, "insufficient leave balance")
			return
		}
		if _, err := h.store.Leave.UpdateBalance(r.Context(), leave.Username,
			decrementFields(balance, leave.LeaveType, leave.Days)); err != nil {
			respondStoreError(w, h.logger, err)
			return
		}
	}

	fields := model.Fields{"status": status}
	if req.Comments != "" {
		fields["comments"] = req.Comments
	}
	if _, err := h.store.Leave.Update(r.Context(), id, fields); err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	leave, err = h.store.Leave.GetByID(r.Context(), id)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, leave)
}

// Balance returns the caller's leave balance, creating it with the default
// allocation on first access.
func (h *LeaveHandler) Balance(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.FromContext(r.Context())
	if !ok {
		common.RespondError(w, http.StatusUnauthorized,
			common.StandardErrorCodes.Unauthorized, "missing identity")
		return
	}
	balance, err := h.ensureBalance(r, p.Username)
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, balance)
}

func (h *LeaveHandler) ensureBalance(r *http.Request, username string) (*model.LeaveBalance, error) {
	balance, err := h.store.Leave.GetBalance(r.Context(), username)
	if err != nil {
		return nil, err
	}
	if balance != nil {
		return balance, nil
	}
	return h.store.Leave.CreateBalance(r.Context(), username)
}

func remaining(balance *model.LeaveBalance, leaveType string) int {
	switch leaveType {
	case model.LeaveSick:
		return balance.SickLeave
	case model.LeaveCasual:
		return balance.CasualLeave
	default:
		return balance.AnnualLeave
	}
}

func decrementFields(balance *model.LeaveBalance, leaveType string, days int) model.Fields {
	switch leaveType {
	case model.LeaveSick:
		return model.Fields{"sick_leave": balance.SickLeave - days}
	case model.LeaveCasual:
		return model.Fields{"casual_leave": balance.CasualLeave - days}
	default:
		return model.Fields{"annual_leave": balance.AnnualLeave - days}
	}
}
