// Package handlers holds the per-resource HTTP handlers. Every handler
// depends on the store façade only; backend selection happened long before a
// request gets here.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"hrdesk-backend/domain/errs"
	"hrdesk-backend/pkg/common"
	"hrdesk-backend/pkg/utils"
)

// decodeJSON decodes the request body into dst and runs struct validation.
// On failure the error response has already been written.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		common.RespondError(w, http.StatusBadRequest,
			common.StandardErrorCodes.ValidationError, "invalid request body")
		return false
	}
	if err := utils.ValidateStruct(dst); err != nil {
		common.RespondError(w, http.StatusBadRequest,
			common.StandardErrorCodes.ValidationError, err.Error())
		return false
	}
	return true
}

// idParam reads a numeric URL parameter. Writes the error response on
// failure.
func idParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		common.RespondError(w, http.StatusBadRequest,
			common.StandardErrorCodes.ValidationError, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}

// respondStoreError maps storage failures onto the response envelope.
func respondStoreError(w http.ResponseWriter, logger *zap.Logger, err error) {
	if errors.Is(err, errs.ErrDuplicateName) {
		common.RespondError(w, http.StatusConflict,
			common.StandardErrorCodes.Conflict, "name already in use")
		return
	}
	if errors.Is(err, errs.ErrInvalidStatus) {
		common.RespondError(w, http.StatusBadRequest,
			common.StandardErrorCodes.ValidationError, "status not present in the lookup")
		return
	}
	logger.Error("storage operation failed", zap.Error(err))
	common.RespondError(w, http.StatusInternalServerError,
		common.StandardErrorCodes.InternalError, "internal error")
}

// respondNotFound is the shared 404 shape.
func respondNotFound(w http.ResponseWriter, what string) {
	common.RespondError(w, http.StatusNotFound,
		common.StandardErrorCodes.NotFound, what+" not found")
}
