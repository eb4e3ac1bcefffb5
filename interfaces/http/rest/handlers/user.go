package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"hrdesk-backend/domain/model"
	"hrdesk-backend/infrastructure/persistence"
	"hrdesk-backend/interfaces/http/rest/middleware"
	"hrdesk-backend/pkg/common"
)

// UserHandler serves the local user registry. Credentials live with the
// upstream identity provider; this only tracks usernames.
type UserHandler struct {
	store  *persistence.Store
	logger *zap.Logger
}

func NewUserHandler(store *persistence.Store, logger *zap.Logger) *UserHandler {
	return &UserHandler{store: store, logger: logger}
}

type createUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	user, err := h.store.User.Create(r.Context(), &model.User{Username: req.Username})
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.User.List(r.Context())
	if err != nil {
		respondStoreError(w, h.logger, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, users)
}

// Me echoes the caller's identity as the gateway delivered it.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.FromContext(r.Context())
	if !ok {
		common.RespondError(w, http.StatusUnauthorized,
			common.StandardErrorCodes.Unauthorized, "missing identity")
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{
		"username": p.Username,
		"role":     p.Role,
	})
}
