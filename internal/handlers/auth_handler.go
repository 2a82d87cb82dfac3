package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"interviewprep/api/internal/middleware"
	"interviewprep/api/internal/models"
	"interviewprep/api/internal/utils"
)

type AuthHandler struct {
	users  UserStore
	logger *zap.Logger
}

func NewAuthHandler(users UserStore, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{users: users, logger: logger}
}

// Me provisions the local account for the verified identity on first use
// and keeps its email and name in sync afterwards.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.Failure(w, http.StatusUnauthorized, models.ErrorResponse{Code: "unauthorized", Message: "Unauthorized"})
		return
	}

	user, err := h.users.UpsertByExternalID(r.Context(), &models.User{
		ExternalID: identity.Subject,
		Email:      identity.Email,
		Name:       identity.Name,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	utils.Success(w, http.StatusOK, user)
}
