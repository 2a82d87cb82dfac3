package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"interviewprep/api/internal/middleware"
	"interviewprep/api/internal/models"
	"interviewprep/api/internal/utils"
)

type SessionHandler struct {
	sessions SessionService
	users    UserStore
	logger   *zap.Logger
}

func NewSessionHandler(sessions SessionService, users UserStore, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, users: users, logger: logger}
}

func (h *SessionHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	interviewID, ok := interviewIDParam(w, r)
	if !ok {
		return
	}
	caller, err := resolveCaller(r.Context(), h.users)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	started, err := h.sessions.Start(r.Context(), interviewID, caller)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	utils.Success(w, http.StatusOK, started)
}

func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	interviewID, ok := interviewIDParam(w, r)
	if !ok {
		return
	}
	caller, err := resolveCaller(r.Context(), h.users)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	view, err := h.sessions.Get(r.Context(), interviewID, caller)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	utils.Success(w, http.StatusOK, view)
}

func (h *SessionHandler) SubmitSession(w http.ResponseWriter, r *http.Request) {
	interviewID, ok := interviewIDParam(w, r)
	if !ok {
		return
	}
	req := middleware.GetValidatedRequest[*models.SubmitSessionRequest](r)

	caller, err := resolveCaller(r.Context(), h.users)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	submitted, err := h.sessions.Submit(r.Context(), interviewID, caller, req.Responses)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	utils.Success(w, http.StatusOK, submitted)
}

func (h *SessionHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	interviewID, ok := interviewIDParam(w, r)
	if !ok {
		return
	}
	caller, err := resolveCaller(r.Context(), h.users)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	results, err := h.sessions.Results(r.Context(), interviewID, caller)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	utils.Success(w, http.StatusOK, results)
}

func interviewIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "interviewId")
	if id == "" {
		utils.Failure(w, http.StatusBadRequest, models.ErrorResponse{Code: "missing_id", Message: "Interview ID is required"})
		return "", false
	}
	return id, true
}
