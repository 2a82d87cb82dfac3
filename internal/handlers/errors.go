package handlers

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"interviewprep/api/internal/access"
	"interviewprep/api/internal/interviewai"
	"interviewprep/api/internal/middleware"
	"interviewprep/api/internal/models"
	"interviewprep/api/internal/repositories"
	"interviewprep/api/internal/session"
	"interviewprep/api/internal/utils"
)

// writeError maps a domain error to its status code and error body.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var errResp *models.ErrorResponse
	var adapterErr *interviewai.AdapterError

	switch {
	case errors.As(err, &errResp):
		utils.Failure(w, http.StatusBadRequest, *errResp)
	case errors.Is(err, access.ErrUnauthorized):
		utils.Failure(w, http.StatusUnauthorized, models.ErrorResponse{Code: "unauthorized", Message: "Unauthorized"})
	case errors.Is(err, access.ErrForbidden):
		utils.Failure(w, http.StatusForbidden, models.ErrorResponse{Code: "forbidden", Message: "You do not have access to this interview"})
	case errors.Is(err, access.ErrAccountNotFound), errors.Is(err, repositories.ErrUserNotFound):
		utils.Failure(w, http.StatusNotFound, models.ErrorResponse{Code: "user_not_found", Message: "User not found"})
	case errors.Is(err, repositories.ErrInterviewNotFound):
		utils.Failure(w, http.StatusNotFound, models.ErrorResponse{Code: "not_found", Message: "Interview not found"})
	case errors.Is(err, session.ErrResultsNotReady):
		utils.Failure(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "results_not_ready",
			Message: "Interview results not found. Please complete the interview first.",
		})
	case errors.Is(err, session.ErrSessionStarting):
		utils.Failure(w, http.StatusConflict, models.ErrorResponse{Code: "session_starting", Message: "Interview questions are still being generated, retry shortly"})
	case errors.Is(err, session.ErrSessionNotStarted):
		utils.Failure(w, http.StatusConflict, models.ErrorResponse{Code: "session_not_started", Message: "Start the interview before submitting responses"})
	case errors.As(err, &adapterErr):
		logger.Error("AI adapter failure", zap.String("operation", adapterErr.Op), zap.Error(err))
		utils.Failure(w, http.StatusInternalServerError, models.ErrorResponse{Code: "ai_error", Message: adapterMessage(adapterErr.Op)})
	default:
		logger.Error("Unhandled error", zap.Error(err))
		utils.Failure(w, http.StatusInternalServerError, models.ErrorResponse{Code: "internal_error", Message: "Internal server error"})
	}
}

func adapterMessage(op string) string {
	switch op {
	case "generate_questions":
		return "Failed to generate interview questions"
	case "analyze_responses":
		return "Failed to analyze interview responses"
	}
	return "AI request failed"
}

// resolveCaller maps the verified token identity to a local account. A
// caller without an account keeps its subject so the guard can tell the
// two cases apart.
func resolveCaller(ctx context.Context, users UserStore) (access.Caller, error) {
	identity, ok := middleware.IdentityFromContext(ctx)
	if !ok {
		return access.Anonymous(), nil
	}

	caller := access.Caller{Subject: identity.Subject}
	user, err := users.GetByExternalID(ctx, identity.Subject)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return caller, nil
	}
	if err != nil {
		return caller, err
	}
	caller.UserID = user.ID
	return caller, nil
}
