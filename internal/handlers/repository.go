package handlers

import (
	"context"

	"interviewprep/api/internal/access"
	"interviewprep/api/internal/models"
	"interviewprep/api/internal/repositories"
	"interviewprep/api/internal/session"
)

// UserStore captures the account operations required by handlers.
type UserStore interface {
	GetByExternalID(ctx context.Context, externalID string) (*models.User, error)
	UpsertByExternalID(ctx context.Context, user *models.User) (*models.User, error)
}

// InterviewStore captures the catalogue operations required by handlers.
type InterviewStore interface {
	Create(ctx context.Context, interview *models.Interview) error
	GetByID(ctx context.Context, id string) (*models.Interview, error)
	List(ctx context.Context, filter repositories.InterviewFilter) ([]models.Interview, error)
}

// SessionService is the interview lifecycle used by the session routes.
type SessionService interface {
	Start(ctx context.Context, interviewID string, caller access.Caller) (*models.SessionStart, error)
	Get(ctx context.Context, interviewID string, caller access.Caller) (*models.SessionView, error)
	Submit(ctx context.Context, interviewID string, caller access.Caller, responses []models.SessionResponse) (*session.SubmitResult, error)
	Results(ctx context.Context, interviewID string, caller access.Caller) (*models.ResultsView, error)
}
