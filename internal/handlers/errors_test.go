package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"interviewprep/api/internal/access"
	"interviewprep/api/internal/interviewai"
	"interviewprep/api/internal/middleware"
	"interviewprep/api/internal/models"
	"interviewprep/api/internal/repositories"
	"interviewprep/api/internal/session"
	"interviewprep/api/internal/testhelpers"
	"interviewprep/api/internal/utils"
)

func TestWriteError(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{name: "validation", err: &models.ErrorResponse{Code: "missing_title", Message: "Title is required"}, status: http.StatusBadRequest, code: "missing_title"},
		{name: "unauthorized", err: access.ErrUnauthorized, status: http.StatusUnauthorized, code: "unauthorized"},
		{name: "forbidden", err: access.ErrForbidden, status: http.StatusForbidden, code: "forbidden"},
		{name: "no account", err: access.ErrAccountNotFound, status: http.StatusNotFound, code: "user_not_found"},
		{name: "interview missing", err: fmt.Errorf("load: %w", repositories.ErrInterviewNotFound), status: http.StatusNotFound, code: "not_found"},
		{
			name:    "results not ready",
			err:     session.ErrResultsNotReady,
			status:  http.StatusNotFound,
			code:    "results_not_ready",
			message: "Interview results not found. Please complete the interview first.",
		},
		{name: "starting", err: session.ErrSessionStarting, status: http.StatusConflict, code: "session_starting"},
		{name: "not started", err: session.ErrSessionNotStarted, status: http.StatusConflict, code: "session_not_started"},
		{
			name:    "generation failure",
			err:     &interviewai.AdapterError{Op: "generate_questions", Err: errors.New("boom")},
			status:  http.StatusInternalServerError,
			code:    "ai_error",
			message: "Failed to generate interview questions",
		},
		{
			name:    "analysis failure",
			err:     &interviewai.AdapterError{Op: "analyze_responses", Err: errors.New("boom")},
			status:  http.StatusInternalServerError,
			code:    "ai_error",
			message: "Failed to analyze interview responses",
		},
		{name: "unknown", err: errors.New("disk full"), status: http.StatusInternalServerError, code: "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, nopLogger(), tc.err)

			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rec.Code)
			}
			body := decodeFailure(t, rec)
			if body.Code != tc.code {
				t.Fatalf("expected code %s, got %s", tc.code, body.Code)
			}
			if tc.message != "" && body.Message != tc.message {
				t.Fatalf("expected message %q, got %q", tc.message, body.Message)
			}
		})
	}
}

func TestResolveCaller(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		_, _, users := newRepos(t)
		caller, err := resolveCaller(context.Background(), users)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if caller.Authenticated() {
			t.Fatalf("expected anonymous caller, got %+v", caller)
		}
	})

	t.Run("identity without account", func(t *testing.T) {
		_, _, users := newRepos(t)
		ctx := middleware.WithIdentity(context.Background(), utils.Identity{Subject: "ext-1"})
		caller, err := resolveCaller(ctx, users)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if caller.Subject != "ext-1" || caller.HasAccount() {
			t.Fatalf("unexpected caller %+v", caller)
		}
	})

	t.Run("identity with account", func(t *testing.T) {
		db, _, users := newRepos(t)
		user := testhelpers.SeedUser(t, db, "ext-2")
		ctx := middleware.WithIdentity(context.Background(), utils.Identity{Subject: "ext-2"})
		caller, err := resolveCaller(ctx, users)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if caller.UserID != user.ID {
			t.Fatalf("expected user id %s, got %+v", user.ID, caller)
		}
	})
}
