package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"interviewprep/api/internal/middleware"
	"interviewprep/api/internal/models"
	"interviewprep/api/internal/repositories"
	"interviewprep/api/internal/testhelpers"
	"interviewprep/api/internal/utils"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

func newRepos(t *testing.T) (*gorm.DB, *repositories.InterviewRepository, *repositories.UserRepository) {
	t.Helper()
	db := testhelpers.SetupTestDB(t)
	return db, &repositories.InterviewRepository{DB: db}, &repositories.UserRepository{DB: db}
}

// newRequest builds a request with chi URL params and, when subject is not
// empty, a verified identity.
func newRequest(method, target, subject string, body io.Reader, params map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if subject != "" {
		ctx = middleware.WithIdentity(ctx, utils.Identity{Subject: subject, Email: subject + "@example.com"})
	}
	return req.WithContext(ctx)
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var env envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	if !env.Success {
		t.Fatalf("expected success envelope, got %s", rec.Body.String())
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
}

func decodeFailure(t *testing.T, rec *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var body models.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	if body.Success {
		t.Fatalf("expected success=false in %+v", body)
	}
	return body
}

func nopLogger() *zap.Logger { return zap.NewNop() }
