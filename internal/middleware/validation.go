package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"

	"interviewprep/api/internal/models"
	"interviewprep/api/internal/utils"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const validatedRequestKey contextKey = "validated_request"

// submissions carry up to fifty free text answers
const maxBodyBytes = 1 << 20

// Validator is implemented by request bodies. Validate may normalize the
// receiver in place.
type Validator interface {
	Validate() error
}

// ValidateRequest decodes the JSON body into T, runs its Validate method and
// stores the result in the request context. T must be a pointer type.
// Invalid bodies never reach the handler.
func ValidateRequest[T Validator]() func(http.Handler) http.Handler {
	elem := reflect.TypeOf((*T)(nil)).Elem().Elem()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			req := reflect.New(elem).Interface().(T)

			r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
			if err := json.NewDecoder(r.Body).Decode(req); err != nil {
				writeDecodeError(w, err)
				return
			}

			if err := req.Validate(); err != nil {
				var errResp *models.ErrorResponse
				if !errors.As(err, &errResp) {
					errResp = &models.ErrorResponse{Code: "validation_error", Message: err.Error()}
				}
				utils.Failure(w, http.StatusBadRequest, *errResp)
				return
			}

			ctx := context.WithValue(r.Context(), validatedRequestKey, req)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeDecodeError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		utils.Failure(w, http.StatusRequestEntityTooLarge, models.ErrorResponse{
			Code:    "body_too_large",
			Message: "Request body is too large",
		})
	case errors.Is(err, io.EOF):
		utils.Failure(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "missing_body",
			Message: "Request body is required",
		})
	default:
		utils.Failure(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_json",
			Message: "Invalid JSON in request body",
		})
	}
}

// GetValidatedRequest retrieves the validated request from context
func GetValidatedRequest[T any](r *http.Request) T {
	return r.Context().Value(validatedRequestKey).(T)
}
