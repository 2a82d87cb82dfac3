// Package llm abstracts the text generation backends used to write and
// grade interview questions.
package llm

import (
	"context"
	"errors"
	"fmt"

	"interviewprep/api/internal/models"
)

// Provider turns one prompt into raw model text. Callers own parsing.
type Provider interface {
	GenerateContent(ctx context.Context, prompt string, requestID string) (*models.GenerationResponse, error)
	GetProviderName() string
}

// Error codes shared by every provider.
const (
	ErrCodeAPIKey       = "invalid_api_key"
	ErrCodeRateLimit    = "rate_limit_exceeded"
	ErrCodeServiceDown  = "service_unavailable"
	ErrCodeInvalidInput = "invalid_input"
	ErrCodeTimeout      = "timeout"
)

// ProviderError is a classified backend failure.
type ProviderError struct {
	Provider string
	Code     string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s error: %s", e.Provider, e.Message)
	}
	return fmt.Sprintf("%s error: %s (%v)", e.Provider, e.Message, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Transient reports whether the same request may succeed if sent again.
func (e *ProviderError) Transient() bool {
	switch e.Code {
	case ErrCodeRateLimit, ErrCodeServiceDown, ErrCodeTimeout:
		return true
	}
	return false
}

// IsTransient reports whether err is worth retrying.
func IsTransient(err error) bool {
	var provErr *ProviderError
	if errors.As(err, &provErr) {
		return provErr.Transient()
	}
	return errors.Is(err, context.DeadlineExceeded)
}
