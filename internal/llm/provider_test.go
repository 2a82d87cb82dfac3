package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"interviewprep/api/internal/models"
)

type testProvider struct{}

func (testProvider) GenerateContent(context.Context, string, string) (*models.GenerationResponse, error) {
	return &models.GenerationResponse{Content: "ok"}, nil
}
func (testProvider) GetProviderName() string { return "test" }

func TestProviderErrorError(t *testing.T) {
	err := &ProviderError{Provider: "gemini", Message: "failed"}
	if err.Error() != "gemini error: failed" {
		t.Fatalf("unexpected error message: %s", err.Error())
	}

	detail := errors.New("detail")
	wrapped := &ProviderError{Provider: "gemini", Message: "failed", Err: detail}
	if got := wrapped.Error(); got != "gemini error: failed (detail)" {
		t.Fatalf("unexpected wrapped error message: %s", got)
	}
	if !errors.Is(wrapped, detail) {
		t.Fatal("expected ProviderError to unwrap to its cause")
	}
}

func TestRegisterAndNewProvider(t *testing.T) {
	RegisterProvider("test_provider", func() (Provider, error) {
		return testProvider{}, nil
	})
	defer func() {
		registryMu.Lock()
		delete(factories, "test_provider")
		registryMu.Unlock()
	}()

	provider, err := NewProvider("test_provider")
	if err != nil {
		t.Fatalf("NewProvider returned error: %v", err)
	}
	if name := provider.GetProviderName(); name != "test" {
		t.Fatalf("expected provider name test, got %s", name)
	}

	found := false
	for _, name := range RegisteredProviders() {
		if name == "test_provider" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected test_provider to be listed")
	}

	if _, err := NewProvider(" TEST_PROVIDER "); err != nil {
		t.Fatalf("expected case-insensitive lookup, got %v", err)
	}

	if _, err := NewProvider("missing"); err == nil {
		t.Fatal("expected error for unsupported provider")
	}
}

func TestNewProviderWrapsFactoryError(t *testing.T) {
	cause := errors.New("GEMINI_API_KEY environment variable is required")
	RegisterProvider("broken", func() (Provider, error) { return nil, cause })
	defer func() {
		registryMu.Lock()
		delete(factories, "broken")
		registryMu.Unlock()
	}()

	if _, err := NewProvider("broken"); !errors.Is(err, cause) {
		t.Fatalf("expected factory error to be wrapped, got %v", err)
	}
}

func TestIsTransient(t *testing.T) {
	cases := map[string]struct {
		err  error
		want bool
	}{
		"rate limit":    {&ProviderError{Code: ErrCodeRateLimit}, true},
		"service down":  {&ProviderError{Code: ErrCodeServiceDown}, true},
		"timeout":       {&ProviderError{Code: ErrCodeTimeout}, true},
		"bad key":       {&ProviderError{Code: ErrCodeAPIKey}, false},
		"invalid input": {&ProviderError{Code: ErrCodeInvalidInput}, false},
		"wrapped":       {fmt.Errorf("call: %w", &ProviderError{Code: ErrCodeRateLimit}), true},
		"deadline":      {context.DeadlineExceeded, true},
		"plain error":   {errors.New("boom"), false},
	}
	for name, tc := range cases {
		if got := IsTransient(tc.err); got != tc.want {
			t.Fatalf("%s: IsTransient = %v, want %v", name, got, tc.want)
		}
	}
}
