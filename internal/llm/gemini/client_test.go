package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"interviewprep/api/internal/llm"

	"google.golang.org/genai"
)

func newStubClient(t *testing.T, handler http.HandlerFunc) (*Client, func()) {
	t.Helper()
	server := httptest.NewServer(handler)

	genaiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:     "test",
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: server.Client(),
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    server.URL,
			APIVersion: "v1beta",
		},
	})
	if err != nil {
		t.Fatalf("failed to create genai client: %v", err)
	}

	client := &Client{
		client: genaiClient,
		config: &Config{APIKey: "test", Model: "test-model", Temperature: defaultTemperature},
	}

	return client, server.Close
}

func TestClientGenerateContentSuccess(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "models/test-model:generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		resp := map[string]any{
			"candidates": []map[string]any{
				{
					"content": map[string]any{
						"role": "model",
						"parts": []map[string]any{
							{"text": `{"questions":[]}`},
						},
					},
				},
			},
			"modelVersion": "test-version",
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}

	client, cleanup := newStubClient(t, handler)
	defer cleanup()

	resp, err := client.GenerateContent(context.Background(), "prompt", "req-1")
	if err != nil {
		t.Fatalf("GenerateContent returned error: %v", err)
	}
	if resp.Content != `{"questions":[]}` {
		t.Fatalf("expected response text, got %s", resp.Content)
	}
	if resp.RequestID != "req-1" {
		t.Fatalf("expected request id to be echoed, got %s", resp.RequestID)
	}
	if resp.Metadata.Model != "test-model" || resp.Metadata.Provider != "gemini" {
		t.Fatalf("expected metadata to include model and provider, got %+v", resp.Metadata)
	}
}

func TestClientGenerateContentRateLimit(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "429 rate limit", http.StatusTooManyRequests)
	}
	client, cleanup := newStubClient(t, handler)
	defer cleanup()

	_, err := client.GenerateContent(context.Background(), "prompt", "req")
	if err == nil {
		t.Fatal("expected error")
	}
	var provErr *llm.ProviderError
	if !errors.As(err, &provErr) || provErr.Code != llm.ErrCodeRateLimit {
		t.Fatalf("expected provider rate limit error, got %v", err)
	}
	if !llm.IsTransient(err) {
		t.Fatal("expected rate limit to be transient")
	}
}

func TestClientGenerateContentEmptyResponse(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{"candidates": []map[string]any{{"content": map[string]any{"parts": []map[string]any{{"text": ""}}}}}}
		json.NewEncoder(w).Encode(resp)
	}
	client, cleanup := newStubClient(t, handler)
	defer cleanup()

	_, err := client.GenerateContent(context.Background(), "prompt", "req")
	if err == nil {
		t.Fatal("expected error for empty response")
	}
	var provErr *llm.ProviderError
	if !errors.As(err, &provErr) || provErr.Code != llm.ErrCodeInvalidInput {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestGetProviderNameAndErrorHelpers(t *testing.T) {
	client := &Client{}
	if client.GetProviderName() != "gemini" {
		t.Fatalf("expected provider name gemini")
	}

	cases := map[string]bool{
		"429 rate limit exceeded": true,
		"RESOURCE_EXHAUSTED":      true,
		"quota exceeded":          true,
		"other error":             false,
	}
	for input, expect := range cases {
		if got := isRateLimitError(errors.New(input)); got != expect {
			t.Fatalf("isRateLimitError(%s) = %v, expected %v", input, got, expect)
		}
	}
	if isRateLimitError(nil) {
		t.Fatalf("expected nil error to return false")
	}

	if got := classifyError(context.DeadlineExceeded); got.Code != llm.ErrCodeTimeout {
		t.Fatalf("expected timeout code, got %s", got.Code)
	}
	if got := classifyError(errors.New("Error 403, Message: denied, Status: PERMISSION_DENIED")); got.Code != llm.ErrCodeAPIKey {
		t.Fatalf("expected api key code, got %s", got.Code)
	}
	if got := classifyError(errors.New("Error 400, Message: bad, Status: INVALID_ARGUMENT")); got.Code != llm.ErrCodeInvalidInput {
		t.Fatalf("expected invalid input code, got %s", got.Code)
	}
	if got := classifyError(errors.New("connection reset")); got.Code != llm.ErrCodeServiceDown {
		t.Fatalf("expected service down code, got %s", got.Code)
	}
}

func TestClientGenerateContentRequestsJSON(t *testing.T) {
	var body struct {
		GenerationConfig struct {
			ResponseMimeType string   `json:"responseMimeType"`
			Temperature      *float64 `json:"temperature"`
		} `json:"generationConfig"`
	}
	handler := func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		resp := map[string]any{"candidates": []map[string]any{{"content": map[string]any{"parts": []map[string]any{{"text": "{}"}}}}}}
		json.NewEncoder(w).Encode(resp)
	}
	client, cleanup := newStubClient(t, handler)
	defer cleanup()

	if _, err := client.GenerateContent(context.Background(), "prompt", "req"); err != nil {
		t.Fatalf("GenerateContent returned error: %v", err)
	}
	if body.GenerationConfig.ResponseMimeType != "application/json" {
		t.Fatalf("expected JSON response type, got %q", body.GenerationConfig.ResponseMimeType)
	}
	if body.GenerationConfig.Temperature == nil || *body.GenerationConfig.Temperature < 0.39 || *body.GenerationConfig.Temperature > 0.41 {
		t.Fatalf("expected configured temperature, got %v", body.GenerationConfig.Temperature)
	}
}
