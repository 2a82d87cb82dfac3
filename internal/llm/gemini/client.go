package gemini

import (
	"context"
	"errors"
	"strings"
	"time"

	"google.golang.org/genai"

	"interviewprep/api/internal/llm"
	"interviewprep/api/internal/models"
)

const providerName = "gemini"

// Client represents a Gemini LLM client
type Client struct {
	client *genai.Client
	config *Config
}

func NewClient(config *Config) (*Client, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &llm.ProviderError{
			Provider: providerName,
			Code:     llm.ErrCodeAPIKey,
			Message:  "Failed to create Gemini client",
			Err:      err,
		}
	}

	return &Client{
		client: client,
		config: config,
	}, nil
}

// GenerateContent sends a single prompt and returns the raw text of the first candidate.
// JSON output is requested from the model; callers still parse defensively.
func (c *Client) GenerateContent(ctx context.Context, prompt string, requestID string) (*models.GenerationResponse, error) {
	startTime := time.Now()
	result, err := c.client.Models.GenerateContent(
		ctx,
		c.config.Model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			Temperature:      genai.Ptr(c.config.Temperature),
		},
	)
	if err != nil {
		return nil, classifyError(err)
	}

	if result == nil {
		return nil, &llm.ProviderError{
			Provider: providerName,
			Code:     llm.ErrCodeInvalidInput,
			Message:  "No response generated",
		}
	}

	content := result.Text()
	if strings.TrimSpace(content) == "" {
		return nil, &llm.ProviderError{
			Provider: providerName,
			Code:     llm.ErrCodeInvalidInput,
			Message:  "Empty response generated",
		}
	}

	return &models.GenerationResponse{
		Content:   content,
		RequestID: requestID,
		Metadata: models.GenerationMetadata{
			ProcessingTime: int(time.Since(startTime).Milliseconds()),
			Provider:       providerName,
			Model:          c.config.Model,
		},
	}, nil
}

func (c *Client) GetProviderName() string {
	return providerName
}

func classifyError(err error) *llm.ProviderError {
	provErr := &llm.ProviderError{
		Provider: providerName,
		Code:     llm.ErrCodeServiceDown,
		Message:  "Failed to generate content",
		Err:      err,
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		provErr.Code = llm.ErrCodeTimeout
		provErr.Message = "Request timed out"
	case isRateLimitError(err):
		provErr.Code = llm.ErrCodeRateLimit
		provErr.Message = "Rate limit exceeded"
	case isAuthError(err):
		provErr.Code = llm.ErrCodeAPIKey
		provErr.Message = "API key rejected"
	case isInvalidRequestError(err):
		provErr.Code = llm.ErrCodeInvalidInput
		provErr.Message = "Request rejected"
	}
	return provErr
}

func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "resource_exhausted") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "rate limit")
}

func isAuthError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "Error 401") ||
		strings.Contains(msg, "Error 403") ||
		strings.Contains(msg, "UNAUTHENTICATED") ||
		strings.Contains(msg, "PERMISSION_DENIED") ||
		strings.Contains(msg, "API_KEY_INVALID")
}

func isInvalidRequestError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "Error 400") || strings.Contains(msg, "INVALID_ARGUMENT")
}
