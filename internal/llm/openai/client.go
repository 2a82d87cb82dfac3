package openai

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"interviewprep/api/internal/llm"
	"interviewprep/api/internal/models"
)

const (
	providerName  = "openai"
	systemMessage = "You are an interview assistant. Always answer with a single valid JSON object."
)

type Client struct {
	client *goopenai.Client
	config *Config
}

func NewClient(config *Config) *Client {
	clientConfig := goopenai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	return &Client{
		client: goopenai.NewClientWithConfig(clientConfig),
		config: config,
	}
}

func (c *Client) GenerateContent(ctx context.Context, prompt string, requestID string) (*models.GenerationResponse, error) {
	startTime := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: c.config.Model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: systemMessage},
			{Role: goopenai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, classifyError(err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return nil, &llm.ProviderError{
			Provider: providerName,
			Code:     llm.ErrCodeInvalidInput,
			Message:  "Empty response generated",
		}
	}

	return &models.GenerationResponse{
		Content:   resp.Choices[0].Message.Content,
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

	if errors.Is(err, context.DeadlineExceeded) {
		provErr.Code = llm.ErrCodeTimeout
		provErr.Message = "Request timed out"
		return provErr
	}

	status := 0
	var apiErr *goopenai.APIError
	var reqErr *goopenai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	switch {
	case status == http.StatusTooManyRequests:
		provErr.Code = llm.ErrCodeRateLimit
		provErr.Message = "Rate limit exceeded"
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		provErr.Code = llm.ErrCodeAPIKey
		provErr.Message = "API key rejected"
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		provErr.Code = llm.ErrCodeInvalidInput
		provErr.Message = "Request rejected"
	}
	return provErr
}
