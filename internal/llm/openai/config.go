package openai

import (
	"errors"
	"os"
)

// holds configuration for OpenAI-compatible chat completion endpoints
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

func NewConfig() (*Config, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY environment variable is required")
	}

	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}

	return &Config{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: os.Getenv("OPENAI_BASE_URL"),
	}, nil
}
