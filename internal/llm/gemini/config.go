package gemini

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	defaultModel = "gemini-2.5-flash"
	// low enough for stable JSON, high enough for varied questions
	defaultTemperature = 0.4
)

// Config selects the Gemini model and sampling used for interview prompts.
type Config struct {
	APIKey      string
	Model       string
	Temperature float32
}

func NewConfig() (*Config, error) {
	cfg := &Config{
		APIKey:      strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		Model:       defaultModel,
		Temperature: defaultTemperature,
	}
	if cfg.APIKey == "" {
		return nil, errors.New("GEMINI_API_KEY environment variable is required")
	}
	if model := strings.TrimSpace(os.Getenv("GEMINI_MODEL")); model != "" {
		cfg.Model = model
	}
	if raw := strings.TrimSpace(os.Getenv("GEMINI_TEMPERATURE")); raw != "" {
		temperature, err := strconv.ParseFloat(raw, 32)
		if err != nil || temperature < 0 || temperature > 2 {
			return nil, fmt.Errorf("GEMINI_TEMPERATURE must be a number between 0 and 2, got %q", raw)
		}
		cfg.Temperature = float32(temperature)
	}
	return cfg, nil
}
