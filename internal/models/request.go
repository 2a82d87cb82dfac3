package models

import (
	"fmt"
	"strings"
)

const (
	maxTitleLength = 200
	maxDuration    = 240
	maxResponses   = 50
)

type CreateInterviewRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Difficulty  string   `json:"difficulty"`
	Duration    *int     `json:"duration"`
	Topics      []string `json:"topics"`
	Role        string   `json:"role"`
	Level       string   `json:"level"`
	Icon        string   `json:"icon"`
	Color       string   `json:"color"`
	IsTemplate  bool     `json:"isTemplate"`
	// TemplateID clones a public template into a new owned interview.
	TemplateID string `json:"templateId"`
}

// implements the Validator interface; normalizes enum fields in place
func (r *CreateInterviewRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	r.TemplateID = strings.TrimSpace(r.TemplateID)

	if r.Title == "" && r.TemplateID == "" {
		return &ErrorResponse{Code: "missing_title", Message: "Title is required"}
	}
	if len(r.Title) > maxTitleLength {
		return &ErrorResponse{Code: "invalid_title", Message: fmt.Sprintf("Title must be at most %d characters", maxTitleLength)}
	}

	if r.Category != "" {
		category, ok := ParseCategory(r.Category)
		if !ok {
			return &ErrorResponse{
				Code:    "invalid_category",
				Message: "Category must be one of: " + strings.Join(CategorySlugList(), ", "),
			}
		}
		r.Category = string(category)
	}

	if r.Difficulty != "" {
		difficulty, ok := ParseDifficulty(r.Difficulty)
		if !ok {
			return &ErrorResponse{
				Code:    "invalid_difficulty",
				Message: "Difficulty must be one of: " + strings.Join(DifficultySlugList(), ", "),
			}
		}
		r.Difficulty = string(difficulty)
	}

	if r.Duration != nil && (*r.Duration <= 0 || *r.Duration > maxDuration) {
		return &ErrorResponse{Code: "invalid_duration", Message: fmt.Sprintf("Duration must be between 1 and %d minutes", maxDuration)}
	}

	r.Topics = CleanList(r.Topics)
	return nil
}

// SessionResponse is one answered question. QuestionID is either the
// persisted question id or the generator reference (e.g. "q3").
type SessionResponse struct {
	QuestionID string `json:"questionId"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	TimeSpent  int    `json:"timeSpent"`
}

type SubmitSessionRequest struct {
	Responses []SessionResponse `json:"responses"`
}

func (r *SubmitSessionRequest) Validate() error {
	if len(r.Responses) == 0 {
		return &ErrorResponse{Code: "missing_responses", Message: "Invalid request: responses array is required"}
	}
	if len(r.Responses) > maxResponses {
		return &ErrorResponse{Code: "too_many_responses", Message: fmt.Sprintf("At most %d responses may be submitted", maxResponses)}
	}

	var details []ValidationErrorDetail
	for i := range r.Responses {
		resp := &r.Responses[i]
		resp.QuestionID = strings.TrimSpace(resp.QuestionID)
		if resp.QuestionID == "" {
			details = append(details, ValidationErrorDetail{Field: fmt.Sprintf("responses[%d].questionId", i), Reason: "required"})
		}
		if resp.TimeSpent < 0 {
			details = append(details, ValidationErrorDetail{Field: fmt.Sprintf("responses[%d].timeSpent", i), Reason: "must not be negative"})
		}
	}
	if len(details) > 0 {
		return &ErrorResponse{Code: "invalid_responses", Message: "Invalid request: malformed responses", Details: details}
	}
	return nil
}

// CleanList trims every entry and drops blank ones. It never returns nil.
func CleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
