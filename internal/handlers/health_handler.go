package handlers

import (
	"context"
	"net/http"
	"time"

	"gorm.io/gorm"

	"interviewprep/api/internal/config"
	"interviewprep/api/internal/llm"
	"interviewprep/api/internal/prompts"
	"interviewprep/api/internal/utils"
)

const serviceName = "interview-api"

type ReadinessCheck struct {
	Status  string `json:"status"` // "ok" | "failed"
	Message string `json:"message,omitempty"`
}

type ReadinessResponse struct {
	Status  string                    `json:"status"` // "ready" | "not_ready"
	Service string                    `json:"service"`
	Checks  map[string]ReadinessCheck `json:"checks"`
}

type HealthHandler struct {
	db            *gorm.DB
	provider      llm.Provider
	promptManager prompts.PromptProvider
	config        *config.Config
}

func NewHealthHandler(db *gorm.DB, provider llm.Provider, promptManager prompts.PromptProvider, cfg *config.Config) *HealthHandler {
	return &HealthHandler{
		db:            db,
		provider:      provider,
		promptManager: promptManager,
		config:        cfg,
	}
}

func (h *HealthHandler) HealthzHandler(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"service":   serviceName,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *HealthHandler) ReadyzHandler(w http.ResponseWriter, r *http.Request) {
	checks := map[string]ReadinessCheck{
		"database":       h.checkDatabase(r.Context()),
		"provider":       okIf(h.provider != nil, "AI provider not initialized"),
		"prompt_manager": h.checkPrompts(),
		"configuration":  okIf(h.config != nil, "Configuration not loaded"),
	}

	response := ReadinessResponse{Status: "ready", Service: serviceName, Checks: checks}
	for _, check := range checks {
		if check.Status != "ok" {
			response.Status = "not_ready"
			utils.JSON(w, http.StatusServiceUnavailable, response)
			return
		}
	}
	utils.JSON(w, http.StatusOK, response)
}

func (h *HealthHandler) checkDatabase(ctx context.Context) ReadinessCheck {
	if h.db == nil {
		return ReadinessCheck{Status: "failed", Message: "Database not initialized"}
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return ReadinessCheck{Status: "failed", Message: err.Error()}
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return ReadinessCheck{Status: "failed", Message: "Database unreachable"}
	}
	return ReadinessCheck{Status: "ok"}
}

func (h *HealthHandler) checkPrompts() ReadinessCheck {
	if h.promptManager == nil {
		return ReadinessCheck{Status: "failed", Message: "Prompt manager not initialized"}
	}
	if len(h.promptManager.GetTemplates()) == 0 {
		return ReadinessCheck{Status: "failed", Message: "No prompt templates loaded"}
	}
	return ReadinessCheck{Status: "ok"}
}

func okIf(ok bool, message string) ReadinessCheck {
	if ok {
		return ReadinessCheck{Status: "ok"}
	}
	return ReadinessCheck{Status: "failed", Message: message}
}
