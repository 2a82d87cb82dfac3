package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"interviewprep/api/internal/access"
	"interviewprep/api/internal/middleware"
	"interviewprep/api/internal/models"
	"interviewprep/api/internal/repositories"
	"interviewprep/api/internal/utils"
)

type InterviewHandler struct {
	interviews InterviewStore
	users      UserStore
	logger     *zap.Logger
}

func NewInterviewHandler(interviews InterviewStore, users UserStore, logger *zap.Logger) *InterviewHandler {
	return &InterviewHandler{interviews: interviews, users: users, logger: logger}
}

// ListInterviews returns templates plus the caller's own interviews.
// Filters that do not name a known value are ignored.
func (h *InterviewHandler) ListInterviews(w http.ResponseWriter, r *http.Request) {
	caller, err := resolveCaller(r.Context(), h.users)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	query := r.URL.Query()
	filter := repositories.InterviewFilter{
		UserID:        caller.UserID,
		Search:        strings.TrimSpace(query.Get("search")),
		TemplatesOnly: query.Get("template") == "true",
	}
	if category, ok := models.ParseCategory(query.Get("category")); ok {
		filter.Category = category
	}
	if difficulty, ok := models.ParseDifficulty(query.Get("difficulty")); ok {
		filter.Difficulty = difficulty
	}
	if status, ok := models.ParseStatus(query.Get("status")); ok {
		filter.Status = status
	}

	interviews, err := h.interviews.List(r.Context(), filter)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	utils.Success(w, http.StatusOK, interviews)
}

func (h *InterviewHandler) GetInterview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		utils.Failure(w, http.StatusBadRequest, models.ErrorResponse{Code: "missing_id", Message: "Interview ID is required"})
		return
	}

	caller, err := resolveCaller(r.Context(), h.users)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	interview, err := h.interviews.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := access.Authorize(interview, caller, access.Read); err != nil {
		writeError(w, h.logger, err)
		return
	}
	utils.Success(w, http.StatusOK, interview)
}

// CreateInterview creates an owned interview, optionally cloned from a
// template. Fields present in the request override the template's.
func (h *InterviewHandler) CreateInterview(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.CreateInterviewRequest](r)

	caller, err := resolveCaller(r.Context(), h.users)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := access.CanCreate(caller); err != nil {
		writeError(w, h.logger, err)
		return
	}

	interview := &models.Interview{
		Category:   models.CategoryTechnical,
		Difficulty: models.DifficultyIntermediate,
		Duration:   models.DefaultDuration,
	}
	if req.TemplateID != "" {
		template, err := h.interviews.GetByID(r.Context(), req.TemplateID)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		if err := access.Authorize(template, caller, access.Read); err != nil {
			writeError(w, h.logger, err)
			return
		}
		interview = cloneTemplate(template)
	}
	applyCreateRequest(interview, req)

	owner := caller.UserID
	interview.UserID = &owner
	interview.Status = models.StatusNotStarted

	if err := h.interviews.Create(r.Context(), interview); err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.logger.Info("Interview created",
		zap.String("interview_id", interview.ID),
		zap.String("user_id", owner),
		zap.String("template_id", req.TemplateID))
	utils.Success(w, http.StatusCreated, interview)
}

func cloneTemplate(template *models.Interview) *models.Interview {
	topics := make([]string, len(template.Topics))
	copy(topics, template.Topics)
	return &models.Interview{
		Title:       template.Title,
		Description: template.Description,
		Category:    template.Category,
		Difficulty:  template.Difficulty,
		Duration:    template.Duration,
		Topics:      topics,
		Role:        template.Role,
		Level:       template.Level,
		Icon:        template.Icon,
		Color:       template.Color,
	}
}

func applyCreateRequest(interview *models.Interview, req *models.CreateInterviewRequest) {
	if req.Title != "" {
		interview.Title = req.Title
	}
	if req.Description != "" {
		interview.Description = strings.TrimSpace(req.Description)
	}
	if req.Category != "" {
		interview.Category = models.InterviewCategory(req.Category)
	}
	if req.Difficulty != "" {
		interview.Difficulty = models.InterviewDifficulty(req.Difficulty)
	}
	if req.Duration != nil {
		interview.Duration = *req.Duration
	}
	if len(req.Topics) > 0 {
		interview.Topics = req.Topics
	}
	if role := strings.TrimSpace(req.Role); role != "" {
		interview.Role = role
	}
	if level := strings.TrimSpace(req.Level); level != "" {
		interview.Level = level
	}
	if req.Icon != "" {
		interview.Icon = req.Icon
	}
	if req.Color != "" {
		interview.Color = req.Color
	}
}
