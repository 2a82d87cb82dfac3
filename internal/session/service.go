// Package session runs the interview lifecycle: start, view, submit and
// results.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"interviewprep/api/internal/access"
	"interviewprep/api/internal/interviewai"
	"interviewprep/api/internal/metrics"
	"interviewprep/api/internal/models"
	"interviewprep/api/internal/repositories"
)

var (
	ErrResultsNotReady   = errors.New("interview results not found")
	ErrSessionStarting   = errors.New("interview session is being started")
	ErrSessionNotStarted = errors.New("interview session has not been started")
)

type InterviewStore interface {
	GetByID(ctx context.Context, id string) (*models.Interview, error)
	GetWithQuestions(ctx context.Context, id string) (*models.Interview, error)
	ClaimStart(ctx context.Context, id string) (bool, error)
	ReleaseStart(ctx context.Context, id string) error
	MarkInProgress(ctx context.Context, id string) error
}

type QuestionStore interface {
	ListByInterview(ctx context.Context, interviewID string) ([]models.InterviewQuestion, error)
	CreateBatch(ctx context.Context, questions []models.InterviewQuestion) error
}

type ResultStore interface {
	GetByInterview(ctx context.Context, interviewID string) (*models.InterviewResult, error)
	ListSkillScores(ctx context.Context, interviewID string) ([]models.SkillScore, error)
	SaveSubmission(ctx context.Context, record repositories.SubmissionRecord) (*models.InterviewResult, error)
}

type InterviewAI interface {
	GenerateQuestions(ctx context.Context, spec interviewai.QuestionSpec) ([]interviewai.GeneratedQuestion, error)
	AnalyzeResponses(ctx context.Context, meta interviewai.InterviewMeta, responses []interviewai.Response) (*interviewai.Analysis, error)
}

type Deps struct {
	Interviews    InterviewStore
	Questions     QuestionStore
	Results       ResultStore
	AI            InterviewAI
	Events        EventPublisher
	Logger        *zap.Logger
	QuestionCount int
}

type Service struct {
	interviews    InterviewStore
	questions     QuestionStore
	results       ResultStore
	ai            InterviewAI
	events        EventPublisher
	logger        *zap.Logger
	questionCount int
}

// SubmitResult is the stored result together with the analysis it came from.
type SubmitResult struct {
	Result   *models.InterviewResult `json:"result"`
	Analysis *interviewai.Analysis   `json:"analysis"`
}

func NewService(deps Deps) *Service {
	s := &Service{
		interviews:    deps.Interviews,
		questions:     deps.Questions,
		results:       deps.Results,
		ai:            deps.AI,
		events:        deps.Events,
		logger:        deps.Logger,
		questionCount: deps.QuestionCount,
	}
	if s.events == nil {
		s.events = NoopPublisher()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.questionCount <= 0 {
		s.questionCount = models.DefaultQuestionCount
	}
	return s
}

// Start returns the interview's question set, generating it on first call.
// Later calls reuse the stored set. Only the caller that claims the
// NOT_STARTED interview generates; a concurrent caller that finds no
// questions yet gets ErrSessionStarting.
func (s *Service) Start(ctx context.Context, interviewID string, caller access.Caller) (*models.SessionStart, error) {
	interview, err := s.interviews.GetWithQuestions(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(interview, caller, access.Write); err != nil {
		return nil, err
	}

	logger := s.logger.With(zap.String("interview_id", interviewID), zap.String("user_id", caller.UserID))

	if len(interview.Questions) > 0 {
		return s.resume(ctx, interviewID, interview.Questions, logger)
	}

	claimed, err := s.interviews.ClaimStart(ctx, interviewID)
	if err != nil {
		return nil, fmt.Errorf("claim interview start: %w", err)
	}
	if !claimed {
		questions, err := s.questions.ListByInterview(ctx, interviewID)
		if err != nil {
			return nil, err
		}
		if len(questions) > 0 {
			return s.resume(ctx, interviewID, questions, logger)
		}
		logger.Info("Start already in progress")
		return nil, ErrSessionStarting
	}

	generated, err := s.ai.GenerateQuestions(ctx, interviewai.QuestionSpec{
		Title:       interview.Title,
		Description: interview.Description,
		Category:    string(interview.Category),
		Difficulty:  string(interview.Difficulty),
		Role:        interview.Role,
		Level:       interview.Level,
		Topics:      interview.Topics,
		Count:       s.questionCount,
	})
	if err != nil {
		s.release(ctx, interviewID, logger)
		return nil, err
	}

	questions := buildQuestions(interviewID, generated)
	if err := s.questions.CreateBatch(ctx, questions); err != nil {
		s.release(ctx, interviewID, logger)
		return nil, fmt.Errorf("store generated questions: %w", err)
	}

	started, err := s.interviews.GetByID(ctx, interviewID)
	if err != nil {
		return nil, err
	}

	logger.Info("Interview session started", zap.Int("question_count", len(questions)))
	metrics.SessionEvent("started_fresh")
	metrics.QuestionsGenerated(len(questions))
	s.events.Publish(ctx, Event{
		Type:          ChannelInterviewStarted,
		InterviewID:   interviewID,
		UserID:        caller.UserID,
		QuestionCount: len(questions),
	})

	return &models.SessionStart{Interview: started, Questions: summarize(questions)}, nil
}

func (s *Service) resume(ctx context.Context, interviewID string, questions []models.InterviewQuestion, logger *zap.Logger) (*models.SessionStart, error) {
	if err := s.interviews.MarkInProgress(ctx, interviewID); err != nil {
		return nil, fmt.Errorf("mark interview in progress: %w", err)
	}
	interview, err := s.interviews.GetByID(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	logger.Info("Interview session resumed", zap.Int("question_count", len(questions)))
	metrics.SessionEvent("started_reused")
	return &models.SessionStart{Interview: interview, Questions: summarize(questions)}, nil
}

func (s *Service) release(ctx context.Context, interviewID string, logger *zap.Logger) {
	if err := s.interviews.ReleaseStart(context.WithoutCancel(ctx), interviewID); err != nil {
		logger.Error("Failed to release start claim", zap.Error(err))
	}
}

// Get returns the interview with the question projection used while a
// session is running.
func (s *Service) Get(ctx context.Context, interviewID string, caller access.Caller) (*models.SessionView, error) {
	interview, err := s.interviews.GetWithQuestions(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(interview, caller, access.Read); err != nil {
		return nil, err
	}
	return &models.SessionView{Interview: *interview, Questions: summarize(interview.Questions)}, nil
}

// Submit grades responses and stores the outcome. A failed analysis stores
// nothing.
func (s *Service) Submit(ctx context.Context, interviewID string, caller access.Caller, responses []models.SessionResponse) (*SubmitResult, error) {
	interview, err := s.interviews.GetWithQuestions(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(interview, caller, access.Write); err != nil {
		return nil, err
	}
	if len(interview.Questions) == 0 {
		return nil, ErrSessionNotStarted
	}

	logger := s.logger.With(zap.String("interview_id", interviewID), zap.String("user_id", caller.UserID))
	questions := interview.Questions

	analysis, err := s.ai.AnalyzeResponses(ctx, interviewai.InterviewMeta{
		Title:      interview.Title,
		Category:   string(interview.Category),
		Difficulty: string(interview.Difficulty),
		Topics:     interview.Topics,
	}, toAdapterResponses(questions, responses))
	if err != nil {
		return nil, err
	}

	record := repositories.SubmissionRecord{
		InterviewID: interviewID,
		Questions:   s.gradeQuestions(questions, responses, analysis.QuestionScores, logger),
		Result: models.InterviewResult{
			OverallScore: clampScore(analysis.OverallScore.Float64()),
			Summary:      strings.TrimSpace(analysis.Summary),
			Strengths:    models.CleanList(analysis.Strengths),
			Weaknesses:   models.CleanList(analysis.Weaknesses),
		},
		SkillScores: skillRows(analysis.SkillScores),
	}

	result, err := s.results.SaveSubmission(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("store submission: %w", err)
	}

	logger.Info("Interview session completed",
		zap.Int("overall_score", result.OverallScore),
		zap.Int("graded_questions", len(record.Questions)))
	metrics.SessionEvent("completed")
	score := result.OverallScore
	s.events.Publish(ctx, Event{
		Type:         ChannelInterviewCompleted,
		InterviewID:  interviewID,
		UserID:       caller.UserID,
		OverallScore: &score,
	})

	return &SubmitResult{Result: result, Analysis: analysis}, nil
}

// Results composes the read model of a completed interview.
func (s *Service) Results(ctx context.Context, interviewID string, caller access.Caller) (*models.ResultsView, error) {
	interview, err := s.interviews.GetWithQuestions(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(interview, caller, access.Read); err != nil {
		return nil, err
	}

	result, err := s.results.GetByInterview(ctx, interviewID)
	if errors.Is(err, repositories.ErrResultNotFound) {
		return nil, ErrResultsNotReady
	}
	if err != nil {
		return nil, err
	}

	skills, err := s.results.ListSkillScores(ctx, interviewID)
	if err != nil {
		return nil, err
	}

	view := &models.ResultsView{
		Interview: models.InterviewSummary{
			ID:          interview.ID,
			Title:       interview.Title,
			Description: interview.Description,
			Category:    interview.Category,
			Difficulty:  interview.Difficulty,
			Duration:    interview.Duration,
			Status:      interview.Status,
		},
		Results: models.ResultSummary{
			OverallScore: result.OverallScore,
			Summary:      result.Summary,
			Strengths:    models.CleanList(result.Strengths),
			Weaknesses:   models.CleanList(result.Weaknesses),
		},
		Questions:   make([]models.QuestionDetail, 0, len(interview.Questions)),
		SkillScores: make([]models.SkillScoreView, 0, len(skills)),
	}
	for _, q := range interview.Questions {
		view.Questions = append(view.Questions, models.QuestionDetail{
			ID:       q.ID,
			Question: q.Question,
			Answer:   q.Answer,
			Score:    q.Score,
			Feedback: q.Feedback,
		})
	}
	for _, skill := range skills {
		view.SkillScores = append(view.SkillScores, models.SkillScoreView{SkillName: skill.SkillName, Score: skill.Score})
	}
	return view, nil
}

// gradeQuestions resolves every question score to a stored question.
// Unresolvable references are logged and skipped; a question scored twice
// keeps the last score.
func (s *Service) gradeQuestions(questions []models.InterviewQuestion, responses []models.SessionResponse, scores []interviewai.QuestionScore, logger *zap.Logger) []repositories.QuestionUpdate {
	updates := make([]repositories.QuestionUpdate, 0, len(scores))
	index := make(map[string]int, len(scores))

	for _, qs := range scores {
		q := matchQuestion(questions, qs.QuestionID.String())
		if q == nil {
			logger.Warn("Question score did not match any stored question",
				zap.String("question_ref", qs.QuestionID.String()),
				zap.Int("question_count", len(questions)))
			metrics.UnmatchedQuestionScore()
			continue
		}

		update := repositories.QuestionUpdate{
			QuestionID: q.ID,
			Answer:     answerFor(questions, responses, q),
			Score:      clampScore(qs.Score.Float64()),
			Feedback:   strings.TrimSpace(qs.Feedback),
		}
		if i, seen := index[q.ID]; seen {
			updates[i] = update
			continue
		}
		index[q.ID] = len(updates)
		updates = append(updates, update)
	}
	return updates
}

func buildQuestions(interviewID string, generated []interviewai.GeneratedQuestion) []models.InterviewQuestion {
	questions := make([]models.InterviewQuestion, 0, len(generated))
	seen := make(map[string]bool, len(generated))

	for i, g := range generated {
		position := i + 1
		ref := g.ID.String()
		if ref == "" || seen[strings.ToLower(ref)] {
			ref = fmt.Sprintf("q%d", position)
		}
		for n := 2; seen[strings.ToLower(ref)]; n++ {
			ref = fmt.Sprintf("q%d-%d", position, n)
		}
		seen[strings.ToLower(ref)] = true

		questions = append(questions, models.InterviewQuestion{
			InterviewID:    interviewID,
			Position:       position,
			Ref:            ref,
			Question:       g.Question,
			Context:        g.Context,
			ExpectedTopics: models.CleanList(g.ExpectedTopics),
		})
	}
	return questions
}

func toAdapterResponses(questions []models.InterviewQuestion, responses []models.SessionResponse) []interviewai.Response {
	out := make([]interviewai.Response, 0, len(responses))
	for _, resp := range responses {
		ar := interviewai.Response{
			QuestionRef: resp.QuestionID,
			Question:    strings.TrimSpace(resp.Question),
			Answer:      resp.Answer,
			TimeSpent:   resp.TimeSpent,
		}
		if q := matchQuestion(questions, resp.QuestionID); q != nil {
			ar.QuestionRef = q.Ref
			if ar.QuestionRef == "" {
				ar.QuestionRef = fmt.Sprintf("q%d", q.Position)
			}
			if ar.Question == "" {
				ar.Question = q.Question
			}
		}
		out = append(out, ar)
	}
	return out
}

func skillRows(scores []interviewai.SkillScore) []models.SkillScore {
	rows := make([]models.SkillScore, 0, len(scores))
	index := make(map[string]int, len(scores))

	for _, sc := range scores {
		name := strings.TrimSpace(sc.SkillName)
		if name == "" {
			continue
		}
		row := models.SkillScore{SkillName: name, Score: clampScore(sc.Score.Float64())}
		if i, seen := index[name]; seen {
			rows[i] = row
			continue
		}
		index[name] = len(rows)
		rows = append(rows, row)
	}
	return rows
}

func summarize(questions []models.InterviewQuestion) []models.QuestionSummary {
	out := make([]models.QuestionSummary, 0, len(questions))
	for _, q := range questions {
		out = append(out, models.QuestionSummary{ID: q.ID, Question: q.Question})
	}
	return out
}
