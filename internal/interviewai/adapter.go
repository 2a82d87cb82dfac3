package interviewai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/googleapis/gax-go/v2"
	"go.uber.org/zap"

	"interviewprep/api/internal/llm"
	"interviewprep/api/internal/metrics"
	"interviewprep/api/internal/models"
	"interviewprep/api/internal/prompts"
)

const (
	opGenerateQuestions = "generate_questions"
	opAnalyzeResponses  = "analyze_responses"
)

var ErrNoQuestions = errors.New("model returned no usable questions")

// Options bound every adapter call. Each attempt gets its own Timeout;
// only transient provider errors are retried.
type Options struct {
	Timeout        time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

func DefaultOptions() Options {
	return Options{
		Timeout:        45 * time.Second,
		MaxAttempts:    3,
		InitialBackoff: 500 * time.Millisecond,
		MaxBackoff:     5 * time.Second,
	}
}

type Adapter struct {
	provider llm.Provider
	prompts  prompts.PromptProvider
	logger   *zap.Logger
	opts     Options
}

func NewAdapter(provider llm.Provider, promptProvider prompts.PromptProvider, logger *zap.Logger, opts Options) *Adapter {
	defaults := DefaultOptions()
	if opts.Timeout <= 0 {
		opts.Timeout = defaults.Timeout
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = defaults.MaxAttempts
	}
	if opts.InitialBackoff <= 0 {
		opts.InitialBackoff = defaults.InitialBackoff
	}
	if opts.MaxBackoff < opts.InitialBackoff {
		opts.MaxBackoff = opts.InitialBackoff
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{
		provider: provider,
		prompts:  promptProvider,
		logger:   logger,
		opts:     opts,
	}
}

// GenerateQuestions asks the model for spec.Count questions. The set is all
// or nothing: an unparseable answer or an empty list fails the call. Extra
// questions beyond Count are dropped.
func (a *Adapter) GenerateQuestions(ctx context.Context, spec QuestionSpec) ([]GeneratedQuestion, error) {
	if spec.Count <= 0 {
		spec.Count = models.DefaultQuestionCount
	}
	spec.Topics = models.CleanList(spec.Topics)

	prompt, err := a.prompts.BuildPrompt(prompts.ModeGenerateQuestions, categoryVariant(spec.Category), spec)
	if err != nil {
		return nil, &AdapterError{Op: opGenerateQuestions, Err: err}
	}

	var envelope questionEnvelope
	if err := a.call(ctx, opGenerateQuestions, prompt, &envelope); err != nil {
		return nil, err
	}

	questions := make([]GeneratedQuestion, 0, len(envelope.Questions))
	for _, q := range envelope.Questions {
		q.Question = strings.TrimSpace(q.Question)
		if q.Question == "" {
			continue
		}
		q.ID = FlexibleID(strings.TrimSpace(q.ID.String()))
		q.Context = strings.TrimSpace(q.Context)
		q.ExpectedTopics = models.CleanList(q.ExpectedTopics)
		questions = append(questions, q)
		if len(questions) == spec.Count {
			break
		}
	}

	if len(questions) == 0 {
		return nil, &AdapterError{Op: opGenerateQuestions, Err: ErrNoQuestions}
	}
	if len(questions) < spec.Count {
		a.logger.Warn("Model returned fewer questions than requested",
			zap.Int("requested", spec.Count),
			zap.Int("received", len(questions)))
	}
	return questions, nil
}

// AnalyzeResponses scores a submission. Missing fields in the model output
// default to their zero values.
func (a *Adapter) AnalyzeResponses(ctx context.Context, meta InterviewMeta, responses []Response) (*Analysis, error) {
	meta.Topics = models.CleanList(meta.Topics)
	data := struct {
		InterviewMeta
		Responses []Response
	}{InterviewMeta: meta, Responses: responses}

	prompt, err := a.prompts.BuildPrompt(prompts.ModeAnalyzeResponses, prompts.DefaultVariant, data)
	if err != nil {
		return nil, &AdapterError{Op: opAnalyzeResponses, Err: err}
	}

	var analysis Analysis
	if err := a.call(ctx, opAnalyzeResponses, prompt, &analysis); err != nil {
		return nil, err
	}

	if analysis.Strengths == nil {
		analysis.Strengths = []string{}
	}
	if analysis.Weaknesses == nil {
		analysis.Weaknesses = []string{}
	}
	if analysis.QuestionScores == nil {
		analysis.QuestionScores = []QuestionScore{}
	}
	if analysis.SkillScores == nil {
		analysis.SkillScores = []SkillScore{}
	}
	return &analysis, nil
}

// call runs the prompt with per-attempt timeouts and bounded retries, then
// decodes the first JSON object of the output into out.
func (a *Adapter) call(ctx context.Context, op, prompt string, out interface{}) error {
	requestID := uuid.NewString()
	logger := a.logger.With(zap.String("operation", op), zap.String("request_id", requestID))
	started := time.Now()

	backoff := gax.Backoff{
		Initial:    a.opts.InitialBackoff,
		Max:        a.opts.MaxBackoff,
		Multiplier: 2,
	}

	var resp *models.GenerationResponse
	var err error
	for attempt := 1; attempt <= a.opts.MaxAttempts; attempt++ {
		resp, err = a.generate(ctx, prompt, requestID)
		if err == nil {
			break
		}
		if attempt == a.opts.MaxAttempts || !llm.IsTransient(err) || ctx.Err() != nil {
			break
		}

		pause := backoff.Pause()
		logger.Warn("AI call failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("backoff", pause),
			zap.Error(err))
		if sleepErr := gax.Sleep(ctx, pause); sleepErr != nil {
			err = sleepErr
			break
		}
	}

	if err != nil {
		logger.Error("AI call failed", zap.Error(err))
		metrics.ObserveAICall(op, "provider_error", time.Since(started))
		return &AdapterError{Op: op, Err: err}
	}

	raw, err := extractJSONObject(resp.Content)
	if err != nil {
		logger.Error("AI output had no JSON object", zap.Int("content_length", len(resp.Content)))
		metrics.ObserveAICall(op, "parse_error", time.Since(started))
		return &AdapterError{Op: op, Err: err}
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		logger.Error("Failed to parse AI output", zap.Error(err))
		metrics.ObserveAICall(op, "parse_error", time.Since(started))
		return &AdapterError{Op: op, Err: fmt.Errorf("invalid JSON from model: %w", err)}
	}

	logger.Info("AI call completed",
		zap.String("provider", resp.Metadata.Provider),
		zap.Int("processing_time_ms", resp.Metadata.ProcessingTime))
	metrics.ObserveAICall(op, "success", time.Since(started))
	return nil
}

func (a *Adapter) generate(ctx context.Context, prompt, requestID string) (*models.GenerationResponse, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, a.opts.Timeout)
	defer cancel()
	return a.provider.GenerateContent(attemptCtx, prompt, requestID)
}

// categoryVariant maps an interview category to its prompt variant name.
func categoryVariant(category string) string {
	if c, ok := models.ParseCategory(category); ok {
		return strings.ToLower(string(c))
	}
	return prompts.DefaultVariant
}
