package interviewai

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interviewprep/api/internal/llm"
	"interviewprep/api/internal/models"
	"interviewprep/api/internal/prompts"
)

type fakeProvider struct {
	replies []string
	errs    []error
	prompts []string
	calls   int
}

func (f *fakeProvider) GenerateContent(ctx context.Context, prompt string, requestID string) (*models.GenerationResponse, error) {
	i := f.calls
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	reply := ""
	if i < len(f.replies) {
		reply = f.replies[i]
	} else if len(f.replies) > 0 {
		reply = f.replies[len(f.replies)-1]
	}
	return &models.GenerationResponse{
		Content:   reply,
		RequestID: requestID,
		Metadata:  models.GenerationMetadata{Provider: "fake"},
	}, nil
}

func (f *fakeProvider) GetProviderName() string { return "fake" }

func newTestAdapter(t *testing.T, provider llm.Provider) *Adapter {
	t.Helper()
	pm, err := prompts.NewPromptManager()
	require.NoError(t, err)
	return NewAdapter(provider, pm, nil, Options{
		Timeout:        time.Second,
		MaxAttempts:    3,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     2 * time.Millisecond,
	})
}

func TestGenerateQuestions(t *testing.T) {
	provider := &fakeProvider{replies: []string{"Here are your questions:\n" + `{"questions":[
		{"id":"q1","question":" What is a goroutine? ","context":"Concurrency","expectedTopics":["go"," "]},
		{"id":"q2","question":"","context":"blank question is dropped"},
		{"id":"q3","question":"Explain channels"},
		{"id":"q4","question":"Explain select"}
	]}`}}
	adapter := newTestAdapter(t, provider)

	questions, err := adapter.GenerateQuestions(context.Background(), QuestionSpec{
		Title:    "Go",
		Category: "TECHNICAL",
		Topics:   []string{"concurrency"},
		Count:    2,
	})
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, "What is a goroutine?", questions[0].Question)
	assert.Equal(t, []string{"go"}, questions[0].ExpectedTopics)
	assert.Equal(t, "q3", questions[1].ID)

	require.Len(t, provider.prompts, 1)
	assert.Contains(t, provider.prompts[0], "Generate 2 interview questions")
	assert.Contains(t, provider.prompts[0], "coding")
}

func TestGenerateQuestionsFailures(t *testing.T) {
	cases := []struct {
		name  string
		reply string
	}{
		{name: "no json", reply: "Sorry, I can't do that."},
		{name: "invalid json", reply: `{"questions": [ oops ]}`},
		{name: "empty list", reply: `{"questions": []}`},
		{name: "missing list", reply: `{"items": [{"question": "x"}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			adapter := newTestAdapter(t, &fakeProvider{replies: []string{tc.reply}})
			_, err := adapter.GenerateQuestions(context.Background(), QuestionSpec{Title: "x", Count: 3})
			var adapterErr *AdapterError
			require.True(t, errors.As(err, &adapterErr), "expected AdapterError, got %v", err)
			assert.Equal(t, opGenerateQuestions, adapterErr.Op)
		})
	}
}

func TestAnalyzeResponsesDefaultsMissingFields(t *testing.T) {
	provider := &fakeProvider{replies: []string{`{"overallScore": 72.6, "summary": "Solid"}`}}
	adapter := newTestAdapter(t, provider)

	analysis, err := adapter.AnalyzeResponses(context.Background(),
		InterviewMeta{Title: "Go", Category: "TECHNICAL", Difficulty: "BEGINNER"},
		[]Response{{QuestionRef: "q1", Question: "What is Go?", Answer: "A language", TimeSpent: 61}})
	require.NoError(t, err)
	assert.InDelta(t, 72.6, analysis.OverallScore.Float64(), 0.001)
	assert.Equal(t, "Solid", analysis.Summary)
	assert.NotNil(t, analysis.Strengths)
	assert.NotNil(t, analysis.Weaknesses)
	assert.Empty(t, analysis.QuestionScores)
	assert.Empty(t, analysis.SkillScores)

	assert.Contains(t, provider.prompts[0], "Q1 (questionId: q1): What is Go?")
	assert.Contains(t, provider.prompts[0], "Time Spent: 1m 1s")
}

func TestAnalyzeResponsesAcceptsNumericQuestionIDs(t *testing.T) {
	provider := &fakeProvider{replies: []string{`{"overallScore": 80, "questionScores": [
		{"questionId": 2, "score": 70, "feedback": "ok"},
		{"questionId": "q1", "score": 90, "feedback": "great"}
	]}`}}
	adapter := newTestAdapter(t, provider)

	analysis, err := adapter.AnalyzeResponses(context.Background(), InterviewMeta{Title: "x"}, nil)
	require.NoError(t, err)
	require.Len(t, analysis.QuestionScores, 2)
	assert.Equal(t, FlexibleID("2"), analysis.QuestionScores[0].QuestionID)
	assert.Equal(t, FlexibleID("q1"), analysis.QuestionScores[1].QuestionID)
}

func TestGenerateQuestionsAcceptsNumericIDs(t *testing.T) {
	provider := &fakeProvider{replies: []string{`{"questions": [
		{"id": 1, "question": "Explain goroutines"},
		{"id": " q2 ", "question": "Explain channels"},
		{"id": null, "question": "Explain select"}
	]}`}}
	adapter := newTestAdapter(t, provider)

	questions, err := adapter.GenerateQuestions(context.Background(), QuestionSpec{Title: "Go", Count: 3})
	require.NoError(t, err)
	require.Len(t, questions, 3)
	assert.Equal(t, FlexibleID("1"), questions[0].ID)
	assert.Equal(t, FlexibleID("q2"), questions[1].ID)
	assert.Equal(t, FlexibleID(""), questions[2].ID)
}

func TestAnalyzeResponsesAcceptsQuotedScores(t *testing.T) {
	provider := &fakeProvider{replies: []string{`{"overallScore": "85", "questionScores": [
		{"questionId": "q1", "score": " 90.5 ", "feedback": "good"},
		{"questionId": "q2", "score": "n/a", "feedback": "skipped"}
	], "skillScores": [{"skillName": "Go", "score": "70"}]}`}}
	adapter := newTestAdapter(t, provider)

	analysis, err := adapter.AnalyzeResponses(context.Background(), InterviewMeta{Title: "x"}, nil)
	require.NoError(t, err)
	assert.InDelta(t, 85, analysis.OverallScore.Float64(), 0.001)
	require.Len(t, analysis.QuestionScores, 2)
	assert.InDelta(t, 90.5, analysis.QuestionScores[0].Score.Float64(), 0.001)
	assert.InDelta(t, 0, analysis.QuestionScores[1].Score.Float64(), 0.001)
	require.Len(t, analysis.SkillScores, 1)
	assert.InDelta(t, 70, analysis.SkillScores[0].Score.Float64(), 0.001)
}

func TestCallRetriesTransientErrors(t *testing.T) {
	provider := &fakeProvider{
		errs: []error{
			&llm.ProviderError{Provider: "fake", Code: llm.ErrCodeRateLimit, Message: "slow down"},
			&llm.ProviderError{Provider: "fake", Code: llm.ErrCodeServiceDown, Message: "down"},
		},
		replies: []string{"", "", `{"overallScore": 50}`},
	}
	adapter := newTestAdapter(t, provider)

	analysis, err := adapter.AnalyzeResponses(context.Background(), InterviewMeta{Title: "x"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, provider.calls)
	assert.InDelta(t, 50, analysis.OverallScore.Float64(), 0.001)
}

func TestCallDoesNotRetryPermanentErrors(t *testing.T) {
	provider := &fakeProvider{
		errs: []error{&llm.ProviderError{Provider: "fake", Code: llm.ErrCodeAPIKey, Message: "bad key"}},
	}
	adapter := newTestAdapter(t, provider)

	_, err := adapter.AnalyzeResponses(context.Background(), InterviewMeta{Title: "x"}, nil)
	var adapterErr *AdapterError
	require.True(t, errors.As(err, &adapterErr))
	assert.Equal(t, 1, provider.calls)
}

func TestCallGivesUpAfterMaxAttempts(t *testing.T) {
	transient := &llm.ProviderError{Provider: "fake", Code: llm.ErrCodeTimeout, Message: "timeout"}
	provider := &fakeProvider{errs: []error{transient, transient, transient, transient}}
	adapter := newTestAdapter(t, provider)

	_, err := adapter.GenerateQuestions(context.Background(), QuestionSpec{Title: "x"})
	require.Error(t, err)
	assert.Equal(t, 3, provider.calls)
	assert.True(t, llm.IsTransient(errors.Unwrap(err)))
}

func TestFlexibleIDUnmarshal(t *testing.T) {
	var ids []FlexibleID
	require.NoError(t, json.Unmarshal([]byte(`["q1", 7, " 3 ", null, 2.5]`), &ids))
	got := make([]string, len(ids))
	for i, id := range ids {
		got[i] = id.String()
	}
	assert.Equal(t, "q1,7,3,,2.5", strings.Join(got, ","))
}

func TestCategoryVariant(t *testing.T) {
	assert.Equal(t, "system_design", categoryVariant("SYSTEM_DESIGN"))
	assert.Equal(t, "behavioral", categoryVariant("behavioral"))
	assert.Equal(t, prompts.DefaultVariant, categoryVariant("poetry"))
}
