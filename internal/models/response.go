package models

// uniform error payload; also used as a validation error value
type ErrorResponse struct {
	Success bool                    `json:"success"`
	Code    string                  `json:"code"`
	Message string                  `json:"error"`
	Details []ValidationErrorDetail `json:"details,omitempty"`
}

func (e *ErrorResponse) Error() string {
	return e.Message
}

// single field validation error
type ValidationErrorDetail struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// successful responses are wrapped in {success, data}
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// raw text returned by an LLM provider
type GenerationResponse struct {
	Content   string             `json:"content"`
	RequestID string             `json:"request_id"`
	Metadata  GenerationMetadata `json:"metadata"`
}

type GenerationMetadata struct {
	ProcessingTime int    `json:"processing_time_ms"`
	Provider       string `json:"provider"`
	Model          string `json:"model"`
}

// QuestionSummary is the projection exposed while a session is running:
// answers, scores and feedback stay hidden.
type QuestionSummary struct {
	ID       string `json:"id"`
	Question string `json:"question"`
}

type SessionStart struct {
	Interview *Interview        `json:"interview"`
	Questions []QuestionSummary `json:"questions"`
}

// SessionView is the interview record with its minimal question list.
type SessionView struct {
	Interview
	Questions []QuestionSummary `json:"questions"`
}

type InterviewSummary struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Category    InterviewCategory   `json:"category"`
	Difficulty  InterviewDifficulty `json:"difficulty"`
	Duration    int                 `json:"duration"`
	Status      InterviewStatus     `json:"status"`
}

type ResultSummary struct {
	OverallScore int      `json:"overallScore"`
	Summary      string   `json:"summary"`
	Strengths    []string `json:"strengths"`
	Weaknesses   []string `json:"weaknesses"`
}

type QuestionDetail struct {
	ID       string  `json:"id"`
	Question string  `json:"question"`
	Answer   *string `json:"answer"`
	Score    *int    `json:"score"`
	Feedback *string `json:"feedback"`
}

type SkillScoreView struct {
	SkillName string `json:"skillName"`
	Score     int    `json:"score"`
}

// ResultsView is the composed read model of a completed interview.
type ResultsView struct {
	Interview   InterviewSummary `json:"interview"`
	Results     ResultSummary    `json:"results"`
	Questions   []QuestionDetail `json:"questions"`
	SkillScores []SkillScoreView `json:"skillScores"`
}
