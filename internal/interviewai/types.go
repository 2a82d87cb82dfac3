package interviewai

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// QuestionSpec describes the interview a question set is generated for.
type QuestionSpec struct {
	Title       string
	Description string
	Category    string
	Difficulty  string
	Role        string
	Level       string
	Topics      []string
	Count       int
}

type GeneratedQuestion struct {
	ID             FlexibleID `json:"id"`
	Question       string     `json:"question"`
	Context        string     `json:"context"`
	ExpectedTopics []string   `json:"expectedTopics"`
}

type InterviewMeta struct {
	Title      string
	Category   string
	Difficulty string
	Topics     []string
}

// Response is one answered question sent for analysis. QuestionRef is the
// identifier the model is asked to echo back in its question scores.
type Response struct {
	QuestionRef string
	Question    string
	Answer      string
	TimeSpent   int
}

type Analysis struct {
	OverallScore   Score           `json:"overallScore"`
	Summary        string          `json:"summary"`
	Strengths      []string        `json:"strengths"`
	Weaknesses     []string        `json:"weaknesses"`
	QuestionScores []QuestionScore `json:"questionScores"`
	SkillScores    []SkillScore    `json:"skillScores"`
}

type QuestionScore struct {
	QuestionID FlexibleID `json:"questionId"`
	Score      Score      `json:"score"`
	Feedback   string     `json:"feedback"`
}

type SkillScore struct {
	SkillName string `json:"skillName"`
	Score     Score  `json:"score"`
}

// FlexibleID accepts both "q3" and 3 from the model.
type FlexibleID string

func (f *FlexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexibleID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if i, err := n.Int64(); err == nil {
		*f = FlexibleID(strconv.FormatInt(i, 10))
		return nil
	}
	*f = FlexibleID(n.String())
	return nil
}

func (f FlexibleID) String() string {
	return string(f)
}

// Score accepts 85, "85" and " 85.5 ". Values that are not numbers decode
// to zero so one odd field does not discard the whole analysis.
type Score float64

func (s *Score) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		data = []byte(strings.TrimSpace(str))
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		*s = 0
		return nil
	}
	*s = Score(f)
	return nil
}

func (s Score) Float64() float64 {
	return float64(s)
}

type questionEnvelope struct {
	Questions []GeneratedQuestion `json:"questions"`
}
