package session

import (
	"math"
	"strconv"
	"strings"

	"interviewprep/api/internal/models"
)

// matchQuestion resolves a reference returned by the model or sent by the
// client. It tries the persisted id, then the persisted generator ref, and
// finally treats the digits embedded in ref as a 1-based position.
func matchQuestion(questions []models.InterviewQuestion, ref string) *models.InterviewQuestion {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil
	}

	for i := range questions {
		if questions[i].ID == ref {
			return &questions[i]
		}
	}
	for i := range questions {
		if questions[i].Ref != "" && strings.EqualFold(questions[i].Ref, ref) {
			return &questions[i]
		}
	}

	ordinal, ok := ordinalFromRef(ref)
	if !ok || ordinal < 1 || ordinal > len(questions) {
		return nil
	}
	return &questions[ordinal-1]
}

// ordinalFromRef concatenates every digit in ref, so "q3" and "Question 3"
// both yield 3.
func ordinalFromRef(ref string) (int, bool) {
	var digits strings.Builder
	for _, r := range ref {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0, false
	}
	return n, true
}

// answerFor finds the submitted answer for q. Later responses win.
func answerFor(questions []models.InterviewQuestion, responses []models.SessionResponse, q *models.InterviewQuestion) *string {
	var answer *string
	for i := range responses {
		resp := responses[i]
		if resp.QuestionID == q.ID || (q.Ref != "" && strings.EqualFold(resp.QuestionID, q.Ref)) {
			a := resp.Answer
			answer = &a
			continue
		}
		if matched := matchQuestion(questions, resp.QuestionID); matched != nil && matched.ID == q.ID {
			a := resp.Answer
			answer = &a
		}
	}
	return answer
}

// clampScore rounds a model score into 0..MaxScore.
func clampScore(score float64) int {
	switch {
	case math.IsNaN(score) || score <= 0:
		return 0
	case score >= models.MaxScore:
		return models.MaxScore
	}
	return int(math.Round(score))
}
