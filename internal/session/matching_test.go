package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interviewprep/api/internal/interviewai"
	"interviewprep/api/internal/models"
)

func sampleQuestions() []models.InterviewQuestion {
	return []models.InterviewQuestion{
		{ID: "id-a", Position: 1, Ref: "q1", Question: "first"},
		{ID: "id-b", Position: 2, Ref: "intro-2", Question: "second"},
		{ID: "id-c", Position: 3, Ref: "q3", Question: "third"},
	}
}

func TestMatchQuestion(t *testing.T) {
	questions := sampleQuestions()

	cases := []struct {
		ref  string
		want string
	}{
		{ref: "id-b", want: "id-b"},
		{ref: "q3", want: "id-c"},
		{ref: "INTRO-2", want: "id-b"},
		{ref: "question 2", want: "id-b"},
		{ref: "2", want: "id-b"},
		{ref: " q1 ", want: "id-a"},
		{ref: "q4", want: ""},
		{ref: "q0", want: ""},
		{ref: "none", want: ""},
		{ref: "", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.ref, func(t *testing.T) {
			got := matchQuestion(questions, tc.ref)
			if tc.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tc.want, got.ID)
		})
	}
}

func TestOrdinalFromRef(t *testing.T) {
	n, ok := ordinalFromRef("q12")
	assert.True(t, ok)
	assert.Equal(t, 12, n)

	n, ok = ordinalFromRef("q1a2")
	assert.True(t, ok)
	assert.Equal(t, 12, n)

	_, ok = ordinalFromRef("question")
	assert.False(t, ok)
}

func TestAnswerFor(t *testing.T) {
	questions := sampleQuestions()
	responses := []models.SessionResponse{
		{QuestionID: "id-a", Answer: "by id"},
		{QuestionID: "intro-2", Answer: "by ref"},
		{QuestionID: "3", Answer: "by ordinal"},
		{QuestionID: "id-a", Answer: "by id again"},
	}

	assert.Equal(t, "by id again", *answerFor(questions, responses, &questions[0]))
	assert.Equal(t, "by ref", *answerFor(questions, responses, &questions[1]))
	assert.Equal(t, "by ordinal", *answerFor(questions, responses, &questions[2]))
	assert.Nil(t, answerFor(questions, nil, &questions[0]))
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0, clampScore(-5))
	assert.Equal(t, 88, clampScore(87.6))
	assert.Equal(t, 100, clampScore(140))
	assert.Equal(t, 50, clampScore(50))
}

func TestBuildQuestionsAssignsStableRefs(t *testing.T) {
	rows := buildQuestions("iv", []interviewai.GeneratedQuestion{
		{ID: "q1", Question: "a", ExpectedTopics: []string{" go ", ""}},
		{ID: "", Question: "b"},
		{ID: "Q1", Question: "c"},
		{ID: "custom", Question: "d"},
	})

	require.Len(t, rows, 4)
	refs := []string{rows[0].Ref, rows[1].Ref, rows[2].Ref, rows[3].Ref}
	assert.Equal(t, []string{"q1", "q2", "q3", "custom"}, refs)
	for i, row := range rows {
		assert.Equal(t, i+1, row.Position)
		assert.Equal(t, "iv", row.InterviewID)
	}
	assert.Equal(t, []string{"go"}, []string(rows[0].ExpectedTopics))
}
