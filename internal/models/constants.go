package models

import "strings"

type InterviewCategory string

const (
	CategoryTechnical    InterviewCategory = "TECHNICAL"
	CategoryBehavioral   InterviewCategory = "BEHAVIORAL"
	CategorySystemDesign InterviewCategory = "SYSTEM_DESIGN"
	CategoryCaseStudy    InterviewCategory = "CASE_STUDY"
)

type InterviewDifficulty string

const (
	DifficultyBeginner     InterviewDifficulty = "BEGINNER"
	DifficultyIntermediate InterviewDifficulty = "INTERMEDIATE"
	DifficultyAdvanced     InterviewDifficulty = "ADVANCED"
)

type InterviewStatus string

const (
	StatusNotStarted InterviewStatus = "NOT_STARTED"
	StatusInProgress InterviewStatus = "IN_PROGRESS"
	StatusCompleted  InterviewStatus = "COMPLETED"
)

const (
	DefaultDuration      = 30
	DefaultQuestionCount = 10
	MaxScore             = 100
)

// accepts both the slug form used by the web client and the enum form
var categoryAliases = map[string]InterviewCategory{
	"technical":     CategoryTechnical,
	"behavioral":    CategoryBehavioral,
	"system-design": CategorySystemDesign,
	"system_design": CategorySystemDesign,
	"case-study":    CategoryCaseStudy,
	"case_study":    CategoryCaseStudy,
}

var difficultyAliases = map[string]InterviewDifficulty{
	"beginner":     DifficultyBeginner,
	"intermediate": DifficultyIntermediate,
	"advanced":     DifficultyAdvanced,
}

var validStatuses = map[InterviewStatus]bool{
	StatusNotStarted: true,
	StatusInProgress: true,
	StatusCompleted:  true,
}

// ParseCategory maps a client supplied category to its enum value.
func ParseCategory(raw string) (InterviewCategory, bool) {
	c, ok := categoryAliases[strings.ToLower(strings.TrimSpace(raw))]
	return c, ok
}

// ParseDifficulty maps a client supplied difficulty to its enum value.
func ParseDifficulty(raw string) (InterviewDifficulty, bool) {
	d, ok := difficultyAliases[strings.ToLower(strings.TrimSpace(raw))]
	return d, ok
}

func ParseStatus(raw string) (InterviewStatus, bool) {
	s := InterviewStatus(strings.ToUpper(strings.TrimSpace(raw)))
	return s, validStatuses[s]
}

func CategorySlugList() []string {
	return []string{"technical", "behavioral", "system-design", "case-study"}
}

func DifficultySlugList() []string {
	return []string{"beginner", "intermediate", "advanced"}
}
