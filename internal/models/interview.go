package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Interview is either a public template (no owner, IsTemplate set) or a
// practice session owned by one user.
type Interview struct {
	ID          string                      `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Title       string                      `gorm:"not null" json:"title"`
	Description string                      `gorm:"type:text" json:"description,omitempty"`
	Category    InterviewCategory           `gorm:"type:varchar(32);not null;index" json:"category"`
	Difficulty  InterviewDifficulty         `gorm:"type:varchar(32);not null;index" json:"difficulty"`
	Duration    int                         `gorm:"not null" json:"duration"`
	Topics      datatypes.JSONSlice[string] `json:"topics"`
	Role        string                      `json:"role,omitempty"`
	Level       string                      `json:"level,omitempty"`
	Icon        string                      `json:"icon,omitempty"`
	Color       string                      `json:"color,omitempty"`
	UserID      *string                     `gorm:"type:varchar(36);index" json:"userId,omitempty"`
	IsTemplate  bool                        `gorm:"not null;default:false;index" json:"isTemplate"`
	Status      InterviewStatus             `gorm:"type:varchar(16);not null;index" json:"status"`
	Rating      float64                     `gorm:"not null;default:0" json:"rating"`
	Completions int                         `gorm:"not null;default:0" json:"completions"`
	CreatedAt   time.Time                   `json:"createdAt"`
	UpdatedAt   time.Time                   `json:"updatedAt"`

	Questions   []InterviewQuestion `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Result      *InterviewResult    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	SkillScores []SkillScore        `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (i *Interview) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Status == "" {
		i.Status = StatusNotStarted
	}
	if i.Topics == nil {
		i.Topics = datatypes.JSONSlice[string]{}
	}
	return nil
}

// OwnedBy reports whether userID owns the interview. Templates without an
// owner are owned by nobody.
func (i *Interview) OwnedBy(userID string) bool {
	return i.UserID != nil && userID != "" && *i.UserID == userID
}

// InterviewQuestion is one generated question. Position is the 1-based
// creation order and Ref the reference the generator used for it; both are
// echoed through answer analysis to correlate scores back to rows.
type InterviewQuestion struct {
	ID             string                      `gorm:"primaryKey;type:varchar(36)" json:"id"`
	InterviewID    string                      `gorm:"type:varchar(36);not null;uniqueIndex:idx_question_position" json:"interviewId"`
	Position       int                         `gorm:"not null;uniqueIndex:idx_question_position" json:"position"`
	Ref            string                      `gorm:"type:varchar(64)" json:"ref"`
	Question       string                      `gorm:"type:text;not null" json:"question"`
	Context        string                      `gorm:"type:text" json:"context,omitempty"`
	ExpectedTopics datatypes.JSONSlice[string] `json:"expectedTopics,omitempty"`
	Answer         *string                     `gorm:"type:text" json:"answer"`
	Score          *int                        `json:"score"`
	Feedback       *string                     `gorm:"type:text" json:"feedback"`
	CreatedAt      time.Time                   `json:"createdAt"`
	UpdatedAt      time.Time                   `json:"updatedAt"`
}

func (q *InterviewQuestion) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

// InterviewResult is the overall analysis of a submission, at most one per interview.
type InterviewResult struct {
	ID           string                      `gorm:"primaryKey;type:varchar(36)" json:"id"`
	InterviewID  string                      `gorm:"type:varchar(36);not null;uniqueIndex" json:"interviewId"`
	OverallScore int                         `gorm:"not null" json:"overallScore"`
	Summary      string                      `gorm:"type:text" json:"summary"`
	Strengths    datatypes.JSONSlice[string] `json:"strengths"`
	Weaknesses   datatypes.JSONSlice[string] `json:"weaknesses"`
	CreatedAt    time.Time                   `json:"createdAt"`
	UpdatedAt    time.Time                   `json:"updatedAt"`
}

func (r *InterviewResult) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// SkillScore holds the latest score of one named skill for an interview.
type SkillScore struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	InterviewID string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_skill_interview" json:"interviewId"`
	SkillName   string    `gorm:"not null;uniqueIndex:idx_skill_interview" json:"skillName"`
	Score       int       `gorm:"not null" json:"score"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (s *SkillScore) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
