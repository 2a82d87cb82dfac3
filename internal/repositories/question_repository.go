package repositories

import (
	"context"

	"interviewprep/api/internal/models"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func (r *QuestionRepository) ListByInterview(ctx context.Context, interviewID string) ([]models.InterviewQuestion, error) {
	questions := []models.InterviewQuestion{}
	err := r.DB.WithContext(ctx).
		Where("interview_id = ?", interviewID).
		Order("position ASC").
		Find(&questions).Error
	return questions, err
}

// CreateBatch inserts a whole question set or nothing. The unique
// (interview_id, position) index rejects a second set for the same interview.
func (r *QuestionRepository) CreateBatch(ctx context.Context, questions []models.InterviewQuestion) error {
	if len(questions) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&questions).Error
	})
}
