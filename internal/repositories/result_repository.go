package repositories

import (
	"context"
	"errors"
	"time"

	"interviewprep/api/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrResultNotFound = errors.New("interview result not found")

type ResultRepository struct {
	DB *gorm.DB
}

// QuestionUpdate is the graded outcome of one question. A nil Answer leaves
// the stored answer untouched.
type QuestionUpdate struct {
	QuestionID string
	Answer     *string
	Score      int
	Feedback   string
}

// SubmissionRecord is everything a completed analysis writes.
type SubmissionRecord struct {
	InterviewID string
	Questions   []QuestionUpdate
	Result      models.InterviewResult
	SkillScores []models.SkillScore
}

func (r *ResultRepository) GetByInterview(ctx context.Context, interviewID string) (*models.InterviewResult, error) {
	var result models.InterviewResult
	err := r.DB.WithContext(ctx).First(&result, "interview_id = ?", interviewID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrResultNotFound
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *ResultRepository) ListSkillScores(ctx context.Context, interviewID string) ([]models.SkillScore, error) {
	scores := []models.SkillScore{}
	err := r.DB.WithContext(ctx).
		Where("interview_id = ?", interviewID).
		Order("skill_name ASC").
		Find(&scores).Error
	return scores, err
}

// SaveSubmission applies question grades, upserts the result and skill
// scores, and completes the interview in a single transaction.
func (r *ResultRepository) SaveSubmission(ctx context.Context, record SubmissionRecord) (*models.InterviewResult, error) {
	var saved models.InterviewResult

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, q := range record.Questions {
			updates := map[string]interface{}{
				"score":    q.Score,
				"feedback": q.Feedback,
			}
			if q.Answer != nil {
				updates["answer"] = *q.Answer
			}
			if err := tx.Model(&models.InterviewQuestion{}).
				Where("id = ? AND interview_id = ?", q.QuestionID, record.InterviewID).
				Updates(updates).Error; err != nil {
				return err
			}
		}

		result := record.Result
		result.InterviewID = record.InterviewID
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "interview_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"overall_score", "summary", "strengths", "weaknesses", "updated_at"}),
		}).Create(&result).Error; err != nil {
			return err
		}

		for i := range record.SkillScores {
			skill := record.SkillScores[i]
			skill.InterviewID = record.InterviewID
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "interview_id"}, {Name: "skill_name"}},
				DoUpdates: clause.AssignmentColumns([]string{"score", "updated_at"}),
			}).Create(&skill).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&models.Interview{}).
			Where("id = ?", record.InterviewID).
			Updates(map[string]interface{}{
				"status":      models.StatusCompleted,
				"completions": gorm.Expr("completions + ?", 1),
				"updated_at":  time.Now(),
			}).Error; err != nil {
			return err
		}

		return tx.First(&saved, "interview_id = ?", record.InterviewID).Error
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}
