package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"interviewprep/api/internal/models"

	"gorm.io/gorm"
)

var ErrInterviewNotFound = errors.New("interview not found")

// likeEscaper makes search text match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type InterviewRepository struct {
	DB *gorm.DB
}

// InterviewFilter narrows the catalogue. Visibility is always templates plus
// the interviews owned by UserID.
type InterviewFilter struct {
	UserID        string
	Category      models.InterviewCategory
	Difficulty    models.InterviewDifficulty
	Status        models.InterviewStatus
	Search        string
	TemplatesOnly bool
}

func (r *InterviewRepository) Create(ctx context.Context, interview *models.Interview) error {
	return r.DB.WithContext(ctx).Create(interview).Error
}

func (r *InterviewRepository) GetByID(ctx context.Context, id string) (*models.Interview, error) {
	var interview models.Interview
	err := r.DB.WithContext(ctx).First(&interview, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInterviewNotFound
	}
	if err != nil {
		return nil, err
	}
	return &interview, nil
}

// GetWithQuestions loads the interview and its questions in creation order.
func (r *InterviewRepository) GetWithQuestions(ctx context.Context, id string) (*models.Interview, error) {
	var interview models.Interview
	err := r.DB.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&interview, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInterviewNotFound
	}
	if err != nil {
		return nil, err
	}
	return &interview, nil
}

func (r *InterviewRepository) List(ctx context.Context, filter InterviewFilter) ([]models.Interview, error) {
	interviews := []models.Interview{}

	query := r.DB.WithContext(ctx).Model(&models.Interview{})
	if filter.TemplatesOnly || filter.UserID == "" {
		query = query.Where("is_template = ?", true)
	} else {
		query = query.Where("is_template = ? OR user_id = ?", true, filter.UserID)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Difficulty != "" {
		query = query.Where("difficulty = ?", filter.Difficulty)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
		query = query.Where(`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'`, like, like)
	}

	if err := query.Order("created_at DESC").Find(&interviews).Error; err != nil {
		return nil, err
	}
	return interviews, nil
}

// ClaimStart moves the interview from NOT_STARTED to IN_PROGRESS. Only one
// caller can win the claim.
func (r *InterviewRepository) ClaimStart(ctx context.Context, id string) (bool, error) {
	result := r.DB.WithContext(ctx).
		Model(&models.Interview{}).
		Where("id = ? AND status = ?", id, models.StatusNotStarted).
		Updates(map[string]interface{}{
			"status":     models.StatusInProgress,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// ReleaseStart undoes a claim whose question generation failed.
func (r *InterviewRepository) ReleaseStart(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).
		Model(&models.Interview{}).
		Where("id = ? AND status = ?", id, models.StatusInProgress).
		Where("NOT EXISTS (SELECT 1 FROM interview_questions WHERE interview_questions.interview_id = interviews.id)").
		Updates(map[string]interface{}{
			"status":     models.StatusNotStarted,
			"updated_at": time.Now(),
		}).Error
}

// MarkInProgress never moves a completed interview backwards.
func (r *InterviewRepository) MarkInProgress(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).
		Model(&models.Interview{}).
		Where("id = ? AND status <> ?", id, models.StatusCompleted).
		Updates(map[string]interface{}{
			"status":     models.StatusInProgress,
			"updated_at": time.Now(),
		}).Error
}

// ResetStaleStarts releases claims older than cutoff that never got a
// question set, e.g. because the process died mid generation.
func (r *InterviewRepository) ResetStaleStarts(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.DB.WithContext(ctx).
		Model(&models.Interview{}).
		Where("status = ? AND updated_at < ?", models.StatusInProgress, cutoff).
		Where("NOT EXISTS (SELECT 1 FROM interview_questions WHERE interview_questions.interview_id = interviews.id)").
		Updates(map[string]interface{}{
			"status":     models.StatusNotStarted,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

// SeedTemplates inserts every template whose title is not yet in the
// catalogue and returns how many were created.
func (r *InterviewRepository) SeedTemplates(ctx context.Context, templates []models.Interview) (int, error) {
	created := 0
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range templates {
			tpl := templates[i]
			var count int64
			if err := tx.Model(&models.Interview{}).
				Where("is_template = ? AND title = ?", true, tpl.Title).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			tpl.IsTemplate = true
			tpl.UserID = nil
			if err := tx.Create(&tpl).Error; err != nil {
				return err
			}
			created++
		}
		return nil
	})
	return created, err
}
