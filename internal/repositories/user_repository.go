package repositories

import (
	"context"
	"errors"

	"interviewprep/api/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository struct {
	DB *gorm.DB
}

func (r *UserRepository) GetByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	var user models.User
	err := r.DB.WithContext(ctx).First(&user, "external_id = ?", externalID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpsertByExternalID creates the account on first contact and refreshes
// email and name on every later call.
func (r *UserRepository) UpsertByExternalID(ctx context.Context, user *models.User) (*models.User, error) {
	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "external_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "name", "updated_at"}),
	}).Create(user).Error
	if err != nil {
		return nil, err
	}
	// the generated id is discarded on conflict, so read the stored row back
	return r.GetByExternalID(ctx, user.ExternalID)
}
