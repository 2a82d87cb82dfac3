package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the local account for an identity provider subject.
type User struct {
	ID         string      `gorm:"primaryKey;type:varchar(36)" json:"id"`
	ExternalID string      `gorm:"type:varchar(191);uniqueIndex;not null" json:"externalId"`
	Email      string      `json:"email"`
	Name       string      `json:"name,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
	Interviews []Interview `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
