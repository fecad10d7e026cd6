package models

import (
	"time"

	"github.com/google/uuid"
)

// Tag is a user-owned label attachable to recipes. Names are unique per
// owner, not globally.
type Tag struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"size:255;not null;uniqueIndex:idx_tags_user_name" json:"name"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_tags_user_name" json:"-"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
