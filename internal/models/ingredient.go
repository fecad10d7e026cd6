package models

import (
	"time"

	"github.com/google/uuid"
)

// Ingredient is a user-owned label attachable to recipes, same ownership
// rules as Tag.
type Ingredient struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"size:255;not null;uniqueIndex:idx_ingredients_user_name" json:"name"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_ingredients_user_name" json:"-"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
