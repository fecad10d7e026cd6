package models

import (
	"time"

	"github.com/google/uuid"
)

type Recipe struct {
	ID          uint         `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Title       string       `gorm:"size:255;not null" json:"title"`
	TimeMinutes int          `gorm:"not null;check:time_minutes >= 0" json:"time_minutes"`
	Price       float64      `gorm:"not null;check:price >= 0" json:"price"`
	Link        string       `gorm:"size:255" json:"link"`
	ImageURL    string       `gorm:"size:255" json:"image_url"`
	UserID      uuid.UUID    `gorm:"type:varchar(36);not null;index" json:"user_id"`
	User        User         `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Tags        []Tag        `gorm:"many2many:recipe_tags;" json:"tags"`
	Ingredients []Ingredient `gorm:"many2many:recipe_ingredients;" json:"ingredients"`
}
