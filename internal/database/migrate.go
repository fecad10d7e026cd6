package database

import (
	"gorm.io/gorm"

	"github.com/recipevault/backend/internal/models"
)

// AutoMigrate creates or updates the schema for every model, including
// the recipe_tags and recipe_ingredients join tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
	)
}
