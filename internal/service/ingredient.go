package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipevault/backend/internal/models"
)

// IngredientService handles user-owned ingredients
type IngredientService struct {
	db *gorm.DB
}

func NewIngredientService(db *gorm.DB) *IngredientService {
	return &IngredientService{db: db}
}

// List returns the user's ingredients ordered by name descending,
// optionally restricted to those assigned to at least one recipe.
func (s *IngredientService) List(ctx context.Context, userID uuid.UUID, assignedOnly bool) ([]models.Ingredient, error) {
	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if assignedOnly {
		query = query.Where("id IN (SELECT ingredient_id FROM recipe_ingredients)")
	}

	var ingredients []models.Ingredient
	if err := query.Order("name DESC").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// Create persists a new ingredient owned by the given user.
func (s *IngredientService) Create(ctx context.Context, userID uuid.UUID, name string) (*models.Ingredient, error) {
	var existing models.Ingredient
	err := s.db.WithContext(ctx).Where("user_id = ? AND name = ?", userID, name).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateLabel
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	ingredient := models.Ingredient{
		Name:   name,
		UserID: userID,
	}
	if err := s.db.WithContext(ctx).Create(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}
