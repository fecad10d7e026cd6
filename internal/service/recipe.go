package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipevault/backend/internal/models"
)

// ErrUnknownLabel is returned when a recipe payload references a tag or
// ingredient id that does not exist for the requesting user. Labels owned
// by other users resolve the same way, so nothing leaks across accounts.
var ErrUnknownLabel = errors.New("unknown tag or ingredient id")

// RecipeService handles recipe operations. Every method takes the owning
// user id explicitly and scopes all reads and writes to it.
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// RecipeFilter narrows List results. Ids within one list are OR'd,
// the two lists combine with AND.
type RecipeFilter struct {
	TagIDs        []uint
	IngredientIDs []uint
}

// RecipeInput carries the full writable state of a recipe. Used by Create
// and by full (PUT) replacement, where omitted label lists clear the sets.
type RecipeInput struct {
	Title         string
	TimeMinutes   int
	Price         float64
	Link          string
	TagIDs        []uint
	IngredientIDs []uint
}

// RecipePatch carries partial (PATCH) updates. Nil means "leave
// untouched"; a supplied label list replaces the full set, it never merges.
type RecipePatch struct {
	Title         *string
	TimeMinutes   *int
	Price         *float64
	Link          *string
	TagIDs        *[]uint
	IngredientIDs *[]uint
}

// List returns the user's recipes, newest first, with relations preloaded.
func (s *RecipeService) List(ctx context.Context, userID uuid.UUID, filter RecipeFilter) ([]models.Recipe, error) {
	query := s.db.WithContext(ctx).
		Preload("Tags").
		Preload("Ingredients").
		Where("user_id = ?", userID)

	if len(filter.TagIDs) > 0 {
		query = query.Where("id IN (SELECT recipe_id FROM recipe_tags WHERE tag_id IN ?)", filter.TagIDs)
	}
	if len(filter.IngredientIDs) > 0 {
		query = query.Where("id IN (SELECT recipe_id FROM recipe_ingredients WHERE ingredient_id IN ?)", filter.IngredientIDs)
	}

	var recipes []models.Recipe
	if err := query.Order("id DESC").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// Get retrieves one of the user's recipes with relations preloaded.
// A recipe owned by someone else resolves as gorm.ErrRecordNotFound.
func (s *RecipeService) Get(ctx context.Context, userID uuid.UUID, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Tags").
		Preload("Ingredients").
		First(&recipe, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// Create persists a new recipe owned by the given user and links the
// referenced labels.
func (s *RecipeService) Create(ctx context.Context, userID uuid.UUID, input RecipeInput) (*models.Recipe, error) {
	var recipe models.Recipe

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := s.ownedTags(tx, userID, input.TagIDs)
		if err != nil {
			return err
		}
		ingredients, err := s.ownedIngredients(tx, userID, input.IngredientIDs)
		if err != nil {
			return err
		}

		recipe = models.Recipe{
			Title:       input.Title,
			TimeMinutes: input.TimeMinutes,
			Price:       input.Price,
			Link:        input.Link,
			UserID:      userID,
			Tags:        tags,
			Ingredients: ingredients,
		}
		return tx.Create(&recipe).Error
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, userID, recipe.ID)
}

// Replace applies PUT semantics: every scalar field is overwritten and the
// label sets become exactly what the input names, empty when omitted.
func (s *RecipeService) Replace(ctx context.Context, userID uuid.UUID, id uint, input RecipeInput) (*models.Recipe, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, "id = ? AND user_id = ?", id, userID).Error; err != nil {
			return err
		}

		tags, err := s.ownedTags(tx, userID, input.TagIDs)
		if err != nil {
			return err
		}
		ingredients, err := s.ownedIngredients(tx, userID, input.IngredientIDs)
		if err != nil {
			return err
		}

		fields := map[string]interface{}{
			"title":        input.Title,
			"time_minutes": input.TimeMinutes,
			"price":        input.Price,
			"link":         input.Link,
		}
		if err := tx.Model(&recipe).Updates(fields).Error; err != nil {
			return err
		}
		if err := replaceAssociation(tx, &recipe, "Tags", &tags); err != nil {
			return err
		}
		return replaceAssociation(tx, &recipe, "Ingredients", &ingredients)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, userID, id)
}

// Update applies PATCH semantics: only supplied fields change. A supplied
// tag or ingredient list replaces the previous set entirely.
func (s *RecipeService) Update(ctx context.Context, userID uuid.UUID, id uint, patch RecipePatch) (*models.Recipe, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, "id = ? AND user_id = ?", id, userID).Error; err != nil {
			return err
		}

		fields := map[string]interface{}{}
		if patch.Title != nil {
			fields["title"] = *patch.Title
		}
		if patch.TimeMinutes != nil {
			fields["time_minutes"] = *patch.TimeMinutes
		}
		if patch.Price != nil {
			fields["price"] = *patch.Price
		}
		if patch.Link != nil {
			fields["link"] = *patch.Link
		}
		if len(fields) > 0 {
			if err := tx.Model(&recipe).Updates(fields).Error; err != nil {
				return err
			}
		}

		if patch.TagIDs != nil {
			tags, err := s.ownedTags(tx, userID, *patch.TagIDs)
			if err != nil {
				return err
			}
			if err := replaceAssociation(tx, &recipe, "Tags", &tags); err != nil {
				return err
			}
		}
		if patch.IngredientIDs != nil {
			ingredients, err := s.ownedIngredients(tx, userID, *patch.IngredientIDs)
			if err != nil {
				return err
			}
			if err := replaceAssociation(tx, &recipe, "Ingredients", &ingredients); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, userID, id)
}

// SetImage stores the uploaded image's URL on the user's recipe.
func (s *RecipeService) SetImage(ctx context.Context, userID uuid.UUID, id uint, imageURL string) (*models.Recipe, error) {
	result := s.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("image_url", imageURL)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return s.Get(ctx, userID, id)
}

// replaceAssociation swaps a recipe's label set for the given one.
// Replace chokes on an empty slice, so clearing is its own path.
func replaceAssociation(tx *gorm.DB, recipe *models.Recipe, name string, values interface{}) error {
	assoc := tx.Model(recipe).Association(name)
	switch v := values.(type) {
	case *[]models.Tag:
		if len(*v) == 0 {
			return assoc.Clear()
		}
	case *[]models.Ingredient:
		if len(*v) == 0 {
			return assoc.Clear()
		}
	}
	return assoc.Replace(values)
}

// ownedTags resolves tag ids against the user's own tags. Any id that
// does not resolve, including another user's, fails the whole request.
func (s *RecipeService) ownedTags(tx *gorm.DB, userID uuid.UUID, ids []uint) ([]models.Tag, error) {
	if len(ids) == 0 {
		return []models.Tag{}, nil
	}
	var tags []models.Tag
	if err := tx.Where("id IN ? AND user_id = ?", ids, userID).Find(&tags).Error; err != nil {
		return nil, err
	}
	if len(tags) != len(uniqueIDs(ids)) {
		return nil, ErrUnknownLabel
	}
	return tags, nil
}

func (s *RecipeService) ownedIngredients(tx *gorm.DB, userID uuid.UUID, ids []uint) ([]models.Ingredient, error) {
	if len(ids) == 0 {
		return []models.Ingredient{}, nil
	}
	var ingredients []models.Ingredient
	if err := tx.Where("id IN ? AND user_id = ?", ids, userID).Find(&ingredients).Error; err != nil {
		return nil, err
	}
	if len(ingredients) != len(uniqueIDs(ids)) {
		return nil, ErrUnknownLabel
	}
	return ingredients, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
