package api

import (
	"github.com/recipevault/backend/internal/models"
)

// TagResponse is the wire shape of a tag.
type TagResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// IngredientResponse is the wire shape of an ingredient.
type IngredientResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// RecipeListItem is the compact list representation: relations appear as
// bare ids only.
type RecipeListItem struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	TimeMinutes int     `json:"time_minutes"`
	Price       float64 `json:"price"`
	Link        string  `json:"link"`
	ImageURL    string  `json:"image_url"`
	Tags        []uint  `json:"tags"`
	Ingredients []uint  `json:"ingredients"`
}

// RecipeDetail is the detail representation: relations are expanded into
// nested objects.
type RecipeDetail struct {
	ID          uint                 `json:"id"`
	Title       string               `json:"title"`
	TimeMinutes int                  `json:"time_minutes"`
	Price       float64              `json:"price"`
	Link        string               `json:"link"`
	ImageURL    string               `json:"image_url"`
	Tags        []TagResponse        `json:"tags"`
	Ingredients []IngredientResponse `json:"ingredients"`
}

func toTagResponse(t models.Tag) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name}
}

func toIngredientResponse(i models.Ingredient) IngredientResponse {
	return IngredientResponse{ID: i.ID, Name: i.Name}
}

func toRecipeListItem(r models.Recipe) RecipeListItem {
	item := RecipeListItem{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
		ImageURL:    r.ImageURL,
		Tags:        make([]uint, 0, len(r.Tags)),
		Ingredients: make([]uint, 0, len(r.Ingredients)),
	}
	for _, t := range r.Tags {
		item.Tags = append(item.Tags, t.ID)
	}
	for _, i := range r.Ingredients {
		item.Ingredients = append(item.Ingredients, i.ID)
	}
	return item
}

func toRecipeDetail(r *models.Recipe) RecipeDetail {
	detail := RecipeDetail{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
		ImageURL:    r.ImageURL,
		Tags:        make([]TagResponse, 0, len(r.Tags)),
		Ingredients: make([]IngredientResponse, 0, len(r.Ingredients)),
	}
	for _, t := range r.Tags {
		detail.Tags = append(detail.Tags, toTagResponse(t))
	}
	for _, i := range r.Ingredients {
		detail.Ingredients = append(detail.Ingredients, toIngredientResponse(i))
	}
	return detail
}
