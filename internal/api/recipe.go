package api

import (
	"bytes"
	"errors"
	"image"
	"io"
	"net/http"
	"strconv"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/recipevault/backend/internal/middleware"
	"github.com/recipevault/backend/internal/service"
)

// maxImageBytes caps recipe image uploads at 10 MiB.
const maxImageBytes = 10 << 20

// RecipeRequest is the payload for POST and PUT. PUT deliberately reuses
// it: label lists omitted from the body come through empty and clear the
// stored sets, which is the full-replacement contract clients rely on.
type RecipeRequest struct {
	Title       string   `json:"title" binding:"required"`
	TimeMinutes *int     `json:"time_minutes" binding:"required,gte=0"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
	Link        string   `json:"link"`
	Tags        []uint   `json:"tags"`
	Ingredients []uint   `json:"ingredients"`
}

// RecipePatchRequest is the payload for PATCH. Nil fields stay untouched;
// a supplied tag or ingredient list replaces the stored set, it never merges.
type RecipePatchRequest struct {
	Title       *string  `json:"title"`
	TimeMinutes *int     `json:"time_minutes" binding:"omitempty,gte=0"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	Link        *string  `json:"link"`
	Tags        *[]uint  `json:"tags"`
	Ingredients *[]uint  `json:"ingredients"`
}

// RecipeHandler exposes the user's recipe collection.
type RecipeHandler struct {
	recipeService *service.RecipeService
	imageStore    service.ImageStore
}

func NewRecipeHandler(recipeService *service.RecipeService, imageStore service.ImageStore) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		imageStore:    imageStore,
	}
}

// RegisterRoutes mounts the recipe endpoints on an auth-protected group.
// writeLimit, when non-nil, throttles the mutating routes.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup, writeLimit gin.HandlerFunc) {
	recipes := router.Group("/recipes")
	recipes.GET("", h.ListRecipes)
	recipes.GET("/:id", h.GetRecipe)

	writes := recipes.Group("")
	if writeLimit != nil {
		writes.Use(writeLimit)
	}
	writes.POST("", h.CreateRecipe)
	writes.PUT("/:id", h.ReplaceRecipe)
	writes.PATCH("/:id", h.UpdateRecipe)
	writes.POST("/:id/upload-image", h.UploadImage)
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	tagIDs, err := parseIDList(c.Query("tags"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tags filter"})
		return
	}
	ingredientIDs, err := parseIDList(c.Query("ingredients"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ingredients filter"})
		return
	}

	recipes, err := h.recipeService.List(c.Request.Context(), userID, service.RecipeFilter{
		TagIDs:        tagIDs,
		IngredientIDs: ingredientIDs,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recipes"})
		return
	}

	out := make([]RecipeListItem, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, toRecipeListItem(r))
	}
	c.JSON(http.StatusOK, out)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, ok := recipeID(c)
	if !ok {
		return
	}

	recipe, err := h.recipeService.Get(c.Request.Context(), userID, id)
	if err != nil {
		respondRecipeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toRecipeDetail(recipe))
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipeService.Create(c.Request.Context(), userID, recipeInput(req))
	if err != nil {
		respondRecipeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toRecipeDetail(recipe))
}

func (h *RecipeHandler) ReplaceRecipe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, ok := recipeID(c)
	if !ok {
		return
	}

	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipeService.Replace(c.Request.Context(), userID, id, recipeInput(req))
	if err != nil {
		respondRecipeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toRecipeDetail(recipe))
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, ok := recipeID(c)
	if !ok {
		return
	}

	var req RecipePatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipeService.Update(c.Request.Context(), userID, id, service.RecipePatch{
		Title:         req.Title,
		TimeMinutes:   req.TimeMinutes,
		Price:         req.Price,
		Link:          req.Link,
		TagIDs:        req.Tags,
		IngredientIDs: req.Ingredients,
	})
	if err != nil {
		respondRecipeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toRecipeDetail(recipe))
}

// UploadImage accepts a multipart "image" field, rejects payloads that do
// not decode as an image, and stores the rest through the image store.
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, ok := recipeID(c)
	if !ok {
		return
	}

	// The recipe must exist and belong to the caller before any bytes are
	// written to storage.
	if _, err := h.recipeService.Get(c.Request.Context(), userID, id); err != nil {
		respondRecipeError(c, err)
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if fileHeader.Size > maxImageBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}

	_, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "upload a valid image"})
		return
	}

	url, err := h.imageStore.Store(c.Request.Context(), data, "image/"+format, "."+format)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store image"})
		return
	}

	recipe, err := h.recipeService.SetImage(c.Request.Context(), userID, id, url)
	if err != nil {
		respondRecipeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        recipe.ID,
		"image_url": recipe.ImageURL,
	})
}

func recipeInput(req RecipeRequest) service.RecipeInput {
	return service.RecipeInput{
		Title:         req.Title,
		TimeMinutes:   *req.TimeMinutes,
		Price:         *req.Price,
		Link:          req.Link,
		TagIDs:        req.Tags,
		IngredientIDs: req.Ingredients,
	}
}

// recipeID parses the :id path parameter. Anything non-numeric resolves
// like a missing row.
func recipeID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return 0, false
	}
	return uint(id), true
}

func respondRecipeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
	case errors.Is(err, service.ErrUnknownLabel):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// parseIDList parses a comma-separated id list from a query parameter.
// Clients are known to send whitespace around the commas ("3, 5"),
// so entries are trimmed before conversion.
func parseIDList(raw string) ([]uint, error) {
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return nil, err
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}
