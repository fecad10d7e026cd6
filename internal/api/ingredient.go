package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recipevault/backend/internal/middleware"
	"github.com/recipevault/backend/internal/service"
)

// IngredientHandler exposes the user's ingredient collection.
type IngredientHandler struct {
	ingredientService *service.IngredientService
}

func NewIngredientHandler(ingredientService *service.IngredientService) *IngredientHandler {
	return &IngredientHandler{ingredientService: ingredientService}
}

// RegisterRoutes mounts the ingredient endpoints. The caller supplies an
// auth-protected group.
func (h *IngredientHandler) RegisterRoutes(router *gin.RouterGroup) {
	ingredients := router.Group("/ingredients")
	{
		ingredients.GET("", h.ListIngredients)
		ingredients.POST("", h.CreateIngredient)
	}
}

func (h *IngredientHandler) ListIngredients(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	assignedOnly := c.Query("assigned_only") == "1"

	ingredients, err := h.ingredientService.List(c.Request.Context(), userID, assignedOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch ingredients"})
		return
	}

	out := make([]IngredientResponse, 0, len(ingredients))
	for _, i := range ingredients {
		out = append(out, toIngredientResponse(i))
	}
	c.JSON(http.StatusOK, out)
}

func (h *IngredientHandler) CreateIngredient(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req CreateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ingredient, err := h.ingredientService.Create(c.Request.Context(), userID, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateLabel) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ingredient already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create ingredient"})
		return
	}

	c.JSON(http.StatusCreated, toIngredientResponse(*ingredient))
}
