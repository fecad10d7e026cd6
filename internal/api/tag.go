package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recipevault/backend/internal/middleware"
	"github.com/recipevault/backend/internal/service"
)

// CreateLabelRequest is the payload for creating a tag or an ingredient.
type CreateLabelRequest struct {
	Name string `json:"name" binding:"required"`
}

// TagHandler exposes the user's tag collection.
type TagHandler struct {
	tagService *service.TagService
}

func NewTagHandler(tagService *service.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// RegisterRoutes mounts the tag endpoints. The caller supplies an
// auth-protected group.
func (h *TagHandler) RegisterRoutes(router *gin.RouterGroup) {
	tags := router.Group("/tags")
	{
		tags.GET("", h.ListTags)
		tags.POST("", h.CreateTag)
	}
}

func (h *TagHandler) ListTags(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	assignedOnly := c.Query("assigned_only") == "1"

	tags, err := h.tagService.List(c.Request.Context(), userID, assignedOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch tags"})
		return
	}

	out := make([]TagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, toTagResponse(t))
	}
	c.JSON(http.StatusOK, out)
}

func (h *TagHandler) CreateTag(c *gin.Context) {
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

	tag, err := h.tagService.Create(c.Request.Context(), userID, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateLabel) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "tag already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create tag"})
		return
	}

	c.JSON(http.StatusCreated, toTagResponse(*tag))
}
