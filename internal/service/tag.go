package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipevault/backend/internal/models"
)

// ErrDuplicateLabel is returned when the user already owns a tag or
// ingredient with the requested name.
var ErrDuplicateLabel = errors.New("label already exists")

// TagService handles user-owned tags
type TagService struct {
	db *gorm.DB
}

func NewTagService(db *gorm.DB) *TagService {
	return &TagService{db: db}
}

// List returns the user's tags ordered by name descending. With
// assignedOnly set, only tags attached to at least one recipe are
// returned; the subselect keeps each tag to a single row no matter how
// many recipes reference it.
func (s *TagService) List(ctx context.Context, userID uuid.UUID, assignedOnly bool) ([]models.Tag, error) {
	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if assignedOnly {
		query = query.Where("id IN (SELECT tag_id FROM recipe_tags)")
	}

	var tags []models.Tag
	if err := query.Order("name DESC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// Create persists a new tag owned by the given user.
func (s *TagService) Create(ctx context.Context, userID uuid.UUID, name string) (*models.Tag, error) {
	var existing models.Tag
	err := s.db.WithContext(ctx).Where("user_id = ? AND name = ?", userID, name).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateLabel
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tag := models.Tag{
		Name:   name,
		UserID: userID,
	}
	if err := s.db.WithContext(ctx).Create(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}
