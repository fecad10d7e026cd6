package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/recipevault/backend/internal/models"
	"github.com/recipevault/backend/internal/service"
	"github.com/recipevault/backend/internal/testutil"
)

func createUser(t *testing.T, db *gorm.DB, email string) uuid.UUID {
	t.Helper()
	id, _ := testutil.CreateUserAndToken(t, db, email)
	return id
}

func TestCreateRecipeUnknownLabel(t *testing.T) {
	db := testutil.SetupTestDB(t)
	recipes := service.NewRecipeService(db)
	userID := createUser(t, db, "svc@example.com")

	_, err := recipes.Create(context.Background(), userID, service.RecipeInput{
		Title:  "Ghost tag",
		TagIDs: []uint{999},
	})
	assert.ErrorIs(t, err, service.ErrUnknownLabel)

	// Nothing persisted when label resolution fails
	var count int64
	db.Model(&models.Recipe{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateRecipeForeignLabelIsUnknown(t *testing.T) {
	db := testutil.SetupTestDB(t)
	recipes := service.NewRecipeService(db)
	userID := createUser(t, db, "svc@example.com")
	otherID := createUser(t, db, "other@example.com")

	foreign := models.Tag{Name: "Theirs", UserID: otherID}
	require.NoError(t, db.Create(&foreign).Error)

	_, err := recipes.Create(context.Background(), userID, service.RecipeInput{
		Title:  "Sneaky",
		TagIDs: []uint{foreign.ID},
	})
	assert.ErrorIs(t, err, service.ErrUnknownLabel)
}

func TestCreateRecipeDuplicateLabelIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	recipes := service.NewRecipeService(db)
	userID := createUser(t, db, "svc@example.com")

	tag := models.Tag{Name: "Vegan", UserID: userID}
	require.NoError(t, db.Create(&tag).Error)

	recipe, err := recipes.Create(context.Background(), userID, service.RecipeInput{
		Title:  "Doubly tagged",
		TagIDs: []uint{tag.ID, tag.ID},
	})
	require.NoError(t, err)
	assert.Len(t, recipe.Tags, 1)
}

func TestUpdateRecipeScopedToOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	recipes := service.NewRecipeService(db)
	userID := createUser(t, db, "svc@example.com")
	otherID := createUser(t, db, "other@example.com")

	theirs := models.Recipe{Title: "Theirs", TimeMinutes: 5, Price: 2.00, UserID: otherID}
	require.NoError(t, db.Create(&theirs).Error)

	title := "Hijacked"
	_, err := recipes.Update(context.Background(), userID, theirs.ID, service.RecipePatch{Title: &title})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var stored models.Recipe
	require.NoError(t, db.First(&stored, "id = ?", theirs.ID).Error)
	assert.Equal(t, "Theirs", stored.Title)
}

func TestReplaceClearsLabels(t *testing.T) {
	db := testutil.SetupTestDB(t)
	recipes := service.NewRecipeService(db)
	userID := createUser(t, db, "svc@example.com")

	tag := models.Tag{Name: "Vegan", UserID: userID}
	require.NoError(t, db.Create(&tag).Error)

	recipe, err := recipes.Create(context.Background(), userID, service.RecipeInput{
		Title:  "Tagged",
		TagIDs: []uint{tag.ID},
	})
	require.NoError(t, err)
	require.Len(t, recipe.Tags, 1)

	replaced, err := recipes.Replace(context.Background(), userID, recipe.ID, service.RecipeInput{
		Title:       "Untagged",
		TimeMinutes: 20,
		Price:       10.00,
	})
	require.NoError(t, err)
	assert.Empty(t, replaced.Tags)

	// The tag itself survives, only the link is removed
	var count int64
	db.Model(&models.Tag{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSetImageScopedToOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	recipes := service.NewRecipeService(db)
	userID := createUser(t, db, "svc@example.com")
	otherID := createUser(t, db, "other@example.com")

	theirs := models.Recipe{Title: "Theirs", TimeMinutes: 5, Price: 2.00, UserID: otherID}
	require.NoError(t, db.Create(&theirs).Error)

	_, err := recipes.SetImage(context.Background(), userID, theirs.ID, "http://example.com/x.png")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
