package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipevault/backend/internal/api"
	"github.com/recipevault/backend/internal/models"
	"github.com/recipevault/backend/internal/testutil"
)

func TestListTagsRequiresAuth(t *testing.T) {
	router, _ := testutil.SetupRouter(t)

	w := performJSON(t, router, "GET", "/api/v1/recipe/tags", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListTags(t *testing.T) {
	router, db := testutil.SetupRouter(t)
	userID, token := testutil.CreateUserAndToken(t, db, "tags@example.com")

	require.NoError(t, db.Create(&models.Tag{Name: "Vegan", UserID: userID}).Error)
	require.NoError(t, db.Create(&models.Tag{Name: "Dessert", UserID: userID}).Error)

	w := performJSON(t, router, "GET", "/api/v1/recipe/tags", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var tags []api.TagResponse
	decodeBody(t, w, &tags)
	require.Len(t, tags, 2)
	// Name descending
	assert.Equal(t, "Vegan", tags[0].Name)
	assert.Equal(t, "Dessert", tags[1].Name)
}

func TestListTagsLimitedToUser(t *testing.T) {
	router, db := testutil.SetupRouter(t)
	userID, token := testutil.CreateUserAndToken(t, db, "owner@example.com")
	otherID, _ := testutil.CreateUserAndToken(t, db, "other@example.com")

	require.NoError(t, db.Create(&models.Tag{Name: "Mine", UserID: userID}).Error)
	require.NoError(t, db.Create(&models.Tag{Name: "Theirs", UserID: otherID}).Error)

	w := performJSON(t, router, "GET", "/api/v1/recipe/tags", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var tags []api.TagResponse
	decodeBody(t, w, &tags)
	require.Len(t, tags, 1)
	assert.Equal(t, "Mine", tags[0].Name)
}

func TestCreateTag(t *testing.T) {
	router, db := testutil.SetupRouter(t)
	userID, token := testutil.CreateUserAndToken(t, db, "tags@example.com")

	w := performJSON(t, router, "POST", "/api/v1/recipe/tags", token, map[string]interface{}{
		"name": "Vegan",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var count int64
	db.Model(&models.Tag{}).Where("user_id = ? AND name = ?", userID, "Vegan").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateTagInvalid(t *testing.T) {
	router, db := testutil.SetupRouter(t)
	_, token := testutil.CreateUserAndToken(t, db, "tags@example.com")

	w := performJSON(t, router, "POST", "/api/v1/recipe/tags", token, map[string]interface{}{
		"name": "",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performJSON(t, router, "POST", "/api/v1/recipe/tags", token, map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateTagDuplicate(t *testing.T) {
	router, db := testutil.SetupRouter(t)
	_, token := testutil.CreateUserAndToken(t, db, "tags@example.com")

	w := performJSON(t, router, "POST", "/api/v1/recipe/tags", token, map[string]interface{}{"name": "Vegan"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = performJSON(t, router, "POST", "/api/v1/recipe/tags", token, map[string]interface{}{"name": "Vegan"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListTagsAssignedOnly(t *testing.T) {
	router, db := testutil.SetupRouter(t)
	userID, token := testutil.CreateUserAndToken(t, db, "tags@example.com")

	assigned := models.Tag{Name: "Breakfast", UserID: userID}
	unassigned := models.Tag{Name: "Lunch", UserID: userID}
	require.NoError(t, db.Create(&assigned).Error)
	require.NoError(t, db.Create(&unassigned).Error)

	recipe := models.Recipe{
		Title:       "Eggs benedict",
		TimeMinutes: 30,
		Price:       12.00,
		UserID:      userID,
		Tags:        []models.Tag{assigned},
	}
	require.NoError(t, db.Create(&recipe).Error)

	w := performJSON(t, router, "GET", "/api/v1/recipe/tags?assigned_only=1", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var tags []api.TagResponse
	decodeBody(t, w, &tags)
	require.Len(t, tags, 1)
	assert.Equal(t, "Breakfast", tags[0].Name)
}

func TestListTagsAssignedOnlyUnique(t *testing.T) {
	router, db := testutil.SetupRouter(t)
	userID, token := testutil.CreateUserAndToken(t, db, "tags@example.com")

	tag := models.Tag{Name: "Breakfast", UserID: userID}
	require.NoError(t, db.Create(&tag).Error)

	// Same tag on two recipes must still list once
	for _, title := range []string{"Pancakes", "Porridge"} {
		recipe := models.Recipe{
			Title:       title,
			TimeMinutes: 10,
			Price:       3.00,
			UserID:      userID,
			Tags:        []models.Tag{tag},
		}
		require.NoError(t, db.Create(&recipe).Error)
	}

	w := performJSON(t, router, "GET", "/api/v1/recipe/tags?assigned_only=1", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var tags []api.TagResponse
	decodeBody(t, w, &tags)
	assert.Len(t, tags, 1)
}
