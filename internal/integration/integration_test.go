package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipevault/backend/internal/router"
	"github.com/recipevault/backend/internal/service"
	"github.com/recipevault/backend/internal/testdb"
)

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// TestRecipeLifecycle runs the end-to-end flow against a real postgres:
// register, log in, create labels, create and filter recipes, patch.
func TestRecipeLifecycle(t *testing.T) {
	td := testdb.Setup(t)

	gin.SetMode(gin.TestMode)
	imageStore := service.NewLocalImageStore(td.Config.UploadDir, td.Config.BaseURL)
	r := router.Setup(td.Config, td.DB, nil, imageStore)

	// Register and log in
	w := doJSON(t, r, http.MethodPost, "/api/v1/users/create", "", gin.H{
		"name":     "Integration",
		"email":    "it@example.com",
		"password": "testpass123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/v1/users/token", "", gin.H{
		"email":    "it@example.com",
		"password": "testpass123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var tokenResp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tokenResp))
	require.NotEmpty(t, tokenResp.Token)
	token := tokenResp.Token

	// Labels
	w = doJSON(t, r, http.MethodPost, "/api/v1/recipe/tags", token, gin.H{"name": "Vegan"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var tag struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tag))

	w = doJSON(t, r, http.MethodPost, "/api/v1/recipe/ingredients", token, gin.H{"name": "Tofu"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var ingredient struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ingredient))

	// Recipes, one tagged and one plain
	w = doJSON(t, r, http.MethodPost, "/api/v1/recipe/recipes", token, gin.H{
		"title":        "Tofu stir fry",
		"time_minutes": 25,
		"price":        9.50,
		"tags":         []uint{tag.ID},
		"ingredients":  []uint{ingredient.ID},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, r, http.MethodPost, "/api/v1/recipe/recipes", token, gin.H{
		"title":        "Plain toast",
		"time_minutes": 5,
		"price":        1.00,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Filter by tag returns only the tagged recipe
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/recipe/recipes?tags=%d", tag.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var list []struct {
		ID    uint   `json:"id"`
		Title string `json:"title"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Tofu stir fry", list[0].Title)

	// Patch replaces the tag set
	w = doJSON(t, r, http.MethodPost, "/api/v1/recipe/tags", token, gin.H{"name": "Dinner"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var dinner struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dinner))

	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/v1/recipe/recipes/%d", created.ID), token, gin.H{
		"tags": []uint{dinner.ID},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/recipe/recipes/%d", created.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var detail struct {
		Title string `json:"title"`
		Tags  []struct {
			Name string `json:"name"`
		} `json:"tags"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, "Tofu stir fry", detail.Title)
	require.Len(t, detail.Tags, 1)
	assert.Equal(t, "Dinner", detail.Tags[0].Name)
}
