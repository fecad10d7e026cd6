package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipevault/backend/internal/service"
	"github.com/recipevault/backend/internal/testutil"
)

func TestCreateTagDBFailure(t *testing.T) {
	db := testutil.SetupTestDB(t)
	tags := service.NewTagService(db)
	userID := createUser(t, db, "tags@example.com")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	// A broken connection is an error, not evidence of a duplicate
	_, err = tags.Create(context.Background(), userID, "Vegan")
	require.Error(t, err)
	assert.NotErrorIs(t, err, service.ErrDuplicateLabel)
}

func TestCreateIngredientDBFailure(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ingredients := service.NewIngredientService(db)
	userID := createUser(t, db, "ing@example.com")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = ingredients.Create(context.Background(), userID, "Tofu")
	require.Error(t, err)
	assert.NotErrorIs(t, err, service.ErrDuplicateLabel)
}
