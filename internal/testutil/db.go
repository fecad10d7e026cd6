package testutil

import (
	"fmt"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/recipevault/backend/config"
	"github.com/recipevault/backend/internal/database"
	"github.com/recipevault/backend/internal/models"
	"github.com/recipevault/backend/internal/router"
	"github.com/recipevault/backend/internal/service"
)

// TestJWTSecret signs tokens in tests.
const TestJWTSecret = "test-secret"

// SetupTestDB opens an isolated in-memory sqlite database with the full
// schema migrated. Each call gets its own database.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// SetupRouter builds the real application router on a test database with
// local image storage and no Redis.
func SetupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := SetupTestDB(t)
	cfg := &config.Config{
		JWTSecret:     TestJWTSecret,
		StorageDriver: "local",
		UploadDir:     t.TempDir(),
		BaseURL:       "http://testserver",
	}
	imageStore := service.NewLocalImageStore(cfg.UploadDir, cfg.BaseURL)

	return router.Setup(cfg, db, nil, imageStore), db
}

// CreateUserAndToken creates a user with a known password and returns the
// user id plus a valid bearer token.
func CreateUserAndToken(t *testing.T, db *gorm.DB, email string) (uuid.UUID, string) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("testpass123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: string(hashed),
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	token, err := service.NewAuthService(db, TestJWTSecret).GenerateToken(user.ID)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	return user.ID, token
}
