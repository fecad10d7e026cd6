package testdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/recipevault/backend/config"
	"github.com/recipevault/backend/internal/database"
)

// TestDB wraps a throwaway postgres instance for integration tests.
type TestDB struct {
	DB        *gorm.DB
	Config    *config.Config
	Container testcontainers.Container
}

// Close terminates the backing container.
func (td *TestDB) Close() error {
	if td.Container != nil {
		return td.Container.Terminate(context.Background())
	}
	return nil
}

// Setup starts a postgres container, connects through the regular
// database layer and runs migrations. Skipped under -short.
func Setup(t *testing.T) *TestDB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test",
		},
		WaitingFor: wait.ForAll(
			wait.ForLog("database system is ready to accept connections"),
			wait.ForListeningPort("5432/tcp"),
		),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	cfg := &config.Config{
		DBHost:        host,
		DBPort:        port.Port(),
		DBUser:        "test",
		DBPassword:    "test",
		DBName:        "test",
		DBSSLMode:     "disable",
		JWTSecret:     "test-secret",
		StorageDriver: "local",
		UploadDir:     t.TempDir(),
		BaseURL:       "http://testserver",
	}

	db, err := database.New(cfg)
	require.NoError(t, err)

	require.NoError(t, database.AutoMigrate(db))

	testDB := &TestDB{DB: db, Config: cfg, Container: container}
	t.Cleanup(func() {
		if err := testDB.Close(); err != nil {
			t.Logf("error cleaning up test database: %v", err)
		}
	})

	return testDB
}
