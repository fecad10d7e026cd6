package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// Image storage configuration. StorageDriver is "s3" or "local";
	// the local driver writes under UploadDir and serves via BaseURL.
	StorageDriver string
	S3Bucket      string
	AWSRegion     string
	UploadDir     string
	BaseURL       string
}

// LoadConfig creates a new Config instance with values from environment
// variables, falling back to Docker secrets outside CI.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort:    getValue("SERVER_PORT", "server_port"),
		ServerHost:    getValue("SERVER_HOST", "server_host"),
		DBHost:        getValue("DB_HOST", "db_host"),
		DBPort:        getValue("DB_PORT", "db_port"),
		DBUser:        getValue("DB_USER", "db_user"),
		DBPassword:    getValue("DB_PASSWORD", "db_password"),
		DBName:        getValue("DB_NAME", "db_name"),
		DBSSLMode:     getValue("DB_SSL_MODE", "db_ssl_mode"),
		RedisHost:     getValue("REDIS_HOST", "redis_host"),
		RedisPort:     getValue("REDIS_PORT", "redis_port"),
		RedisPassword: getValue("REDIS_PASSWORD", "redis_password"),
		RedisDB:       0,
		RedisURL:      getValue("REDIS_URL", "redis_url"),
		JWTSecret:     getValue("JWT_SECRET", "jwt_secret"),
		StorageDriver: getValue("STORAGE_DRIVER", "storage_driver"),
		S3Bucket:      getValue("S3_BUCKET_NAME", "s3_bucket_name"),
		AWSRegion:     getValue("AWS_REGION", "aws_region"),
		UploadDir:     getValue("UPLOAD_DIR", "upload_dir"),
		BaseURL:       getValue("BASE_URL", "base_url"),
	}

	applyDefaults(cfg)

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.ServerHost == "" {
		cfg.ServerHost = "0.0.0.0"
	}
	if cfg.DBPort == "" {
		cfg.DBPort = "5432"
	}
	if cfg.DBSSLMode == "" {
		cfg.DBSSLMode = "disable"
	}
	if cfg.RedisPort == "" {
		cfg.RedisPort = "6379"
	}
	if cfg.StorageDriver == "" {
		cfg.StorageDriver = "local"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "uploads"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = fmt.Sprintf("http://localhost:%s", cfg.ServerPort)
	}
}

// getValue reads an environment variable and falls back to the Docker
// secret of the same meaning when the variable is unset.
func getValue(envVar, secretName string) string {
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	if GetEnvironment() == CI {
		// CI uses environment variables only, never Docker secrets
		return ""
	}
	return readSecret(secretName)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
