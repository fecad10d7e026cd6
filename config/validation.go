package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that everything the server cannot run without is
// present. Redis is optional: rate limiting is skipped when it is absent.
func ValidateConfig(cfg *Config) error {
	var errors []string

	required := map[string]string{
		"DB_HOST":    cfg.DBHost,
		"DB_USER":    cfg.DBUser,
		"DB_NAME":    cfg.DBName,
		"JWT_SECRET": cfg.JWTSecret,
	}
	for field, value := range required {
		if value == "" {
			errors = append(errors, fmt.Sprintf("%s is required", field))
		}
	}

	if cfg.DBPassword == "" {
		errors = append(errors, "DB_PASSWORD (or db_password secret) is required")
	}

	switch cfg.StorageDriver {
	case "local":
	case "s3":
		if cfg.S3Bucket == "" {
			errors = append(errors, "S3_BUCKET_NAME is required when STORAGE_DRIVER=s3")
		}
	default:
		errors = append(errors, fmt.Sprintf("unknown STORAGE_DRIVER %q", cfg.StorageDriver))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
