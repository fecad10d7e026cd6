package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/recipevault/backend/config"
)

// ImageStore abstracts where uploaded recipe images end up. Store writes
// the bytes and returns the URL clients fetch them from.
type ImageStore interface {
	Store(ctx context.Context, data []byte, contentType, ext string) (string, error)
}

// S3ImageStore uploads recipe images to S3 under recipe-images/.
type S3ImageStore struct {
	s3Config *config.S3Config
}

func NewS3ImageStore(s3Config *config.S3Config) *S3ImageStore {
	return &S3ImageStore{s3Config: s3Config}
}

func (s *S3ImageStore) Store(ctx context.Context, data []byte, contentType, ext string) (string, error) {
	key := fmt.Sprintf("recipe-images/%s%s", uuid.New().String(), ext)

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key)
	log.Printf("[ImageStore] uploaded image to S3: %s", publicURL)

	return publicURL, nil
}

// LocalImageStore writes recipe images to a directory on disk. The server
// exposes the directory under /media, so the returned URL is baseURL/media/name.
type LocalImageStore struct {
	dir     string
	baseURL string
}

func NewLocalImageStore(dir, baseURL string) *LocalImageStore {
	return &LocalImageStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (s *LocalImageStore) Store(ctx context.Context, data []byte, contentType, ext string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	name := uuid.New().String() + ext
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	return fmt.Sprintf("%s/media/%s", s.baseURL, name), nil
}
