// Package storage persists generated artifacts (exports, reports, cover
// letters, saved profiles) to the local filesystem or an S3-compatible bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// FilesPrefix is the URL path local artifacts are served under
const FilesPrefix = "/files/"

var (
	// ErrNotFound is returned by Get when no artifact has the given name
	ErrNotFound = errors.New("artifact not found")
	// ErrInvalidName is returned for names that are empty or contain path elements
	ErrInvalidName = errors.New("invalid artifact name")
)

// Store writes and reads named artifacts. Put returns the URL clients use
// to fetch the artifact.
type Store interface {
	Put(ctx context.Context, name, contentType string, data []byte) (string, error)
	Get(ctx context.Context, name string) ([]byte, error)
}

// Config selects and configures a Store backend
type Config struct {
	Dir         string `json:"dir" yaml:"dir"`
	S3Bucket    string `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region    string `json:"s3_region" yaml:"s3_region"`
	S3Endpoint  string `json:"s3_endpoint" yaml:"s3_endpoint"`
	S3AccessKey string `json:"-" yaml:"-"`
	S3SecretKey string `json:"-" yaml:"-"`
	PublicURL   string `json:"public_url" yaml:"public_url"`
}

// New returns an S3Store when a bucket is configured and a LocalStore otherwise
func New(ctx context.Context, cfg Config) (Store, error) {
	if cfg.S3Bucket != "" {
		return NewS3Store(ctx, cfg)
	}
	return NewLocalStore(cfg.Dir)
}

// ValidateName rejects names that could escape the store root
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// ContentType guesses a content type from an artifact's extension
func ContentType(name string) string {
	switch {
	case strings.HasSuffix(name, ".html"):
		return "text/html; charset=utf-8"
	case strings.HasSuffix(name, ".json"):
		return "application/json"
	case strings.HasSuffix(name, ".pdf"):
		return "application/pdf"
	case strings.HasSuffix(name, ".docx"):
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case strings.HasSuffix(name, ".tex"), strings.HasSuffix(name, ".txt"), strings.HasSuffix(name, ".md"):
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}
