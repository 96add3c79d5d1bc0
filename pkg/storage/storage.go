// Package storage keeps uploaded files (course cover images) in an
// S3-compatible bucket.
package storage

import (
	"context"
	"io"
)

// Config is read from the environment. An empty Bucket disables uploads.
type Config struct {
	Bucket    string `env:"STORAGE_BUCKET"`
	AccessKey string `env:"STORAGE_ACCESS_KEY"`
	SecretKey string `env:"STORAGE_SECRET_KEY"`
	Region    string `env:"STORAGE_REGION" envDefault:"us-east-1"`
	// Endpoint points at MinIO or another S3-compatible service.
	Endpoint  string `env:"STORAGE_ENDPOINT"`
	PublicURL string `env:"STORAGE_PUBLIC_URL"`
	PathStyle bool   `env:"STORAGE_PATH_STYLE" envDefault:"false"`
	// MaxUploadSize is in bytes.
	MaxUploadSize int64 `env:"STORAGE_MAX_UPLOAD_SIZE" envDefault:"5242880"`
}

// Enabled reports whether a bucket is configured.
func (c Config) Enabled() bool {
	return c.Bucket != ""
}

// Object describes a stored file.
type Object struct {
	Key         string
	ContentType string
	URL         string
	Size        int64
}

// Storage is the subset of object storage the application uses.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (*Object, error)
	Delete(ctx context.Context, key string) error
	// URL returns the public address of key.
	URL(key string) string
}
