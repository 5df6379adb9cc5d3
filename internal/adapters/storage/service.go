// Package storage provides a domain-agnostic interface for S3-compatible object storage.
// This adapter backs both the site configuration documents and the gallery uploads.
package storage

import (
	"context"
	"io"
	"time"
)

// PresignedURL contains the URL and metadata for a presigned upload/download operation.
type PresignedURL struct {
	URL       string    `json:"url"`
	FileKey   string    `json:"fileKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// StorageService defines the interface for object storage operations.
type StorageService interface {
	// GenerateUploadURL creates a presigned URL for uploading a file.
	// The folder parameter defines the path prefix (e.g., "gallery").
	GenerateUploadURL(ctx context.Context, bucket, folder, fileName, contentType string, sizeBytes int64) (*PresignedURL, error)

	// GenerateDownloadURL creates a presigned URL for downloading a file.
	GenerateDownloadURL(ctx context.Context, bucket, fileKey string) (*PresignedURL, error)

	// ReadObject reads an object directly from storage.
	// The caller is responsible for closing the returned io.ReadCloser.
	ReadObject(ctx context.Context, bucket, fileKey string) (io.ReadCloser, error)

	// WriteObject writes an object at a fixed key, replacing any previous version.
	WriteObject(ctx context.Context, bucket, fileKey, contentType string, reader io.Reader, size int64) error

	// DeleteObject removes an object from storage.
	DeleteObject(ctx context.Context, bucket, fileKey string) error

	// EnsureBucketExists creates the bucket if it doesn't exist.
	EnsureBucketExists(ctx context.Context, bucket string) error

	// IsNotFound reports whether err means the requested object does not exist.
	IsNotFound(err error) bool

	// ValidateContentType checks if the content type is allowed for uploads.
	ValidateContentType(contentType string) error

	// ValidateFileSize checks if the file size is within limits.
	ValidateFileSize(sizeBytes int64) error

	// Ping verifies the storage backend is reachable.
	Ping(ctx context.Context) error
}

// Config defines the configuration interface for storage.
type Config interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinIOMaxFileSize() int64
	IsMinIOEnabled() bool
}
