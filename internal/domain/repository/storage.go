package repository

import (
	"context"
	"time"
)

// ObjectStorage defines the interface for media object operations.
// Implementations should be provided by the infrastructure layer (e.g., MinIO).
// The core never streams media bytes itself: clients upload and download
// directly against presigned URLs.
type ObjectStorage interface {
	// GeneratePresignedUploadURL creates a presigned URL for direct client upload.
	// key is the object path within the bucket (e.g., "videos/{video_id}/original.mp4").
	GeneratePresignedUploadURL(ctx context.Context, key string, expiry time.Duration) (string, error)

	// GeneratePresignedPlaybackURL creates a presigned URL for downloading the
	// stored media object.
	GeneratePresignedPlaybackURL(ctx context.Context, key string, expiry time.Duration) (string, error)

	// Delete removes an object from the storage.
	Delete(ctx context.Context, key string) error

	// Exists checks if an object exists in the storage.
	Exists(ctx context.Context, key string) (bool, error)
}
