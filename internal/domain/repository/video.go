package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/akostin-dev/vidhost/internal/domain/model"
)

// VideoRepository defines persistence operations for videos.
// Implementations are provided by the infrastructure layer (PostgreSQL).
type VideoRepository interface {
	// GetByID retrieves a video by its unique identifier.
	// Returns ErrNotFound if the video does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error)

	// FindByName retrieves videos whose name contains the given substring,
	// matched case-insensitively. Returns an empty slice when nothing matches.
	FindByName(ctx context.Context, name string) ([]*model.Video, error)

	// ListByOwner retrieves all videos owned by a user, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]*model.Video, error)

	// ListByOwners retrieves the union of videos owned by the given users in
	// descending creation-time order, ties broken by id for determinism.
	ListByOwners(ctx context.Context, ownerIDs []string) ([]*model.Video, error)

	// Add persists a new video entity.
	// Returns ErrConflict if a video with the same id already exists.
	Add(ctx context.Context, video *model.Video) error

	// Remove deletes a video together with all its reaction rows. Both deletes
	// run on the same connection, so inside a unit of work they commit or roll
	// back together. Returns ErrNotFound if the video does not exist.
	Remove(ctx context.Context, id uuid.UUID) error

	// IncrementViewCount adds one to the video's view counter as a single
	// storage-level increment, safe under concurrent callers.
	// Returns ErrNotFound if the video does not exist.
	IncrementViewCount(ctx context.Context, id uuid.UUID) error
}
