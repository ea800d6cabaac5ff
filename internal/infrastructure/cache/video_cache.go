package cache

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/akostin-dev/vidhost/internal/domain/model"
)

// VideoCache defines the interface for caching video metadata.
// Implementations handle serialization transparently. View counts read
// through the cache may lag the store by up to the write TTL; callers that
// mutate a video are expected to Delete its entry.
type VideoCache interface {
	// Get retrieves a video from cache by ID.
	// Returns nil, nil if the video is not cached (cache miss).
	Get(ctx context.Context, videoID uuid.UUID) (*model.Video, error)

	// Set stores a video in cache with the specified TTL.
	Set(ctx context.Context, video *model.Video, ttl time.Duration) error

	// Delete removes a video from cache by ID.
	// Returns nil if the video was not cached.
	Delete(ctx context.Context, videoID uuid.UUID) error
}
