package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/akostin-dev/vidhost/internal/domain/model"
	"github.com/akostin-dev/vidhost/internal/domain/repository"
	"github.com/akostin-dev/vidhost/internal/infrastructure/cache"
	"github.com/akostin-dev/vidhost/internal/infrastructure/metrics"
)

// CachedVideoRepository wraps a VideoRepository with a cache-aside layer for
// single-video lookups. Concurrent misses for the same video are collapsed
// into one database query via singleflight. List queries and writes pass
// through untouched; writers invalidate through cache.VideoCache directly.
type CachedVideoRepository struct {
	repo  repository.VideoRepository
	cache cache.VideoCache
	ttl   time.Duration
	group singleflight.Group
}

var _ repository.VideoRepository = (*CachedVideoRepository)(nil)

// NewCachedVideoRepository creates a caching decorator around repo.
func NewCachedVideoRepository(repo repository.VideoRepository, videoCache cache.VideoCache, ttl time.Duration) *CachedVideoRepository {
	return &CachedVideoRepository{
		repo:  repo,
		cache: videoCache,
		ttl:   ttl,
	}
}

// GetByID returns the cached video when present, otherwise loads it from the
// underlying repository and populates the cache. Cache failures degrade to a
// plain repository read.
func (r *CachedVideoRepository) GetByID(ctx context.Context, videoID uuid.UUID) (*model.Video, error) {
	if video, err := r.cache.Get(ctx, videoID); err == nil && video != nil {
		return video, nil
	}

	result, err, shared := r.group.Do(videoID.String(), func() (any, error) {
		video, err := r.repo.GetByID(ctx, videoID)
		if err != nil {
			return nil, err
		}
		// Best effort: a failed Set only costs the next reader a miss.
		_ = r.cache.Set(ctx, video, r.ttl)
		return video, nil
	})
	if shared {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightShared).Inc()
	} else {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightInitiated).Inc()
	}
	if err != nil {
		return nil, err
	}

	return result.(*model.Video), nil
}

func (r *CachedVideoRepository) FindByName(ctx context.Context, name string) ([]*model.Video, error) {
	return r.repo.FindByName(ctx, name)
}

func (r *CachedVideoRepository) ListByOwner(ctx context.Context, ownerID string) ([]*model.Video, error) {
	return r.repo.ListByOwner(ctx, ownerID)
}

func (r *CachedVideoRepository) ListByOwners(ctx context.Context, ownerIDs []string) ([]*model.Video, error) {
	return r.repo.ListByOwners(ctx, ownerIDs)
}

func (r *CachedVideoRepository) Add(ctx context.Context, video *model.Video) error {
	return r.repo.Add(ctx, video)
}

// Remove deletes the video and drops its cache entry.
func (r *CachedVideoRepository) Remove(ctx context.Context, videoID uuid.UUID) error {
	if err := r.repo.Remove(ctx, videoID); err != nil {
		return err
	}
	_ = r.cache.Delete(ctx, videoID)
	return nil
}

// IncrementViewCount increments the counter and drops the stale cache entry.
func (r *CachedVideoRepository) IncrementViewCount(ctx context.Context, videoID uuid.UUID) error {
	if err := r.repo.IncrementViewCount(ctx, videoID); err != nil {
		return err
	}
	_ = r.cache.Delete(ctx, videoID)
	return nil
}
