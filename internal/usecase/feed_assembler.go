package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/akostin-dev/vidhost/internal/domain/model"
	"github.com/akostin-dev/vidhost/internal/domain/repository"
)

// FeedAssembler computes the ordered video lists served to users. It reads
// through pool-backed repositories; feeds never mutate state, so no unit of
// work is involved.
type FeedAssembler struct {
	videos    repository.VideoRepository
	reactions repository.ReactionRepository
	users     repository.UserRepository
}

// NewFeedAssembler creates a FeedAssembler over the given read repositories.
func NewFeedAssembler(
	videos repository.VideoRepository,
	reactions repository.ReactionRepository,
	users repository.UserRepository,
) *FeedAssembler {
	return &FeedAssembler{
		videos:    videos,
		reactions: reactions,
		users:     users,
	}
}

// SubscriptionFeed returns the union of videos owned by every channel the
// user subscribes to, newest first (ties broken by id).
func (f *FeedAssembler) SubscriptionFeed(ctx context.Context, userID string) ([]*model.Video, error) {
	channels, err := f.users.GetSubscriptions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get subscriptions: %w", err)
	}

	videos, err := f.videos.ListByOwners(ctx, channels)
	if err != nil {
		return nil, fmt.Errorf("list subscription videos: %w", err)
	}

	return videos, nil
}

// LikedVideos returns the videos the user liked, most recent reaction first.
func (f *FeedAssembler) LikedVideos(ctx context.Context, userID string) ([]*model.Video, error) {
	return f.videosByReaction(ctx, userID, model.KindLike)
}

// DislikedVideos returns the videos the user disliked, most recent reaction first.
func (f *FeedAssembler) DislikedVideos(ctx context.Context, userID string) ([]*model.Video, error) {
	return f.videosByReaction(ctx, userID, model.KindDislike)
}

// videosByReaction hydrates the user's reacted video ids. A reaction whose
// target video has been removed is silently skipped: the list self-heals
// against stale rows instead of verifying the cascade on every read.
func (f *FeedAssembler) videosByReaction(ctx context.Context, userID string, kind model.Kind) ([]*model.Video, error) {
	ids, err := f.reactions.ListVideoIDsByUserAndKind(ctx, userID, kind)
	if err != nil {
		return nil, fmt.Errorf("list reacted video ids: %w", err)
	}

	videos := []*model.Video{}
	for _, id := range ids {
		video, err := f.videos.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("hydrate video %s: %w", id, err)
		}
		videos = append(videos, video)
	}

	return videos, nil
}

// SearchByName returns videos matching the substring case-insensitively.
// userID is accepted for future per-user visibility filtering; the base
// policy is a global search.
func (f *FeedAssembler) SearchByName(ctx context.Context, name, userID string) ([]*model.Video, error) {
	_ = userID

	videos, err := f.videos.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("find videos by name: %w", err)
	}

	return videos, nil
}

// VideosOfUser returns the videos owned by userID, newest first.
func (f *FeedAssembler) VideosOfUser(ctx context.Context, userID string) ([]*model.Video, error) {
	videos, err := f.videos.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list videos of user: %w", err)
	}

	return videos, nil
}
