package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/akostin-dev/vidhost/internal/domain/model"
	"github.com/akostin-dev/vidhost/internal/domain/repository"
	"github.com/akostin-dev/vidhost/internal/infrastructure/cache"
	"github.com/akostin-dev/vidhost/internal/infrastructure/metrics"
)

// AddVideoInput contains the input parameters for adding a video.
type AddVideoInput struct {
	OwnerID  string
	Name     string
	FileName string
}

// AddVideoOutput contains the result of adding a video.
// UploadURL is a presigned URL the client uploads the media file to; it is
// empty when no file name was supplied.
type AddVideoOutput struct {
	Video     *model.Video
	UploadURL string
}

// VideoDetail is the full read model for a single video: the entity, the
// derived reaction aggregates, the caller's stance toward it, and a presigned
// playback URL when a media object is stored.
type VideoDetail struct {
	Video       *model.Video
	Likes       int64
	Dislikes    int64
	Stance      model.Stance
	PlaybackURL string
}

// VideoService defines the public contract of the engagement core. Every
// mutating operation opens exactly one unit of work and commits before
// returning; repository errors surface unchanged after rollback.
type VideoService interface {
	// GetVideoByID retrieves one video with reaction aggregates and the
	// caller's stance. userID may be empty for anonymous reads.
	GetVideoByID(ctx context.Context, videoID uuid.UUID, userID string) (*VideoDetail, error)

	// GetSubscriptionFeed returns videos from channels the user subscribes to,
	// newest first.
	GetSubscriptionFeed(ctx context.Context, userID string) ([]*model.Video, error)

	// GetLikedVideos returns the videos the user liked.
	GetLikedVideos(ctx context.Context, userID string) ([]*model.Video, error)

	// GetDislikedVideos returns the videos the user disliked.
	GetDislikedVideos(ctx context.Context, userID string) ([]*model.Video, error)

	// GetVideosByName searches video names case-insensitively.
	GetVideosByName(ctx context.Context, name, userID string) ([]*model.Video, error)

	// GetVideosOfUser returns the videos owned by userID.
	GetVideosOfUser(ctx context.Context, userID string) ([]*model.Video, error)

	// AddVideo persists video metadata and returns a presigned upload URL for
	// the media object.
	AddVideo(ctx context.Context, input AddVideoInput) (*AddVideoOutput, error)

	// RemoveVideo deletes a video and all its reactions atomically, then
	// best-effort removes the stored media object.
	RemoveVideo(ctx context.Context, videoID uuid.UUID) error

	// AddView increments the video's view counter. Repeated calls by the same
	// viewer always increment; there is no per-viewer deduplication.
	AddView(ctx context.Context, videoID uuid.UUID) error

	// PutLike applies a like action (toggle semantics) and returns the
	// resulting stance.
	PutLike(ctx context.Context, videoID uuid.UUID, userID string) (model.Stance, error)

	// PutDislike applies a dislike action (toggle semantics) and returns the
	// resulting stance.
	PutDislike(ctx context.Context, videoID uuid.UUID, userID string) (model.Stance, error)
}

// VideoServiceConfig holds configuration for VideoService.
type VideoServiceConfig struct {
	UploadURLExpiry   time.Duration
	PlaybackURLExpiry time.Duration
}

// DefaultVideoServiceConfig returns the default configuration.
func DefaultVideoServiceConfig() VideoServiceConfig {
	return VideoServiceConfig{
		UploadURLExpiry:   15 * time.Minute,
		PlaybackURLExpiry: time.Hour,
	}
}

type videoService struct {
	uowf      repository.UnitOfWorkFactory
	videos    repository.VideoRepository
	reactions repository.ReactionRepository
	feed      *FeedAssembler
	engine    *ReactionEngine
	storage   repository.ObjectStorage
	events    repository.EventPublisher
	cache     cache.VideoCache
	logger    *slog.Logger

	uploadURLExpiry   time.Duration
	playbackURLExpiry time.Duration
}

// NewVideoService creates a new VideoService instance. events and videoCache
// may be nil, which disables event publishing and cache invalidation.
func NewVideoService(
	uowf repository.UnitOfWorkFactory,
	videos repository.VideoRepository,
	reactions repository.ReactionRepository,
	users repository.UserRepository,
	objectStorage repository.ObjectStorage,
	events repository.EventPublisher,
	videoCache cache.VideoCache,
	logger *slog.Logger,
	cfg VideoServiceConfig,
) VideoService {
	return &videoService{
		uowf:              uowf,
		videos:            videos,
		reactions:         reactions,
		feed:              NewFeedAssembler(videos, reactions, users),
		engine:            NewReactionEngine(uowf),
		storage:           objectStorage,
		events:            events,
		cache:             videoCache,
		logger:            logger,
		uploadURLExpiry:   cfg.UploadURLExpiry,
		playbackURLExpiry: cfg.PlaybackURLExpiry,
	}
}

// GetVideoByID retrieves one video with its derived engagement data.
func (s *videoService) GetVideoByID(ctx context.Context, videoID uuid.UUID, userID string) (*VideoDetail, error) {
	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}

	likes, err := s.reactions.CountByVideoAndKind(ctx, videoID, model.KindLike)
	if err != nil {
		return nil, fmt.Errorf("count likes: %w", err)
	}

	dislikes, err := s.reactions.CountByVideoAndKind(ctx, videoID, model.KindDislike)
	if err != nil {
		return nil, fmt.Errorf("count dislikes: %w", err)
	}

	stance := model.StanceNone
	if userID != "" {
		reaction, err := s.reactions.Get(ctx, videoID, userID)
		switch {
		case err == nil:
			stance = reaction.Kind.Stance()
		case !errors.Is(err, repository.ErrNotFound):
			return nil, fmt.Errorf("get caller reaction: %w", err)
		}
	}

	detail := &VideoDetail{
		Video:    video,
		Likes:    likes,
		Dislikes: dislikes,
		Stance:   stance,
	}

	if video.FileKey != "" && s.storage != nil {
		playbackURL, err := s.storage.GeneratePresignedPlaybackURL(ctx, video.FileKey, s.playbackURLExpiry)
		if err != nil {
			// Metadata is still useful without a playable URL.
			s.logger.Warn("failed to presign playback URL",
				"video_id", videoID,
				"error", err,
			)
		} else {
			detail.PlaybackURL = playbackURL
		}
	}

	return detail, nil
}

// GetSubscriptionFeed returns the subscription feed for userID.
func (s *videoService) GetSubscriptionFeed(ctx context.Context, userID string) ([]*model.Video, error) {
	return s.feed.SubscriptionFeed(ctx, userID)
}

// GetLikedVideos returns the videos the user liked.
func (s *videoService) GetLikedVideos(ctx context.Context, userID string) ([]*model.Video, error) {
	return s.feed.LikedVideos(ctx, userID)
}

// GetDislikedVideos returns the videos the user disliked.
func (s *videoService) GetDislikedVideos(ctx context.Context, userID string) ([]*model.Video, error) {
	return s.feed.DislikedVideos(ctx, userID)
}

// GetVideosByName searches video names for the substring.
func (s *videoService) GetVideosByName(ctx context.Context, name, userID string) ([]*model.Video, error) {
	return s.feed.SearchByName(ctx, name, userID)
}

// GetVideosOfUser returns the videos owned by userID.
func (s *videoService) GetVideosOfUser(ctx context.Context, userID string) ([]*model.Video, error) {
	return s.feed.VideosOfUser(ctx, userID)
}

// AddVideo persists video metadata inside one unit of work. The owner must
// exist; media bytes are uploaded by the client against the returned
// presigned URL and never pass through this service.
func (s *videoService) AddVideo(ctx context.Context, input AddVideoInput) (out *AddVideoOutput, err error) {
	defer func() { s.trackOp("add_video", err) }()

	video, err := model.NewVideo(input.OwnerID, input.Name)
	if err != nil {
		return nil, err
	}

	var uploadURL string
	if input.FileName != "" && s.storage != nil {
		key := s.mediaKey(video.ID, input.FileName)
		uploadURL, err = s.storage.GeneratePresignedUploadURL(ctx, key, s.uploadURLExpiry)
		if err != nil {
			return nil, fmt.Errorf("generate upload URL: %w", err)
		}
		video.SetFileKey(key)
	}

	uow := s.uowf.New()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)

	if _, err = uow.Users().GetByID(ctx, input.OwnerID); err != nil {
		return nil, fmt.Errorf("verify owner: %w", err)
	}
	if err = uow.Videos().Add(ctx, video); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	s.publish(ctx, repository.EngagementEvent{
		Type:       repository.EventVideoAdded,
		VideoID:    video.ID,
		UserID:     video.OwnerID,
		OccurredAt: time.Now(),
	})

	return &AddVideoOutput{Video: video, UploadURL: uploadURL}, nil
}

// RemoveVideo deletes the video and its reactions in one transaction, then
// cleans up the media object and cache outside of it.
func (s *videoService) RemoveVideo(ctx context.Context, videoID uuid.UUID) (err error) {
	defer func() { s.trackOp("remove_video", err) }()

	uow := s.uowf.New()
	if err = uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback(ctx)

	video, err := uow.Videos().GetByID(ctx, videoID)
	if err != nil {
		return err
	}
	if err = uow.Videos().Remove(ctx, videoID); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	s.invalidate(ctx, videoID)

	if video.FileKey != "" && s.storage != nil {
		if err := s.storage.Delete(ctx, video.FileKey); err != nil {
			// The row is gone; an orphaned object is not worth failing over.
			s.logger.Warn("failed to delete media object",
				"video_id", videoID,
				"file_key", video.FileKey,
				"error", err,
			)
		}
	}

	s.publish(ctx, repository.EngagementEvent{
		Type:       repository.EventVideoRemoved,
		VideoID:    videoID,
		OccurredAt: time.Now(),
	})

	return nil
}

// AddView increments the view counter as a single storage-level increment
// inside its own unit of work.
func (s *videoService) AddView(ctx context.Context, videoID uuid.UUID) (err error) {
	defer func() { s.trackOp("add_view", err) }()

	uow := s.uowf.New()
	if err = uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback(ctx)

	if err = uow.Videos().IncrementViewCount(ctx, videoID); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	s.invalidate(ctx, videoID)

	s.publish(ctx, repository.EngagementEvent{
		Type:       repository.EventVideoViewed,
		VideoID:    videoID,
		OccurredAt: time.Now(),
	})

	return nil
}

// PutLike applies a like action with toggle semantics.
func (s *videoService) PutLike(ctx context.Context, videoID uuid.UUID, userID string) (model.Stance, error) {
	return s.putReaction(ctx, videoID, userID, model.KindLike)
}

// PutDislike applies a dislike action with toggle semantics.
func (s *videoService) PutDislike(ctx context.Context, videoID uuid.UUID, userID string) (model.Stance, error) {
	return s.putReaction(ctx, videoID, userID, model.KindDislike)
}

func (s *videoService) putReaction(ctx context.Context, videoID uuid.UUID, userID string, kind model.Kind) (stance model.Stance, err error) {
	op := "put_like"
	if kind == model.KindDislike {
		op = "put_dislike"
	}
	defer func() { s.trackOp(op, err) }()

	if userID == "" {
		return model.StanceNone, model.ErrInvalidUserID
	}

	stance, err = s.engine.Apply(ctx, videoID, userID, kind)
	if err != nil {
		return model.StanceNone, err
	}

	eventType := repository.EventReactionSet
	if stance == model.StanceNone {
		eventType = repository.EventReactionCleared
	}
	s.publish(ctx, repository.EngagementEvent{
		Type:       eventType,
		VideoID:    videoID,
		UserID:     userID,
		Kind:       kind.String(),
		OccurredAt: time.Now(),
	})

	return stance, nil
}

// publish sends one engagement event; failures are logged, never surfaced,
// because the mutation has already committed.
func (s *videoService) publish(ctx context.Context, event repository.EngagementEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishEngagement(ctx, event); err != nil {
		s.logger.Warn("failed to publish engagement event",
			"type", string(event.Type),
			"video_id", event.VideoID,
			"error", err,
		)
	}
}

// invalidate drops the video's cache entry after a mutation.
func (s *videoService) invalidate(ctx context.Context, videoID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, videoID); err != nil {
		s.logger.Warn("failed to invalidate video cache",
			"video_id", videoID,
			"error", err,
		)
	}
}

func (s *videoService) trackOp(operation string, err error) {
	status := metrics.StatusOK
	if err != nil {
		status = metrics.StatusError
	}
	metrics.EngagementOperationsTotal.WithLabelValues(operation, status).Inc()
}

// mediaKey builds the object storage key for a video's media file.
// Format: videos/{video_id}/{filename}
func (s *videoService) mediaKey(videoID uuid.UUID, filename string) string {
	return path.Join("videos", videoID.String(), filename)
}
