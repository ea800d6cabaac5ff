package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/akostin-dev/vidhost/internal/domain/model"
	"github.com/akostin-dev/vidhost/internal/domain/repository"
)

// mockVideoRepository provides a configurable mock for VideoRepository.
type mockVideoRepository struct {
	getByIDFn            func(ctx context.Context, id uuid.UUID) (*model.Video, error)
	findByNameFn         func(ctx context.Context, name string) ([]*model.Video, error)
	listByOwnerFn        func(ctx context.Context, ownerID string) ([]*model.Video, error)
	listByOwnersFn       func(ctx context.Context, ownerIDs []string) ([]*model.Video, error)
	addFn                func(ctx context.Context, video *model.Video) error
	removeFn             func(ctx context.Context, id uuid.UUID) error
	incrementViewCountFn func(ctx context.Context, id uuid.UUID) error
}

func (m *mockVideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockVideoRepository) FindByName(ctx context.Context, name string) ([]*model.Video, error) {
	if m.findByNameFn != nil {
		return m.findByNameFn(ctx, name)
	}
	return nil, nil
}

func (m *mockVideoRepository) ListByOwner(ctx context.Context, ownerID string) ([]*model.Video, error) {
	if m.listByOwnerFn != nil {
		return m.listByOwnerFn(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockVideoRepository) ListByOwners(ctx context.Context, ownerIDs []string) ([]*model.Video, error) {
	if m.listByOwnersFn != nil {
		return m.listByOwnersFn(ctx, ownerIDs)
	}
	return nil, nil
}

func (m *mockVideoRepository) Add(ctx context.Context, video *model.Video) error {
	if m.addFn != nil {
		return m.addFn(ctx, video)
	}
	return nil
}

func (m *mockVideoRepository) Remove(ctx context.Context, id uuid.UUID) error {
	if m.removeFn != nil {
		return m.removeFn(ctx, id)
	}
	return nil
}

func (m *mockVideoRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	if m.incrementViewCountFn != nil {
		return m.incrementViewCountFn(ctx, id)
	}
	return nil
}

// mockReactionRepository provides a configurable mock for ReactionRepository.
type mockReactionRepository struct {
	getFn                       func(ctx context.Context, videoID uuid.UUID, userID string) (*model.Reaction, error)
	getForUpdateFn              func(ctx context.Context, videoID uuid.UUID, userID string) (*model.Reaction, error)
	insertFn                    func(ctx context.Context, reaction *model.Reaction) error
	updateKindFn                func(ctx context.Context, videoID uuid.UUID, userID string, kind model.Kind) error
	deleteFn                    func(ctx context.Context, videoID uuid.UUID, userID string) error
	listVideoIDsByUserAndKindFn func(ctx context.Context, userID string, kind model.Kind) ([]uuid.UUID, error)
	countByVideoAndKindFn       func(ctx context.Context, videoID uuid.UUID, kind model.Kind) (int64, error)
}

func (m *mockReactionRepository) Get(ctx context.Context, videoID uuid.UUID, userID string) (*model.Reaction, error) {
	if m.getFn != nil {
		return m.getFn(ctx, videoID, userID)
	}
	return nil, repository.ErrNotFound
}

func (m *mockReactionRepository) GetForUpdate(ctx context.Context, videoID uuid.UUID, userID string) (*model.Reaction, error) {
	if m.getForUpdateFn != nil {
		return m.getForUpdateFn(ctx, videoID, userID)
	}
	return nil, repository.ErrNotFound
}

func (m *mockReactionRepository) Insert(ctx context.Context, reaction *model.Reaction) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, reaction)
	}
	return nil
}

func (m *mockReactionRepository) UpdateKind(ctx context.Context, videoID uuid.UUID, userID string, kind model.Kind) error {
	if m.updateKindFn != nil {
		return m.updateKindFn(ctx, videoID, userID, kind)
	}
	return nil
}

func (m *mockReactionRepository) Delete(ctx context.Context, videoID uuid.UUID, userID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, videoID, userID)
	}
	return nil
}

func (m *mockReactionRepository) ListVideoIDsByUserAndKind(ctx context.Context, userID string, kind model.Kind) ([]uuid.UUID, error) {
	if m.listVideoIDsByUserAndKindFn != nil {
		return m.listVideoIDsByUserAndKindFn(ctx, userID, kind)
	}
	return nil, nil
}

func (m *mockReactionRepository) CountByVideoAndKind(ctx context.Context, videoID uuid.UUID, kind model.Kind) (int64, error) {
	if m.countByVideoAndKindFn != nil {
		return m.countByVideoAndKindFn(ctx, videoID, kind)
	}
	return 0, nil
}

// mockUserRepository provides a configurable mock for UserRepository.
type mockUserRepository struct {
	getByIDFn          func(ctx context.Context, id string) (*model.User, error)
	getSubscriptionsFn func(ctx context.Context, userID string) ([]string, error)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return &model.User{ID: id}, nil
}

func (m *mockUserRepository) GetSubscriptions(ctx context.Context, userID string) ([]string, error) {
	if m.getSubscriptionsFn != nil {
		return m.getSubscriptionsFn(ctx, userID)
	}
	return nil, nil
}

// mockUnitOfWork is a unit of work backed by the mocks above. It tracks
// lifecycle calls so tests can assert commit/rollback behavior.
type mockUnitOfWork struct {
	videos    *mockVideoRepository
	reactions *mockReactionRepository
	users     *mockUserRepository

	beginFn  func(ctx context.Context) error
	commitFn func(ctx context.Context) error

	begun      int
	committed  int
	rolledBack int
}

func newMockUnitOfWork() *mockUnitOfWork {
	return &mockUnitOfWork{
		videos:    &mockVideoRepository{},
		reactions: &mockReactionRepository{},
		users:     &mockUserRepository{},
	}
}

func (m *mockUnitOfWork) Begin(ctx context.Context) error {
	m.begun++
	if m.beginFn != nil {
		return m.beginFn(ctx)
	}
	return nil
}

func (m *mockUnitOfWork) Commit(ctx context.Context) error {
	m.committed++
	if m.commitFn != nil {
		return m.commitFn(ctx)
	}
	return nil
}

func (m *mockUnitOfWork) Rollback(ctx context.Context) error {
	m.rolledBack++
	return nil
}

func (m *mockUnitOfWork) Videos() repository.VideoRepository { return m.videos }

func (m *mockUnitOfWork) Reactions() repository.ReactionRepository { return m.reactions }

func (m *mockUnitOfWork) Users() repository.UserRepository { return m.users }

// mockUOWFactory hands out the configured unit of work, or a custom one per
// call when newFn is set.
type mockUOWFactory struct {
	uow   *mockUnitOfWork
	newFn func() repository.UnitOfWork
}

func (m *mockUOWFactory) New() repository.UnitOfWork {
	if m.newFn != nil {
		return m.newFn()
	}
	return m.uow
}

// mockObjectStorage provides a configurable mock for ObjectStorage.
type mockObjectStorage struct {
	generatePresignedUploadURLFn   func(ctx context.Context, key string, expiry time.Duration) (string, error)
	generatePresignedPlaybackURLFn func(ctx context.Context, key string, expiry time.Duration) (string, error)
	deleteFn                       func(ctx context.Context, key string) error
	existsFn                       func(ctx context.Context, key string) (bool, error)
}

func (m *mockObjectStorage) GeneratePresignedUploadURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if m.generatePresignedUploadURLFn != nil {
		return m.generatePresignedUploadURLFn(ctx, key, expiry)
	}
	return "http://example.com/upload", nil
}

func (m *mockObjectStorage) GeneratePresignedPlaybackURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if m.generatePresignedPlaybackURLFn != nil {
		return m.generatePresignedPlaybackURLFn(ctx, key, expiry)
	}
	return "http://example.com/playback", nil
}

func (m *mockObjectStorage) Delete(ctx context.Context, key string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, key)
	}
	return nil
}

func (m *mockObjectStorage) Exists(ctx context.Context, key string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, key)
	}
	return false, nil
}

// mockEventPublisher provides a configurable mock for EventPublisher. It
// records every published event.
type mockEventPublisher struct {
	publishFn func(ctx context.Context, event repository.EngagementEvent) error
	published []repository.EngagementEvent
}

func (m *mockEventPublisher) PublishEngagement(ctx context.Context, event repository.EngagementEvent) error {
	m.published = append(m.published, event)
	if m.publishFn != nil {
		return m.publishFn(ctx, event)
	}
	return nil
}

func (m *mockEventPublisher) Close() error { return nil }

// mockVideoCache provides a configurable mock for cache.VideoCache.
type mockVideoCache struct {
	getFn    func(ctx context.Context, videoID uuid.UUID) (*model.Video, error)
	setFn    func(ctx context.Context, video *model.Video, ttl time.Duration) error
	deleteFn func(ctx context.Context, videoID uuid.UUID) error

	deleted []uuid.UUID
}

func (m *mockVideoCache) Get(ctx context.Context, videoID uuid.UUID) (*model.Video, error) {
	if m.getFn != nil {
		return m.getFn(ctx, videoID)
	}
	return nil, nil
}

func (m *mockVideoCache) Set(ctx context.Context, video *model.Video, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, video, ttl)
	}
	return nil
}

func (m *mockVideoCache) Delete(ctx context.Context, videoID uuid.UUID) error {
	m.deleted = append(m.deleted, videoID)
	if m.deleteFn != nil {
		return m.deleteFn(ctx, videoID)
	}
	return nil
}
