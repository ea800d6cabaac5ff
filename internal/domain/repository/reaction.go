package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/akostin-dev/vidhost/internal/domain/model"
)

// ReactionRepository defines persistence operations for like/dislike reactions.
// The (video_id, user_id) pair is unique; a missing row means StanceNone.
type ReactionRepository interface {
	// Get retrieves the reaction for a (video, user) pair.
	// Returns ErrNotFound if the user has no reaction on the video.
	Get(ctx context.Context, videoID uuid.UUID, userID string) (*model.Reaction, error)

	// GetForUpdate behaves like Get but locks the row for the remainder of the
	// enclosing transaction, serializing concurrent read-modify-write cycles
	// on the same pair.
	GetForUpdate(ctx context.Context, videoID uuid.UUID, userID string) (*model.Reaction, error)

	// Insert persists a new reaction. Returns ErrConflict if a reaction for
	// the pair already exists; callers treat this as the optimistic-conflict
	// signal for a concurrent first reaction.
	Insert(ctx context.Context, reaction *model.Reaction) error

	// UpdateKind flips the kind of an existing reaction.
	// Returns ErrNotFound if no reaction exists for the pair.
	UpdateKind(ctx context.Context, videoID uuid.UUID, userID string, kind model.Kind) error

	// Delete removes the reaction for a (video, user) pair.
	// Returns ErrNotFound if no reaction exists.
	Delete(ctx context.Context, videoID uuid.UUID, userID string) error

	// ListVideoIDsByUserAndKind returns the ids of videos the user reacted to
	// with the given kind, most recent reaction first.
	ListVideoIDsByUserAndKind(ctx context.Context, userID string, kind model.Kind) ([]uuid.UUID, error)

	// CountByVideoAndKind returns the number of reactions of the given kind on
	// a video. Aggregates are derived by counting rows rather than maintained
	// as a counter column.
	CountByVideoAndKind(ctx context.Context, videoID uuid.UUID, kind model.Kind) (int64, error)
}
