package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/akostin-dev/vidhost/internal/domain/model"
	"github.com/akostin-dev/vidhost/internal/domain/repository"
)

// ReactionRepository implements repository.ReactionRepository using PostgreSQL.
// The reactions table has PRIMARY KEY (video_id, user_id), which is what turns
// a concurrent first-reaction race into a unique violation.
type ReactionRepository struct {
	db DBTX
}

// NewReactionRepository creates a new ReactionRepository instance.
func NewReactionRepository(db DBTX) *ReactionRepository {
	return &ReactionRepository{db: db}
}

// Compile-time verification that ReactionRepository implements repository.ReactionRepository.
var _ repository.ReactionRepository = (*ReactionRepository)(nil)

// Get retrieves the reaction for a (video, user) pair.
func (r *ReactionRepository) Get(ctx context.Context, videoID uuid.UUID, userID string) (*model.Reaction, error) {
	const query = `
		SELECT video_id, user_id, kind, created_at, updated_at
		FROM reactions
		WHERE video_id = $1 AND user_id = $2
	`

	return r.getWith(ctx, query, videoID, userID)
}

// GetForUpdate retrieves the reaction and locks its row until the enclosing
// transaction ends, so a concurrent flip or toggle on the same pair waits
// rather than losing an update.
func (r *ReactionRepository) GetForUpdate(ctx context.Context, videoID uuid.UUID, userID string) (*model.Reaction, error) {
	const query = `
		SELECT video_id, user_id, kind, created_at, updated_at
		FROM reactions
		WHERE video_id = $1 AND user_id = $2
		FOR UPDATE
	`

	return r.getWith(ctx, query, videoID, userID)
}

func (r *ReactionRepository) getWith(ctx context.Context, query string, videoID uuid.UUID, userID string) (*model.Reaction, error) {
	var (
		reaction model.Reaction
		kind     string
	)

	err := r.db.QueryRow(ctx, query, videoID, userID).Scan(
		&reaction.VideoID,
		&reaction.UserID,
		&kind,
		&reaction.CreatedAt,
		&reaction.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, storageErr("get reaction", err)
	}

	reaction.Kind = model.Kind(kind)
	return &reaction, nil
}

// Insert persists a new reaction. A unique violation on the pair surfaces as
// repository.ErrConflict.
func (r *ReactionRepository) Insert(ctx context.Context, reaction *model.Reaction) error {
	const query = `
		INSERT INTO reactions (video_id, user_id, kind, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		reaction.VideoID,
		reaction.UserID,
		reaction.Kind.String(),
		reaction.CreatedAt,
		reaction.UpdatedAt,
	)
	if err != nil {
		return storageErr("insert reaction", err)
	}

	return nil
}

// UpdateKind flips the kind of an existing reaction.
func (r *ReactionRepository) UpdateKind(ctx context.Context, videoID uuid.UUID, userID string, kind model.Kind) error {
	const query = `
		UPDATE reactions
		SET kind = $3, updated_at = $4
		WHERE video_id = $1 AND user_id = $2
	`

	tag, err := r.db.Exec(ctx, query, videoID, userID, kind.String(), time.Now())
	if err != nil {
		return storageErr("update reaction kind", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes the reaction for a (video, user) pair.
func (r *ReactionRepository) Delete(ctx context.Context, videoID uuid.UUID, userID string) error {
	const query = `DELETE FROM reactions WHERE video_id = $1 AND user_id = $2`

	tag, err := r.db.Exec(ctx, query, videoID, userID)
	if err != nil {
		return storageErr("delete reaction", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// ListVideoIDsByUserAndKind returns the ids of videos the user reacted to with
// the given kind, most recent reaction first.
func (r *ReactionRepository) ListVideoIDsByUserAndKind(ctx context.Context, userID string, kind model.Kind) ([]uuid.UUID, error) {
	const query = `
		SELECT video_id
		FROM reactions
		WHERE user_id = $1 AND kind = $2
		ORDER BY created_at DESC, video_id DESC
	`

	rows, err := r.db.Query(ctx, query, userID, kind.String())
	if err != nil {
		return nil, storageErr("list reactions by user and kind", err)
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, storageErr("scan reaction video id", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate reactions", err)
	}

	return ids, nil
}

// CountByVideoAndKind counts reactions of the given kind on a video.
func (r *ReactionRepository) CountByVideoAndKind(ctx context.Context, videoID uuid.UUID, kind model.Kind) (int64, error) {
	const query = `
		SELECT COUNT(*)
		FROM reactions
		WHERE video_id = $1 AND kind = $2
	`

	var count int64
	if err := r.db.QueryRow(ctx, query, videoID, kind.String()).Scan(&count); err != nil {
		return 0, storageErr("count reactions", err)
	}

	return count, nil
}
