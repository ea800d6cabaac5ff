package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/akostin-dev/vidhost/internal/domain/model"
	"github.com/akostin-dev/vidhost/internal/domain/repository"
)

// VideoRepository implements repository.VideoRepository using PostgreSQL.
type VideoRepository struct {
	db DBTX
}

// NewVideoRepository creates a new VideoRepository instance.
func NewVideoRepository(db DBTX) *VideoRepository {
	return &VideoRepository{db: db}
}

// Compile-time verification that VideoRepository implements repository.VideoRepository.
var _ repository.VideoRepository = (*VideoRepository)(nil)

// GetByID retrieves a video by its unique identifier.
func (r *VideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	const query = `
		SELECT id, owner_id, name, file_key, view_count, created_at
		FROM videos
		WHERE id = $1
	`

	video, err := scanVideo(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, storageErr("get video by id", err)
	}

	return video, nil
}

// FindByName retrieves videos whose name contains the substring, matched
// case-insensitively across all owners.
func (r *VideoRepository) FindByName(ctx context.Context, name string) ([]*model.Video, error) {
	const query = `
		SELECT id, owner_id, name, file_key, view_count, created_at
		FROM videos
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.Query(ctx, query, name)
	if err != nil {
		return nil, storageErr("find videos by name", err)
	}
	defer rows.Close()

	return collectVideos(rows)
}

// ListByOwner retrieves all videos owned by a user, newest first.
func (r *VideoRepository) ListByOwner(ctx context.Context, ownerID string) ([]*model.Video, error) {
	const query = `
		SELECT id, owner_id, name, file_key, view_count, created_at
		FROM videos
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, storageErr("list videos by owner", err)
	}
	defer rows.Close()

	return collectVideos(rows)
}

// ListByOwners retrieves the union of videos owned by the given users.
// Ordering is descending creation time with id as a deterministic tiebreak.
func (r *VideoRepository) ListByOwners(ctx context.Context, ownerIDs []string) ([]*model.Video, error) {
	if len(ownerIDs) == 0 {
		return []*model.Video{}, nil
	}

	const query = `
		SELECT id, owner_id, name, file_key, view_count, created_at
		FROM videos
		WHERE owner_id = ANY($1)
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.Query(ctx, query, ownerIDs)
	if err != nil {
		return nil, storageErr("list videos by owners", err)
	}
	defer rows.Close()

	return collectVideos(rows)
}

// Add persists a new video entity.
func (r *VideoRepository) Add(ctx context.Context, video *model.Video) error {
	const query = `
		INSERT INTO videos (id, owner_id, name, file_key, view_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		video.ID,
		video.OwnerID,
		video.Name,
		nullString(video.FileKey),
		video.ViewCount,
		video.CreatedAt,
	)
	if err != nil {
		return storageErr("add video", err)
	}

	return nil
}

// Remove deletes a video and cascades the deletion to its reaction rows.
// Both statements run on the same connection: inside a unit of work they are
// atomic, leaving no orphaned reactions.
func (r *VideoRepository) Remove(ctx context.Context, id uuid.UUID) error {
	const deleteReactions = `DELETE FROM reactions WHERE video_id = $1`
	const deleteVideo = `DELETE FROM videos WHERE id = $1`

	if _, err := r.db.Exec(ctx, deleteReactions, id); err != nil {
		return storageErr("remove video reactions", err)
	}

	tag, err := r.db.Exec(ctx, deleteVideo, id)
	if err != nil {
		return storageErr("remove video", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// IncrementViewCount adds one to the view counter in a single UPDATE, so
// concurrent increments never lose updates.
func (r *VideoRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	const query = `
		UPDATE videos
		SET view_count = view_count + 1
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return storageErr("increment view count", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// scanVideo scans a single row into a Video model.
func scanVideo(row pgx.Row) (*model.Video, error) {
	var (
		video   model.Video
		fileKey *string
	)

	err := row.Scan(
		&video.ID,
		&video.OwnerID,
		&video.Name,
		&fileKey,
		&video.ViewCount,
		&video.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if fileKey != nil {
		video.FileKey = *fileKey
	}

	return &video, nil
}

// collectVideos drains rows into a slice, returning an empty slice rather
// than nil for "no results".
func collectVideos(rows pgx.Rows) ([]*model.Video, error) {
	videos := []*model.Video{}
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate videos", err)
	}

	return videos, nil
}

// nullString returns nil for empty strings, otherwise a pointer to the string.
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
