package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/akostin-dev/vidhost/internal/domain/model"
	"github.com/akostin-dev/vidhost/internal/domain/repository"
)

// UserRepository implements repository.UserRepository using PostgreSQL.
// The engagement core only reads users and their subscriptions; account
// management writes happen in a separate service.
type UserRepository struct {
	db DBTX
}

// NewUserRepository creates a new UserRepository instance.
func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// Compile-time verification that UserRepository implements repository.UserRepository.
var _ repository.UserRepository = (*UserRepository)(nil)

// GetByID retrieves a user by its opaque identifier.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	const query = `
		SELECT id, name, surname, sex, faculty, grp
		FROM users
		WHERE id = $1
	`

	var user model.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Surname,
		&user.Sex,
		&user.Faculty,
		&user.Group,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, storageErr("get user by id", err)
	}

	return &user, nil
}

// GetSubscriptions returns the channel ids the user is subscribed to.
func (r *UserRepository) GetSubscriptions(ctx context.Context, userID string) ([]string, error) {
	const query = `
		SELECT channel_id
		FROM subscriptions
		WHERE subscriber_id = $1
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, storageErr("get subscriptions", err)
	}
	defer rows.Close()

	channels := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, storageErr("scan subscription", err)
		}
		channels = append(channels, id)
	}

	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate subscriptions", err)
	}

	return channels, nil
}
