package repository

import (
	"context"

	"github.com/akostin-dev/vidhost/internal/domain/model"
)

// UserRepository defines the read access the engagement core needs on users.
// Account management itself lives outside this service.
type UserRepository interface {
	// GetByID retrieves a user by its opaque identifier.
	// Returns ErrNotFound if the user does not exist.
	GetByID(ctx context.Context, id string) (*model.User, error)

	// GetSubscriptions returns the channel ids the user is subscribed to.
	GetSubscriptions(ctx context.Context, userID string) ([]string, error)
}
