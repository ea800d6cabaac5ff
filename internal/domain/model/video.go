package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Video represents a hosted video in the domain.
// OwnerID is immutable after creation. ViewCount is maintained by the storage
// layer as an atomic increment and is monotonically non-decreasing.
type Video struct {
	ID        uuid.UUID
	OwnerID   string
	Name      string
	FileKey   string
	ViewCount int64
	CreatedAt time.Time
}

var (
	ErrEmptyName      = errors.New("name cannot be empty")
	ErrNameTooLong    = errors.New("name exceeds maximum length of 255 characters")
	ErrInvalidOwnerID = errors.New("owner ID cannot be empty")
)

const maxNameLength = 255

// NewVideo creates a new Video with a zero view count.
func NewVideo(ownerID, name string) (*Video, error) {
	if ownerID == "" {
		return nil, ErrInvalidOwnerID
	}
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(name) > maxNameLength {
		return nil, ErrNameTooLong
	}

	return &Video{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      name,
		CreatedAt: time.Now(),
	}, nil
}

// SetFileKey records the object storage key the media file is uploaded under.
func (v *Video) SetFileKey(key string) {
	v.FileKey = key
}
