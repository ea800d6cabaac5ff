package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Kind is the persisted reaction kind for a (video, user) pair.
type Kind string

const (
	KindLike    Kind = "LIKE"
	KindDislike Kind = "DISLIKE"
)

func (k Kind) IsValid() bool {
	switch k {
	case KindLike, KindDislike:
		return true
	default:
		return false
	}
}

func (k Kind) String() string {
	return string(k)
}

// Stance is a user's effective position toward a video. It is a tri-state:
// no reaction row maps to StanceNone, a row maps to the kind's stance.
type Stance string

const (
	StanceNone     Stance = "NONE"
	StanceLiked    Stance = "LIKED"
	StanceDisliked Stance = "DISLIKED"
)

// Stance returns the stance a persisted reaction of this kind represents.
func (k Kind) Stance() Stance {
	if k == KindDislike {
		return StanceDisliked
	}
	return StanceLiked
}

// NextStance applies a like/dislike action to the current stance.
//
// Repeating the matching action clears the stance (toggle), the opposite
// action flips it:
//
//	NONE     --like--> LIKED       LIKED    --like--> NONE
//	DISLIKED --like--> LIKED       NONE  --dislike--> DISLIKED
//	DISLIKED --dislike--> NONE     LIKED --dislike--> DISLIKED
func NextStance(current Stance, action Kind) Stance {
	if current == action.Stance() {
		return StanceNone
	}
	return action.Stance()
}

// Reaction is a user's recorded like or dislike on a video.
// At most one Reaction exists per (VideoID, UserID) pair.
type Reaction struct {
	VideoID   uuid.UUID
	UserID    string
	Kind      Kind
	CreatedAt time.Time
	UpdatedAt time.Time
}

var (
	ErrInvalidVideoID = errors.New("video ID cannot be nil")
	ErrInvalidUserID  = errors.New("user ID cannot be empty")
	ErrInvalidKind    = errors.New("reaction kind must be LIKE or DISLIKE")
)

// NewReaction creates a reaction of the given kind for a (video, user) pair.
func NewReaction(videoID uuid.UUID, userID string, kind Kind) (*Reaction, error) {
	if videoID == uuid.Nil {
		return nil, ErrInvalidVideoID
	}
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	if !kind.IsValid() {
		return nil, ErrInvalidKind
	}

	now := time.Now()
	return &Reaction{
		VideoID:   videoID,
		UserID:    userID,
		Kind:      kind,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
