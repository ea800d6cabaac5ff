package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EngagementEventType identifies what happened to a video.
type EngagementEventType string

const (
	EventVideoAdded      EngagementEventType = "video_added"
	EventVideoRemoved    EngagementEventType = "video_removed"
	EventVideoViewed     EngagementEventType = "video_viewed"
	EventReactionSet     EngagementEventType = "reaction_set"
	EventReactionCleared EngagementEventType = "reaction_cleared"
)

// EngagementEvent is published after an engagement mutation commits.
// UserID and Kind are empty for events that carry no actor or reaction.
type EngagementEvent struct {
	Type       EngagementEventType `json:"type"`
	VideoID    uuid.UUID           `json:"video_id"`
	UserID     string              `json:"user_id,omitempty"`
	Kind       string              `json:"kind,omitempty"`
	OccurredAt time.Time           `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing engagement events to
// downstream consumers. Implementations should be provided by the
// infrastructure layer (e.g., RabbitMQ). Publishing is best-effort: the
// mutation has already committed when an event is published.
type EventPublisher interface {
	// PublishEngagement sends one engagement event.
	PublishEngagement(ctx context.Context, event EngagementEvent) error

	// Close gracefully closes the connection to the broker.
	Close() error
}
