package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/akostin-dev/vidhost/internal/domain/model"
	"github.com/akostin-dev/vidhost/internal/domain/repository"
	"github.com/akostin-dev/vidhost/internal/infrastructure/metrics"
)

// reactionApplyAttempts bounds the optimistic-conflict retry: one retry after
// a concurrent first-reaction race, then the conflict surfaces to the caller.
const reactionApplyAttempts = 2

// ReactionEngine applies the like/dislike state machine for a (video, user)
// pair. Each application is one unit of work: the current reaction is read
// under a row lock, the next stance computed, and exactly one insert, kind
// update or delete committed atomically with it.
type ReactionEngine struct {
	uowf repository.UnitOfWorkFactory
}

// NewReactionEngine creates a ReactionEngine producing transactions from uowf.
func NewReactionEngine(uowf repository.UnitOfWorkFactory) *ReactionEngine {
	return &ReactionEngine{uowf: uowf}
}

// Apply performs one like or dislike action and returns the resulting stance.
// Returns repository.ErrNotFound if the video does not exist, and
// repository.ErrConflict when concurrent actions on the same pair collide
// twice in a row.
func (e *ReactionEngine) Apply(ctx context.Context, videoID uuid.UUID, userID string, kind model.Kind) (model.Stance, error) {
	if !kind.IsValid() {
		return model.StanceNone, model.ErrInvalidKind
	}

	var lastErr error
	for attempt := 0; attempt < reactionApplyAttempts; attempt++ {
		if attempt > 0 {
			metrics.ReactionConflictRetriesTotal.Inc()
		}

		stance, err := e.applyOnce(ctx, videoID, userID, kind)
		if err == nil {
			return stance, nil
		}
		if !errors.Is(err, repository.ErrConflict) {
			return model.StanceNone, err
		}
		lastErr = err
	}

	return model.StanceNone, lastErr
}

func (e *ReactionEngine) applyOnce(ctx context.Context, videoID uuid.UUID, userID string, kind model.Kind) (model.Stance, error) {
	uow := e.uowf.New()
	if err := uow.Begin(ctx); err != nil {
		return model.StanceNone, err
	}
	defer uow.Rollback(ctx)

	// The video must exist; reacting to a removed video is NotFound, not a
	// silently dangling row.
	if _, err := uow.Videos().GetByID(ctx, videoID); err != nil {
		return model.StanceNone, err
	}

	current, err := uow.Reactions().GetForUpdate(ctx, videoID, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return model.StanceNone, err
	}

	currentStance := model.StanceNone
	if current != nil {
		currentStance = current.Kind.Stance()
	}
	next := model.NextStance(currentStance, kind)

	switch {
	case current == nil && next != model.StanceNone:
		reaction, err := model.NewReaction(videoID, userID, kind)
		if err != nil {
			return model.StanceNone, err
		}
		if err := uow.Reactions().Insert(ctx, reaction); err != nil {
			return model.StanceNone, err
		}
	case current != nil && next == model.StanceNone:
		if err := uow.Reactions().Delete(ctx, videoID, userID); err != nil {
			return model.StanceNone, err
		}
	case current != nil && next != currentStance:
		if err := uow.Reactions().UpdateKind(ctx, videoID, userID, kind); err != nil {
			return model.StanceNone, err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return model.StanceNone, fmt.Errorf("commit reaction: %w", err)
	}

	return next, nil
}
