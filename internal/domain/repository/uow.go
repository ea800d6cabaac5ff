package repository

import "context"

// UnitOfWork groups repository writes into one atomic commit. All repositories
// obtained from the same UnitOfWork share one transaction; writes become
// visible to other transactions only after Commit.
//
// Lifecycle: Begin opens the transactional scope, Commit applies every write
// issued since Begin or fails atomically, Rollback discards pending writes.
// Nesting is not supported: Begin on an already-open unit of work returns
// ErrInvalidState, as does Commit without an open scope. Rollback after the
// scope has ended is a no-op, so it is safe to defer.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	// Videos returns the video repository bound to the open transaction.
	// Must only be called between Begin and Commit/Rollback.
	Videos() VideoRepository

	// Reactions returns the reaction repository bound to the open transaction.
	Reactions() ReactionRepository

	// Users returns the user repository bound to the open transaction.
	Users() UserRepository
}

// UnitOfWorkFactory creates fresh, unopened units of work. Every mutating
// service operation obtains exactly one and commits it before returning.
type UnitOfWorkFactory interface {
	New() UnitOfWork
}
