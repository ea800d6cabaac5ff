package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/akostin-dev/vidhost/internal/domain/repository"
)

// TxBeginner abstracts the pool for starting transactions.
// *pgxpool.Pool and pgxmock.PgxPoolIface both satisfy it.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// UnitOfWork implements repository.UnitOfWork over a single pgx transaction.
// All repositories it hands out share that transaction; Commit applies every
// pending write atomically.
type UnitOfWork struct {
	db TxBeginner
	tx pgx.Tx

	videos    *VideoRepository
	reactions *ReactionRepository
	users     *UserRepository
}

// Compile-time verification that UnitOfWork implements repository.UnitOfWork.
var _ repository.UnitOfWork = (*UnitOfWork)(nil)

// NewUnitOfWork creates an unopened unit of work. Call Begin before using the
// repository accessors.
func NewUnitOfWork(db TxBeginner) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// Begin opens the transactional scope.
// Returns repository.ErrInvalidState if the scope is already open; nesting is
// not supported.
func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("begin: transaction already open: %w", repository.ErrInvalidState)
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return storageErr("begin transaction", err)
	}

	u.tx = tx
	u.videos = NewVideoRepository(tx)
	u.reactions = NewReactionRepository(tx)
	u.users = NewUserRepository(tx)
	return nil
}

// Commit durably applies all writes issued since Begin, or fails atomically.
// Returns repository.ErrInvalidState if no scope is open.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return fmt.Errorf("commit: no open transaction: %w", repository.ErrInvalidState)
	}

	err := u.tx.Commit(ctx)
	u.clear()
	if err != nil {
		return storageErr("commit transaction", err)
	}
	return nil
}

// Rollback discards all pending writes. It is a no-op when no scope is open,
// so callers can defer it unconditionally after Begin.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	err := u.tx.Rollback(ctx)
	u.clear()
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return storageErr("rollback transaction", err)
	}
	return nil
}

// Videos returns the video repository bound to the open transaction.
func (u *UnitOfWork) Videos() repository.VideoRepository {
	return u.videos
}

// Reactions returns the reaction repository bound to the open transaction.
func (u *UnitOfWork) Reactions() repository.ReactionRepository {
	return u.reactions
}

// Users returns the user repository bound to the open transaction.
func (u *UnitOfWork) Users() repository.UserRepository {
	return u.users
}

func (u *UnitOfWork) clear() {
	u.tx = nil
	u.videos = nil
	u.reactions = nil
	u.users = nil
}

// UnitOfWorkFactory creates pool-backed units of work.
type UnitOfWorkFactory struct {
	db TxBeginner
}

var _ repository.UnitOfWorkFactory = (*UnitOfWorkFactory)(nil)

// NewUnitOfWorkFactory creates a factory producing units of work on db.
func NewUnitOfWorkFactory(db TxBeginner) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{db: db}
}

// New returns a fresh, unopened unit of work.
func (f *UnitOfWorkFactory) New() repository.UnitOfWork {
	return NewUnitOfWork(f.db)
}
