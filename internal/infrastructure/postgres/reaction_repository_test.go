package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"

	"github.com/akostin-dev/vidhost/internal/domain/model"
	"github.com/akostin-dev/vidhost/internal/domain/repository"
)

func reactionRows(reactions ...*model.Reaction) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{"video_id", "user_id", "kind", "created_at", "updated_at"})
	for _, rc := range reactions {
		rows.AddRow(rc.VideoID, rc.UserID, rc.Kind.String(), rc.CreatedAt, rc.UpdatedAt)
	}
	return rows
}

func TestReactionRepository_Get(t *testing.T) {
	reaction, err := model.NewReaction(uuid.New(), "user-1", model.KindDislike)
	if err != nil {
		t.Fatalf("failed to create reaction: %v", err)
	}

	tests := []struct {
		name    string
		mockFn  func(mock pgxmock.PgxPoolIface)
		wantErr error
	}{
		{
			name: "found",
			mockFn: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("SELECT (.+) FROM reactions").
					WithArgs(reaction.VideoID, reaction.UserID).
					WillReturnRows(reactionRows(reaction))
			},
			wantErr: nil,
		},
		{
			name: "no reaction",
			mockFn: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("SELECT (.+) FROM reactions").
					WithArgs(reaction.VideoID, reaction.UserID).
					WillReturnRows(reactionRows())
			},
			wantErr: repository.ErrNotFound,
		},
		{
			name: "database error",
			mockFn: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("SELECT (.+) FROM reactions").
					WithArgs(reaction.VideoID, reaction.UserID).
					WillReturnError(errors.New("connection refused"))
			},
			wantErr: repository.ErrStorageUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			if err != nil {
				t.Fatalf("failed to create mock: %v", err)
			}
			defer mock.Close()

			tt.mockFn(mock)

			repo := NewReactionRepository(mock)
			got, err := repo.Get(context.Background(), reaction.VideoID, reaction.UserID)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Get() error = %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("Get() unexpected error: %v", err)
			}
			if got.Kind != model.KindDislike {
				t.Errorf("Get() Kind = %v, want DISLIKE", got.Kind)
			}
		})
	}
}

// A concurrent first reaction loses on the primary key; the engine reads the
// unique violation as its retry signal.
func TestReactionRepository_Insert_Conflict(t *testing.T) {
	reaction, err := model.NewReaction(uuid.New(), "user-1", model.KindLike)
	if err != nil {
		t.Fatalf("failed to create reaction: %v", err)
	}

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec("INSERT INTO reactions").
		WithArgs(reaction.VideoID, reaction.UserID, "LIKE", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	repo := NewReactionRepository(mock)
	if err := repo.Insert(context.Background(), reaction); !errors.Is(err, repository.ErrConflict) {
		t.Errorf("Insert() error = %v, want ErrConflict", err)
	}
}

func TestReactionRepository_UpdateKind(t *testing.T) {
	videoID := uuid.New()

	tests := []struct {
		name    string
		rows    int64
		wantErr error
	}{
		{"flipped", 1, nil},
		{"no reaction", 0, repository.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			if err != nil {
				t.Fatalf("failed to create mock: %v", err)
			}
			defer mock.Close()

			mock.ExpectExec("UPDATE reactions").
				WithArgs(videoID, "user-1", "DISLIKE", pgxmock.AnyArg()).
				WillReturnResult(pgxmock.NewResult("UPDATE", tt.rows))

			repo := NewReactionRepository(mock)
			err = repo.UpdateKind(context.Background(), videoID, "user-1", model.KindDislike)

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("UpdateKind() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestReactionRepository_Delete(t *testing.T) {
	videoID := uuid.New()

	tests := []struct {
		name    string
		rows    int64
		wantErr error
	}{
		{"deleted", 1, nil},
		{"no reaction", 0, repository.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			if err != nil {
				t.Fatalf("failed to create mock: %v", err)
			}
			defer mock.Close()

			mock.ExpectExec("DELETE FROM reactions").
				WithArgs(videoID, "user-1").
				WillReturnResult(pgxmock.NewResult("DELETE", tt.rows))

			repo := NewReactionRepository(mock)
			err = repo.Delete(context.Background(), videoID, "user-1")

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Delete() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestReactionRepository_ListVideoIDsByUserAndKind(t *testing.T) {
	first, second := uuid.New(), uuid.New()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery("SELECT video_id").
		WithArgs("user-1", "LIKE").
		WillReturnRows(pgxmock.NewRows([]string{"video_id"}).AddRow(first).AddRow(second))

	repo := NewReactionRepository(mock)
	ids, err := repo.ListVideoIDsByUserAndKind(context.Background(), "user-1", model.KindLike)
	if err != nil {
		t.Fatalf("ListVideoIDsByUserAndKind() unexpected error: %v", err)
	}

	if len(ids) != 2 || ids[0] != first || ids[1] != second {
		t.Errorf("ListVideoIDsByUserAndKind() = %v, want [%s %s]", ids, first, second)
	}
}

func TestReactionRepository_CountByVideoAndKind(t *testing.T) {
	videoID := uuid.New()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(videoID, "DISLIKE").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(7)))

	repo := NewReactionRepository(mock)
	count, err := repo.CountByVideoAndKind(context.Background(), videoID, model.KindDislike)
	if err != nil {
		t.Fatalf("CountByVideoAndKind() unexpected error: %v", err)
	}
	if count != 7 {
		t.Errorf("CountByVideoAndKind() = %d, want 7", count)
	}
}
