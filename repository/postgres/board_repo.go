package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/whiteboardhq/backend/domain"
	"github.com/whiteboardhq/backend/repository"
)

type boardRepository struct {
	pool *pgxpool.Pool
}

// NewBoardRepository instantiates a Postgres-backed board repository.
func NewBoardRepository(pool *pgxpool.Pool) repository.BoardRepository {
	return &boardRepository{pool: pool}
}

// EnsureDefault lazily creates the single default board. ON CONFLICT makes
// concurrent first requests safe.
func (r *boardRepository) EnsureDefault(ctx context.Context) (*domain.Board, error) {
	const selectQuery = `
	SELECT id, name, owner_actor_id, visibility, created_at
	FROM boards
	WHERE id = $1
	`
	board, err := r.scanBoard(ctx, selectQuery, domain.DefaultBoardID)
	if err != nil {
		return nil, err
	}
	if board != nil {
		return board, nil
	}

	const insertQuery = `
	INSERT INTO boards (id, name, owner_actor_id, visibility, created_at)
	VALUES ($1, $2, NULL, $3, $4)
	ON CONFLICT (id) DO NOTHING
	`
	if _, err := r.pool.Exec(ctx, insertQuery,
		domain.DefaultBoardID,
		domain.DefaultBoardName,
		string(domain.VisibilityShared),
		time.Now().UTC(),
	); err != nil {
		return nil, err
	}

	board, err = r.scanBoard(ctx, selectQuery, domain.DefaultBoardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, domain.ErrBoardNotFound
	}
	return board, nil
}

func (r *boardRepository) scanBoard(ctx context.Context, query string, args ...interface{}) (*domain.Board, error) {
	var board domain.Board
	var visibility string
	row := r.pool.QueryRow(ctx, query, args...)
	if err := row.Scan(&board.ID, &board.Name, &board.OwnerActorID, &visibility, &board.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	board.Visibility = domain.Visibility(visibility)
	return &board, nil
}
