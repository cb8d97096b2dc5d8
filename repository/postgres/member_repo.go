package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/whiteboardhq/backend/domain"
	"github.com/whiteboardhq/backend/repository"
)

type memberRepository struct {
	pool *pgxpool.Pool
}

// NewMemberRepository instantiates a Postgres-backed board member repository.
func NewMemberRepository(pool *pgxpool.Pool) repository.MemberRepository {
	return &memberRepository{pool: pool}
}

func (r *memberRepository) List(ctx context.Context, boardID string) ([]domain.BoardMember, error) {
	const query = `
	SELECT id, board_id, actor_id, emoji, name, created_at
	FROM board_members
	WHERE board_id = $1
	ORDER BY created_at
	`
	rows, err := r.pool.Query(ctx, query, boardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.BoardMember
	for rows.Next() {
		var m domain.BoardMember
		if err := rows.Scan(&m.ID, &m.BoardID, &m.ActorID, &m.Emoji, &m.Name, &m.CreatedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *memberRepository) FindByEmoji(ctx context.Context, boardID, emoji string) (*domain.BoardMember, error) {
	const query = `
	SELECT id, board_id, actor_id, emoji, name, created_at
	FROM board_members
	WHERE board_id = $1 AND emoji = $2
	`
	return r.findOne(ctx, query, boardID, emoji)
}

func (r *memberRepository) FindByActor(ctx context.Context, boardID, actorID string) (*domain.BoardMember, error) {
	const query = `
	SELECT id, board_id, actor_id, emoji, name, created_at
	FROM board_members
	WHERE board_id = $1 AND actor_id = $2
	`
	return r.findOne(ctx, query, boardID, actorID)
}

func (r *memberRepository) Create(ctx context.Context, member *domain.BoardMember) error {
	if member == nil {
		return domain.ErrInvalidPayload
	}
	if member.ID == "" {
		member.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO board_members (id, board_id, actor_id, emoji, name, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.pool.Exec(ctx, query,
		member.ID,
		member.BoardID,
		member.ActorID,
		member.Emoji,
		member.Name,
		member.CreatedAt,
	)
	return err
}

func (r *memberRepository) findOne(ctx context.Context, query string, args ...interface{}) (*domain.BoardMember, error) {
	var m domain.BoardMember
	row := r.pool.QueryRow(ctx, query, args...)
	if err := row.Scan(&m.ID, &m.BoardID, &m.ActorID, &m.Emoji, &m.Name, &m.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}
