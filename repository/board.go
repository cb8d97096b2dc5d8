package repository

import (
	"context"
	"time"

	"github.com/whiteboardhq/backend/domain"
)

type BoardRepository interface {
	// EnsureDefault creates the default board record if it does not exist yet
	// and returns it. Safe to call on every request.
	EnsureDefault(ctx context.Context) (*domain.Board, error)
}

type MemberRepository interface {
	List(ctx context.Context, boardID string) ([]domain.BoardMember, error)
	FindByEmoji(ctx context.Context, boardID, emoji string) (*domain.BoardMember, error)
	FindByActor(ctx context.Context, boardID, actorID string) (*domain.BoardMember, error)
	Create(ctx context.Context, member *domain.BoardMember) error
}

// RosterCache is an optional read-through cache for the board roster. A nil
// cache is valid; lookups then always hit the member repository.
type RosterCache interface {
	Get(ctx context.Context, boardID string) ([]domain.BoardMember, error)
	Set(ctx context.Context, boardID string, members []domain.BoardMember, ttl time.Duration) error
	Invalidate(ctx context.Context, boardID string) error
}
