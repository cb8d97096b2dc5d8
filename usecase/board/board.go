package board

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/whiteboardhq/backend/domain"
	"github.com/whiteboardhq/backend/repository"
	"github.com/whiteboardhq/backend/usecase"
)

// UseCase is the board membership registry: it registers actors on the
// default board and serves the roster used for assignment pickers and emoji
// availability.
type UseCase struct {
	boards  repository.BoardRepository
	members repository.MemberRepository
	roster  repository.RosterCache
	buffer  usecase.OperationBuffer
	logger  *zap.Logger
}

func New(boards repository.BoardRepository, members repository.MemberRepository, roster repository.RosterCache, buffer usecase.OperationBuffer, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		boards:  boards,
		members: members,
		roster:  roster,
		buffer:  buffer,
		logger:  logger,
	}
}

// Register binds an actor to the default board. Within a board each emoji is
// used by at most one member and each actor registers at most once.
func (uc *UseCase) Register(ctx context.Context, actorID, emoji, name string) (*domain.BoardMember, error) {
	actorID = strings.TrimSpace(actorID)
	emoji = strings.TrimSpace(emoji)
	name = strings.TrimSpace(name)
	if actorID == "" || emoji == "" || name == "" {
		return nil, domain.ErrMissingField
	}
	if len([]rune(name)) > domain.MaxMemberNameLength {
		name = string([]rune(name)[:domain.MaxMemberNameLength])
	}

	if err := uc.ensureBoard(ctx); err != nil {
		return nil, err
	}

	if existing, err := uc.members.FindByEmoji(ctx, domain.DefaultBoardID, emoji); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrEmojiTaken
	}

	if existing, err := uc.members.FindByActor(ctx, domain.DefaultBoardID, actorID); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrAlreadyMember
	}

	member := &domain.BoardMember{
		BoardID:   domain.DefaultBoardID,
		ActorID:   actorID,
		Emoji:     emoji,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.members.Create(ctx, member); err != nil {
		if uc.shouldBuffer(ctx, member) {
			uc.dropRoster(ctx)
			return member, nil
		}
		return nil, err
	}

	uc.dropRoster(ctx)
	return member, nil
}

// Roster returns the members of the default board, serving from the cache
// when it is warm and falling back to storage otherwise.
func (uc *UseCase) Roster(ctx context.Context) ([]domain.BoardMember, error) {
	if uc.roster != nil {
		if cached, err := uc.roster.Get(ctx, domain.DefaultBoardID); err != nil {
			uc.logger.Warn("roster cache read failed", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	if err := uc.ensureBoard(ctx); err != nil {
		return nil, err
	}
	members, err := uc.members.List(ctx, domain.DefaultBoardID)
	if err != nil {
		return nil, err
	}
	if members == nil {
		members = []domain.BoardMember{}
	}

	if uc.roster != nil {
		// ttl 0 defers to the cache's configured expiry
		if err := uc.roster.Set(ctx, domain.DefaultBoardID, members, 0); err != nil {
			uc.logger.Warn("roster cache write failed", zap.Error(err))
		}
	}
	return members, nil
}

func (uc *UseCase) ensureBoard(ctx context.Context) error {
	if uc.boards == nil {
		return nil
	}
	_, err := uc.boards.EnsureDefault(ctx)
	return err
}

func (uc *UseCase) dropRoster(ctx context.Context) {
	if uc.roster == nil {
		return
	}
	if err := uc.roster.Invalidate(ctx, domain.DefaultBoardID); err != nil {
		uc.logger.Warn("roster cache invalidation failed", zap.Error(err))
	}
}

func (uc *UseCase) shouldBuffer(ctx context.Context, member *domain.BoardMember) bool {
	if uc.buffer == nil {
		return false
	}
	if err := uc.buffer.BufferMember(ctx, member); err != nil {
		uc.logger.Error("failed to buffer member registration", zap.Error(err))
		return false
	}
	uc.logger.Warn("member registration buffered", zap.String("actor_id", member.ActorID))
	return true
}
