package board

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/whiteboardhq/backend/domain"
)

type fakeBoardRepo struct{}

func (fakeBoardRepo) EnsureDefault(context.Context) (*domain.Board, error) {
	return &domain.Board{ID: domain.DefaultBoardID, Name: domain.DefaultBoardName}, nil
}

type fakeMemberRepo struct {
	members   []domain.BoardMember
	createErr error
	listCalls int
}

func (r *fakeMemberRepo) List(_ context.Context, boardID string) ([]domain.BoardMember, error) {
	r.listCalls++
	var out []domain.BoardMember
	for _, m := range r.members {
		if m.BoardID == boardID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMemberRepo) FindByEmoji(_ context.Context, boardID, emoji string) (*domain.BoardMember, error) {
	for _, m := range r.members {
		if m.BoardID == boardID && m.Emoji == emoji {
			found := m
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeMemberRepo) FindByActor(_ context.Context, boardID, actorID string) (*domain.BoardMember, error) {
	for _, m := range r.members {
		if m.BoardID == boardID && m.ActorID == actorID {
			found := m
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeMemberRepo) Create(_ context.Context, member *domain.BoardMember) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.members = append(r.members, *member)
	return nil
}

type fakeRosterCache struct {
	stored      []domain.BoardMember
	warm        bool
	invalidated int
	lastTTL     time.Duration
}

func (c *fakeRosterCache) Get(_ context.Context, _ string) ([]domain.BoardMember, error) {
	if !c.warm {
		return nil, nil
	}
	return c.stored, nil
}

func (c *fakeRosterCache) Set(_ context.Context, _ string, members []domain.BoardMember, ttl time.Duration) error {
	c.stored = members
	c.warm = true
	c.lastTTL = ttl
	return nil
}

func (c *fakeRosterCache) Invalidate(context.Context, string) error {
	c.warm = false
	c.stored = nil
	c.invalidated++
	return nil
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	repo := &fakeMemberRepo{}
	cache := &fakeRosterCache{}
	uc := New(fakeBoardRepo{}, repo, cache, nil, nil)

	member, err := uc.Register(ctx, " alice ", " 🦊 ", " Alice ")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if member.ActorID != "alice" || member.Emoji != "🦊" || member.Name != "Alice" {
		t.Errorf("member = %+v, want trimmed fields", member)
	}
	if member.BoardID != domain.DefaultBoardID {
		t.Errorf("boardID = %q", member.BoardID)
	}
	if len(repo.members) != 1 {
		t.Fatalf("stored members = %d", len(repo.members))
	}
	if cache.invalidated != 1 {
		t.Errorf("roster cache not invalidated after register")
	}
}

func TestRegisterMissingFields(t *testing.T) {
	ctx := context.Background()
	uc := New(fakeBoardRepo{}, &fakeMemberRepo{}, nil, nil, nil)

	cases := []struct {
		name                  string
		actorID, emoji, label string
	}{
		{"no actor", "", "🦊", "Alice"},
		{"no emoji", "alice", "", "Alice"},
		{"no name", "alice", "🦊", ""},
		{"whitespace name", "alice", "🦊", "   "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := uc.Register(ctx, tc.actorID, tc.emoji, tc.label); !errors.Is(err, domain.ErrMissingField) {
				t.Fatalf("err = %v, want ErrMissingField", err)
			}
		})
	}
}

func TestRegisterConflicts(t *testing.T) {
	ctx := context.Background()
	repo := &fakeMemberRepo{}
	uc := New(fakeBoardRepo{}, repo, nil, nil, nil)

	if _, err := uc.Register(ctx, "alice", "🦊", "Alice"); err != nil {
		t.Fatalf("first register: %v", err)
	}

	if _, err := uc.Register(ctx, "bob", "🦊", "Bob"); !errors.Is(err, domain.ErrEmojiTaken) {
		t.Fatalf("err = %v, want ErrEmojiTaken", err)
	}
	if _, err := uc.Register(ctx, "alice", "🐢", "Alice Again"); !errors.Is(err, domain.ErrAlreadyMember) {
		t.Fatalf("err = %v, want ErrAlreadyMember", err)
	}
	if len(repo.members) != 1 {
		t.Errorf("conflicting registrations must not persist, got %d members", len(repo.members))
	}
}

func TestRegisterTruncatesLongNames(t *testing.T) {
	ctx := context.Background()
	uc := New(fakeBoardRepo{}, &fakeMemberRepo{}, nil, nil, nil)

	member, err := uc.Register(ctx, "alice", "🦊", strings.Repeat("名", domain.MaxMemberNameLength+5))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if got := len([]rune(member.Name)); got != domain.MaxMemberNameLength {
		t.Errorf("name length = %d runes, want %d", got, domain.MaxMemberNameLength)
	}
}

func TestRosterReadThrough(t *testing.T) {
	ctx := context.Background()
	repo := &fakeMemberRepo{members: []domain.BoardMember{
		{BoardID: domain.DefaultBoardID, ActorID: "alice", Emoji: "🦊", Name: "Alice"},
	}}
	cache := &fakeRosterCache{}
	uc := New(fakeBoardRepo{}, repo, cache, nil, nil)

	first, err := uc.Roster(ctx)
	if err != nil {
		t.Fatalf("Roster: %v", err)
	}
	if len(first) != 1 || first[0].ActorID != "alice" {
		t.Fatalf("roster = %v", first)
	}
	if !cache.warm {
		t.Fatal("cache not populated after miss")
	}
	// the cache owns the configured expiry, the usecase must not override it
	if cache.lastTTL != 0 {
		t.Errorf("Set called with ttl %v, want 0", cache.lastTTL)
	}

	// second read must come from the cache
	second, err := uc.Roster(ctx)
	if err != nil {
		t.Fatalf("Roster: %v", err)
	}
	if repo.listCalls != 1 {
		t.Errorf("storage hit %d times, want 1", repo.listCalls)
	}
	if len(second) != 1 {
		t.Fatalf("cached roster = %v", second)
	}
}

func TestRosterEmptyBoard(t *testing.T) {
	ctx := context.Background()
	uc := New(fakeBoardRepo{}, &fakeMemberRepo{}, nil, nil, nil)

	roster, err := uc.Roster(ctx)
	if err != nil {
		t.Fatalf("Roster: %v", err)
	}
	if roster == nil {
		t.Fatal("empty roster must be a non-nil slice")
	}
	if len(roster) != 0 {
		t.Fatalf("roster = %v", roster)
	}
}

func TestRegisterBuffersWhenStorageDown(t *testing.T) {
	ctx := context.Background()
	repo := &fakeMemberRepo{createErr: errors.New("connection refused")}
	buffer := &memberBuffer{}
	uc := New(fakeBoardRepo{}, repo, nil, buffer, nil)

	member, err := uc.Register(ctx, "alice", "🦊", "Alice")
	if err != nil {
		t.Fatalf("Register with buffer: %v", err)
	}
	if member.ActorID != "alice" {
		t.Errorf("echoed member = %+v", member)
	}
	if len(buffer.members) != 1 {
		t.Fatalf("buffered members = %d", len(buffer.members))
	}
}

type memberBuffer struct {
	members []domain.BoardMember
}

func (b *memberBuffer) BufferTask(context.Context, string, *domain.Task) error { return nil }

func (b *memberBuffer) BufferTaskPatch(context.Context, string, domain.TaskPatch) error { return nil }

func (b *memberBuffer) BufferMember(_ context.Context, member *domain.BoardMember) error {
	b.members = append(b.members, *member)
	return nil
}
