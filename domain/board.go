package domain

import "time"

// Default board constants. Exactly one board exists in the current scope; it
// is created lazily on first access.
const (
	DefaultBoardID   = "home"
	DefaultBoardName = "Home"
)

// Board is a named collaborative task list.
type Board struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	OwnerActorID *string    `json:"ownerActorId"`
	Visibility   Visibility `json:"visibility"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// BoardMember binds one actor to one board with a unique emoji. Members are
// created at actor-setup time and never mutated or removed.
type BoardMember struct {
	ID        string    `json:"-"`
	BoardID   string    `json:"-"`
	ActorID   string    `json:"actorId"`
	Emoji     string    `json:"emoji"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"-"`
}

// MaxMemberNameLength bounds member display names after trimming.
const MaxMemberNameLength = 20
