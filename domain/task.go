package domain

import (
	"strings"
	"time"
)

// Priority is an informational task weight. It does not affect ordering.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityNormal Priority = "normal"
	PriorityLow    Priority = "low"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityNormal, PriorityLow:
		return true
	}
	return false
}

// Visibility controls who can see a task on the board.
type Visibility string

const (
	VisibilityShared  Visibility = "shared"
	VisibilityPrivate Visibility = "private"
)

func (v Visibility) Valid() bool {
	return v == VisibilityShared || v == VisibilityPrivate
}

// MaxTextLength bounds task text after trimming.
const MaxTextLength = 200

// Task represents a single item on the shared whiteboard.
type Task struct {
	ID              string     `json:"id"`
	BoardID         string     `json:"boardId"`
	Text            string     `json:"text"`
	Done            bool       `json:"done"`
	Focus           bool       `json:"focus"`
	Priority        Priority   `json:"priority"`
	Visibility      Visibility `json:"visibility"`
	OwnerActorID    *string    `json:"ownerActorId"`
	AssigneeActorID *string    `json:"assigneeActorId"`
	Order           *float64   `json:"order,omitempty"`
	DueDate         *time.Time `json:"dueDate,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
	DoneAt          *time.Time `json:"doneAt"`
}

// EffectiveOrder is the sort key for active tasks: the explicit order value
// when set, otherwise the creation timestamp in epoch milliseconds.
func (t *Task) EffectiveOrder() float64 {
	if t.Order != nil {
		return *t.Order
	}
	return float64(t.CreatedAt.UnixMilli())
}

// EffectiveDoneAt is the sort key for completed tasks: doneAt when set,
// otherwise the last update time.
func (t *Task) EffectiveDoneAt() time.Time {
	if t.DoneAt != nil {
		return *t.DoneAt
	}
	return t.UpdatedAt
}

// VisibleTo reports whether the given viewer may see the task. Private tasks
// are visible only to their owner; an empty viewer sees shared tasks only.
func (t *Task) VisibleTo(viewerActorID string) bool {
	if t.Visibility != VisibilityPrivate {
		return true
	}
	return t.OwnerActorID != nil && viewerActorID != "" && *t.OwnerActorID == viewerActorID
}

// ValidateText trims the text and enforces the non-empty and length rules.
// The returned string is the trimmed value to persist.
func ValidateText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", ErrEmptyText
	}
	if len([]rune(trimmed)) > MaxTextLength {
		return "", ErrTextTooLong
	}
	return trimmed, nil
}

// ApplyDefaults fills fields that may be absent on records written before the
// board/visibility features existed. It is the storage-boundary decode rule
// and must not run on write paths.
func (t *Task) ApplyDefaults() {
	if t.BoardID == "" {
		t.BoardID = DefaultBoardID
	}
	if t.Priority == "" {
		t.Priority = PriorityNormal
	}
	if t.Visibility == "" {
		t.Visibility = VisibilityShared
	}
}
