package domain

import "time"

// TaskChange is one explicit, independently-validated mutation of a task
// field. A PATCH request decodes into a list of changes; invalid optional
// fields never become changes at all.
type TaskChange interface {
	isTaskChange()
}

type SetDone struct{ Done bool }

type SetFocus struct{ Focus bool }

type SetPriority struct{ Priority Priority }

type SetVisibility struct{ Visibility Visibility }

// SetAssignee assigns the task to an actor, or clears the assignment when
// ActorID is nil.
type SetAssignee struct{ ActorID *string }

type SetOrder struct{ Order float64 }

type SetText struct{ Text string }

// SetDueDate sets or clears the date-only due date.
type SetDueDate struct{ Date *time.Time }

func (SetDone) isTaskChange()       {}
func (SetFocus) isTaskChange()      {}
func (SetPriority) isTaskChange()   {}
func (SetVisibility) isTaskChange() {}
func (SetAssignee) isTaskChange()   {}
func (SetOrder) isTaskChange()      {}
func (SetText) isTaskChange()       {}
func (SetDueDate) isTaskChange()    {}

// TaskPatch is the compiled field subset written by a single update. Nil
// pointers (or false Has flags for nullable fields) mean "leave the column
// untouched"; every patch stamps UpdatedAt.
type TaskPatch struct {
	Text       *string
	Done       *bool
	DoneAt     *time.Time // meaningful only when Done is set
	Focus      *bool
	Priority   *Priority
	Visibility *Visibility

	HasAssignee bool
	Assignee    *string

	Order *float64

	HasDueDate bool
	DueDate    *time.Time

	UpdatedAt time.Time
}

// IsEmpty reports whether the patch updates nothing besides UpdatedAt.
func (p *TaskPatch) IsEmpty() bool {
	return p.Text == nil &&
		p.Done == nil &&
		p.Focus == nil &&
		p.Priority == nil &&
		p.Visibility == nil &&
		!p.HasAssignee &&
		p.Order == nil &&
		!p.HasDueDate
}

// BuildPatch compiles change variants into a TaskPatch. Later changes to the
// same field win. Invalid enum values are dropped rather than rejected; text
// content is the one hard validation error. Setting done also couples doneAt:
// done=true stamps it with now, done=false clears it. A patch that ends up
// empty is rejected with ErrNoFieldsToUpdate.
func BuildPatch(now time.Time, changes []TaskChange) (TaskPatch, error) {
	patch := TaskPatch{UpdatedAt: now}
	for _, change := range changes {
		switch c := change.(type) {
		case SetDone:
			done := c.Done
			patch.Done = &done
			if done {
				doneAt := now
				patch.DoneAt = &doneAt
			} else {
				patch.DoneAt = nil
			}
		case SetFocus:
			focus := c.Focus
			patch.Focus = &focus
		case SetPriority:
			if !c.Priority.Valid() {
				continue
			}
			priority := c.Priority
			patch.Priority = &priority
		case SetVisibility:
			if !c.Visibility.Valid() {
				continue
			}
			visibility := c.Visibility
			patch.Visibility = &visibility
		case SetAssignee:
			patch.HasAssignee = true
			patch.Assignee = c.ActorID
		case SetOrder:
			order := c.Order
			patch.Order = &order
		case SetText:
			text, err := ValidateText(c.Text)
			if err != nil {
				return TaskPatch{}, err
			}
			patch.Text = &text
		case SetDueDate:
			patch.HasDueDate = true
			patch.DueDate = c.Date
		}
	}
	if patch.IsEmpty() {
		return TaskPatch{}, ErrNoFieldsToUpdate
	}
	return patch, nil
}

// ApplyTo mutates the task in memory the way the persisted update would.
// Used by the optimistic client cache and by tests; the store remains the
// source of truth.
func (p *TaskPatch) ApplyTo(t *Task) {
	if p.Text != nil {
		t.Text = *p.Text
	}
	if p.Done != nil {
		t.Done = *p.Done
		t.DoneAt = p.DoneAt
	}
	if p.Focus != nil {
		t.Focus = *p.Focus
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Visibility != nil {
		t.Visibility = *p.Visibility
	}
	if p.HasAssignee {
		t.AssigneeActorID = p.Assignee
	}
	if p.Order != nil {
		t.Order = p.Order
	}
	if p.HasDueDate {
		t.DueDate = p.DueDate
	}
	t.UpdatedAt = p.UpdatedAt
}
