package reconcile

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/whiteboardhq/backend/domain"
)

func seedCache(t *testing.T, tasks ...domain.Task) *Cache {
	t.Helper()
	c := NewCache()
	c.Load(tasks)
	return c
}

func serverTask(id, text string) domain.Task {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return domain.Task{
		ID:         id,
		BoardID:    domain.DefaultBoardID,
		Text:       text,
		Priority:   domain.PriorityNormal,
		Visibility: domain.VisibilityShared,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestCreateConfirmReplacesTempID(t *testing.T) {
	c := NewCache()

	m, err := c.BeginCreate("buy milk", nil)
	if err != nil {
		t.Fatalf("BeginCreate: %v", err)
	}
	if !strings.HasPrefix(m.TempID(), "temp-") {
		t.Fatalf("temp id = %q", m.TempID())
	}
	if task, ok := c.Get(m.TempID()); !ok || task.Text != "buy milk" {
		t.Fatal("optimistic task missing before confirm")
	}
	if m.State() != StatePending {
		t.Fatalf("state = %v, want pending", m.State())
	}

	confirmed := serverTask("srv-1", "buy milk")
	m.Confirm(&confirmed)

	if m.State() != StateConfirmed {
		t.Fatalf("state = %v, want confirmed", m.State())
	}
	if _, ok := c.Get(m.TempID()); ok {
		t.Error("temp id still present after confirm")
	}
	if task, ok := c.Get("srv-1"); !ok || task.Text != "buy milk" {
		t.Error("server task not installed under its real id")
	}
}

func TestCreateRollbackRemovesTask(t *testing.T) {
	c := NewCache()

	m, err := c.BeginCreate("wont happen", nil)
	if err != nil {
		t.Fatalf("BeginCreate: %v", err)
	}
	m.Rollback()

	if m.State() != StateRolledBack {
		t.Fatalf("state = %v, want rolled back", m.State())
	}
	if _, ok := c.Get(m.TempID()); ok {
		t.Error("rolled-back create left the task behind")
	}
	if got := len(c.Snapshot()); got != 0 {
		t.Errorf("snapshot has %d tasks, want 0", got)
	}
}

func TestCreateValidatesText(t *testing.T) {
	c := NewCache()
	if _, err := c.BeginCreate("   ", nil); !errors.Is(err, domain.ErrEmptyText) {
		t.Fatalf("err = %v, want ErrEmptyText", err)
	}
}

func TestPatchRollbackRestoresPrior(t *testing.T) {
	c := seedCache(t, serverTask("t1", "original"))

	m, err := c.BeginPatch("t1", domain.SetDone{Done: true}, domain.SetText{Text: "edited"})
	if err != nil {
		t.Fatalf("BeginPatch: %v", err)
	}

	optimistic, _ := c.Get("t1")
	if !optimistic.Done || optimistic.Text != "edited" {
		t.Fatal("patch not applied optimistically")
	}

	m.Rollback()

	restored, _ := c.Get("t1")
	if restored.Done || restored.Text != "original" || restored.DoneAt != nil {
		t.Fatalf("rollback left %+v", restored)
	}
}

func TestPatchConfirmKeepsServerState(t *testing.T) {
	c := seedCache(t, serverTask("t1", "original"))

	m, err := c.BeginPatch("t1", domain.SetText{Text: "local edit"})
	if err != nil {
		t.Fatalf("BeginPatch: %v", err)
	}

	server := serverTask("t1", "server edit")
	m.Confirm(&server)

	got, _ := c.Get("t1")
	if got.Text != "server edit" {
		t.Errorf("text = %q, want server copy after confirm", got.Text)
	}
	// settled mutations ignore late calls
	m.Rollback()
	got, _ = c.Get("t1")
	if got.Text != "server edit" {
		t.Error("rollback after confirm must be a no-op")
	}
}

func TestPatchUnknownTask(t *testing.T) {
	c := NewCache()
	if _, err := c.BeginPatch("nope", domain.SetDone{Done: true}); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("err = %v, want ErrTaskNotFound", err)
	}
}

func TestDeleteLifecycle(t *testing.T) {
	c := seedCache(t, serverTask("t1", "doomed"))

	m, err := c.BeginDelete("t1")
	if err != nil {
		t.Fatalf("BeginDelete: %v", err)
	}
	if _, ok := c.Get("t1"); ok {
		t.Fatal("task still visible after optimistic delete")
	}

	m.Rollback()
	if task, ok := c.Get("t1"); !ok || task.Text != "doomed" {
		t.Fatal("rollback did not restore the deleted task")
	}

	m2, err := c.BeginDelete("t1")
	if err != nil {
		t.Fatalf("BeginDelete: %v", err)
	}
	m2.Confirm(nil)
	if _, ok := c.Get("t1"); ok {
		t.Error("confirmed delete resurrected the task")
	}
}

func TestSwapOrder(t *testing.T) {
	a := serverTask("a", "first")
	b := serverTask("b", "second")
	orderA, orderB := 100.0, 200.0
	a.Order = &orderA
	b.Order = &orderB
	c := seedCache(t, a, b)

	m, err := c.BeginSwapOrder("a", "b")
	if err != nil {
		t.Fatalf("BeginSwapOrder: %v", err)
	}

	gotA, _ := c.Get("a")
	gotB, _ := c.Get("b")
	if *gotA.Order != orderB || *gotB.Order != orderA {
		t.Fatalf("orders not swapped: a=%v b=%v", *gotA.Order, *gotB.Order)
	}

	// one leg failed remotely, both tasks roll back together
	m.Rollback()
	gotA, _ = c.Get("a")
	gotB, _ = c.Get("b")
	if *gotA.Order != orderA || *gotB.Order != orderB {
		t.Fatalf("rollback incomplete: a=%v b=%v", *gotA.Order, *gotB.Order)
	}
}

func TestSwapOrderRequiresDistinctTasks(t *testing.T) {
	c := seedCache(t, serverTask("a", "x"))
	if _, err := c.BeginSwapOrder("a", "a"); err == nil {
		t.Fatal("expected error for swapping a task with itself")
	}
	if _, err := c.BeginSwapOrder("a", "missing"); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("err = %v, want ErrTaskNotFound", err)
	}
}

func TestConfirmRefetchReplacesCache(t *testing.T) {
	c := seedCache(t, serverTask("t1", "old"), serverTask("t2", "other"))

	m, err := c.BeginPatch("t1", domain.SetOrder{Order: 5})
	if err != nil {
		t.Fatalf("BeginPatch: %v", err)
	}

	m.ConfirmRefetch([]domain.Task{serverTask("t1", "fresh")})

	if m.State() != StateConfirmed {
		t.Fatalf("state = %v", m.State())
	}
	snapshot := c.Snapshot()
	if len(snapshot) != 1 || snapshot[0].Text != "fresh" {
		t.Fatalf("snapshot = %v", snapshot)
	}
}

func TestIndependentMutations(t *testing.T) {
	c := seedCache(t, serverTask("t1", "one"), serverTask("t2", "two"))

	m1, err := c.BeginPatch("t1", domain.SetDone{Done: true})
	if err != nil {
		t.Fatal(err)
	}
	m2, err := c.BeginPatch("t2", domain.SetFocus{Focus: true})
	if err != nil {
		t.Fatal(err)
	}

	// t1 fails, t2 succeeds; outcomes stay isolated
	m1.Rollback()
	m2.Confirm(nil)

	got1, _ := c.Get("t1")
	got2, _ := c.Get("t2")
	if got1.Done {
		t.Error("rolled-back mutation leaked into t1")
	}
	if !got2.Focus {
		t.Error("confirmed mutation lost on t2")
	}
}

func TestSnapshotFeedsBoardView(t *testing.T) {
	a := serverTask("a", "later")
	b := serverTask("b", "focused")
	b.Focus = true
	c := seedCache(t, a, b)

	view := domain.BuildBoardView(c.Snapshot(), "")
	if len(view.Focus) != 1 || view.Focus[0].ID != "b" {
		t.Fatalf("focus = %v", view.Focus)
	}
	if len(view.Later) != 1 || view.Later[0].ID != "a" {
		t.Fatalf("later = %v", view.Later)
	}
	if view.OpenCount != 2 {
		t.Errorf("open count = %d", view.OpenCount)
	}
}
