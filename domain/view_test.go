package domain

import (
	"math/rand"
	"testing"
	"time"
)

func ptrFloat(v float64) *float64 { return &v }

func ptrString(s string) *string { return &s }

func ptrTime(t time.Time) *time.Time { return &t }

func baseTime() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func TestBuildBoardViewPartitions(t *testing.T) {
	now := baseTime()
	tasks := []Task{
		{ID: "focus-1", Text: "a", Focus: true, Visibility: VisibilityShared, CreatedAt: now},
		{ID: "later-1", Text: "b", Visibility: VisibilityShared, CreatedAt: now.Add(time.Second)},
		{ID: "done-1", Text: "c", Done: true, Focus: true, Visibility: VisibilityShared, CreatedAt: now, DoneAt: ptrTime(now.Add(time.Hour))},
	}

	view := BuildBoardView(tasks, "")

	if len(view.Focus) != 1 || view.Focus[0].ID != "focus-1" {
		t.Errorf("focus section = %v", view.Focus)
	}
	if len(view.Later) != 1 || view.Later[0].ID != "later-1" {
		t.Errorf("later section = %v", view.Later)
	}
	if len(view.Done) != 1 || view.Done[0].ID != "done-1" {
		t.Errorf("done section = %v", view.Done)
	}
	if view.OpenCount != 2 {
		t.Errorf("open count = %d, want 2", view.OpenCount)
	}
}

func TestBuildBoardViewDoneWinsOverFocus(t *testing.T) {
	tasks := []Task{
		{ID: "t1", Done: true, Focus: true, Visibility: VisibilityShared, CreatedAt: baseTime()},
	}

	view := BuildBoardView(tasks, "")

	if len(view.Done) != 1 || len(view.Focus) != 0 {
		t.Fatalf("done+focus task must land in done section, got done=%d focus=%d", len(view.Done), len(view.Focus))
	}
	if view.OpenCount != 0 {
		t.Errorf("open count = %d, want 0", view.OpenCount)
	}
}

func TestBuildBoardViewActiveOrdering(t *testing.T) {
	now := baseTime()
	tasks := []Task{
		// explicit order beats creation time
		{ID: "third", Visibility: VisibilityShared, Order: ptrFloat(300), CreatedAt: now},
		{ID: "first", Visibility: VisibilityShared, Order: ptrFloat(100), CreatedAt: now.Add(time.Hour)},
		// no explicit order falls back to createdAt epoch millis
		{ID: "second", Visibility: VisibilityShared, CreatedAt: time.UnixMilli(200).UTC()},
	}

	view := BuildBoardView(tasks, "")

	got := []string{view.Later[0].ID, view.Later[1].ID, view.Later[2].ID}
	want := []string{"first", "second", "third"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("later order = %v, want %v", got, want)
		}
	}
}

func TestBuildBoardViewDoneOrdering(t *testing.T) {
	now := baseTime()
	tasks := []Task{
		{ID: "old", Done: true, Visibility: VisibilityShared, DoneAt: ptrTime(now.Add(-time.Hour)), UpdatedAt: now},
		// missing doneAt falls back to updatedAt
		{ID: "newest", Done: true, Visibility: VisibilityShared, UpdatedAt: now.Add(time.Hour)},
		{ID: "mid", Done: true, Visibility: VisibilityShared, DoneAt: ptrTime(now), UpdatedAt: now.Add(2 * time.Hour)},
	}

	view := BuildBoardView(tasks, "")

	got := []string{view.Done[0].ID, view.Done[1].ID, view.Done[2].ID}
	want := []string{"newest", "mid", "old"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("done order = %v, want %v", got, want)
		}
	}
}

func TestBuildBoardViewOrderIndependentOfInput(t *testing.T) {
	now := baseTime()
	tasks := []Task{
		{ID: "a", Visibility: VisibilityShared, Order: ptrFloat(10), CreatedAt: now},
		{ID: "b", Visibility: VisibilityShared, Order: ptrFloat(20), CreatedAt: now},
		{ID: "c", Visibility: VisibilityShared, Order: ptrFloat(30), CreatedAt: now},
		{ID: "d", Done: true, Visibility: VisibilityShared, DoneAt: ptrTime(now), CreatedAt: now},
		{ID: "e", Done: true, Visibility: VisibilityShared, DoneAt: ptrTime(now.Add(time.Minute)), CreatedAt: now},
	}

	want := BuildBoardView(tasks, "")

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := make([]Task, len(tasks))
		copy(shuffled, tasks)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		got := BuildBoardView(shuffled, "")
		for s, section := range [][]Task{got.Focus, got.Later, got.Done} {
			wantSection := [][]Task{want.Focus, want.Later, want.Done}[s]
			if len(section) != len(wantSection) {
				t.Fatalf("section %d length changed under permutation", s)
			}
			for j := range section {
				if section[j].ID != wantSection[j].ID {
					t.Fatalf("section %d order changed under permutation: %v", s, section)
				}
			}
		}
	}
}

func TestBuildBoardViewVisibility(t *testing.T) {
	now := baseTime()
	tasks := []Task{
		{ID: "shared", Visibility: VisibilityShared, CreatedAt: now},
		{ID: "mine", Visibility: VisibilityPrivate, OwnerActorID: ptrString("alice"), CreatedAt: now},
		{ID: "theirs", Visibility: VisibilityPrivate, OwnerActorID: ptrString("bob"), CreatedAt: now},
		{ID: "orphan", Visibility: VisibilityPrivate, CreatedAt: now},
	}

	cases := []struct {
		name   string
		viewer string
		want   map[string]bool
	}{
		{"owner sees own private", "alice", map[string]bool{"shared": true, "mine": true}},
		{"other viewer sees shared only", "carol", map[string]bool{"shared": true}},
		{"anonymous sees shared only", "", map[string]bool{"shared": true}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			view := BuildBoardView(tasks, tc.viewer)
			seen := map[string]bool{}
			for _, section := range [][]Task{view.Focus, view.Later, view.Done} {
				for _, task := range section {
					seen[task.ID] = true
				}
			}
			if len(seen) != len(tc.want) {
				t.Fatalf("visible ids = %v, want %v", seen, tc.want)
			}
			for id := range tc.want {
				if !seen[id] {
					t.Errorf("expected %s to be visible", id)
				}
			}
			if view.OpenCount != len(tc.want) {
				t.Errorf("open count = %d, want %d", view.OpenCount, len(tc.want))
			}
		})
	}
}

func TestBuildBoardViewEmptyInput(t *testing.T) {
	view := BuildBoardView(nil, "alice")
	if view.Focus == nil || view.Later == nil || view.Done == nil {
		t.Fatal("sections must be non-nil empty slices")
	}
	if view.OpenCount != 0 {
		t.Errorf("open count = %d, want 0", view.OpenCount)
	}
}

func TestFilterVisible(t *testing.T) {
	tasks := []Task{
		{ID: "a", Visibility: VisibilityShared},
		{ID: "b", Visibility: VisibilityPrivate, OwnerActorID: ptrString("alice")},
		{ID: "c", Visibility: VisibilityShared},
	}

	got := FilterVisible(tasks, "bob")
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Fatalf("filtered = %v", got)
	}
}
