package domain

import "sort"

// BoardView is the per-viewer presentation of a board: the visible tasks
// partitioned into the three sections the UI renders.
type BoardView struct {
	Focus     []Task `json:"focus"`
	Later     []Task `json:"later"`
	Done      []Task `json:"done"`
	OpenCount int    `json:"openCount"`
}

// BuildBoardView computes the visible, partitioned, ordered view of tasks for
// a viewer. Private tasks owned by someone else are dropped; an empty viewer
// sees shared tasks only. Active sections sort ascending by effective order
// (the user's manual ordering, oldest first as the fallback); the done section
// sorts descending by effective completion time, newest-finished first. Both
// sorts are stable, so input order breaks ties.
func BuildBoardView(tasks []Task, viewerActorID string) BoardView {
	view := BoardView{
		Focus: []Task{},
		Later: []Task{},
		Done:  []Task{},
	}
	for _, t := range tasks {
		if !t.VisibleTo(viewerActorID) {
			continue
		}
		switch {
		case t.Done:
			view.Done = append(view.Done, t)
		case t.Focus:
			view.Focus = append(view.Focus, t)
		default:
			view.Later = append(view.Later, t)
		}
	}

	sortByEffectiveOrder(view.Focus)
	sortByEffectiveOrder(view.Later)
	sort.SliceStable(view.Done, func(i, j int) bool {
		return view.Done[i].EffectiveDoneAt().After(view.Done[j].EffectiveDoneAt())
	})

	view.OpenCount = len(view.Focus) + len(view.Later)
	return view
}

// FilterVisible keeps only the tasks the viewer may see, preserving order.
func FilterVisible(tasks []Task, viewerActorID string) []Task {
	visible := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.VisibleTo(viewerActorID) {
			visible = append(visible, t)
		}
	}
	return visible
}

func sortByEffectiveOrder(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].EffectiveOrder() < tasks[j].EffectiveOrder()
	})
}
