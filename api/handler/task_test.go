package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/valyala/fasthttp"

	"github.com/whiteboardhq/backend/domain"
	taskUC "github.com/whiteboardhq/backend/usecase/task"
)

type fakeTaskRepo struct {
	tasks map[string]domain.Task
}

func (r *fakeTaskRepo) GetByID(_ context.Context, id string) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return &t, nil
}

func (r *fakeTaskRepo) List(context.Context, string) ([]domain.Task, error) {
	var out []domain.Task
	for _, t := range r.tasks {
		out = append(out, t)
	}
	return out, nil
}

func (r *fakeTaskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	r.tasks[task.ID] = *task
	return task, nil
}

func (r *fakeTaskRepo) Apply(_ context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	patch.ApplyTo(&t)
	r.tasks[id] = t
	return &t, nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func newTaskHandler(repo *fakeTaskRepo) *TaskHandler {
	uc := taskUC.New(repo, nil, nil, nil)
	return NewTaskHandler(uc, nil, nil, false)
}

func TestDeleteTaskRespondsNoContentWithoutBody(t *testing.T) {
	repo := &fakeTaskRepo{tasks: map[string]domain.Task{
		"t1": {ID: "t1", Text: "doomed"},
	}}
	h := newTaskHandler(repo)

	var ctx fasthttp.RequestCtx
	ctx.SetUserValue("id", "t1")
	h.DeleteTask(&ctx)

	if got := ctx.Response.StatusCode(); got != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", got, http.StatusNoContent)
	}
	if body := ctx.Response.Body(); len(body) != 0 {
		t.Errorf("204 response carried a body: %q", body)
	}
	if _, ok := repo.tasks["t1"]; ok {
		t.Error("task not deleted")
	}
}

func TestDeleteTaskUnknownID(t *testing.T) {
	h := newTaskHandler(&fakeTaskRepo{tasks: map[string]domain.Task{}})

	var ctx fasthttp.RequestCtx
	ctx.SetUserValue("id", "missing")
	h.DeleteTask(&ctx)

	if got := ctx.Response.StatusCode(); got != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", got, http.StatusNotFound)
	}
	if len(ctx.Response.Body()) == 0 {
		t.Error("error response missing envelope body")
	}
}
