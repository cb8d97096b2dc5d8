package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/whiteboardhq/backend/api/transport"
	"github.com/whiteboardhq/backend/domain"
	"github.com/whiteboardhq/backend/internal/middleware"
	"github.com/whiteboardhq/backend/pkg/httpcontext"
	taskUC "github.com/whiteboardhq/backend/usecase/task"
)

type TaskHandler struct {
	baseHandler
	uc *taskUC.UseCase

	// trustClientFilter preserves the legacy contract where private tasks of
	// other actors are returned and the client is trusted to hide them.
	trustClientFilter bool
}

func NewTaskHandler(uc *taskUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger, trustClientFilter bool) *TaskHandler {
	return &TaskHandler{
		baseHandler:       newBaseHandler(adapter, logger),
		uc:                uc,
		trustClientFilter: trustClientFilter,
	}
}

// @Summary List board tasks
// @Tags tasks
// @Router /api/v1/tasks [get]
func (h *TaskHandler) GetTasks(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.List(stdCtx, domain.DefaultBoardID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if !h.trustClientFilter {
		tasks = domain.FilterVisible(tasks, middleware.ActorID(ctx))
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	h.respondSuccess(ctx, http.StatusOK, tasks)
}

// @Summary Create task
// @Tags tasks
// @Router /api/v1/tasks [post]
func (h *TaskHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	var req transport.CreateTaskRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondError(ctx, domain.ErrInvalidPayload)
		return
	}

	owner := req.OwnerActorID
	if owner == nil {
		if actorID := middleware.ActorID(ctx); actorID != "" {
			owner = &actorID
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.Create(stdCtx, taskUC.CreateInput{
		Text:         req.Text,
		OwnerActorID: owner,
		Focus:        req.Focus,
		Priority:     domain.Priority(req.Priority),
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update task fields
// @Tags tasks
// @Router /api/v1/tasks/{id} [patch]
func (h *TaskHandler) UpdateTask(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondError(ctx, domain.ErrInvalidPayload)
		return
	}

	changes, err := transport.DecodeTaskChanges(ctx.PostBody())
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.Update(stdCtx, id, changes)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete task
// @Tags tasks
// @Router /api/v1/tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondError(ctx, domain.ErrInvalidPayload)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Delete(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondNoContent(ctx)
}
