package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/whiteboardhq/backend/api/handler"
)

type Handlers struct {
	Task   *apiHandler.TaskHandler
	Board  *apiHandler.BoardHandler
	Health *apiHandler.HealthHandler
}

func New(handlers Handlers, actorMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Task routes
	r.GET("/api/v1/tasks", actorMiddleware(handlers.Task.GetTasks))
	r.POST("/api/v1/tasks", actorMiddleware(handlers.Task.CreateTask))
	r.PATCH("/api/v1/tasks/{id}", actorMiddleware(handlers.Task.UpdateTask))
	r.DELETE("/api/v1/tasks/{id}", actorMiddleware(handlers.Task.DeleteTask))

	// Board roster routes
	r.GET("/api/v1/board-members", actorMiddleware(handlers.Board.GetMembers))
	r.POST("/api/v1/board-members", actorMiddleware(handlers.Board.RegisterMember))

	return r
}
