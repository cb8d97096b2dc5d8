package repository

import (
	"context"

	"github.com/whiteboardhq/backend/domain"
)

type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, boardID string) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	// Apply writes only the fields named by the patch plus updatedAt, as a
	// single atomic row update, and returns the full updated task.
	Apply(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}
