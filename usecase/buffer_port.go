package usecase

import (
	"context"

	"github.com/whiteboardhq/backend/domain"
)

// Buffered operation names shared between use cases and the buffer processor.
const (
	OperationCreate = "create"
	OperationPatch  = "patch"
	OperationDelete = "delete"
)

// OperationBuffer abstracts the buffer processor so use cases stay storage-agnostic.
type OperationBuffer interface {
	BufferTask(ctx context.Context, operation string, task *domain.Task) error
	BufferTaskPatch(ctx context.Context, taskID string, patch domain.TaskPatch) error
	BufferMember(ctx context.Context, member *domain.BoardMember) error
}
