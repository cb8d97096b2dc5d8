package services

import (
	"context"
	"encoding/json"

	"github.com/whiteboardhq/backend/domain"
	"github.com/whiteboardhq/backend/internal/infrastructure/buffer"
)

// BufferBridge adapts the buffer processor to the usecase.OperationBuffer
// port, translating domain values into buffer items.
type BufferBridge struct {
	processor *BufferProcessor
}

func NewBufferBridge(processor *BufferProcessor) *BufferBridge {
	return &BufferBridge{processor: processor}
}

func (b *BufferBridge) BufferTask(ctx context.Context, operation string, task *domain.Task) error {
	if b.processor == nil || task == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(task)
	if err != nil {
		return err
	}
	item := buffer.Item{
		ID:        task.ID,
		TaskID:    task.ID,
		Entity:    buffer.EntityTask,
		Operation: operation,
		Data:      payload,
		Priority:  2,
	}
	return b.processor.BufferOperation(ctx, item)
}

func (b *BufferBridge) BufferTaskPatch(ctx context.Context, taskID string, patch domain.TaskPatch) error {
	if b.processor == nil || taskID == "" {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(patch)
	if err != nil {
		return err
	}
	item := buffer.Item{
		TaskID:    taskID,
		Entity:    buffer.EntityTask,
		Operation: buffer.OperationPatch,
		Data:      payload,
		Priority:  3,
	}
	return b.processor.BufferOperation(ctx, item)
}

func (b *BufferBridge) BufferMember(ctx context.Context, member *domain.BoardMember) error {
	if b.processor == nil || member == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(memberItem{
		ID:      member.ID,
		BoardID: member.BoardID,
		ActorID: member.ActorID,
		Emoji:   member.Emoji,
		Name:    member.Name,
	})
	if err != nil {
		return err
	}
	item := buffer.Item{
		Entity:    buffer.EntityMember,
		Operation: buffer.OperationCreate,
		Data:      payload,
		Priority:  2,
	}
	return b.processor.BufferOperation(ctx, item)
}

// memberItem is the buffered form of a registration; BoardMember hides the
// row fields from API JSON, so the buffer uses its own encoding.
type memberItem struct {
	ID      string `json:"id"`
	BoardID string `json:"board_id"`
	ActorID string `json:"actor_id"`
	Emoji   string `json:"emoji"`
	Name    string `json:"name"`
}
