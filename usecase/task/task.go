package task

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/whiteboardhq/backend/domain"
	"github.com/whiteboardhq/backend/repository"
	"github.com/whiteboardhq/backend/usecase"
)

// CreateInput carries the fields accepted at task creation. Focus and
// Priority are optional knobs the board UI exposes on the add form.
type CreateInput struct {
	Text         string
	OwnerActorID *string
	Focus        bool
	Priority     domain.Priority
	BoardID      string
}

// UseCase is the task command processor: it validates commands, persists
// them, and echoes the resulting task back to callers.
type UseCase struct {
	tasks  repository.TaskRepository
	boards repository.BoardRepository
	buffer usecase.OperationBuffer
	logger *zap.Logger
	now    func() time.Time
}

func New(tasks repository.TaskRepository, boards repository.BoardRepository, buffer usecase.OperationBuffer, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		boards: boards,
		buffer: buffer,
		logger: logger,
		now:    time.Now,
	}
}

// List returns every task on the board, storage order (creation time).
// Visibility filtering is the caller's concern; see domain.BuildBoardView.
func (uc *UseCase) List(ctx context.Context, boardID string) ([]domain.Task, error) {
	if boardID == "" {
		boardID = domain.DefaultBoardID
	}
	if err := uc.ensureBoard(ctx); err != nil {
		return nil, err
	}
	return uc.tasks.List(ctx, boardID)
}

func (uc *UseCase) Get(ctx context.Context, id string) (*domain.Task, error) {
	return uc.tasks.GetByID(ctx, id)
}

// Create validates the text and persists a new task with the creation-time
// defaults: not done, shared, unassigned, order seeded with the creation
// timestamp in epoch milliseconds.
func (uc *UseCase) Create(ctx context.Context, input CreateInput) (*domain.Task, error) {
	text, err := domain.ValidateText(input.Text)
	if err != nil {
		return nil, err
	}
	if err := uc.ensureBoard(ctx); err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	order := float64(now.UnixMilli())
	priority := input.Priority
	if !priority.Valid() {
		priority = domain.PriorityNormal
	}
	boardID := input.BoardID
	if boardID == "" {
		boardID = domain.DefaultBoardID
	}

	// The id is assigned here rather than in storage so a buffered create
	// still echoes an addressable task.
	task := &domain.Task{
		ID:              uuid.NewString(),
		BoardID:         boardID,
		Text:            text,
		Done:            false,
		Focus:           input.Focus,
		Priority:        priority,
		Visibility:      domain.VisibilityShared,
		OwnerActorID:    input.OwnerActorID,
		AssigneeActorID: nil,
		Order:           &order,
		CreatedAt:       now,
		UpdatedAt:       now,
		DoneAt:          nil,
	}

	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		if uc.shouldBuffer(ctx, usecase.OperationCreate, task) {
			return task, nil
		}
		return nil, err
	}
	return created, nil
}

// Update compiles the change variants into a field-subset patch and applies
// it as one atomic row update. An empty or fully-dropped change set is
// rejected with ErrNoFieldsToUpdate before touching storage.
func (uc *UseCase) Update(ctx context.Context, id string, changes []domain.TaskChange) (*domain.Task, error) {
	patch, err := domain.BuildPatch(uc.now().UTC(), changes)
	if err != nil {
		return nil, err
	}

	updated, err := uc.tasks.Apply(ctx, id, patch)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, err
		}
		if uc.shouldBufferPatch(ctx, id, patch) {
			// Storage is offline and the patch is queued; echo the fields we
			// know changed so the optimistic client state stands.
			echo := &domain.Task{ID: id}
			patch.ApplyTo(echo)
			return echo, nil
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes the task permanently. Deleting an unknown id reports
// ErrTaskNotFound, which also makes repeated deletes of the same id fail.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if err := uc.tasks.Delete(ctx, id); err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return err
		}
		task := &domain.Task{ID: id}
		if uc.shouldBuffer(ctx, usecase.OperationDelete, task) {
			return nil
		}
		return err
	}
	return nil
}

func (uc *UseCase) ensureBoard(ctx context.Context) error {
	if uc.boards == nil {
		return nil
	}
	if _, err := uc.boards.EnsureDefault(ctx); err != nil {
		uc.logger.Warn("default board init failed", zap.Error(err))
		return err
	}
	return nil
}

func (uc *UseCase) shouldBuffer(ctx context.Context, operation string, task *domain.Task) bool {
	if uc.buffer == nil {
		return false
	}
	if err := uc.buffer.BufferTask(ctx, operation, task); err != nil {
		uc.logger.Error("failed to buffer task operation", zap.String("operation", operation), zap.Error(err))
		return false
	}
	uc.logger.Warn("task operation buffered", zap.String("operation", operation), zap.String("task_id", task.ID))
	return true
}

func (uc *UseCase) shouldBufferPatch(ctx context.Context, taskID string, patch domain.TaskPatch) bool {
	if uc.buffer == nil {
		return false
	}
	if err := uc.buffer.BufferTaskPatch(ctx, taskID, patch); err != nil {
		uc.logger.Error("failed to buffer task patch", zap.String("task_id", taskID), zap.Error(err))
		return false
	}
	uc.logger.Warn("task patch buffered", zap.String("task_id", taskID))
	return true
}
