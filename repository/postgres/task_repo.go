package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/whiteboardhq/backend/domain"
	"github.com/whiteboardhq/backend/repository"
)

const taskColumns = `id, board_id, text, done, focus, priority, visibility,
	owner_actor_id, assignee_actor_id, sort_order, due_date, created_at, updated_at, done_at`

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE id = $1`, taskColumns)
	row := r.pool.QueryRow(ctx, query, id)
	return scanTask(row)
}

func (r *taskRepository) List(ctx context.Context, boardID string) ([]domain.Task, error) {
	// Rows written before boards existed have a NULL board_id and belong to
	// the default board.
	query := fmt.Sprintf(`
	SELECT %s
	FROM tasks
	WHERE COALESCE(board_id, $2) = $1
	ORDER BY created_at
	`, taskColumns)
	rows, err := r.pool.Query(ctx, query, boardID, domain.DefaultBoardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO tasks (id, board_id, text, done, focus, priority, visibility,
		owner_actor_id, assignee_actor_id, sort_order, due_date, created_at, updated_at, done_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	if _, err := r.pool.Exec(ctx, query,
		task.ID,
		task.BoardID,
		task.Text,
		task.Done,
		task.Focus,
		string(task.Priority),
		string(task.Visibility),
		task.OwnerActorID,
		task.AssigneeActorID,
		task.Order,
		nullDate(task.DueDate),
		task.CreatedAt,
		task.UpdatedAt,
		task.DoneAt,
	); err != nil {
		return nil, err
	}

	return task, nil
}

// Apply performs a field-subset update: only the columns named by the patch
// plus updated_at are written, in one atomic statement.
func (r *taskRepository) Apply(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	sets := []string{"updated_at = $2"}
	args := []interface{}{id, patch.UpdatedAt}
	set := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Text != nil {
		set("text", *patch.Text)
	}
	if patch.Done != nil {
		set("done", *patch.Done)
		set("done_at", patch.DoneAt)
	}
	if patch.Focus != nil {
		set("focus", *patch.Focus)
	}
	if patch.Priority != nil {
		set("priority", string(*patch.Priority))
	}
	if patch.Visibility != nil {
		set("visibility", string(*patch.Visibility))
	}
	if patch.HasAssignee {
		set("assignee_actor_id", patch.Assignee)
	}
	if patch.Order != nil {
		set("sort_order", *patch.Order)
	}
	if patch.HasDueDate {
		set("due_date", nullDate(patch.DueDate))
	}

	query := fmt.Sprintf(`
	UPDATE tasks
	SET %s
	WHERE id = $1
	RETURNING %s
	`, strings.Join(sets, ",\n\t\t"), taskColumns)

	row := r.pool.QueryRow(ctx, query, args...)
	return scanTask(row)
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM tasks WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func scanTask(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Task, error) {
	var task domain.Task
	var (
		boardID    *string
		priority   *string
		visibility *string
		due        *time.Time
	)

	if err := row.Scan(
		&task.ID,
		&boardID,
		&task.Text,
		&task.Done,
		&task.Focus,
		&priority,
		&visibility,
		&task.OwnerActorID,
		&task.AssigneeActorID,
		&task.Order,
		&due,
		&task.CreatedAt,
		&task.UpdatedAt,
		&task.DoneAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	if boardID != nil {
		task.BoardID = *boardID
	}
	if priority != nil {
		task.Priority = domain.Priority(*priority)
	}
	if visibility != nil {
		task.Visibility = domain.Visibility(*visibility)
	}
	task.DueDate = due
	task.ApplyDefaults()

	return &task, nil
}
