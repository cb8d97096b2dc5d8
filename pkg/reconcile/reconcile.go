package reconcile

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/whiteboardhq/backend/domain"
)

// State tracks the lifecycle of one optimistic mutation.
type State int

const (
	StatePending State = iota
	StateConfirmed
	StateRolledBack
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateConfirmed:
		return "confirmed"
	case StateRolledBack:
		return "rolled_back"
	default:
		return "unknown"
	}
}

// Cache is the client-side optimistic task cache. Mutations apply locally
// before the server answers; each returned Mutation is later driven to
// Confirmed or RolledBack by the network outcome. Mutations on different
// tasks are independent and never block one another; when responses overlap
// on the same task, the last one to land wins.
type Cache struct {
	mu    sync.Mutex
	tasks map[string]domain.Task
	order []string

	now func() time.Time
}

// Mutation is one in-flight optimistic change. Terminal states are sticky:
// confirming or rolling back a settled mutation is a no-op.
type Mutation struct {
	cache  *Cache
	state  State
	tempID string

	// priors holds the pre-mutation value of every touched task; a nil entry
	// means the task did not exist before (optimistic create).
	priors map[string]*domain.Task
}

func NewCache() *Cache {
	return &Cache{
		tasks: make(map[string]domain.Task),
		now:   time.Now,
	}
}

// Load replaces the cache with server-confirmed state, e.g. after a refetch.
func (c *Cache) Load(tasks []domain.Task) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tasks = make(map[string]domain.Task, len(tasks))
	c.order = c.order[:0]
	for _, t := range tasks {
		c.tasks[t.ID] = t
		c.order = append(c.order, t.ID)
	}
}

// Snapshot returns the current optimistic task list in stable order. Feed it
// to domain.BuildBoardView to render.
func (c *Cache) Snapshot() []domain.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Task, 0, len(c.order))
	for _, id := range c.order {
		if t, ok := c.tasks[id]; ok {
			out = append(out, t)
		}
	}
	return out
}

func (c *Cache) Get(id string) (domain.Task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.tasks[id]
	return t, ok
}

// BeginCreate inserts an optimistic task under a client temp id. Confirm
// replaces it with the server-issued task; Rollback removes it.
func (c *Cache) BeginCreate(text string, ownerActorID *string) (*Mutation, error) {
	trimmed, err := domain.ValidateText(text)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now().UTC()
	tempID := "temp-" + uuid.NewString()
	order := float64(now.UnixMilli())
	c.tasks[tempID] = domain.Task{
		ID:           tempID,
		BoardID:      domain.DefaultBoardID,
		Text:         trimmed,
		Priority:     domain.PriorityNormal,
		Visibility:   domain.VisibilityShared,
		OwnerActorID: ownerActorID,
		Order:        &order,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	c.order = append(c.order, tempID)

	return &Mutation{
		cache:  c,
		tempID: tempID,
		priors: map[string]*domain.Task{tempID: nil},
	}, nil
}

// BeginPatch applies change variants optimistically to one task.
func (c *Cache) BeginPatch(id string, changes ...domain.TaskChange) (*Mutation, error) {
	patch, err := domain.BuildPatch(c.now().UTC(), changes)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	task, ok := c.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	prior := task
	patch.ApplyTo(&task)
	c.tasks[id] = task

	return &Mutation{
		cache:  c,
		priors: map[string]*domain.Task{id: &prior},
	}, nil
}

// BeginDelete removes the task optimistically; Rollback restores it.
func (c *Cache) BeginDelete(id string) (*Mutation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	task, ok := c.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	delete(c.tasks, id)

	return &Mutation{
		cache:  c,
		priors: map[string]*domain.Task{id: &task},
	}, nil
}

// BeginSwapOrder swaps the effective order keys of two tasks, the compound
// reorder operation. The caller issues the two remote updates; if either
// fails, Rollback restores both tasks and the caller should refetch.
func (c *Cache) BeginSwapOrder(idA, idB string) (*Mutation, error) {
	if idA == idB {
		return nil, fmt.Errorf("reorder needs two distinct tasks")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	taskA, okA := c.tasks[idA]
	taskB, okB := c.tasks[idB]
	if !okA || !okB {
		return nil, domain.ErrTaskNotFound
	}
	priorA, priorB := taskA, taskB

	now := c.now().UTC()
	orderA := taskA.EffectiveOrder()
	orderB := taskB.EffectiveOrder()
	taskA.Order = &orderB
	taskB.Order = &orderA
	taskA.UpdatedAt = now
	taskB.UpdatedAt = now
	c.tasks[idA] = taskA
	c.tasks[idB] = taskB

	return &Mutation{
		cache: c,
		priors: map[string]*domain.Task{
			idA: &priorA,
			idB: &priorB,
		},
	}, nil
}

// TempID returns the client-generated id of an optimistic create, or "".
func (m *Mutation) TempID() string { return m.tempID }

func (m *Mutation) State() State {
	m.cache.mu.Lock()
	defer m.cache.mu.Unlock()
	return m.state
}

// Confirm settles the mutation with the server's canonical task. Passing nil
// keeps the optimistic state as-is, the usual case for toggles and assigns
// where intent and outcome already match. For creates, the temp task is
// replaced by the server task under its real id.
func (m *Mutation) Confirm(server *domain.Task) {
	m.cache.mu.Lock()
	defer m.cache.mu.Unlock()
	if m.state != StatePending {
		return
	}
	m.state = StateConfirmed

	if server == nil {
		return
	}
	if m.tempID != "" {
		delete(m.cache.tasks, m.tempID)
		m.cache.tasks[server.ID] = *server
		for i, id := range m.cache.order {
			if id == m.tempID {
				m.cache.order[i] = server.ID
				break
			}
		}
		return
	}
	if _, ok := m.cache.tasks[server.ID]; ok {
		m.cache.tasks[server.ID] = *server
	}
}

// ConfirmRefetch settles the mutation and replaces the whole cache with the
// refetched list, used when a mutation shifts cross-task ordering.
func (m *Mutation) ConfirmRefetch(tasks []domain.Task) {
	m.cache.mu.Lock()
	if m.state != StatePending {
		m.cache.mu.Unlock()
		return
	}
	m.state = StateConfirmed
	m.cache.mu.Unlock()

	m.cache.Load(tasks)
}

// Rollback restores every task the mutation touched to its pre-mutation
// value and surfaces the optimistic change as undone.
func (m *Mutation) Rollback() {
	m.cache.mu.Lock()
	defer m.cache.mu.Unlock()
	if m.state != StatePending {
		return
	}
	m.state = StateRolledBack

	for id, prior := range m.priors {
		if prior == nil {
			delete(m.cache.tasks, id)
			for i, ordered := range m.cache.order {
				if ordered == id {
					m.cache.order = append(m.cache.order[:i], m.cache.order[i+1:]...)
					break
				}
			}
			continue
		}
		m.cache.tasks[id] = *prior
	}
}
