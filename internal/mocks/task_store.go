package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
)

// MockTaskStore is an in-memory store.TaskStore that enforces the same
// ownership rules as the SQL implementation. It is safe for concurrent use.
type MockTaskStore struct {
	// Errors returned by the default implementation when set
	CreateError error
	GetError    error
	UpdateError error
	DeleteError error
	ListError   error

	mu     sync.Mutex
	tasks  map[int64]*domain.Task
	nextID int64
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// NewMockTaskStore creates an empty MockTaskStore.
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		tasks: make(map[int64]*domain.Task),
	}
}

// Create implements store.TaskStore.
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateError != nil {
		return m.CreateError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tasks == nil {
		m.tasks = make(map[int64]*domain.Task)
	}

	m.nextID++
	now := time.Now().UTC()
	task.ID = m.nextID
	task.CreatedAt = now
	task.UpdatedAt = now
	m.tasks[task.ID] = cloneTask(task)
	return nil
}

// GetByID implements store.TaskStore.
func (m *MockTaskStore) GetByID(ctx context.Context, ownerID, id int64) (*domain.Task, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[id]
	if !ok || task.OwnerID != ownerID {
		return nil, store.ErrTaskNotFound
	}
	return cloneTask(task), nil
}

// GetByIDForUpdate implements store.TaskStore.
func (m *MockTaskStore) GetByIDForUpdate(ctx context.Context, ownerID, id int64) (*domain.Task, error) {
	return m.GetByID(ctx, ownerID, id)
}

// Update implements store.TaskStore.
func (m *MockTaskStore) Update(ctx context.Context, ownerID int64, task *domain.Task) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.tasks[task.ID]
	if !ok || existing.OwnerID != ownerID {
		return store.ErrTaskNotFound
	}

	existing.Title = task.Title
	existing.Description = cloneTask(task).Description
	existing.Completed = task.Completed
	existing.UpdatedAt = time.Now().UTC()
	task.UpdatedAt = existing.UpdatedAt
	return nil
}

// Delete implements store.TaskStore.
func (m *MockTaskStore) Delete(ctx context.Context, ownerID, id int64) error {
	if m.DeleteError != nil {
		return m.DeleteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[id]
	if !ok || task.OwnerID != ownerID {
		return store.ErrTaskNotFound
	}
	delete(m.tasks, id)
	return nil
}

// List implements store.TaskStore.
func (m *MockTaskStore) List(ctx context.Context, ownerID int64, page domain.Page) ([]*domain.Task, int, error) {
	if m.ListError != nil {
		return nil, 0, m.ListError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	owned := make([]*domain.Task, 0)
	for _, task := range m.tasks {
		if task.OwnerID == ownerID {
			owned = append(owned, cloneTask(task))
		}
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].ID < owned[j].ID })

	total := len(owned)
	if page.Skip >= total {
		return []*domain.Task{}, total, nil
	}
	end := page.Skip + page.Limit
	if end > total {
		end = total
	}
	return owned[page.Skip:end], total, nil
}

// WithTx returns the same store; the mock has no transactional state.
func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}

// Count returns the number of stored tasks across all owners.
func (m *MockTaskStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

func cloneTask(task *domain.Task) *domain.Task {
	c := *task
	if task.Description != nil {
		d := *task.Description
		c.Description = &d
	}
	return &c
}
