package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/tasks-api/internal/domain"
)

// TaskStore persists tasks. The ownerID parameter is mandatory on every
// lookup, and a task owned by someone else is reported as ErrTaskNotFound.
type TaskStore interface {
	// Create inserts task and fills in its ID and timestamps.
	// task.OwnerID must already be set from the authenticated principal.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID returns the task with id if it belongs to ownerID.
	GetByID(ctx context.Context, ownerID, id int64) (*domain.Task, error)

	// GetByIDForUpdate is GetByID with a row lock held until the surrounding
	// transaction ends. It should only be used on a store returned by WithTx.
	GetByIDForUpdate(ctx context.Context, ownerID, id int64) (*domain.Task, error)

	// Update writes title, description and completed for the task matching
	// task.ID and ownerID, refreshing task.UpdatedAt.
	Update(ctx context.Context, ownerID int64, task *domain.Task) error

	// Delete removes the task with id if it belongs to ownerID.
	Delete(ctx context.Context, ownerID, id int64) error

	// List returns one page of ownerID's tasks ordered by ID, and the total
	// number of tasks ownerID has.
	List(ctx context.Context, ownerID int64, page domain.Page) ([]*domain.Task, int, error)

	// WithTx returns a TaskStore that runs its queries on tx.
	WithTx(tx *sql.Tx) TaskStore
}
