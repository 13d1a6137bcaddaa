package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
)

// TaskService provides task operations for an authenticated owner. Every
// method takes the owner's ID, which callers take from the principal.
// Tasks owned by anyone else behave as if they do not exist.
type TaskService interface {
	// Create stores a new task for ownerID.
	Create(ctx context.Context, ownerID int64, title string, description *string) (*domain.Task, error)

	// Get returns the task or store.ErrTaskNotFound.
	Get(ctx context.Context, ownerID, taskID int64) (*domain.Task, error)

	// Update applies patch to the task and returns the result.
	Update(ctx context.Context, ownerID, taskID int64, patch domain.TaskPatch) (*domain.Task, error)

	// Delete removes the task or returns store.ErrTaskNotFound.
	Delete(ctx context.Context, ownerID, taskID int64) error

	// List returns one page of the owner's tasks with the owner's total count.
	List(ctx context.Context, ownerID int64, page domain.Page) (*domain.TaskList, error)
}

type taskService struct {
	tasks    store.TaskStore
	txRunner store.TxRunner
	logger   *slog.Logger
}

var _ TaskService = (*taskService)(nil)

// NewTaskService creates a TaskService.
func NewTaskService(tasks store.TaskStore, txRunner store.TxRunner, logger *slog.Logger) (TaskService, error) {
	if tasks == nil || txRunner == nil {
		return nil, errors.New("task service: task store and transaction runner are required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &taskService{
		tasks:    tasks,
		txRunner: txRunner,
		logger:   logger.With("component", "task_service"),
	}, nil
}

// Create implements TaskService.
func (s *taskService) Create(
	ctx context.Context,
	ownerID int64,
	title string,
	description *string,
) (*domain.Task, error) {
	task, err := domain.NewTask(ownerID, title, description)
	if err != nil {
		s.logger.Debug("task rejected by validation", "error", err, "owner_id", ownerID)
		return nil, err
	}

	err = s.txRunner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.tasks.WithTx(tx).Create(ctx, task)
	})
	if err != nil {
		s.logger.Error("failed to create task", "error", err, "owner_id", ownerID)
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Debug("task created", "task_id", task.ID, "owner_id", ownerID)
	return task, nil
}

// Get implements TaskService.
func (s *taskService) Get(ctx context.Context, ownerID, taskID int64) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, ownerID, taskID)
	if err != nil {
		s.logLookupFailure("failed to get task", err, ownerID, taskID)
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// Update implements TaskService. The read-modify-write happens under a row
// lock so concurrent patches to the same task serialize.
func (s *taskService) Update(
	ctx context.Context,
	ownerID, taskID int64,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	var updated *domain.Task

	err := s.txRunner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.tasks.WithTx(tx)

		task, err := txStore.GetByIDForUpdate(ctx, ownerID, taskID)
		if err != nil {
			return err
		}

		if patch.IsEmpty() {
			updated = task
			return nil
		}

		if err := patch.Apply(task); err != nil {
			return err
		}

		if err := txStore.Update(ctx, ownerID, task); err != nil {
			return err
		}
		updated = task
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			s.logger.Debug("task update rejected by validation", "error", err, "task_id", taskID)
			return nil, err
		}
		s.logLookupFailure("failed to update task", err, ownerID, taskID)
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.Debug("task updated", "task_id", taskID, "owner_id", ownerID)
	return updated, nil
}

// Delete implements TaskService.
func (s *taskService) Delete(ctx context.Context, ownerID, taskID int64) error {
	err := s.txRunner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.tasks.WithTx(tx).Delete(ctx, ownerID, taskID)
	})
	if err != nil {
		s.logLookupFailure("failed to delete task", err, ownerID, taskID)
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.logger.Debug("task deleted", "task_id", taskID, "owner_id", ownerID)
	return nil
}

// List implements TaskService.
func (s *taskService) List(ctx context.Context, ownerID int64, page domain.Page) (*domain.TaskList, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}

	items, total, err := s.tasks.List(ctx, ownerID, page)
	if err != nil {
		s.logger.Error("failed to list tasks", "error", err, "owner_id", ownerID)
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	if items == nil {
		items = []*domain.Task{}
	}

	return &domain.TaskList{Items: items, Total: total, Page: page}, nil
}

// logLookupFailure logs not-found at debug and everything else at error.
func (s *taskService) logLookupFailure(msg string, err error, ownerID, taskID int64) {
	if errors.Is(err, store.ErrTaskNotFound) {
		s.logger.Debug(msg, "error", err, "task_id", taskID, "owner_id", ownerID)
		return
	}
	s.logger.Error(msg, "error", err, "task_id", taskID, "owner_id", ownerID)
}
