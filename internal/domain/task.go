package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MaxTitleLength matches the width of the tasks.title column.
const MaxTitleLength = 255

// Task is a unit of work owned by exactly one user.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Completed   bool      `json:"completed"`
	OwnerID     int64     `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTask builds an unsaved task for ownerID. The owner must come from the
// authenticated principal, never from client input.
func NewTask(ownerID int64, title string, description *string) (*Task, error) {
	task := &Task{
		Title:       title,
		Description: description,
		OwnerID:     ownerID,
	}
	if err := task.Validate(); err != nil {
		return nil, err
	}
	return task, nil
}

// Validate checks the task's invariants.
func (t *Task) Validate() error {
	if t.OwnerID <= 0 {
		return ErrEmptyOwner
	}
	return ValidateTitle(t.Title)
}

// ValidateTitle checks that a title is non-blank and fits the column.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return NewValidationError("title", "is required", ErrEmptyTitle)
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return NewValidationError("title", "is too long", ErrTitleTooLong)
	}
	return nil
}

// TaskPatch is a partial update. Nil pointers mean "field absent".
// Description needs a separate presence flag because an explicit null
// clears it while an absent key leaves it alone.
type TaskPatch struct {
	Title          *string
	Description    *string
	DescriptionSet bool
	Completed      *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && !p.DescriptionSet && p.Completed == nil
}

// Apply overwrites the fields present in p and revalidates the task.
// The task is left unchanged when validation fails.
func (p TaskPatch) Apply(t *Task) error {
	updated := *t
	if p.Title != nil {
		updated.Title = *p.Title
	}
	if p.DescriptionSet {
		updated.Description = p.Description
	}
	if p.Completed != nil {
		updated.Completed = *p.Completed
	}
	if err := updated.Validate(); err != nil {
		return err
	}
	*t = updated
	return nil
}

// Pagination bounds for task listings.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Page is an offset/limit window over an owner's tasks.
type Page struct {
	Skip  int
	Limit int
}

// Validate checks limit ∈ [1, MaxPageLimit] and skip ≥ 0.
func (p Page) Validate() error {
	if p.Skip < 0 {
		return NewValidationError("skip", "must be greater than or equal to 0", ErrInvalidPagination)
	}
	if p.Limit < 1 || p.Limit > MaxPageLimit {
		return NewValidationError("limit", "must be between 1 and 100", ErrInvalidPagination)
	}
	return nil
}

// TaskList is one page of an owner's tasks plus the owner's total task count.
type TaskList struct {
	Items []*Task
	Total int
	Page  Page
}
