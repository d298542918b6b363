package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxTitleLength matches the width of the title column.
const MaxTitleLength = 255

var (
	ErrEmptyTitle       = errors.New("model: task title is required")
	ErrTitleTooLong     = errors.New("model: task title is too long")
	ErrInvalidID        = errors.New("model: task id must be positive")
	ErrTimestampOrder   = errors.New("model: updated_at precedes created_at")
	ErrMissingTimestamp = errors.New("model: task timestamps are required")
)

type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Modified reports whether the record changed after it was created.
func (t Task) Modified() bool {
	return !t.UpdatedAt.Equal(t.CreatedAt)
}

func (t Task) Validate() error {
	if t.ID <= 0 {
		return ErrInvalidID
	}
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if t.CreatedAt.IsZero() || t.UpdatedAt.IsZero() {
		return ErrMissingTimestamp
	}
	if t.UpdatedAt.Before(t.CreatedAt) {
		return ErrTimestampOrder
	}
	return nil
}

// NewTask is the input of a create request.
type NewTask struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Normalize trims both fields and rejects an empty title.
func (n NewTask) Normalize() (NewTask, error) {
	title, err := NormalizeTitle(n.Title)
	if err != nil {
		return NewTask{}, err
	}
	return NewTask{Title: title, Description: strings.TrimSpace(n.Description)}, nil
}

// TaskPatch is a partial update. Unset fields keep their stored value.
type TaskPatch struct {
	Title       Optional[string] `json:"title,omitzero"`
	Description Optional[string] `json:"description,omitzero"`
	Completed   Optional[bool]   `json:"completed,omitzero"`
}

func (p TaskPatch) IsEmpty() bool {
	return !p.Title.Set && !p.Description.Set && !p.Completed.Set
}

// Normalize trims provided text fields and rejects a title that trims to empty.
func (p TaskPatch) Normalize() (TaskPatch, error) {
	out := p
	if title, ok := p.Title.Get(); ok {
		trimmed, err := NormalizeTitle(title)
		if err != nil {
			return TaskPatch{}, err
		}
		out.Title = Some(trimmed)
	}
	if desc, ok := p.Description.Get(); ok {
		out.Description = Some(strings.TrimSpace(desc))
	}
	return out, nil
}

// Apply returns t with the patch applied. Timestamps are left to the caller.
func (p TaskPatch) Apply(t Task) Task {
	if v, ok := p.Title.Get(); ok {
		t.Title = v
	}
	if v, ok := p.Description.Get(); ok {
		t.Description = v
	}
	if v, ok := p.Completed.Get(); ok {
		t.Completed = v
	}
	return t
}

func NormalizeTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", ErrEmptyTitle
	}
	if n := utf8.RuneCountInString(trimmed); n > MaxTitleLength {
		return "", fmt.Errorf("%w: %d characters, at most %d", ErrTitleTooLong, n, MaxTitleLength)
	}
	return trimmed, nil
}

// Stats are the board counters. Pending is always Total - Completed.
type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

func CountTasks(tasks []Task) Stats {
	done := 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}
	return Stats{Total: len(tasks), Completed: done, Pending: len(tasks) - done}
}
