package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sandeepkv93/taskhub/internal/model"
)

var (
	ErrEmptyTitle  = errors.New("title is required")
	ErrUnknownTask = errors.New("task is not in the list")
)

// API is the subset of the HTTP client a session drives.
type API interface {
	List(ctx context.Context) ([]model.Task, error)
	Create(ctx context.Context, in model.NewTask) (model.Task, error)
	Update(ctx context.Context, id int64, patch model.TaskPatch) (model.Task, error)
	Delete(ctx context.Context, id int64) error
}

// ConfirmFunc is asked before a delete. Returning false cancels it.
type ConfirmFunc func(task model.Task) bool

// Session owns one Cache and applies API results to it. It is not safe for
// concurrent use.
type Session struct {
	api   API
	cache Cache
}

func New(api API) *Session {
	return &Session{api: api}
}

func (s *Session) Cache() Cache {
	return s.cache
}

func (s *Session) Load(ctx context.Context) error {
	s.cache = s.cache.BeginLoad()
	tasks, err := s.api.List(ctx)
	s.cache = s.cache.ApplyLoad(tasks, err)
	return err
}

// Create rejects a blank title without calling the server.
func (s *Session) Create(ctx context.Context, title, description string) (model.Task, error) {
	in, err := PrepareCreate(title, description)
	if err != nil {
		return model.Task{}, err
	}
	s.cache = s.cache.BeginMutation()
	created, err := s.api.Create(ctx, in)
	s.cache = s.cache.ApplyCreate(created, err)
	return created, err
}

func (s *Session) Toggle(ctx context.Context, id int64) (model.Task, error) {
	patch, err := PrepareToggle(s.cache, id)
	if err != nil {
		return model.Task{}, err
	}
	s.cache = s.cache.BeginMutation()
	updated, err := s.api.Update(ctx, id, patch)
	s.cache = s.cache.ApplyUpdate(updated, err)
	return updated, err
}

// Delete reports whether the task was removed. A declined confirmation is
// not an error.
func (s *Session) Delete(ctx context.Context, id int64, confirm ConfirmFunc) (bool, error) {
	task, ok := s.cache.Find(id)
	if !ok {
		return false, fmt.Errorf("%w: %d", ErrUnknownTask, id)
	}
	if confirm == nil || !confirm(task) {
		return false, nil
	}
	s.cache = s.cache.BeginMutation()
	err := s.api.Delete(ctx, id)
	s.cache = s.cache.ApplyDelete(id, err)
	return err == nil, err
}

// PrepareCreate builds the request body for a create, trimming both fields.
func PrepareCreate(title, description string) (model.NewTask, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.NewTask{}, ErrEmptyTitle
	}
	return model.NewTask{Title: title, Description: strings.TrimSpace(description)}, nil
}

// PrepareToggle builds the patch flipping the cached completion state.
func PrepareToggle(c Cache, id int64) (model.TaskPatch, error) {
	task, ok := c.Find(id)
	if !ok {
		return model.TaskPatch{}, fmt.Errorf("%w: %d", ErrUnknownTask, id)
	}
	return model.TaskPatch{Completed: model.Some(!task.Completed)}, nil
}
