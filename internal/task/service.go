package task

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/taskhub/internal/model"
	"github.com/sandeepkv93/taskhub/internal/storage"
)

type Service struct {
	repo storage.Repository
}

func NewService(repo storage.Repository) *Service {
	return &Service{repo: repo}
}

// List returns every task, most recently created first.
func (s *Service) List(ctx context.Context) ([]model.Task, error) {
	tasks, err := s.repo.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (s *Service) Create(ctx context.Context, in model.NewTask) (model.Task, error) {
	valid, err := in.Normalize()
	if err != nil {
		return model.Task{}, titleError(err)
	}
	created, err := s.repo.CreateTask(ctx, valid)
	if err != nil {
		return model.Task{}, fmt.Errorf("create task: %w", err)
	}
	return created, nil
}

// Update applies a partial update. An empty patch still refreshes updated_at.
func (s *Service) Update(ctx context.Context, id int64, patch model.TaskPatch) (model.Task, error) {
	if id <= 0 {
		return model.Task{}, invalid("id", "must be a positive integer")
	}
	valid, err := patch.Normalize()
	if err != nil {
		return model.Task{}, titleError(err)
	}
	updated, err := s.repo.UpdateTask(ctx, id, storage.UpdateFromPatch(valid))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return model.Task{}, ErrNotFound
		}
		return model.Task{}, fmt.Errorf("update task %d: %w", id, err)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return invalid("id", "must be a positive integer")
	}
	if err := s.repo.DeleteTask(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	return nil
}

// InitSchema creates the table when missing. Existing rows are kept.
func (s *Service) InitSchema(ctx context.Context) error {
	if err := s.repo.InitSchema(ctx); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// DatabaseTime pings the store and reads its clock.
func (s *Service) DatabaseTime(ctx context.Context) (time.Time, error) {
	if err := s.repo.Ping(ctx); err != nil {
		return time.Time{}, fmt.Errorf("ping database: %w", err)
	}
	now, err := s.repo.Now(ctx)
	if err != nil {
		return time.Time{}, fmt.Errorf("read database clock: %w", err)
	}
	return now, nil
}

// ParseID validates a task id taken from a request path.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, invalid("id", fmt.Sprintf("%q is not a valid task id", raw))
	}
	return id, nil
}

func titleError(err error) error {
	switch {
	case errors.Is(err, model.ErrEmptyTitle):
		return invalid("title", "title is required")
	case errors.Is(err, model.ErrTitleTooLong):
		return invalid("title", fmt.Sprintf("title must be at most %d characters", model.MaxTitleLength))
	default:
		return invalid("", err.Error())
	}
}
