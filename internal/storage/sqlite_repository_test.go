package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandeepkv93/taskhub/internal/model"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "taskhub-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	if err := repo.InitSchema(context.Background()); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return repo
}

// stepClock returns start, start+step, start+2*step, ...
func stepClock(start time.Time, step time.Duration) func() time.Time {
	next := start
	return func() time.Time {
		out := next
		next = next.Add(step)
		return out
	}
}

func parseRFC3339(t *testing.T, value string) time.Time {
	t.Helper()
	out, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time: %v", err)
	}
	return out
}

func TestTaskCRUDAndList(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	repo.now = stepClock(parseRFC3339(t, "2026-02-09T12:00:00Z"), time.Minute)

	first, err := repo.CreateTask(ctx, model.NewTask{Title: "Write schema", Description: "Design storage layout"})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if first.ID <= 0 || first.Completed {
		t.Fatalf("unexpected created task: %#v", first)
	}
	if !first.CreatedAt.Equal(first.UpdatedAt) {
		t.Fatalf("created_at and updated_at differ on insert: %#v", first)
	}

	second, err := repo.CreateTask(ctx, model.NewTask{Title: "Review schema"})
	if err != nil {
		t.Fatalf("create second task: %v", err)
	}
	if second.ID == first.ID {
		t.Fatalf("expected unique ids, both are %d", first.ID)
	}

	list, err := repo.ListTasks(ctx)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(list) != 2 || list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatalf("expected newest first, got %#v", list)
	}

	done := true
	updated, err := repo.UpdateTask(ctx, first.ID, TaskUpdate{Completed: &done})
	if err != nil {
		t.Fatalf("update task: %v", err)
	}
	if !updated.Completed || updated.Title != first.Title || updated.Description != first.Description {
		t.Fatalf("coalesce lost fields: %#v", updated)
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) {
		t.Fatalf("updated_at not refreshed: %#v", updated)
	}

	if err := repo.DeleteTask(ctx, first.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	if err := repo.DeleteTask(ctx, first.ID); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on second delete, got: %v", err)
	}
	if _, err := repo.UpdateTask(ctx, first.ID, TaskUpdate{Completed: &done}); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on update of deleted task, got: %v", err)
	}

	list, err = repo.ListTasks(ctx)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(list) != 1 || list[0].ID != second.ID {
		t.Fatalf("deleted task still listed: %#v", list)
	}
}

func TestUpdateTaskKeepsUpdatedAtAfterCreatedAt(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := parseRFC3339(t, "2026-02-09T12:00:00Z")
	repo.now = func() time.Time { return created }

	task, err := repo.CreateTask(ctx, model.NewTask{Title: "Clock skew"})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	// Clock stepped backwards between the insert and the update.
	repo.now = func() time.Time { return created.Add(-time.Hour) }
	updated, err := repo.UpdateTask(ctx, task.ID, TaskUpdate{})
	if err != nil {
		t.Fatalf("empty update: %v", err)
	}
	if updated.UpdatedAt.Before(updated.CreatedAt) {
		t.Fatalf("updated_at %s precedes created_at %s", updated.UpdatedAt, updated.CreatedAt)
	}
}

func TestUpdateTaskEmptyPatchOnlyTouchesTimestamp(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	repo.now = stepClock(parseRFC3339(t, "2026-02-09T12:00:00Z"), time.Second)

	task, err := repo.CreateTask(ctx, model.NewTask{Title: "Touch me", Description: "body"})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	updated, err := repo.UpdateTask(ctx, task.ID, TaskUpdate{})
	if err != nil {
		t.Fatalf("update task: %v", err)
	}
	if updated.Title != task.Title || updated.Description != task.Description || updated.Completed != task.Completed {
		t.Fatalf("empty patch changed fields: before=%#v after=%#v", task, updated)
	}
	if !updated.UpdatedAt.After(task.UpdatedAt) {
		t.Fatalf("expected updated_at to move forward: before=%s after=%s", task.UpdatedAt, updated.UpdatedAt)
	}
}

func TestUpdateTaskCanClearCompletedAndDescription(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	task, err := repo.CreateTask(ctx, model.NewTask{Title: "Flip", Description: "text"})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	done, empty := true, ""
	if _, err := repo.UpdateTask(ctx, task.ID, TaskUpdate{Completed: &done}); err != nil {
		t.Fatalf("complete task: %v", err)
	}
	notDone := false
	got, err := repo.UpdateTask(ctx, task.ID, TaskUpdate{Completed: &notDone, Description: &empty})
	if err != nil {
		t.Fatalf("reopen task: %v", err)
	}
	if got.Completed || got.Description != "" {
		t.Fatalf("explicit false/empty values were ignored: %#v", got)
	}
}

func TestListTasksEmptyIsNotNil(t *testing.T) {
	repo := setupRepo(t)
	list, err := repo.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", list)
	}
}

func TestNowAndPing(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	if err := repo.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
	now, err := repo.Now(ctx)
	if err != nil {
		t.Fatalf("now: %v", err)
	}
	if time.Since(now) > time.Minute || time.Until(now) > time.Minute {
		t.Fatalf("database clock far from local clock: %s", now)
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "oracle", "dsn")
	if !errors.Is(err, ErrUnknownDriver) {
		t.Fatalf("expected ErrUnknownDriver, got %v", err)
	}
}

func TestOpenSQLiteByDriverName(t *testing.T) {
	repo, err := Open(context.Background(), "sqlite3", filepath.Join(t.TempDir(), "open.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer repo.Close()
	if err := repo.InitSchema(context.Background()); err != nil {
		t.Fatalf("init schema: %v", err)
	}
}
