package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sandeepkv93/taskhub/internal/model"
)

// Fixed-width UTC layout so that text comparison orders like time.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z"

type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)
	return &SQLiteRepository{db: db, now: time.Now}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) InitSchema(ctx context.Context) error {
	return MigrateUp(ctx, r.db)
}

func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLiteRepository) Now(ctx context.Context) (time.Time, error) {
	var raw string
	if err := r.db.QueryRowContext(ctx, `SELECT strftime('%Y-%m-%dT%H:%M:%fZ', 'now')`).Scan(&raw); err != nil {
		return time.Time{}, err
	}
	return parseTime(raw)
}

func (r *SQLiteRepository) ListTasks(ctx context.Context) ([]model.Task, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+taskColumns+` FROM todos ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Task, 0)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateTask(ctx context.Context, in model.NewTask) (model.Task, error) {
	now := formatTime(r.now())
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO todos (title, description, completed, created_at, updated_at)
		VALUES (?, ?, 0, ?, ?)
		RETURNING `+taskColumns,
		in.Title, in.Description, now, now,
	)
	return scanTask(row)
}

func (r *SQLiteRepository) UpdateTask(ctx context.Context, id int64, in TaskUpdate) (model.Task, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE todos
		SET title = COALESCE(?, title),
		    description = COALESCE(?, description),
		    completed = COALESCE(?, completed),
		    updated_at = MAX(?, created_at)
		WHERE id = ?
		RETURNING `+taskColumns,
		nullString(in.Title), nullString(in.Description), nullBool(in.Completed), formatTime(r.now()), id,
	)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, ErrNotFound
		}
		return model.Task{}, err
	}
	return task, nil
}

func (r *SQLiteRepository) DeleteTask(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func formatTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

// parseTime accepts any fraction width, including the millisecond
// precision produced by the column defaults.
func parseTime(v string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, v)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (model.Task, error) {
	var out model.Task
	var created, updated string
	if err := s.Scan(&out.ID, &out.Title, &out.Description, &out.Completed, &created, &updated); err != nil {
		return model.Task{}, err
	}
	createdAt, err := parseTime(created)
	if err != nil {
		return model.Task{}, err
	}
	updatedAt, err := parseTime(updated)
	if err != nil {
		return model.Task{}, err
	}
	out.CreatedAt = createdAt
	out.UpdatedAt = updatedAt
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
