package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sandeepkv93/taskhub/internal/model"
)

// PostgresRepository keeps timestamps on the database clock.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// OpenPostgres accepts a connection string or URL understood by pgxpool.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresRepository, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return &PostgresRepository{pool: pool}, nil
}

func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

func (r *PostgresRepository) InitSchema(ctx context.Context) error {
	return applyMigrations(ctx, dialectPostgres, ".up.sql", func(ctx context.Context, query string) error {
		_, err := r.pool.Exec(ctx, query)
		return err
	})
}

func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *PostgresRepository) Now(ctx context.Context) (time.Time, error) {
	var now time.Time
	err := r.pool.QueryRow(ctx, `SELECT now()`).Scan(&now)
	return now, err
}

func (r *PostgresRepository) ListTasks(ctx context.Context) ([]model.Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM todos
		ORDER BY created_at DESC, id DESC;
	`)
	if err != nil {
		return nil, err
	}
	tasks, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Task, error) {
		return scanPgTask(row)
	})
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = make([]model.Task, 0)
	}
	return tasks, nil
}

// CreateTask lets both timestamps default to the same transaction time.
func (r *PostgresRepository) CreateTask(ctx context.Context, in model.NewTask) (model.Task, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO todos (title, description)
		VALUES ($1, $2)
		RETURNING `+taskColumns+`;
	`,
		in.Title,
		in.Description,
	)
	return scanPgTask(row)
}

func (r *PostgresRepository) UpdateTask(ctx context.Context, id int64, in TaskUpdate) (model.Task, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE todos
		SET title = COALESCE($1, title),
		    description = COALESCE($2, description),
		    completed = COALESCE($3, completed),
		    updated_at = GREATEST(CURRENT_TIMESTAMP, created_at)
		WHERE id = $4
		RETURNING `+taskColumns+`;
	`,
		in.Title,
		in.Description,
		in.Completed,
		id,
	)
	task, err := scanPgTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Task{}, ErrNotFound
		}
		return model.Task{}, err
	}
	return task, nil
}

func (r *PostgresRepository) DeleteTask(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM todos
		WHERE id = $1;
	`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanPgTask(row pgx.Row) (model.Task, error) {
	var t model.Task
	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.Completed,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return model.Task{}, err
	}
	return t, nil
}
