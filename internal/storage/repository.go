package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/taskhub/internal/model"
)

var (
	ErrNotFound      = errors.New("storage: not found")
	ErrUnknownDriver = errors.New("storage: unknown driver")
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Repository is the record store. Every method issues a single statement,
// so per-row atomicity comes from the database itself.
type Repository interface {
	InitSchema(ctx context.Context) error
	ListTasks(ctx context.Context) ([]model.Task, error)
	CreateTask(ctx context.Context, in model.NewTask) (model.Task, error)
	UpdateTask(ctx context.Context, id int64, in TaskUpdate) (model.Task, error)
	DeleteTask(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
	// Now reports the database clock.
	Now(ctx context.Context) (time.Time, error)
	Close() error
}

// Open picks a repository implementation by driver name.
func Open(ctx context.Context, driver, dsn string) (Repository, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverSQLite, "sqlite3":
		return OpenSQLite(dsn)
	case DriverPostgres, "postgresql", "pgx":
		return OpenPostgres(ctx, dsn)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}
