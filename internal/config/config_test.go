package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Server.Addr != ":3000" || cfg.Env != EnvDevelopment {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.DSN != "taskhub.db" {
		t.Fatalf("unexpected database defaults: %+v", cfg.Database)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	chdirTemp(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":3000" || cfg.Server.ShutdownTimeout != 5*time.Second {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	chdirTemp(t)
	if _, err := Load("nope.yaml"); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := chdirTemp(t)
	body := `env: production
server:
  addr: ":9000"
  shutdown_timeout: 10s
database:
  driver: postgres
  dsn: postgres://file/db
log:
  format: json
`
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("TASKHUB_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Env != EnvProduction || cfg.IsDevelopment() {
		t.Fatalf("unexpected env: %q", cfg.Env)
	}
	if cfg.Server.Addr != ":9000" || cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Fatalf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Database.Driver != "postgres" || cfg.Database.DSN != "postgres://env/db" {
		t.Fatalf("env must override file: %+v", cfg.Database)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Fatalf("unexpected log config: %+v", cfg.Log)
	}
}

func TestPortEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("PORT", "8081")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":8081" {
		t.Fatalf("expected PORT to set addr, got %q", cfg.Server.Addr)
	}

	t.Setenv("TASKHUB_SERVER_ADDR", "127.0.0.1:7000")
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:7000" {
		t.Fatalf("TASKHUB_SERVER_ADDR must win over PORT, got %q", cfg.Server.Addr)
	}
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := Default()
	cfg.Env = "staging"
	cfg.Database.Driver = "oracle"
	cfg.Log.Format = "xml"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"staging", "oracle", "xml"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %v", want, err)
		}
	}
}

func TestLoadInfersPostgresFromDatabaseURL(t *testing.T) {
	chdirTemp(t)
	t.Setenv("TASKHUB_DATABASE_DRIVER", "")
	t.Setenv("TASKHUB_DATABASE_DSN", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/tasks")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.Driver != "postgres" || cfg.Database.DSN != "postgres://localhost/tasks" {
		t.Fatalf("expected postgres from DATABASE_URL, got %+v", cfg.Database)
	}

	t.Setenv("TASKHUB_DATABASE_DRIVER", "sqlite")
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Fatalf("explicit driver must win, got %q", cfg.Database.Driver)
	}
}

func TestLoadInfersDriverFromFileDSN(t *testing.T) {
	dir := chdirTemp(t)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("TASKHUB_DATABASE_DRIVER", "")
	t.Setenv("TASKHUB_DATABASE_DSN", "")
	path := filepath.Join(dir, "db.yaml")
	if err := os.WriteFile(path, []byte("database:\n  dsn: postgresql://db/tasks\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.Driver != "postgres" {
		t.Fatalf("expected postgres, got %+v", cfg.Database)
	}
}

func TestDriverFromDSN(t *testing.T) {
	cases := []struct {
		dsn  string
		want string
	}{
		{"postgres://localhost/tasks", "postgres"},
		{"POSTGRESQL://user@db:5432/tasks?sslmode=disable", "postgres"},
		{"taskhub.db", "sqlite"},
		{"file:tasks.db?cache=shared", "sqlite"},
		{":memory:", "sqlite"},
		{"", "sqlite"},
	}
	for _, tc := range cases {
		if got := DriverFromDSN(tc.dsn); got != tc.want {
			t.Fatalf("DriverFromDSN(%q) = %q, want %q", tc.dsn, got, tc.want)
		}
	}
}
