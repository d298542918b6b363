package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = "taskhub.yaml"

type Config struct {
	Env      string         `mapstructure:"env" yaml:"env"`
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	Client   ClientConfig   `mapstructure:"client" yaml:"client"`
}

type ServerConfig struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	InitSchema        bool          `mapstructure:"init_schema" yaml:"init_schema"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver" yaml:"driver"`
	DSN    string `mapstructure:"dsn" yaml:"dsn"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

type ClientConfig struct {
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
}

func Default() Config {
	return Config{
		Env: EnvDevelopment,
		Server: ServerConfig{
			Addr:              ":3000",
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownTimeout:   5 * time.Second,
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "taskhub.db",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Client: ClientConfig{
			BaseURL: "http://localhost:3000",
		},
	}
}

func (c Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// Load merges defaults, the optional YAML file and the environment, in
// that order. A missing file is only an error when path was given
// explicitly.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())
	v.SetConfigType("yaml")

	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultFile
	}
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if explicit {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	v.SetEnvPrefix("TASKHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Names used by the original deployment scripts.
	_ = v.BindEnv("env", "TASKHUB_ENV", "APP_ENV")
	_ = v.BindEnv("database.dsn", "TASKHUB_DATABASE_DSN", "DATABASE_URL")
	_ = v.BindEnv("database.driver", "TASKHUB_DATABASE_DRIVER")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if strings.TrimSpace(cfg.Database.Driver) == "" {
		cfg.Database.Driver = DriverFromDSN(cfg.Database.DSN)
	}
	cfg = applyPortEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	switch c.Env {
	case EnvDevelopment, EnvProduction, EnvTest:
	default:
		errs = append(errs, fmt.Errorf("config: unknown env %q", c.Env))
	}
	switch strings.ToLower(c.Database.Driver) {
	case "sqlite", "sqlite3", "postgres", "postgresql", "pgx":
	default:
		errs = append(errs, fmt.Errorf("config: unknown database driver %q", c.Database.Driver))
	}
	if strings.TrimSpace(c.Database.DSN) == "" {
		errs = append(errs, errors.New("config: database dsn is required"))
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, errors.New("config: server addr is required"))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("config: unknown log format %q", c.Log.Format))
	}
	return errors.Join(errs...)
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("env", d.Env)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.read_header_timeout", d.Server.ReadHeaderTimeout)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("server.init_schema", d.Server.InitSchema)
	// database.driver has no default here: Load infers it from the DSN.
	v.SetDefault("database.dsn", d.Database.DSN)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("client.base_url", d.Client.BaseURL)
}

// DriverFromDSN picks postgres for a postgres:// or postgresql:// URL and
// sqlite for anything else.
func DriverFromDSN(dsn string) string {
	lower := strings.ToLower(strings.TrimSpace(dsn))
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return "postgres"
	}
	return "sqlite"
}

// applyPortEnv honours a bare PORT unless TASKHUB_SERVER_ADDR is set.
func applyPortEnv(cfg Config) Config {
	if strings.TrimSpace(os.Getenv("TASKHUB_SERVER_ADDR")) != "" {
		return cfg
	}
	if port, ok := getEnvInt("PORT"); ok && port > 0 && port < 65536 {
		cfg.Server.Addr = ":" + strconv.Itoa(port)
	}
	return cfg
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
