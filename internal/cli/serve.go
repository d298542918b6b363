package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/taskhub/internal/config"
	"github.com/sandeepkv93/taskhub/internal/httpapi"
	"github.com/sandeepkv93/taskhub/internal/logging"
	"github.com/sandeepkv93/taskhub/internal/storage"
	"github.com/sandeepkv93/taskhub/internal/task"
)

func serveCmd(opts *rootOptions) *cobra.Command {
	var (
		addr       string
		initSchema bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Start the task API and the HTML board.

Examples:
  taskhub serve
  taskhub serve --addr :8080 --init-db
  DATABASE_URL=postgres://localhost/tasks taskhub serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("init-db") {
				cfg.Server.InitSchema = initSchema
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", cfg.Server.Addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", cfg.Server.Addr, err)
			}
			return serve(ctx, cfg, opts.version, ln, cmd.ErrOrStderr())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	cmd.Flags().BoolVar(&initSchema, "init-db", false, "create the todos table before serving")
	return cmd
}

// serve runs the API on ln until ctx is cancelled, then drains in-flight
// requests for at most cfg.Server.ShutdownTimeout.
func serve(ctx context.Context, cfg config.Config, version string, ln net.Listener, logOut io.Writer) error {
	logger, err := logging.New(logOut, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		_ = ln.Close()
		return err
	}
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	repo, err := storage.Open(ctx, cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		_ = ln.Close()
		return err
	}
	defer repo.Close()

	svc := task.NewService(repo)
	if cfg.Server.InitSchema {
		if err := svc.InitSchema(ctx); err != nil {
			_ = ln.Close()
			return fmt.Errorf("init schema: %w", err)
		}
		logger.Info("schema ready", "driver", cfg.Database.Driver)
	}

	api := httpapi.NewServer(svc, httpapi.Options{
		Env:     cfg.Env,
		Version: version,
		Logger:  logger,
	})
	srv := &http.Server{
		Handler:           api.Handler(),
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	logger.Info("listening", "addr", ln.Addr().String(), "env", cfg.Env, "driver", cfg.Database.Driver)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout(cfg))
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	logger.Info("bye")
	return nil
}

func shutdownTimeout(cfg config.Config) time.Duration {
	if cfg.Server.ShutdownTimeout <= 0 {
		return 5 * time.Second
	}
	return cfg.Server.ShutdownTimeout
}
