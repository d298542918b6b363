package httpapi

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sandeepkv93/taskhub/internal/logging"
	"github.com/sandeepkv93/taskhub/internal/task"
)

// maxBodySize bounds JSON request bodies.
const maxBodySize = 1 << 20 // 1MB

type Options struct {
	Env     string
	Version string
	Logger  *slog.Logger
	// Location formats dates on the HTML board. Nil means local time.
	Location *time.Location
}

// Server exposes task.Service over HTTP.
type Server struct {
	svc     *task.Service
	router  *gin.Engine
	logger  *slog.Logger
	env     string
	version string
	loc     *time.Location
	now     func() time.Time
}

func NewServer(svc *task.Service, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	router := gin.New()
	// Trailing-slash paths fall through to NoRoute instead of redirecting.
	router.RedirectTrailingSlash = false

	s := &Server{
		svc:     svc,
		router:  router,
		logger:  logger,
		env:     opts.Env,
		version: opts.Version,
		loc:     opts.Location,
		now:     time.Now,
	}

	router.Use(
		requestID(),
		accessLog(logger),
		gin.CustomRecoveryWithWriter(io.Discard, s.handlePanic),
	)
	router.NoRoute(s.handleNoRoute)

	router.GET("/", s.handleBoard)

	api := router.Group("/api")
	{
		api.GET("/health", s.handleHealth)
		api.POST("/init-db", s.handleInitDB)
		api.GET("/todos", s.handleList)
		api.POST("/todos", s.handleCreate)
		api.PUT("/todos/:id", s.handleUpdate)
		api.DELETE("/todos/:id", s.handleDelete)
	}

	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) development() bool {
	return s.env == "development"
}
