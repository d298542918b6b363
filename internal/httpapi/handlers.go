package httpapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sandeepkv93/taskhub/internal/model"
	"github.com/sandeepkv93/taskhub/internal/task"
	"github.com/sandeepkv93/taskhub/internal/views"
)

const healthTimeout = 2 * time.Second

func (s *Server) handleList(c *gin.Context) {
	tasks, err := s.svc.List(c.Request.Context())
	if err != nil {
		s.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (s *Server) handleCreate(c *gin.Context) {
	var in model.NewTask
	if !s.bindJSON(c, &in) {
		return
	}
	created, err := s.svc.Create(c.Request.Context(), in)
	if err != nil {
		s.serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// handleUpdate treats an empty body as an empty patch.
func (s *Server) handleUpdate(c *gin.Context) {
	id, err := task.ParseID(c.Param("id"))
	if err != nil {
		s.serviceError(c, err)
		return
	}
	var patch model.TaskPatch
	if !s.bindJSON(c, &patch) {
		return
	}
	updated, err := s.svc.Update(c.Request.Context(), id, patch)
	if err != nil {
		s.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) handleDelete(c *gin.Context) {
	id, err := task.ParseID(c.Param("id"))
	if err != nil {
		s.serviceError(c, err)
		return
	}
	if err := s.svc.Delete(c.Request.Context(), id); err != nil {
		s.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "task deleted"})
}

func (s *Server) handleInitDB(c *gin.Context) {
	if err := s.svc.InitSchema(c.Request.Context()); err != nil {
		s.logError(c, "init schema failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database initialization failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "database initialized"})
}

func (s *Server) handleHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	dbTime, err := s.svc.DatabaseTime(ctx)
	if err != nil {
		s.logError(c, "health check failed", err)
		msg := "database unavailable"
		if s.development() {
			msg = err.Error()
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":    "ERROR",
			"timestamp": s.now().UTC(),
			"database":  "Disconnected",
			"error":     msg,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "OK",
		"timestamp":   s.now().UTC(),
		"version":     s.version,
		"environment": s.env,
		"database":    "Connected",
		"db_time":     dbTime,
	})
}

// handleBoard serves a read-only HTML render of the current list.
func (s *Server) handleBoard(c *gin.Context) {
	tasks, err := s.svc.List(c.Request.Context())
	if err != nil {
		s.serverError(c, err)
		return
	}
	var buf bytes.Buffer
	if err := views.RenderHTMLPage(&buf, "Tasks", views.BuildBoard(tasks, s.loc)); err != nil {
		s.serverError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) handleNoRoute(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"error":  "route not found",
		"path":   c.Request.URL.RequestURI(),
		"method": c.Request.Method,
	})
}

func (s *Server) handlePanic(c *gin.Context, recovered any) {
	s.logError(c, "panic recovered", fmt.Errorf("%v", recovered))
	msg := "an unexpected error occurred"
	if s.development() {
		msg = fmt.Sprint(recovered)
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"error":   "internal server error",
		"message": msg,
	})
}

// bindJSON decodes the body into obj and writes a 400 on failure.
func (s *Server) bindJSON(c *gin.Context, obj any) bool {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize)
	err := c.ShouldBindJSON(obj)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body too large"})
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
	return false
}

func (s *Server) serviceError(c *gin.Context, err error) {
	var verr *task.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Reason})
	case errors.Is(err, task.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
	default:
		s.serverError(c, err)
	}
}

func (s *Server) serverError(c *gin.Context, err error) {
	s.logError(c, "request failed", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func (s *Server) logError(c *gin.Context, msg string, err error) {
	s.logger.ErrorContext(c.Request.Context(), msg,
		"request_id", RequestIDFromContext(c),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"err", err,
	)
}
