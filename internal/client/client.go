package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/taskhub/internal/model"
)

// MsgUnreachable is the message of every transport failure.
const MsgUnreachable = "cannot reach server"

// Error is returned for every failed call. Status is 0 when no response was
// received.
type Error struct {
	Status  int
	Message string
	Err     error

	body []byte
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

type Health struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Version     string    `json:"version,omitempty"`
	Environment string    `json:"environment,omitempty"`
	Database    string    `json:"database"`
	DBTime      time.Time `json:"db_time,omitzero"`
	Error       string    `json:"error,omitempty"`
}

// Client talks to the task API.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

func (c *Client) List(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := c.do(ctx, http.MethodGet, "/api/todos", nil, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

func (c *Client) Create(ctx context.Context, in model.NewTask) (model.Task, error) {
	var out model.Task
	err := c.do(ctx, http.MethodPost, "/api/todos", in, &out)
	return out, err
}

func (c *Client) Update(ctx context.Context, id int64, patch model.TaskPatch) (model.Task, error) {
	var out model.Task
	err := c.do(ctx, http.MethodPut, taskPath(id), patch, &out)
	return out, err
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, taskPath(id), nil, nil)
}

// InitDB asks the server to create its schema and returns its message.
func (c *Client) InitDB(ctx context.Context) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	err := c.do(ctx, http.MethodPost, "/api/init-db", nil, &out)
	return out.Message, err
}

// Health returns the decoded body even when the server reports a failure.
func (c *Client) Health(ctx context.Context) (Health, error) {
	var out Health
	err := c.do(ctx, http.MethodGet, "/api/health", nil, &out)
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Status != 0 {
		_ = json.Unmarshal(apiErr.body, &out)
		if out.Status == "" {
			out.Status = "ERROR"
			out.Error = apiErr.Message
		}
	}
	return out, err
}

func taskPath(id int64) string {
	return "/api/todos/" + url.PathEscape(strconv.FormatInt(id, 10))
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Message: MsgUnreachable, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Status: resp.StatusCode, Message: MsgUnreachable, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{Status: resp.StatusCode, Message: errorMessage(resp.StatusCode, raw), body: raw}
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{Status: resp.StatusCode, Message: "invalid response from server", Err: err}
	}
	return nil
}

func errorMessage(status int, raw []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return fmt.Sprintf("server returned %d %s", status, http.StatusText(status))
}
