package session

import (
	"slices"

	"github.com/sandeepkv93/taskhub/internal/model"
)

type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateMutating
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateMutating:
		return "mutating"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Cache is the client-side copy of the task list. Every transition returns a
// new value; Tasks is never shared between two caches.
type Cache struct {
	State  State
	Tasks  []model.Task
	Banner string
}

// Busy reports whether a call is outstanding.
func (c Cache) Busy() bool {
	return c.State == StateLoading || c.State == StateMutating
}

func (c Cache) Stats() model.Stats {
	return model.CountTasks(c.Tasks)
}

func (c Cache) Find(id int64) (model.Task, bool) {
	i := c.index(id)
	if i < 0 {
		return model.Task{}, false
	}
	return c.Tasks[i], true
}

func (c Cache) BeginLoad() Cache {
	c.State = StateLoading
	return c
}

func (c Cache) BeginMutation() Cache {
	c.State = StateMutating
	return c
}

// ApplyLoad replaces the list wholesale on success. On failure the previous
// list stays visible.
func (c Cache) ApplyLoad(tasks []model.Task, err error) Cache {
	if err != nil {
		return c.fail("load failed", err)
	}
	c.Tasks = slices.Clone(tasks)
	if c.Tasks == nil {
		c.Tasks = []model.Task{}
	}
	return c.succeed()
}

// ApplyCreate prepends the server's record.
func (c Cache) ApplyCreate(created model.Task, err error) Cache {
	if err != nil {
		return c.fail("add failed", err)
	}
	tasks := make([]model.Task, 0, len(c.Tasks)+1)
	tasks = append(tasks, created)
	c.Tasks = append(tasks, c.Tasks...)
	return c.succeed()
}

// ApplyUpdate replaces the entry with the same id. A record that vanished
// from the cache meanwhile is not re-added.
func (c Cache) ApplyUpdate(updated model.Task, err error) Cache {
	if err != nil {
		return c.fail("update failed", err)
	}
	c.Tasks = slices.Clone(c.Tasks)
	if i := c.index(updated.ID); i >= 0 {
		c.Tasks[i] = updated
	}
	return c.succeed()
}

func (c Cache) ApplyDelete(id int64, err error) Cache {
	if err != nil {
		return c.fail("delete failed", err)
	}
	c.Tasks = slices.DeleteFunc(slices.Clone(c.Tasks), func(t model.Task) bool { return t.ID == id })
	return c.succeed()
}

// ApplyResult records the outcome of a call that does not change the list.
func (c Cache) ApplyResult(op string, err error) Cache {
	if err != nil {
		return c.fail(op+" failed", err)
	}
	return c.succeed()
}

// WithBanner shows a message without changing the list.
func (c Cache) WithBanner(msg string) Cache {
	c.Banner = msg
	return c
}

func (c Cache) succeed() Cache {
	c.State = StateLoaded
	c.Banner = ""
	return c
}

func (c Cache) fail(op string, err error) Cache {
	c.State = StateFailed
	c.Banner = op + ": " + err.Error()
	return c
}

func (c Cache) index(id int64) int {
	return slices.IndexFunc(c.Tasks, func(t model.Task) bool { return t.ID == id })
}
