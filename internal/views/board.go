package views

import (
	"time"

	"github.com/sandeepkv93/taskhub/internal/model"
)

// DateLayout is day/month/year.
const DateLayout = "02/01/2006"

const (
	ActionToggle = "toggle"
	ActionDelete = "delete"
)

const (
	emptyTitle = "No tasks yet"
	emptyHint  = "Start by adding your first task!"
)

// Board is the declarative view-model of a task list. Renderers read it and
// never touch model.Task directly.
type Board struct {
	Empty      bool
	EmptyTitle string
	EmptyHint  string
	Rows       []Row
	Stats      model.Stats
	Banner     string
	Busy       bool
}

type Row struct {
	ID          int64
	Title       string
	Description string
	Completed   bool
	Created     string
	// Updated is empty when the task was never modified.
	Updated string
	Toggle  Action
	Delete  Action
}

type Action struct {
	Kind   string
	TaskID int64
	Label  string
}

// BuildBoard derives the view-model from tasks in their given order. A nil
// loc formats dates in local time.
func BuildBoard(tasks []model.Task, loc *time.Location) Board {
	if loc == nil {
		loc = time.Local
	}
	b := Board{Stats: model.CountTasks(tasks)}
	if len(tasks) == 0 {
		b.Empty = true
		b.EmptyTitle = emptyTitle
		b.EmptyHint = emptyHint
		return b
	}
	b.Rows = make([]Row, 0, len(tasks))
	for _, t := range tasks {
		b.Rows = append(b.Rows, buildRow(t, loc))
	}
	return b
}

func buildRow(t model.Task, loc *time.Location) Row {
	row := Row{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		Created:     formatDate(t.CreatedAt, loc),
		Toggle:      Action{Kind: ActionToggle, TaskID: t.ID, Label: "✓"},
		Delete:      Action{Kind: ActionDelete, TaskID: t.ID, Label: "🗑️"},
	}
	if t.Completed {
		row.Toggle.Label = "✅"
	}
	if t.Modified() {
		row.Updated = formatDate(t.UpdatedAt, loc)
	}
	return row
}

func formatDate(ts time.Time, loc *time.Location) string {
	if ts.IsZero() {
		return ""
	}
	return ts.In(loc).Format(DateLayout)
}
