package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sandeepkv93/taskhub/internal/model"
	"github.com/sandeepkv93/taskhub/internal/session"
)

// API is what the terminal UI needs from the HTTP client.
type API interface {
	session.API
	InitDB(ctx context.Context) (string, error)
}

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Up      string
	Down    string
	Toggle  string
	Delete  string
	Add     string
	Refresh string
	Palette string
	Help    string
	Quit    string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type AddFormState struct {
	Active bool
	// Field is 0 for the title input and 1 for the description input.
	Field int
}

// PendingDelete is a delete waiting for y/n.
type PendingDelete struct {
	ID    int64
	Title string
}

type Model struct {
	Cache       session.Cache
	Cursor      int
	Form        AddFormState
	Confirm     *PendingDelete
	Palette     CommandPaletteState
	HelpVisible bool
	Status      StatusBar
	Keys        GlobalKeyMap
	Quitting    bool
	LastError   error

	api API
	loc *time.Location
	// Bubble components
	titleInput   textinput.Model
	descInput    textinput.Model
	commandInput textinput.Model
	busySpinner  spinner.Model
	helpModel    help.Model
	boardView    viewport.Model
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

// RefreshMsg reloads the list from the server.
type RefreshMsg struct{}

type AppErrorMsg struct {
	Err error
}

type TasksLoadedMsg struct {
	Tasks []model.Task
	Err   error
}

type TaskCreatedMsg struct {
	Task model.Task
	Err  error
}

type TaskUpdatedMsg struct {
	Task model.Task
	Err  error
}

type TaskDeletedMsg struct {
	ID  int64
	Err error
}

type SchemaInitMsg struct {
	Message string
	Err     error
}
