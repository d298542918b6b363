package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskhub/internal/commands"
	"github.com/sandeepkv93/taskhub/internal/session"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
		return m, cmd
	}
	return m, nil
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var next tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			in, err := session.PrepareCreate(a.Title, a.Description)
			if err != nil {
				return commands.Result{}, invalidArgument(err)
			}
			m.Cache = m.Cache.BeginMutation()
			next = tea.Batch(m.busySpinner.Tick, createCmd(m.api, in))
			return commands.Result{Message: fmt.Sprintf("adding %q", in.Title)}, nil
		},
		Toggle: func(a commands.TargetArgs) (commands.Result, error) {
			patch, err := session.PrepareToggle(m.Cache, a.ID)
			if err != nil {
				return commands.Result{}, invalidArgument(err)
			}
			m.Cache = m.Cache.BeginMutation()
			next = tea.Batch(m.busySpinner.Tick, updateCmd(m.api, a.ID, patch))
			return commands.Result{Message: fmt.Sprintf("toggling #%d", a.ID)}, nil
		},
		Delete: func(a commands.TargetArgs) (commands.Result, error) {
			t, ok := m.Cache.Find(a.ID)
			if !ok {
				return commands.Result{}, invalidArgument(fmt.Errorf("%w: %d", session.ErrUnknownTask, a.ID))
			}
			m.Confirm = &PendingDelete{ID: t.ID, Title: t.Title}
			return commands.Result{Message: fmt.Sprintf("confirm delete of #%d", t.ID)}, nil
		},
		Refresh: func() (commands.Result, error) {
			m, next = m.startLoad()
			return commands.Result{Message: "refreshing"}, nil
		},
		Init: func() (commands.Result, error) {
			m, next = m.startInit()
			return commands.Result{Message: "initializing database"}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	m.Status = StatusBar{Text: res.Message}
	return m, next
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func invalidArgument(err error) error {
	return &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
}
