package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskhub/internal/session"
)

func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return RefreshMsg{} }
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncBubbleData()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(typed.Width, typed.Height)
		return m, nil
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Confirm != nil {
			return m.handleConfirmKey(typed)
		}
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		if m.Form.Active {
			return m.handleFormKey(typed)
		}
		return m.handleBoardKey(typed)
	case spinner.TickMsg:
		if m.Cache.Busy() {
			var cmd tea.Cmd
			m.busySpinner, cmd = m.busySpinner.Update(typed)
			return m, cmd
		}
	case RefreshMsg:
		return m.startLoad()
	case TasksLoadedMsg:
		m.Cache = m.Cache.ApplyLoad(typed.Tasks, typed.Err)
		if typed.Err != nil {
			m.LastError = typed.Err
			return m, nil
		}
		m.Status = StatusBar{Text: fmt.Sprintf("loaded %d task(s)", len(m.Cache.Tasks))}
	case TaskCreatedMsg:
		m.Cache = m.Cache.ApplyCreate(typed.Task, typed.Err)
		if typed.Err != nil {
			m.LastError = typed.Err
			return m, nil
		}
		m.closeForm()
		m.Cursor = 0
		m.Status = StatusBar{Text: fmt.Sprintf("added #%d", typed.Task.ID)}
	case TaskUpdatedMsg:
		m.Cache = m.Cache.ApplyUpdate(typed.Task, typed.Err)
		if typed.Err != nil {
			m.LastError = typed.Err
			return m, nil
		}
		state := "reopened"
		if typed.Task.Completed {
			state = "completed"
		}
		m.Status = StatusBar{Text: fmt.Sprintf("%s #%d", state, typed.Task.ID)}
	case TaskDeletedMsg:
		m.Cache = m.Cache.ApplyDelete(typed.ID, typed.Err)
		if typed.Err != nil {
			m.LastError = typed.Err
			return m, nil
		}
		m.Status = StatusBar{Text: fmt.Sprintf("deleted #%d", typed.ID)}
	case SchemaInitMsg:
		m.Cache = m.Cache.ApplyResult("init", typed.Err)
		if typed.Err != nil {
			m.LastError = typed.Err
			return m, nil
		}
		m.Status = StatusBar{Text: typed.Message}
		return m.startLoad()
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleBoardKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	case m.Keys.Down, "down":
		m.Cursor++
	case m.Keys.Up, "up":
		m.Cursor--
	case m.Keys.Toggle, " ":
		if t, ok := m.selectedTask(); ok {
			return m.startToggle(t.ID)
		}
	case m.Keys.Delete:
		if t, ok := m.selectedTask(); ok {
			return m.askDelete(t.ID)
		}
	case m.Keys.Add:
		m.openForm()
	case m.Keys.Refresh:
		return m.startLoad()
	case m.Keys.Palette:
		m.Palette.Active = true
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		m.Status = StatusBar{Text: "command palette active"}
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
	}
	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	pending := m.Confirm
	switch msg.String() {
	case "y", "Y":
		m.Confirm = nil
		m.Cache = m.Cache.BeginMutation()
		return m, tea.Batch(m.busySpinner.Tick, deleteCmd(m.api, pending.ID))
	case "n", "N", "esc":
		m.Confirm = nil
		m.Status = StatusBar{Text: "delete cancelled"}
	}
	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeForm()
		m.Status = StatusBar{Text: "add cancelled"}
		return m, nil
	case "tab", "shift+tab":
		m.focusField(1 - m.Form.Field)
		return m, nil
	case "enter":
		return m.startCreate(m.titleInput.Value(), m.descInput.Value())
	}

	var cmd tea.Cmd
	if m.Form.Field == 0 {
		m.titleInput, cmd = m.titleInput.Update(msg)
	} else {
		m.descInput, cmd = m.descInput.Update(msg)
	}
	return m, cmd
}

func (m Model) startLoad() (Model, tea.Cmd) {
	m.Cache = m.Cache.BeginLoad()
	return m, tea.Batch(m.busySpinner.Tick, loadCmd(m.api))
}

// startCreate rejects a blank title locally, as the session does.
func (m Model) startCreate(title, description string) (Model, tea.Cmd) {
	in, err := session.PrepareCreate(title, description)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	m.Cache = m.Cache.BeginMutation()
	return m, tea.Batch(m.busySpinner.Tick, createCmd(m.api, in))
}

func (m Model) startToggle(id int64) (Model, tea.Cmd) {
	patch, err := session.PrepareToggle(m.Cache, id)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	m.Cache = m.Cache.BeginMutation()
	return m, tea.Batch(m.busySpinner.Tick, updateCmd(m.api, id, patch))
}

func (m Model) askDelete(id int64) (Model, tea.Cmd) {
	t, ok := m.Cache.Find(id)
	if !ok {
		err := fmt.Errorf("%w: %d", session.ErrUnknownTask, id)
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	m.Confirm = &PendingDelete{ID: t.ID, Title: t.Title}
	return m, nil
}

func (m Model) startInit() (Model, tea.Cmd) {
	m.Cache = m.Cache.BeginMutation()
	return m, tea.Batch(m.busySpinner.Tick, initSchemaCmd(m.api))
}

func (m *Model) openForm() {
	m.Form.Active = true
	m.focusField(0)
	m.Status = StatusBar{Text: "new task"}
}

func (m *Model) closeForm() {
	m.Form = AddFormState{}
	m.titleInput.SetValue("")
	m.descInput.SetValue("")
	m.titleInput.Blur()
	m.descInput.Blur()
}

func (m *Model) focusField(field int) {
	m.Form.Field = field
	if field == 0 {
		m.descInput.Blur()
		m.titleInput.Focus()
		return
	}
	m.titleInput.Blur()
	m.descInput.Focus()
}
