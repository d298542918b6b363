package update

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskhub/internal/model"
	"github.com/sandeepkv93/taskhub/internal/views"
)

const (
	defaultBoardWidth  = 76
	defaultBoardHeight = 15
	minBoardHeight     = 5
	// chromeHeight is the number of lines around the board panel.
	chromeHeight = 10
)

// NewModel builds the UI around api. A nil loc formats dates in local time.
func NewModel(api API, loc *time.Location) Model {
	if loc == nil {
		loc = time.Local
	}
	m := Model{
		api: api,
		loc: loc,
		Keys: GlobalKeyMap{
			Up:      "k",
			Down:    "j",
			Toggle:  "t",
			Delete:  "d",
			Add:     "a",
			Refresh: "r",
			Palette: "/",
			Help:    "?",
			Quit:    "q",
		},
	}
	m.initBubbleComponents()
	m.syncBubbleData()
	return m
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}
	if m.Cache.Busy() {
		status = strings.TrimSpace(m.busySpinner.View() + " " + m.Cache.State.String() + "... " + status)
	}

	prompt := views.RenderCommandPalette(m.Palette.Active, m.commandInput.View())
	if m.Confirm != nil {
		prompt = views.RenderConfirmPrompt(m.Confirm.Title)
	}
	if m.HelpVisible {
		prompt = strings.TrimSpace(prompt + "\n" + m.renderHelpView())
	}

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("taskhub | %s", m.selectedLabel()),
		Stats:        views.RenderStats(m.Cache.Stats()),
		Body:         m.boardView.View(),
		Form:         m.renderAddForm(),
		Prompt:       prompt,
		StatusLine:   status,
		Notification: views.RenderNotification("error", m.Cache.Banner),
		Footer:       m.helpModel.ShortHelpView(m.helpBindings()),
	})
}

func (m *Model) initBubbleComponents() {
	m.titleInput = textinput.New()
	m.titleInput.Prompt = "title> "
	m.titleInput.Placeholder = "What needs doing?"
	m.titleInput.CharLimit = model.MaxTitleLength
	m.titleInput.Width = 48

	m.descInput = textinput.New()
	m.descInput.Prompt = "notes> "
	m.descInput.Placeholder = "optional description"
	m.descInput.CharLimit = 1024
	m.descInput.Width = 48

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 512
	m.commandInput.Width = 48

	m.busySpinner = spinner.New()
	m.busySpinner.Spinner = spinner.Dot

	m.helpModel = help.New()
	m.boardView = viewport.New(defaultBoardWidth, defaultBoardHeight)
}

// syncBubbleData redraws the board into the viewport and keeps the cursor row
// on screen.
func (m *Model) syncBubbleData() {
	m.clampCursor()
	board := views.BuildBoard(m.Cache.Tasks, m.loc)
	m.boardView.SetContent(views.RenderBoardPanel(views.BoardPanelData{Board: board, Cursor: m.Cursor}))

	if board.Empty {
		m.boardView.GotoTop()
		return
	}
	top, height := rowSpan(board, m.Cursor)
	if top < m.boardView.YOffset {
		m.boardView.SetYOffset(top)
	} else if bottom := top + height; bottom > m.boardView.YOffset+m.boardView.Height {
		m.boardView.SetYOffset(bottom - m.boardView.Height)
	}
}

func (m *Model) resize(width, height int) {
	w := width - 4
	if w < 20 {
		w = 20
	}
	h := height - chromeHeight
	if m.Form.Active {
		h -= 5
	}
	if h < minBoardHeight {
		h = minBoardHeight
	}
	m.boardView.Width = w
	m.boardView.Height = h
}

// rowSpan returns the first line and line count of row i in the board panel.
func rowSpan(board views.Board, i int) (int, int) {
	top := 0
	for j, row := range board.Rows {
		height := 2
		if row.Description != "" {
			height = 3
		}
		if j == i {
			return top, height
		}
		top += height
	}
	return top, 0
}

func (m *Model) clampCursor() {
	if m.Cursor >= len(m.Cache.Tasks) {
		m.Cursor = len(m.Cache.Tasks) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

func (m Model) selectedTask() (model.Task, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Cache.Tasks) {
		return model.Task{}, false
	}
	return m.Cache.Tasks[m.Cursor], true
}

func (m Model) selectedLabel() string {
	t, ok := m.selectedTask()
	if !ok {
		return "selected: -"
	}
	return fmt.Sprintf("selected: #%d", t.ID)
}

func (m Model) renderAddForm() string {
	return views.RenderAddForm(views.AddFormData{
		Active:          m.Form.Active,
		TitleView:       m.titleInput.View(),
		DescriptionView: m.descInput.View(),
	})
}

func loadCmd(api API) tea.Cmd {
	return func() tea.Msg {
		tasks, err := api.List(context.Background())
		return TasksLoadedMsg{Tasks: tasks, Err: err}
	}
}

func createCmd(api API, in model.NewTask) tea.Cmd {
	return func() tea.Msg {
		created, err := api.Create(context.Background(), in)
		return TaskCreatedMsg{Task: created, Err: err}
	}
}

func updateCmd(api API, id int64, patch model.TaskPatch) tea.Cmd {
	return func() tea.Msg {
		updated, err := api.Update(context.Background(), id, patch)
		return TaskUpdatedMsg{Task: updated, Err: err}
	}
}

func deleteCmd(api API, id int64) tea.Cmd {
	return func() tea.Msg {
		return TaskDeletedMsg{ID: id, Err: api.Delete(context.Background(), id)}
	}
}

func initSchemaCmd(api API) tea.Cmd {
	return func() tea.Msg {
		msg, err := api.InitDB(context.Background())
		return SchemaInitMsg{Message: msg, Err: err}
	}
}
