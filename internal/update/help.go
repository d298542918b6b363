package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/taskhub/internal/views"
)

const paletteHelp = "## Commands\n\n" +
	"- `/add <title> [| description]` creates a task\n" +
	"- `/toggle <id>` flips completed\n" +
	"- `/delete <id>` deletes after confirmation\n" +
	"- `/refresh` reloads from the server\n" +
	"- `/init` creates the table if missing\n"

type KeyBinding struct {
	Key    string
	Action string
}

func (m Model) renderHelpView() string {
	var plain []string
	for _, kb := range m.keyBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Bindings: plain,
		Markdown: paletteHelp,
	})
}

func (m Model) keyBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Down + "/" + m.Keys.Up, Action: "move cursor"},
		{Key: "space/" + m.Keys.Toggle, Action: "toggle completed"},
		{Key: m.Keys.Delete, Action: "delete (asks y/n)"},
		{Key: m.Keys.Add, Action: "add task"},
		{Key: m.Keys.Refresh, Action: "refresh"},
		{Key: m.Keys.Palette, Action: "command palette"},
		{Key: m.Keys.Help, Action: "toggle help"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.keyBindings()))
	for _, kb := range m.keyBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
