package views

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/taskhub/internal/model"
)

type BoardPanelData struct {
	Board  Board
	Cursor int
}

type AddFormData struct {
	Active          bool
	TitleView       string
	DescriptionView string
}

type HelpPanelData struct {
	Bindings []string
	Markdown string
}

func RenderStats(s model.Stats) string {
	return fmt.Sprintf("total: %d | completed: %d | pending: %d", s.Total, s.Completed, s.Pending)
}

// RenderBoardPanel is the terminal form of a Board. User text is sanitized
// before styling.
func RenderBoardPanel(data BoardPanelData) string {
	b := data.Board
	if b.Empty {
		return fmt.Sprintf("%s\n%s", b.EmptyTitle, metaStyle.Render(b.EmptyHint))
	}

	var sb strings.Builder
	for i, row := range b.Rows {
		cursor := " "
		if i == data.Cursor {
			cursor = cursorStyle.Render(">")
		}
		check := "[ ]"
		title := SanitizeText(row.Title)
		if row.Completed {
			check = "[x]"
			title = doneStyle.Render(title)
		}
		sb.WriteString(fmt.Sprintf("%s %s #%d %s\n", cursor, check, row.ID, title))
		if row.Description != "" {
			sb.WriteString("      " + SanitizeText(row.Description) + "\n")
		}
		meta := "created " + row.Created
		if row.Updated != "" {
			meta += "  updated " + row.Updated
		}
		sb.WriteString("      " + metaStyle.Render(meta) + "\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// RenderBoardText is the non-interactive terminal render used by the board
// command.
func RenderBoardText(b Board) string {
	lines := []string{RenderStats(b.Stats)}
	if b.Banner != "" {
		lines = append(lines, "error: "+SanitizeText(b.Banner))
	}
	lines = append(lines, RenderBoardPanel(BoardPanelData{Board: b, Cursor: -1}))
	return strings.Join(lines, "\n")
}

func RenderAddForm(data AddFormData) string {
	if !data.Active {
		return ""
	}
	var b strings.Builder
	b.WriteString("new task:\n")
	b.WriteString("keys: [tab] field [enter] save [esc] cancel\n")
	b.WriteString(data.TitleView + "\n")
	b.WriteString(data.DescriptionView)
	return b.String()
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: %s", input)
}

func RenderConfirmPrompt(title string) string {
	if title == "" {
		return ""
	}
	return fmt.Sprintf("delete %q? [y/n]", SanitizeText(title))
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("[%s] %s", strings.ToUpper(level), SanitizeText(body))
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	b.WriteString("help:\n")
	b.WriteString(strings.Join(data.Bindings, "\n"))
	if md := RenderMarkdown(data.Markdown); md != "" {
		b.WriteString("\n\n" + md)
	}
	return b.String()
}
