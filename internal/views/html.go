package views

import (
	"html/template"
	"io"
)

var htmlTemplates = template.Must(template.New("views").Parse(`
{{define "board"}}<section class="board"{{if .Busy}} aria-busy="true"{{end}}>
<div class="stats"><span id="total-count">{{.Stats.Total}}</span> total, <span id="completed-count">{{.Stats.Completed}}</span> completed, <span id="pending-count">{{.Stats.Pending}}</span> pending</div>
{{- if .Banner}}
<div id="error-message" class="error-message" role="alert">{{.Banner}}</div>
{{- end}}
<div id="todos-container">
{{- if .Empty}}
<div class="empty-state"><h3>{{.EmptyTitle}}</h3><p>{{.EmptyHint}}</p></div>
{{- else}}{{range .Rows}}
<div class="todo-item{{if .Completed}} completed{{end}}" data-todo-id="{{.ID}}">
<div class="todo-header"><div class="todo-title">{{.Title}}</div>
<div class="todo-actions"><button class="btn btn-sm{{if .Completed}} btn-success{{end}}" data-todo-id="{{.Toggle.TaskID}}" data-action="{{.Toggle.Kind}}">{{.Toggle.Label}}</button><button class="btn btn-sm btn-danger" data-todo-id="{{.Delete.TaskID}}" data-action="{{.Delete.Kind}}">{{.Delete.Label}}</button></div></div>
{{- if .Description}}
<div class="todo-description">{{.Description}}</div>
{{- end}}
<div class="todo-meta"><span>Created: {{.Created}}</span>{{if .Updated}}<span>Updated: {{.Updated}}</span>{{end}}</div>
</div>
{{- end}}{{end}}
</div>
</section>
{{end}}
{{define "page"}}<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<h1>{{.Title}}</h1>
{{template "board" .Board}}</body>
</html>
{{end}}`))

// RenderHTML writes the board as an HTML fragment. All user text goes
// through html/template escaping.
func RenderHTML(w io.Writer, b Board) error {
	return htmlTemplates.ExecuteTemplate(w, "board", b)
}

// RenderHTMLPage wraps the board fragment in a standalone document.
func RenderHTMLPage(w io.Writer, title string, b Board) error {
	return htmlTemplates.ExecuteTemplate(w, "page", struct {
		Title string
		Board Board
	}{Title: title, Board: b})
}
