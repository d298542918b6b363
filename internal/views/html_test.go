package views

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/sandeepkv93/taskhub/internal/model"
)

func TestRenderHTMLEscapesUserText(t *testing.T) {
	now := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	tasks := []model.Task{{
		ID:          7,
		Title:       `<script>alert("x")</script>`,
		Description: `<img src=x onerror=alert(1)>`,
		CreatedAt:   now,
		UpdatedAt:   now,
	}}
	var buf bytes.Buffer
	if err := RenderHTML(&buf, BuildBoard(tasks, time.UTC)); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "<script>") || strings.Contains(out, "<img") {
		t.Fatalf("raw markup leaked into output:\n%s", out)
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Fatalf("expected escaped title:\n%s", out)
	}
	if !strings.Contains(out, `data-action="toggle"`) || !strings.Contains(out, `data-action="delete"`) {
		t.Fatalf("missing affordances:\n%s", out)
	}
	if strings.Contains(out, "Updated:") {
		t.Fatalf("updated date shown for unmodified task:\n%s", out)
	}
}

func TestRenderHTMLEmptyStateAndBanner(t *testing.T) {
	b := BuildBoard(nil, time.UTC)
	b.Banner = "load failed: cannot reach server"
	var buf bytes.Buffer
	if err := RenderHTML(&buf, b); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"empty-state", emptyTitle, `role="alert"`, "cannot reach server", `id="total-count">0<`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
}

func TestRenderHTMLPage(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderHTMLPage(&buf, "Tasks & more", BuildBoard(sampleTasks(), time.UTC)); err != nil {
		t.Fatalf("render page: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "<!DOCTYPE html>") || !strings.Contains(out, "Tasks &amp; more") {
		t.Fatalf("unexpected page:\n%s", out)
	}
	if !strings.Contains(out, "Updated: 06/03/2026") || !strings.Contains(out, "todo-item completed") {
		t.Fatalf("expected completed modified row:\n%s", out)
	}
}
