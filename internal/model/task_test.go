package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestTaskValidateSuccess(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	task := Task{
		ID:        1,
		Title:     "Buy milk",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
	if task.Modified() {
		t.Fatal("fresh task must not be reported as modified")
	}
}

func TestTaskValidateRejectsBadRecords(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		task Task
		want error
	}{
		{"zero id", Task{Title: "x", CreatedAt: now, UpdatedAt: now}, ErrInvalidID},
		{"blank title", Task{ID: 1, Title: "   ", CreatedAt: now, UpdatedAt: now}, ErrEmptyTitle},
		{"missing timestamps", Task{ID: 1, Title: "x"}, ErrMissingTimestamp},
		{"updated before created", Task{ID: 1, Title: "x", CreatedAt: now, UpdatedAt: now.Add(-time.Second)}, ErrTimestampOrder},
	}
	for _, tc := range cases {
		if err := tc.task.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestNewTaskNormalize(t *testing.T) {
	got, err := NewTask{Title: "  Buy milk ", Description: " 2 liters "}.Normalize()
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if got.Title != "Buy milk" || got.Description != "2 liters" {
		t.Fatalf("unexpected normalized task: %+v", got)
	}

	for _, title := range []string{"", "   ", "\t\n"} {
		if _, err := (NewTask{Title: title}).Normalize(); !errors.Is(err, ErrEmptyTitle) {
			t.Fatalf("title %q: expected ErrEmptyTitle, got %v", title, err)
		}
	}
}

func TestNormalizeTitleLength(t *testing.T) {
	if _, err := NormalizeTitle(strings.Repeat("é", MaxTitleLength)); err != nil {
		t.Fatalf("title at the limit must be accepted: %v", err)
	}
	if _, err := NormalizeTitle(strings.Repeat("a", MaxTitleLength+1)); !errors.Is(err, ErrTitleTooLong) {
		t.Fatalf("expected ErrTitleTooLong, got %v", err)
	}
}

func TestTaskPatchDistinguishesUnsetFromFalse(t *testing.T) {
	var patch TaskPatch
	if err := json.Unmarshal([]byte(`{"completed":false}`), &patch); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v, ok := patch.Completed.Get(); !ok || v {
		t.Fatalf("expected completed explicitly false, got %+v", patch.Completed)
	}
	if patch.Title.Set || patch.Description.Set {
		t.Fatalf("absent fields must stay unset: %+v", patch)
	}

	patch = TaskPatch{}
	if err := json.Unmarshal([]byte(`{"title":null,"description":""}`), &patch); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if patch.Title.Set {
		t.Fatal("null title must be unset")
	}
	if v, ok := patch.Description.Get(); !ok || v != "" {
		t.Fatalf("expected empty description to be set, got %+v", patch.Description)
	}
}

func TestTaskPatchEncodingOmitsUnsetFields(t *testing.T) {
	raw, err := json.Marshal(TaskPatch{Completed: Some(false)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"completed":false}` {
		t.Fatalf("unexpected patch encoding: %s", raw)
	}
}

func TestTaskPatchNormalizeAndApply(t *testing.T) {
	if _, err := (TaskPatch{Title: Some("  ")}).Normalize(); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}

	patch, err := TaskPatch{Title: Some(" New "), Completed: Some(true)}.Normalize()
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	base := Task{ID: 3, Title: "Old", Description: "keep me"}
	got := patch.Apply(base)
	if got.Title != "New" || got.Description != "keep me" || !got.Completed {
		t.Fatalf("unexpected patched task: %+v", got)
	}
	if !(TaskPatch{}).IsEmpty() || patch.IsEmpty() {
		t.Fatal("IsEmpty mismatch")
	}
}

func TestCountTasks(t *testing.T) {
	tasks := []Task{{Completed: true}, {}, {Completed: true}, {}}
	stats := CountTasks(tasks)
	if stats.Total != 4 || stats.Completed != 2 || stats.Pending != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if empty := CountTasks(nil); empty != (Stats{}) {
		t.Fatalf("unexpected empty stats: %+v", empty)
	}
}
