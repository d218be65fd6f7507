package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mindflowapp/mindflow/internal/datekey"
)

func newTestTaskStore(t *testing.T) *FileTaskStore {
	t.Helper()
	s := NewFileTaskStore()
	err := s.Initialize(map[string]string{
		"dataFile":       filepath.Join(t.TempDir(), "tasks.json"),
		"dataFileFormat": "json",
	})
	if err != nil {
		t.Fatalf("failed to initialize task store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestAddTask(t *testing.T) {
	s := newTestTaskStore(t)
	today := datekey.Today()

	task, err := s.Add("  write report  ", today, today)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if task.Text != "write report" {
		t.Errorf("text not trimmed: %q", task.Text)
	}
	if task.ID == "" {
		t.Error("task should get an id")
	}
	if !task.DueDate.IsZero() {
		t.Errorf("task for today should have no due date, got %s", task.DueDate)
	}
	if task.Completed {
		t.Error("new task should be open")
	}
}

func TestAddTaskForFutureDate(t *testing.T) {
	s := newTestTaskStore(t)
	today := datekey.Key("2024-05-20")
	future := datekey.Key("2024-05-25")

	task, err := s.Add("plan trip", future, today)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if task.DueDate != future {
		t.Errorf("DueDate = %s, want %s", task.DueDate, future)
	}
}

func TestAddBlankTextRejected(t *testing.T) {
	s := newTestTaskStore(t)
	today := datekey.Today()

	if _, err := s.Add("   ", today, today); !errors.Is(err, ErrBlankText) {
		t.Errorf("Add(blank) error = %v, want ErrBlankText", err)
	}
}

func TestAddInsertsAtHead(t *testing.T) {
	s := newTestTaskStore(t)
	today := datekey.Today()

	if _, err := s.Add("first", today, today); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Add("second", today, today); err != nil {
		t.Fatal(err)
	}

	tasks, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(tasks) != 2 || tasks[0].Text != "second" || tasks[1].Text != "first" {
		t.Errorf("unexpected order: %v", tasks)
	}
}

func TestAddAllKeepsBatchOrder(t *testing.T) {
	s := newTestTaskStore(t)
	today := datekey.Today()

	if _, err := s.Add("existing", today, today); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddAll([]string{"one", "two", "three"}, today, today); err != nil {
		t.Fatalf("AddAll: %v", err)
	}

	tasks, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"one", "two", "three", "existing"}
	if len(tasks) != len(want) {
		t.Fatalf("got %d tasks, want %d", len(tasks), len(want))
	}
	for i, text := range want {
		if tasks[i].Text != text {
			t.Errorf("position %d: %q, want %q", i, tasks[i].Text, text)
		}
	}
}

func TestToggleStampsToday(t *testing.T) {
	s := newTestTaskStore(t)
	today := datekey.Key("2024-05-20")
	yesterday := datekey.Key("2024-05-19")

	task, err := s.Add("backlog item", yesterday, today)
	if err != nil {
		t.Fatal(err)
	}

	// Completing credits today, not the due date.
	toggled, err := s.Toggle(task.ID, today)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !toggled.Completed {
		t.Error("task should be completed")
	}
	if toggled.CompletedAt != today {
		t.Errorf("CompletedAt = %s, want %s", toggled.CompletedAt, today)
	}
	if toggled.DueDate != yesterday {
		t.Errorf("due date should be untouched, got %s", toggled.DueDate)
	}

	// Reopening clears the stamp.
	back, err := s.Toggle(task.ID, today)
	if err != nil {
		t.Fatalf("Toggle back: %v", err)
	}
	if back.Completed || !back.CompletedAt.IsZero() {
		t.Errorf("reopened task: completed=%v completedAt=%s", back.Completed, back.CompletedAt)
	}
}

func TestEditTask(t *testing.T) {
	s := newTestTaskStore(t)
	today := datekey.Today()

	task, err := s.Add("old text", today, today)
	if err != nil {
		t.Fatal(err)
	}
	edited, err := s.Edit(task.ID, "new text")
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if edited.Text != "new text" {
		t.Errorf("text = %q", edited.Text)
	}
	if edited.CreatedAt != task.CreatedAt {
		t.Error("Edit must not touch CreatedAt")
	}

	if _, err := s.Edit(task.ID, " "); !errors.Is(err, ErrBlankText) {
		t.Errorf("Edit(blank) error = %v, want ErrBlankText", err)
	}
	if _, err := s.Edit("no-such-id", "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Edit(missing) error = %v, want ErrNotFound", err)
	}
}

func TestSetReminderAndTags(t *testing.T) {
	s := newTestTaskStore(t)
	today := datekey.Today()

	task, err := s.Add("call dentist", today, today)
	if err != nil {
		t.Fatal(err)
	}

	at := time.Now().Add(time.Hour).UnixMilli()
	updated, err := s.SetReminder(task.ID, &at)
	if err != nil {
		t.Fatalf("SetReminder: %v", err)
	}
	if updated.ReminderTime == nil || *updated.ReminderTime != at {
		t.Errorf("ReminderTime = %v", updated.ReminderTime)
	}

	cleared, err := s.SetReminder(task.ID, nil)
	if err != nil {
		t.Fatalf("SetReminder(nil): %v", err)
	}
	if cleared.ReminderTime != nil {
		t.Error("reminder should be cleared")
	}

	tagged, err := s.SetTags(task.ID, []string{"t1", "t2"})
	if err != nil {
		t.Fatalf("SetTags: %v", err)
	}
	if len(tagged.Tags) != 2 {
		t.Errorf("Tags = %v", tagged.Tags)
	}
}

func TestDeleteTask(t *testing.T) {
	s := newTestTaskStore(t)
	today := datekey.Today()

	task, err := s.Add("ephemeral", today, today)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(task.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(task.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete error = %v, want ErrNotFound", err)
	}
	if err := s.Delete(task.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete error = %v, want ErrNotFound", err)
	}
}

func TestPersistenceAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	config := map[string]string{
		"dataFile":       filepath.Join(dir, "tasks.json"),
		"dataFileFormat": "json",
	}

	s := NewFileTaskStore()
	if err := s.Initialize(config); err != nil {
		t.Fatal(err)
	}
	today := datekey.Today()
	task, err := s.Add("survive restart", today, today)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s2 := NewFileTaskStore()
	if err := s2.Initialize(config); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = s2.Close() }()

	got, err := s2.Get(task.ID)
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if got.Text != "survive restart" {
		t.Errorf("text = %q", got.Text)
	}
}

func TestLegacyNumericTimestampsMigrate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.json")

	due := time.Date(2023, 11, 5, 18, 30, 0, 0, time.Local)
	done := time.Date(2023, 11, 6, 9, 0, 0, 0, time.Local)
	legacy := []map[string]any{
		{
			"id":        "legacy-1",
			"text":      "old dated task",
			"completed": false,
			"createdAt": due.UnixMilli(),
			"dueDate":   due.UnixMilli(),
		},
		{
			"id":          "legacy-2",
			"text":        "old finished task",
			"completed":   true,
			"createdAt":   due.UnixMilli(),
			"completedAt": done.UnixMilli(),
		},
	}
	raw, err := json.Marshal(legacy)
	if err != nil {
		t.Fatal(err)
	}
	// Pre-checksum files have no sidecar and must still load.
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewFileTaskStore()
	if err := s.Initialize(map[string]string{"dataFile": path, "dataFileFormat": "json"}); err != nil {
		t.Fatalf("Initialize over legacy data: %v", err)
	}
	defer func() { _ = s.Close() }()

	got, err := s.Get("legacy-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.DueDate != "2023-11-05" {
		t.Errorf("migrated DueDate = %s, want 2023-11-05", got.DueDate)
	}
	if got.Priority == "" {
		t.Error("migration should default the priority")
	}

	finished, err := s.Get("legacy-2")
	if err != nil {
		t.Fatal(err)
	}
	if finished.CompletedAt != "2023-11-06" {
		t.Errorf("migrated CompletedAt = %s, want 2023-11-06", finished.CompletedAt)
	}
}

func TestMigrationIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.json")
	config := map[string]string{"dataFile": path, "dataFileFormat": "json"}

	legacy := []map[string]any{{
		"id":        "legacy-1",
		"text":      "once migrated",
		"completed": false,
		"createdAt": int64(1699200000000),
		"dueDate":   int64(1699200000000),
	}}
	raw, _ := json.Marshal(legacy)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewFileTaskStore()
	if err := s.Initialize(config); err != nil {
		t.Fatal(err)
	}
	first, err := s.Get("legacy-1")
	if err != nil {
		t.Fatal(err)
	}
	// A mutation persists the migrated shape.
	if _, err := s.Edit("legacy-1", "once migrated"); err != nil {
		t.Fatal(err)
	}
	_ = s.Close()

	s2 := NewFileTaskStore()
	if err := s2.Initialize(config); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = s2.Close() }()
	second, err := s2.Get("legacy-1")
	if err != nil {
		t.Fatal(err)
	}
	if second.DueDate != first.DueDate {
		t.Errorf("second load changed DueDate: %s vs %s", second.DueDate, first.DueDate)
	}
}
