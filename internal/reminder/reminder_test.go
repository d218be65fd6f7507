package reminder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/mindflowapp/mindflow/internal/datekey"
	"github.com/mindflowapp/mindflow/store"
)

type recordingNotifier struct {
	notices []Notice
}

func (r *recordingNotifier) Notify(title, message string) error {
	r.notices = append(r.notices, Notice{Title: title, Message: message})
	return nil
}

func newTestScanner(t *testing.T) (*Scanner, store.TaskStore, store.JournalStore, *recordingNotifier) {
	t.Helper()
	dir := t.TempDir()

	tasks := store.NewFileTaskStore()
	if err := tasks.Initialize(map[string]string{
		"dataFile":       filepath.Join(dir, "tasks.json"),
		"dataFileFormat": "json",
	}); err != nil {
		t.Fatalf("task store: %v", err)
	}
	t.Cleanup(func() { _ = tasks.Close() })

	journal := store.NewFileJournalStore()
	if err := journal.Initialize(map[string]string{
		"dataFile":       filepath.Join(dir, "journal.json"),
		"dataFileFormat": "json",
	}); err != nil {
		t.Fatalf("journal store: %v", err)
	}
	t.Cleanup(func() { _ = journal.Close() })

	notifier := &recordingNotifier{}
	return NewScanner(tasks, journal, notifier), tasks, journal, notifier
}

func TestScanFiresTaskReminderInsideWindow(t *testing.T) {
	scanner, tasks, _, notifier := newTestScanner(t)
	now := time.Now()
	today := datekey.FromTime(now)

	task, err := tasks.Add("water the plants", today, today)
	if err != nil {
		t.Fatal(err)
	}
	at := now.Add(30 * time.Second).UnixMilli()
	if _, err := tasks.SetReminder(task.ID, &at); err != nil {
		t.Fatal(err)
	}

	notices, err := scanner.Scan(now)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(notices) != 1 {
		t.Fatalf("got %d notices, want 1", len(notices))
	}
	if notices[0].Message != "water the plants" {
		t.Errorf("message = %q", notices[0].Message)
	}
	if len(notifier.notices) != 1 {
		t.Errorf("notifier received %d notices", len(notifier.notices))
	}
}

func TestScanSkipsOutsideWindowAndCompleted(t *testing.T) {
	scanner, tasks, _, _ := newTestScanner(t)
	now := time.Now()
	today := datekey.FromTime(now)

	// Reminder 5 minutes away: outside the window.
	far, err := tasks.Add("far away", today, today)
	if err != nil {
		t.Fatal(err)
	}
	farAt := now.Add(5 * time.Minute).UnixMilli()
	if _, err := tasks.SetReminder(far.ID, &farAt); err != nil {
		t.Fatal(err)
	}

	// Due now but already completed.
	done, err := tasks.Add("already done", today, today)
	if err != nil {
		t.Fatal(err)
	}
	doneAt := now.UnixMilli()
	if _, err := tasks.SetReminder(done.ID, &doneAt); err != nil {
		t.Fatal(err)
	}
	if _, err := tasks.Toggle(done.ID, today); err != nil {
		t.Fatal(err)
	}

	notices, err := scanner.Scan(now)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(notices) != 0 {
		t.Errorf("got %d notices, want 0: %v", len(notices), notices)
	}
}

func TestScanFiresPastReminderWithinTolerance(t *testing.T) {
	scanner, tasks, _, _ := newTestScanner(t)
	now := time.Now()
	today := datekey.FromTime(now)

	task, err := tasks.Add("just missed", today, today)
	if err != nil {
		t.Fatal(err)
	}
	at := now.Add(-45 * time.Second).UnixMilli()
	if _, err := tasks.SetReminder(task.ID, &at); err != nil {
		t.Fatal(err)
	}

	notices, err := scanner.Scan(now)
	if err != nil {
		t.Fatal(err)
	}
	if len(notices) != 1 {
		t.Errorf("a reminder 45s in the past should still fire, got %d", len(notices))
	}
}

func TestJournalNudge(t *testing.T) {
	scanner, _, journal, _ := newTestScanner(t)
	now := time.Date(2024, 5, 20, 20, 0, 12, 0, time.Local)
	today := datekey.FromTime(now)

	entry, _, err := journal.Get(today)
	if err != nil {
		t.Fatal(err)
	}
	entry.ReminderEnabled = true
	entry.ReminderTime = "20:00"
	if _, err := journal.Save(today, entry); err != nil {
		t.Fatal(err)
	}

	notices, err := scanner.Scan(now)
	if err != nil {
		t.Fatal(err)
	}
	if len(notices) != 1 {
		t.Fatalf("got %d notices, want the journal nudge", len(notices))
	}
	if notices[0].Title != "日记提醒" {
		t.Errorf("title = %q", notices[0].Title)
	}

	// No nudge at a different minute.
	notices, err = scanner.Scan(now.Add(3 * time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	if len(notices) != 0 {
		t.Errorf("nudge fired outside its minute: %v", notices)
	}
}

func TestJournalNudgeSuppressedOnceWritten(t *testing.T) {
	scanner, _, journal, _ := newTestScanner(t)
	now := time.Date(2024, 5, 20, 20, 0, 0, 0, time.Local)
	today := datekey.FromTime(now)

	entry, _, err := journal.Get(today)
	if err != nil {
		t.Fatal(err)
	}
	entry.ReminderEnabled = true
	entry.ReminderTime = "20:00"
	entry.Content = "今天过得很充实，完成了所有任务"
	if _, err := journal.Save(today, entry); err != nil {
		t.Fatal(err)
	}

	notices, err := scanner.Scan(now)
	if err != nil {
		t.Fatal(err)
	}
	if len(notices) != 0 {
		t.Errorf("a written journal should not nudge: %v", notices)
	}
}

func TestJournalNudgeIgnoresShortPlaceholder(t *testing.T) {
	scanner, _, journal, _ := newTestScanner(t)
	now := time.Date(2024, 5, 20, 20, 0, 0, 0, time.Local)
	today := datekey.FromTime(now)

	entry, _, err := journal.Get(today)
	if err != nil {
		t.Fatal(err)
	}
	entry.ReminderEnabled = true
	entry.ReminderTime = "20:00"
	entry.Content = "嗯嗯" // under the threshold, still counts as unwritten
	if _, err := journal.Save(today, entry); err != nil {
		t.Fatal(err)
	}

	notices, err := scanner.Scan(now)
	if err != nil {
		t.Fatal(err)
	}
	if len(notices) != 1 {
		t.Errorf("near-empty journal should still nudge, got %d", len(notices))
	}
}
