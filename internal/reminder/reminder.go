// Package reminder periodically scans for due task reminders and the evening
// journal nudge, firing desktop notifications.
package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/gen2brain/beeep"

	"github.com/mindflowapp/mindflow/internal/datekey"
	"github.com/mindflowapp/mindflow/store"
)

// Tolerance is the window around a reminder instant in which a scan fires it.
// Scans run more often than the window is wide, so a reminder is not missed,
// but a scan landing twice inside the window fires twice.
const Tolerance = time.Minute

// journalNudgeThreshold is the content length below which the journal is
// considered unwritten for the day.
const journalNudgeThreshold = 5

// Notifier delivers a single notification to the user.
type Notifier interface {
	Notify(title, message string) error
}

// DesktopNotifier sends notifications through the OS notification system.
type DesktopNotifier struct{}

func (DesktopNotifier) Notify(title, message string) error {
	return beeep.Notify(title, message, "")
}

// Notice is one fired reminder, returned for logging and testing.
type Notice struct {
	Title   string
	Message string
}

// Scanner polls the stores and fires notifications for due reminders.
type Scanner struct {
	tasks   store.TaskStore
	journal store.JournalStore
	notify  Notifier
	now     func() time.Time
}

// NewScanner creates a Scanner using the wall clock.
func NewScanner(tasks store.TaskStore, journal store.JournalStore, notifier Notifier) *Scanner {
	return &Scanner{tasks: tasks, journal: journal, notify: notifier, now: time.Now}
}

// Run scans once immediately and then on every tick until the context is
// cancelled.
func (s *Scanner) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if _, err := s.Scan(s.now()); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := s.Scan(s.now()); err != nil {
				return err
			}
		}
	}
}

// Scan runs a single pass at the given instant and returns the notices it
// fired. Notification delivery failures are ignored; store failures are not.
func (s *Scanner) Scan(now time.Time) ([]Notice, error) {
	var notices []Notice

	tasks, err := s.tasks.List()
	if err != nil {
		return nil, fmt.Errorf("reminder scan failed to list tasks: %w", err)
	}
	for _, t := range tasks {
		if t.Completed || t.ReminderTime == nil {
			continue
		}
		diff := now.Sub(time.UnixMilli(*t.ReminderTime))
		if diff < 0 {
			diff = -diff
		}
		if diff < Tolerance {
			notices = append(notices, Notice{Title: "任务提醒", Message: t.Text})
		}
	}

	if n, ok, err := s.journalNudge(now); err != nil {
		return nil, err
	} else if ok {
		notices = append(notices, n)
	}

	for _, n := range notices {
		_ = s.notify.Notify(n.Title, n.Message)
	}
	return notices, nil
}

// journalNudge fires when today's entry has its reminder enabled, the clock
// matches the entry's HH:mm, and the entry is still effectively unwritten.
func (s *Scanner) journalNudge(now time.Time) (Notice, bool, error) {
	today := datekey.FromTime(now)
	entry, stored, err := s.journal.Get(today)
	if err != nil {
		return Notice{}, false, fmt.Errorf("reminder scan failed to load journal: %w", err)
	}
	if !stored || !entry.ReminderEnabled {
		return Notice{}, false, nil
	}
	if now.Format("15:04") != entry.ReminderTime {
		return Notice{}, false, nil
	}
	if len([]rune(entry.Content)) >= journalNudgeThreshold {
		return Notice{}, false, nil
	}
	return Notice{Title: "日记提醒", Message: "别忘了写今天的日记"}, true, nil
}
