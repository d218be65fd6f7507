// Package day decides which tasks belong to a given calendar day and
// aggregates per-day summaries for the calendar view.
//
// Visibility is computed, never stored: a task appears on a day when it was
// completed that day, is due that day, or is un-dated and still open while
// that day is today. An un-dated open task therefore follows "today" forward
// until it is completed.
package day

import (
	"sort"

	"github.com/mindflowapp/mindflow/internal/datekey"
	"github.com/mindflowapp/mindflow/models"
)

// VisibleOn reports whether the task belongs to the day identified by key.
func VisibleOn(t models.Task, key, today datekey.Key) bool {
	if t.Completed {
		return t.CompletedAt == key
	}
	if !t.DueDate.IsZero() {
		return t.DueDate == key
	}
	return key == today
}

// Filter returns the tasks visible on the given day, preserving input order.
func Filter(tasks []models.Task, key, today datekey.Key) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if VisibleOn(t, key, today) {
			out = append(out, t)
		}
	}
	return out
}

// SortForDisplay orders tasks for presentation: open before completed,
// newest first within each group. The sort is stable so equal-timestamp
// tasks keep their insertion order.
func SortForDisplay(tasks []models.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Completed != tasks[j].Completed {
			return !tasks[i].Completed
		}
		return tasks[i].CreatedAt > tasks[j].CreatedAt
	})
}

// Partition splits the day's tasks into completed and pending text lists,
// the shape the reflection prompt consumes.
func Partition(tasks []models.Task) (completed, pending []string) {
	completed = []string{}
	pending = []string{}
	for _, t := range tasks {
		if t.Completed {
			completed = append(completed, t.Text)
		} else {
			pending = append(pending, t.Text)
		}
	}
	return completed, pending
}

// Summary is one calendar cell: task counts for the day plus the mood
// recorded in that day's journal entry, if any.
type Summary struct {
	Completed int    `json:"completed"`
	Pending   int    `json:"pending"`
	MoodEmoji string `json:"moodEmoji,omitempty"`
}

// Summarize builds the calendar cell for one day. The mood emoji appears
// only when the entry has written content; a saved but empty entry shows
// nothing.
func Summarize(tasks []models.Task, entry *models.JournalEntry, key, today datekey.Key) Summary {
	var s Summary
	for _, t := range Filter(tasks, key, today) {
		if t.Completed {
			s.Completed++
		} else {
			s.Pending++
		}
	}
	if entry != nil && entry.Content != "" {
		s.MoodEmoji = models.MoodEmojis[entry.Mood]
	}
	return s
}

// MonthSummaries builds a cell for every day of the month containing ref.
// Keys are emitted for each calendar day whether or not anything happened.
func MonthSummaries(tasks []models.Task, entries map[datekey.Key]models.JournalEntry, ref, today datekey.Key) (map[datekey.Key]Summary, error) {
	t, err := ref.Time()
	if err != nil {
		return nil, err
	}
	first := t.AddDate(0, 0, -(t.Day() - 1))
	out := make(map[datekey.Key]Summary)
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		key := datekey.FromTime(d)
		var entry *models.JournalEntry
		if e, ok := entries[key]; ok {
			entry = &e
		}
		out[key] = Summarize(tasks, entry, key, today)
	}
	return out, nil
}
