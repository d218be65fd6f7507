package models

import "github.com/mindflowapp/mindflow/internal/datekey"

// Mood is one of the five emotional states a journal entry can carry.
type Mood string

const (
	MoodHappy   Mood = "happy"
	MoodNeutral Mood = "neutral"
	MoodSad     Mood = "sad"
	MoodAnxious Mood = "anxious"
	MoodExcited Mood = "excited"
)

// MoodEmojis maps each mood to its calendar glyph.
var MoodEmojis = map[Mood]string{
	MoodHappy:   "😊",
	MoodNeutral: "😐",
	MoodSad:     "😔",
	MoodAnxious: "😰",
	MoodExcited: "🤩",
}

// Moods lists all moods in display order.
var Moods = []Mood{MoodHappy, MoodNeutral, MoodSad, MoodAnxious, MoodExcited}

// Valid reports whether m is one of the known moods.
func (m Mood) Valid() bool {
	_, ok := MoodEmojis[m]
	return ok
}

// JournalEntry is the single diary record for one calendar day. ID and Date
// both repeat the map key for convenience; the store forces them on save.
type JournalEntry struct {
	ID      string      `json:"id"`
	Date    datekey.Key `json:"date"`
	Content string      `json:"content"`
	Mood    Mood        `json:"mood" validate:"omitempty,oneof=happy neutral sad anxious excited"`
	// UpdatedAt is the unix-millisecond timestamp of the last save.
	UpdatedAt       int64    `json:"updatedAt"`
	Tags            []string `json:"tags"`
	ReminderEnabled bool     `json:"reminderEnabled"`
	// ReminderTime is an "HH:mm" wall-clock string for the daily journaling nudge.
	ReminderTime string `json:"reminderTime,omitempty"`
}

// DefaultReminderTime is the reminder preset for a fresh entry.
const DefaultReminderTime = "20:00"

// NewJournalEntry returns the unsaved default entry shown for a date that has
// no stored record yet. Callers must not persist it until the user saves.
func NewJournalEntry(date datekey.Key, now int64) JournalEntry {
	return JournalEntry{
		ID:              string(date),
		Date:            date,
		Content:         "",
		Mood:            MoodNeutral,
		UpdatedAt:       now,
		Tags:            []string{},
		ReminderEnabled: false,
		ReminderTime:    DefaultReminderTime,
	}
}

// DailyAnalysis is the AI-generated reflection over one day. It is ephemeral:
// produced per invocation, never persisted.
type DailyAnalysis struct {
	Summary   string `json:"summary"`
	Score     int    `json:"score"` // intended range 0-100, not validated
	Advice    string `json:"advice"`
	MoodTrend string `json:"moodTrend"`
}
