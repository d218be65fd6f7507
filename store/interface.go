package store

import (
	"errors"

	"github.com/mindflowapp/mindflow/internal/datekey"
	"github.com/mindflowapp/mindflow/models"
)

// Sentinel errors shared by the store implementations.
var (
	// ErrNotFound is returned when a record id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrBlankText is returned when an add or edit carries only whitespace.
	// No state changes when it is returned.
	ErrBlankText = errors.New("text is blank")
)

// TaskStore defines the interface for task persistence.
// Every mutation rewrites the full serialized collection, so a crash between
// two operations can never leave the file internally inconsistent.
type TaskStore interface {
	// Initialize configures the store with backend settings such as the data
	// file path and format. It must be called before any other operation.
	Initialize(config map[string]string) error

	// Add creates a task from text, inserting it at the head of the
	// collection. The due date is taken from forDate unless forDate equals
	// today, in which case it is left absent (an un-dated task is implicitly
	// due today). Blank text returns ErrBlankText.
	Add(text string, forDate, today datekey.Key) (models.Task, error)

	// AddAll creates several tasks at once, prepended as a single block so
	// the given order survives the head insert. Any blank text fails the
	// whole batch with ErrBlankText.
	AddAll(texts []string, forDate, today datekey.Key) ([]models.Task, error)

	// Get retrieves a task by id, or ErrNotFound.
	Get(id string) (models.Task, error)

	// Toggle flips a task's completion. On the transition to completed it
	// stamps CompletedAt with today's key; completing a backlog item always
	// credits today, not the task's due date. On the transition back it
	// clears CompletedAt.
	Toggle(id string, today datekey.Key) (models.Task, error)

	// Edit replaces a task's text in place, leaving every other field
	// untouched. Blank text returns ErrBlankText.
	Edit(id, text string) (models.Task, error)

	// SetReminder sets or clears (ms == nil) a task's one-shot reminder.
	SetReminder(id string, ms *int64) (models.Task, error)

	// SetTags replaces a task's tag id set.
	SetTags(id string, tagIDs []string) (models.Task, error)

	// Delete removes the task permanently. Callers own the confirmation step;
	// the store does not ask twice.
	Delete(id string) error

	// List returns all tasks in collection order (most recently added first).
	List() ([]models.Task, error)

	// Close releases the file lock.
	Close() error
}

// JournalStore maps date keys to at most one journal entry each.
type JournalStore interface {
	Initialize(config map[string]string) error

	// Get returns the entry stored for the date and stored=true, or the
	// unsaved default entry and stored=false. The default is never persisted
	// until Save is called.
	Get(date datekey.Key) (entry models.JournalEntry, stored bool, err error)

	// Save upserts the entry for the date, forcing ID and Date to the date's
	// key and stamping UpdatedAt. The prior entry is fully replaced.
	Save(date datekey.Key, entry models.JournalEntry) (models.JournalEntry, error)

	// List returns a snapshot of all stored entries keyed by date.
	List() (map[datekey.Key]models.JournalEntry, error)

	Close() error
}

// TagStore is the append-only tag registry.
type TagStore interface {
	Initialize(config map[string]string) error

	// Create appends a tag with a fresh id and a pseudo-random palette color
	// and returns it so callers can reference the id immediately. Names are
	// not deduplicated.
	Create(name string) (models.Tag, error)

	// Lookup resolves a tag id. A missing id degrades gracefully: callers
	// omit the tag rather than erroring.
	Lookup(id string) (models.Tag, bool, error)

	// List returns all tags in creation order.
	List() ([]models.Tag, error)

	Close() error
}
