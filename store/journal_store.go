package store

import (
	"fmt"
	"time"

	"github.com/mindflowapp/mindflow/internal/datekey"
	"github.com/mindflowapp/mindflow/models"
)

const defaultJournalFile = "journal.json"

// FileJournalStore implements JournalStore on a blob holding a map of date
// key to entry. At most one entry exists per calendar day.
type FileJournalStore struct {
	blob    *blobFile
	entries map[datekey.Key]models.JournalEntry
}

// NewFileJournalStore creates a new instance of FileJournalStore.
// Initialize must be called before use.
func NewFileJournalStore() *FileJournalStore {
	return &FileJournalStore{}
}

// Initialize configures the store from the same config keys as the task store.
func (s *FileJournalStore) Initialize(config map[string]string) error {
	blob, err := newBlobFile(config, defaultJournalFile)
	if err != nil {
		return err
	}
	s.blob = blob

	if err := s.blob.lock(); err != nil {
		return fmt.Errorf("failed to acquire initial lock for %s: %w", s.blob.filePath, err)
	}
	defer s.blob.unlock()

	return s.loadInternal()
}

// loadInternal reads the blob. A legacy single free-standing entry (the
// pre-map shape) is migrated under today's key. Caller holds the lock.
func (s *FileJournalStore) loadInternal() error {
	data, err := s.blob.read()
	if err != nil {
		return err
	}
	if data == nil {
		s.entries = map[datekey.Key]models.JournalEntry{}
		return nil
	}

	entries := map[datekey.Key]models.JournalEntry{}
	if err := s.blob.unmarshal(data, &entries); err == nil {
		s.entries = entries
		return nil
	}

	var single models.JournalEntry
	if err := s.blob.unmarshal(data, &single); err != nil {
		return fmt.Errorf("journal blob is neither a map nor a single entry: %w", err)
	}
	today := datekey.Today()
	single.ID = string(today)
	single.Date = today
	single.Tags = []string{}
	single.ReminderEnabled = false
	s.entries = map[datekey.Key]models.JournalEntry{today: single}
	return nil
}

func (s *FileJournalStore) saveInternal() error {
	return s.blob.write(s.entries)
}

// Get returns the entry for the given date. When none is stored it returns a
// fresh default entry and stored=false; nothing is written.
func (s *FileJournalStore) Get(date datekey.Key) (models.JournalEntry, bool, error) {
	if err := s.blob.lock(); err != nil {
		return models.JournalEntry{}, false, fmt.Errorf("failed to acquire lock for Get: %w", err)
	}
	defer s.blob.unlock()

	if err := s.loadInternal(); err != nil {
		return models.JournalEntry{}, false, err
	}
	if entry, ok := s.entries[date]; ok {
		return entry, true, nil
	}
	return models.NewJournalEntry(date, time.Now().UnixMilli()), false, nil
}

// Save upserts the entry for the given date. ID and Date are both forced to
// the date's key and UpdatedAt is stamped.
func (s *FileJournalStore) Save(date datekey.Key, entry models.JournalEntry) (models.JournalEntry, error) {
	if err := s.blob.lock(); err != nil {
		return models.JournalEntry{}, fmt.Errorf("could not lock file for save: %w", err)
	}
	defer s.blob.unlock()

	if err := s.loadInternal(); err != nil {
		return models.JournalEntry{}, fmt.Errorf("failed to reload journal before save: %w", err)
	}

	entry.ID = string(date)
	entry.Date = date
	entry.UpdatedAt = time.Now().UnixMilli()
	if !entry.Mood.Valid() {
		entry.Mood = models.MoodNeutral
	}
	if entry.ReminderTime == "" {
		entry.ReminderTime = models.DefaultReminderTime
	}
	if entry.Tags == nil {
		entry.Tags = []string{}
	}
	if err := models.ValidateStruct(entry); err != nil {
		return models.JournalEntry{}, fmt.Errorf("validation failed for journal entry: %w", err)
	}

	s.entries[date] = entry

	if err := s.saveInternal(); err != nil {
		_ = s.loadInternal()
		return models.JournalEntry{}, fmt.Errorf("failed to save journal entry: %w", err)
	}
	return entry, nil
}

// List returns every stored entry keyed by date.
func (s *FileJournalStore) List() (map[datekey.Key]models.JournalEntry, error) {
	if err := s.blob.lock(); err != nil {
		return nil, fmt.Errorf("failed to acquire lock for List: %w", err)
	}
	defer s.blob.unlock()

	if err := s.loadInternal(); err != nil {
		return nil, err
	}
	out := make(map[datekey.Key]models.JournalEntry, len(s.entries))
	for k, v := range s.entries {
		out[k] = v
	}
	return out, nil
}

// Close releases the file lock.
func (s *FileJournalStore) Close() error {
	if s.blob == nil {
		return nil
	}
	return s.blob.close()
}
