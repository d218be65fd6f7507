package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mindflowapp/mindflow/internal/datekey"
	"github.com/mindflowapp/mindflow/models"
)

const defaultTasksFile = "tasks.json"

// FileTaskStore implements TaskStore on a single blob file. The collection is
// kept in insertion order, most recent first, and rewritten whole on every
// mutation.
type FileTaskStore struct {
	blob  *blobFile
	tasks []models.Task
}

// NewFileTaskStore creates a new instance of FileTaskStore.
// Initialize must be called before use.
func NewFileTaskStore() *FileTaskStore {
	return &FileTaskStore{}
}

// Initialize configures the store. It expects an optional 'dataFile' key with
// the path to the blob and an optional 'dataFileFormat' (json, yaml or toml).
func (s *FileTaskStore) Initialize(config map[string]string) error {
	blob, err := newBlobFile(config, defaultTasksFile)
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

// legacyTask tolerates the pre-migration shape where dueDate and completedAt
// were numeric timestamps instead of date keys.
type legacyTask struct {
	ID           string              `json:"id" yaml:"id" toml:"id"`
	Text         string              `json:"text" yaml:"text" toml:"text"`
	Completed    bool                `json:"completed" yaml:"completed" toml:"completed"`
	CreatedAt    int64               `json:"createdAt" yaml:"createdAt" toml:"createdAt"`
	CompletedAt  interface{}         `json:"completedAt,omitempty" yaml:"completedAt,omitempty" toml:"completedAt,omitempty"`
	DueDate      interface{}         `json:"dueDate,omitempty" yaml:"dueDate,omitempty" toml:"dueDate,omitempty"`
	Priority     models.TaskPriority `json:"priority" yaml:"priority" toml:"priority"`
	ReminderTime *int64              `json:"reminderTime,omitempty" yaml:"reminderTime,omitempty" toml:"reminderTime,omitempty"`
	Tags         []string            `json:"tags" yaml:"tags" toml:"tags"`
}

// migrateDateField converts a legacy field value to a date key. Strings pass
// through, numeric timestamps are converted, anything else means absent.
// Running it over already-migrated data is a no-op.
func migrateDateField(v interface{}) datekey.Key {
	switch val := v.(type) {
	case string:
		return datekey.Key(val)
	case float64:
		return datekey.FromUnixMilli(int64(val))
	case int64:
		return datekey.FromUnixMilli(val)
	case int:
		return datekey.FromUnixMilli(int64(val))
	case uint64:
		return datekey.FromUnixMilli(int64(val))
	default:
		return ""
	}
}

func migrateTask(lt legacyTask) models.Task {
	t := models.Task{
		ID:           lt.ID,
		Text:         lt.Text,
		Completed:    lt.Completed,
		CreatedAt:    lt.CreatedAt,
		CompletedAt:  migrateDateField(lt.CompletedAt),
		DueDate:      migrateDateField(lt.DueDate),
		Priority:     lt.Priority,
		ReminderTime: lt.ReminderTime,
		Tags:         lt.Tags,
	}
	if t.Priority == "" {
		t.Priority = models.PriorityMedium
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	return t
}

// taskDocument wraps the collection. TOML has no top-level arrays, so every
// format stores the wrapped shape.
type taskDocument struct {
	Tasks []models.Task `json:"tasks" yaml:"tasks" toml:"tasks"`
}

// legacyTaskDocument is the load-side twin of taskDocument, tolerant of
// pre-migration field types.
type legacyTaskDocument struct {
	Tasks []legacyTask `json:"tasks" yaml:"tasks" toml:"tasks"`
}

// loadInternal reads the blob and migrates legacy records. A bare array (the
// pre-wrapper shape) is accepted too. Caller holds the lock.
func (s *FileTaskStore) loadInternal() error {
	data, err := s.blob.read()
	if err != nil {
		return err
	}
	if data == nil {
		s.tasks = []models.Task{}
		return nil
	}

	var doc legacyTaskDocument
	if err := s.blob.unmarshal(data, &doc); err != nil {
		var bare []legacyTask
		if err := s.blob.unmarshal(data, &bare); err != nil {
			return fmt.Errorf("task blob is neither a document nor an array: %w", err)
		}
		doc.Tasks = bare
	}
	s.tasks = make([]models.Task, 0, len(doc.Tasks))
	for _, lt := range doc.Tasks {
		s.tasks = append(s.tasks, migrateTask(lt))
	}
	return nil
}

// saveInternal writes the full collection. Caller holds the lock.
func (s *FileTaskStore) saveInternal() error {
	return s.blob.write(taskDocument{Tasks: s.tasks})
}

func (s *FileTaskStore) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// Add creates a task at the head of the collection. The due date is left
// absent when forDate is today, per the "un-dated means due today" rule.
func (s *FileTaskStore) Add(text string, forDate, today datekey.Key) (models.Task, error) {
	tasks, err := s.AddAll([]string{text}, forDate, today)
	if err != nil {
		return models.Task{}, err
	}
	return tasks[0], nil
}

// AddAll creates several tasks at once, prepended as a block so their given
// order survives the head insert. Used by the AI breakdown flow.
func (s *FileTaskStore) AddAll(texts []string, forDate, today datekey.Key) ([]models.Task, error) {
	batch := make([]models.Task, 0, len(texts))
	now := time.Now().UnixMilli()
	for _, text := range texts {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return nil, ErrBlankText
		}
		task := models.Task{
			ID:        uuid.NewString(),
			Text:      trimmed,
			Completed: false,
			CreatedAt: now,
			Priority:  models.PriorityMedium,
			Tags:      []string{},
		}
		if !forDate.IsZero() && forDate != today {
			task.DueDate = forDate
		}
		if err := models.ValidateStruct(task); err != nil {
			return nil, fmt.Errorf("validation failed for new task: %w", err)
		}
		batch = append(batch, task)
	}

	if err := s.blob.lock(); err != nil {
		return nil, fmt.Errorf("could not lock file for add: %w", err)
	}
	defer s.blob.unlock()

	if err := s.loadInternal(); err != nil {
		return nil, fmt.Errorf("failed to reload tasks before add: %w", err)
	}

	s.tasks = append(append([]models.Task{}, batch...), s.tasks...)

	if err := s.saveInternal(); err != nil {
		_ = s.loadInternal()
		return nil, fmt.Errorf("failed to save new tasks: %w", err)
	}
	return batch, nil
}

// Get retrieves a task by its unique identifier.
func (s *FileTaskStore) Get(id string) (models.Task, error) {
	if err := s.blob.lock(); err != nil {
		return models.Task{}, fmt.Errorf("failed to acquire lock for Get: %w", err)
	}
	defer s.blob.unlock()

	if err := s.loadInternal(); err != nil {
		return models.Task{}, err
	}
	i := s.indexOf(id)
	if i < 0 {
		return models.Task{}, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return s.tasks[i], nil
}

// Toggle flips completion, stamping CompletedAt with today's key on the
// transition to completed and clearing it on the way back.
func (s *FileTaskStore) Toggle(id string, today datekey.Key) (models.Task, error) {
	return s.mutate(id, "toggle", func(t *models.Task) error {
		t.Completed = !t.Completed
		if t.Completed {
			t.CompletedAt = today
		} else {
			t.CompletedAt = ""
		}
		return nil
	})
}

// Edit replaces the task's text; all other fields are untouched.
func (s *FileTaskStore) Edit(id, text string) (models.Task, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return models.Task{}, ErrBlankText
	}
	return s.mutate(id, "edit", func(t *models.Task) error {
		t.Text = trimmed
		return nil
	})
}

// SetReminder sets or clears the task's one-shot reminder instant.
func (s *FileTaskStore) SetReminder(id string, ms *int64) (models.Task, error) {
	return s.mutate(id, "set reminder", func(t *models.Task) error {
		t.ReminderTime = ms
		return nil
	})
}

// SetTags replaces the task's tag id set. Order is preserved for display.
func (s *FileTaskStore) SetTags(id string, tagIDs []string) (models.Task, error) {
	return s.mutate(id, "set tags", func(t *models.Task) error {
		if tagIDs == nil {
			tagIDs = []string{}
		}
		t.Tags = tagIDs
		return nil
	})
}

// mutate runs the lock/reload/modify/save cycle shared by all single-task
// updates, reverting the in-memory record if the save fails.
func (s *FileTaskStore) mutate(id, op string, fn func(*models.Task) error) (models.Task, error) {
	if err := s.blob.lock(); err != nil {
		return models.Task{}, fmt.Errorf("could not lock file for %s: %w", op, err)
	}
	defer s.blob.unlock()

	if err := s.loadInternal(); err != nil {
		return models.Task{}, fmt.Errorf("failed to reload tasks before %s: %w", op, err)
	}

	i := s.indexOf(id)
	if i < 0 {
		return models.Task{}, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	original := s.tasks[i]

	if err := fn(&s.tasks[i]); err != nil {
		s.tasks[i] = original
		return models.Task{}, err
	}
	if err := models.ValidateStruct(s.tasks[i]); err != nil {
		s.tasks[i] = original
		return models.Task{}, fmt.Errorf("validation failed after %s: %w", op, err)
	}

	if err := s.saveInternal(); err != nil {
		s.tasks[i] = original
		return models.Task{}, fmt.Errorf("failed to save after %s: %w", op, err)
	}
	return s.tasks[i], nil
}

// Delete removes the task permanently. Irreversible; the caller is expected
// to have confirmed with the user.
func (s *FileTaskStore) Delete(id string) error {
	if err := s.blob.lock(); err != nil {
		return fmt.Errorf("could not lock file for delete: %w", err)
	}
	defer s.blob.unlock()

	if err := s.loadInternal(); err != nil {
		return fmt.Errorf("failed to reload tasks before delete: %w", err)
	}

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)

	if err := s.saveInternal(); err != nil {
		_ = s.loadInternal()
		return fmt.Errorf("failed to save after deleting task: %w", err)
	}
	return nil
}

// List returns all tasks in collection order.
func (s *FileTaskStore) List() ([]models.Task, error) {
	if err := s.blob.lock(); err != nil {
		return nil, fmt.Errorf("failed to acquire lock for List: %w", err)
	}
	defer s.blob.unlock()

	if err := s.loadInternal(); err != nil {
		return nil, err
	}
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out, nil
}

// Close releases the file lock. Unlock is idempotent.
func (s *FileTaskStore) Close() error {
	if s.blob == nil {
		return nil
	}
	return s.blob.close()
}
