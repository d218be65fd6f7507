package store

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"

	"github.com/mindflowapp/mindflow/models"
)

const defaultTagsFile = "tags.json"

// FileTagStore implements TagStore on a blob holding the tag registry.
// Tags are append-only; deleting one would orphan ids held by tasks and
// journal entries.
type FileTagStore struct {
	blob *blobFile
	tags []models.Tag
}

// NewFileTagStore creates a new instance of FileTagStore.
// Initialize must be called before use.
func NewFileTagStore() *FileTagStore {
	return &FileTagStore{}
}

// Initialize configures the store. An empty registry is seeded with the
// default starter tags on first use.
func (s *FileTagStore) Initialize(config map[string]string) error {
	blob, err := newBlobFile(config, defaultTagsFile)
	if err != nil {
		return err
	}
	s.blob = blob

	if err := s.blob.lock(); err != nil {
		return fmt.Errorf("failed to acquire initial lock for %s: %w", s.blob.filePath, err)
	}
	defer s.blob.unlock()

	if err := s.loadInternal(); err != nil {
		return err
	}
	if len(s.tags) == 0 {
		seeds := []models.Tag{
			{Name: "工作", Color: models.TagColors[7]},
			{Name: "生活", Color: models.TagColors[3]},
			{Name: "重要", Color: models.TagColors[0]},
		}
		for _, seed := range seeds {
			seed.ID = uuid.NewString()
			s.tags = append(s.tags, seed)
		}
		if err := s.saveInternal(); err != nil {
			return fmt.Errorf("failed to seed default tags: %w", err)
		}
	}
	return nil
}

// tagDocument wraps the registry; TOML has no top-level arrays.
type tagDocument struct {
	Tags []models.Tag `json:"tags" yaml:"tags" toml:"tags"`
}

func (s *FileTagStore) loadInternal() error {
	data, err := s.blob.read()
	if err != nil {
		return err
	}
	if data == nil {
		s.tags = []models.Tag{}
		return nil
	}
	var doc tagDocument
	if err := s.blob.unmarshal(data, &doc); err != nil {
		return err
	}
	s.tags = doc.Tags
	return nil
}

func (s *FileTagStore) saveInternal() error {
	return s.blob.write(tagDocument{Tags: s.tags})
}

// Create registers a new tag with a random palette color. Names are not
// checked for uniqueness; two tags may share a name and differ only by id.
func (s *FileTagStore) Create(name string) (models.Tag, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return models.Tag{}, ErrBlankText
	}

	if err := s.blob.lock(); err != nil {
		return models.Tag{}, fmt.Errorf("could not lock file for create: %w", err)
	}
	defer s.blob.unlock()

	if err := s.loadInternal(); err != nil {
		return models.Tag{}, fmt.Errorf("failed to reload tags before create: %w", err)
	}

	tag := models.Tag{
		ID:    uuid.NewString(),
		Name:  trimmed,
		Color: models.TagColors[rand.Intn(len(models.TagColors))],
	}
	s.tags = append(s.tags, tag)

	if err := s.saveInternal(); err != nil {
		_ = s.loadInternal()
		return models.Tag{}, fmt.Errorf("failed to save new tag: %w", err)
	}
	return tag, nil
}

// Lookup resolves a tag id. A stale id (no longer in the registry) returns
// ok=false without an error so callers can simply skip it.
func (s *FileTagStore) Lookup(id string) (models.Tag, bool, error) {
	if err := s.blob.lock(); err != nil {
		return models.Tag{}, false, fmt.Errorf("failed to acquire lock for Lookup: %w", err)
	}
	defer s.blob.unlock()

	if err := s.loadInternal(); err != nil {
		return models.Tag{}, false, err
	}
	for _, t := range s.tags {
		if t.ID == id {
			return t, true, nil
		}
	}
	return models.Tag{}, false, nil
}

// List returns all tags in registration order.
func (s *FileTagStore) List() ([]models.Tag, error) {
	if err := s.blob.lock(); err != nil {
		return nil, fmt.Errorf("failed to acquire lock for List: %w", err)
	}
	defer s.blob.unlock()

	if err := s.loadInternal(); err != nil {
		return nil, err
	}
	out := make([]models.Tag, len(s.tags))
	copy(out, s.tags)
	return out, nil
}

// Close releases the file lock.
func (s *FileTagStore) Close() error {
	if s.blob == nil {
		return nil
	}
	return s.blob.close()
}
