package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mindflowapp/mindflow/internal/datekey"
)

func TestRejectsUnknownFormat(t *testing.T) {
	s := NewFileTaskStore()
	err := s.Initialize(map[string]string{
		"dataFile":       filepath.Join(t.TempDir(), "tasks.xml"),
		"dataFileFormat": "xml",
	})
	if err == nil {
		t.Fatal("xml should be rejected")
	}
}

func TestYAMLFormatRoundTrip(t *testing.T) {
	dir := t.TempDir()
	config := map[string]string{
		"dataFile":       filepath.Join(dir, "tasks.yaml"),
		"dataFileFormat": "yaml",
	}

	s := NewFileTaskStore()
	if err := s.Initialize(config); err != nil {
		t.Fatal(err)
	}
	today := datekey.Today()
	task, err := s.Add("stored as yaml", today, today)
	if err != nil {
		t.Fatal(err)
	}
	_ = s.Close()

	s2 := NewFileTaskStore()
	if err := s2.Initialize(config); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = s2.Close() }()
	got, err := s2.Get(task.ID)
	if err != nil {
		t.Fatalf("Get after yaml reopen: %v", err)
	}
	if got.Text != "stored as yaml" {
		t.Errorf("text = %q", got.Text)
	}
}

func TestChecksumMismatchDetected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.json")
	config := map[string]string{"dataFile": path, "dataFileFormat": "json"}

	s := NewFileTaskStore()
	if err := s.Initialize(config); err != nil {
		t.Fatal(err)
	}
	today := datekey.Today()
	if _, err := s.Add("guarded", today, today); err != nil {
		t.Fatal(err)
	}
	_ = s.Close()

	// Tamper with the data file but leave the sidecar alone.
	if err := os.WriteFile(path, []byte(`[]`), 0o644); err != nil {
		t.Fatal(err)
	}

	s2 := NewFileTaskStore()
	if err := s2.Initialize(config); err == nil {
		_ = s2.Close()
		t.Fatal("tampered blob should fail the checksum")
	}
}
