package store

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gofrs/flock"
	yaml "gopkg.in/yaml.v3"
)

const (
	dataFileKey       = "dataFile"
	dataFileFormatKey = "dataFileFormat"
	defaultDataFormat = "json"
	formatJSON        = "json"
	formatYAML        = "yaml"
	formatTOML        = "toml"
	checksumSuffix    = ".checksum"
)

// blobFile is the shared persistence backend: one whole-collection blob per
// store, guarded by a file lock, verified with a SHA-256 checksum sidecar and
// replaced atomically on every write.
type blobFile struct {
	filePath string
	format   string
	flk      *flock.Flock
}

func newBlobFile(config map[string]string, defaultFile string) (*blobFile, error) {
	b := &blobFile{filePath: defaultFile, format: defaultDataFormat}

	if val, ok := config[dataFileKey]; ok && val != "" {
		b.filePath = val
	}
	if val, ok := config[dataFileFormatKey]; ok && val != "" {
		formatLower := strings.ToLower(val)
		switch formatLower {
		case formatJSON, formatYAML, formatTOML:
			b.format = formatLower
		default:
			return nil, fmt.Errorf("unsupported dataFileFormat: %s. Supported formats are json, yaml, toml", val)
		}
	}
	if b.filePath == defaultFile && b.format != formatJSON {
		ext := filepath.Ext(b.filePath)
		b.filePath = strings.TrimSuffix(b.filePath, ext) + "." + b.format
	}

	dir := filepath.Dir(b.filePath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	b.flk = flock.New(b.filePath)
	return b, nil
}

func (b *blobFile) lock() error {
	return b.flk.Lock()
}

func (b *blobFile) unlock() {
	_ = b.flk.Unlock()
}

func (b *blobFile) close() error {
	if b.flk != nil {
		return b.flk.Unlock()
	}
	return nil
}

// calculateChecksum computes the SHA-256 checksum of the given data.
func calculateChecksum(data []byte) string {
	hasher := sha256.New()
	hasher.Write(data)
	return hex.EncodeToString(hasher.Sum(nil))
}

// read returns the raw blob, creating an empty file on first use and
// verifying the checksum sidecar when present. An empty or absent file yields
// nil data. The caller must hold the lock.
func (b *blobFile) read() ([]byte, error) {
	checksumFilePath := b.filePath + checksumSuffix

	data, err := os.ReadFile(b.filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			_ = os.Remove(checksumFilePath)
			f, createErr := os.OpenFile(b.filePath, os.O_CREATE|os.O_RDWR, 0o644)
			if createErr != nil {
				return nil, fmt.Errorf("failed to create data file %s: %w", b.filePath, createErr)
			}
			_ = f.Close()
			_ = os.WriteFile(checksumFilePath, []byte(calculateChecksum([]byte{})), 0o644)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read data file %s: %w", b.filePath, err)
	}

	if _, err := os.Stat(checksumFilePath); err == nil {
		expectedChecksumBytes, readErr := os.ReadFile(checksumFilePath)
		if readErr != nil {
			return nil, fmt.Errorf("failed to read checksum file %s: %w", checksumFilePath, readErr)
		}
		expectedChecksum := strings.TrimSpace(string(expectedChecksumBytes))
		actualChecksum := calculateChecksum(data)
		if actualChecksum != expectedChecksum {
			return nil, fmt.Errorf("checksum mismatch for %s - expected %s, got %s - file is corrupt or tampered", b.filePath, expectedChecksum, actualChecksum)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("error checking checksum file %s: %w", checksumFilePath, err)
	}
	// Pre-checksum data loads as-is; the next save creates the sidecar.

	if len(data) == 0 {
		return nil, nil
	}
	return data, nil
}

// unmarshal decodes raw blob bytes into v according to the configured format.
func (b *blobFile) unmarshal(data []byte, v interface{}) error {
	switch b.format {
	case formatJSON:
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to unmarshal JSON from %s: %w", b.filePath, err)
		}
	case formatYAML:
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to unmarshal YAML from %s: %w", b.filePath, err)
		}
	case formatTOML:
		if err := toml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to unmarshal TOML from %s: %w", b.filePath, err)
		}
	default:
		return fmt.Errorf("unsupported data format for loading: %s", b.format)
	}
	return nil
}

// write serializes v and atomically replaces the blob and its checksum.
// The caller must hold the lock.
func (b *blobFile) write(v interface{}) error {
	var marshaledData []byte
	var err error

	switch b.format {
	case formatJSON:
		marshaledData, err = json.MarshalIndent(v, "", "  ")
	case formatYAML:
		marshaledData, err = yaml.Marshal(v)
	case formatTOML:
		buf := new(bytes.Buffer)
		if encodeErr := toml.NewEncoder(buf).Encode(v); encodeErr == nil {
			marshaledData = buf.Bytes()
		} else {
			err = fmt.Errorf("failed to marshal TOML: %w", encodeErr)
		}
	default:
		return fmt.Errorf("unsupported data format for saving: %s", b.format)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal data to %s: %w", b.format, err)
	}

	tempFilePath := b.filePath + ".tmp"
	checksumFilePath := b.filePath + checksumSuffix
	tempChecksumFilePath := checksumFilePath + ".tmp"

	defer func() { _ = os.Remove(tempFilePath) }()
	defer func() { _ = os.Remove(tempChecksumFilePath) }()

	if err := os.WriteFile(tempFilePath, marshaledData, 0o644); err != nil {
		return fmt.Errorf("failed to write to temporary data file %s: %w", tempFilePath, err)
	}
	actualChecksum := calculateChecksum(marshaledData)
	if err := os.WriteFile(tempChecksumFilePath, []byte(actualChecksum), 0o644); err != nil {
		return fmt.Errorf("failed to write to temporary checksum file %s: %w", tempChecksumFilePath, err)
	}

	if err := os.Rename(tempFilePath, b.filePath); err != nil {
		return fmt.Errorf("failed to rename temporary data file %s to %s: %w", tempFilePath, b.filePath, err)
	}
	if err := os.Rename(tempChecksumFilePath, checksumFilePath); err != nil {
		return fmt.Errorf("data file %s updated, but failed to update checksum file %s: %w - store may be inconsistent", b.filePath, checksumFilePath, err)
	}

	return nil
}
