package settings

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Store defines persistence operations for the settings record.
type Store interface {
	Load() (Settings, error)
	Save(Settings) error
}

// JSONStore persists settings in a single JSON file on disk.
type JSONStore struct {
	path string
}

// NewJSONStore creates a JSON-backed settings store.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Path returns the backing file location.
func (s *JSONStore) Path() string { return s.path }

// Load reads settings from disk merged over defaults, or returns defaults
// when the file does not exist yet. Any other read error also yields
// defaults alongside the error.
func (s *JSONStore) Load() (Settings, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Defaults(), nil
		}
		return Defaults(), err
	}
	return Merge(data)
}

// Save writes settings as indented JSON and creates parent directories.
// The file holds API keys, so it is written 0600.
func (s *JSONStore) Save(cfg Settings) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// DefaultPath returns the per-user settings location,
// <UserConfigDir>/autotitle/settings.json, falling back to the working
// directory when no config dir is available.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return "autotitle-settings.json"
	}
	return filepath.Join(dir, "autotitle", "settings.json")
}
