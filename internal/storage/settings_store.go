package storage

import (
	"encoding/json"
	"fmt"
)

// Settings are user preferences persisted in SettingsFileName.
type Settings struct {
	ClearOnExit bool `json:"clear_on_exit"`
}

// SettingsStore reads and writes Settings.
type SettingsStore struct {
	dir string
}

// NewSettingsStore creates a SettingsStore in dir.
func NewSettingsStore(dir string) *SettingsStore {
	return &SettingsStore{dir: dir}
}

// Load returns the zero Settings when the file does not exist.
func (s *SettingsStore) Load() (Settings, error) {
	data, ok, err := readFile(s.dir, SettingsFileName)
	if err != nil || !ok {
		return Settings{}, err
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings: %w", err)
	}
	return settings, nil
}

// Save replaces the stored settings.
func (s *SettingsStore) Save(settings Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	return writeFileAtomic(s.dir, SettingsFileName, data)
}

// Delete removes the settings file.
func (s *SettingsStore) Delete() error {
	return removeFile(s.dir, SettingsFileName)
}
