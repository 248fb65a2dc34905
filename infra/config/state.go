package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// UIState is the small set of view preferences persisted between runs.
type UIState struct {
	LastView string `json:"last_view,omitempty"` // feed, search, profile
	PageSize int    `json:"page_size,omitempty"`
}

// LoadUIState reads persisted state. A missing or corrupt file yields the
// zero state without error.
func LoadUIState(path string) (UIState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return UIState{}, nil
		}
		return UIState{}, err
	}
	var st UIState
	if err := json.Unmarshal(data, &st); err != nil {
		return UIState{}, nil
	}
	return st, nil
}

// SaveUIState writes state, creating parent directories as needed.
func SaveUIState(path string, st UIState) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
