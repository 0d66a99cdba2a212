package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Store persists the full cart state as a single snapshot
type Store interface {
	Save(state State) error
	Load() (State, error)
}

// FileStore keeps the snapshot in one JSON file. A missing file and
// unreadable JSON both load as an empty cart; only real IO failures
// surface as errors.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Save(state State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode cart state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create cart state directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cart state: %w", err)
	}
	return nil
}

func (s *FileStore) Load() (State, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return State{}, nil
	}
	if err != nil {
		return State{}, fmt.Errorf("failed to read cart state: %w", err)
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		// corrupt snapshot, start over
		return State{}, nil
	}
	return state, nil
}
