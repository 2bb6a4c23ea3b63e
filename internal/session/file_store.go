package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"researchai/pkg/domain"
)

// FileStore keeps the session and preferences in a JSON file.
type FileStore struct {
	path string
}

type fileState struct {
	Session *domain.Session    `json:"session,omitempty"`
	Prefs   domain.Preferences `json:"prefs"`
}

// NewFileStore creates the parent directory if missing.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("session path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Load() (domain.Session, bool, error) {
	state, err := s.read()
	if err != nil {
		return domain.Session{}, false, err
	}
	if state.Session == nil || !state.Session.Valid() {
		return domain.Session{}, false, nil
	}
	return *state.Session, true, nil
}

func (s *FileStore) Save(sess domain.Session) error {
	state, err := s.read()
	if err != nil {
		return err
	}
	state.Session = &sess
	return s.write(state)
}

func (s *FileStore) Clear() error {
	state, err := s.read()
	if err != nil {
		return err
	}
	state.Session = nil
	return s.write(state)
}

func (s *FileStore) ClearAll() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

func (s *FileStore) LoadPrefs() (domain.Preferences, error) {
	state, err := s.read()
	if err != nil {
		return domain.Preferences{}, err
	}
	return state.Prefs, nil
}

func (s *FileStore) SavePrefs(prefs domain.Preferences) error {
	state, err := s.read()
	if err != nil {
		return err
	}
	state.Prefs = prefs
	return s.write(state)
}

func (s *FileStore) read() (fileState, error) {
	var state fileState
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return state, nil
	}
	if err != nil {
		return state, fmt.Errorf("read session file: %w", err)
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return state, fmt.Errorf("parse session file: %w", err)
	}
	return state, nil
}

func (s *FileStore) write(state fileState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}
