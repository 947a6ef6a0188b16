// Package session implements the client-side route guard: a small state
// machine that resolves locally cached session state once and then gates
// navigation to identity-protected views. It is a UX convenience only; the
// server-side access guard is the real security boundary.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// TokenStore persists the session token between client runs.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// FileStore keeps the token in a small JSON file, typically under the
// user's config directory.
type FileStore struct {
	path string
}

type fileStorePayload struct {
	Token string `json:"token"`
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultStorePath resolves the per-user token file location.
func DefaultStorePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("session.DefaultStorePath: %w", err)
	}
	return filepath.Join(dir, "stylemart", "session.json"), nil
}

// Load returns an empty string when no token has been saved yet.
func (s *FileStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("session.FileStore.Load: %w", err)
	}
	var payload fileStorePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", fmt.Errorf("session.FileStore.Load: %w", err)
	}
	return payload.Token, nil
}

func (s *FileStore) Save(token string) error {
	data, err := json.Marshal(fileStorePayload{Token: token})
	if err != nil {
		return fmt.Errorf("session.FileStore.Save: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("session.FileStore.Save: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("session.FileStore.Save: %w", err)
	}
	return nil
}

func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("session.FileStore.Clear: %w", err)
	}
	return nil
}
