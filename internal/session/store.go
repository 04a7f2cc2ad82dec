package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore persists the session token as JSON on disk.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by path.
func NewFileStore(path string) (*FileStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("token path is empty")
	}
	return &FileStore{path: path}, nil
}

// Path returns the token file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the persisted token. A missing, unreadable or corrupt file yields
// ok=false rather than an error so the caller simply logs in again.
func (s *FileStore) Load() (tok Token, ok bool) {
	bytes, err := os.ReadFile(s.path)
	if err != nil {
		return Token{}, false
	}
	if err := json.Unmarshal(bytes, &tok); err != nil {
		return Token{}, false
	}
	if tok.IsZero() {
		return Token{}, false
	}
	return tok, true
}

// Save overwrites the token file, creating parent directories as needed.
func (s *FileStore) Save(tok Token) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}

	bytes, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("marshal token: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, bytes, 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace token: %w", err)
	}
	return nil
}

// Remove deletes the token file. A file that does not exist is not an error.
func (s *FileStore) Remove() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}
