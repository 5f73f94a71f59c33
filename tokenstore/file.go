package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
)

// FileStore persists credentials as a small JSON document readable only by the current user.
type FileStore struct {
	mu   sync.Mutex
	path string
}

var _ Store = (*FileStore)(nil)

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Get(_ context.Context, slot Slot) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tokens, err := s.load()
	if err != nil {
		log.Err(err).Str("path", s.path).Msg("tokenstore: failed to read session file")
		return "", false
	}
	token, ok := tokens[slot]
	return token, ok && token != ""
}

func (s *FileStore) Set(_ context.Context, slot Slot, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tokens, err := s.load()
	if err != nil {
		// A corrupt file is replaced rather than blocking login.
		log.Err(err).Str("path", s.path).Msg("tokenstore: discarding unreadable session file")
		tokens = make(map[Slot]string)
	}
	if token == "" {
		delete(tokens, slot)
	} else {
		tokens[slot] = token
	}
	return s.save(tokens)
}

func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

func (s *FileStore) load() (map[Slot]string, error) {
	tokens := make(map[Slot]string)
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return tokens, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &tokens); err != nil {
		return nil, fmt.Errorf("failed to decode session file: %w", err)
	}
	return tokens, nil
}

func (s *FileStore) save(tokens map[Slot]string) error {
	if len(tokens) == 0 {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove session file: %w", err)
		}
		return nil
	}
	data, err := json.Marshal(tokens)
	if err != nil {
		return fmt.Errorf("failed to encode session file: %w", err)
	}
	return writePrivateFile(s.path, data)
}

// writePrivateFile replaces path atomically with a file only the current user can read.
func writePrivateFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create data folder: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
