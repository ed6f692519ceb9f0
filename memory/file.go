// Copyright (c) Nimbus AI. All rights reserved.

package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	ak "github.com/nimbus-ai/weather-agent/agentkit"
)

// FileStore persists a session's messages as a JSON file. Each session gets
// its own file named <sessionID>.json under the store directory.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates (or reopens) the file-backed store for a session.
// The directory is created if it does not exist.
func NewFileStore(dir, sessionID string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	return &FileStore{
		path: filepath.Join(dir, sessionID+".json"),
	}, nil
}

// sessionFile is the on-disk layout. Messages round-trip through the
// $type content envelope, so tool calls and results survive restarts.
type sessionFile struct {
	Messages []ak.Message `json:"messages"`
}

func (s *FileStore) ListMessages(_ context.Context) ([]ak.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) AddMessages(_ context.Context, msgs []ak.Message) error {
	if len(msgs) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.load()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(sessionFile{Messages: append(existing, msgs...)}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	// Write-then-rename keeps the file readable if we crash mid-write.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

func (s *FileStore) load() ([]ak.Message, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var f sessionFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse session file: %w", err)
	}
	return f.Messages, nil
}
