package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// FileStore implements Store over a single JSON document holding the whole
// key -> value map. Open loads the snapshot; every Save rewrites the file in
// place and fsyncs, so a crash loses at most the in-flight write.
type FileStore struct {
	mu     sync.RWMutex
	file   *os.File
	values map[string]string
}

func OpenFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}

	s := &FileStore{file: f}
	if err := s.load(); err != nil {
		_ = f.Close()
		return nil, err
	}
	return s, nil
}

func (s *FileStore) load() error {
	info, err := s.file.Stat()
	if err != nil {
		return err
	}
	if info.Size() == 0 {
		s.values = make(map[string]string)
		return nil
	}

	dec := json.NewDecoder(s.file)
	var values map[string]string
	if err := dec.Decode(&values); err != nil {
		return fmt.Errorf("decode data file: %w", err)
	}
	s.values = values
	return nil
}

func (s *FileStore) Load(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return value, nil
}

func (s *FileStore) Save(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	s.values[key] = value
	return s.flushLocked()
}

func (s *FileStore) flushLocked() error {
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	enc := json.NewEncoder(s.file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.values); err != nil {
		return err
	}
	// truncate in case new content is shorter
	pos, err := s.file.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	if err := s.file.Truncate(pos); err != nil {
		return err
	}
	return s.file.Sync()
}

func (s *FileStore) Close() error {
	return s.file.Close()
}
