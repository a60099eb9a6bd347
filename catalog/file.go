package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fxamacker/cbor/v2"
	"github.com/gofrs/flock"
)

// FileStore holds the catalog in memory and rewrites a CBOR file on every insert.
type FileStore struct {
	*MemoryStore
	path string
	lock *flock.Flock
}

func OpenFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return nil, fmt.Errorf("create catalog directory: %w", err)
	}
	s := &FileStore{
		MemoryStore: NewMemoryStore(),
		path:        path,
		lock:        flock.New(path + ".lock"),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) load() error {
	if err := s.lock.RLock(); err != nil {
		return fmt.Errorf("lock catalog: %w", err)
	}
	defer s.lock.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read catalog: %w", err)
	}
	if len(data) == 0 {
		return nil
	}
	var records []Record
	if err := cbor.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("decode catalog %s: %w", s.path, err)
	}
	for _, r := range records {
		if err := s.MemoryStore.Insert(r); err != nil {
			return fmt.Errorf("catalog %s: %w", s.path, err)
		}
	}
	return nil
}

func (s *FileStore) Insert(r Record) error {
	if err := s.MemoryStore.Insert(r); err != nil {
		return err
	}
	if err := s.save(); err != nil {
		s.MemoryStore.remove(r.ID)
		return err
	}
	return nil
}

func (s *FileStore) save() error {
	records, _ := s.MemoryStore.List()
	data, err := cbor.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}

	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("lock catalog: %w", err)
	}
	defer s.lock.Unlock()

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace catalog: %w", err)
	}
	return nil
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Close() error {
	return s.lock.Close()
}
