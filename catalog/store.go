package catalog

import (
	"fmt"

	"github.com/jtejido/afisnet/config"
)

// Store is the record-store collaborator. List is ordered by ascending id. Records handed
// out are copies; callers never mutate stored state through them.
type Store interface {
	List() ([]Record, error)
	Get(id int) (Record, error)
	Insert(r Record) error
	Close() error
}

// Open builds the backend named by cfg.
func Open(cfg config.Store) (Store, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return NewMemoryStore(), nil
	case config.BackendFile:
		return OpenFileStore(cfg.Path)
	case config.BackendSQLite:
		return OpenSQLiteStore(cfg.Path)
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
}
