package catalog

import (
	"github.com/emirpasic/gods/maps/treemap"
)

// MemoryStore keeps records in a tree keyed by id, so iteration is always ascending.
type MemoryStore struct {
	tree *treemap.Map
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tree: treemap.NewWithIntComparator()}
}

func (m *MemoryStore) List() ([]Record, error) {
	out := make([]Record, 0, m.tree.Size())
	it := m.tree.Iterator()
	for it.Next() {
		out = append(out, it.Value().(Record).Clone())
	}
	return out, nil
}

func (m *MemoryStore) Get(id int) (Record, error) {
	v, ok := m.tree.Get(id)
	if !ok {
		return Record{}, notFound(id)
	}
	return v.(Record).Clone(), nil
}

func (m *MemoryStore) Insert(r Record) error {
	if _, ok := m.tree.Get(r.ID); ok {
		return duplicate(r.ID)
	}
	m.tree.Put(r.ID, r.Clone())
	return nil
}

func (m *MemoryStore) Len() int {
	return m.tree.Size()
}

func (m *MemoryStore) Close() error {
	return nil
}

func (m *MemoryStore) remove(id int) {
	m.tree.Remove(id)
}
