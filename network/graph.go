// Package network derives the associate graph from catalog records and walks it.
package network

import (
	"sort"

	"github.com/jtejido/afisnet/catalog"
)

// Graph is a directed adjacency built from each record's associate list. It is read-only
// once built; a catalog change requires a fresh Build.
type Graph struct {
	adjacency map[int][]int
	names     map[int]string
}

// Build adds an edge record -> associate for every listed associate, in list order. An
// associate with no outgoing edges still gets an (empty) adjacency entry.
func Build(records []catalog.Record) *Graph {
	g := &Graph{
		adjacency: make(map[int][]int),
		names:     make(map[int]string, len(records)),
	}
	for _, r := range records {
		g.names[r.ID] = r.Name
		for _, a := range r.Associates {
			g.adjacency[r.ID] = append(g.adjacency[r.ID], a)
			if _, ok := g.adjacency[a]; !ok {
				g.adjacency[a] = nil
			}
		}
	}
	return g
}

// Nodes is the number of ids that have an adjacency entry.
func (g *Graph) Nodes() int {
	return len(g.adjacency)
}

func (g *Graph) Edges() int {
	n := 0
	for _, out := range g.adjacency {
		n += len(out)
	}
	return n
}

// IDs lists the ids with an adjacency entry in ascending order.
func (g *Graph) IDs() []int {
	ids := make([]int, 0, len(g.adjacency))
	for id := range g.adjacency {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (g *Graph) Has(id int) bool {
	_, ok := g.names[id]
	return ok
}

// Name returns the catalog name of id, or "" when id is not a catalog record.
func (g *Graph) Name(id int) string {
	return g.names[id]
}

type Edge struct {
	To     int    `json:"to"`
	Name   string `json:"name,omitempty"`
	Known  bool   `json:"known"`
	Degree int    `json:"degree"`
}

// Adjacency is the direct, non-traversing view of one record.
type Adjacency struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Edges []Edge `json:"edges"`
}

// Adjacency lists the outgoing edges of id. An empty Edges means the record has no
// connections; an id outside the catalog is catalog.ErrNotFound.
func (g *Graph) Adjacency(id int) (Adjacency, error) {
	if !g.Has(id) {
		return Adjacency{}, &NotFoundError{ID: id}
	}
	adj := Adjacency{ID: id, Name: g.names[id], Edges: []Edge{}}
	for _, to := range g.adjacency[id] {
		name, known := g.names[to]
		adj.Edges = append(adj.Edges, Edge{To: to, Name: name, Known: known, Degree: 1})
	}
	return adj, nil
}
