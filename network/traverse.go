package network

import (
	"fmt"

	"github.com/emirpasic/gods/queues/linkedlistqueue"
	"github.com/emirpasic/gods/sets/hashset"

	"github.com/jtejido/afisnet/catalog"
)

type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("record %d is not in the catalog", e.ID)
}

func (e *NotFoundError) Unwrap() error { return catalog.ErrNotFound }

// Visit is one dequeued node with its degree and every outgoing edge, each edge carrying
// the degree assigned to its target.
type Visit struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Degree int    `json:"degree"`
	Edges  []Edge `json:"edges"`
}

type Traversal struct {
	Start  int     `json:"start"`
	Visits []Visit `json:"visits"`
	// Visited counts distinct nodes reached, including Start.
	Visited int `json:"visited"`
	// MaxDegree is the largest degree assigned during the walk.
	MaxDegree int `json:"max_degree"`
}

// Traverse walks the graph breadth-first from start. A node's degree is fixed the first
// time an edge reaches it.
func (g *Graph) Traverse(start int) (Traversal, error) {
	if !g.Has(start) {
		return Traversal{}, &NotFoundError{ID: start}
	}

	degrees := map[int]int{start: 0}
	visited := hashset.New()
	visited.Add(start)
	queue := linkedlistqueue.New()
	queue.Enqueue(start)

	t := Traversal{Start: start}
	for !queue.Empty() {
		v, _ := queue.Dequeue()
		current := v.(int)
		visit := Visit{ID: current, Name: g.names[current], Degree: degrees[current], Edges: []Edge{}}

		for _, next := range g.adjacency[current] {
			if _, ok := degrees[next]; !ok {
				degrees[next] = degrees[current] + 1
			}
			name, known := g.names[next]
			visit.Edges = append(visit.Edges, Edge{To: next, Name: name, Known: known, Degree: degrees[next]})
			if !visited.Contains(next) {
				visited.Add(next)
				queue.Enqueue(next)
			}
		}
		t.Visits = append(t.Visits, visit)
	}

	t.Visited = visited.Size()
	for _, d := range degrees {
		t.MaxDegree = max(t.MaxDegree, d)
	}
	return t, nil
}
