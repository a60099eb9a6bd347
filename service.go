package afisnet

import (
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/jtejido/afisnet/catalog"
	"github.com/jtejido/afisnet/journal"
	"github.com/jtejido/afisnet/matching"
	"github.com/jtejido/afisnet/network"
	"github.com/jtejido/afisnet/primitives"
)

var ErrEmptySample = errors.New("sample has no minutiae")

type Service struct {
	mu         sync.RWMutex
	store      catalog.Store
	graph      *network.Graph
	identifier *matching.Identifier
	journal    *journal.Journal
	logger     *log.Logger
}

type Option func(*Service)

// WithJournal records actions and search history.
func WithJournal(j *journal.Journal) Option {
	return func(s *Service) { s.journal = j }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// New loads the catalog from store and builds the initial graph.
func New(store catalog.Store, params matching.Params, opts ...Option) (*Service, error) {
	s := &Service{
		store:      store,
		identifier: matching.NewIdentifier(params),
		logger:     log.New(io.Discard, "", 0),
	}
	for _, o := range opts {
		o(s)
	}
	if err := s.rebuild(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Service) rebuild() error {
	records, err := s.store.List()
	if err != nil {
		return fmt.Errorf("list catalog: %w", err)
	}
	s.graph = network.Build(records)
	return nil
}

type Stats struct {
	Records    int `json:"records"`
	GraphNodes int `json:"graph_nodes"`
	GraphEdges int `json:"graph_edges"`
}

func (s *Service) Stats() (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records, err := s.store.List()
	if err != nil {
		return Stats{}, err
	}
	return Stats{Records: len(records), GraphNodes: s.graph.Nodes(), GraphEdges: s.graph.Edges()}, nil
}

// AddRecord validates and inserts r, then rebuilds the graph while still holding the
// write lock.
func (s *Service) AddRecord(r catalog.Record) error {
	if err := r.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Insert(r); err != nil {
		return err
	}
	if err := s.rebuild(); err != nil {
		return err
	}
	s.action("Added record ID: %d", r.ID)
	s.logger.Printf("added record %d (%s), graph has %d nodes", r.ID, r.Name, s.graph.Nodes())
	return nil
}

// Import inserts records in order, stopping at the first failure. It returns how many
// were inserted.
func (s *Service) Import(records []catalog.Record) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	var err error
	for _, r := range records {
		if err = s.store.Insert(r); err != nil {
			err = fmt.Errorf("import record %d: %w", r.ID, err)
			break
		}
		n++
	}
	if n > 0 {
		if rerr := s.rebuild(); rerr != nil {
			return n, errors.Join(err, rerr)
		}
		s.action("Imported %d records", n)
	}
	return n, err
}

func (s *Service) Records() ([]catalog.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.List()
}

// Record looks up id and notes the lookup in the search history.
func (s *Service) Record(id int) (catalog.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, err := s.store.Get(id)
	if err != nil {
		return catalog.Record{}, err
	}
	s.action("Viewed record ID: %d", id)
	s.search("Viewed record ID: %d", id)
	return r, nil
}

// Identify scans the whole catalog for the record closest to sample. The bool is false
// when nothing corresponds.
func (s *Service) Identify(sample []primitives.Minutia, alg matching.Algorithm) (matching.MatchResult, bool, error) {
	if len(sample) == 0 {
		return matching.MatchResult{}, false, ErrEmptySample
	}
	for i, p := range sample {
		if err := p.Validate(); err != nil {
			return matching.MatchResult{}, false, fmt.Errorf("sample point %d: %w", i+1, err)
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	records, err := s.store.List()
	if err != nil {
		return matching.MatchResult{}, false, fmt.Errorf("list catalog: %w", err)
	}
	res, ok := s.identifier.Identify(records, sample, alg)
	if !ok {
		s.logger.Printf("%s match of %d points: no match in %d records", alg, len(sample), len(records))
		return res, false, nil
	}
	s.logger.Printf("%s match of %d points: record %d score %.4f", alg, len(sample), res.RecordID, res.Score)
	s.action("Matched fingerprint with record ID: %d", res.RecordID)
	s.search("Fingerprint match with ID: %d", res.RecordID)
	return res, true, nil
}

func (s *Service) Network(id int) (network.Traversal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.graph.Traverse(id)
}

func (s *Service) Adjacency(id int) (network.Adjacency, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.graph.Adjacency(id)
}

func (s *Service) History() ([]string, error) {
	if s.journal == nil {
		return nil, nil
	}
	return s.journal.History()
}

// Login verifies an operator through check and writes the outcome to the action log.
func (s *Service) Login(user string, check func() error) error {
	if err := check(); err != nil {
		s.action("Failed login attempt for user: %s", user)
		return err
	}
	s.action("Login successful for user: %s", user)
	return nil
}

func (s *Service) action(format string, args ...any) {
	if s.journal == nil {
		return
	}
	if err := s.journal.Action(format, args...); err != nil {
		s.logger.Printf("journal action: %v", err)
	}
}

func (s *Service) search(format string, args ...any) {
	if s.journal == nil {
		return
	}
	if err := s.journal.Search(format, args...); err != nil {
		s.logger.Printf("journal search: %v", err)
	}
}

func (s *Service) Close() error {
	var errs []error
	if s.journal != nil {
		errs = append(errs, s.journal.Close())
	}
	errs = append(errs, s.store.Close())
	return errors.Join(errs...)
}
