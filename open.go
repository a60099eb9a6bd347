package afisnet

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/jtejido/afisnet/catalog"
	"github.com/jtejido/afisnet/config"
	"github.com/jtejido/afisnet/journal"
	"github.com/jtejido/afisnet/matching"
)

// Open wires a Service from cfg: the configured store, a journal under cfg.Journal.Dir
// (skipped when empty), and a logger writing to stderr plus the journal's process log.
func Open(cfg *config.Options) (*Service, error) {
	store, err := catalog.Open(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}

	var (
		out  io.Writer = os.Stderr
		j    *journal.Journal
		opts []Option
	)
	if cfg.Journal.Dir != "" {
		if j, err = journal.Open(cfg.Journal); err != nil {
			_ = store.Close()
			return nil, err
		}
		out = io.MultiWriter(os.Stderr, j.Writer())
		opts = append(opts, WithJournal(j))
	}
	opts = append(opts, WithLogger(log.New(out, "afis ", log.LstdFlags)))

	svc, err := New(store, matching.ParamsFrom(cfg.Matching), opts...)
	if err != nil {
		if j != nil {
			_ = j.Close()
		}
		_ = store.Close()
		return nil, err
	}
	return svc, nil
}
