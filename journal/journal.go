// Package journal appends timestamped operator actions and search history to rotating
// files.
package journal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"

	"github.com/jtejido/afisnet/config"
)

type Journal struct {
	mu      sync.Mutex
	actions *rotatelogs.RotateLogs
	history *rotatelogs.RotateLogs
	process *rotatelogs.RotateLogs
	// historyLink always points at the newest history file, including ones written by
	// earlier processes.
	historyLink string
	now         func() time.Time
}

func Open(cfg config.Journal) (*Journal, error) {
	if err := os.MkdirAll(cfg.Dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}
	actions, err := rotating(cfg, "actions")
	if err != nil {
		return nil, err
	}
	history, err := rotating(cfg, "history")
	if err != nil {
		_ = actions.Close()
		return nil, err
	}
	process, err := rotating(cfg, "afis")
	if err != nil {
		_ = actions.Close()
		_ = history.Close()
		return nil, err
	}
	return &Journal{
		actions:     actions,
		history:     history,
		process:     process,
		historyLink: linkName(cfg, "history"),
		now:         time.Now,
	}, nil
}

func rotating(cfg config.Journal, name string) (*rotatelogs.RotateLogs, error) {
	opts := []rotatelogs.Option{
		rotatelogs.WithLinkName(linkName(cfg, name)),
	}
	if cfg.MaxAgeHours > 0 {
		opts = append(opts, rotatelogs.WithMaxAge(time.Duration(cfg.MaxAgeHours)*time.Hour))
	}
	if cfg.RotationHours > 0 {
		opts = append(opts, rotatelogs.WithRotationTime(time.Duration(cfg.RotationHours)*time.Hour))
	}
	rl, err := rotatelogs.New(filepath.Join(cfg.Dir, name+".%Y%m%d%H%M.log"), opts...)
	if err != nil {
		return nil, fmt.Errorf("open %s journal: %w", name, err)
	}
	return rl, nil
}

func linkName(cfg config.Journal, name string) string {
	return filepath.Join(cfg.Dir, name+".log")
}

// Writer is the rotating file behind the process logger.
func (j *Journal) Writer() io.Writer {
	return j.process
}

func (j *Journal) Action(format string, args ...any) error {
	return j.append(j.actions, fmt.Sprintf(format, args...))
}

func (j *Journal) Search(format string, args ...any) error {
	return j.append(j.history, fmt.Sprintf(format, args...))
}

func (j *Journal) append(w io.Writer, entry string) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	_, err := fmt.Fprintf(w, "%s: %s\n", j.now().Format(time.RFC3339), entry)
	return err
}

// History returns the search history entries of the current history file, oldest first.
func (j *Journal) History() ([]string, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	f, err := os.Open(j.historyLink)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open search history: %w", err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}

func (j *Journal) Close() error {
	return errors.Join(j.actions.Close(), j.history.Close(), j.process.Close())
}
