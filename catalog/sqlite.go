package catalog

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fxamacker/cbor/v2"
	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS records (
	id         INTEGER PRIMARY KEY,
	name       TEXT NOT NULL,
	points     BLOB NOT NULL,
	associates BLOB NOT NULL
)`

// SQLiteStore persists records in a single table, with points and associates stored as
// CBOR blobs.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return nil, fmt.Errorf("create catalog directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout = 5000", schema} {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply %q: %w", stmt, err)
		}
	}
	return &SQLiteStore{db: db, path: path}, nil
}

func (s *SQLiteStore) List() ([]Record, error) {
	rows, err := s.db.Query(`SELECT id, name, points, associates FROM records ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) Get(id int) (Record, error) {
	row := s.db.QueryRow(`SELECT id, name, points, associates FROM records WHERE id = ?`, id)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, notFound(id)
	}
	return r, err
}

func (s *SQLiteStore) Insert(r Record) error {
	points, err := cbor.Marshal(r.Points)
	if err != nil {
		return fmt.Errorf("encode points: %w", err)
	}
	associates, err := cbor.Marshal(r.Associates)
	if err != nil {
		return fmt.Errorf("encode associates: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin insert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	err = tx.QueryRow(`SELECT COUNT(1) FROM records WHERE id = ?`, r.ID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check record %d: %w", r.ID, err)
	}
	if exists > 0 {
		return duplicate(r.ID)
	}
	if _, err := tx.Exec(
		`INSERT INTO records (id, name, points, associates) VALUES (?, ?, ?, ?)`,
		r.ID, r.Name, points, associates,
	); err != nil {
		return fmt.Errorf("insert record %d: %w", r.ID, err)
	}
	return tx.Commit()
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (Record, error) {
	var (
		r                  Record
		points, associates []byte
	)
	if err := sc.Scan(&r.ID, &r.Name, &points, &associates); err != nil {
		return Record{}, err
	}
	if err := cbor.Unmarshal(points, &r.Points); err != nil {
		return Record{}, fmt.Errorf("decode points of record %d: %w", r.ID, err)
	}
	if err := cbor.Unmarshal(associates, &r.Associates); err != nil {
		return Record{}, fmt.Errorf("decode associates of record %d: %w", r.ID, err)
	}
	return r, nil
}
