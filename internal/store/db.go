// Package store persists the local backend's documents in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

var (
	ErrNotFound  = errors.New("store: not found")
	ErrDuplicate = errors.New("store: duplicate")
)

type Store struct {
	DB *sql.DB
}

// NewStore opens the database at dataSourceName. ":memory:" gives a private
// in-memory database.
func NewStore(dataSourceName string) (*Store, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, err
	}
	// One connection: SQLite serialises writers anyway, and an in-memory
	// database exists only on the connection that created it.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{DB: db}, nil
}

func (s *Store) Close() error {
	return s.DB.Close()
}

// newID returns a 24 character hex id, the shape the dashboard sees from
// the production backend.
func newID() string {
	u := uuid.New()
	const hex = "0123456789abcdef"
	out := make([]byte, 24)
	for i := 0; i < 12; i++ {
		out[i*2] = hex[u[i]>>4]
		out[i*2+1] = hex[u[i]&0x0f]
	}
	return string(out)
}

// affected turns a zero row count into ErrNotFound.
func affected(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}
