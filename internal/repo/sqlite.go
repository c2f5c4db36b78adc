package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // registers "sqlite3" driver
)

// SQLiteSlots stores slots in a single-table SQLite database.
type SQLiteSlots struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path in WAL mode and ensures
// the kv_slots table exists.
func OpenSQLite(ctx context.Context, path string) (*SQLiteSlots, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("repo.OpenSQLite: %w", err)
		}
	}

	params := url.Values{}
	params.Add("_journal_mode", "WAL")
	params.Add("_synchronous", "NORMAL")
	params.Add("_busy_timeout", "5000")

	db, err := sql.Open("sqlite3", "file:"+path+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("repo.OpenSQLite: open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("repo.OpenSQLite: ping: %w", err)
	}

	const ddl = `
		CREATE TABLE IF NOT EXISTS kv_slots (
			key        TEXT PRIMARY KEY,
			value      BLOB NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("repo.OpenSQLite: create table: %w", err)
	}

	return &SQLiteSlots{db: db}, nil
}

// Get implements SlotRepo.
func (s *SQLiteSlots) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_slots WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("repo.SQLiteSlots.Get: %w", err)
	}
	return value, true, nil
}

// Put implements SlotRepo.
func (s *SQLiteSlots) Put(ctx context.Context, key string, value []byte) error {
	const q = `
		INSERT INTO kv_slots (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := s.db.ExecContext(ctx, q, key, value); err != nil {
		return fmt.Errorf("repo.SQLiteSlots.Put: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLiteSlots) Close() error {
	return s.db.Close()
}
