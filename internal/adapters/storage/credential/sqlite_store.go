package credential

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"eventdesk/internal/adapters/storage"
)

// SQLiteStore implements Store using SQLite. Values pass through the sealer,
// so a configured key gives the bearer token at-rest protection.
type SQLiteStore struct {
	db     storage.SQLDB
	sealer Sealer
}

// NewSQLiteStore creates a new credential store. A nil sealer stores values
// in plaintext, matching the original localStorage behavior.
func NewSQLiteStore(db storage.SQLDB, sealer Sealer) *SQLiteStore {
	if sealer == nil {
		sealer = PlainSealer{}
	}
	return &SQLiteStore{db: db, sealer: sealer}
}

// Get retrieves a credential value by key.
// PRE: key is non-empty
// POST: Returns (value, true) when present; ("", false) when absent
// INVARIANT: Store state is not mutated
func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	var sealed []byte
	row := s.db.QueryRowContext(ctx, `SELECT value FROM credential WHERE key = ?`, key)
	if err := row.Scan(&sealed); err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, err
	}
	value, err := s.sealer.Open(sealed)
	if err != nil {
		return "", false, fmt.Errorf("unseal %s: %w", key, err)
	}
	return string(value), true, nil
}

// Set upserts a credential value.
// PRE: key is non-empty
// POST: Credential is persisted (insert or update)
func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	sealed, err := s.sealer.Seal([]byte(value))
	if err != nil {
		return fmt.Errorf("seal %s: %w", key, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO credential (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
	`, key, sealed, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save credential: %w", err)
	}
	return nil
}

// Delete removes a credential by key. Deleting an absent key is not an error.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM credential WHERE key = ?`, key)
	return err
}

// Clear removes every persisted credential. Idempotent.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM credential`)
	return err
}
