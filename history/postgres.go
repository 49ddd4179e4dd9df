package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBPool is the subset of pgxpool.Pool used by PostgresStore.
// It exists so tests can substitute a mock pool.
type DBPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore persists session histories in PostgreSQL
type PostgresStore struct {
	pool      DBPool
	tableName string
}

// PostgresOptions configuration for the Postgres session store
type PostgresOptions struct {
	ConnString string
	TableName  string // Default "chat_history"
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore creates a new Postgres-backed session store
func NewPostgresStore(ctx context.Context, opts PostgresOptions) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, opts.ConnString)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	tableName := opts.TableName
	if tableName == "" {
		tableName = "chat_history"
	}

	store := &PostgresStore{pool: pool, tableName: tableName}
	if err := store.InitSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return store, nil
}

// NewPostgresStoreWithPool creates a session store over an existing pool.
// Useful for testing with mocks.
func NewPostgresStoreWithPool(pool DBPool, tableName string) *PostgresStore {
	if tableName == "" {
		tableName = "chat_history"
	}
	return &PostgresStore{pool: pool, tableName: tableName}
}

// InitSchema creates the history table if it doesn't exist
func (s *PostgresStore) InitSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			session_id TEXT PRIMARY KEY,
			turns JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)
	`, s.tableName)

	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Load returns the history for a session
func (s *PostgresStore) Load(ctx context.Context, sessionID string) ([]Turn, error) {
	query := fmt.Sprintf("SELECT turns FROM %s WHERE session_id = $1", s.tableName)

	var data []byte
	err := s.pool.QueryRow(ctx, query, sessionID).Scan(&data)
	if err != nil {
		if err == pgx.ErrNoRows {
			return []Turn{}, nil
		}
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	var turns []Turn
	if err := json.Unmarshal(data, &turns); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history: %w", err)
	}
	return turns, nil
}

// Save replaces the history for a session
func (s *PostgresStore) Save(ctx context.Context, sessionID string, turns []Turn) error {
	data, err := json.Marshal(Truncate(turns))
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (session_id, turns, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_id) DO UPDATE SET turns = $2, updated_at = $3
	`, s.tableName)

	if _, err := s.pool.Exec(ctx, query, sessionID, data, time.Now()); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	return nil
}

// Delete removes a session's history
func (s *PostgresStore) Delete(ctx context.Context, sessionID string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE session_id = $1", s.tableName)
	if _, err := s.pool.Exec(ctx, query, sessionID); err != nil {
		return fmt.Errorf("failed to delete history: %w", err)
	}
	return nil
}

// Close closes the connection pool
func (s *PostgresStore) Close() {
	s.pool.Close()
}
