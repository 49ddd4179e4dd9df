package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/vietravel-ai/travelbot/rag"
)

// SQLiteVectorStore persists the knowledge index in a SQLite database.
// Embeddings are stored as JSON arrays and ranked in memory; the corpus
// for a travel knowledge base is small enough for a full scan.
type SQLiteVectorStore struct {
	db        *sql.DB
	tableName string
	embedder  rag.Embedder
	mu        sync.RWMutex
}

// SQLiteOptions configures the SQLite vector store
type SQLiteOptions struct {
	Path      string
	TableName string // Default "passages"
}

var _ rag.VectorStore = (*SQLiteVectorStore)(nil)

// NewSQLiteVectorStore opens (creating if needed) a SQLite-backed vector store
func NewSQLiteVectorStore(opts SQLiteOptions, embedder rag.Embedder) (*SQLiteVectorStore, error) {
	db, err := sql.Open("sqlite3", opts.Path)
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}

	tableName := opts.TableName
	if tableName == "" {
		tableName = "passages"
	}

	store := &SQLiteVectorStore{
		db:        db,
		tableName: tableName,
		embedder:  embedder,
	}

	if err := store.initSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteVectorStore) initSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			content TEXT NOT NULL,
			metadata TEXT,
			embedding TEXT NOT NULL,
			created_at DATETIME NOT NULL
		)
	`, s.tableName)

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("unable to create table: %w", err)
	}
	return nil
}

// Add inserts documents, embedding any that carry no vector
func (s *SQLiteVectorStore) Add(ctx context.Context, documents []rag.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("unable to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := fmt.Sprintf(
		"INSERT OR REPLACE INTO %s (id, content, metadata, embedding, created_at) VALUES (?, ?, ?, ?, ?)",
		s.tableName,
	)

	for _, doc := range documents {
		if len(doc.Embedding) == 0 {
			if s.embedder == nil {
				return fmt.Errorf("no embedder configured and document has no embedding")
			}
			embedding, err := s.embedder.EmbedQuery(ctx, doc.Content)
			if err != nil {
				return fmt.Errorf("failed to embed document: %w", err)
			}
			doc.Embedding = embedding
		}
		if doc.ID == "" {
			doc.ID = uuid.NewString()
		}
		if doc.CreatedAt.IsZero() {
			doc.CreatedAt = time.Now()
		}

		metadataJSON, err := json.Marshal(doc.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal metadata: %w", err)
		}
		embeddingJSON, err := json.Marshal(doc.Embedding)
		if err != nil {
			return fmt.Errorf("failed to marshal embedding: %w", err)
		}

		if _, err := tx.ExecContext(ctx, query, doc.ID, doc.Content, string(metadataJSON), string(embeddingJSON), doc.CreatedAt); err != nil {
			return fmt.Errorf("failed to insert document %s: %w", doc.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Search scans all stored embeddings and returns up to k documents
// ranked nearest-first
func (s *SQLiteVectorStore) Search(ctx context.Context, queryEmbedding []float32, k int) ([]rag.SearchResult, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive, got %d", k)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	query := fmt.Sprintf("SELECT id, content, metadata, embedding, created_at FROM %s", s.tableName)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var results []rag.SearchResult
	for rows.Next() {
		var doc rag.Document
		var metadataJSON, embeddingJSON string
		if err := rows.Scan(&doc.ID, &doc.Content, &metadataJSON, &embeddingJSON, &doc.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		if metadataJSON != "" {
			if err := json.Unmarshal([]byte(metadataJSON), &doc.Metadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal metadata for %s: %w", doc.ID, err)
			}
		}
		if err := json.Unmarshal([]byte(embeddingJSON), &doc.Embedding); err != nil {
			return nil, fmt.Errorf("failed to unmarshal embedding for %s: %w", doc.ID, err)
		}

		results = append(results, rag.SearchResult{
			Document: doc,
			Score:    rag.CosineSimilarity(queryEmbedding, doc.Embedding),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k > len(results) {
		k = len(results)
	}
	if results == nil {
		return []rag.SearchResult{}, nil
	}
	return results[:k], nil
}

// Delete removes documents by ID
func (s *SQLiteVectorStore) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	placeholders := strings.TrimRight(strings.Repeat("?,", len(ids)), ",")
	query := fmt.Sprintf("DELETE FROM %s WHERE id IN (%s)", s.tableName, placeholders)

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete documents: %w", err)
	}
	return nil
}

// Count reports the number of stored documents
func (s *SQLiteVectorStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", s.tableName)
	if err := s.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return count, nil
}

// Close closes the underlying database
func (s *SQLiteVectorStore) Close() error {
	return s.db.Close()
}
