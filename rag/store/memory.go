// Package store provides vector store implementations for the knowledge base.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/vietravel-ai/travelbot/rag"
)

// InMemoryVectorStore keeps documents and their embeddings in memory.
// Queries may run concurrently with ingestion; the store serializes
// writes against reads.
type InMemoryVectorStore struct {
	mu        sync.RWMutex
	documents []rag.Document
	embedder  rag.Embedder
}

var _ rag.VectorStore = (*InMemoryVectorStore)(nil)

// NewInMemoryVectorStore creates an empty in-memory vector store
func NewInMemoryVectorStore(embedder rag.Embedder) *InMemoryVectorStore {
	return &InMemoryVectorStore{
		documents: make([]rag.Document, 0),
		embedder:  embedder,
	}
}

// Add inserts documents, embedding any that carry no vector
func (s *InMemoryVectorStore) Add(ctx context.Context, documents []rag.Document) error {
	prepared := make([]rag.Document, 0, len(documents))
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
		prepared = append(prepared, doc)
	}

	s.mu.Lock()
	s.documents = append(s.documents, prepared...)
	s.mu.Unlock()
	return nil
}

// Search returns up to k documents ranked nearest-first
func (s *InMemoryVectorStore) Search(ctx context.Context, queryEmbedding []float32, k int) ([]rag.SearchResult, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive, got %d", k)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.documents) == 0 {
		return []rag.SearchResult{}, nil
	}

	results := make([]rag.SearchResult, len(s.documents))
	for i, doc := range s.documents {
		results[i] = rag.SearchResult{
			Document: doc,
			Score:    rag.CosineSimilarity(queryEmbedding, doc.Embedding),
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k > len(results) {
		k = len(results)
	}
	return results[:k], nil
}

// Delete removes documents by ID
func (s *InMemoryVectorStore) Delete(ctx context.Context, ids []string) error {
	idSet := make(map[string]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.documents[:0]
	for _, doc := range s.documents {
		if !idSet[doc.ID] {
			kept = append(kept, doc)
		}
	}
	s.documents = kept
	return nil
}

// Count reports the number of stored documents
func (s *InMemoryVectorStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents), nil
}

// Close clears the store
func (s *InMemoryVectorStore) Close() error {
	s.mu.Lock()
	s.documents = nil
	s.mu.Unlock()
	return nil
}
