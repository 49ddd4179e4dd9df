package rag

import (
	"context"
	"fmt"
)

// DefaultTopK is the number of passages retrieved per query
const DefaultTopK = 3

// VectorRetriever retrieves passages by embedding the query and running
// a similarity search against the vector store
type VectorRetriever struct {
	store    VectorStore
	embedder Embedder
	topK     int
}

var _ Retriever = (*VectorRetriever)(nil)

// NewVectorRetriever creates a retriever over the given store and embedder
func NewVectorRetriever(store VectorStore, embedder Embedder, topK int) *VectorRetriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &VectorRetriever{
		store:    store,
		embedder: embedder,
		topK:     topK,
	}
}

// Retrieve returns the configured top-K most similar passages
func (r *VectorRetriever) Retrieve(ctx context.Context, query string) ([]Document, error) {
	return r.RetrieveWithK(ctx, query, r.topK)
}

// RetrieveWithK returns up to k most similar passages, nearest-first
func (r *VectorRetriever) RetrieveWithK(ctx context.Context, query string, k int) ([]Document, error) {
	queryEmbedding, err := r.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	results, err := r.store.Search(ctx, queryEmbedding, k)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	docs := make([]Document, len(results))
	for i, result := range results {
		docs[i] = result.Document
	}
	return docs, nil
}
