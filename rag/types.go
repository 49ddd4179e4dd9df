package rag

import (
	"context"
	"time"
)

// Document is one knowledge-base passage with its metadata and,
// once ingested, its embedding vector
type Document struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Embedding []float32      `json:"embedding,omitempty"`
	CreatedAt time.Time      `json:"created_at,omitempty"`
}

// SearchResult pairs a document with its similarity score
type SearchResult struct {
	Document Document
	Score    float64
}

// Embedder produces embedding vectors for text
type Embedder interface {
	// EmbedQuery embeds a single query string
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	// EmbedDocuments embeds a batch of document texts
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
}

// VectorStore is the similarity index underneath the retriever.
// Implementations must be safe for concurrent queries while documents
// are being added.
type VectorStore interface {
	// Add inserts documents, embedding any that carry no vector
	Add(ctx context.Context, documents []Document) error
	// Search returns up to k documents ranked nearest-first by cosine similarity
	Search(ctx context.Context, queryEmbedding []float32, k int) ([]SearchResult, error)
	// Delete removes documents by ID
	Delete(ctx context.Context, ids []string) error
	// Count reports the number of stored documents
	Count(ctx context.Context) (int, error)
	// Close releases underlying resources
	Close() error
}

// Retriever answers a text query with the most similar passages,
// ranked nearest-first
type Retriever interface {
	Retrieve(ctx context.Context, query string) ([]Document, error)
	RetrieveWithK(ctx context.Context, query string, k int) ([]Document, error)
}

// DocumentLoader loads documents from an external source
type DocumentLoader interface {
	Load(ctx context.Context) ([]Document, error)
}

// TextSplitter chunks documents for ingestion
type TextSplitter interface {
	SplitText(text string) []string
	SplitDocuments(documents []Document) []Document
}
