package rag

import (
	"context"

	"github.com/tmc/langchaingo/embeddings"
)

// LangChainEmbedder adapts a langchaingo embeddings.Embedder to the
// Embedder interface
type LangChainEmbedder struct {
	embedder embeddings.Embedder
}

var _ Embedder = (*LangChainEmbedder)(nil)

// NewLangChainEmbedder creates a new adapter for langchaingo embedders
func NewLangChainEmbedder(embedder embeddings.Embedder) *LangChainEmbedder {
	return &LangChainEmbedder{embedder: embedder}
}

// EmbedQuery embeds a single query string
func (l *LangChainEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return l.embedder.EmbedQuery(ctx, text)
}

// EmbedDocuments embeds a batch of document texts
func (l *LangChainEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	return l.embedder.EmbedDocuments(ctx, texts)
}
