// Package loader provides document loaders for knowledge-base ingestion.
package loader

import (
	"context"
	"fmt"
	"maps"
	"os"

	"github.com/vietravel-ai/travelbot/rag"
)

// TextLoader loads one document from a plain-text file
type TextLoader struct {
	filePath string
	metadata map[string]any
}

// Option configures a loader
type Option func(metadata map[string]any)

// WithMetadata attaches additional metadata to loaded documents
func WithMetadata(metadata map[string]any) Option {
	return func(m map[string]any) {
		maps.Copy(m, metadata)
	}
}

var _ rag.DocumentLoader = (*TextLoader)(nil)

// NewTextLoader creates a new TextLoader for the given file
func NewTextLoader(filePath string, opts ...Option) *TextLoader {
	l := &TextLoader{
		filePath: filePath,
		metadata: map[string]any{
			"source": filePath,
			"type":   "text",
		},
	}
	for _, opt := range opts {
		opt(l.metadata)
	}
	return l
}

// Load reads the file into a single document
func (l *TextLoader) Load(ctx context.Context) ([]rag.Document, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", l.filePath, err)
	}

	metadata := make(map[string]any, len(l.metadata))
	maps.Copy(metadata, l.metadata)

	return []rag.Document{{
		Content:  string(data),
		Metadata: metadata,
	}}, nil
}
