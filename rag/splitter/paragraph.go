// Package splitter chunks documents before they enter the vector store.
package splitter

import (
	"maps"
	"strings"

	"github.com/vietravel-ai/travelbot/rag"
)

// ParagraphSplitter splits text into size-bounded chunks, preferring
// paragraph boundaries
type ParagraphSplitter struct {
	ChunkSize    int
	ChunkOverlap int
	Separator    string
}

var _ rag.TextSplitter = (*ParagraphSplitter)(nil)

// NewParagraphSplitter creates a splitter with the given chunk size and overlap
func NewParagraphSplitter(chunkSize, chunkOverlap int) *ParagraphSplitter {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		chunkOverlap = 0
	}
	return &ParagraphSplitter{
		ChunkSize:    chunkSize,
		ChunkOverlap: chunkOverlap,
		Separator:    "\n\n",
	}
}

// SplitText splits text into chunks
func (s *ParagraphSplitter) SplitText(text string) []string {
	if len(text) <= s.ChunkSize {
		return []string{text}
	}

	var chunks []string
	start := 0
	for start < len(text) {
		end := start + s.ChunkSize
		if end >= len(text) {
			chunks = append(chunks, text[start:])
			break
		}

		// Prefer a paragraph boundary inside the window
		cut := end
		if idx := strings.LastIndex(text[start:end], s.Separator); idx > 0 {
			cut = start + idx + len(s.Separator)
		}

		chunks = append(chunks, text[start:cut])

		next := cut - s.ChunkOverlap
		if next <= start {
			next = cut
		}
		start = next
	}
	return chunks
}

// SplitDocuments splits documents into smaller chunks, recording the
// chunk position in metadata
func (s *ParagraphSplitter) SplitDocuments(documents []rag.Document) []rag.Document {
	var result []rag.Document
	for _, doc := range documents {
		chunks := s.SplitText(doc.Content)
		for i, chunk := range chunks {
			chunk = strings.TrimSpace(chunk)
			if chunk == "" {
				continue
			}

			metadata := make(map[string]any, len(doc.Metadata)+2)
			maps.Copy(metadata, doc.Metadata)
			metadata["chunk_index"] = i
			metadata["total_chunks"] = len(chunks)

			result = append(result, rag.Document{
				Content:   chunk,
				Metadata:  metadata,
				CreatedAt: doc.CreatedAt,
			})
		}
	}
	return result
}
