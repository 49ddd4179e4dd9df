// Package rag holds the knowledge-base types and the retriever consumed by
// the travel assistant pipeline.
//
// The pipeline only reads from the index; ingestion (loading, chunking,
// embedding, storing) is the document-processing collaborator's side of the
// boundary, served by the store, loader and splitter subpackages.
package rag
