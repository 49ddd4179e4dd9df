// Package travelbot is a retrieval-augmented travel assistant for
// Vietnam. See the agent package for the conversational pipeline, rag
// for the knowledge base, and history for conversation persistence.
package travelbot
