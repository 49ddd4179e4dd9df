// Package agent implements the conversational travel assistant pipeline.
//
// One call to Agent.ProcessTurn takes a user utterance (text or image)
// plus the bounded chat history, classifies the input, retrieves
// knowledge-base passages, generates a grounded answer, optionally
// enriches it with live weather for the place the answer talks about,
// and returns the composed response together with the updated history.
//
// The pipeline is deliberately a fixed linear sequence rather than a
// general workflow graph. Stages are individually resilient: any
// stage-local failure degrades that stage's output and the turn still
// completes.
package agent
