// Package log provides the leveled logging interface used across travelbot.
//
// The agent and the knowledge-base components take a Logger as an explicit
// dependency; a package-level default is available for callers that do not
// care. A golog-backed adapter is provided for applications already using
// kataras/golog.
package log
