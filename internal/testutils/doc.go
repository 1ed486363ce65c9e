// Package testutils provides shared helpers for unit tests: a
// memory-backed slog handler for asserting on log output and
// constructors for valid domain fixtures.
package testutils
