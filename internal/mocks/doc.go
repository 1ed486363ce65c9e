// Package mocks provides in-memory test doubles for the store and
// service interfaces. They are deterministic and safe for concurrent
// use within a single test.
package mocks
