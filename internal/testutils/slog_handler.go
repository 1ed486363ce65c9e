package testutils

import (
	"context"
	"log/slog"
	"sync"
)

// LogEntry represents a simplified log record for testing.
type LogEntry map[string]interface{}

// CaptureHandler is a memory-backed slog.Handler for testing.
type CaptureHandler struct {
	mu      sync.Mutex
	entries []LogEntry
}

// NewCaptureHandler creates a new memory-backed slog handler.
func NewCaptureHandler() *CaptureHandler {
	return &CaptureHandler{entries: make([]LogEntry, 0)}
}

// Enabled satisfies the slog.Handler interface.
func (h *CaptureHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

// Handle satisfies the slog.Handler interface.
func (h *CaptureHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	entry := make(LogEntry)
	entry["level"] = r.Level.String()
	entry["message"] = r.Message

	r.Attrs(func(attr slog.Attr) bool {
		entry[attr.Key] = attr.Value.Any()
		return true
	})

	h.entries = append(h.entries, entry)
	return nil
}

// WithAttrs satisfies the slog.Handler interface.
func (h *CaptureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h
}

// WithGroup satisfies the slog.Handler interface.
func (h *CaptureHandler) WithGroup(name string) slog.Handler {
	return h
}

// Entries returns all captured log entries.
func (h *CaptureHandler) Entries() []LogEntry {
	h.mu.Lock()
	defer h.mu.Unlock()

	result := make([]LogEntry, len(h.entries))
	copy(result, h.entries)
	return result
}

// HasMessage reports whether any captured entry carries the message.
func (h *CaptureHandler) HasMessage(message string) bool {
	for _, entry := range h.Entries() {
		if entry["message"] == message {
			return true
		}
	}
	return false
}
