// Package redact scrubs sensitive material from strings before they
// are logged. Error messages routinely embed connection strings,
// credentials, or tokens picked up from drivers and config; everything
// that logs an error string routes it through here first.
package redact

import "regexp"

// Placeholder substituted for matched sensitive content.
const Placeholder = "[REDACTED]"

var patterns = []*regexp.Regexp{
	// Connection strings with embedded credentials
	regexp.MustCompile(`(?i)(postgres|postgresql|mysql|mongodb)://[^@\s]+@`),

	// password=..., secret: ..., api_key=... style fragments
	regexp.MustCompile(`(?i)(password|passwd|pwd|secret|api[_-]?key|token)(['"\s:=]+)[^'"&\s]{3,}`),

	// JWT tokens (three base64url segments, first two starting with eyJ)
	regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`),

	// Email addresses
	regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
}

// String returns the input with all recognized sensitive fragments
// replaced by the placeholder.
func String(s string) string {
	for _, p := range patterns {
		s = p.ReplaceAllString(s, Placeholder)
	}
	return s
}

// Error redacts an error's message. Returns an empty string for nil.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
