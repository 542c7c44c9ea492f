// Package redact provides utilities for redacting sensitive information from
// strings before they are logged. Store errors routinely carry connection
// strings, SQL fragments, and host names that must never reach a log sink in
// clear text, let alone an HTTP response.
package redact

import "regexp"

// Placeholder substituted for every matched fragment.
const Placeholder = "[REDACTED]"

// Precompiled patterns, applied in order.
var patterns = []*regexp.Regexp{
	// Database connection strings with embedded credentials.
	regexp.MustCompile(`(?i)(postgres|postgresql|mysql)://[^@\s]+@[^\s]+`),

	// Passwords and keys in key=value form (DSN style).
	regexp.MustCompile(`(?i)(password|passwd|sslkey|sslcert)=[^\s&]+`),

	// SQL statements leaked into error text.
	regexp.MustCompile(`(?i)(SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP)\s[\s\S]*?(?:FROM|INTO|SET|TABLE)\s+\S+`),

	// Host:port pairs.
	regexp.MustCompile(`\b(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}:\d{1,5}\b`),
}

// String redacts sensitive fragments from s.
func String(s string) string {
	for _, p := range patterns {
		s = p.ReplaceAllString(s, Placeholder)
	}
	return s
}

// Error redacts the message of err. Returns an empty string for a nil error.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
