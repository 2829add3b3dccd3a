// Package normalize provides canonicalization helpers for values that arrive
// from forms and query strings. Handlers normalize before comparing or
// storing so lookups behave consistently.
package normalize

import "strings"

// Email trims whitespace and lowercases.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims whitespace. Display names keep their case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Role trims and lowercases a role value for comparison against the
// canonical role constants.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Status trims and lowercases a moderation status.
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Topic trims a subscription topic key. Topic keys are subject or year-group
// names and keep their case; matching against resource fields is exact.
func Topic(s string) string {
	return strings.TrimSpace(s)
}

// QueryParam trims a free-text query parameter, preserving case.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}
