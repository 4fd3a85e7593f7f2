package utils

import (
	"net/url"
	"strconv"
	"strings"
)

// PositiveInt parses s as a positive integer, falling back to def for
// anything absent, malformed or non-positive. Malformed filter values are
// dropped, never fatal.
func PositiveInt(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}

	return n
}

// List splits a comma-separated, possibly URL-encoded parameter into its
// non-empty elements.
func List(s string) []string {
	if s == "" {
		return nil
	}

	if decoded, err := url.QueryUnescape(s); err == nil {
		s = decoded
	}

	parts := strings.Split(s, ",")

	out := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}

	if len(out) == 0 {
		return nil
	}

	return out
}

// Term URL-decodes a single search/filter term, returning the raw value
// when decoding fails.
func Term(s string) string {
	decoded, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}

	return decoded
}
