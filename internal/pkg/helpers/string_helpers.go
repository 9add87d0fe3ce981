package helpers

import "strings"

// NilIfBlank returns nil for a nil or whitespace-only string pointer and s otherwise.
// Optional text columns store NULL rather than empty strings.
func NilIfBlank(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
