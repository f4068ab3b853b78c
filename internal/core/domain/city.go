package domain

import "strings"

// NormalizeCity maps free-text city input to the key used for grouping and
// uniqueness. "New York" and " new york " collide on purpose; the key is
// never shown to users.
func NormalizeCity(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}
