package utils

import "strings"

// Slugify derives a URL slug from a display name: lower-case with whitespace
// runs collapsed to single hyphens ("Smart Phones" -> "smart-phones").
func Slugify(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}
