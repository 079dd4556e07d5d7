package styleconf

import "strings"

// RequiredRoles must be present and non-empty in every inline palette.
var RequiredRoles = []string{
	"primary",
	"secondary",
	"accent",
	"neutral",
	"base-100",
	"base-content",
}

// knownRoles are the semantic color slots the component plugin reads.
var knownRoles = map[string]bool{
	"primary":           true,
	"primary-content":   true,
	"secondary":         true,
	"secondary-content": true,
	"accent":            true,
	"accent-content":    true,
	"neutral":           true,
	"neutral-content":   true,
	"base-100":          true,
	"base-200":          true,
	"base-300":          true,
	"base-content":      true,
	"info":              true,
	"info-content":      true,
	"success":           true,
	"success-content":   true,
	"warning":           true,
	"warning-content":   true,
	"error":             true,
	"error-content":     true,
}

// IsKnownRole reports whether role is a semantic color slot or a CSS
// custom property override.
func IsKnownRole(role string) bool {
	return knownRoles[role] || strings.HasPrefix(role, "--")
}

// contentBase returns the role a "-content" role is drawn on.
func contentBase(role string) (string, bool) {
	if role == "base-content" {
		return "base-100", true
	}
	base, ok := strings.CutSuffix(role, "-content")
	if !ok || base == "" {
		return "", false
	}
	return base, true
}
