package styleconf

import (
	"errors"
	"strconv"
	"strings"
)

// Validation error kinds. Every failure returned by Validate is a
// *ConfigError wrapping one of these.
var (
	ErrEmptyContentSet     = errors.New("content must list at least one glob pattern")
	ErrMalformedPattern    = errors.New("malformed glob pattern")
	ErrUnresolvedPlugin    = errors.New("plugin cannot be resolved")
	ErrIncompletePalette   = errors.New("inline palette is missing a required color role")
	ErrUnknownBuiltinTheme = errors.New("unknown built-in theme")
	ErrEmptyFontFamily     = errors.New("font role must list at least one family")
	ErrUnknownMode         = errors.New("unknown mode")
	ErrUnknownDarkTheme    = errors.New("dark theme is not in the theme list")
	ErrInvalidColor        = errors.New("invalid hex color")
)

// ConfigError describes why a document failed validation.
type ConfigError struct {
	Kind  error
	Field string // dotted document path, e.g. "daisyui.themes"
	Index int    // element index within Field, -1 when not a list
	Key   string // theme name, font role or plugin, when relevant
	Role  string // palette role, when relevant
	Value string
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString(e.Field)
	if e.Index >= 0 {
		b.WriteString("[" + strconv.Itoa(e.Index) + "]")
	}
	if e.Key != "" {
		b.WriteString(" (" + e.Key + ")")
	}
	b.WriteString(": ")
	b.WriteString(e.Kind.Error())
	if e.Role != "" {
		b.WriteString(" " + strconv.Quote(e.Role))
	}
	if e.Value != "" {
		b.WriteString(": " + strconv.Quote(e.Value))
	}
	return b.String()
}

func (e *ConfigError) Unwrap() error {
	return e.Kind
}

// IsConfigError reports whether err carries a *ConfigError.
func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}
