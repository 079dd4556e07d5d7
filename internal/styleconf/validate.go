package styleconf

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Validate checks doc against every hard invariant and returns the first
// violation as a *ConfigError. Soft problems are collected in the report.
func (l *Loader) Validate(doc *Document) (*Report, error) {
	if doc == nil {
		return nil, fmt.Errorf("document is required")
	}

	if doc.Mode != "" && doc.Mode != ModeJIT {
		return nil, &ConfigError{Kind: ErrUnknownMode, Field: "mode", Index: -1, Value: doc.Mode}
	}
	if err := validateContent(doc.Content); err != nil {
		return nil, err
	}
	if err := l.validatePlugins(doc.Plugins); err != nil {
		return nil, err
	}
	if err := validateFonts(doc.Theme.FontFamily); err != nil {
		return nil, err
	}

	report := &Report{}
	if err := l.validateThemes(doc.DaisyUI.Themes, report); err != nil {
		return nil, err
	}

	if dark := doc.DaisyUI.DarkTheme; dark != "" {
		if _, ok := doc.LookupTheme(dark); !ok {
			return nil, &ConfigError{Kind: ErrUnknownDarkTheme, Field: "daisyui.darkTheme", Index: -1, Value: dark}
		}
	}

	for _, w := range report.Warnings {
		l.logger.Warn().
			Str("theme", w.Theme).
			Str("role", w.Role).
			Msg(w.Message)
	}
	return report, nil
}

func validateContent(content GlobSet) error {
	if len(content) == 0 {
		return &ConfigError{Kind: ErrEmptyContentSet, Field: "content", Index: -1}
	}
	for i, pattern := range content {
		trimmed := strings.TrimPrefix(strings.TrimSpace(pattern), "./")
		if trimmed == "" || !doublestar.ValidatePattern(trimmed) {
			return &ConfigError{Kind: ErrMalformedPattern, Field: "content", Index: i, Value: pattern}
		}
	}
	return nil
}

func (l *Loader) validatePlugins(plugins []PluginRef) error {
	for i, ref := range plugins {
		name := string(ref)
		if _, ok := l.registry.Plugin(name); !ok {
			return &ConfigError{Kind: ErrUnresolvedPlugin, Field: "plugins", Index: i, Value: name}
		}
	}
	return nil
}

func validateFonts(fonts FontRoleMap) error {
	for _, role := range fonts {
		if len(role.Families) == 0 {
			return &ConfigError{Kind: ErrEmptyFontFamily, Field: "theme.fontFamily", Index: -1, Key: role.Name}
		}
		for i, family := range role.Families {
			if strings.TrimSpace(family) == "" {
				return &ConfigError{Kind: ErrEmptyFontFamily, Field: "theme.fontFamily." + role.Name, Index: i, Key: role.Name}
			}
		}
	}
	return nil
}

func (l *Loader) validateThemes(themes ThemeList, report *Report) error {
	for i, entry := range themes {
		if entry.Kind != ThemeInline {
			if _, ok := l.registry.BuiltinTheme(entry.Name); !ok {
				return &ConfigError{Kind: ErrUnknownBuiltinTheme, Field: "daisyui.themes", Index: i, Value: entry.Name}
			}
			continue
		}

		for _, role := range RequiredRoles {
			value, _ := entry.Palette.Get(role)
			if strings.TrimSpace(value) == "" {
				return &ConfigError{Kind: ErrIncompletePalette, Field: "daisyui.themes", Index: i, Key: entry.Name, Role: role}
			}
		}

		for _, c := range entry.Palette {
			if strings.HasPrefix(strings.TrimSpace(c.Value), "#") {
				if _, ok := ParseColor(c.Value); !ok {
					return &ConfigError{Kind: ErrInvalidColor, Field: "daisyui.themes", Index: i, Key: entry.Name, Role: c.Role, Value: c.Value}
				}
			}
			if !IsKnownRole(c.Role) {
				report.warn(entry.Name, c.Role, "unknown color role")
			}
		}

		l.checkContrast(entry, report)
	}
	return nil
}

func (l *Loader) checkContrast(entry ThemeEntry, report *Report) {
	if l.minContrast <= 0 {
		return
	}
	for _, c := range entry.Palette {
		baseRole, ok := contentBase(c.Role)
		if !ok {
			continue
		}
		baseValue, ok := entry.Palette.Get(baseRole)
		if !ok {
			continue
		}
		fg, fgOK := ParseColor(c.Value)
		bg, bgOK := ParseColor(baseValue)
		if !fgOK || !bgOK {
			continue
		}
		if ratio := ContrastRatio(fg, bg); ratio < l.minContrast {
			report.warn(entry.Name, c.Role, "contrast %.2f:1 against %s is below %.2f:1", ratio, baseRole, l.minContrast)
		}
	}
}
