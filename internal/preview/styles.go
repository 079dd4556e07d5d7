// Package preview renders theme palettes and command output in the terminal.
package preview

import "github.com/charmbracelet/lipgloss"

// ThemeTokens defines the semantic color roles used for command output.
type ThemeTokens struct {
	Text      string
	TextMuted string
	Border    string
	Accent    string
	Success   string
	Warning   string
	Error     string
	Info      string
}

// Theme bundles output tokens with a name.
type Theme struct {
	Name   string
	Tokens ThemeTokens
}

// DefaultTheme is the baseline output palette.
var DefaultTheme = Theme{
	Name: "default",
	Tokens: ThemeTokens{
		Text:      "#E6EDF3",
		TextMuted: "#8B9AAE",
		Border:    "#223043",
		Accent:    "#5B8DEF",
		Success:   "#3FB950",
		Warning:   "#D29922",
		Error:     "#F85149",
		Info:      "#58A6FF",
	},
}

// HighContrastTheme favors visibility on low-contrast terminals.
var HighContrastTheme = Theme{
	Name: "high-contrast",
	Tokens: ThemeTokens{
		Text:      "#FFFFFF",
		TextMuted: "#C0C0C0",
		Border:    "#FFFFFF",
		Accent:    "#00A2FF",
		Success:   "#00FF5A",
		Warning:   "#FFB000",
		Error:     "#FF4040",
		Info:      "#66CCFF",
	},
}

// Themes lists output palettes by name.
var Themes = map[string]Theme{
	"default":       DefaultTheme,
	"high-contrast": HighContrastTheme,
}

// ThemeByName returns the named output palette, falling back to DefaultTheme.
func ThemeByName(name string) Theme {
	if theme, ok := Themes[name]; ok {
		return theme
	}
	return DefaultTheme
}

// Styles contains lipgloss styles derived from theme tokens.
type Styles struct {
	Theme    Theme
	renderer *lipgloss.Renderer
	Title    lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Info     lipgloss.Style
}

// BuildStyles converts theme tokens into styles bound to r, so color output
// follows the capabilities of r's writer.
func BuildStyles(r *lipgloss.Renderer, theme Theme) Styles {
	tokens := theme.Tokens

	return Styles{
		Theme:    theme,
		renderer: r,
		Title:    r.NewStyle().Foreground(lipgloss.Color(tokens.Text)).Bold(true),
		Text:     r.NewStyle().Foreground(lipgloss.Color(tokens.Text)),
		Muted:    r.NewStyle().Foreground(lipgloss.Color(tokens.TextMuted)),
		Accent:   r.NewStyle().Foreground(lipgloss.Color(tokens.Accent)),
		Success:  r.NewStyle().Foreground(lipgloss.Color(tokens.Success)),
		Warning:  r.NewStyle().Foreground(lipgloss.Color(tokens.Warning)),
		Error:    r.NewStyle().Foreground(lipgloss.Color(tokens.Error)),
		Info:     r.NewStyle().Foreground(lipgloss.Color(tokens.Info)),
	}
}
