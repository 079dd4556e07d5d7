package preview

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rustytube/tailcfg/internal/styleconf"
)

const swatchText = " Aa "

// Swatch is one palette role paired with the color drawn on top of it.
type Swatch struct {
	Role    string
	Value   string
	Content string // empty when the palette has no matching content role
}

// Swatches pairs each non-content role with its content role. base-100,
// base-200 and base-300 share base-content.
func Swatches(p styleconf.ColorPalette) []Swatch {
	swatches := make([]Swatch, 0, len(p))
	for _, c := range p {
		if strings.HasSuffix(c.Role, "-content") || strings.HasPrefix(c.Role, "--") {
			continue
		}
		contentRole := c.Role + "-content"
		if strings.HasPrefix(c.Role, "base-") {
			contentRole = "base-content"
		}
		content, _ := p.Get(contentRole)
		swatches = append(swatches, Swatch{Role: c.Role, Value: c.Value, Content: content})
	}
	return swatches
}

// Render draws the swatch sample. Values that are not hex colors render as
// blank padding.
func (s Styles) Render(sw Swatch) string {
	bg, ok := styleconf.ParseColor(sw.Value)
	if !ok {
		return strings.Repeat(" ", len(swatchText)+2)
	}
	style := s.renderer.NewStyle().Background(lipgloss.Color(bg.Hex())).Padding(0, 1)
	if fg, ok := styleconf.ParseColor(sw.Content); ok {
		style = style.Foreground(lipgloss.Color(fg.Hex()))
	}
	return style.Render(swatchText)
}

// WritePalette writes one line per swatch: sample, role, value and content value.
func (s Styles) WritePalette(w io.Writer, name string, p styleconf.ColorPalette) error {
	if _, err := fmt.Fprintln(w, s.Title.Render(name)); err != nil {
		return err
	}
	for _, sw := range Swatches(p) {
		line := fmt.Sprintf("  %s %-12s %s", s.Render(sw), sw.Role, sw.Value)
		if sw.Content != "" {
			line += s.Muted.Render(" on " + sw.Content)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
