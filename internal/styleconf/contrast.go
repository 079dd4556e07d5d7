package styleconf

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultMinContrast is the WCAG AA ratio for normal text.
const DefaultMinContrast = 4.5

// ParseColor parses #rgb, #rrggbb and #rrggbbaa values. The alpha channel
// is ignored. ok is false for anything else, including CSS color functions.
func ParseColor(value string) (colorful.Color, bool) {
	value = strings.TrimSpace(value)
	if len(value) == 9 && strings.HasPrefix(value, "#") {
		if !isHex(value[7:]) {
			return colorful.Color{}, false
		}
		value = value[:7]
	}
	if len(value) != 4 && len(value) != 7 {
		return colorful.Color{}, false
	}
	if !strings.HasPrefix(value, "#") || !isHex(value[1:]) {
		return colorful.Color{}, false
	}
	c, err := colorful.Hex(value)
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}

// ContrastRatio returns the WCAG contrast ratio between two colors, from 1 to 21.
func ContrastRatio(a, b colorful.Color) float64 {
	la, lb := relativeLuminance(a), relativeLuminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

func relativeLuminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

func isHex(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return s != ""
}

// InferColorScheme reports "dark" or "light" from a palette's base-100 color,
// or "" when base-100 is not a hex color.
func InferColorScheme(p ColorPalette) string {
	value, _ := p.Get("base-100")
	base, ok := ParseColor(value)
	if !ok {
		return ""
	}
	white := colorful.Color{R: 1, G: 1, B: 1}
	black := colorful.Color{}
	if ContrastRatio(base, white) > ContrastRatio(base, black) {
		return "dark"
	}
	return "light"
}
