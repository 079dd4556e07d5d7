// Package styleconf loads, validates and re-serializes the style configuration
// document read by the CSS utility build pipeline: content globs, plugins,
// font-family tokens and the theme list.
package styleconf

// ModeJIT is the only compilation mode the pipeline accepts.
const ModeJIT = "jit"

// Document is the top-level style configuration.
type Document struct {
	Mode    string         `yaml:"mode,omitempty" json:"mode,omitempty"`
	Content GlobSet        `yaml:"content" json:"content"`
	Plugins []PluginRef    `yaml:"plugins,omitempty" json:"plugins,omitempty"`
	Theme   ThemeSection   `yaml:"theme" json:"theme"`
	DaisyUI DaisyUISection `yaml:"daisyui" json:"daisyui"`
	Source  string         `yaml:"-" json:"-"` // file path, empty when parsed from bytes
}

// GlobSet is the ordered list of source globs scanned for utility classes.
type GlobSet []string

// PluginRef identifies a plugin by its package name.
type PluginRef string

// ThemeSection holds design tokens under the document's theme key.
type ThemeSection struct {
	FontFamily FontRoleMap `yaml:"fontFamily,omitempty" json:"fontFamily,omitempty"`
}

// DaisyUISection configures the component plugin's theme palettes.
type DaisyUISection struct {
	Themes    ThemeList `yaml:"themes,omitempty" json:"themes,omitempty"`
	DarkTheme string    `yaml:"darkTheme,omitempty" json:"darkTheme,omitempty"`
	Prefix    string    `yaml:"prefix,omitempty" json:"prefix,omitempty"`
	Logs      *bool     `yaml:"logs,omitempty" json:"logs,omitempty"`
}

// FontRole is one font token: a role name and its fallback chain.
type FontRole struct {
	Name     string
	Families []string
}

// FontRoleMap maps font roles to family lists, keeping document order.
type FontRoleMap []FontRole

// Get returns the fallback chain for role.
func (m FontRoleMap) Get(role string) ([]string, bool) {
	for _, r := range m {
		if r.Name == role {
			return r.Families, true
		}
	}
	return nil, false
}

// Roles returns the role names in document order.
func (m FontRoleMap) Roles() []string {
	names := make([]string, 0, len(m))
	for _, r := range m {
		names = append(names, r.Name)
	}
	return names
}

func (m *FontRoleMap) set(role string, families []string) {
	for i := range *m {
		if (*m)[i].Name == role {
			(*m)[i].Families = families
			return
		}
	}
	*m = append(*m, FontRole{Name: role, Families: families})
}

// ThemeKind distinguishes built-in theme references from inline palettes.
type ThemeKind string

const (
	ThemeBuiltin ThemeKind = "builtin"
	ThemeInline  ThemeKind = "inline"
)

// ThemeEntry is one element of the theme list.
type ThemeEntry struct {
	Kind    ThemeKind
	Name    string
	Palette ColorPalette // nil for built-in references
}

// BuiltinThemeEntry returns an entry referencing a shipped palette by name.
func BuiltinThemeEntry(name string) ThemeEntry {
	return ThemeEntry{Kind: ThemeBuiltin, Name: name}
}

// InlineThemeEntry returns an entry defining its own palette.
func InlineThemeEntry(name string, palette ColorPalette) ThemeEntry {
	if palette == nil {
		palette = ColorPalette{}
	}
	return ThemeEntry{Kind: ThemeInline, Name: name, Palette: palette}
}

// ThemeList is the ordered theme declaration list.
type ThemeList []ThemeEntry

// ColorRole binds a semantic role to a color value.
type ColorRole struct {
	Role  string
	Value string
}

// ColorPalette maps semantic roles to color values in document order.
// Values are kept exactly as written.
type ColorPalette []ColorRole

// Get returns the value assigned to role.
func (p ColorPalette) Get(role string) (string, bool) {
	for _, c := range p {
		if c.Role == role {
			return c.Value, true
		}
	}
	return "", false
}

// Set assigns value to role, replacing an earlier assignment in place.
func (p *ColorPalette) Set(role, value string) {
	for i := range *p {
		if (*p)[i].Role == role {
			(*p)[i].Value = value
			return
		}
	}
	*p = append(*p, ColorRole{Role: role, Value: value})
}

// ResolvedThemes returns the effective theme list. Duplicate names are
// allowed; the last definition wins and keeps the position of its last
// occurrence.
func (d *Document) ResolvedThemes() []ThemeEntry {
	last := make(map[string]int, len(d.DaisyUI.Themes))
	for i, entry := range d.DaisyUI.Themes {
		last[entry.Name] = i
	}

	resolved := make([]ThemeEntry, 0, len(last))
	for i, entry := range d.DaisyUI.Themes {
		if last[entry.Name] == i {
			resolved = append(resolved, entry)
		}
	}
	return resolved
}

// ThemeNames returns the names of the resolved themes in order.
func (d *Document) ThemeNames() []string {
	resolved := d.ResolvedThemes()
	names := make([]string, 0, len(resolved))
	for _, entry := range resolved {
		names = append(names, entry.Name)
	}
	return names
}

// LookupTheme finds a resolved theme by name.
func (d *Document) LookupTheme(name string) (ThemeEntry, bool) {
	for _, entry := range d.ResolvedThemes() {
		if entry.Name == name {
			return entry, true
		}
	}
	return ThemeEntry{}, false
}
