package styleconf

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLoader(t *testing.T, opts ...Option) *Loader {
	t.Helper()
	reg, err := LoadBuiltinRegistry()
	require.NoError(t, err)
	return NewLoader(reg, opts...)
}

func validDocument() *Document {
	return &Document{
		Content: GlobSet{"./src/**/*.{rs,html}", "./index.html"},
		Plugins: []PluginRef{"daisyui"},
		Theme: ThemeSection{FontFamily: FontRoleMap{
			{Name: "sans", Families: []string{"Open Sans", "Noto Color Emoji"}},
		}},
		DaisyUI: DaisyUISection{Themes: ThemeList{
			BuiltinThemeEntry("nord"),
			InlineThemeEntry("mono", ColorPalette{
				{Role: "primary", Value: "#000000"},
				{Role: "primary-content", Value: "#ffffff"},
				{Role: "secondary", Value: "#000000"},
				{Role: "accent", Value: "#000000"},
				{Role: "neutral", Value: "#000000"},
				{Role: "base-100", Value: "#ffffff"},
				{Role: "base-content", Value: "#000000"},
			}),
		}},
	}
}

func TestLoadDefaultDocument(t *testing.T) {
	loader := newTestLoader(t)

	result, err := loader.LoadBytes(DefaultDocument())
	require.NoError(t, err)
	doc := result.Document

	assert.Equal(t, ModeJIT, doc.Mode)
	assert.Len(t, doc.Content, 5)
	assert.Equal(t, []PluginRef{"daisyui", "@tailwindcss/typography", "tailwindcss-animate"}, doc.Plugins)

	sans, ok := doc.Theme.FontFamily.Get("sans")
	require.True(t, ok)
	assert.Equal(t, []string{"Open Sans", "Noto Color Emoji"}, sans)
	assert.Equal(t, []string{"sans", "display", "mono"}, doc.Theme.FontFamily.Roles())

	require.Len(t, doc.DaisyUI.Themes, 33)
	rusty, ok := doc.LookupTheme("rustytube")
	require.True(t, ok)
	assert.Equal(t, ThemeInline, rusty.Kind)
	primary, ok := rusty.Palette.Get("primary")
	require.True(t, ok)
	assert.Equal(t, "#0072ff", primary)
	content, _ := rusty.Palette.Get("primary-content")
	assert.Equal(t, "#F4F5F6", content)

	assert.Contains(t, result.Report.Warnings, Warning{
		Theme:   "rustytube",
		Role:    "primary-content",
		Message: "contrast 3.97:1 against primary is below 4.50:1",
	})
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFileName)
	require.NoError(t, os.WriteFile(path, DefaultDocument(), 0o644))

	result, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, result.Document.Source)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.False(t, IsConfigError(err))
}

func TestLoadEmptyContent(t *testing.T) {
	loader := newTestLoader(t)

	_, err := loader.LoadBytes([]byte("content: []\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyContentSet)
	assert.True(t, IsConfigError(err))
}

func TestRoundTrip(t *testing.T) {
	loader := newTestLoader(t)
	original, err := loader.LoadBytes(DefaultDocument())
	require.NoError(t, err)

	for _, format := range []Format{FormatYAML, FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			data, err := Marshal(original.Document, format)
			require.NoError(t, err)

			reloaded, err := loader.LoadFormat(data, format)
			require.NoError(t, err)

			if diff := cmp.Diff(original.Document, reloaded.Document, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}

			again, err := Marshal(reloaded.Document, format)
			require.NoError(t, err)
			assert.Equal(t, string(data), string(again))
		})
	}
}

func TestParseJSON(t *testing.T) {
	data := []byte(`{
  "content": ["./index.html"],
  "theme": {"fontFamily": {"mono": ["Fira Mono", "Noto Color Emoji"]}},
  "daisyui": {"themes": ["nord", {"rustytube": {"primary": "#0072ff", "base-100": "#191a1f"}}]}
}`)

	doc, err := Parse(data)
	require.NoError(t, err)

	require.Len(t, doc.DaisyUI.Themes, 2)
	assert.Equal(t, BuiltinThemeEntry("nord"), doc.DaisyUI.Themes[0])
	assert.Equal(t, ColorPalette{
		{Role: "primary", Value: "#0072ff"},
		{Role: "base-100", Value: "#191a1f"},
	}, doc.DaisyUI.Themes[1].Palette)

	mono, ok := doc.Theme.FontFamily.Get("mono")
	require.True(t, ok)
	assert.Equal(t, []string{"Fira Mono", "Noto Color Emoji"}, mono)
}

func TestDecodeJSONEscapes(t *testing.T) {
	data := []byte(`{
	"content": ["src\/**\/*.rs"],
	"daisyui": {"themes": [{"brand": {"primary": "\u00230072ff", "base-100": "#191a1f"}}]}
}`)

	doc, err := Decode(data, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, GlobSet{"src/**/*.rs"}, doc.Content)

	brand, ok := doc.LookupTheme("brand")
	require.True(t, ok)
	assert.Equal(t, ColorPalette{
		{Role: "primary", Value: "#0072ff"},
		{Role: "base-100", Value: "#191a1f"},
	}, brand.Palette)
}

func TestDecodeJSONRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "trailing value", data: `{"content": ["a"]} {}`},
		{name: "unterminated", data: `{"content": ["a"]`},
		{name: "yaml syntax", data: "content:\n  - a\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data), FormatJSON)
			assert.Error(t, err)
		})
	}
}

func TestDecodeEmptyJSON(t *testing.T) {
	doc, err := Decode([]byte("  \n"), FormatJSON)
	require.NoError(t, err)
	assert.Empty(t, doc.Content)
}

func TestLoadJSONFileByExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tailcfg.json")
	data := `{"content": ["src\/main.rs"], "theme": {"fontFamily": {"sans": ["Open Sans", "Noto Color Emoji"]}}, "daisyui": {"themes": ["nord"], "logs": false}}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	result, err := newTestLoader(t).Load(path)
	require.NoError(t, err)
	assert.Equal(t, GlobSet{"src/main.rs"}, result.Document.Content)
	require.NotNil(t, result.Document.DaisyUI.Logs)
	assert.False(t, *result.Document.DaisyUI.Logs)

	sans, _ := result.Document.Theme.FontFamily.Get("sans")
	assert.Equal(t, []string{"Open Sans", "Noto Color Emoji"}, sans)
}

func TestParsePaletteMergeKeys(t *testing.T) {
	data := []byte(`content: ["a.html"]
daisyui:
  themes:
    - base: &base
        primary: "#111111"
        secondary: "#222222"
        accent: "#333333"
        neutral: "#444444"
        base-100: "#ffffff"
        base-content: "#000000"
    - brand:
        primary: "#0072ff"
        <<: *base
        accent: "#F471B5"
    - layered:
        <<: [{primary: "#aaaaaa", info: "#7cb7ff"}, *base]
`)

	doc, err := Parse(data)
	require.NoError(t, err)

	brand, ok := doc.LookupTheme("brand")
	require.True(t, ok)
	assert.Equal(t, ColorPalette{
		{Role: "primary", Value: "#0072ff"},
		{Role: "secondary", Value: "#222222"},
		{Role: "neutral", Value: "#444444"},
		{Role: "base-100", Value: "#ffffff"},
		{Role: "base-content", Value: "#000000"},
		{Role: "accent", Value: "#F471B5"},
	}, brand.Palette)

	layered, ok := doc.LookupTheme("layered")
	require.True(t, ok)
	primary, _ := layered.Palette.Get("primary")
	assert.Equal(t, "#aaaaaa", primary)
	info, _ := layered.Palette.Get("info")
	assert.Equal(t, "#7cb7ff", info)
	assert.Len(t, layered.Palette, 7)

	_, err = newTestLoader(t).Validate(doc)
	require.NoError(t, err)

	out, err := Marshal(doc, FormatYAML)
	require.NoError(t, err)
	reloaded, err := Parse(out)
	require.NoError(t, err)
	if diff := cmp.Diff(doc.DaisyUI.Themes, reloaded.DaisyUI.Themes, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("merged palettes changed after round trip (-want +got):\n%s", diff)
	}
}

func TestParsePaletteMergeRejectsScalar(t *testing.T) {
	_, err := Parse([]byte("content: [a]\ndaisyui:\n  themes:\n    - brand:\n        <<: \"#000000\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "merge value")
}

func TestParseMultiThemeMapping(t *testing.T) {
	data := []byte(`content: ["a.html"]
daisyui:
  themes:
    - first:
        primary: "#111111"
      second:
        primary: "#222222"
    - dark
`)

	doc, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "dark"}, doc.ThemeNames())
}

func TestParseRejectsBadThemeEntry(t *testing.T) {
	_, err := Parse([]byte("content: [a]\ndaisyui:\n  themes:\n    - [nested]\n"))
	require.Error(t, err)
	assert.False(t, IsConfigError(err))
}

func TestParseFontFamilyString(t *testing.T) {
	doc, err := Parse([]byte("content: [a]\ntheme:\n  fontFamily:\n    serif: Georgia\n"))
	require.NoError(t, err)

	serif, ok := doc.Theme.FontFamily.Get("serif")
	require.True(t, ok)
	assert.Equal(t, []string{"Georgia"}, serif)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Document)
		wantErr error
	}{
		{
			name:   "valid document",
			mutate: func(*Document) {},
		},
		{
			name:    "empty content",
			mutate:  func(d *Document) { d.Content = GlobSet{} },
			wantErr: ErrEmptyContentSet,
		},
		{
			name:    "unclosed brace in glob",
			mutate:  func(d *Document) { d.Content = GlobSet{"./src/**/*.{rs,html"} },
			wantErr: ErrMalformedPattern,
		},
		{
			name:    "blank glob",
			mutate:  func(d *Document) { d.Content = GlobSet{"  "} },
			wantErr: ErrMalformedPattern,
		},
		{
			name:    "unknown plugin",
			mutate:  func(d *Document) { d.Plugins = append(d.Plugins, "tailwindcss-nope") },
			wantErr: ErrUnresolvedPlugin,
		},
		{
			name: "palette missing base-100",
			mutate: func(d *Document) {
				d.DaisyUI.Themes = ThemeList{InlineThemeEntry("broken", ColorPalette{
					{Role: "primary", Value: "#000000"},
					{Role: "secondary", Value: "#000000"},
					{Role: "accent", Value: "#000000"},
					{Role: "neutral", Value: "#000000"},
					{Role: "base-content", Value: "#000000"},
				})}
			},
			wantErr: ErrIncompletePalette,
		},
		{
			name: "palette with empty required value",
			mutate: func(d *Document) {
				d.DaisyUI.Themes[1].Palette.Set("accent", "")
			},
			wantErr: ErrIncompletePalette,
		},
		{
			name:    "unknown builtin theme",
			mutate:  func(d *Document) { d.DaisyUI.Themes = append(d.DaisyUI.Themes, BuiltinThemeEntry("not-a-real-theme")) },
			wantErr: ErrUnknownBuiltinTheme,
		},
		{
			name: "empty font family list",
			mutate: func(d *Document) {
				d.Theme.FontFamily = append(d.Theme.FontFamily, FontRole{Name: "display"})
			},
			wantErr: ErrEmptyFontFamily,
		},
		{
			name:    "unknown mode",
			mutate:  func(d *Document) { d.Mode = "aot" },
			wantErr: ErrUnknownMode,
		},
		{
			name:    "dark theme not listed",
			mutate:  func(d *Document) { d.DaisyUI.DarkTheme = "dracula" },
			wantErr: ErrUnknownDarkTheme,
		},
		{
			name:   "dark theme listed",
			mutate: func(d *Document) { d.DaisyUI.DarkTheme = "mono" },
		},
		{
			name:    "bad hex color",
			mutate:  func(d *Document) { d.DaisyUI.Themes[1].Palette.Set("primary", "#00zz00") },
			wantErr: ErrInvalidColor,
		},
		{
			name:   "css color function is accepted verbatim",
			mutate: func(d *Document) { d.DaisyUI.Themes[1].Palette.Set("primary", "oklch(65% 0.2 250)") },
		},
	}

	loader := newTestLoader(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validDocument()
			tt.mutate(doc)

			_, err := loader.Validate(doc)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			assert.True(t, IsConfigError(err))
		})
	}
}

func TestValidateNordLoads(t *testing.T) {
	loader := newTestLoader(t)
	doc := validDocument()
	doc.DaisyUI.Themes = ThemeList{BuiltinThemeEntry("nord")}

	report, err := loader.Validate(doc)
	require.NoError(t, err)
	assert.Empty(t, report.Warnings)
}

func TestValidateWarnings(t *testing.T) {
	doc := validDocument()
	doc.DaisyUI.Themes[1].Palette.Set("neutral-content", "#111111")
	doc.DaisyUI.Themes[1].Palette.Set("sparkle", "#ff00ff")
	doc.DaisyUI.Themes[1].Palette.Set("--rounded-box", "1rem")

	report, err := newTestLoader(t).Validate(doc)
	require.NoError(t, err)
	require.Len(t, report.Warnings, 2)
	assert.Equal(t, "sparkle", report.Warnings[0].Role)
	assert.Equal(t, "mono.sparkle: unknown color role", report.Warnings[0].String())
	assert.Equal(t, "neutral-content", report.Warnings[1].Role)

	report, err = newTestLoader(t, WithMinContrast(0)).Validate(doc)
	require.NoError(t, err)
	assert.Len(t, report.Warnings, 1)
}

func TestConfigErrorMessage(t *testing.T) {
	doc := validDocument()
	doc.DaisyUI.Themes = ThemeList{BuiltinThemeEntry("nord"), InlineThemeEntry("half", ColorPalette{
		{Role: "primary", Value: "#0072ff"},
	})}

	_, err := newTestLoader(t).Validate(doc)
	require.Error(t, err)
	assert.Equal(t, `daisyui.themes[1] (half): inline palette is missing a required color role "secondary"`, err.Error())

	doc = validDocument()
	doc.DaisyUI.Themes = ThemeList{BuiltinThemeEntry("not-a-real-theme")}
	_, err = newTestLoader(t).Validate(doc)
	require.Error(t, err)
	assert.Equal(t, `daisyui.themes[0]: unknown built-in theme: "not-a-real-theme"`, err.Error())
}

func TestMarshalFormats(t *testing.T) {
	doc := validDocument()

	data, err := Marshal(doc, FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, string(data), `primary: '#000000'`)
	assert.Contains(t, string(data), `sans: [Open Sans, Noto Color Emoji]`)

	data, err = Marshal(doc, FormatJSON)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"nord",`)
	assert.Contains(t, string(data), `"primary": "#000000"`)

	_, err = Marshal(doc, Format("toml"))
	require.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("xml")
	require.Error(t, err)

	assert.Equal(t, FormatJSON, FormatForPath("tailwind.json"))
	assert.Equal(t, FormatYAML, FormatForPath("tailcfg.yml"))
}
