package styleconf

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// SourceBuiltin marks registry entries shipped with tailcfg.
const SourceBuiltin = "builtin"

// ErrPluginNameRequired is returned when a catalog lists a plugin without a name.
var ErrPluginNameRequired = errors.New("plugin name is required")

// BuiltinTheme is a named palette shipped by the component plugin.
type BuiltinTheme struct {
	Name        string `yaml:"name"`
	ColorScheme string `yaml:"color_scheme"`
}

// PluginInfo describes a plugin the pipeline can resolve.
type PluginInfo struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Source      string `yaml:"-"` // file path or "builtin"
}

// catalog is the on-disk shape of registry files.
type catalog struct {
	Themes  []BuiltinTheme `yaml:"themes"`
	Plugins []PluginInfo   `yaml:"plugins"`
}

// Registry resolves built-in theme names and plugin identifiers.
type Registry struct {
	themes      map[string]BuiltinTheme
	themeOrder  []string
	plugins     map[string]PluginInfo
	pluginOrder []string
}

func newRegistry() *Registry {
	return &Registry{
		themes:  make(map[string]BuiltinTheme),
		plugins: make(map[string]PluginInfo),
	}
}

// LoadBuiltinRegistry returns the registry bundled with tailcfg.
func LoadBuiltinRegistry() (*Registry, error) {
	reg := newRegistry()
	if err := reg.addBuiltins(); err != nil {
		return nil, err
	}
	return reg, nil
}

// LoadRegistry merges plugin catalogs found in the search paths with the
// built-in registry. The first definition of a plugin name wins.
func LoadRegistry(projectDir string, extraDirs ...string) (*Registry, error) {
	reg := newRegistry()
	for _, dir := range PluginSearchPaths(projectDir, extraDirs...) {
		catalogs, err := loadCatalogDir(dir)
		if err != nil {
			return nil, err
		}
		for _, c := range catalogs {
			reg.addCatalog(c)
		}
	}
	if err := reg.addBuiltins(); err != nil {
		return nil, err
	}
	return reg, nil
}

func (r *Registry) addBuiltins() error {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return fmt.Errorf("read builtin registry: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := builtinFS.ReadFile("builtin/" + entry.Name())
		if err != nil {
			return fmt.Errorf("read builtin catalog %s: %w", entry.Name(), err)
		}
		c, err := parseCatalog(data, SourceBuiltin)
		if err != nil {
			return fmt.Errorf("parse builtin catalog %s: %w", entry.Name(), err)
		}
		r.addCatalog(c)
	}
	return nil
}

func (r *Registry) addCatalog(c *catalog) {
	for _, theme := range c.Themes {
		if _, exists := r.themes[theme.Name]; exists {
			continue
		}
		r.themes[theme.Name] = theme
		r.themeOrder = append(r.themeOrder, theme.Name)
	}
	for _, plugin := range c.Plugins {
		if _, exists := r.plugins[plugin.Name]; exists {
			continue
		}
		r.plugins[plugin.Name] = plugin
		r.pluginOrder = append(r.pluginOrder, plugin.Name)
	}
}

// BuiltinTheme looks up a shipped theme by name.
func (r *Registry) BuiltinTheme(name string) (BuiltinTheme, bool) {
	theme, ok := r.themes[name]
	return theme, ok
}

// Plugin resolves a plugin identifier.
func (r *Registry) Plugin(name string) (PluginInfo, bool) {
	plugin, ok := r.plugins[name]
	return plugin, ok
}

// Themes returns the shipped themes in catalog order.
func (r *Registry) Themes() []BuiltinTheme {
	themes := make([]BuiltinTheme, 0, len(r.themeOrder))
	for _, name := range r.themeOrder {
		themes = append(themes, r.themes[name])
	}
	return themes
}

// Plugins returns the resolvable plugins in precedence order.
func (r *Registry) Plugins() []PluginInfo {
	plugins := make([]PluginInfo, 0, len(r.pluginOrder))
	for _, name := range r.pluginOrder {
		plugins = append(plugins, r.plugins[name])
	}
	return plugins
}

// PluginSearchPaths returns plugin catalog directories in precedence order.
func PluginSearchPaths(projectDir string, extraDirs ...string) []string {
	paths := make([]string, 0, len(extraDirs)+3)
	for _, dir := range extraDirs {
		if strings.TrimSpace(dir) != "" {
			paths = append(paths, dir)
		}
	}
	if projectDir != "" {
		paths = append(paths, filepath.Join(projectDir, ".tailcfg", "plugins"))
	}

	if home, err := os.UserHomeDir(); err == nil && home != "" {
		paths = append(paths, filepath.Join(home, ".config", "tailcfg", "plugins"))
	}

	paths = append(paths, filepath.Join(string(filepath.Separator), "usr", "share", "tailcfg", "plugins"))
	return paths
}

func loadCatalogDir(dir string) ([]*catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read plugin dir %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	catalogs := make([]*catalog, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read plugin catalog %s: %w", path, err)
		}
		c, err := parseCatalog(data, path)
		if err != nil {
			return nil, fmt.Errorf("parse plugin catalog %s: %w", path, err)
		}
		// Only the bundled catalog may declare built-in themes.
		c.Themes = nil
		catalogs = append(catalogs, c)
	}
	return catalogs, nil
}

func parseCatalog(data []byte, source string) (*catalog, error) {
	var c catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}

	for i := range c.Plugins {
		c.Plugins[i].Name = strings.TrimSpace(c.Plugins[i].Name)
		if c.Plugins[i].Name == "" {
			return nil, ErrPluginNameRequired
		}
		c.Plugins[i].Source = source
	}
	for i := range c.Themes {
		c.Themes[i].Name = strings.TrimSpace(c.Themes[i].Name)
	}
	return &c, nil
}
