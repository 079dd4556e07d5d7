// Package config loads tailcfg's own settings (not the style document).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rustytube/tailcfg/internal/styleconf"
	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	// EnvPrefix prefixes environment overrides, e.g. TAILCFG_LOG_LEVEL.
	EnvPrefix = "TAILCFG"
)

// Settings keys.
const (
	KeyLogLevel    = "log_level"
	KeyLogFormat   = "log_format"
	KeyDocument    = "document"
	KeyProjectDir  = "project_dir"
	KeyStrict      = "strict"
	KeyMinContrast = "contrast.min_ratio"
	KeyPluginDirs  = "plugins.dirs"
	KeyUITheme     = "ui.theme"
)

// Config holds tailcfg settings.
type Config struct {
	LogLevel   string         `mapstructure:"log_level"`
	LogFormat  string         `mapstructure:"log_format"` // auto, console or json
	Document   string         `mapstructure:"document"`
	ProjectDir string         `mapstructure:"project_dir"`
	Strict     bool           `mapstructure:"strict"`
	Contrast   ContrastConfig `mapstructure:"contrast"`
	Plugins    PluginsConfig  `mapstructure:"plugins"`
	UI         UIConfig       `mapstructure:"ui"`
}

// ContrastConfig tunes the content-role contrast check.
type ContrastConfig struct {
	MinRatio float64 `mapstructure:"min_ratio"`
}

// PluginsConfig lists extra plugin catalog directories.
type PluginsConfig struct {
	Dirs []string `mapstructure:"dirs"`
}

// UIConfig selects the terminal palette for command output.
type UIConfig struct {
	Theme string `mapstructure:"theme"`
}

// DefaultConfig returns the settings used when no file or env overrides exist.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:  "warn",
		LogFormat: "auto",
		Contrast:  ContrastConfig{MinRatio: styleconf.DefaultMinContrast},
		UI:        UIConfig{Theme: "default"},
	}
}

// DefaultConfigDir returns $XDG_CONFIG_HOME/tailcfg, falling back to ~/.config/tailcfg.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tailcfg")
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".config", "tailcfg")
	}
	return ".tailcfg"
}

// Load reads settings from path, or from config.yaml in DefaultConfigDir when
// path is empty. A missing default file is not an error; a missing explicit
// file is.
func Load(path string) (*Config, error) {
	defaults := DefaultConfig()

	v := viper.New()
	v.SetDefault(KeyLogLevel, defaults.LogLevel)
	v.SetDefault(KeyLogFormat, defaults.LogFormat)
	v.SetDefault(KeyDocument, defaults.Document)
	v.SetDefault(KeyProjectDir, defaults.ProjectDir)
	v.SetDefault(KeyStrict, defaults.Strict)
	v.SetDefault(KeyMinContrast, defaults.Contrast.MinRatio)
	v.SetDefault(KeyPluginDirs, []string{})
	v.SetDefault(KeyUITheme, defaults.UI.Theme)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(DefaultConfigDir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read settings: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks setting values.
func (c *Config) Validate() error {
	switch c.LogFormat {
	case "auto", "console", "json":
	default:
		return fmt.Errorf("log_format must be auto, console or json, got %q", c.LogFormat)
	}
	if c.Contrast.MinRatio < 0 || c.Contrast.MinRatio > 21 {
		return fmt.Errorf("contrast.min_ratio must be between 0 and 21, got %v", c.Contrast.MinRatio)
	}
	return nil
}
