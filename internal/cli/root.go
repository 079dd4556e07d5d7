// Package cli implements the tailcfg command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/rustytube/tailcfg/internal/config"
	"github.com/rustytube/tailcfg/internal/logging"
	"github.com/rustytube/tailcfg/internal/preview"
	"github.com/rustytube/tailcfg/internal/styleconf"
	"github.com/spf13/cobra"
)

// Exit codes.
const (
	exitSuccess     = 0
	exitConfigError = 1
	exitSysError    = 2
)

// Version is set at build time with -ldflags.
var Version = "dev"

var (
	// errWarnings is returned in strict mode when validation produced warnings.
	errWarnings = errors.New("validation produced warnings")
	// errUnformatted is returned by fmt --check when a file would change.
	errUnformatted = errors.New("document is not formatted")
)

// Global flag values.
var (
	settingsFile string
	logLevel     string
	projectDir   string
	jsonOutput   bool
)

// appConfig holds the settings resolved in PersistentPreRunE.
var appConfig *config.Config

var rootCmd = &cobra.Command{
	Use:   "tailcfg",
	Short: "Validate and inspect style configuration documents",
	Long: `tailcfg loads the style configuration document read by the CSS utility
build pipeline (content globs, plugins, font tokens and themes), validates it
and prints normalized or human-readable views of it.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initSettings,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&settingsFile, "config", "", "settings file (default: $XDG_CONFIG_HOME/tailcfg/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&projectDir, "project-dir", "", "project directory (default: current directory)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
}

// Run executes the command line and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if err == nil {
		return exitSuccess
	}

	styles := preview.BuildStyles(lipgloss.NewRenderer(stderr), outputTheme())
	fmt.Fprintln(stderr, styles.Error.Render("error: "+err.Error()))
	return exitCode(err)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case styleconf.IsConfigError(err), errors.Is(err, errWarnings), errors.Is(err, errUnformatted):
		return exitConfigError
	default:
		return exitSysError
	}
}

func initSettings(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(settingsFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if projectDir != "" {
		cfg.ProjectDir = projectDir
	}
	appConfig = cfg

	stderr := cmd.ErrOrStderr()
	console := cfg.LogFormat == "console" || (cfg.LogFormat == "auto" && logging.IsTerminal(stderr))
	logging.Configure(logging.Config{Level: cfg.LogLevel, Output: stderr, Console: console})

	logger := logging.Component("cli")
	logger.Debug().
		Str("command", cmd.Name()).
		Str("project_dir", resolveProjectDir()).
		Msg("settings loaded")
	return nil
}

// GetConfig returns the resolved settings, or defaults before initialization.
func GetConfig() *config.Config {
	if appConfig == nil {
		return config.DefaultConfig()
	}
	return appConfig
}

func resolveProjectDir() string {
	if dir := GetConfig().ProjectDir; dir != "" {
		return dir
	}
	if cwd, err := os.Getwd(); err == nil {
		return cwd
	}
	return "."
}

// resolveDocumentPath applies the precedence: argument > settings document >
// <project dir>/tailcfg.yaml. Relative settings paths are taken from the
// project directory.
func resolveDocumentPath(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	if doc := GetConfig().Document; doc != "" {
		if filepath.IsAbs(doc) {
			return doc
		}
		return filepath.Join(resolveProjectDir(), doc)
	}
	return filepath.Join(resolveProjectDir(), styleconf.DefaultFileName)
}

func newLoader() (*styleconf.Loader, error) {
	cfg := GetConfig()
	reg, err := styleconf.LoadRegistry(resolveProjectDir(), cfg.Plugins.Dirs...)
	if err != nil {
		return nil, fmt.Errorf("load plugin registry: %w", err)
	}
	return styleconf.NewLoader(reg,
		styleconf.WithMinContrast(cfg.Contrast.MinRatio),
		styleconf.WithLogger(logging.Component("loader")),
	), nil
}

func outputTheme() preview.Theme {
	return preview.ThemeByName(GetConfig().UI.Theme)
}

func outputStyles(cmd *cobra.Command) preview.Styles {
	return preview.BuildStyles(lipgloss.NewRenderer(cmd.OutOrStdout()), outputTheme())
}
