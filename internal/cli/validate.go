package cli

import (
	"fmt"
	"io"

	"github.com/rustytube/tailcfg/internal/preview"
	"github.com/rustytube/tailcfg/internal/styleconf"
	"github.com/spf13/cobra"
)

var validateStrict bool

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "fail when validation produces warnings")
}

var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a style configuration document",
	Long: `Load the document, check every invariant and print warnings for soft
problems such as low contrast between a color role and its content role.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := resolveDocumentPath(args)

		loader, err := newLoader()
		if err != nil {
			return err
		}
		result, err := loader.Load(path)
		if err != nil {
			if IsJSONOutput() && styleconf.IsConfigError(err) {
				if werr := WriteOutput(cmd.OutOrStdout(), validationOutput{Path: path, Valid: false, Error: err.Error()}); werr != nil {
					return werr
				}
			}
			return err
		}

		if IsJSONOutput() {
			if err := WriteOutput(cmd.OutOrStdout(), newValidationOutput(path, result)); err != nil {
				return err
			}
		} else if err := writeValidation(cmd.OutOrStdout(), outputStyles(cmd), path, result); err != nil {
			return err
		}

		if (validateStrict || GetConfig().Strict) && len(result.Report.Warnings) > 0 {
			return errWarnings
		}
		return nil
	},
}

type validationOutput struct {
	Path     string              `json:"path"`
	Valid    bool                `json:"valid"`
	Error    string              `json:"error,omitempty"`
	Summary  *validationSummary  `json:"summary,omitempty"`
	Warnings []validationWarning `json:"warnings,omitempty"`
}

type validationSummary struct {
	Content    int `json:"content"`
	Plugins    int `json:"plugins"`
	FontRoles  int `json:"font_roles"`
	Themes     int `json:"themes"`
	Duplicates int `json:"duplicate_themes"`
}

type validationWarning struct {
	Theme   string `json:"theme"`
	Role    string `json:"role,omitempty"`
	Message string `json:"message"`
}

func newValidationOutput(path string, result *styleconf.LoadResult) validationOutput {
	doc := result.Document
	out := validationOutput{
		Path:  path,
		Valid: true,
		Summary: &validationSummary{
			Content:    len(doc.Content),
			Plugins:    len(doc.Plugins),
			FontRoles:  len(doc.Theme.FontFamily),
			Themes:     len(doc.ResolvedThemes()),
			Duplicates: len(doc.DaisyUI.Themes) - len(doc.ResolvedThemes()),
		},
	}
	for _, w := range result.Report.Warnings {
		out.Warnings = append(out.Warnings, validationWarning{Theme: w.Theme, Role: w.Role, Message: w.Message})
	}
	return out
}

func writeValidation(w io.Writer, styles preview.Styles, path string, result *styleconf.LoadResult) error {
	doc := result.Document
	resolved := doc.ResolvedThemes()

	summary := fmt.Sprintf("%s: %d content globs, %d plugins, %d font roles, %d themes",
		path, len(doc.Content), len(doc.Plugins), len(doc.Theme.FontFamily), len(resolved))
	if dups := len(doc.DaisyUI.Themes) - len(resolved); dups > 0 {
		summary += fmt.Sprintf(" (%d duplicate names, last definition wins)", dups)
	}
	if _, err := fmt.Fprintln(w, styles.Success.Render("ok ")+summary); err != nil {
		return err
	}

	for _, warning := range result.Report.Warnings {
		if _, err := fmt.Fprintln(w, styles.Warning.Render("warning: ")+warning.String()); err != nil {
			return err
		}
	}
	return nil
}
