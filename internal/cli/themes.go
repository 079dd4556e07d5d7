package cli

import (
	"fmt"

	"github.com/rustytube/tailcfg/internal/styleconf"
	"github.com/spf13/cobra"
)

var themesPalettes bool

func init() {
	rootCmd.AddCommand(themesCmd)
	themesCmd.Flags().BoolVar(&themesPalettes, "palettes", true, "draw swatches for inline palettes")
}

type themeRow struct {
	Name        string                 `json:"name"`
	Kind        string                 `json:"kind"`
	ColorScheme string                 `json:"color_scheme,omitempty"`
	Dark        bool                   `json:"dark_default"`
	Palette     styleconf.ColorPalette `json:"palette,omitempty"`
}

var themesCmd = &cobra.Command{
	Use:   "themes [path]",
	Short: "List the document's effective themes",
	Long: `List themes in precedence order after duplicate names are resolved
(the last definition wins), with swatches for inline palettes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loader, err := newLoader()
		if err != nil {
			return err
		}
		result, err := loader.Load(resolveDocumentPath(args))
		if err != nil {
			return err
		}
		doc := result.Document
		reg := loader.Registry()

		resolved := doc.ResolvedThemes()
		rows := make([]themeRow, 0, len(resolved))
		for _, entry := range resolved {
			row := themeRow{Name: entry.Name, Kind: string(entry.Kind), Dark: entry.Name == doc.DaisyUI.DarkTheme}
			if entry.Kind == styleconf.ThemeInline {
				row.ColorScheme = styleconf.InferColorScheme(entry.Palette)
				row.Palette = entry.Palette
			} else if builtin, ok := reg.BuiltinTheme(entry.Name); ok {
				row.ColorScheme = builtin.ColorScheme
			}
			rows = append(rows, row)
		}

		if IsJSONOutput() {
			return WriteOutput(cmd.OutOrStdout(), rows)
		}

		table := make([][]string, 0, len(rows))
		for _, row := range rows {
			table = append(table, []string{row.Name, row.Kind, orDash(row.ColorScheme), yesNo(row.Dark)})
		}
		if err := writeTable(cmd.OutOrStdout(), []string{"NAME", "KIND", "SCHEME", "DARK DEFAULT"}, table); err != nil {
			return err
		}

		if !themesPalettes {
			return nil
		}
		styles := outputStyles(cmd)
		for _, entry := range resolved {
			if entry.Kind != styleconf.ThemeInline {
				continue
			}
			fmt.Fprintln(cmd.OutOrStdout())
			if err := styles.WritePalette(cmd.OutOrStdout(), entry.Name, entry.Palette); err != nil {
				return err
			}
		}
		return nil
	},
}
