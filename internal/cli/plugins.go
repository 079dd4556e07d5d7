package cli

import (
	"os"

	"github.com/rustytube/tailcfg/internal/styleconf"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(pluginsCmd)
}

type pluginRow struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Source      string `json:"source"`
	Used        bool   `json:"used"`
}

var pluginsCmd = &cobra.Command{
	Use:   "plugins [path]",
	Short: "List resolvable plugins",
	Long: `List the plugin registry: project and user catalogs first, then the
built-in catalog. Plugins referenced by the document are marked as used; a
missing document is not an error.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loader, err := newLoader()
		if err != nil {
			return err
		}

		used := make(map[string]bool)
		path := resolveDocumentPath(args)
		if data, err := os.ReadFile(path); err == nil {
			if doc, err := styleconf.Decode(data, styleconf.FormatForPath(path)); err == nil {
				for _, ref := range doc.Plugins {
					used[string(ref)] = true
				}
			}
		}

		plugins := loader.Registry().Plugins()
		rows := make([]pluginRow, 0, len(plugins))
		for _, p := range plugins {
			rows = append(rows, pluginRow{Name: p.Name, Description: p.Description, Source: p.Source, Used: used[p.Name]})
		}

		if IsJSONOutput() {
			return WriteOutput(cmd.OutOrStdout(), rows)
		}

		table := make([][]string, 0, len(rows))
		for _, row := range rows {
			table = append(table, []string{row.Name, yesNo(row.Used), row.Source, orDash(row.Description)})
		}
		return writeTable(cmd.OutOrStdout(), []string{"PLUGIN", "USED", "SOURCE", "DESCRIPTION"}, table)
	},
}
