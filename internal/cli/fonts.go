package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(fontsCmd)
}

type fontRow struct {
	Role     string   `json:"role"`
	Families []string `json:"families"`
}

var fontsCmd = &cobra.Command{
	Use:   "fonts [path]",
	Short: "List font roles and their fallback chains",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := loadDocument(args)
		if err != nil {
			return err
		}
		fonts := result.Document.Theme.FontFamily

		if IsJSONOutput() {
			rows := make([]fontRow, 0, len(fonts))
			for _, role := range fonts {
				rows = append(rows, fontRow{Role: role.Name, Families: role.Families})
			}
			return WriteOutput(cmd.OutOrStdout(), rows)
		}

		table := make([][]string, 0, len(fonts))
		for _, role := range fonts {
			fallbacks := ""
			if len(role.Families) > 1 {
				fallbacks = strings.Join(role.Families[1:], " > ")
			}
			table = append(table, []string{role.Name, role.Families[0], orDash(fallbacks)})
		}
		return writeTable(cmd.OutOrStdout(), []string{"ROLE", "FAMILY", "FALLBACKS"}, table)
	},
}
