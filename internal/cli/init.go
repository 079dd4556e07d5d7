package cli

import (
	"fmt"
	"os"

	"github.com/rustytube/tailcfg/internal/styleconf"
	"github.com/spf13/cobra"
)

var initForce bool

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing document")
}

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a starter style configuration document",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := resolveDocumentPath(args)

		if _, err := os.Stat(path); err == nil && !initForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("stat %s: %w", path, err)
		}

		data := styleconf.DefaultDocument()
		if styleconf.FormatForPath(path) == styleconf.FormatJSON {
			doc, err := styleconf.Parse(data)
			if err != nil {
				return fmt.Errorf("parse default document: %w", err)
			}
			if data, err = styleconf.Marshal(doc, styleconf.FormatJSON); err != nil {
				return fmt.Errorf("marshal default document: %w", err)
			}
		}

		if err := writeFileAtomic(path, data); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}
