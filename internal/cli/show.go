package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"github.com/rustytube/tailcfg/internal/logging"
	"github.com/rustytube/tailcfg/internal/styleconf"
	"github.com/spf13/cobra"
)

var (
	showFormat string
	fmtWrite   bool
	fmtCheck   bool
)

func init() {
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(fmtCmd)

	showCmd.Flags().StringVarP(&showFormat, "format", "f", "yaml", "output format: yaml or json")
	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "rewrite the document in place")
	fmtCmd.Flags().BoolVar(&fmtCheck, "check", false, "exit with status 1 if the document is not formatted")
}

var showCmd = &cobra.Command{
	Use:   "show [path]",
	Short: "Print the normalized document",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := styleconf.ParseFormat(showFormat)
		if err != nil {
			return err
		}
		if IsJSONOutput() {
			format = styleconf.FormatJSON
		}

		result, err := loadDocument(args)
		if err != nil {
			return err
		}

		data, err := styleconf.Marshal(result.Document, format)
		if err != nil {
			return fmt.Errorf("marshal document: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var fmtCmd = &cobra.Command{
	Use:   "fmt [path]",
	Short: "Normalize a document's layout",
	Long: `Validate the document and print it in canonical form, keeping its format
(YAML or JSON, by file extension). With --write the file is replaced atomically.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := loadDocument(args)
		if err != nil {
			return err
		}
		path := result.Document.Source

		data, err := styleconf.Marshal(result.Document, styleconf.FormatForPath(path))
		if err != nil {
			return fmt.Errorf("marshal document: %w", err)
		}

		original, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read document %s: %w", path, err)
		}
		changed := !bytes.Equal(original, data)

		switch {
		case fmtCheck:
			if changed {
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return errUnformatted
			}
			return nil
		case fmtWrite:
			if !changed {
				return nil
			}
			if err := writeFileAtomic(path, data); err != nil {
				return err
			}
			logger := logging.Component("fmt")
			logger.Info().Str("path", path).Msg("document rewritten")
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		default:
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
	},
}

func loadDocument(args []string) (*styleconf.LoadResult, error) {
	loader, err := newLoader()
	if err != nil {
		return nil, err
	}
	return loader.Load(resolveDocumentPath(args))
}

func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
