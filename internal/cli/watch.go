package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rustytube/tailcfg/internal/logging"
	"github.com/rustytube/tailcfg/internal/styleconf"
	"github.com/spf13/cobra"
)

var watchDebounce time.Duration

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 200*time.Millisecond, "wait this long after the last change before validating")
}

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Re-validate the document whenever it changes",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		loader, err := newLoader()
		if err != nil {
			return err
		}
		path := resolveDocumentPath(args)
		out := cmd.OutOrStdout()
		styles := outputStyles(cmd)

		return watchDocument(ctx, loader, path, watchDebounce, func(result *styleconf.LoadResult, err error) {
			stamp := styles.Muted.Render(time.Now().Format("15:04:05") + " ")
			if err != nil {
				fmt.Fprintln(out, stamp+styles.Error.Render("error: ")+err.Error())
				return
			}
			fmt.Fprint(out, stamp)
			if werr := writeValidation(out, styles, path, result); werr != nil {
				logger := logging.Component("watch")
				logger.Warn().Err(werr).Msg("write result")
			}
		})
	},
}

// watchDocument validates path once, then again after each burst of changes,
// until ctx is done. The parent directory is watched so editors that replace
// the file by rename are still followed.
func watchDocument(ctx context.Context, loader *styleconf.Loader, path string, debounce time.Duration, onResult func(*styleconf.LoadResult, error)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	logger := logging.Component("watch")
	logger.Info().Str("path", abs).Msg("watching document")

	onResult(loader.Load(abs))

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug().Str("op", event.Op.String()).Msg("document changed")
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			onResult(loader.Load(abs))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("watcher error")
		}
	}
}
