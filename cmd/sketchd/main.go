// Command sketchd runs the sketch dev server: a live editor for the
// constrained markup dialect with file-backed snippet persistence.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	sketch "github.com/dpotapov/go-sketch"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		addr     string
		dataDir  string
		debounce time.Duration
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:          "sketchd",
		Short:        "Live tree editor for element-tree markup snippets",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			store, err := sketch.NewStore(dataDir)
			if err != nil {
				return err
			}

			h := &sketch.Handler{
				Store:        store,
				SaveDebounce: debounce,
				Logger:       logger,
			}

			logger.Info("Starting sketchd", "addr", addr, "data_dir", dataDir)
			return http.ListenAndServe(addr, h)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:8080", "listen address")
	cmd.Flags().StringVar(&dataDir, "data-dir", ".sketch", "snippet storage directory")
	cmd.Flags().DurationVar(&debounce, "debounce", 500*time.Millisecond, "auto-save quiet period")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}
