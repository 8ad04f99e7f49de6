package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"informers/internal/app"
	"informers/internal/formatting"
)

var watchOutput string

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print changes to the configured collection as they are observed",
		Long: `Lists the configured collection every resync period and prints one line
per added, changed or deleted object until interrupted.

Output formats:
  console  one line per change (default)
  json     one JSON document per line, including the object
  yaml     YAML documents separated by ---
  table    a table per batch of changes`,
		Args: cobra.NoArgs,
		RunE: runWatch,
	}

	cmd.Flags().StringVarP(&watchOutput, "output", "o", string(formatting.FormatConsole), "Output format (console, json, yaml, table)")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	format, err := formatting.ParseFormat(watchOutput)
	if err != nil {
		return err
	}

	cfg := newAppConfig(cmd)
	cfg.Output = format

	application, err := app.NewApplication(cfg)
	if err != nil {
		return err
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return application.Run(ctx)
}
