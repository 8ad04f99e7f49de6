package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"informers/internal/app"
)

var listNoHeaders bool

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the configured collection once",
		Long: `Performs a single listing with the configured scope and prints the
namespace, name, resource version and age of every object.`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	cmd.Flags().BoolVar(&listNoHeaders, "no-headers", false, "Don't print column headers")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	cfg := newAppConfig(cmd)
	cfg.NoHeaders = listNoHeaders

	application, err := app.NewApplication(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return application.ListOnce(ctx)
}
