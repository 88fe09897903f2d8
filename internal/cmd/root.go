package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/turbolytics/seer/internal/cmd/fixtures"
	"github.com/turbolytics/seer/internal/cmd/render"
	"github.com/turbolytics/seer/internal/cmd/serve"
)

func NewRootCommand() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "seer",
		Short: "Renders line charts for the Google Visualization API",
		Long: `seer reads records from a source, splits them into series and renders
a line chart script. Scripts are written to a repository by "render" or
returned over HTTP by "serve".`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(render.NewCommand())
	cmd.AddCommand(serve.NewCommand())
	cmd.AddCommand(fixtures.NewCommand())

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := NewRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		stop()
		os.Exit(1)
	}
}
