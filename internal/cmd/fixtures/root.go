package fixtures

import "github.com/spf13/cobra"

// NewCommand groups the helpers that seed chart sources with sample data.
func NewCommand() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "fixtures",
		Short: "Seeds chart sources with sample widget data",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newGenerateCommand())
	return cmd
}
