package serve

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/turbolytics/seer/internal/config"
	"github.com/turbolytics/seer/internal/server"
)

func NewCommand() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serves line chart rendering over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			var global config.Global
			if configPath := v.GetString("config"); configPath != "" {
				g, err := config.NewGlobalFromFile(configPath)
				if err != nil {
					return err
				}
				global = *g
			}

			logger, err := config.NewLogger(global.Logger)
			if err != nil {
				return err
			}
			defer logger.Sync()
			l := logger.Named("seer.serve")

			s := server.New(
				server.WithLogger(l),
				server.WithDefaults(global.Defaults),
			)

			addr := v.GetString("addr")
			l.Info("starting server", zap.String("addr", addr))
			return s.Start(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringP("config", "c", "", "Path to config file; only the global section is used")
	cmd.Flags().String("addr", ":8080", "Address to listen on")
	v.BindPFlag("config", cmd.Flags().Lookup("config"))
	v.BindPFlag("addr", cmd.Flags().Lookup("addr"))
	v.SetEnvPrefix("SEER")
	v.AutomaticEnv()

	return cmd
}
