package render

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/turbolytics/seer/internal/config"
	"github.com/turbolytics/seer/internal/renderer"
)

type closer interface {
	Close(ctx context.Context) error
}

func NewCommand() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Renders a line chart. Data is collected from the source and the chart script is preserved.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			configPath := v.GetString("config")
			if configPath == "" {
				return errors.New("a config file is required (--config or SEER_CONFIG)")
			}

			c, err := config.NewSeerFromFile(configPath)
			if err != nil {
				return err
			}

			logger, err := config.NewLogger(c.Global.Logger)
			if err != nil {
				return err
			}
			defer logger.Sync()
			l := logger.Named("seer.render")

			rid := uuid.Must(uuid.NewUUID())
			l.Info("starting render",
				zap.String("render_id", rid.String()),
				zap.String("config", configPath))

			chart, err := c.DatasetChart()
			if err != nil {
				return err
			}

			source, err := config.InitializeSource(ctx, c.Source, l)
			if err != nil {
				return err
			}

			repository, err := config.InitializeRepository(ctx, c.Repository, rid.String(), l)
			if err != nil {
				source.Close(ctx)
				return err
			}
			if rc, ok := repository.(closer); ok {
				defer rc.Close(ctx)
			}

			r := renderer.New(
				renderer.WithLogger(l),
				renderer.WithSource(source),
				renderer.WithRepository(repository),
				renderer.WithChart(c.ChartName(), chart, c.Chart.SeriesBy),
			)
			defer r.Close(ctx)

			if _, err := r.Render(ctx, rid); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), rid.String())
			return nil
		},
	}

	cmd.Flags().StringP("config", "c", "", "Path to config file")
	v.BindPFlag("config", cmd.Flags().Lookup("config"))
	v.SetEnvPrefix("SEER")
	v.AutomaticEnv()

	return cmd
}
