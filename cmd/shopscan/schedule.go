package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"shopscan/pkg/logger"
	"shopscan/pkg/scheduler"
)

func newScheduleCmd() *cobra.Command {
	var cronExpr string

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "re-crawl on a cron schedule.",
		Long:  "Run the pipeline on the configured cron expression until interrupted. Runs never overlap.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			if cronExpr != "" {
				cfg.Schedule.Cron = cronExpr
			}
			ctx, cancel := signalContext()
			defer cancel()

			c, closeStore, err := newCrawler(ctx, cfg)
			if err != nil {
				return fail("Failed to prepare crawler", err)
			}
			defer closeStore()

			s, err := scheduler.New(cfg.Schedule, func(ctx context.Context) error {
				res, err := c.Run(ctx)
				if err != nil {
					return err
				}
				logger.Info("Dataset refreshed",
					zap.String("run_id", res.RunID),
					zap.Int("shops", res.Unique))
				return nil
			})
			if err != nil {
				return fail("Failed to create scheduler", err)
			}
			return s.Start(ctx)
		},
	}
	cmd.Flags().StringVar(&cronExpr, "cron", "", "override schedule.cron (standard 5-field expression)")
	return cmd
}
