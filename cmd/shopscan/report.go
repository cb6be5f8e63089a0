package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"shopscan/internal/models"
	"shopscan/pkg/artifact"
	"shopscan/pkg/config"
	"shopscan/pkg/logger"
	"shopscan/pkg/report"
	"shopscan/pkg/store"
)

func newReportCmd() *cobra.Command {
	var (
		dataset   string
		asJSON    bool
		fromStore bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "print dataset statistics.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			if dataset == "" {
				dataset = cfg.Output.DatasetPath
			}

			var shops []models.Shop
			if fromStore {
				shops, err = storedShops(cmd.Context(), cfg.Store)
			} else {
				shops, err = artifact.ReadDataset(dataset)
			}
			if err != nil {
				return fail("Failed to read dataset", err)
			}

			summary := report.Build(shops)
			if asJSON {
				return report.WriteJSON(cmd.OutOrStdout(), summary)
			}
			return report.WriteText(cmd.OutOrStdout(), summary)
		},
	}
	cmd.Flags().StringVar(&dataset, "dataset", "", "dataset file (defaults to output.dataset_path)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of text")
	cmd.Flags().BoolVar(&fromStore, "from-store", false, "summarize the sqlite mirror instead of the dataset file")
	return cmd
}

// storedShops loads every shop mirrored in the store, which accumulates across runs.
func storedShops(ctx context.Context, cfg *config.StoreConfig) ([]models.Shop, error) {
	client, err := store.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Warn("Failed to close store", zap.Error(err))
		}
	}()
	return client.Shops(ctx)
}
