package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"shopscan/pkg/config"
	"shopscan/pkg/crawler"
	"shopscan/pkg/logger"
	"shopscan/pkg/report"
	"shopscan/pkg/store"
)

func newCrawlCmd() *cobra.Command {
	var (
		fromHTML string
		details  bool
	)

	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "run the pipeline once.",
		Long:  "Open the listing page, load every shop, and write the classified dataset. With --from-html a saved page snapshot is processed instead.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			if details {
				cfg.Detail.Enabled = true
			}
			ctx, cancel := signalContext()
			defer cancel()

			c, closeStore, err := newCrawler(ctx, cfg)
			if err != nil {
				return fail("Failed to prepare crawler", err)
			}
			defer closeStore()

			var res *crawler.Result
			if fromHTML != "" {
				res, err = replay(ctx, c, fromHTML)
			} else {
				res, err = c.Run(ctx)
			}
			if err != nil {
				return fail("Crawl failed", err)
			}

			if res.Summary != nil {
				return report.WriteText(cmd.OutOrStdout(), res.Summary)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&fromHTML, "from-html", "", "process a saved HTML snapshot instead of launching a browser")
	cmd.Flags().BoolVar(&details, "details", false, "also visit every shop page for phone, hours and description")
	return cmd
}

func replay(ctx context.Context, c *crawler.Crawler, path string) (*crawler.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()
	return c.RunFromHTML(ctx, path, f)
}

// newCrawler builds a crawler, attaching the sqlite mirror when enabled.
func newCrawler(ctx context.Context, cfg *config.Config) (*crawler.Crawler, func(), error) {
	if !cfg.Store.Enabled {
		return crawler.New(cfg), func() {}, nil
	}

	client, err := store.NewClient(ctx, cfg.Store)
	if err != nil {
		return nil, nil, err
	}
	closeStore := func() {
		if err := client.Close(); err != nil {
			logger.Warn("Failed to close store", zap.Error(err))
		}
	}
	return crawler.New(cfg, crawler.WithMirror(client)), closeStore, nil
}
