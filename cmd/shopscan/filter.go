package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"shopscan/internal/models"
	"shopscan/pkg/artifact"
	"shopscan/pkg/region"
)

func newFilterCmd() *cobra.Command {
	var (
		dataset   string
		sido      string
		sigungu   string
		listOnly  bool
		countOnly bool
	)

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "select dataset records by region.",
		Long:  "Apply the same region matching the classifier uses to the dataset. --list prints regions with record counts instead.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			if dataset == "" {
				dataset = cfg.Output.DatasetPath
			}

			shops, err := artifact.ReadDataset(dataset)
			if err != nil {
				return fail("Failed to read dataset", err)
			}

			out := cmd.OutOrStdout()
			if listOnly {
				return listRegions(out, shops, sido)
			}

			matched := region.Filter(shops, sido, sigungu)
			if countOnly {
				_, err := fmt.Fprintln(out, len(matched))
				return err
			}
			data, err := artifact.Marshal(matched)
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&dataset, "dataset", "", "dataset file (defaults to output.dataset_path)")
	cmd.Flags().StringVar(&sido, "region", "", "top-level region, e.g. 서울특별시 or 서울")
	cmd.Flags().StringVar(&sigungu, "sub-region", "", "district or city, e.g. 강남구")
	cmd.Flags().BoolVar(&listOnly, "list", false, "list regions (or the sub-regions of --region) with counts")
	cmd.Flags().BoolVar(&countOnly, "count", false, "print only the number of matching records")
	return cmd
}

func listRegions(w io.Writer, shops []models.Shop, parent string) error {
	if parent == "" {
		counts := region.CountByRegion(shops)
		for _, name := range region.Regions() {
			if _, err := fmt.Fprintf(w, "%s\t%d\n", name, counts[name]); err != nil {
				return err
			}
		}
		return nil
	}

	inRegion := region.Filter(shops, parent, "")
	for _, sub := range region.SubRegions(parent) {
		n := len(region.Filter(inRegion, "", sub))
		if _, err := fmt.Fprintf(w, "%s\t%d\n", sub, n); err != nil {
			return err
		}
	}
	return nil
}
