/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0
 */

package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"layoutstudio/internal/catalog"
	"layoutstudio/internal/domain"
)

func (a *App) newAssetsCmd() *cobra.Command {
	var f catalog.Filter
	var kind string
	var grouped bool
	cmd := &cobra.Command{
		Use:   "assets",
		Short: "Browse the asset catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := a.catalog()
			if err != nil {
				return err
			}
			switch strings.ToLower(kind) {
			case "", "diagram":
				f.Type = domain.AssetDiagram
			case "proposal":
				f.Type = domain.AssetProposal
			default:
				return fmt.Errorf("unknown asset type %q", kind)
			}
			if grouped {
				for _, g := range cat.Grouped(f.Type) {
					a.printf("%s (%s)\n", g.Category, g.CategoryKo)
					for _, as := range g.Items {
						a.printf("  %s\t%s\n", as.ID, as.Title)
					}
				}
				return nil
			}
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "ID\tCATEGORY\tTITLE\tTAGS")
			for _, as := range cat.Assets(f) {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", as.ID, as.Category, as.Title, strings.Join(as.Tags, ","))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&kind, "type", "diagram", "diagram or proposal")
	cmd.Flags().StringVar(&f.Category, "category", catalog.AllCategories, "category filter")
	cmd.Flags().StringVarP(&f.Search, "search", "s", "", "search title, description and tags")
	cmd.Flags().BoolVar(&grouped, "grouped", false, "group by category")
	return cmd
}
