/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0
 */

package cli

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"layoutstudio/internal/domain"
	"layoutstudio/internal/interaction"
	"layoutstudio/internal/vector"
)

func (a *App) newOverviewCmd() *cobra.Command {
	var zoom, width float64
	var at string
	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Print the thumbnail boxes of the grid overview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.open(cmd.Context()); err != nil {
				return err
			}
			if width <= 0 {
				return errors.New("--width must be positive")
			}
			if !cmd.Flags().Changed("zoom") {
				zoom = a.cfg.Builder.GridZoom
			}
			zoom = interaction.ClampZoom(zoom)

			b := a.b
			sizes := make([]domain.PaperSize, b.PageCount())
			for i := range sizes {
				sizes[i] = b.PageSize(i)
			}
			thumbs := interaction.LayoutThumbnails(sizes, zoom, interaction.DefaultFlow(width))
			a.printf("Grid overview at zoom %.2f, width %.0f\n\n", zoom, width)

			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "IDX\tNO\tSIZE\tX\tY\tW\tH")
			for _, t := range thumbs {
				r := t.Bounds
				_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%.0f\t%.0f\t%.0f\t%.0f\n",
					t.PageIndex, b.FormattedNumber(t.PageIndex), sizes[t.PageIndex], r.X, r.Y, r.W, r.H)
			}
			_ = tw.Flush()

			if at == "" {
				return nil
			}
			xy, err := parseFloats(strings.Split(at, ","))
			if err != nil || len(xy) != 2 {
				return fmt.Errorf("invalid --at %q, want x,y", at)
			}
			ctl := b.Controller()
			ctl.SetThumbnails(thumbs)
			if i, ok := ctl.PageAt(vector.Pt{X: xy[0], Y: xy[1]}); ok {
				a.printf("\nPage at %s: %d (%s)\n", at, i, b.FormattedNumber(i))
			} else {
				a.printf("\nNo page at %s\n", at)
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&zoom, "zoom", 0, "overview zoom (default from config)")
	cmd.Flags().Float64Var(&width, "width", 1200, "overview container width in pixels")
	cmd.Flags().StringVar(&at, "at", "", "report the page under this x,y point")
	return cmd
}
