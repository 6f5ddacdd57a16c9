/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0
 */

package cli

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"layoutstudio/internal/builder"
	"layoutstudio/internal/domain"
	"layoutstudio/internal/grid"
	"layoutstudio/internal/placement"
	"layoutstudio/internal/vector"
)

func (a *App) newPlaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "place",
		Short: "Add, move and caption placed assets",
	}
	cmd.AddCommand(
		a.newPlaceAddCmd(),
		a.newPlaceListCmd(),
		a.newPlaceDragCmd(),
		&cobra.Command{
			Use:   "remove <uid>",
			Short: "Remove a placement",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withPlacement(cmd, args[0], func(b *builder.Builder, p domain.Placement) error {
					b.RemovePlacement(p.UID)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "set <uid> <x> <y> <w> <h>",
			Short: "Set a placement's grid rectangle",
			Args:  cobra.ExactArgs(5),
			RunE: func(cmd *cobra.Command, args []string) error {
				v, err := parseInts(args[1:])
				if err != nil {
					return err
				}
				return a.withPlacement(cmd, args[0], func(b *builder.Builder, p domain.Placement) error {
					b.SetPlacementPosition(p.UID, v[0], v[1])
					b.ResizePlacement(p.UID, v[2], v[3])
					return nil
				})
			},
		},
		a.newCaptionSetCmd(),
		a.newLoadLayoutCmd(),
	)
	return cmd
}

func (a *App) newPlaceAddCmd() *cobra.Command {
	var cell, at string
	var title, image string
	cmd := &cobra.Command{
		Use:   "add <page> <asset-id>",
		Short: "Drop an asset onto a page",
		Long: `Drop an asset onto a page. By default the asset is dropped at the page centre
with the configured drop size. --at drops at paper pixel coordinates, --cell sets
the grid rectangle directly.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			ref, err := a.assetRef(args[1], title, image)
			if err != nil {
				return err
			}
			return a.mutate(cmd.Context(), func(b *builder.Builder) error {
				if _, ok := b.Page(page); !ok {
					return fmt.Errorf("page %d does not exist", page)
				}
				var uid string
				switch {
				case cell != "":
					v, err := parseInts(strings.Split(cell, ","))
					if err != nil || len(v) != 4 {
						return fmt.Errorf("--cell wants x,y,w,h")
					}
					uid = b.AddPlacement(page, ref, v[0], v[1], v[2], v[3])
				default:
					spec := grid.For(b.PageSize(page))
					pt := vector.Pt{X: spec.PixelWidth / 2, Y: spec.PixelHeight / 2}
					if at != "" {
						f, err := parseFloats(strings.Split(at, ","))
						if err != nil || len(f) != 2 {
							return fmt.Errorf("--at wants x,y")
						}
						pt = vector.Pt{X: f[0], Y: f[1]}
					}
					uid, _ = b.Controller().DropAsset(page, ref, pt, vector.Pt{}, 1)
				}
				p, _ := b.Placement(uid)
				a.printf("%s\t%d,%d %dx%d\n", uid, p.X, p.Y, p.W, p.H)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&cell, "cell", "", "grid rectangle x,y,w,h")
	cmd.Flags().StringVar(&at, "at", "", "drop point x,y in paper pixels")
	cmd.Flags().StringVar(&title, "title", "", "title for an asset missing from the catalog")
	cmd.Flags().StringVar(&image, "image", "", "image URL for an asset missing from the catalog")
	return cmd
}

// assetRef resolves id in the catalog. Unknown ids need a title.
func (a *App) assetRef(id, title, image string) (domain.AssetRef, error) {
	cat, err := a.catalog()
	if err != nil {
		return domain.AssetRef{}, err
	}
	if as, ok := cat.Asset(id); ok {
		return as.Ref(), nil
	}
	if title == "" {
		return domain.AssetRef{}, fmt.Errorf("asset %q not in catalog (pass --title to place it anyway)", id)
	}
	return domain.AssetRef{ID: id, Title: title, ImageURL: image}, nil
}

func (a *App) newPlaceListCmd() *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List placements in render order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.open(cmd.Context()); err != nil {
				return err
			}
			list := a.b.Placements()
			if page >= 0 {
				list = a.b.PagePlacements(page)
			}
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "UID\tPAGE\tRECT\tASSET\tCAPTION")
			for _, p := range list {
				_, _ = fmt.Fprintf(tw, "%s\t%d\t%d,%d %dx%d\t%s\t%s\n", p.UID, p.PageIndex, p.X, p.Y, p.W, p.H, p.Asset.Title, p.Caption)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&page, "page", -1, "only list placements on this page")
	return cmd
}

func (a *App) newPlaceDragCmd() *cobra.Command {
	var resize bool
	cmd := &cobra.Command{
		Use:   "drag <uid> <dx> <dy>",
		Short: "Drag a placement by a pointer delta in screen pixels",
		Long: `Replays a pointer drag on the edit view. The delta is in screen pixels at the
configured edit view scale and snaps to whole grid cells.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseFloats(args[1:])
			if err != nil {
				return err
			}
			mode := placement.Move
			if resize {
				mode = placement.Resize
			}
			return a.withPlacement(cmd, args[0], func(b *builder.Builder, p domain.Placement) error {
				ctl := b.Controller()
				if !ctl.PointerDownPlacement(p.UID, mode, vector.Pt{}) {
					return fmt.Errorf("placement %s cannot be dragged", p.UID)
				}
				end := vector.Pt{X: d[0], Y: d[1]}
				ctl.PointerMove(end)
				ctl.PointerUp(end)
				q, _ := b.Placement(p.UID)
				a.printf("%s\t%d,%d %dx%d\n", q.UID, q.X, q.Y, q.W, q.H)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&resize, "resize", false, "drag the resize handle instead of the body")
	return cmd
}

func (a *App) newCaptionSetCmd() *cobra.Command {
	var pos, align, size string
	cmd := &cobra.Command{
		Use:   "caption <uid> [text]",
		Short: "Set a placement caption and its style",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withPlacement(cmd, args[0], func(b *builder.Builder, p domain.Placement) error {
				if len(args) > 1 {
					b.SetCaption(p.UID, strings.Join(args[1:], " "))
				}
				b.SetCaptionStyle(p.UID, placement.CaptionStyle{
					Position: domain.CaptionPosition(pos),
					Align:    domain.CaptionAlign(align),
					Size:     domain.CaptionSize(size),
				})
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&pos, "position", "", "top or bottom")
	cmd.Flags().StringVar(&align, "align", "", "left, center or right")
	cmd.Flags().StringVar(&size, "size", "", "xs, sm or base")
	return cmd
}

func (a *App) newLoadLayoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <proposal-id>",
		Short: "Replace all placements with a saved proposal mockup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.catalog()
			if err != nil {
				return err
			}
			as, ok := cat.Asset(args[0])
			if !ok || len(as.LayoutData) == 0 {
				return fmt.Errorf("proposal %q has no saved layout", args[0])
			}
			return a.mutate(cmd.Context(), func(b *builder.Builder) error {
				b.LoadLayout(as.LayoutData)
				a.printf("Loaded %d placements over %d pages\n", len(b.Placements()), b.PageCount())
				return nil
			})
		},
	}
}

func (a *App) withPlacement(cmd *cobra.Command, uid string, fn func(b *builder.Builder, p domain.Placement) error) error {
	return a.mutate(cmd.Context(), func(b *builder.Builder) error {
		p, ok := b.Placement(uid)
		if !ok {
			return fmt.Errorf("placement %s not found", uid)
		}
		return fn(b, p)
	})
}

func parseInts(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, s := range args {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", s)
		}
		out[i] = n
	}
	return out, nil
}

func parseFloats(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, s := range args {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", s)
		}
		out[i] = f
	}
	return out, nil
}
