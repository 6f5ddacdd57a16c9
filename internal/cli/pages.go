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

	"layoutstudio/internal/builder"
	"layoutstudio/internal/domain"
	"layoutstudio/internal/pages"
)

func (a *App) newInitCmd() *cobra.Command {
	var count int
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a new layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := a.open(ctx); err != nil {
				return err
			}
			if !force && len(a.b.Placements()) > 0 {
				return fmt.Errorf("layout %q already has placements; use --force to replace it", a.key)
			}
			opts := a.builderOptions()
			if count > 0 {
				opts.InitialPages = count
			}
			a.b = builder.New(opts)
			if err := a.save(ctx); err != nil {
				return err
			}
			a.printf("Created layout %q with %d pages\n", a.key, a.b.PageCount())
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "pages", "n", 0, "initial page count (default from config)")
	cmd.Flags().BoolVar(&force, "force", false, "replace an existing layout")
	return cmd
}

func (a *App) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print pages, phases and alternatives",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.open(cmd.Context()); err != nil {
				return err
			}
			a.show()
			return nil
		},
	}
}

func (a *App) show() {
	b := a.b
	id, name := b.ActiveAlternative()
	a.printf("Layout %q, alternative %s (%s), %d pages\n\n", a.key, name, id, b.PageCount())

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "IDX\tNO\tSTATUS\tSIZE\tCOLOR\tPHASE\tITEMS\tDESCRIPTION")
	for _, r := range b.Pages() {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			r.Index, b.FormattedNumber(r.Index), r.Status, r.Size, r.ColorTheme,
			pages.PhaseLabel(b.ClassifyPhase(r.Index)), len(b.PagePlacements(r.Index)), r.Description)
	}
	_ = tw.Flush()

	bal := b.PhaseBalance()
	if bal.Total > 0 {
		var parts []string
		for _, p := range domain.Phases {
			if n := bal.Counts[p]; n > 0 {
				parts = append(parts, fmt.Sprintf("%s %.0f%%", pages.PhaseLabel(p), bal.Share(p)*100))
			}
		}
		a.printf("\nFlow: %s\n", strings.Join(parts, ", "))
	}
}

func (a *App) newPagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pages",
		Short: "Edit page metadata and order",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add",
			Short: "Append a page",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.mutate(cmd.Context(), func(b *builder.Builder) error {
					a.printf("Added page %d\n", b.AddPage())
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "resize <count>",
			Short: "Set the page count; shrinking drops placements on removed pages",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := parseIndex(args[0])
				if err != nil {
					return err
				}
				return a.mutate(cmd.Context(), func(b *builder.Builder) error {
					b.ResizePages(n)
					a.printf("Layout has %d pages\n", b.PageCount())
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "remove <index>...",
			Short: "Remove pages and their placements",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				idx, err := parseIndices(args)
				if err != nil {
					return err
				}
				return a.mutate(cmd.Context(), func(b *builder.Builder) error {
					before := b.PageCount()
					b.RemovePages(idx)
					if b.PageCount() == before {
						return fmt.Errorf("nothing removed: indices out of range or every page selected")
					}
					a.printf("Layout has %d pages\n", b.PageCount())
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "move <from> <to>",
			Short: "Move a page to a new position",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				idx, err := parseIndices(args)
				if err != nil {
					return err
				}
				return a.mutate(cmd.Context(), func(b *builder.Builder) error {
					b.ReorderPages(idx[0], idx[1])
					return nil
				})
			},
		},
		a.newSetCmd("status <ACTIVE|SKIP_COUNT|HIDDEN> <index>...", "Set page status", func(b *builder.Builder, v string, idx []int) error {
			s := domain.PageStatus(strings.ToUpper(v))
			if !domain.ValidStatus(s) {
				return fmt.Errorf("unknown status %q", v)
			}
			b.SetStatus(idx, s)
			return nil
		}),
		a.newSetCmd("color <slate|blue|rose|amber|emerald> <index>...", "Set page color theme", func(b *builder.Builder, v string, idx []int) error {
			c := domain.ColorTheme(strings.ToLower(v))
			if !domain.ValidColor(c) {
				return fmt.Errorf("unknown color %q", v)
			}
			b.SetColor(idx, c)
			return nil
		}),
		a.newSetCmd("size <A3_LANDSCAPE|A4_PORTRAIT> <index>...", "Set page paper size", func(b *builder.Builder, v string, idx []int) error {
			s := domain.PaperSize(strings.ToUpper(v))
			if !domain.ValidPaperSize(s) {
				return fmt.Errorf("unknown paper size %q", v)
			}
			b.SetPaperSize(idx, s)
			return nil
		}),
		&cobra.Command{
			Use:   "describe <index> <text>",
			Short: "Set a page description",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				i, err := parseIndex(args[0])
				if err != nil {
					return err
				}
				return a.mutate(cmd.Context(), func(b *builder.Builder) error {
					if _, ok := b.Page(i); !ok {
						return fmt.Errorf("page %d does not exist", i)
					}
					b.SetDescription(i, strings.Join(args[1:], " "))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "phase <index> <phase>",
			Short: "Override the narrative phase of a page",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				i, err := parseIndex(args[0])
				if err != nil {
					return err
				}
				p, ok := domain.ParsePhase(strings.ToLower(args[1]))
				if !ok {
					return fmt.Errorf("unknown phase %q", args[1])
				}
				return a.mutate(cmd.Context(), func(b *builder.Builder) error {
					b.SetAIPhase(i, p)
					return nil
				})
			},
		},
	)
	return cmd
}

// newSetCmd builds "<verb> <value> <index>..." commands.
func (a *App) newSetCmd(use, short string, apply func(b *builder.Builder, value string, idx []int) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseIndices(args[1:])
			if err != nil {
				return err
			}
			return a.mutate(cmd.Context(), func(b *builder.Builder) error {
				return apply(b, args[0], idx)
			})
		},
	}
}
