/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0
 */

package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"layoutstudio/internal/builder"
)

func (a *App) newAltCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "alt",
		Aliases: []string{"alternatives"},
		Short:   "Manage layout alternatives",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List alternatives; the active one is marked with *",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if err := a.open(cmd.Context()); err != nil {
					return err
				}
				active, _ := a.b.ActiveAlternative()
				tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
				_, _ = fmt.Fprintln(tw, " \tID\tNAME\tPAGES\tITEMS\tCREATED")
				for _, alt := range a.b.Alternatives() {
					mark := " "
					if alt.ID == active {
						mark = "*"
					}
					created := time.UnixMilli(alt.CreatedAt).Format("2006-01-02 15:04")
					_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n", mark, alt.ID, alt.Name, alt.State.PageCount, len(alt.State.Placements), created)
				}
				return tw.Flush()
			},
		},
		&cobra.Command{
			Use:   "branch [source-id]",
			Short: "Copy an alternative (default: the active one) and switch to the copy",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.mutate(cmd.Context(), func(b *builder.Builder) error {
					src, _ := b.ActiveAlternative()
					if len(args) == 1 {
						src = args[0]
					}
					id, ok := b.BranchAlternative(src)
					if !ok {
						return fmt.Errorf("alternative %q not found", src)
					}
					_, name := b.ActiveAlternative()
					a.printf("%s\t%s\n", id, name)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "switch <id>",
			Short: "Make an alternative active",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.mutate(cmd.Context(), func(b *builder.Builder) error {
					if !b.SwitchAlternative(args[0]) {
						return fmt.Errorf("alternative %q not found", args[0])
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "rename <id> <name>",
			Short: "Rename an alternative",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.mutate(cmd.Context(), func(b *builder.Builder) error {
					if !b.RenameAlternative(args[0], strings.Join(args[1:], " ")) {
						return fmt.Errorf("cannot rename %q", args[0])
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete an alternative",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.mutate(cmd.Context(), func(b *builder.Builder) error {
					return b.DeleteAlternative(args[0])
				})
			},
		},
	)
	return cmd
}
