/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0
 */

package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"layoutstudio/internal/builder"
	"layoutstudio/internal/storage"
)

func (a *App) historian(cmd *cobra.Command) (storage.Historian, error) {
	if err := a.open(cmd.Context()); err != nil {
		return nil, err
	}
	h, ok := a.store.(storage.Historian)
	if !ok {
		return nil, errors.New("storage driver keeps no history")
	}
	return h, nil
}

func (a *App) newHistoryCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List earlier saved versions of the layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := a.historian(cmd)
			if err != nil {
				return err
			}
			snaps, err := h.History(cmd.Context(), a.key, limit)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "N\tSAVED\tALTERNATIVES\tSTATUS")
			for i, s := range snaps {
				doc, err := storage.Decode(s.Data)
				if err != nil {
					_, _ = fmt.Fprintf(tw, "%d\t%s\t-\tunreadable\n", i, s.TS.Format("2006-01-02 15:04:05"))
					continue
				}
				_, _ = fmt.Fprintf(tw, "%d\t%s\t%d\tok\n", i, s.TS.Format("2006-01-02 15:04:05"), len(doc.Alternatives))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "number of versions to list")

	restore := &cobra.Command{
		Use:   "restore <n>",
		Short: "Restore the n-th most recent saved version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			h, err := a.historian(cmd)
			if err != nil {
				return err
			}
			snaps, err := h.History(cmd.Context(), a.key, n+1)
			if err != nil {
				return err
			}
			if n < 0 || n >= len(snaps) {
				return fmt.Errorf("no saved version %d", n)
			}
			doc, err := storage.Decode(snaps[n].Data)
			if err != nil {
				return err
			}
			a.b = builder.Restore(doc, a.builderOptions())
			if err := a.save(cmd.Context()); err != nil {
				return err
			}
			a.printf("Restored version from %s\n", snaps[n].TS.Format("2006-01-02 15:04:05"))
			return nil
		},
	}
	cmd.AddCommand(restore)
	return cmd
}
