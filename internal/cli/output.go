/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0
 */

package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"layoutstudio/internal/export"
)

func (a *App) newFlattenCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "flatten",
		Short: "Print the presentation sequence as JSON",
		Long:  "Print every non-hidden page in order with placements in paper pixels.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.open(cmd.Context()); err != nil {
				return err
			}
			data, err := json.MarshalIndent(a.b.Flatten(), "", "  ")
			if err != nil {
				return err
			}
			data = append(data, '\n')
			if output == "" {
				_, err = a.out.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			a.printf("Wrote %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}

func (a *App) newProofCmd() *cobra.Command {
	opt := export.ProofOptions{GridGuides: true, Labels: true}
	cmd := &cobra.Command{
		Use:   "proof <file.pdf>",
		Short: "Render the presentation sequence to a proof PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.open(cmd.Context()); err != nil {
				return err
			}
			if opt.Title == "" {
				_, opt.Title = a.b.ActiveAlternative()
			}
			flat := a.b.Flatten()
			if err := export.WriteProofFile(args[0], flat, opt); err != nil {
				return fmt.Errorf("proof: %w", err)
			}
			a.log.Info("proof written", slog.String("path", args[0]), slog.Int("pages", len(flat)))
			a.printf("Wrote %s (%d pages)\n", args[0], len(flat))
			return nil
		},
	}
	cmd.Flags().StringVar(&opt.Title, "title", "", "document title (default: alternative name)")
	cmd.Flags().BoolVar(&opt.GridGuides, "grid", true, "draw grid guides")
	cmd.Flags().BoolVar(&opt.Labels, "labels", true, "print page labels")
	return cmd
}
