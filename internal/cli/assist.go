/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0
 */

package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"layoutstudio/internal/ai"
	"layoutstudio/internal/builder"
	"layoutstudio/internal/domain"
)

func (a *App) suggester() (*ai.Suggester, error) {
	c, err := ai.NewClient(a.cfg.AISettings(a.apiKey))
	if err != nil {
		return nil, err
	}
	return ai.NewSuggester(c, a.cfg.AITimeout()), nil
}

func (a *App) newClassifyCmd() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Ask the assistant for the narrative phase of each described page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.suggester()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			return a.mutate(ctx, func(b *builder.Builder) error {
				got, err := s.ClassifyPhases(ctx, b.PhaseRequests())
				if err != nil {
					return err
				}
				for _, c := range got {
					a.printf("%d\t%s\n", c.PageIndex, c.Phase)
				}
				if dryRun {
					return nil
				}
				n := b.ApplyPhaseClassifications(got)
				a.printf("Applied %d of %d classifications\n", n, len(got))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print proposals without applying them")
	return cmd
}

func (a *App) newCaptionCmd() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "suggest-caption <uid>",
		Short: "Ask the assistant to write or restyle a placement caption",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.suggester()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			return a.withPlacement(cmd, args[0], func(b *builder.Builder, p domain.Placement) error {
				page, _ := b.Page(p.PageIndex)
				text, err := s.Caption(ctx, ai.CaptionRequest{
					ReferenceTitle:       p.Asset.Title,
					ReferenceDescription: p.Asset.Description,
					Draft:                p.Caption,
					Category:             p.Asset.Category,
					Tags:                 p.Asset.Tags,
					PageDescription:      page.Description,
				})
				if err != nil {
					return err
				}
				a.printf("%s\n", text)
				if !dryRun {
					b.ApplyCaptionSuggestion(p.UID, text)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the caption without applying it")
	return cmd
}

func (a *App) newNarrativeCmd() *cobra.Command {
	var kind string
	var apply bool
	cmd := &cobra.Command{
		Use:   "narrative",
		Short: "Review the page sequence and optionally apply the proposed order",
		Long: `Sends the page outline to the assistant for a storytelling review. With --apply
the proposed sequence becomes a new "AI Proposal" alternative; the current
alternative is left unchanged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.suggester()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			return a.mutate(ctx, func(b *builder.Builder) error {
				res, err := s.AnalyzeNarrative(ctx, b.NarrativeOutline(), ai.ProjectKind(strings.ToLower(kind)))
				if err != nil {
					return err
				}
				a.printf("Score: %d\n", res.Score)
				if res.Evaluation != "" {
					a.printf("%s\n", res.Evaluation)
				}
				if res.MissingSuggestion != "" {
					a.printf("Missing: %s\n", res.MissingSuggestion)
				}
				for _, item := range res.BetterSequence {
					a.printf("  %s\n", item)
				}
				if !apply {
					return nil
				}
				if len(res.BetterSequence) == 0 {
					return fmt.Errorf("narrative: no sequence proposed")
				}
				id := b.ApplyNarrativeProposal(res.BetterSequence)
				a.log.Info("narrative applied", slog.String("alternative", id))
				a.printf("Created alternative %s\n", id)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&kind, "kind", string(ai.KindPublic), "project kind: public or business")
	cmd.Flags().BoolVar(&apply, "apply", false, "apply the proposed sequence as a new alternative")
	return cmd
}
