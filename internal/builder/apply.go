/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0
 */

package builder

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"layoutstudio/internal/domain"
	"layoutstudio/internal/placement"
)

// External actors only propose values. Everything below goes through the
// same store setters as a user edit.

// ApplyDescriptionSuggestion replaces a page description.
func (b *Builder) ApplyDescriptionSuggestion(page int, text string) {
	b.SetDescription(page, strings.TrimSpace(text))
}

// ApplyCaptionSuggestion sets a placement caption.
func (b *Builder) ApplyCaptionSuggestion(uid, text string) {
	b.SetCaption(uid, strings.TrimSpace(text))
}

// PhaseRequests are the pages worth classifying: ACTIVE with a description.
func (b *Builder) PhaseRequests() []domain.PageText {
	var out []domain.PageText
	for _, r := range b.pages.Records() {
		if r.Status == domain.StatusActive && strings.TrimSpace(r.Description) != "" {
			out = append(out, domain.PageText{PageIndex: r.Index, Text: r.Description})
		}
	}
	return out
}

// ApplyPhaseClassifications stores proposed phases. Unknown phases and
// missing pages are skipped. It returns the number applied.
func (b *Builder) ApplyPhaseClassifications(in []domain.PhaseAssignment) int {
	n := 0
	for _, c := range in {
		p, ok := domain.ParsePhase(strings.ToLower(strings.TrimSpace(c.Phase)))
		if !ok {
			continue
		}
		if _, exists := b.pages.Get(c.PageIndex); !exists {
			continue
		}
		b.pages.SetAIPhase(c.PageIndex, p)
		n++
	}
	if n > 0 {
		b.sync()
	}
	if n < len(in) {
		b.log.Debug("skipped classifications", slog.Int("applied", n), slog.Int("received", len(in)))
	}
	return n
}

// NarrativeOutline lists page descriptions in the "N. text" form sent for
// narrative analysis. Empty descriptions read "Untitled Page".
func (b *Builder) NarrativeOutline() []string {
	recs := b.pages.Records()
	out := make([]string, len(recs))
	for i, r := range recs {
		label := r.Description
		if strings.TrimSpace(label) == "" {
			label = "Untitled Page"
		}
		out[i] = strconv.Itoa(i+1) + ". " + label
	}
	return out
}

var sequencePrefix = regexp.MustCompile(`^\d+\.\s*`)

// ApplyNarrativeProposal creates an "AI Proposal" alternative whose page
// descriptions follow sequence, copying the current placements, and makes
// it active. Pages are added when the sequence is longer than the layout.
func (b *Builder) ApplyNarrativeProposal(sequence []string) string {
	if len(sequence) == 0 {
		return ""
	}
	b.sync()
	st := b.state()
	count := max(st.PageCount, len(sequence))
	for i := len(st.Pages); i < count; i++ {
		st.Pages = append(st.Pages, domain.NewPageRecord(i))
	}
	for i, item := range sequence {
		st.Pages[i].Description = sequencePrefix.ReplaceAllString(item, "")
	}
	st.PageCount = count

	id := b.alts.AddProposal(st)
	b.load(st)
	b.sync()
	b.log.InfoContext(altCtx(id), "narrative proposal applied", slog.Int("pages", count))
	return id
}

// LoadLayout replaces all placements with a saved mockup layout. The page
// count becomes one past the highest referenced page.
func (b *Builder) LoadLayout(layout []domain.Placement) {
	if len(layout) == 0 {
		return
	}
	parts := make([]domain.Placement, 0, len(layout))
	top := 0
	for _, p := range layout {
		if p.PageIndex < 0 {
			continue
		}
		parts = append(parts, p)
		top = max(top, p.PageIndex)
	}
	if len(parts) == 0 {
		return
	}
	b.pages.Resize(top + 1)
	b.parts = placement.FromPlacements(parts)
	b.sync()
}
