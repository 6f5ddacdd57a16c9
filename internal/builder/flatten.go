/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0
 */

package builder

import (
	"layoutstudio/internal/domain"
	"layoutstudio/internal/grid"
)

// Flatten returns every non-hidden page in order with placement rectangles
// converted to paper pixels. Placements keep render order.
func (b *Builder) Flatten() []domain.FlatPage {
	visible := b.pages.VisibleIndices()
	out := make([]domain.FlatPage, 0, len(visible))
	for _, i := range visible {
		r, _ := b.pages.Get(i)
		spec := grid.For(r.Size)
		fp := domain.FlatPage{
			PageIndex:   i,
			Number:      b.pages.FormattedNumber(i),
			Label:       b.pages.DisplayLabel(i),
			Description: r.Description,
			Status:      r.Status,
			Size:        spec.Size,
			Width:       spec.PixelWidth,
			Height:      spec.PixelHeight,
			Placements:  []domain.FlatPlacement{},
		}
		for _, p := range b.parts.ForPage(i) {
			rect := grid.CellRect(p.X, p.Y, p.W, p.H, r.Size)
			fp.Placements = append(fp.Placements, domain.FlatPlacement{
				UID:             p.UID,
				Asset:           p.Asset,
				X:               rect.X,
				Y:               rect.Y,
				W:               rect.W,
				H:               rect.H,
				Caption:         p.Caption,
				CaptionPosition: p.CaptionPosition,
				CaptionAlign:    p.CaptionAlign,
				CaptionSize:     p.CaptionSize,
			})
		}
		out = append(out, fp)
	}
	return out
}
