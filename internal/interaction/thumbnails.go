/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0
 */

package interaction

import (
	"math"

	"layoutstudio/internal/domain"
	"layoutstudio/internal/grid"
	"layoutstudio/internal/vector"
)

// Grid overview zoom limits.
const (
	ThumbnailBaseScale = 0.15
	MinGridZoom        = 0.1
	MaxGridZoom        = 1.5
	DefaultGridZoom    = 0.4
)

// Thumb is the on-screen box of one page in the grid overview, in content coordinates.
type Thumb struct {
	PageIndex int
	Bounds    vector.Rect
}

// ClampZoom keeps z within the grid overview limits.
func ClampZoom(z float64) float64 { return math.Min(math.Max(z, MinGridZoom), MaxGridZoom) }

// WheelZoom applies one wheel step: scrolling down zooms out by 10%, up zooms in by 10%.
func WheelZoom(z, deltaY float64) float64 {
	if deltaY > 0 {
		return ClampZoom(z * 0.9)
	}
	return ClampZoom(z * 1.1)
}

// ThumbnailScale is the paper-to-screen scale of thumbnails at zoom z.
func ThumbnailScale(z float64) float64 { return ThumbnailBaseScale * z }

// Flow describes the wrapping container of the grid overview.
type Flow struct {
	Width   float64 // inner width available for thumbnails
	Gap     float64 // spacing between thumbnails and rows
	Padding float64 // offset of the first row from the content origin
}

// DefaultFlow matches the overview container of the studio app.
func DefaultFlow(width float64) Flow { return Flow{Width: width, Gap: 48, Padding: 48} }

// LayoutThumbnails wraps page boxes into centred rows, in page order.
func LayoutThumbnails(sizes []domain.PaperSize, zoom float64, f Flow) []Thumb {
	scale := ThumbnailScale(ClampZoom(zoom))
	out := make([]Thumb, 0, len(sizes))
	y := f.Padding
	row := make([]Thumb, 0, 8)
	rowW, rowH := 0.0, 0.0

	flush := func() {
		off := f.Padding + math.Max(0, (f.Width-rowW)/2)
		for _, t := range row {
			t.Bounds.X += off
			t.Bounds.Y = y
			out = append(out, t)
		}
		y += rowH + f.Gap
		row, rowW, rowH = row[:0], 0, 0
	}

	for i, size := range sizes {
		s := grid.For(size)
		w, h := s.PixelWidth*scale, s.PixelHeight*scale
		x := rowW
		if len(row) > 0 {
			x += f.Gap
		}
		if len(row) > 0 && x+w > f.Width {
			flush()
			x = 0
		}
		row = append(row, Thumb{PageIndex: i, Bounds: vector.R(x, 0, w, h)})
		rowW = x + w
		rowH = math.Max(rowH, h)
	}
	if len(row) > 0 {
		flush()
	}
	return out
}
