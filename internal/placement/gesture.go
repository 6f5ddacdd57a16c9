/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0
 */

package placement

import (
	"layoutstudio/internal/domain"
	"layoutstudio/internal/grid"
	"layoutstudio/internal/vector"
)

// Mode selects what a drag gesture changes.
type Mode int

const (
	Move Mode = iota + 1
	Resize
)

func (m Mode) String() string {
	switch m {
	case Move:
		return "MOVE"
	case Resize:
		return "RESIZE"
	}
	return "NONE"
}

// Gesture is the snapshot taken at pointer-down. Every frame is computed
// from this snapshot, never from the previous frame.
type Gesture struct {
	UID   string
	Mode  Mode
	Start vector.Pt
	Size  domain.PaperSize
	Scale float64 // view scale of the canvas, pixels on screen per paper pixel

	X, Y, W, H int
}

// Begin snapshots p for a gesture starting at pointer position start.
// A non-positive scale is treated as 1.
func Begin(p domain.Placement, mode Mode, start vector.Pt, size domain.PaperSize, scale float64) Gesture {
	if scale <= 0 {
		scale = 1
	}
	return Gesture{UID: p.UID, Mode: mode, Start: start, Size: size, Scale: scale, X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// cells converts a screen pixel delta into fractional grid cells.
func (g Gesture) cells(d float64) float64 {
	return d / g.Scale / grid.For(g.Size).CellSize
}

// At returns the geometry for the pointer at pt. Move keeps the size,
// resize keeps the position and floors each dimension at one cell.
func (g Gesture) At(pt vector.Pt) (x, y, w, h int) {
	d := pt.Sub(g.Start)
	x, y, w, h = g.X, g.Y, g.W, g.H
	switch g.Mode {
	case Move:
		x = int(vector.RoundHalfUp(float64(g.X) + g.cells(d.X)))
		y = int(vector.RoundHalfUp(float64(g.Y) + g.cells(d.Y)))
	case Resize:
		w = atLeastOne(int(vector.RoundHalfUp(float64(g.W) + g.cells(d.X))))
		h = atLeastOne(int(vector.RoundHalfUp(float64(g.H) + g.cells(d.Y))))
	}
	return x, y, w, h
}

// Apply writes the geometry for pt into the store.
func (g Gesture) Apply(s *Store, pt vector.Pt) {
	x, y, w, h := g.At(pt)
	switch g.Mode {
	case Move:
		s.SetPosition(g.UID, x, y)
	case Resize:
		s.ResizeTo(g.UID, w, h)
	}
}
