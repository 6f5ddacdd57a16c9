/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0
 */

package interaction

import (
	"math"
	"testing"

	"layoutstudio/internal/domain"
	"layoutstudio/internal/grid"
)

func TestWheelZoomClamps(t *testing.T) {
	if z := WheelZoom(1.5, -1); z != MaxGridZoom {
		t.Fatalf("zoom in past max got %v", z)
	}
	if z := WheelZoom(0.1, 1); z != MinGridZoom {
		t.Fatalf("zoom out past min got %v", z)
	}
	if z := WheelZoom(1, 1); math.Abs(z-0.9) > 1e-9 {
		t.Fatalf("zoom out step got %v want 0.9", z)
	}
}

func TestLayoutThumbnailsWraps(t *testing.T) {
	a3 := grid.For(domain.A3Landscape)
	w := a3.PixelWidth * ThumbnailScale(1) // 168.3
	f := Flow{Width: w*2 + 48 + 10, Gap: 48, Padding: 0}
	th := LayoutThumbnails([]domain.PaperSize{domain.A3Landscape, domain.A3Landscape, domain.A4Portrait}, 1, f)
	if len(th) != 3 {
		t.Fatalf("got %d thumbs", len(th))
	}
	if th[0].Bounds.Y != th[1].Bounds.Y || th[2].Bounds.Y <= th[0].Bounds.Y {
		t.Fatalf("unexpected rows: %+v", th)
	}
	if math.Abs(th[0].Bounds.W-w) > 1e-9 {
		t.Fatalf("thumb width got %v want %v", th[0].Bounds.W, w)
	}
	if math.Abs(th[0].Bounds.X-5) > 1e-9 {
		t.Fatalf("first row not centred: x=%v", th[0].Bounds.X)
	}
	if gap := th[1].Bounds.X - (th[0].Bounds.X + w); math.Abs(gap-48) > 1e-9 {
		t.Fatalf("gap got %v want 48", gap)
	}
	if th[2].PageIndex != 2 || th[2].Bounds.H <= th[2].Bounds.W {
		t.Fatalf("A4 thumb should be portrait: %+v", th[2])
	}
}

func TestSlideshow(t *testing.T) {
	s := NewSlideshow([]int{0, 2, 3})
	if p, _ := s.Current(); p != 0 {
		t.Fatalf("start got %d", p)
	}
	s.Key("ArrowRight")
	s.Key("ArrowRight")
	s.Key("ArrowRight")
	if p, _ := s.Current(); p != 3 || s.Position() != 2 {
		t.Fatalf("end got page %d pos %d", p, s.Position())
	}
	if s.Prev(); s.Position() != 1 {
		t.Fatalf("prev got %d", s.Position())
	}
	if s.Key("Escape") {
		t.Fatalf("escape should close the viewer")
	}
	if _, ok := NewSlideshow(nil).Current(); ok {
		t.Fatalf("empty slideshow has no current slide")
	}
}
