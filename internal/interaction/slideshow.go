/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0
 */

package interaction

// Slideshow steps through the visible page sequence of a presentation.
type Slideshow struct {
	pages []int
	pos   int
}

// NewSlideshow starts at the first of the given visible page indices.
func NewSlideshow(visible []int) *Slideshow {
	return &Slideshow{pages: append([]int(nil), visible...)}
}

// Len returns the number of slides.
func (s *Slideshow) Len() int { return len(s.pages) }

// Position returns the current slide number, zero based.
func (s *Slideshow) Position() int { return s.pos }

// Current returns the page index on screen.
func (s *Slideshow) Current() (int, bool) {
	if len(s.pages) == 0 {
		return 0, false
	}
	return s.pages[s.pos], true
}

// Next advances one slide; it stops at the last slide.
func (s *Slideshow) Next() bool {
	if s.pos >= len(s.pages)-1 {
		return false
	}
	s.pos++
	return true
}

// Prev goes back one slide; it stops at the first slide.
func (s *Slideshow) Prev() bool {
	if s.pos == 0 {
		return false
	}
	s.pos--
	return true
}

// Key handles the viewer keys. It reports false for Escape, which closes the viewer.
func (s *Slideshow) Key(name string) bool {
	switch name {
	case "ArrowRight":
		s.Next()
	case "ArrowLeft":
		s.Prev()
	case "Escape":
		return false
	}
	return true
}
