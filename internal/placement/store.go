/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package placement stores asset placements across all pages of a layout.
//
// Slice order is render order: later placements draw on top. Operations on
// unknown uids are no-ops. Not safe for concurrent use.
package placement

import (
	"github.com/google/uuid"

	"layoutstudio/internal/domain"
)

// NewUID returns a fresh placement id. Overridable in tests.
var NewUID = func() string { return uuid.NewString() }

// Store holds placements in insertion order.
type Store struct {
	items []domain.Placement
}

// New returns an empty store.
func New() *Store { return &Store{} }

// FromPlacements builds a store from persisted placements. Sizes below one
// cell are raised and missing uids are assigned.
func FromPlacements(in []domain.Placement) *Store {
	s := &Store{items: domain.ClonePlacements(in)}
	seen := make(map[string]bool, len(s.items))
	for i := range s.items {
		p := &s.items[i]
		if p.UID == "" || seen[p.UID] {
			p.UID = NewUID()
		}
		seen[p.UID] = true
		p.W, p.H = atLeastOne(p.W), atLeastOne(p.H)
	}
	return s
}

// Len returns the number of placements.
func (s *Store) Len() int { return len(s.items) }

// All returns a deep copy of every placement in render order.
func (s *Store) All() []domain.Placement { return domain.ClonePlacements(s.items) }

// Get returns the placement with uid.
func (s *Store) Get(uid string) (domain.Placement, bool) {
	if i := s.find(uid); i >= 0 {
		return s.items[i].Clone(), true
	}
	return domain.Placement{}, false
}

// Add creates a placement and returns its uid.
func (s *Store) Add(pageIndex int, ref domain.AssetRef, x, y, w, h int) string {
	p := domain.Placement{
		UID:       NewUID(),
		Asset:     ref.Clone(),
		PageIndex: pageIndex,
		X:         x,
		Y:         y,
		W:         atLeastOne(w),
		H:         atLeastOne(h),
	}
	s.items = append(s.items, p)
	return p.UID
}

// Remove deletes one placement.
func (s *Store) Remove(uid string) {
	if i := s.find(uid); i >= 0 {
		s.items = append(s.items[:i:i], s.items[i+1:]...)
	}
}

// MoveBy shifts a placement by whole cells. No clamping.
func (s *Store) MoveBy(uid string, dx, dy int) {
	if i := s.find(uid); i >= 0 {
		s.items[i].X += dx
		s.items[i].Y += dy
	}
}

// SetPosition places the top-left corner. No clamping.
func (s *Store) SetPosition(uid string, x, y int) {
	if i := s.find(uid); i >= 0 {
		s.items[i].X = x
		s.items[i].Y = y
	}
}

// ResizeTo sets the size, floored to one cell per dimension.
func (s *Store) ResizeTo(uid string, w, h int) {
	if i := s.find(uid); i >= 0 {
		s.items[i].W = atLeastOne(w)
		s.items[i].H = atLeastOne(h)
	}
}

// SetCaption sets the caption text and fills unset style fields.
func (s *Store) SetCaption(uid, text string) {
	i := s.find(uid)
	if i < 0 {
		return
	}
	p := &s.items[i]
	p.Caption = text
	if p.CaptionPosition == "" {
		p.CaptionPosition = domain.CaptionBottom
	}
	if p.CaptionAlign == "" {
		p.CaptionAlign = domain.AlignLeft
	}
	if p.CaptionSize == "" {
		p.CaptionSize = domain.CaptionXS
	}
}

// CaptionStyle updates caption styling. Empty or unknown values keep the current setting.
type CaptionStyle struct {
	Position domain.CaptionPosition
	Align    domain.CaptionAlign
	Size     domain.CaptionSize
}

// SetCaptionStyle applies the non-empty fields of st.
func (s *Store) SetCaptionStyle(uid string, st CaptionStyle) {
	i := s.find(uid)
	if i < 0 {
		return
	}
	p := &s.items[i]
	switch st.Position {
	case domain.CaptionTop, domain.CaptionBottom:
		p.CaptionPosition = st.Position
	}
	switch st.Align {
	case domain.AlignLeft, domain.AlignCenter, domain.AlignRight:
		p.CaptionAlign = st.Align
	}
	switch st.Size {
	case domain.CaptionXS, domain.CaptionSM, domain.CaptionBase:
		p.CaptionSize = st.Size
	}
}

// RemapPageIndices rewrites every page index through m. Placements whose
// page is absent from m are dropped along with that page.
func (s *Store) RemapPageIndices(m domain.IndexMap) {
	out := s.items[:0]
	for _, p := range s.items {
		to, ok := m[p.PageIndex]
		if !ok {
			continue
		}
		p.PageIndex = to
		out = append(out, p)
	}
	clear(s.items[len(out):])
	s.items = out
}

// DropPagesFrom removes placements on pages >= count.
func (s *Store) DropPagesFrom(count int) {
	out := s.items[:0]
	for _, p := range s.items {
		if p.PageIndex >= 0 && p.PageIndex < count {
			out = append(out, p)
		}
	}
	clear(s.items[len(out):])
	s.items = out
}

// ForPage returns copies of a page's placements in render order.
func (s *Store) ForPage(pageIndex int) []domain.Placement {
	var out []domain.Placement
	for _, p := range s.items {
		if p.PageIndex == pageIndex {
			out = append(out, p.Clone())
		}
	}
	return out
}

// MaxPageIndex returns the highest referenced page index, or -1 when empty.
func (s *Store) MaxPageIndex() int {
	m := -1
	for _, p := range s.items {
		if p.PageIndex > m {
			m = p.PageIndex
		}
	}
	return m
}

func (s *Store) find(uid string) int {
	for i := range s.items {
		if s.items[i].UID == uid {
			return i
		}
	}
	return -1
}

func atLeastOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
