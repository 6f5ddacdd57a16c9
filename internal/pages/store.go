/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package pages holds the ordered page metadata of a layout.
//
// All mutations are total: indices outside 0..Count()-1 and unknown enum
// values are ignored. The store is not safe for concurrent use; the builder
// owns it and mutates it from a single goroutine.
package pages

import (
	"fmt"
	"sort"
	"strings"

	"layoutstudio/internal/domain"
)

// Store is the ordered collection of page records.
type Store struct {
	recs []domain.PageRecord
}

// New returns a store with count default pages.
func New(count int) *Store {
	s := &Store{}
	s.Resize(count)
	return s
}

// FromRecords builds a store from persisted records. Missing or invalid
// fields are defaulted and indices are rewritten to match positions.
func FromRecords(recs []domain.PageRecord, count int) *Store {
	s := &Store{recs: make([]domain.PageRecord, 0, count)}
	for i, r := range recs {
		if i >= count {
			break
		}
		if !domain.ValidStatus(r.Status) {
			r.Status = domain.StatusActive
		}
		if !domain.ValidColor(r.ColorTheme) {
			r.ColorTheme = domain.ColorSlate
		}
		if !domain.ValidPaperSize(r.Size) {
			r.Size = domain.A3Landscape
		}
		if _, ok := domain.ParsePhase(string(r.AIPhase)); !ok {
			r.AIPhase = ""
		}
		s.recs = append(s.recs, r)
	}
	s.Resize(count)
	s.reindex()
	return s
}

// Count returns the number of pages.
func (s *Store) Count() int { return len(s.recs) }

// Records returns a copy of all records in order.
func (s *Store) Records() []domain.PageRecord { return domain.ClonePages(s.recs) }

// Get returns the record at index.
func (s *Store) Get(index int) (domain.PageRecord, bool) {
	if !s.valid(index) {
		return domain.PageRecord{}, false
	}
	return s.recs[index], true
}

// Size returns the paper size of a page; unknown pages report A3 landscape.
func (s *Store) Size(index int) domain.PaperSize {
	if !s.valid(index) {
		return domain.A3Landscape
	}
	return s.recs[index].Size
}

// Resize grows by appending default records or shrinks by truncating from the end.
// Negative counts are treated as zero.
func (s *Store) Resize(count int) {
	if count < 0 {
		count = 0
	}
	if count <= len(s.recs) {
		s.recs = s.recs[:count]
		return
	}
	for i := len(s.recs); i < count; i++ {
		s.recs = append(s.recs, domain.NewPageRecord(i))
	}
}

// SetStatus applies status to each valid index.
func (s *Store) SetStatus(indices []int, status domain.PageStatus) {
	if !domain.ValidStatus(status) {
		return
	}
	s.each(indices, func(r *domain.PageRecord) { r.Status = status })
}

// SetColor applies a color tag to each valid index.
func (s *Store) SetColor(indices []int, color domain.ColorTheme) {
	if !domain.ValidColor(color) {
		return
	}
	s.each(indices, func(r *domain.PageRecord) { r.ColorTheme = color })
}

// SetSize applies a paper size to each valid index.
func (s *Store) SetSize(indices []int, size domain.PaperSize) {
	if !domain.ValidPaperSize(size) {
		return
	}
	s.each(indices, func(r *domain.PageRecord) { r.Size = size })
}

// SetDescription replaces the free-text description of one page.
func (s *Store) SetDescription(index int, text string) {
	if s.valid(index) {
		s.recs[index].Description = text
	}
}

// SetAIPhase stores an externally computed phase. An empty phase clears it.
func (s *Store) SetAIPhase(index int, phase domain.Phase) {
	if !s.valid(index) {
		return
	}
	if phase != "" {
		if _, ok := domain.ParsePhase(string(phase)); !ok {
			return
		}
	}
	s.recs[index].AIPhase = phase
}

// FormattedNumber is the running page number shown on a page.
func (s *Store) FormattedNumber(index int) string {
	if !s.valid(index) {
		return pad(index + 1)
	}
	switch r := s.recs[index]; r.Status {
	case domain.StatusHidden:
		return "HIDDEN"
	case domain.StatusSkipCount:
		return skipLabel(r)
	}
	return pad(s.running(index))
}

// DisplayLabel is the caption shown under a page thumbnail.
func (s *Store) DisplayLabel(index int) string {
	r, ok := s.Get(index)
	switch {
	case ok && r.Status == domain.StatusSkipCount:
		return skipLabel(r)
	case ok && r.Status == domain.StatusHidden:
		return "HIDDEN"
	}
	if !ok {
		return fmt.Sprintf("Page %d", index+1)
	}
	return fmt.Sprintf("Page %d", s.running(index))
}

// running counts ACTIVE pages in 0..index. Recomputed on every call.
func (s *Store) running(index int) int {
	n := 0
	for i := 0; i <= index; i++ {
		if s.recs[i].Status == domain.StatusActive {
			n++
		}
	}
	return n
}

func skipLabel(r domain.PageRecord) string {
	if strings.TrimSpace(r.Description) != "" {
		return r.Description
	}
	return "ZERO"
}

func pad(n int) string { return fmt.Sprintf("%02d", n) }

// Reorder moves the record at from to position to and returns where every
// old index ended up. Invalid or equal indices return the identity map.
func (s *Store) Reorder(from, to int) domain.IndexMap {
	n := len(s.recs)
	m := domain.Identity(n)
	if !s.valid(from) || !s.valid(to) || from == to {
		return m
	}
	for i := 0; i < n; i++ {
		switch {
		case i == from:
			m[i] = to
		case from < to && i > from && i <= to:
			m[i] = i - 1
		case from > to && i >= to && i < from:
			m[i] = i + 1
		}
	}
	moved := s.recs[from]
	rest := append(s.recs[:from:from], s.recs[from+1:]...)
	out := make([]domain.PageRecord, 0, n)
	out = append(out, rest[:to]...)
	out = append(out, moved)
	out = append(out, rest[to:]...)
	s.recs = out
	s.reindex()
	return m
}

// Remove deletes the given pages and returns the map of surviving indices.
// Removed indices are absent from the map.
func (s *Store) Remove(indices []int) domain.IndexMap {
	drop := make(map[int]bool, len(indices))
	for _, i := range indices {
		if s.valid(i) {
			drop[i] = true
		}
	}
	m := make(domain.IndexMap, len(s.recs))
	out := make([]domain.PageRecord, 0, len(s.recs))
	for i, r := range s.recs {
		if drop[i] {
			continue
		}
		m[i] = len(out)
		out = append(out, r)
	}
	s.recs = out
	s.reindex()
	return m
}

// VisibleIndices lists non-hidden pages in order.
func (s *Store) VisibleIndices() []int {
	out := make([]int, 0, len(s.recs))
	for i, r := range s.recs {
		if r.Status != domain.StatusHidden {
			out = append(out, i)
		}
	}
	return out
}

// ValidIndices filters and sorts indices that refer to existing pages, dropping duplicates.
func (s *Store) ValidIndices(indices []int) []int {
	seen := make(map[int]bool, len(indices))
	out := make([]int, 0, len(indices))
	for _, i := range indices {
		if s.valid(i) && !seen[i] {
			seen[i] = true
			out = append(out, i)
		}
	}
	sort.Ints(out)
	return out
}

func (s *Store) each(indices []int, fn func(*domain.PageRecord)) {
	for _, i := range indices {
		if s.valid(i) {
			fn(&s.recs[i])
		}
	}
}

func (s *Store) valid(i int) bool { return i >= 0 && i < len(s.recs) }

func (s *Store) reindex() {
	for i := range s.recs {
		s.recs[i].Index = i
	}
}
