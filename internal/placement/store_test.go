/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package placement

import (
	"testing"

	"layoutstudio/internal/domain"
)

var ref = domain.AssetRef{ID: "a1", Title: "Site diagram", Tags: []string{"site"}}

func TestAddAssignsUniqueIDs(t *testing.T) {
	s := New()
	a := s.Add(0, ref, 1, 2, 3, 4)
	b := s.Add(0, ref, 0, 0, 0, -2)
	if a == "" || a == b {
		t.Fatalf("expected distinct uids, got %q %q", a, b)
	}
	p, ok := s.Get(b)
	if !ok || p.W != 1 || p.H != 1 {
		t.Fatalf("size not floored: %+v", p)
	}
	s.Remove(a)
	s.Remove("missing")
	if s.Len() != 1 {
		t.Fatalf("len got %d want 1", s.Len())
	}
}

func TestAddCopiesAssetRef(t *testing.T) {
	s := New()
	r := ref.Clone()
	uid := s.Add(0, r, 0, 0, 2, 2)
	r.Tags[0] = "mutated"
	p, _ := s.Get(uid)
	if p.Asset.Tags[0] != "site" {
		t.Fatalf("store shares asset tags with caller")
	}
}

func TestMoveAndResize(t *testing.T) {
	s := New()
	uid := s.Add(0, ref, 5, 5, 4, 4)
	s.MoveBy(uid, -8, 2)
	s.ResizeTo(uid, 0, -5)
	p, _ := s.Get(uid)
	if p.X != -3 || p.Y != 7 {
		t.Fatalf("MoveBy must not clamp: got (%d,%d)", p.X, p.Y)
	}
	if p.W != 1 || p.H != 1 {
		t.Fatalf("ResizeTo got %dx%d want 1x1", p.W, p.H)
	}
	s.SetPosition(uid, 2, 3)
	s.SetPosition("nope", 9, 9)
	if p, _ := s.Get(uid); p.X != 2 || p.Y != 3 {
		t.Fatalf("SetPosition got (%d,%d)", p.X, p.Y)
	}
}

func TestCaptionDefaults(t *testing.T) {
	s := New()
	uid := s.Add(0, ref, 0, 0, 2, 2)
	s.SetCaption(uid, "Massing study")
	p, _ := s.Get(uid)
	if p.Caption != "Massing study" || p.CaptionPosition != domain.CaptionBottom || p.CaptionAlign != domain.AlignLeft || p.CaptionSize != domain.CaptionXS {
		t.Fatalf("unexpected caption: %+v", p)
	}
	s.SetCaptionStyle(uid, CaptionStyle{Position: domain.CaptionTop, Align: "justify"})
	p, _ = s.Get(uid)
	if p.CaptionPosition != domain.CaptionTop || p.CaptionAlign != domain.AlignLeft {
		t.Fatalf("unexpected style: %+v", p)
	}
}

func TestRemapPageIndicesCascades(t *testing.T) {
	s := New()
	a := s.Add(0, ref, 0, 0, 1, 1)
	b := s.Add(1, ref, 0, 0, 1, 1)
	c := s.Add(2, ref, 0, 0, 1, 1)
	s.RemapPageIndices(domain.IndexMap{0: 1, 2: 0})
	if _, ok := s.Get(b); ok {
		t.Fatalf("placement on removed page survived")
	}
	if p, _ := s.Get(a); p.PageIndex != 1 {
		t.Fatalf("a got page %d want 1", p.PageIndex)
	}
	if p, _ := s.Get(c); p.PageIndex != 0 {
		t.Fatalf("c got page %d want 0", p.PageIndex)
	}
}

func TestDropPagesFromAndForPage(t *testing.T) {
	s := New()
	first := s.Add(0, ref, 0, 0, 1, 1)
	second := s.Add(0, ref, 1, 1, 1, 1)
	s.Add(3, ref, 0, 0, 1, 1)
	if s.MaxPageIndex() != 3 {
		t.Fatalf("max page got %d want 3", s.MaxPageIndex())
	}
	s.DropPagesFrom(2)
	if s.Len() != 2 {
		t.Fatalf("len got %d want 2", s.Len())
	}
	got := s.ForPage(0)
	if len(got) != 2 || got[0].UID != first || got[1].UID != second {
		t.Fatalf("ForPage must keep insertion order: %+v", got)
	}
	if New().MaxPageIndex() != -1 {
		t.Fatalf("empty store max page should be -1")
	}
}

func TestFromPlacementsRepairs(t *testing.T) {
	s := FromPlacements([]domain.Placement{
		{UID: "x", W: 0, H: 3},
		{UID: "x", W: 2, H: 2},
		{W: 1, H: 1},
	})
	all := s.All()
	if all[0].W != 1 || all[0].UID != "x" {
		t.Fatalf("first not repaired: %+v", all[0])
	}
	if all[1].UID == "x" || all[2].UID == "" {
		t.Fatalf("duplicate or empty uids kept: %+v", all)
	}
}
