/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package interaction

import (
	"testing"

	"layoutstudio/internal/domain"
	"layoutstudio/internal/grid"
	"layoutstudio/internal/pages"
	"layoutstudio/internal/placement"
	"layoutstudio/internal/vector"
)

// editor wires the two stores directly, the way the builder does minus syncing.
type editor struct {
	pages *pages.Store
	parts *placement.Store
	moves int
}

func newEditor(n int) *editor { return &editor{pages: pages.New(n), parts: placement.New()} }

func (e *editor) Placement(uid string) (domain.Placement, bool) { return e.parts.Get(uid) }
func (e *editor) PageSize(i int) domain.PaperSize                { return e.pages.Size(i) }
func (e *editor) PageCount() int                                 { return e.pages.Count() }
func (e *editor) SetPlacementPosition(uid string, x, y int) {
	e.moves++
	e.parts.SetPosition(uid, x, y)
}
func (e *editor) ResizePlacement(uid string, w, h int) { e.parts.ResizeTo(uid, w, h) }
func (e *editor) AddPlacement(i int, ref domain.AssetRef, x, y, w, h int) string {
	return e.parts.Add(i, ref, x, y, w, h)
}
func (e *editor) ReorderPages(from, to int) domain.IndexMap {
	m := e.pages.Reorder(from, to)
	e.parts.RemapPageIndices(m)
	return m
}

func unitScale() Options { return Options{EditScale: 1, DropWidth: 12, DropHeight: 10} }

func TestDragMoveCommitsAndClamps(t *testing.T) {
	ed := newEditor(1)
	uid := ed.parts.Add(0, domain.AssetRef{ID: "a"}, 5, 5, 12, 10)
	c := New(ed, unitScale())
	cell := grid.For(domain.A3Landscape).CellSize

	if !c.PointerDownPlacement(uid, placement.Move, vector.Pt{}) || c.State() != Dragging {
		t.Fatalf("expected dragging state")
	}
	if c.PointerDownPlacement(uid, placement.Resize, vector.Pt{}) {
		t.Fatalf("second gesture must be rejected while dragging")
	}
	c.PointerMove(vector.Pt{X: cell * 3.4, Y: cell * 0.4})
	if p, _ := ed.parts.Get(uid); p.X != 8 || p.Y != 5 {
		t.Fatalf("live position got (%d,%d) want (8,5)", p.X, p.Y)
	}
	// Far outside the page; live drag may overflow, release clamps.
	c.PointerMove(vector.Pt{X: cell * 100, Y: -cell * 20})
	if p, _ := ed.parts.Get(uid); p.X != 105 || p.Y != -15 {
		t.Fatalf("live overflow got (%d,%d)", p.X, p.Y)
	}
	c.PointerUp(vector.Pt{X: cell * 100, Y: -cell * 20})
	p, _ := ed.parts.Get(uid)
	if p.X != 48-12 || p.Y != 0 {
		t.Fatalf("released got (%d,%d) want (36,0)", p.X, p.Y)
	}
	if c.State() != Idle {
		t.Fatalf("state got %v want idle", c.State())
	}
}

func TestDragResizeDoesNotClampPosition(t *testing.T) {
	ed := newEditor(1)
	uid := ed.parts.Add(0, domain.AssetRef{ID: "a"}, 40, 30, 4, 4)
	c := New(ed, unitScale())
	cell := grid.For(domain.A3Landscape).CellSize
	c.PointerDownPlacement(uid, placement.Resize, vector.Pt{X: 10, Y: 10})
	c.PointerUp(vector.Pt{X: 10 + cell*6, Y: 10 - cell*9})
	p, _ := ed.parts.Get(uid)
	if p.W != 10 || p.H != 1 || p.X != 40 || p.Y != 30 {
		t.Fatalf("unexpected geometry: %+v", p)
	}
}

func TestUnknownPlacementIgnored(t *testing.T) {
	c := New(newEditor(1), unitScale())
	if c.PointerDownPlacement("ghost", placement.Move, vector.Pt{}) || c.State() != Idle {
		t.Fatalf("unknown uid started a gesture")
	}
}

func TestPanning(t *testing.T) {
	c := New(newEditor(1), unitScale())
	c.SetScroll(vector.Pt{X: 200, Y: 100})
	c.PointerDownCanvas(Middle, vector.Pt{X: 50, Y: 50}, Modifiers{}, true)
	if c.State() != PanningGrid {
		t.Fatalf("state got %v want panning", c.State())
	}
	c.PointerMove(vector.Pt{X: 80, Y: 30})
	if s := c.Scroll(); s.X != 170 || s.Y != 120 {
		t.Fatalf("scroll got %+v want {170 120}", s)
	}
	c.PointerMove(vector.Pt{X: 1000, Y: 30})
	if s := c.Scroll(); s.X != 0 {
		t.Fatalf("scroll went negative: %+v", s)
	}
	c.PointerUp(vector.Pt{})
	if c.State() != Idle {
		t.Fatalf("state got %v want idle", c.State())
	}
}

func TestBoxSelect(t *testing.T) {
	c := New(newEditor(3), unitScale())
	c.SetThumbnails([]Thumb{
		{PageIndex: 0, Bounds: vector.R(0, 0, 100, 100)},
		{PageIndex: 1, Bounds: vector.R(150, 0, 100, 100)},
		{PageIndex: 2, Bounds: vector.R(300, 0, 100, 100)},
	})
	c.SetScroll(vector.Pt{X: 100})
	// Viewport 20..80 plus scroll 100 is content 120..180: only page 1.
	c.PointerDownCanvas(Primary, vector.Pt{X: 80, Y: 10}, Modifiers{}, false)
	c.PointerMove(vector.Pt{X: 20, Y: 50})
	if r, ok := c.SelectionRect(); !ok || r.X != 120 || r.W != 60 {
		t.Fatalf("selection rect got %+v", r)
	}
	c.PointerUp(vector.Pt{X: 20, Y: 50})
	if got := c.Selected(); len(got) != 1 || got[0] != 1 {
		t.Fatalf("selected got %v want [1]", got)
	}

	// Touching an edge is not an intersection: content x=250 is page 1's right edge.
	c.PointerDownCanvas(Primary, vector.Pt{X: 150, Y: 10}, Modifiers{Shift: true}, false)
	c.PointerUp(vector.Pt{X: 250, Y: 20})
	if got := c.Selected(); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("additive selection got %v want [1 2]", got)
	}

	c.PointerDownCanvas(Primary, vector.Pt{X: 500, Y: 500}, Modifiers{}, false)
	c.PointerUp(vector.Pt{X: 510, Y: 510})
	if len(c.Selected()) != 0 {
		t.Fatalf("replacing selection should clear, got %v", c.Selected())
	}
}

func TestBoxSelectNotStartedOverThumbnail(t *testing.T) {
	c := New(newEditor(1), unitScale())
	c.PointerDownCanvas(Primary, vector.Pt{}, Modifiers{}, true)
	if c.State() != Idle {
		t.Fatalf("box select started over a thumbnail")
	}
}

func TestPageDragReorderRemapsPlacements(t *testing.T) {
	ed := newEditor(4)
	var uids [4]string
	for i := range uids {
		uids[i] = ed.parts.Add(i, domain.AssetRef{ID: "a"}, 0, 0, 1, 1)
	}
	c := New(ed, unitScale())
	c.ToggleSelect(0, false)
	c.BeginPageDrag(0)
	c.DragOverPage(0)
	if _, over := c.DragState(); over != -1 {
		t.Fatalf("dragging over itself must not set a target")
	}
	c.DragOverPage(2)
	m, ok := c.DropPage(2)
	if !ok || m[0] != 2 {
		t.Fatalf("drop failed: %v %v", m, ok)
	}
	want := []int{2, 0, 1, 3}
	for i, uid := range uids {
		if p, _ := ed.parts.Get(uid); p.PageIndex != want[i] {
			t.Fatalf("placement %d on page %d want %d", i, p.PageIndex, want[i])
		}
	}
	if got := c.Selected(); len(got) != 1 || got[0] != 2 {
		t.Fatalf("selection not remapped: %v", got)
	}
	if d, _ := c.DragState(); d != -1 {
		t.Fatalf("drag state not cleared")
	}
	if _, ok := c.DropPage(1); ok {
		t.Fatalf("drop without drag should be ignored")
	}
}

func TestDropAssetCentresAndClamps(t *testing.T) {
	ed := newEditor(2)
	ed.pages.SetSize([]int{1}, domain.A4Portrait)
	c := New(ed, unitScale())
	cell := grid.For(domain.A3Landscape).CellSize
	origin := vector.Pt{X: 100, Y: 50}

	uid, ok := c.DropAsset(0, domain.AssetRef{ID: "a"}, vector.Pt{X: 100 + cell*20.5, Y: 50 + cell*15.5}, origin, 0)
	if !ok {
		t.Fatalf("drop failed")
	}
	p, _ := ed.parts.Get(uid)
	if p.X != 14 || p.Y != 10 || p.W != 12 || p.H != 10 {
		t.Fatalf("unexpected placement: %+v", p)
	}

	a4 := grid.For(domain.A4Portrait).CellSize
	uid, _ = c.DropAsset(1, domain.AssetRef{ID: "b"}, vector.Pt{X: 100 + a4*35.5, Y: 50 + a4*1.5}, origin, 0)
	p, _ = ed.parts.Get(uid)
	if p.X != 36-12 || p.Y != 0 {
		t.Fatalf("A4 clamp got (%d,%d) want (24,0)", p.X, p.Y)
	}
	if _, ok := c.DropAsset(7, domain.AssetRef{}, vector.Pt{}, origin, 1); ok {
		t.Fatalf("drop on missing page accepted")
	}
}

func TestDropAssetWiderThanPagePinsToOrigin(t *testing.T) {
	ed := newEditor(1)
	ed.pages.SetSize([]int{0}, domain.A4Portrait)
	c := New(ed, Options{EditScale: 1, DropWidth: 40, DropHeight: 10})
	cell := grid.For(domain.A4Portrait).CellSize
	uid, ok := c.DropAsset(0, domain.AssetRef{ID: "wide"}, vector.Pt{X: cell * 10.5, Y: cell * 10.5}, vector.Pt{}, 0)
	if !ok {
		t.Fatalf("drop failed")
	}
	p, _ := ed.parts.Get(uid)
	if p.X != 0 || p.Y != 5 || p.W != 40 || p.H != 10 {
		t.Fatalf("wide drop got %+v want x=0 y=5 40x10", p)
	}
}

func TestDropAssetUsesScale(t *testing.T) {
	ed := newEditor(1)
	c := New(ed, Options{})
	cell := grid.For(domain.A3Landscape).CellSize
	uid, _ := c.DropAsset(0, domain.AssetRef{}, vector.Pt{X: cell * 0.8 * 20.5, Y: cell * 0.8 * 15.5}, vector.Pt{}, 0)
	p, _ := ed.parts.Get(uid)
	if p.X != 14 || p.Y != 10 {
		t.Fatalf("scaled drop got (%d,%d) want (14,10)", p.X, p.Y)
	}
}

func TestContextTargets(t *testing.T) {
	c := New(newEditor(4), unitScale())
	c.ToggleSelect(1, true)
	c.ToggleSelect(2, true)
	if got := c.ContextTargets(2); len(got) != 2 {
		t.Fatalf("selected page should keep selection, got %v", got)
	}
	if got := c.ContextTargets(3); len(got) != 1 || got[0] != 3 {
		t.Fatalf("unselected page should select alone, got %v", got)
	}
	c.ToggleSelect(3, true)
	if c.IsSelected(3) {
		t.Fatalf("toggle did not deselect")
	}
}

func TestPageAtUsesScroll(t *testing.T) {
	c := New(newEditor(2), unitScale())
	c.SetThumbnails([]Thumb{
		{PageIndex: 0, Bounds: vector.R(0, 0, 100, 100)},
		{PageIndex: 1, Bounds: vector.R(150, 0, 100, 100)},
	})
	c.SetScroll(vector.Pt{X: 100})
	if i, ok := c.PageAt(vector.Pt{X: 60, Y: 50}); !ok || i != 1 {
		t.Fatalf("got %d,%v want page 1", i, ok)
	}
	if _, ok := c.PageAt(vector.Pt{X: 20, Y: 50}); ok {
		t.Fatalf("gap between thumbnails reported a page")
	}
}

func TestViewportToPaperRoundTrip(t *testing.T) {
	m := ViewportToPaper(vector.Pt{X: 40, Y: 20}, 0.5)
	if p := m.Apply(vector.Pt{X: 90, Y: 70}); p.X != 100 || p.Y != 100 {
		t.Fatalf("got %+v want {100 100}", p)
	}
	inv, ok := m.Inverse()
	if !ok {
		t.Fatalf("transform not invertible")
	}
	if p := inv.Apply(vector.Pt{X: 100, Y: 100}); p.X != 90 || p.Y != 70 {
		t.Fatalf("inverse got %+v want {90 70}", p)
	}
}
