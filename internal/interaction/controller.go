/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package interaction turns pointer gestures into layout mutations.
//
// The controller is a small state machine: Idle, Dragging a placement,
// PanningGrid and BoxSelecting pages. Only one gesture runs at a time.
// Releases always commit; there is no cancel path.
package interaction

import (
	"math"
	"sort"

	"layoutstudio/internal/domain"
	"layoutstudio/internal/grid"
	"layoutstudio/internal/placement"
	"layoutstudio/internal/vector"
)

// Editor is the single-writer mutation path the controller drives.
type Editor interface {
	Placement(uid string) (domain.Placement, bool)
	PageSize(pageIndex int) domain.PaperSize
	PageCount() int
	SetPlacementPosition(uid string, x, y int)
	ResizePlacement(uid string, w, h int)
	AddPlacement(pageIndex int, ref domain.AssetRef, x, y, w, h int) string
	ReorderPages(from, to int) domain.IndexMap
}

// State is the current gesture.
type State int

const (
	Idle State = iota
	Dragging
	PanningGrid
	BoxSelecting
)

func (s State) String() string {
	switch s {
	case Dragging:
		return "dragging"
	case PanningGrid:
		return "panning"
	case BoxSelecting:
		return "box-selecting"
	}
	return "idle"
}

// Button identifies a pointer button.
type Button int

const (
	Primary Button = iota
	Middle
	Secondary
)

// Modifiers are the keyboard modifiers held during a pointer event.
type Modifiers struct{ Shift, Ctrl bool }

func (m Modifiers) additive() bool { return m.Shift || m.Ctrl }

// Options tune gesture math.
type Options struct {
	EditScale  float64 // scale of the edit-view paper on screen
	DropWidth  int     // default placement size in cells
	DropHeight int
}

// DefaultOptions match the edit view of the studio app.
func DefaultOptions() Options { return Options{EditScale: 0.8, DropWidth: 12, DropHeight: 10} }

// Controller owns gesture state, the grid scroll offset and the page selection.
type Controller struct {
	ed   Editor
	opts Options

	state   State
	gesture placement.Gesture

	scroll      vector.Pt
	panStart    vector.Pt
	panScroll   vector.Pt
	boxOrigin   vector.Pt // content coordinates
	boxEnd      vector.Pt
	boxAdditive bool

	selected map[int]bool
	thumbs   []Thumb

	draggedPage int
	dragOver    int
}

// New returns an idle controller driving ed.
func New(ed Editor, opts Options) *Controller {
	d := DefaultOptions()
	if opts.EditScale <= 0 {
		opts.EditScale = d.EditScale
	}
	if opts.DropWidth < 1 {
		opts.DropWidth = d.DropWidth
	}
	if opts.DropHeight < 1 {
		opts.DropHeight = d.DropHeight
	}
	return &Controller{ed: ed, opts: opts, selected: map[int]bool{}, draggedPage: -1, dragOver: -1}
}

// State returns the active gesture.
func (c *Controller) State() State { return c.state }

// Gesture returns the running placement gesture, if any.
func (c *Controller) Gesture() (placement.Gesture, bool) {
	return c.gesture, c.state == Dragging
}

// PointerDownPlacement starts a move or resize gesture on a placement.
// It is ignored while another gesture runs or when uid is unknown.
func (c *Controller) PointerDownPlacement(uid string, mode placement.Mode, pt vector.Pt) bool {
	if c.state != Idle || (mode != placement.Move && mode != placement.Resize) {
		return false
	}
	p, ok := c.ed.Placement(uid)
	if !ok {
		return false
	}
	c.gesture = placement.Begin(p, mode, pt, c.ed.PageSize(p.PageIndex), c.opts.EditScale)
	c.state = Dragging
	return true
}

// PointerDownCanvas starts panning (middle button) or box selection (primary
// button on empty canvas). pt is in viewport coordinates.
func (c *Controller) PointerDownCanvas(b Button, pt vector.Pt, mods Modifiers, overThumbnail bool) {
	if c.state != Idle {
		return
	}
	switch {
	case b == Middle:
		c.state = PanningGrid
		c.panStart = pt
		c.panScroll = c.scroll
	case b == Primary && !overThumbnail:
		c.state = BoxSelecting
		c.boxAdditive = mods.additive()
		if !c.boxAdditive {
			c.ClearSelection()
		}
		c.boxOrigin = pt.Add(c.scroll)
		c.boxEnd = c.boxOrigin
	}
}

// PointerMove advances the running gesture.
func (c *Controller) PointerMove(pt vector.Pt) {
	switch c.state {
	case Dragging:
		x, y, w, h := c.gesture.At(pt)
		if c.gesture.Mode == placement.Move {
			c.ed.SetPlacementPosition(c.gesture.UID, x, y)
		} else {
			c.ed.ResizePlacement(c.gesture.UID, w, h)
		}
	case PanningGrid:
		c.setScroll(c.panScroll.Sub(pt.Sub(c.panStart)))
	case BoxSelecting:
		c.boxEnd = pt.Add(c.scroll)
	}
}

// PointerUp commits the running gesture at pt and returns to Idle.
// A moved placement is clamped into its page grid.
func (c *Controller) PointerUp(pt vector.Pt) {
	switch c.state {
	case Dragging:
		c.PointerMove(pt)
		if c.gesture.Mode == placement.Move {
			if p, ok := c.ed.Placement(c.gesture.UID); ok {
				x, y := grid.ClampToPage(p.X, p.Y, p.W, p.H, c.ed.PageSize(p.PageIndex))
				if x != p.X || y != p.Y {
					c.ed.SetPlacementPosition(p.UID, x, y)
				}
			}
		}
	case BoxSelecting:
		c.boxEnd = pt.Add(c.scroll)
		c.commitBox()
	}
	c.state = Idle
	c.gesture = placement.Gesture{}
}

func (c *Controller) commitBox() {
	sel := vector.RectFromCorners(c.boxOrigin, c.boxEnd)
	for _, t := range c.thumbs {
		if t.Bounds.Intersects(sel) {
			c.selected[t.PageIndex] = true
		}
	}
}

// SelectionRect is the live box in content coordinates.
func (c *Controller) SelectionRect() (vector.Rect, bool) {
	if c.state != BoxSelecting {
		return vector.Rect{}, false
	}
	return vector.RectFromCorners(c.boxOrigin, c.boxEnd), true
}

// Scroll returns the grid viewport offset.
func (c *Controller) Scroll() vector.Pt { return c.scroll }

// SetScroll moves the grid viewport; offsets are never negative.
func (c *Controller) SetScroll(p vector.Pt) { c.setScroll(p) }

func (c *Controller) setScroll(p vector.Pt) {
	c.scroll = vector.Pt{X: math.Max(0, p.X), Y: math.Max(0, p.Y)}
}

// SetThumbnails replaces the on-screen page boxes used for hit testing.
func (c *Controller) SetThumbnails(t []Thumb) { c.thumbs = append(c.thumbs[:0], t...) }

// Selected returns the selected page indices in ascending order.
func (c *Controller) Selected() []int {
	out := make([]int, 0, len(c.selected))
	for i := range c.selected {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// IsSelected reports whether a page is selected.
func (c *Controller) IsSelected(i int) bool { return c.selected[i] }

// ToggleSelect flips a page. Without multi the rest of the selection is dropped.
func (c *Controller) ToggleSelect(i int, multi bool) {
	was := c.selected[i]
	if !multi {
		c.ClearSelection()
	}
	if was {
		delete(c.selected, i)
	} else {
		c.selected[i] = true
	}
}

// ClearSelection empties the page selection.
func (c *Controller) ClearSelection() { clear(c.selected) }

// ContextTargets returns the pages a context-menu action on page i applies
// to. Right-clicking an unselected page selects only that page.
func (c *Controller) ContextTargets(i int) []int {
	if !c.selected[i] {
		c.ClearSelection()
		c.selected[i] = true
	}
	return c.Selected()
}

// BeginPageDrag marks a page as being dragged for reordering.
func (c *Controller) BeginPageDrag(i int) {
	if i < 0 || i >= c.ed.PageCount() {
		return
	}
	c.draggedPage = i
	c.dragOver = -1
}

// DragOverPage tracks the current drop candidate.
func (c *Controller) DragOverPage(i int) {
	if c.draggedPage < 0 || i == c.draggedPage {
		return
	}
	c.dragOver = i
}

// DragState returns the dragged page and the hovered target, -1 when unset.
func (c *Controller) DragState() (dragged, over int) { return c.draggedPage, c.dragOver }

// DropPage reorders the dragged page onto target. Pages and placements are
// remapped in one editor call.
func (c *Controller) DropPage(target int) (domain.IndexMap, bool) {
	from := c.draggedPage
	c.EndPageDrag()
	if from < 0 || from == target || target < 0 || target >= c.ed.PageCount() {
		return nil, false
	}
	m := c.ed.ReorderPages(from, target)
	c.RemapSelection(m)
	return m, true
}

// EndPageDrag abandons a page drag without reordering.
func (c *Controller) EndPageDrag() {
	c.draggedPage = -1
	c.dragOver = -1
}

// RemapSelection moves selected pages through m. Pages missing from m are
// deselected.
func (c *Controller) RemapSelection(m domain.IndexMap) {
	if len(c.selected) == 0 {
		return
	}
	next := make(map[int]bool, len(c.selected))
	for i := range c.selected {
		if j, ok := m[i]; ok {
			next[j] = true
		}
	}
	c.selected = next
}

// DropAsset places ref on a page from a library drag. client is the pointer
// position and paperOrigin the on-screen top-left of the paper, both in
// viewport pixels; scale is the paper's on-screen scale (0 uses the edit
// scale). The default-size placement is centred on the drop cell and kept
// inside the page.
func (c *Controller) DropAsset(pageIndex int, ref domain.AssetRef, client, paperOrigin vector.Pt, scale float64) (string, bool) {
	if pageIndex < 0 || pageIndex >= c.ed.PageCount() {
		return "", false
	}
	if scale <= 0 {
		scale = c.opts.EditScale
	}
	size := c.ed.PageSize(pageIndex)
	d := ViewportToPaper(paperOrigin, scale).Apply(client)
	gx, gy := grid.PixelToGrid(d.X, d.Y, size)
	w, h := c.opts.DropWidth, c.opts.DropHeight
	x, y := grid.ClampToPage(gx-w/2, gy-h/2, w, h, size)
	return c.ed.AddPlacement(pageIndex, ref, x, y, w, h), true
}

// ViewportToPaper maps viewport pixels onto unscaled paper pixels for a
// paper drawn at paperOrigin with the given scale.
func ViewportToPaper(paperOrigin vector.Pt, scale float64) vector.Affine2D {
	return vector.Scale(1/scale, 1/scale).Mul(vector.Translate(-paperOrigin.X, -paperOrigin.Y))
}

// PageAt returns the thumbnail page under viewport point pt.
func (c *Controller) PageAt(pt vector.Pt) (int, bool) {
	p := pt.Add(c.scroll)
	for _, t := range c.thumbs {
		if t.Bounds.Contains(p) {
			return t.PageIndex, true
		}
	}
	return -1, false
}
