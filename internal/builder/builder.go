/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package builder is the single writer of a layout: it owns the live page and
// placement stores plus the alternative manager. Every mutating method
// updates the stores first and then syncs the active alternative, so a
// snapshot never observes a half-applied change.
package builder

import (
	"log/slog"

	"layoutstudio/internal/alternatives"
	"layoutstudio/internal/domain"
	"layoutstudio/internal/interaction"
	applog "layoutstudio/internal/log"
	"layoutstudio/internal/pages"
	"layoutstudio/internal/placement"
)

// Options are injected at construction; no store reads ambient configuration.
type Options struct {
	InitialPages int
	Interaction  interaction.Options
	Logger       *slog.Logger
}

// DefaultOptions start with one page and the edit-view gesture settings.
func DefaultOptions() Options {
	return Options{InitialPages: 1, Interaction: interaction.DefaultOptions()}
}

// Builder is the page-layout builder. Not safe for concurrent use.
type Builder struct {
	pages *pages.Store
	parts *placement.Store
	alts  *alternatives.Manager
	ctl   *interaction.Controller
	iopts interaction.Options
	log   *slog.Logger
}

// New returns a builder holding a single default alternative.
func New(opts Options) *Builder {
	if opts.InitialPages < 1 {
		opts.InitialPages = 1
	}
	b := newBuilder(opts)
	b.pages = pages.New(opts.InitialPages)
	b.parts = placement.New()
	b.alts = alternatives.New()
	b.alts.CreateDefault(b.state())
	return b
}

// Restore rebuilds a builder from a persisted document. A document without
// alternatives yields the same state as New.
func Restore(doc domain.Document, opts Options) *Builder {
	b := newBuilder(opts)
	b.alts = alternatives.FromDocument(doc)
	if b.alts.Len() == 0 {
		return New(opts)
	}
	a, _ := b.alts.Active()
	b.load(a.State)
	b.sync()
	return b
}

func newBuilder(opts Options) *Builder {
	l := opts.Logger
	if l == nil {
		l = applog.WithComponent("builder")
	}
	return &Builder{iopts: opts.Interaction, log: l}
}

// Controller returns the gesture controller bound to this builder. It is
// created on first use from Options.Interaction.
func (b *Builder) Controller() *interaction.Controller {
	if b.ctl == nil {
		b.ctl = interaction.New(b, b.iopts)
	}
	return b.ctl
}

// remapSelection keeps the controller's page selection in step with m.
func (b *Builder) remapSelection(m domain.IndexMap) {
	if b.ctl != nil {
		b.ctl.RemapSelection(m)
	}
}

func (b *Builder) state() domain.LayoutState {
	return domain.LayoutState{
		Pages:      b.pages.Records(),
		Placements: b.parts.All(),
		PageCount:  b.pages.Count(),
	}
}

// load replaces the live stores with st. The page count wins over the
// record slice; placements on missing pages are dropped.
func (b *Builder) load(st domain.LayoutState) {
	count := st.PageCount
	if count < 1 {
		count = max(1, len(st.Pages))
	}
	b.pages = pages.FromRecords(st.Pages, count)
	b.parts = placement.FromPlacements(st.Placements)
	b.parts.DropPagesFrom(count)
	b.remapSelection(domain.Identity(count))
}

func (b *Builder) sync() { b.alts.Sync(b.state()) }

// State returns a deep copy of the live state.
func (b *Builder) State() domain.LayoutState { return b.state() }

// Document returns the persisted form of the builder.
func (b *Builder) Document() domain.Document { return b.alts.Document() }

// --- page queries ---

func (b *Builder) PageCount() int                          { return b.pages.Count() }
func (b *Builder) Pages() []domain.PageRecord              { return b.pages.Records() }
func (b *Builder) Page(i int) (domain.PageRecord, bool)    { return b.pages.Get(i) }
func (b *Builder) PageSize(i int) domain.PaperSize         { return b.pages.Size(i) }
func (b *Builder) FormattedNumber(i int) string            { return b.pages.FormattedNumber(i) }
func (b *Builder) DisplayLabel(i int) string               { return b.pages.DisplayLabel(i) }
func (b *Builder) ClassifyPhase(i int) domain.Phase        { return b.pages.ClassifyPhase(i) }
func (b *Builder) PhaseBalance() pages.Balance             { return b.pages.PhaseBalance() }
func (b *Builder) VisiblePages() []int                     { return b.pages.VisibleIndices() }
func (b *Builder) Placements() []domain.Placement          { return b.parts.All() }
func (b *Builder) PagePlacements(i int) []domain.Placement { return b.parts.ForPage(i) }

// Placement returns one placement by uid.
func (b *Builder) Placement(uid string) (domain.Placement, bool) { return b.parts.Get(uid) }

// --- page mutations ---

// ResizePages sets the page count. Shrinking drops placements on removed pages.
func (b *Builder) ResizePages(n int) {
	if n < 1 {
		n = 1
	}
	b.pages.Resize(n)
	b.parts.DropPagesFrom(n)
	b.remapSelection(domain.Identity(n))
	b.sync()
}

// AddPage appends one default page.
func (b *Builder) AddPage() int {
	b.pages.Resize(b.pages.Count() + 1)
	b.sync()
	return b.pages.Count() - 1
}

// RemovePages deletes pages and their placements. The last page is kept.
func (b *Builder) RemovePages(indices []int) {
	valid := b.pages.ValidIndices(indices)
	if len(valid) == 0 || len(valid) >= b.pages.Count() {
		return
	}
	m := b.pages.Remove(valid)
	b.parts.RemapPageIndices(m)
	b.remapSelection(m)
	b.sync()
}

// ReorderPages moves a page and remaps placements in one step.
func (b *Builder) ReorderPages(from, to int) domain.IndexMap {
	m := b.pages.Reorder(from, to)
	b.parts.RemapPageIndices(m)
	b.sync()
	return m
}

func (b *Builder) SetStatus(indices []int, s domain.PageStatus) {
	b.pages.SetStatus(indices, s)
	b.sync()
}

func (b *Builder) SetColor(indices []int, c domain.ColorTheme) {
	b.pages.SetColor(indices, c)
	b.sync()
}

func (b *Builder) SetPaperSize(indices []int, s domain.PaperSize) {
	b.pages.SetSize(indices, s)
	b.sync()
}

func (b *Builder) SetDescription(i int, text string) {
	b.pages.SetDescription(i, text)
	b.sync()
}

func (b *Builder) SetAIPhase(i int, p domain.Phase) {
	b.pages.SetAIPhase(i, p)
	b.sync()
}

// --- placement mutations ---

// AddPlacement drops an asset onto an existing page.
func (b *Builder) AddPlacement(page int, ref domain.AssetRef, x, y, w, h int) string {
	if page < 0 || page >= b.pages.Count() {
		return ""
	}
	uid := b.parts.Add(page, ref, x, y, w, h)
	b.sync()
	return uid
}

func (b *Builder) RemovePlacement(uid string) {
	b.parts.Remove(uid)
	b.sync()
}

func (b *Builder) MovePlacementBy(uid string, dx, dy int) {
	b.parts.MoveBy(uid, dx, dy)
	b.sync()
}

func (b *Builder) SetPlacementPosition(uid string, x, y int) {
	b.parts.SetPosition(uid, x, y)
	b.sync()
}

func (b *Builder) ResizePlacement(uid string, w, h int) {
	b.parts.ResizeTo(uid, w, h)
	b.sync()
}

func (b *Builder) SetCaption(uid, text string) {
	b.parts.SetCaption(uid, text)
	b.sync()
}

func (b *Builder) SetCaptionStyle(uid string, st placement.CaptionStyle) {
	b.parts.SetCaptionStyle(uid, st)
	b.sync()
}
