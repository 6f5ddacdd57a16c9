/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package builder

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"layoutstudio/internal/alternatives"
	"layoutstudio/internal/domain"
	"layoutstudio/internal/grid"
	"layoutstudio/internal/interaction"
	applog "layoutstudio/internal/log"
	"layoutstudio/internal/placement"
	"layoutstudio/internal/vector"
)

func newTestBuilder(pages int) *Builder {
	return New(Options{InitialPages: pages, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
}

var asset = domain.AssetRef{ID: "d1", Title: "Zoning diagram", ImageURL: "https://example.test/d1.png"}

func activeState(t *testing.T, b *Builder) domain.LayoutState {
	t.Helper()
	id, _ := b.ActiveAlternative()
	for _, a := range b.Alternatives() {
		if a.ID == id {
			return a.State
		}
	}
	t.Fatalf("active alternative %q missing", id)
	return domain.LayoutState{}
}

func TestEveryMutationSyncsActiveAlternative(t *testing.T) {
	b := newTestBuilder(2)
	uid := b.AddPlacement(1, asset, 2, 2, 4, 4)
	b.SetDescription(0, "Site analysis")
	b.SetStatus([]int{1}, domain.StatusSkipCount)
	b.MovePlacementBy(uid, 3, 0)

	if !reflect.DeepEqual(activeState(t, b), b.State()) {
		t.Fatalf("active alternative out of sync:\n%+v\n%+v", activeState(t, b), b.State())
	}
}

func TestReorderRemapsPlacements(t *testing.T) {
	b := newTestBuilder(4)
	var uids []string
	for i, d := range []string{"A", "B", "C", "D"} {
		b.SetDescription(i, d)
		uids = append(uids, b.AddPlacement(i, asset, 0, 0, 1, 1))
	}
	b.ReorderPages(0, 2)
	var order string
	for _, r := range b.Pages() {
		order += r.Description
	}
	if order != "BCAD" {
		t.Fatalf("order got %s", order)
	}
	for i, want := range []int{2, 0, 1, 3} {
		if p, _ := b.Placement(uids[i]); p.PageIndex != want {
			t.Fatalf("placement %d got page %d want %d", i, p.PageIndex, want)
		}
	}

	before := b.State()
	b.ReorderPages(1, 1)
	if !reflect.DeepEqual(before, b.State()) {
		t.Fatalf("reorder(i,i) changed state")
	}
}

func TestRemoveAndShrinkCascade(t *testing.T) {
	b := newTestBuilder(3)
	keep := b.AddPlacement(0, asset, 0, 0, 1, 1)
	gone := b.AddPlacement(1, asset, 0, 0, 1, 1)
	last := b.AddPlacement(2, asset, 0, 0, 1, 1)

	b.RemovePages([]int{1})
	if _, ok := b.Placement(gone); ok {
		t.Fatalf("placement on removed page survived")
	}
	if p, _ := b.Placement(last); p.PageIndex != 1 {
		t.Fatalf("last page placement got page %d want 1", p.PageIndex)
	}
	b.ResizePages(1)
	if _, ok := b.Placement(last); ok {
		t.Fatalf("shrink kept placement beyond page count")
	}
	if _, ok := b.Placement(keep); !ok {
		t.Fatalf("shrink dropped placement on surviving page")
	}
	b.RemovePages([]int{0})
	if b.PageCount() != 1 {
		t.Fatalf("removing the last page should be refused")
	}
}

func TestBranchSwitchIsolation(t *testing.T) {
	b := newTestBuilder(1)
	uid := b.AddPlacement(0, asset, 1, 1, 2, 2)
	orig, _ := b.ActiveAlternative()
	snapshot, _ := json.Marshal(b.Alternatives()[0])

	id, ok := b.BranchAlternative(orig)
	if !ok {
		t.Fatalf("branch failed")
	}
	if cur, name := b.ActiveAlternative(); cur != id || name != "Original (Copy)" {
		t.Fatalf("branch should switch: %q %q", cur, name)
	}
	b.MovePlacementBy(uid, 10, 10)
	b.AddPlacement(0, asset, 0, 0, 1, 1)

	after, _ := json.Marshal(b.Alternatives()[0])
	if string(after) != string(snapshot) {
		t.Fatalf("original alternative changed by edits to the branch")
	}

	b.SwitchAlternative(orig)
	if p, _ := b.Placement(uid); p.X != 1 || len(b.Placements()) != 1 {
		t.Fatalf("switch did not restore original live state: %+v", b.Placements())
	}
	b.SwitchAlternative(id)
	if p, _ := b.Placement(uid); p.X != 11 || len(b.Placements()) != 2 {
		t.Fatalf("branch edits lost: %+v", b.Placements())
	}
	if b.SwitchAlternative("missing") {
		t.Fatalf("switch to unknown id reported success")
	}
}

func TestDeleteAlternative(t *testing.T) {
	b := newTestBuilder(1)
	if err := b.DeleteAlternative(alternatives.DefaultID); !errors.Is(err, alternatives.ErrLastAlternative) {
		t.Fatalf("got %v want ErrLastAlternative", err)
	}
	if len(b.Alternatives()) != 1 {
		t.Fatalf("alternative count changed")
	}
	id, _ := b.BranchAlternative(alternatives.DefaultID)
	b.ResizePages(5)
	if err := b.DeleteAlternative(id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if cur, _ := b.ActiveAlternative(); cur != alternatives.DefaultID || b.PageCount() != 1 {
		t.Fatalf("fallback got %q with %d pages", cur, b.PageCount())
	}
}

func TestFlattenSkipsHiddenAndConvertsPixels(t *testing.T) {
	b := newTestBuilder(3)
	b.SetPaperSize([]int{2}, domain.A4Portrait)
	b.SetStatus([]int{1}, domain.StatusHidden)
	uid := b.AddPlacement(2, asset, 2, 3, 4, 5)
	b.SetCaption(uid, "Section")

	flat := b.Flatten()
	if len(flat) != 2 || flat[0].PageIndex != 0 || flat[1].PageIndex != 2 {
		t.Fatalf("unexpected pages: %+v", flat)
	}
	p := flat[1]
	if p.Size != domain.A4Portrait || p.Number != "02" || p.Label != "Page 2" || len(p.Placements) != 1 {
		t.Fatalf("unexpected page: %+v", p)
	}
	c := grid.For(domain.A4Portrait).CellSize
	fp := p.Placements[0]
	if fp.X != 2*c || fp.Y != 3*c || fp.W != 4*c || fp.H != 5*c || fp.Caption != "Section" {
		t.Fatalf("unexpected placement: %+v", fp)
	}
}

func TestDocumentRestoreRoundTrip(t *testing.T) {
	b := newTestBuilder(2)
	uid := b.AddPlacement(1, asset, 3, 4, 5, 6)
	b.SetCaption(uid, "Plan")
	b.SetAIPhase(1, domain.PhasePlan)
	b.BranchAlternative(alternatives.DefaultID)
	b.SetColor([]int{0}, domain.ColorAmber)

	raw, err := json.Marshal(b.Document())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var doc domain.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	r := Restore(doc, Options{Logger: b.log})
	if !reflect.DeepEqual(r.Document(), b.Document()) {
		t.Fatalf("round trip mismatch")
	}
	if !reflect.DeepEqual(r.State(), b.State()) {
		t.Fatalf("live state mismatch after restore")
	}

	empty := Restore(domain.Document{}, Options{Logger: b.log})
	if id, name := empty.ActiveAlternative(); id != alternatives.DefaultID || name != alternatives.DefaultName {
		t.Fatalf("empty document should yield default, got %q %q", id, name)
	}
}

func TestControllerDrivesBuilder(t *testing.T) {
	b := New(Options{
		InitialPages: 1,
		Interaction:  interaction.Options{EditScale: 1},
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	uid := b.AddPlacement(0, asset, 5, 5, 4, 4)
	ctl := b.Controller()
	cell := grid.For(domain.A3Landscape).CellSize
	ctl.PointerDownPlacement(uid, placement.Move, vector.Pt{})
	ctl.PointerMove(vector.Pt{X: cell * 1.2})
	ctl.PointerUp(vector.Pt{X: cell * 3.4, Y: cell * 0.4})
	if p, _ := b.Placement(uid); p.X != 8 || p.Y != 5 {
		t.Fatalf("got (%d,%d) want (8,5)", p.X, p.Y)
	}
	if st := activeState(t, b); st.Placements[0].X != 8 {
		t.Fatalf("gesture not synced into alternative")
	}
}

func TestControllerUsesInteractionOptions(t *testing.T) {
	b := New(Options{
		InitialPages: 1,
		Interaction:  interaction.Options{EditScale: 1, DropWidth: 6, DropHeight: 4},
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if b.Controller() != b.Controller() {
		t.Fatalf("controller should be created once")
	}
	uid, ok := b.Controller().DropAsset(0, asset, vector.Pt{}, vector.Pt{}, 0)
	if !ok {
		t.Fatalf("drop failed")
	}
	if p, _ := b.Placement(uid); p.W != 6 || p.H != 4 {
		t.Fatalf("drop size got %dx%d want 6x4", p.W, p.H)
	}
}

func TestRemovePagesRemapsSelection(t *testing.T) {
	b := newTestBuilder(3)
	ctl := b.Controller()
	ctl.ToggleSelect(2, false)
	b.RemovePages([]int{0})
	if got := ctl.Selected(); !reflect.DeepEqual(got, []int{1}) {
		t.Fatalf("selection after remove got %v want [1]", got)
	}

	ctl.ToggleSelect(0, false)
	b.RemovePages([]int{0})
	if got := ctl.Selected(); len(got) != 0 {
		t.Fatalf("removed page still selected: %v", got)
	}
}

func TestResizePagesDropsSelectionOfRemovedPages(t *testing.T) {
	b := newTestBuilder(4)
	ctl := b.Controller()
	ctl.ToggleSelect(1, true)
	ctl.ToggleSelect(3, true)
	b.ResizePages(2)
	if got := ctl.Selected(); !reflect.DeepEqual(got, []int{1}) {
		t.Fatalf("selection after shrink got %v want [1]", got)
	}
	b.ResizePages(6)
	if got := ctl.Selected(); !reflect.DeepEqual(got, []int{1}) {
		t.Fatalf("grow changed selection: %v", got)
	}
}

func TestSwitchAlternativeTrimsSelection(t *testing.T) {
	b := newTestBuilder(1)
	id, _ := b.BranchAlternative(alternatives.DefaultID)
	b.ResizePages(5)
	ctl := b.Controller()
	ctl.ToggleSelect(4, false)
	b.SwitchAlternative(alternatives.DefaultID)
	if got := ctl.Selected(); len(got) != 0 {
		t.Fatalf("selection beyond page count survived switch: %v", got)
	}
	b.SwitchAlternative(id)
	if b.PageCount() != 5 {
		t.Fatalf("branch lost its pages: %d", b.PageCount())
	}
}

func TestAlternativeLogsCarryAltAttr(t *testing.T) {
	var buf bytes.Buffer
	applog.Init(applog.Options{Level: "info", Format: "json", Writer: &buf})
	t.Cleanup(func() { applog.Init(applog.Options{Writer: io.Discard}) })

	b := New(Options{InitialPages: 1, Logger: applog.WithComponent("builder")})
	id, ok := b.BranchAlternative(alternatives.DefaultID)
	if !ok {
		t.Fatalf("branch failed")
	}
	if err := b.DeleteAlternative(id); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var seen int
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("unmarshal %q: %v", line, err)
		}
		if m["msg"] == "alternative branched" || m["msg"] == "alternative deleted" {
			seen++
			if m["alt"] != id {
				t.Fatalf("%v: alt got %v want %s", m["msg"], m["alt"], id)
			}
		}
	}
	if seen != 2 {
		t.Fatalf("got %d alternative records want 2:\n%s", seen, buf.String())
	}
}
