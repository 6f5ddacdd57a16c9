/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// This file defines the data model of the page-layout builder: page records,
// asset placements, layout alternatives and the persisted document.
// Everything here serializes to plain JSON (objects, arrays, strings, numbers, booleans).

// PaperSize selects the grid geometry of a page.
type PaperSize string

const (
	A3Landscape PaperSize = "A3_LANDSCAPE"
	A4Portrait  PaperSize = "A4_PORTRAIT"
)

// PageStatus controls numbering and presentation visibility of a page.
type PageStatus string

const (
	StatusActive    PageStatus = "ACTIVE"     // counted and shown
	StatusSkipCount PageStatus = "SKIP_COUNT" // shown, not counted
	StatusHidden    PageStatus = "HIDDEN"     // neither counted nor presented
)

// ColorTheme is a manual visual tag on a page.
type ColorTheme string

const (
	ColorSlate   ColorTheme = "slate"
	ColorBlue    ColorTheme = "blue"
	ColorRose    ColorTheme = "rose"
	ColorAmber   ColorTheme = "amber"
	ColorEmerald ColorTheme = "emerald"
)

// Phase is the narrative role of a page in the presentation flow.
type Phase string

const (
	PhaseAnalysis Phase = "analysis"
	PhaseStrategy Phase = "strategy"
	PhasePlan     Phase = "plan"
	PhaseDesign   Phase = "design"
	PhaseFinance  Phase = "finance"
	PhaseTeam     Phase = "team"
	PhaseVision   Phase = "vision"
	PhaseExcluded Phase = "excluded"
)

// Phases lists every phase in narrative-balance display order.
var Phases = []Phase{PhaseAnalysis, PhaseVision, PhaseStrategy, PhaseTeam, PhasePlan, PhaseDesign, PhaseFinance, PhaseExcluded}

// ParsePhase reports whether s names a known phase.
func ParsePhase(s string) (Phase, bool) {
	for _, p := range Phases {
		if string(p) == s {
			return p, true
		}
	}
	return "", false
}

// ValidStatus reports whether s is a known page status.
func ValidStatus(s PageStatus) bool {
	return s == StatusActive || s == StatusSkipCount || s == StatusHidden
}

// ValidColor reports whether c is a known color tag.
func ValidColor(c ColorTheme) bool {
	switch c {
	case ColorSlate, ColorBlue, ColorRose, ColorAmber, ColorEmerald:
		return true
	}
	return false
}

// ValidPaperSize reports whether s is a known paper preset.
func ValidPaperSize(s PaperSize) bool { return s == A3Landscape || s == A4Portrait }

// PageRecord is the metadata of one page. Index always equals the record's
// position in the page sequence.
type PageRecord struct {
	Index       int        `json:"pageIndex"`
	Description string     `json:"description"`
	Status      PageStatus `json:"status"`
	ColorTheme  ColorTheme `json:"colorTheme"`
	Size        PaperSize  `json:"size"`
	AIPhase     Phase      `json:"aiPhase,omitempty"` // empty when never classified
}

// NewPageRecord returns the default record appended when pages are added.
func NewPageRecord(index int) PageRecord {
	return PageRecord{Index: index, Status: StatusActive, ColorTheme: ColorSlate, Size: A3Landscape}
}

// CaptionPosition, CaptionAlign and CaptionSize style the optional caption of a placement.
type CaptionPosition string
type CaptionAlign string
type CaptionSize string

const (
	CaptionTop    CaptionPosition = "top"
	CaptionBottom CaptionPosition = "bottom"

	AlignLeft   CaptionAlign = "left"
	AlignCenter CaptionAlign = "center"
	AlignRight  CaptionAlign = "right"

	CaptionXS   CaptionSize = "xs"
	CaptionSM   CaptionSize = "sm"
	CaptionBase CaptionSize = "base"
)

// AssetType separates diagram assets from saved proposal mockups.
type AssetType string

const (
	AssetDiagram  AssetType = "Diagram"
	AssetProposal AssetType = "Proposal"
)

// Asset is a library record served by the asset provider. The builder never mutates it.
type Asset struct {
	ID           string      `json:"id" yaml:"id"`
	Title        string      `json:"title" yaml:"title"`
	AssetType    AssetType   `json:"assetType" yaml:"assetType"`
	Category     string      `json:"category" yaml:"category"`
	CategoryKo   string      `json:"categoryKo,omitempty" yaml:"categoryKo"`
	ImageURL     string      `json:"imageUrl" yaml:"imageUrl"`
	Tags         []string    `json:"tags,omitempty" yaml:"tags"`
	Date         string      `json:"date,omitempty" yaml:"date"`
	Source       string      `json:"source,omitempty" yaml:"source"`
	FacilityType string      `json:"facilityType,omitempty" yaml:"facilityType"`
	ProjectType  string      `json:"projectType,omitempty" yaml:"projectType"`
	Description  string      `json:"contentDescription,omitempty" yaml:"contentDescription"`
	PageCount    int         `json:"pageNumber,omitempty" yaml:"pageNumber"`
	LayoutData   []Placement `json:"layoutData,omitempty" yaml:"-"`
}

// AssetRef is the read-only copy of an asset carried by a placement.
type AssetRef struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	ImageURL    string   `json:"imageUrl"`
	Category    string   `json:"category,omitempty"`
	CategoryKo  string   `json:"categoryKo,omitempty"`
	Description string   `json:"contentDescription,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Ref builds the reference stored in placements.
func (a Asset) Ref() AssetRef {
	return AssetRef{
		ID:          a.ID,
		Title:       a.Title,
		ImageURL:    a.ImageURL,
		Category:    a.Category,
		CategoryKo:  a.CategoryKo,
		Description: a.Description,
		Tags:        append([]string(nil), a.Tags...),
	}
}

// Placement is one asset instance on a page, positioned in grid cells.
type Placement struct {
	UID       string   `json:"uid"`
	Asset     AssetRef `json:"asset"`
	PageIndex int      `json:"pageIndex"`
	X         int      `json:"x"`
	Y         int      `json:"y"`
	W         int      `json:"w"`
	H         int      `json:"h"`

	Caption         string          `json:"caption,omitempty"`
	CaptionPosition CaptionPosition `json:"captionPosition,omitempty"`
	CaptionAlign    CaptionAlign    `json:"captionAlign,omitempty"`
	CaptionSize     CaptionSize     `json:"captionSize,omitempty"`
}

// IndexMap maps an old page index to its new index after a reorder or removal.
// Indices missing from the map belong to pages that no longer exist.
type IndexMap map[int]int

// Identity returns a map sending every index in 0..n-1 to itself.
func Identity(n int) IndexMap {
	m := make(IndexMap, n)
	for i := 0; i < n; i++ {
		m[i] = i
	}
	return m
}

// LayoutState is the full builder state captured by an alternative.
type LayoutState struct {
	Pages      []PageRecord `json:"pagesMeta"`
	Placements []Placement  `json:"placedAssets"`
	PageCount  int          `json:"pageCount"`
}

// LayoutAlternative is a named, independently editable variant of the layout.
type LayoutAlternative struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	CreatedAt int64       `json:"createdAt"` // unix milliseconds
	State     LayoutState `json:"state"`
}

// Document is the persisted form of the whole builder.
type Document struct {
	Version      int                 `json:"version"`
	ActiveID     string              `json:"activeAltId"`
	Alternatives []LayoutAlternative `json:"alternatives"`
}

// DocumentVersion is the current persisted document version.
const DocumentVersion = 1

// FlatPage is one visible page of the presentation sequence with
// placements resolved to paper pixels.
type FlatPage struct {
	PageIndex   int             `json:"pageIndex"`
	Number      string          `json:"number"`
	Label       string          `json:"label"`
	Description string          `json:"description,omitempty"`
	Status      PageStatus      `json:"status"`
	Size        PaperSize       `json:"size"`
	Width       float64         `json:"width"`
	Height      float64         `json:"height"`
	Placements  []FlatPlacement `json:"placements"`
}

// FlatPlacement is a placement with an absolute pixel rectangle.
type FlatPlacement struct {
	UID             string          `json:"uid"`
	Asset           AssetRef        `json:"asset"`
	X               float64         `json:"x"`
	Y               float64         `json:"y"`
	W               float64         `json:"w"`
	H               float64         `json:"h"`
	Caption         string          `json:"caption,omitempty"`
	CaptionPosition CaptionPosition `json:"captionPosition,omitempty"`
	CaptionAlign    CaptionAlign    `json:"captionAlign,omitempty"`
	CaptionSize     CaptionSize     `json:"captionSize,omitempty"`
}

// PageText is a page description sent out for classification.
type PageText struct {
	PageIndex int    `json:"pageIndex"`
	Text      string `json:"text"`
}

// PhaseAssignment is a classification proposed by an external actor.
type PhaseAssignment struct {
	PageIndex int    `json:"pageIndex"`
	Phase     string `json:"phase"`
}
