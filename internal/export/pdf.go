/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export renders flattened layouts into review artifacts.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"layoutstudio/internal/domain"
	"layoutstudio/internal/grid"
)

// ProofOptions controls the layout proof sheet.
// One paper pixel maps to one point. The proof outlines placements and
// prints titles and captions; images are not embedded.
type ProofOptions struct {
	Title      string
	GridGuides bool // faint cell lines
	Labels     bool // page number and label in the top margin
}

type rgb struct{ R, G, B int }

var (
	guideColor  = rgb{226, 232, 240}
	borderColor = rgb{100, 116, 139}
	boxColor    = rgb{15, 23, 42}
	textColor   = rgb{51, 65, 85}
)

const labelBand = 18.0

var captionPt = map[domain.CaptionSize]float64{
	domain.CaptionXS:   7,
	domain.CaptionSM:   9,
	domain.CaptionBase: 11,
}

var alignStr = map[domain.CaptionAlign]string{
	domain.AlignLeft:   "L",
	domain.AlignCenter: "C",
	domain.AlignRight:  "R",
}

// WriteProof renders pages as a multi-page PDF to w.
func WriteProof(w io.Writer, pages []domain.FlatPage, opt ProofOptions) error {
	pdf, err := proof(pages, opt)
	if err != nil {
		return err
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// WriteProofFile writes the proof to path, creating its directory.
func WriteProofFile(path string, pages []domain.FlatPage, opt ProofOptions) error {
	pdf, err := proof(pages, opt)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func proof(pages []domain.FlatPage, opt ProofOptions) (*gofpdf.Fpdf, error) {
	if len(pages) == 0 {
		return nil, errors.New("no visible pages to export")
	}
	top := 0.0
	if opt.Labels {
		top = labelBand
	}
	first := pages[0]
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: first.Width, Ht: first.Height + top},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	if opt.Title != "" {
		pdf.SetTitle(opt.Title, true)
	}
	pdf.SetCreator("layoutstudio", false)
	// Core fonts are cp1252; characters outside it print as '?'.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, pg := range pages {
		pdf.AddPageFormat("", gofpdf.SizeType{Wd: pg.Width, Ht: pg.Height + top})
		if opt.Labels {
			setText(pdf, textColor)
			pdf.SetFont("Helvetica", "B", 9)
			pdf.SetXY(6, 4)
			pdf.CellFormat(pg.Width/2, labelBand-6, tr(pg.Number+"  "+pg.Label), "", 0, "L", false, 0, "")
			if pg.Description != "" {
				pdf.SetFont("Helvetica", "", 8)
				pdf.SetXY(pg.Width/2, 4)
				pdf.CellFormat(pg.Width/2-6, labelBand-6, tr(pg.Description), "", 0, "R", false, 0, "")
			}
		}
		if opt.GridGuides {
			drawGrid(pdf, grid.For(pg.Size), top)
		}
		setDraw(pdf, borderColor)
		pdf.SetLineWidth(0.5)
		pdf.Rect(0, top, pg.Width, pg.Height, "D")

		for _, p := range pg.Placements {
			drawPlacement(pdf, tr, p, top)
		}
	}
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return pdf, nil
}

func drawGrid(pdf *gofpdf.Fpdf, g grid.Spec, top float64) {
	setDraw(pdf, guideColor)
	pdf.SetLineWidth(0.2)
	for c := 1; c < g.Columns; c++ {
		x := float64(c) * g.CellSize
		pdf.Line(x, top, x, top+g.PixelHeight)
	}
	for r := 1; r < g.Rows; r++ {
		y := float64(r)*g.CellSize + top
		pdf.Line(0, y, g.PixelWidth, y)
	}
}

func drawPlacement(pdf *gofpdf.Fpdf, tr func(string) string, p domain.FlatPlacement, top float64) {
	y := p.Y + top
	setDraw(pdf, boxColor)
	pdf.SetLineWidth(0.8)
	pdf.Rect(p.X, y, p.W, p.H, "D")
	pdf.SetLineWidth(0.2)
	pdf.Line(p.X, y, p.X+p.W, y+p.H)
	pdf.Line(p.X+p.W, y, p.X, y+p.H)

	setText(pdf, textColor)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetXY(p.X+2, y+2)
	pdf.CellFormat(p.W-4, 10, tr(p.Asset.Title), "", 0, "L", false, 0, "")

	if p.Caption == "" {
		return
	}
	size := captionPt[p.CaptionSize]
	if size == 0 {
		size = captionPt[domain.CaptionXS]
	}
	align := alignStr[p.CaptionAlign]
	if align == "" {
		align = "L"
	}
	lh := size * 1.25
	cy := y + p.H + 2
	if p.CaptionPosition == domain.CaptionTop {
		cy = y - lh - 2
	}
	pdf.SetFont("Helvetica", "", size)
	pdf.SetXY(p.X, cy)
	pdf.CellFormat(p.W, lh, tr(p.Caption), "", 0, align, false, 0, "")
}

func setDraw(pdf *gofpdf.Fpdf, c rgb) { pdf.SetDrawColor(c.R, c.G, c.B) }
func setText(pdf *gofpdf.Fpdf, c rgb) { pdf.SetTextColor(c.R, c.G, c.B) }
