/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package grid converts between paper pixels and integer grid cells.
package grid

import (
	"math"

	"layoutstudio/internal/domain"
	"layoutstudio/internal/vector"
)

// Paper aspect ratio shared by both ISO presets.
const isoRatio = 1.414

// Spec describes the geometry of one paper preset.
type Spec struct {
	Size        domain.PaperSize
	PixelWidth  float64
	PixelHeight float64
	Columns     int
	Rows        int
	CellSize    float64
}

var (
	a3 = Spec{
		Size:        domain.A3Landscape,
		PixelWidth:  1122,
		PixelHeight: 1122 / isoRatio,
		Columns:     48,
		Rows:        36,
		CellSize:    1122.0 / 48,
	}
	a4 = Spec{
		Size:        domain.A4Portrait,
		PixelWidth:  794,
		PixelHeight: 794 * isoRatio,
		Columns:     36,
		Rows:        48,
		CellSize:    794.0 / 36,
	}
)

// For returns the preset for size. Unknown sizes use the A3 landscape preset.
func For(size domain.PaperSize) Spec {
	if size == domain.A4Portrait {
		return a4
	}
	return a3
}

// PixelToGrid floors pixel coordinates into cell coordinates.
func PixelToGrid(px, py float64, size domain.PaperSize) (int, int) {
	c := For(size).CellSize
	return int(math.Floor(px / c)), int(math.Floor(py / c))
}

// GridToPixel returns the pixel position of a cell corner.
func GridToPixel(gx, gy int, size domain.PaperSize) (float64, float64) {
	c := For(size).CellSize
	return float64(gx) * c, float64(gy) * c
}

// CellRect converts a grid rectangle to paper pixels.
func CellRect(x, y, w, h int, size domain.PaperSize) vector.Rect {
	c := For(size).CellSize
	return vector.R(float64(x)*c, float64(y)*c, float64(w)*c, float64(h)*c)
}

// Bounds is the paper rectangle in pixels.
func (s Spec) Bounds() vector.Rect { return vector.R(0, 0, s.PixelWidth, s.PixelHeight) }

// ClampToPage keeps a w×h rectangle at (x,y) inside the page grid.
// Rectangles larger than the page are pinned to the origin.
func ClampToPage(x, y, w, h int, size domain.PaperSize) (int, int) {
	s := For(size)
	return vector.Clamp(x, 0, s.Columns-w), vector.Clamp(y, 0, s.Rows-h)
}
