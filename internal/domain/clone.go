/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// Deep copies. Alternatives never share a slice with the live stores or with each other.

// Clone returns a deep copy of the asset reference.
func (r AssetRef) Clone() AssetRef {
	r.Tags = append([]string(nil), r.Tags...)
	return r
}

// Clone returns a deep copy of the placement.
func (p Placement) Clone() Placement {
	p.Asset = p.Asset.Clone()
	return p
}

// ClonePages copies a page record slice.
func ClonePages(in []PageRecord) []PageRecord {
	if in == nil {
		return []PageRecord{}
	}
	return append([]PageRecord(nil), in...)
}

// ClonePlacements deep-copies a placement slice.
func ClonePlacements(in []Placement) []Placement {
	out := make([]Placement, len(in))
	for i, p := range in {
		out[i] = p.Clone()
	}
	return out
}

// Clone returns a deep copy of the state.
func (s LayoutState) Clone() LayoutState {
	return LayoutState{
		Pages:      ClonePages(s.Pages),
		Placements: ClonePlacements(s.Placements),
		PageCount:  s.PageCount,
	}
}

// Clone returns a deep copy of the alternative.
func (a LayoutAlternative) Clone() LayoutAlternative {
	a.State = a.State.Clone()
	return a
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	alts := make([]LayoutAlternative, len(d.Alternatives))
	for i, a := range d.Alternatives {
		alts[i] = a.Clone()
	}
	d.Alternatives = alts
	return d
}
