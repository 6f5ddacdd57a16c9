/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package catalog serves the read-only asset library the builder places from.
package catalog

import (
	"strings"

	"layoutstudio/internal/domain"
)

// AllCategories matches every category in a Filter.
const AllCategories = "All"

// Filter narrows a catalog query. Zero fields match everything.
type Filter struct {
	Type     domain.AssetType
	Category string
	Search   string
}

func (f Filter) match(a domain.Asset) bool {
	if f.Type != "" && a.AssetType != f.Type {
		return false
	}
	if f.Category != "" && f.Category != AllCategories && a.Category != f.Category {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Search))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(a.Title), q) || strings.Contains(strings.ToLower(a.Description), q) {
		return true
	}
	for _, t := range a.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

// Provider is the asset source. Implementations never hand out records the
// caller can mutate.
type Provider interface {
	Assets(f Filter) []domain.Asset
	Asset(id string) (domain.Asset, bool)
}

// Group is one category of assets in library order.
type Group struct {
	Category   string
	CategoryKo string
	Items      []domain.Asset
}

// Catalog is an in-memory Provider.
type Catalog struct {
	items []domain.Asset
	byID  map[string]int
}

var _ Provider = (*Catalog)(nil)

// New builds a catalog. Later records with a duplicate id are ignored.
func New(assets []domain.Asset) *Catalog {
	c := &Catalog{byID: make(map[string]int, len(assets))}
	for _, a := range assets {
		if a.ID == "" {
			continue
		}
		if _, dup := c.byID[a.ID]; dup {
			continue
		}
		c.byID[a.ID] = len(c.items)
		c.items = append(c.items, clone(a))
	}
	return c
}

// Len returns the number of assets.
func (c *Catalog) Len() int { return len(c.items) }

// Assets returns matching assets in catalog order.
func (c *Catalog) Assets(f Filter) []domain.Asset {
	var out []domain.Asset
	for _, a := range c.items {
		if f.match(a) {
			out = append(out, clone(a))
		}
	}
	return out
}

// Asset looks up one asset by id.
func (c *Catalog) Asset(id string) (domain.Asset, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Asset{}, false
	}
	return clone(c.items[i]), true
}

// Categories lists distinct categories of the given type in first-seen order.
func (c *Catalog) Categories(t domain.AssetType) []string {
	var out []string
	seen := map[string]bool{}
	for _, a := range c.items {
		if (t == "" || a.AssetType == t) && !seen[a.Category] {
			seen[a.Category] = true
			out = append(out, a.Category)
		}
	}
	return out
}

// Grouped groups assets of one type by category. The localized name comes
// from the first asset of the category and falls back to the category.
func (c *Catalog) Grouped(t domain.AssetType) []Group {
	var groups []Group
	at := map[string]int{}
	for _, a := range c.Assets(Filter{Type: t}) {
		i, ok := at[a.Category]
		if !ok {
			ko := a.CategoryKo
			if ko == "" {
				ko = a.Category
			}
			i = len(groups)
			at[a.Category] = i
			groups = append(groups, Group{Category: a.Category, CategoryKo: ko})
		}
		groups[i].Items = append(groups[i].Items, a)
	}
	return groups
}

func clone(a domain.Asset) domain.Asset {
	a.Tags = append([]string(nil), a.Tags...)
	a.LayoutData = domain.ClonePlacements(a.LayoutData)
	return a
}
