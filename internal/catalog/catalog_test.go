/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0
 */

package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"layoutstudio/internal/domain"
)

func sample() []domain.Asset {
	return []domain.Asset{
		{ID: "a", Title: "Site plan", AssetType: domain.AssetDiagram, Category: "Plan", CategoryKo: "계획", Tags: []string{"zoning"}},
		{ID: "b", Title: "Section", AssetType: domain.AssetDiagram, Category: "Design"},
		{ID: "c", Title: "Massing study", AssetType: domain.AssetDiagram, Category: "Plan"},
		{ID: "m", Title: "Competition board", AssetType: domain.AssetProposal, Category: "Mockup"},
		{ID: "a", Title: "Duplicate", AssetType: domain.AssetDiagram, Category: "Plan"},
		{Title: "No id"},
	}
}

func TestFilter(t *testing.T) {
	c := New(sample())
	if c.Len() != 4 {
		t.Fatalf("len got %d want 4", c.Len())
	}
	if got := c.Assets(Filter{Type: domain.AssetDiagram, Category: "Plan"}); len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Fatalf("category filter got %+v", got)
	}
	if got := c.Assets(Filter{Type: domain.AssetDiagram, Category: AllCategories}); len(got) != 3 {
		t.Fatalf("All should match every category, got %d", len(got))
	}
	if got := c.Assets(Filter{Search: "ZONING"}); len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("tag search got %+v", got)
	}
	if got := c.Assets(Filter{Search: "nothing"}); len(got) != 0 {
		t.Fatalf("expected no matches, got %d", len(got))
	}
}

func TestAssetsAreCopies(t *testing.T) {
	c := New(sample())
	a, _ := c.Asset("a")
	a.Tags[0] = "changed"
	again, _ := c.Asset("a")
	if again.Tags[0] != "zoning" {
		t.Fatalf("catalog record mutated through returned copy")
	}
	if _, ok := c.Asset("missing"); ok {
		t.Fatalf("unexpected asset for missing id")
	}
}

func TestGrouped(t *testing.T) {
	c := New(sample())
	g := c.Grouped(domain.AssetDiagram)
	if len(g) != 2 || g[0].Category != "Plan" || g[1].Category != "Design" {
		t.Fatalf("groups got %+v", g)
	}
	if g[0].CategoryKo != "계획" || g[1].CategoryKo != "Design" {
		t.Fatalf("localized names got %q %q", g[0].CategoryKo, g[1].CategoryKo)
	}
	if len(g[0].Items) != 2 {
		t.Fatalf("plan group got %d items want 2", len(g[0].Items))
	}
	if cats := c.Categories(domain.AssetProposal); len(cats) != 1 || cats[0] != "Mockup" {
		t.Fatalf("categories got %v", cats)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	y := filepath.Join(dir, "assets.yaml")
	if err := os.WriteFile(y, []byte("assets:\n  - id: a\n    title: Site plan\n    assetType: Diagram\n    category: Plan\n    tags: [zoning]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadFile(y)
	if err != nil {
		t.Fatalf("load yaml: %v", err)
	}
	if a, ok := c.Asset("a"); !ok || a.AssetType != domain.AssetDiagram || a.Tags[0] != "zoning" {
		t.Fatalf("yaml asset got %+v", a)
	}

	j := filepath.Join(dir, "assets.json")
	if err := os.WriteFile(j, []byte(`[{"id":"x","title":"Board","assetType":"Proposal","category":"Mockup","layoutData":[{"uid":"u1","pageIndex":2,"x":1,"y":1,"w":4,"h":4,"asset":{"id":"a","title":"t","imageUrl":""}}]}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err = LoadFile(j)
	if err != nil {
		t.Fatalf("load json: %v", err)
	}
	if a, _ := c.Asset("x"); len(a.LayoutData) != 1 || a.LayoutData[0].PageIndex != 2 {
		t.Fatalf("json layout data got %+v", a.LayoutData)
	}

	bad := filepath.Join(dir, "assets.txt")
	_ = os.WriteFile(bad, []byte("x"), 0o644)
	if _, err := LoadFile(bad); err == nil {
		t.Fatalf("expected error for unsupported extension")
	}
}
