/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0
 */

package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"layoutstudio/internal/domain"
	applog "layoutstudio/internal/log"
)

// file is the on-disk catalog shape. A bare list of assets is accepted too.
type file struct {
	Assets []domain.Asset `json:"assets" yaml:"assets"`
}

// LoadFile reads a catalog from a .yaml, .yml or .json file.
func LoadFile(path string) (*Catalog, error) {
	l := applog.WithOperation(applog.WithComponent("catalog"), "load").With(slog.String("path", path))
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var assets []domain.Asset
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		assets, err = decodeYAML(b)
	case ".json":
		assets, err = decodeJSON(b)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	c := New(assets)
	if c.Len() < len(assets) {
		l.Warn("skipped assets without id or with duplicate id", slog.Int("skipped", len(assets)-c.Len()))
	}
	l.Debug("catalog loaded", slog.Int("assets", c.Len()))
	return c, nil
}

func decodeYAML(b []byte) ([]domain.Asset, error) {
	var f file
	if err := yaml.Unmarshal(b, &f); err == nil && f.Assets != nil {
		return f.Assets, nil
	}
	var list []domain.Asset
	if err := yaml.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func decodeJSON(b []byte) ([]domain.Asset, error) {
	trimmed := strings.TrimSpace(string(b))
	if strings.HasPrefix(trimmed, "[") {
		var list []domain.Asset
		if err := json.Unmarshal(b, &list); err != nil {
			return nil, err
		}
		return list, nil
	}
	var f file
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, err
	}
	return f.Assets, nil
}
