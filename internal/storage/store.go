/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"layoutstudio/internal/domain"
	applog "layoutstudio/internal/log"
)

// Store keeps opaque blobs by key. Get returns ErrNotFound for unknown keys.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Snapshot is a previous version of a key.
type Snapshot struct {
	TS   time.Time
	Data []byte
}

// Historian is implemented by stores that keep previous versions.
type Historian interface {
	History(ctx context.Context, key string, limit int) ([]Snapshot, error)
}

// DefaultKey names the builder document when none is configured.
const DefaultKey = "layout"

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

func checkKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("invalid key %q", key)
	}
	return nil
}

// Open returns the store for driver ("file" or "sqlite") rooted at dir.
func Open(driver, dir string) (Store, error) {
	switch driver {
	case "", "file":
		return NewFileStore(dir)
	case "sqlite":
		return OpenSQLite(dir)
	}
	return nil, fmt.Errorf("unknown storage driver %q", driver)
}

// SaveDocument encodes and stores doc.
func SaveDocument(ctx context.Context, s Store, key string, doc domain.Document) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	if err := s.Put(ctx, key, data); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

// LoadDocument reads and decodes a document. When the current version is
// corrupt and the store keeps history, the newest decodable snapshot is used.
func LoadDocument(ctx context.Context, s Store, key string) (domain.Document, error) {
	data, err := s.Get(ctx, key)
	if err != nil {
		return domain.Document{}, err
	}
	doc, derr := Decode(data)
	if derr == nil {
		return doc, nil
	}
	h, ok := s.(Historian)
	if !ok {
		return domain.Document{}, derr
	}
	snaps, herr := h.History(ctx, key, 10)
	if herr != nil {
		return domain.Document{}, fmt.Errorf("%w; history: %v", derr, herr)
	}
	for _, sn := range snaps {
		if d, err := Decode(sn.Data); err == nil {
			applog.WithComponent("storage").Warn("recovered document from history",
				slog.String("key", key), slog.Time("ts", sn.TS), slog.Any("err", derr))
			return d, nil
		}
	}
	return domain.Document{}, derr
}

// LoadOrDefault never fails: a missing document yields an empty one with a
// nil warning, a corrupt or oversized one yields an empty one plus the
// reason. The empty document restores to a fresh builder.
func LoadOrDefault(ctx context.Context, s Store, key string) (domain.Document, error) {
	doc, err := LoadDocument(ctx, s, key)
	switch {
	case err == nil:
		return doc, nil
	case errors.Is(err, ErrNotFound):
		return domain.Document{Version: domain.DocumentVersion}, nil
	}
	applog.WithComponent("storage").Warn("stored document unusable, starting fresh", slog.String("key", key), slog.Any("err", err))
	return domain.Document{Version: domain.DocumentVersion}, err
}
