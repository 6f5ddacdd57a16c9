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
	"io"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	BackupsDirName = "backups"
	backupStamp    = "20060102-150405.000000"
	DefaultBackups = 10
)

// FileStore keeps one <key>.json file per key in Dir. Every Put copies the
// previous file into Dir/backups before replacing it.
type FileStore struct {
	Dir         string
	KeepBackups int
}

var (
	_ Store     = (*FileStore)(nil)
	_ Historian = (*FileStore)(nil)
)

// NewFileStore creates dir and its backups folder if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("storage dir is required")
	}
	if err := os.MkdirAll(filepath.Join(dir, BackupsDirName), 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileStore{Dir: dir, KeepBackups: DefaultBackups}, nil
}

func (s *FileStore) path(key string) string { return filepath.Join(s.Dir, key+".json") }

func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		if snaps, herr := s.History(context.Background(), key, 1); herr == nil && len(snaps) > 0 {
			return snaps[0].Data, nil
		}
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return b, nil
}

// Put writes data to a temp file in the same directory and renames it over
// the target after backing up the current file.
func (s *FileStore) Put(_ context.Context, key string, data []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if len(data) > MaxDocumentBytes {
		return ErrTooLarge
	}
	target := s.path(key)
	bdir := filepath.Join(s.Dir, BackupsDirName)
	if err := os.MkdirAll(bdir, 0o755); err != nil {
		return fmt.Errorf("ensure backups dir: %w", err)
	}
	if _, statErr := os.Stat(target); statErr == nil {
		bname := fmt.Sprintf("%s.json.%s.bak", key, time.Now().Format(backupStamp))
		if err := copyFile(target, filepath.Join(bdir, bname)); err != nil {
			return fmt.Errorf("backup current %s: %w", key, err)
		}
		s.prune(key)
	}

	temp := filepath.Join(s.Dir, fmt.Sprintf(".%s.tmp-%d-%d", key, os.Getpid(), rand.Int()))
	if err := writeFileSync(temp, data); err != nil {
		_ = os.Remove(temp)
		return fmt.Errorf("write temp %s: %w", key, err)
	}
	// Windows cannot rename over an existing file.
	if _, err := os.Stat(target); err == nil {
		_ = os.Remove(target)
	}
	if err := os.Rename(temp, target); err != nil {
		_ = os.Remove(temp)
		return fmt.Errorf("replace %s: %w", key, err)
	}
	return nil
}

// Delete removes the current file and its backups.
func (s *FileStore) Delete(_ context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	names, err := s.backups(key)
	if err != nil {
		return err
	}
	for _, n := range names {
		_ = os.Remove(filepath.Join(s.Dir, BackupsDirName, n))
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// History returns backups of key, newest first.
func (s *FileStore) History(_ context.Context, key string, limit int) ([]Snapshot, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	names, err := s.backups(key)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = len(names)
	}
	var out []Snapshot
	for i := len(names) - 1; i >= 0 && len(out) < limit; i-- {
		b, err := os.ReadFile(filepath.Join(s.Dir, BackupsDirName, names[i]))
		if err != nil {
			continue
		}
		stamp := strings.TrimSuffix(strings.TrimPrefix(names[i], key+".json."), ".bak")
		ts, _ := time.ParseInLocation(backupStamp, stamp, time.Local)
		out = append(out, Snapshot{TS: ts, Data: b})
	}
	return out, nil
}

// backups lists backup file names of key, oldest first.
func (s *FileStore) backups(key string) ([]string, error) {
	ents, err := os.ReadDir(filepath.Join(s.Dir, BackupsDirName))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read backups dir: %w", err)
	}
	var names []string
	for _, e := range ents {
		if n := e.Name(); strings.HasPrefix(n, key+".json.") && strings.HasSuffix(n, ".bak") {
			names = append(names, n)
		}
	}
	sort.Strings(names) // the timestamp sorts lexicographically
	return names, nil
}

func (s *FileStore) prune(key string) {
	if s.KeepBackups <= 0 {
		return
	}
	names, err := s.backups(key)
	if err != nil {
		return
	}
	for len(names) > s.KeepBackups {
		_ = os.Remove(filepath.Join(s.Dir, BackupsDirName, names[0]))
		names = names[1:]
	}
}

func writeFileSync(path string, data []byte) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err := f.Write(data); err != nil {
		return err
	}
	return f.Sync()
}

func copyFile(src, dst string) (err error) {
	sf, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = sf.Close() }()
	df, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := df.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err := io.Copy(df, sf); err != nil {
		return err
	}
	return df.Sync()
}
