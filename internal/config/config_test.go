/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type memTokens map[string]string

func (m memTokens) Get(service, key string) (string, error) { return m[service+"/"+key], nil }
func (m memTokens) Set(service, key, value string) error {
	m[service+"/"+key] = value
	return nil
}
func (m memTokens) Delete(service, key string) error {
	delete(m, service+"/"+key)
	return nil
}

// isolate points config and .env lookups at a temp dir and stubs the keyring.
func isolate(t *testing.T) (string, memTokens) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)
	t.Setenv(EnvAIAPIKey, "")
	oldEnv := DotEnvFile
	DotEnvFile = filepath.Join(dir, ".env")
	toks := memTokens{}
	prev := SetTokenStore(toks)
	t.Cleanup(func() {
		DotEnvFile = oldEnv
		SetTokenStore(prev)
	})
	return dir, toks
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	isolate(t)
	cfg, key, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if key != "" {
		t.Fatalf("unexpected api key %q", key)
	}
	if cfg.Builder.EditViewScale != 0.8 || cfg.Builder.DropWidth != 12 || cfg.Builder.DropHeight != 10 {
		t.Fatalf("builder defaults got %#v", cfg.Builder)
	}
	if cfg.Storage.Driver != "file" || cfg.AI.Provider != "mock" {
		t.Fatalf("defaults got storage %q ai %q", cfg.Storage.Driver, cfg.AI.Provider)
	}
}

func TestSaveLoadRoundTripAndKeyring(t *testing.T) {
	dir, toks := isolate(t)
	cfg := Defaults()
	cfg.Storage.Driver = "sqlite"
	cfg.Builder.Catalog = "assets.yaml"
	cfg.AI.Provider = "openai"
	if err := Save(cfg, "sk-test"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Fatalf("config file missing: %v", err)
	}
	if toks[keyringService+"/"+keyringAIKey] != "sk-test" {
		t.Fatalf("api key not stored in keyring")
	}
	got, key, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Storage.Driver != "sqlite" || got.Builder.Catalog != "assets.yaml" || got.AI.Provider != "openai" || key != "sk-test" {
		t.Fatalf("round trip got %#v key %q", got, key)
	}
	data, _ := os.ReadFile(filepath.Join(dir, "config.yaml"))
	if len(data) == 0 || strings.Contains(string(data), "sk-test") {
		t.Fatalf("api key must not be written to the config file")
	}
	if err := DeleteAPIKey(); err != nil {
		t.Fatalf("DeleteAPIKey: %v", err)
	}
	if _, key, _ := Load(); key != "" {
		t.Fatalf("key still present after delete")
	}
}

func TestSetAPIKeyLeavesConfigFileAlone(t *testing.T) {
	dir, _ := isolate(t)
	if err := SetAPIKey(""); err == nil {
		t.Fatalf("empty key accepted")
	}
	if err := SetAPIKey("sk-only"); err != nil {
		t.Fatalf("SetAPIKey: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); !os.IsNotExist(err) {
		t.Fatalf("config file written by SetAPIKey: %v", err)
	}
	if _, key, _ := Load(); key != "sk-only" {
		t.Fatalf("got key %q want sk-only", key)
	}
}

func TestEnvOverridesWinOverFileAndKeyring(t *testing.T) {
	_, toks := isolate(t)
	toks[keyringService+"/"+keyringAIKey] = "from-keyring"
	cfg := Defaults()
	cfg.AI.Model = "file-model"
	if err := Save(cfg, ""); err != nil {
		t.Fatalf("Save: %v", err)
	}
	t.Setenv(EnvAIModel, "env-model")
	t.Setenv(EnvAIAPIKey, "from-env")
	t.Setenv(EnvStorageDriver, "SQLite")
	t.Setenv(EnvAITimeoutMs, "1500")
	got, key, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.AI.Model != "env-model" || key != "from-env" || got.Storage.Driver != "sqlite" {
		t.Fatalf("overrides got model %q key %q driver %q", got.AI.Model, key, got.Storage.Driver)
	}
	if got.AITimeout() != 1500*time.Millisecond {
		t.Fatalf("timeout got %v", got.AITimeout())
	}
	if env, ok := EnvOverrideFor("ai.model"); !ok || env != EnvAIModel {
		t.Fatalf("EnvOverrideFor got %q %v", env, ok)
	}
	if _, ok := EnvOverrideFor("ai.base_url"); ok {
		t.Fatalf("ai.base_url should not be overridden")
	}
}

func TestDotEnvIsLoaded(t *testing.T) {
	dir, _ := isolate(t)
	t.Setenv(EnvCatalog, "")
	_ = os.Unsetenv(EnvCatalog)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(EnvCatalog+"=from-dotenv.json\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, _, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Builder.Catalog != "from-dotenv.json" {
		t.Fatalf("catalog got %q", got.Builder.Catalog)
	}
}

func TestMergeIncludesLogging(t *testing.T) {
	dst := Defaults()
	src := Defaults()
	src.Logging.Level = "DEBUG"
	src.Logging.Format = "json"
	src.Logging.Source = true
	src.Logging.File = "C:/tmp/ls.log"
	mergeInto(&dst, &src)
	if dst.Logging.Level != "debug" || dst.Logging.Format != "json" || !dst.Logging.Source || dst.Logging.File != "C:/tmp/ls.log" {
		t.Fatalf("logging fields not merged correctly: %#v", dst.Logging)
	}
	opts := dst.LogOptions()
	if opts.Level != "debug" || !opts.AddSource {
		t.Fatalf("log options got %#v", opts)
	}
}

func TestMergeClampsGridZoom(t *testing.T) {
	dst := Defaults()
	src := AppConfig{Builder: BuilderConfig{GridZoom: 9}}
	mergeInto(&dst, &src)
	if dst.Builder.GridZoom != 1.5 {
		t.Fatalf("grid zoom got %v want 1.5", dst.Builder.GridZoom)
	}
	if o := dst.InteractionOptions(); o.EditScale != 0.8 || o.DropWidth != 12 {
		t.Fatalf("interaction options got %#v", o)
	}
}
