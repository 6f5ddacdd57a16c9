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
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"layoutstudio/internal/ai"
	"layoutstudio/internal/interaction"
	applog "layoutstudio/internal/log"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables (and a .env file in the working directory) are read-only overrides.
// The AI API key never lands in the file; it lives in the OS keychain.
//
// config_version: bump when the structure changes in a backward-incompatible way.

type GeneralConfig struct {
	Theme string `yaml:"theme"` // "system" | "light" | "dark"
}

type BuilderConfig struct {
	InitialPages  int     `yaml:"initial_pages"`
	EditViewScale float64 `yaml:"edit_view_scale"`
	GridZoom      float64 `yaml:"grid_zoom"`
	DropWidth     int     `yaml:"drop_width"`
	DropHeight    int     `yaml:"drop_height"`
	Catalog       string  `yaml:"catalog"` // asset catalog file (.yaml or .json)
}

type StorageConfig struct {
	Driver string `yaml:"driver"` // "file" | "sqlite"
	Dir    string `yaml:"dir"`    // empty means <config dir>/data
	Key    string `yaml:"key"`
}

type AIConfig struct {
	Provider  string `yaml:"provider"` // "mock" | "openai"
	Model     string `yaml:"model"`
	BaseURL   string `yaml:"base_url"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	General       GeneralConfig `yaml:"general"`
	Builder       BuilderConfig `yaml:"builder"`
	Storage       StorageConfig `yaml:"storage"`
	AI            AIConfig      `yaml:"ai"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		General:       GeneralConfig{Theme: "system"},
		Builder:       BuilderConfig{InitialPages: 1, EditViewScale: 0.8, GridZoom: 1, DropWidth: 12, DropHeight: 10},
		Storage:       StorageConfig{Driver: "file", Key: "layout"},
		AI:            AIConfig{Provider: "mock", Model: "gpt-4o-mini", TimeoutMs: 30000},
		Logging:       LoggingConfig{Level: "info", Format: "console"},
	}
}

// Env var names used as overrides.
const (
	EnvConfigDir     = "LS_CONFIG_DIR"
	EnvCatalog       = "LS_CATALOG"
	EnvStorageDriver = "LS_STORAGE_DRIVER"
	EnvStorageDir    = "LS_STORAGE_DIR"
	EnvStorageKey    = "LS_STORAGE_KEY"
	EnvAIProvider    = "LS_AI_PROVIDER"
	EnvAIModel       = "LS_AI_MODEL"
	EnvAIBaseURL     = "LS_AI_BASE_URL"
	EnvAITimeoutMs   = "LS_AI_TIMEOUT_MS"
	EnvAIAPIKey      = "LS_AI_API_KEY"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "LS_LOG_LEVEL"
	EnvLogFormat = "LS_LOG_FORMAT"
	EnvLogSource = "LS_LOG_SOURCE"
	EnvLogFile   = "LS_LOG_FILE"
)

// ConfigDir returns the per-user config directory. LS_CONFIG_DIR wins.
func ConfigDir() (string, error) {
	if v := strings.TrimSpace(os.Getenv(EnvConfigDir)); v != "" {
		return v, nil
	}
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "LayoutStudio")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "LayoutStudio")
	default: // linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = filepath.Join(xdg, "layoutstudio")
		} else {
			base = filepath.Join(os.Getenv("HOME"), ".config", "layoutstudio")
		}
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return base, nil
}

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// DotEnvFile is loaded by Load when present. Existing variables are not overridden.
var DotEnvFile = ".env"

// Load reads the user config file (if present), applies defaults, and merges environment overrides.
// The AI API key is returned separately: LS_AI_API_KEY first, then the keyring.
func Load() (AppConfig, string, error) {
	cfg := Defaults()
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		applog.WithComponent("config").Warn("ignoring unreadable .env", "path", DotEnvFile, "err", err)
	}
	path, err := ConfigPath()
	if err != nil {
		return cfg, "", err
	}
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return cfg, "", fmt.Errorf("parse %s: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg)
	}
	applyEnvOverrides(&cfg)
	if key := strings.TrimSpace(os.Getenv(EnvAIAPIKey)); key != "" {
		return cfg, key, nil
	}
	key, _ := tokenStore.Get(keyringService, keyringAIKey)
	return cfg, key, nil
}

// Save writes the user config YAML and persists the API key into the OS keyring (if non-empty).
func Save(cfg AppConfig, apiKey string) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return err
	}
	if apiKey != "" {
		if err := tokenStore.Set(keyringService, keyringAIKey, apiKey); err != nil {
			return fmt.Errorf("store api key: %w", err)
		}
	}
	return nil
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if src.General.Theme != "" {
		dst.General.Theme = src.General.Theme
	}
	// builder
	if src.Builder.InitialPages > 0 {
		dst.Builder.InitialPages = src.Builder.InitialPages
	}
	if src.Builder.EditViewScale > 0 {
		dst.Builder.EditViewScale = src.Builder.EditViewScale
	}
	if src.Builder.GridZoom > 0 {
		dst.Builder.GridZoom = interaction.ClampZoom(src.Builder.GridZoom)
	}
	if src.Builder.DropWidth > 0 {
		dst.Builder.DropWidth = src.Builder.DropWidth
	}
	if src.Builder.DropHeight > 0 {
		dst.Builder.DropHeight = src.Builder.DropHeight
	}
	if strings.TrimSpace(src.Builder.Catalog) != "" {
		dst.Builder.Catalog = strings.TrimSpace(src.Builder.Catalog)
	}
	// storage
	if src.Storage.Driver != "" {
		dst.Storage.Driver = strings.ToLower(strings.TrimSpace(src.Storage.Driver))
	}
	if src.Storage.Dir != "" {
		dst.Storage.Dir = src.Storage.Dir
	}
	if src.Storage.Key != "" {
		dst.Storage.Key = src.Storage.Key
	}
	// ai
	if src.AI.Provider != "" {
		dst.AI.Provider = strings.ToLower(strings.TrimSpace(src.AI.Provider))
	}
	if src.AI.Model != "" {
		dst.AI.Model = src.AI.Model
	}
	if src.AI.BaseURL != "" {
		dst.AI.BaseURL = src.AI.BaseURL
	}
	if src.AI.TimeoutMs != 0 {
		dst.AI.TimeoutMs = src.AI.TimeoutMs
	}
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func truthy(v string) bool {
	lv := strings.ToLower(v)
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}

func applyEnvOverrides(cfg *AppConfig) {
	str := map[string]*string{
		EnvCatalog:       &cfg.Builder.Catalog,
		EnvStorageDir:    &cfg.Storage.Dir,
		EnvStorageKey:    &cfg.Storage.Key,
		EnvAIModel:       &cfg.AI.Model,
		EnvAIBaseURL:     &cfg.AI.BaseURL,
		EnvLogFile:       &cfg.Logging.File,
		EnvStorageDriver: &cfg.Storage.Driver,
		EnvAIProvider:    &cfg.AI.Provider,
		EnvLogLevel:      &cfg.Logging.Level,
		EnvLogFormat:     &cfg.Logging.Format,
	}
	for env, dst := range str {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			*dst = v
		}
	}
	for _, p := range []*string{&cfg.Storage.Driver, &cfg.AI.Provider, &cfg.Logging.Level, &cfg.Logging.Format} {
		*p = strings.ToLower(*p)
	}
	if v := strings.TrimSpace(os.Getenv(EnvAITimeoutMs)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.AI.TimeoutMs = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = truthy(v)
	}
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	env, ok := map[string]string{
		"builder.catalog": EnvCatalog,
		"storage.driver":  EnvStorageDriver,
		"storage.dir":     EnvStorageDir,
		"storage.key":     EnvStorageKey,
		"ai.provider":     EnvAIProvider,
		"ai.model":        EnvAIModel,
		"ai.base_url":     EnvAIBaseURL,
		"ai.timeout_ms":   EnvAITimeoutMs,
		"ai.api_key":      EnvAIAPIKey,
		"logging.level":   EnvLogLevel,
		"logging.format":  EnvLogFormat,
		"logging.source":  EnvLogSource,
		"logging.file":    EnvLogFile,
	}[key]
	if !ok || os.Getenv(env) == "" {
		return "", false
	}
	return env, true
}

// StorageDir resolves the storage directory.
func (c AppConfig) StorageDir() (string, error) {
	if c.Storage.Dir != "" {
		return c.Storage.Dir, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "data"), nil
}

// InteractionOptions maps the builder section onto gesture options.
func (c AppConfig) InteractionOptions() interaction.Options {
	return interaction.Options{
		EditScale:  c.Builder.EditViewScale,
		DropWidth:  c.Builder.DropWidth,
		DropHeight: c.Builder.DropHeight,
	}
}

// AISettings combines the AI section with the resolved API key.
func (c AppConfig) AISettings(apiKey string) ai.Settings {
	return ai.Settings{Provider: c.AI.Provider, Model: c.AI.Model, APIKey: apiKey, BaseURL: c.AI.BaseURL}
}

// AITimeout returns the per-request timeout.
func (c AppConfig) AITimeout() time.Duration {
	if c.AI.TimeoutMs <= 0 {
		return time.Duration(Defaults().AI.TimeoutMs) * time.Millisecond
	}
	return time.Duration(c.AI.TimeoutMs) * time.Millisecond
}

// LogOptions maps the logging section onto logger options.
func (c AppConfig) LogOptions() applog.Options {
	return applog.Options{
		Level:     c.Logging.Level,
		Format:    c.Logging.Format,
		AddSource: c.Logging.Source,
		File:      c.Logging.File,
	}
}
