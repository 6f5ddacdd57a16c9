/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package cli implements the layoutstudio command-line interface. Each
// command loads the stored layout, applies one builder operation and saves
// the result back.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"layoutstudio/internal/builder"
	"layoutstudio/internal/catalog"
	"layoutstudio/internal/config"
	"layoutstudio/internal/crash"
	applog "layoutstudio/internal/log"
	"layoutstudio/internal/storage"
	"layoutstudio/internal/version"
)

// crashKey receives the autosave written by a panic handler.
const crashKey = "crash-autosave"

// App holds the state shared by all commands of one invocation.
type App struct {
	out    io.Writer
	errOut io.Writer

	cfg    config.AppConfig
	apiKey string
	key    string
	store  storage.Store
	b      *builder.Builder
	log    *slog.Logger

	crash crash.Session
}

// New returns an App writing command output to out and logs to errOut.
func New(out, errOut io.Writer) *App {
	return &App{out: out, errOut: errOut}
}

// CrashSession is filled in once a layout is open. It is safe to pass to
// crash.Recover before that.
func (a *App) CrashSession() *crash.Session { return &a.crash }

// RootCommand builds the command tree.
func (a *App) RootCommand() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           "layoutstudio",
		Short:         "Grid-based page layout builder for presentation boards",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(verbose)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.close()
		},
	}
	root.SetVersionTemplate(version.String() + "\n")
	root.SetOut(a.out)
	root.SetErr(a.errOut)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		a.newInitCmd(),
		a.newShowCmd(),
		a.newOverviewCmd(),
		a.newPagesCmd(),
		a.newPlaceCmd(),
		a.newAltCmd(),
		a.newFlattenCmd(),
		a.newProofCmd(),
		a.newAssetsCmd(),
		a.newClassifyCmd(),
		a.newCaptionCmd(),
		a.newNarrativeCmd(),
		a.newHistoryCmd(),
		a.newConfigCmd(),
		a.newVersionCmd(),
	)
	return root
}

// Execute runs the command line args against a fresh command tree.
func (a *App) Execute(ctx context.Context, args []string) error {
	root := a.RootCommand()
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if cerr := a.close(); err == nil {
		err = cerr
	}
	return err
}

func (a *App) setup(verbose bool) error {
	cfg, key, err := config.Load()
	if err != nil {
		return err
	}
	opts := cfg.LogOptions()
	if verbose {
		opts.Level = "debug"
	}
	opts.Writer = a.errOut
	applog.Init(opts)
	a.cfg, a.apiKey = cfg, key
	a.key = cfg.Storage.Key
	if a.key == "" {
		a.key = storage.DefaultKey
	}
	a.log = applog.WithComponent("cli")
	return nil
}

// open loads the stored layout. A corrupt document is reported and
// replaced by a fresh layout.
func (a *App) open(ctx context.Context) error {
	if a.b != nil {
		return nil
	}
	dir, err := a.cfg.StorageDir()
	if err != nil {
		return err
	}
	s, err := storage.Open(a.cfg.Storage.Driver, dir)
	if err != nil {
		return err
	}
	a.store = s
	doc, err := storage.LoadOrDefault(ctx, s, a.key)
	if err != nil {
		if !errors.Is(err, storage.ErrCorrupt) {
			return err
		}
		a.log.Warn("stored layout unreadable, starting fresh", slog.String("key", a.key), slog.Any("err", err))
	}
	a.b = builder.Restore(doc, a.builderOptions())
	a.log.Debug("layout opened", slog.String("dir", dir), slog.String("key", a.key), slog.Int("pages", a.b.PageCount()))

	a.crash.ReportDir = filepath.Join(dir, storage.BackupsDirName)
	a.crash.Autosave = func() (string, error) {
		return crashKey, storage.SaveDocument(context.Background(), s, crashKey, a.b.Document())
	}
	return nil
}

func (a *App) builderOptions() builder.Options {
	return builder.Options{
		InitialPages: a.cfg.Builder.InitialPages,
		Interaction:  a.cfg.InteractionOptions(),
	}
}

func (a *App) save(ctx context.Context) error {
	if err := storage.SaveDocument(ctx, a.store, a.key, a.b.Document()); err != nil {
		return fmt.Errorf("save layout: %w", err)
	}
	return nil
}

// mutate opens the layout, runs fn and saves on success.
func (a *App) mutate(ctx context.Context, fn func(b *builder.Builder) error) error {
	if err := a.open(ctx); err != nil {
		return err
	}
	if err := fn(a.b); err != nil {
		return err
	}
	return a.save(ctx)
}

func (a *App) close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store, a.b = nil, nil
	return err
}

func (a *App) catalog() (*catalog.Catalog, error) {
	if a.cfg.Builder.Catalog == "" {
		return catalog.New(nil), nil
	}
	return catalog.LoadFile(a.cfg.Builder.Catalog)
}

func (a *App) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.out, format, args...)
}

// parseIndices reads page indices from args; "1,3" and "1 3" both work.
func parseIndices(args []string) ([]int, error) {
	var out []int
	for _, arg := range args {
		for _, f := range strings.Split(arg, ",") {
			f = strings.TrimSpace(f)
			if f == "" {
				continue
			}
			n, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("invalid page index %q", f)
			}
			out = append(out, n)
		}
	}
	if len(out) == 0 {
		return nil, errors.New("no page index given")
	}
	return out, nil
}

func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid page index %q", s)
	}
	return n, nil
}
