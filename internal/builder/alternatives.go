/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0
 */

package builder

import (
	"context"
	"log/slog"

	"layoutstudio/internal/domain"
	applog "layoutstudio/internal/log"
)

// ActiveAlternative returns the id and name of the active alternative.
func (b *Builder) ActiveAlternative() (id, name string) {
	a, _ := b.alts.Active()
	return a.ID, a.Name
}

// Alternatives lists deep copies of all alternatives in tab order.
func (b *Builder) Alternatives() []domain.LayoutAlternative { return b.alts.List() }

// BranchAlternative copies the source alternative and switches to the copy.
func (b *Builder) BranchAlternative(sourceID string) (string, bool) {
	b.sync()
	id, ok := b.alts.Branch(sourceID)
	if !ok {
		b.log.Debug("branch ignored", slog.String("source", sourceID))
		return "", false
	}
	b.SwitchAlternative(id)
	b.log.InfoContext(altCtx(id), "alternative branched", slog.String("source", sourceID))
	return id, true
}

// SwitchAlternative replaces the live stores with a copy of the target's state.
func (b *Builder) SwitchAlternative(id string) bool {
	b.sync()
	st, ok := b.alts.SwitchTo(id)
	if !ok {
		b.log.DebugContext(altCtx(id), "switch ignored")
		return false
	}
	b.load(st)
	b.sync()
	b.log.DebugContext(altCtx(id), "alternative switched", slog.Int("pages", b.pages.Count()))
	return true
}

// RenameAlternative sets a new non-blank name.
func (b *Builder) RenameAlternative(id, name string) bool { return b.alts.Rename(id, name) }

// DeleteAlternative removes an alternative. It returns
// alternatives.ErrLastAlternative or alternatives.ErrProtectedAlternative
// when the delete is rejected.
func (b *Builder) DeleteAlternative(id string) error {
	b.sync()
	next, switched, err := b.alts.Delete(id)
	if err != nil {
		b.log.WarnContext(altCtx(id), "alternative delete rejected", slog.Any("err", err))
		return err
	}
	if switched {
		b.load(next)
		b.sync()
	}
	b.log.InfoContext(altCtx(id), "alternative deleted", slog.Bool("switched", switched))
	return nil
}

func altCtx(id string) context.Context { return applog.WithAlternative(context.Background(), id) }
