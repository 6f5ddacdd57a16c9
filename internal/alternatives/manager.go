/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package alternatives keeps named, independently editable snapshots of a
// layout. Every snapshot is deep-copied on the way in and on the way out.
package alternatives

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"layoutstudio/internal/domain"
)

const (
	DefaultID    = "default"
	DefaultName  = "Original"
	ProposalName = "AI Proposal"
)

var (
	// ErrLastAlternative rejects deleting the only remaining alternative.
	ErrLastAlternative = errors.New("at least one layout must remain")
	// ErrProtectedAlternative rejects deleting the default alternative.
	ErrProtectedAlternative = errors.New("the original layout cannot be deleted")
)

// Manager owns the alternative list and the active id. Not safe for concurrent use.
type Manager struct {
	alts   []domain.LayoutAlternative
	active string

	now   func() time.Time
	newID func(prefix string) string
}

// New returns an empty manager. Call CreateDefault before use.
func New() *Manager {
	return &Manager{
		now:   time.Now,
		newID: func(prefix string) string { return prefix + "-" + uuid.NewString() },
	}
}

// FromDocument restores a manager from a persisted document. An unknown active
// id falls back to the first alternative.
func FromDocument(doc domain.Document) *Manager {
	m := New()
	seen := make(map[string]bool, len(doc.Alternatives))
	for _, a := range doc.Alternatives {
		if a.ID == "" || seen[a.ID] {
			continue
		}
		seen[a.ID] = true
		m.alts = append(m.alts, a.Clone())
	}
	m.active = doc.ActiveID
	if m.index(m.active) < 0 && len(m.alts) > 0 {
		m.active = m.alts[0].ID
	}
	return m
}

// CreateDefault installs the "Original" alternative holding state. It does
// nothing when alternatives already exist.
func (m *Manager) CreateDefault(state domain.LayoutState) bool {
	if len(m.alts) > 0 {
		return false
	}
	m.alts = append(m.alts, domain.LayoutAlternative{
		ID:        DefaultID,
		Name:      DefaultName,
		CreatedAt: m.now().UnixMilli(),
		State:     state.Clone(),
	})
	m.active = DefaultID
	return true
}

// Len returns the number of alternatives.
func (m *Manager) Len() int { return len(m.alts) }

// ActiveID returns the id of the active alternative.
func (m *Manager) ActiveID() string { return m.active }

// Get returns a deep copy of one alternative.
func (m *Manager) Get(id string) (domain.LayoutAlternative, bool) {
	if i := m.index(id); i >= 0 {
		return m.alts[i].Clone(), true
	}
	return domain.LayoutAlternative{}, false
}

// Active returns a deep copy of the active alternative.
func (m *Manager) Active() (domain.LayoutAlternative, bool) { return m.Get(m.active) }

// List returns deep copies of all alternatives in tab order.
func (m *Manager) List() []domain.LayoutAlternative {
	out := make([]domain.LayoutAlternative, len(m.alts))
	for i, a := range m.alts {
		out[i] = a.Clone()
	}
	return out
}

// Branch copies the source alternative under a new id named "<name> (Copy)".
// The active alternative does not change.
func (m *Manager) Branch(sourceID string) (string, bool) {
	i := m.index(sourceID)
	if i < 0 {
		return "", false
	}
	src := m.alts[i]
	return m.add("alt", src.Name+" (Copy)", src.State), true
}

// AddProposal appends an AI proposal alternative and makes it active.
func (m *Manager) AddProposal(state domain.LayoutState) string {
	id := m.add("ai", ProposalName, state)
	m.active = id
	return id
}

func (m *Manager) add(prefix, name string, state domain.LayoutState) string {
	a := domain.LayoutAlternative{
		ID:        m.newID(prefix),
		Name:      name,
		CreatedAt: m.now().UnixMilli(),
		State:     state.Clone(),
	}
	m.alts = append(m.alts, a)
	return a.ID
}

// SwitchTo activates id and returns a deep copy of its state for the live stores.
func (m *Manager) SwitchTo(id string) (domain.LayoutState, bool) {
	i := m.index(id)
	if i < 0 {
		return domain.LayoutState{}, false
	}
	m.active = id
	return m.alts[i].State.Clone(), true
}

// Sync stores a deep copy of the live state into the active alternative.
func (m *Manager) Sync(state domain.LayoutState) {
	if i := m.index(m.active); i >= 0 {
		m.alts[i].State = state.Clone()
	}
}

// Rename sets a trimmed, non-empty name.
func (m *Manager) Rename(id, name string) bool {
	name = strings.TrimSpace(name)
	i := m.index(id)
	if i < 0 || name == "" {
		return false
	}
	m.alts[i].Name = name
	return true
}

// Delete removes an alternative. Deleting the active one activates its left
// neighbor, or the first remaining alternative, and returns that state with
// switched set. Unknown ids are ignored.
func (m *Manager) Delete(id string) (next domain.LayoutState, switched bool, err error) {
	i := m.index(id)
	if i < 0 {
		return domain.LayoutState{}, false, nil
	}
	if len(m.alts) <= 1 {
		return domain.LayoutState{}, false, ErrLastAlternative
	}
	if id == DefaultID {
		return domain.LayoutState{}, false, ErrProtectedAlternative
	}
	m.alts = append(m.alts[:i:i], m.alts[i+1:]...)
	if m.active != id {
		return domain.LayoutState{}, false, nil
	}
	target := 0
	if i > 0 {
		target = i - 1
	}
	m.active = m.alts[target].ID
	return m.alts[target].State.Clone(), true, nil
}

// Document returns the persisted form of all alternatives.
func (m *Manager) Document() domain.Document {
	return domain.Document{
		Version:      domain.DocumentVersion,
		ActiveID:     m.active,
		Alternatives: m.List(),
	}
}

func (m *Manager) index(id string) int {
	for i := range m.alts {
		if m.alts[i].ID == id {
			return i
		}
	}
	return -1
}
