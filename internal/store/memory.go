// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package store

import (
	"slices"
	"sync"
	"time"

	"github.com/samber/lo"
)

// Memory is an in-memory store for testing.
type Memory struct {
	mu       sync.RWMutex
	defs     map[string]string
	runs     []Run
	metadata map[string]string
}

// NewMemory creates a new in-memory store.
func NewMemory() *Memory {
	return &Memory{
		defs:     make(map[string]string),
		metadata: make(map[string]string),
	}
}

// Get retrieves a definition by name.
func (m *Memory) Get(name string) (*Definition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if src, ok := m.defs[name]; ok {
		return &Definition{Name: name, Source: src}, nil
	}
	return nil, nil
}

// Put stores a definition.
func (m *Memory) Put(name, source string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defs[name] = source
	return nil
}

// Delete removes a definition by name.
func (m *Memory) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.defs, name)
	return nil
}

// List returns every definition sorted by name.
func (m *Memory) List() ([]Definition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := lo.Keys(m.defs)
	slices.Sort(names)
	return lo.Map(names, func(name string, _ int) Definition {
		return Definition{Name: name, Source: m.defs[name]}
	}), nil
}

// RecordRun appends a run to the log.
func (m *Memory) RecordRun(r Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = int64(len(m.runs) + 1)
	if r.At.IsZero() {
		r.At = time.Now()
	}
	m.runs = append(m.runs, r)
	return nil
}

// Runs returns the most recent runs, newest first.
func (m *Memory) Runs(limit int) ([]Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := len(m.runs)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Run, 0, n)
	for i := len(m.runs) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, m.runs[i])
	}
	return out, nil
}

// Close is a no-op for memory store.
func (m *Memory) Close() error {
	return nil
}

// GetMetadata retrieves a metadata value by key.
func (m *Memory) GetMetadata(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.metadata[key], nil
}

// SetMetadata stores a metadata value by key.
func (m *Memory) SetMetadata(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.metadata[key] = value
	return nil
}
