// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package store provides persistence for named terms and evaluation history.
package store

import "time"

// Definition is a named term source.
type Definition struct {
	Name   string
	Source string
}

// Run is one recorded evaluation.
type Run struct {
	ID     int64
	Input  string
	Result string
	Steps  int
	At     time.Time
}

// Store is the interface for definition persistence.
type Store interface {
	// Get retrieves a definition by name. Returns nil if not found.
	Get(name string) (*Definition, error)
	// Put stores a definition, overwriting if it exists.
	Put(name, source string) error
	// Delete removes a definition by name.
	Delete(name string) error
	// List returns every definition sorted by name.
	List() ([]Definition, error)
	// Close releases resources.
	Close() error
}

// HistoryStore extends Store with an evaluation log.
type HistoryStore interface {
	Store
	// RecordRun appends a run. ID and a zero At are filled in by the store.
	RecordRun(r Run) error
	// Runs returns the most recent runs, newest first. limit <= 0 means all.
	Runs(limit int) ([]Run, error)
}

// MetadataStore extends Store with key/value metadata.
type MetadataStore interface {
	Store
	GetMetadata(key string) (string, error)
	SetMetadata(key, value string) error
}
