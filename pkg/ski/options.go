// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package ski provides the public API for the SKI evaluator.
package ski

import (
	"io"

	"nickandperla.net/ski/internal/eval"
	"nickandperla.net/ski/internal/observer"
	"nickandperla.net/ski/internal/store"
	"nickandperla.net/ski/internal/term"
)

// Option configures a Runtime.
type Option func(*Runtime)

// WithSQLiteStore configures SQLite persistence at the given path. If the
// database cannot be opened the runtime runs without a store and Err
// reports why.
func WithSQLiteStore(path string) Option {
	return func(r *Runtime) {
		s, err := store.NewSQLite(path)
		if err != nil {
			r.setErr(err)
			return
		}
		r.store = s
	}
}

// WithMemoryStore configures an in-memory store (for testing).
func WithMemoryStore() Option {
	return func(r *Runtime) {
		r.store = store.NewMemory()
	}
}

// WithStore sets a custom store.
func WithStore(s Store) Option {
	return func(r *Runtime) {
		r.store = s
	}
}

// WithOutput sets the io.Writer trace output goes to.
func WithOutput(w io.Writer) Option {
	return func(r *Runtime) {
		r.out = w
	}
}

// WithTrace prints the term on start, after every step and at the end of
// each evaluation.
func WithTrace() Option {
	return func(r *Runtime) {
		r.trace = true
	}
}

// WithListener attaches l to every evaluation.
func WithListener(l Listener) Option {
	return func(r *Runtime) {
		r.listeners = append(r.listeners, l)
	}
}

// WithPrelude sets a custom prelude source to be loaded on startup.
// If not set, DefaultPrelude is used.
func WithPrelude(source string) Option {
	return func(r *Runtime) {
		r.prelude = source
	}
}

// WithNoStdlib disables loading the prelude.
func WithNoStdlib() Option {
	return func(r *Runtime) {
		r.noStdlib = true
	}
}

// WithNoHistory stops evaluations from being recorded in the store.
func WithNoHistory() Option {
	return func(r *Runtime) {
		r.noHistory = true
	}
}

// Store interface for custom stores.
type Store = store.Store

// Definition is a named term.
type Definition = store.Definition

// Run is a recorded evaluation.
type Run = store.Run

// Term is an SKI term tree.
type Term = term.Term

// Session is a parsed term together with its listeners.
type Session = eval.Session

// Listener receives evaluation signals.
type Listener = observer.Listener

// ListenerFunc adapts a function to Listener.
type ListenerFunc = observer.ListenerFunc

// Signal is the kind of evaluation event.
type Signal = observer.Signal

// Signal constants.
const (
	ComputationStart = observer.ComputationStart
	ComputationStep  = observer.ComputationStep
	ComputationEnd   = observer.ComputationEnd
)

// NewPrinter returns the reference listener, printing each intermediate
// term and a final step count to w.
func NewPrinter(w io.Writer) *observer.Printer {
	return observer.NewPrinter(w)
}
