// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package eval implements SKI reduction and the session that reports it.
package eval

import (
	"nickandperla.net/ski/internal/observer"
	"nickandperla.net/ski/internal/parser"
	"nickandperla.net/ski/internal/term"
)

// Session owns a root term and the listeners attached to it. Every Group in
// the tree reports its steps back to the session, so a reduction at any
// depth reaches the same listeners.
type Session struct {
	root      *term.Term
	listeners []observer.Listener
}

// Option configures a Session.
type Option func(*Session)

// WithListener attaches a listener at construction.
func WithListener(l observer.Listener) Option {
	return func(s *Session) { s.Attach(l) }
}

// NewSession takes ownership of t and binds every nested Group to the new
// session.
func NewSession(t *term.Term, opts ...Option) *Session {
	s := &Session{root: t}
	t.Bind(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Parse parses src and wraps the result in a session.
func Parse(src string, opts ...Option) (*Session, error) {
	t, err := parser.Parse(src)
	if err != nil {
		return nil, err
	}
	return NewSession(t, opts...), nil
}

// Attach adds a listener. Listeners are notified in attachment order.
func (s *Session) Attach(l observer.Listener) {
	s.listeners = append(s.listeners, l)
}

// Evaluate reduces the root term in place, sending ComputationStart, one
// ComputationStep per rule applied, and ComputationEnd.
func (s *Session) Evaluate() {
	s.notify(observer.ComputationStart)
	Evaluate(s.root)
	s.notify(observer.ComputationEnd)
}

// Step implements term.Sink.
func (s *Session) Step() {
	s.notify(observer.ComputationStep)
}

func (s *Session) notify(sig observer.Signal) {
	for _, l := range s.listeners {
		l.Notify(s.root, sig)
	}
}

// Term returns the root term.
func (s *Session) Term() *term.Term {
	return s.root
}

// String renders the root term.
func (s *Session) String() string {
	return s.root.String()
}

// Equal reports whether both sessions hold structurally equal terms.
func (s *Session) Equal(other *Session) bool {
	return s.root.Equal(other.root)
}
