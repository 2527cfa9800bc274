// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package observer defines the notifications a session sends while it
// evaluates a term, and the listeners that receive them.
package observer

import (
	"fmt"
	"io"

	"nickandperla.net/ski/internal/term"
)

// Signal is the kind of event being reported.
type Signal int

const (
	// ComputationStart is sent once before any reduction.
	ComputationStart Signal = iota
	// ComputationStep is sent once per S, K or I rule applied anywhere in
	// the tree.
	ComputationStep
	// ComputationEnd is sent once after evaluation returns.
	ComputationEnd
)

// String returns the string representation of a Signal.
func (s Signal) String() string {
	switch s {
	case ComputationStart:
		return "START"
	case ComputationStep:
		return "STEP"
	case ComputationEnd:
		return "END"
	default:
		return "UNKNOWN"
	}
}

// Listener receives signals together with the whole top-level term.
// Listeners are called synchronously and must not modify the term.
type Listener interface {
	Notify(t *term.Term, sig Signal)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(t *term.Term, sig Signal)

// Notify calls f(t, sig).
func (f ListenerFunc) Notify(t *term.Term, sig Signal) {
	f(t, sig)
}

// Printer writes the term on start and on every step, then a summary with
// the step count on end.
type Printer struct {
	w     io.Writer
	steps int
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Steps returns the number of steps seen so far.
func (p *Printer) Steps() int {
	return p.steps
}

func (p *Printer) Notify(t *term.Term, sig Signal) {
	switch sig {
	case ComputationStart:
		fmt.Fprintf(p.w, "starting combinator: %s\n", t)
	case ComputationStep:
		fmt.Fprintf(p.w, "%s\n", t)
		p.steps++
	case ComputationEnd:
		fmt.Fprintf(p.w, "derived %s after %d steps\n", t, p.steps)
	}
}

// Event is one recorded notification.
type Event struct {
	Signal Signal
	Term   string // Rendering of the top-level term when the signal was sent
}

// Recorder keeps every notification it receives.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Notify(t *term.Term, sig Signal) {
	r.Events = append(r.Events, Event{Signal: sig, Term: t.String()})
}

// Steps counts the recorded ComputationStep events.
func (r *Recorder) Steps() int {
	n := 0
	for _, ev := range r.Events {
		if ev.Signal == ComputationStep {
			n++
		}
	}
	return n
}

// Reset discards recorded events.
func (r *Recorder) Reset() {
	r.Events = nil
}
