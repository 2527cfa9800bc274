// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package ski

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"nickandperla.net/ski/internal/eval"
	"nickandperla.net/ski/internal/library"
	"nickandperla.net/ski/internal/observer"
	"nickandperla.net/ski/internal/parser"
	"nickandperla.net/ski/internal/store"
	"nickandperla.net/ski/internal/term"
)

// Runtime evaluates SKI terms with a library of named definitions.
type Runtime struct {
	store     store.Store
	library   *library.Library
	out       io.Writer
	trace     bool
	listeners []Listener
	prelude   string // Custom prelude source (if empty, uses DefaultPrelude)
	noStdlib  bool   // If true, skip loading prelude
	noHistory bool   // If true, evaluations are not recorded
	err       error  // First setup error
}

// New creates a new runtime with the given options.
func New(opts ...Option) *Runtime {
	r := &Runtime{out: os.Stdout}

	for _, opt := range opts {
		opt(r)
	}

	r.library = library.New(r.store)

	// Load prelude unless disabled
	if !r.noStdlib {
		prelude := r.prelude
		if prelude == "" {
			prelude = DefaultPrelude
		}

		// Check for database override
		if ms, ok := r.store.(store.MetadataStore); ok {
			if saved, err := ms.GetMetadata(PreludeKey); err == nil && saved != "" {
				prelude = saved
			}
		}

		if err := r.library.LoadPrelude(prelude); err != nil {
			r.setErr(fmt.Errorf("prelude: %w", err))
		}
	}

	return r
}

func (r *Runtime) setErr(err error) {
	if r.err == nil {
		r.err = err
	}
}

// Err returns the first error met while setting up the runtime, such as a
// database that could not be opened. The runtime stays usable without it.
func (r *Runtime) Err() error {
	return r.err
}

// Eval expands, parses and evaluates src, returning the normal form.
func (r *Runtime) Eval(src string) (string, error) {
	expanded, err := r.library.Expand(src)
	if err != nil {
		return "", err
	}
	t, err := parser.Parse(expanded)
	if err != nil {
		return "", err
	}

	steps := 0
	s := eval.NewSession(t)
	if r.trace {
		s.Attach(observer.NewPrinter(r.out))
	}
	for _, l := range r.listeners {
		s.Attach(l)
	}
	s.Attach(observer.ListenerFunc(func(_ *term.Term, sig observer.Signal) {
		if sig == observer.ComputationStep {
			steps++
		}
	}))
	s.Evaluate()

	result := s.String()
	if hs, ok := r.store.(store.HistoryStore); ok && !r.noHistory {
		run := store.Run{Input: strings.TrimSpace(src), Result: result, Steps: steps}
		if err := hs.RecordRun(run); err != nil {
			return result, fmt.Errorf("record history: %w", err)
		}
	}
	return result, nil
}

// Exec runs one line: a NAME = TERM definition, or a term to evaluate.
// Definitions return an empty result.
func (r *Runtime) Exec(line string) (string, error) {
	if name, body, ok := library.ParseDefinition(line); ok {
		return "", r.Define(name, body)
	}
	return r.Eval(line)
}

// EvalReader executes every line of reader. Blank lines and # comments are
// skipped. It stops at the first error, which carries the line number.
// Lines may be of any length.
func (r *Runtime) EvalReader(reader io.Reader) ([]string, error) {
	var results []string
	br := bufio.NewReader(reader)
	for n := 1; ; n++ {
		text, readErr := br.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return results, readErr
		}

		line := strings.TrimSpace(library.StripComment(text))
		if line != "" {
			_, _, isDef := library.ParseDefinition(line)
			result, err := r.Exec(line)
			if err != nil {
				return results, fmt.Errorf("line %d: %w", n, err)
			}
			if !isDef {
				results = append(results, result)
			}
		}

		if readErr == io.EOF {
			return results, nil
		}
	}
}

// EvalFile executes a file line by line.
func (r *Runtime) EvalFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return r.EvalReader(f)
}

// Define stores a named term, persisting it when a store is configured.
func (r *Runtime) Define(name, src string) error {
	return r.library.Define(name, src)
}

// Undefine removes a named term.
func (r *Runtime) Undefine(name string) error {
	return r.library.Undefine(name)
}

// Lookup returns the source of a named term.
func (r *Runtime) Lookup(name string) (string, bool) {
	return r.library.Lookup(name)
}

// Definitions returns every named term sorted by name.
func (r *Runtime) Definitions() ([]Definition, error) {
	return r.library.Definitions()
}

// History returns up to limit recorded evaluations, newest first. It
// returns nothing when the store keeps no history.
func (r *Runtime) History(limit int) ([]Run, error) {
	hs, ok := r.store.(store.HistoryStore)
	if !ok {
		return nil, nil
	}
	return hs.Runs(limit)
}

// SetTrace turns step-by-step printing on or off.
func (r *Runtime) SetTrace(on bool) {
	r.trace = on
}

// SetOutput redirects step-by-step printing to w.
func (r *Runtime) SetOutput(w io.Writer) {
	r.out = w
}

// Trace reports whether step-by-step printing is on.
func (r *Runtime) Trace() bool {
	return r.trace
}

// Close releases resources.
func (r *Runtime) Close() error {
	if r.store != nil {
		return r.store.Close()
	}
	return nil
}

// Parse parses src into a session that can be evaluated and observed on
// its own. References to named terms are not expanded.
func Parse(src string) (*Session, error) {
	return eval.Parse(src)
}

// IsIncomplete reports whether err means input ended inside an open group.
func IsIncomplete(err error) bool {
	return parser.IsIncomplete(err)
}
