// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package library keeps named terms and expands references to them.
//
// A definition is written NAME = TERM. Inside input, @NAME stands for the
// parenthesized body of NAME. Bodies are stored unexpanded, so a reference
// always sees the current definition of the names it uses.
package library

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"unicode"

	"github.com/samber/lo"

	"nickandperla.net/ski/internal/parser"
	"nickandperla.net/ski/internal/store"
)

var (
	ErrUndefined   = errors.New("undefined name")
	ErrCycle       = errors.New("recursive definition")
	ErrInvalidName = errors.New("invalid name")
)

// RefPrefix introduces a reference to a named term.
const RefPrefix = '@'

// Library is a thread-safe set of named terms, optionally backed by a
// store. Names missing from memory are looked up in the store and cached.
type Library struct {
	mu    sync.RWMutex
	defs  map[string]string
	store store.Store
}

// New creates a library. s may be nil.
func New(s store.Store) *Library {
	return &Library{
		defs:  make(map[string]string),
		store: s,
	}
}

// ValidName reports whether name can be defined and referenced.
func ValidName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if !isIdentChar(r) || (i == 0 && unicode.IsDigit(r)) {
			return false
		}
	}
	return true
}

func isIdentChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// Define validates and stores a definition, persisting it when the library
// has a store.
func (l *Library) Define(name, src string) error {
	if err := l.set(name, src); err != nil {
		return err
	}
	if l.store != nil {
		if err := l.store.Put(name, normalizeSource(src)); err != nil {
			return fmt.Errorf("persist %s: %w", name, err)
		}
	}
	return nil
}

// set validates and stores a definition in memory only.
func (l *Library) set(name, src string) error {
	if !ValidName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	src = normalizeSource(src)
	expanded, err := l.expand(src, []string{name}, &store.Definition{Name: name, Source: src})
	if err != nil {
		return err
	}
	if _, err := parser.Parse(expanded); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.defs[name] = src
	return nil
}

// Lookup returns the source of name.
func (l *Library) Lookup(name string) (string, bool) {
	l.mu.RLock()
	src, ok := l.defs[name]
	l.mu.RUnlock()
	if ok || l.store == nil {
		return src, ok
	}

	d, err := l.store.Get(name)
	if err != nil || d == nil {
		return "", false
	}
	l.mu.Lock()
	l.defs[name] = d.Source
	l.mu.Unlock()
	return d.Source, true
}

// Undefine removes name from memory and from the store.
func (l *Library) Undefine(name string) error {
	l.mu.Lock()
	_, ok := l.defs[name]
	delete(l.defs, name)
	l.mu.Unlock()

	if l.store != nil {
		d, err := l.store.Get(name)
		if err != nil {
			return err
		}
		if d != nil {
			ok = true
			if err := l.store.Delete(name); err != nil {
				return err
			}
		}
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrUndefined, name)
	}
	return nil
}

// Definitions returns every known definition sorted by name, including
// those only present in the store.
func (l *Library) Definitions() ([]store.Definition, error) {
	all := make(map[string]string)
	if l.store != nil {
		stored, err := l.store.List()
		if err != nil {
			return nil, err
		}
		for _, d := range stored {
			all[d.Name] = d.Source
		}
	}

	l.mu.RLock()
	for name, src := range l.defs {
		all[name] = src
	}
	l.mu.RUnlock()

	names := lo.Keys(all)
	slices.Sort(names)
	return lo.Map(names, func(name string, _ int) store.Definition {
		return store.Definition{Name: name, Source: all[name]}
	}), nil
}

// Expand removes whitespace from src and replaces every @NAME with the
// parenthesized expansion of NAME.
func (l *Library) Expand(src string) (string, error) {
	return l.expand(src, nil, nil)
}

// expand resolves references depth-first. stack holds the names being
// expanded; override, if set, shadows the library for one name.
func (l *Library) expand(src string, stack []string, override *store.Definition) (string, error) {
	var sb strings.Builder
	rs := []rune(src)
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		switch {
		case unicode.IsSpace(r):
			continue
		case r == RefPrefix:
			j := i + 1
			for j < len(rs) && isIdentChar(rs[j]) {
				j++
			}
			name := string(rs[i+1 : j])
			if name == "" {
				return "", fmt.Errorf("%w: missing name after %c", ErrInvalidName, RefPrefix)
			}
			if slices.Contains(stack, name) {
				return "", fmt.Errorf("%w: %s", ErrCycle, strings.Join(append(slices.Clone(stack), name), " -> "))
			}

			var body string
			var ok bool
			if override != nil && override.Name == name {
				body, ok = override.Source, true
			} else {
				body, ok = l.Lookup(name)
			}
			if !ok {
				return "", fmt.Errorf("%w: %s", ErrUndefined, name)
			}

			inner, err := l.expand(body, append(slices.Clone(stack), name), override)
			if err != nil {
				return "", err
			}
			sb.WriteByte('(')
			sb.WriteString(inner)
			sb.WriteByte(')')
			i = j - 1
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String(), nil
}

// normalizeSource drops whitespace so stored bodies have one spelling.
func normalizeSource(src string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, src)
}

// ParseDefinition splits a line of the form NAME = TERM. ok is false when
// the line is not a definition.
func ParseDefinition(line string) (name, body string, ok bool) {
	name, body, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	return strings.TrimSpace(name), strings.TrimSpace(body), true
}

// StripComment removes a trailing # comment.
func StripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return line[:i]
	}
	return line
}

// LoadPrelude defines every NAME = TERM line of src in memory only. Blank
// lines and # comments are ignored. Definitions may refer to earlier ones.
// A name already in the store keeps its stored definition.
func (l *Library) LoadPrelude(src string) error {
	for n, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(StripComment(line))
		if line == "" {
			continue
		}
		name, body, ok := ParseDefinition(line)
		if !ok {
			return fmt.Errorf("prelude line %d: expected NAME = TERM", n+1)
		}
		if l.store != nil {
			if d, err := l.store.Get(name); err == nil && d != nil {
				continue
			}
		}
		if err := l.set(name, body); err != nil {
			return fmt.Errorf("prelude line %d: %w", n+1, err)
		}
	}
	return nil
}
