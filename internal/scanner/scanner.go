// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package scanner provides a streaming, case-insensitive lexer for SKI terms.
package scanner

import (
	"bufio"
	"io"
	"strings"
	"unicode"

	"nickandperla.net/ski/internal/token"
)

// Scanner tokenizes SKI input rune-by-rune.
type Scanner struct {
	reader *bufio.Reader
	pos    int // Rune offset of the next rune to be read (0-based)
}

// Item represents a scanned token.
type Item struct {
	Token token.Token
	Rune  rune // Upper-cased source rune (0 for EOF)
	Pos   int  // Rune offset where this token started
}

// New creates a new Scanner from an io.Reader.
func New(r io.Reader) *Scanner {
	return &Scanner{reader: bufio.NewReader(r)}
}

// NewFromString creates a new Scanner from a string.
func NewFromString(s string) *Scanner {
	return New(strings.NewReader(s))
}

// Next returns the next token from the input. Every rune is significant:
// there is no whitespace skipping, anything outside the alphabet comes back
// as ILLEGAL.
func (s *Scanner) Next() (*Item, error) {
	r, _, err := s.reader.ReadRune()
	if err == io.EOF {
		return &Item{Token: token.EOF, Pos: s.pos}, nil
	}
	if err != nil {
		return nil, err
	}

	pos := s.pos
	s.pos++
	r = unicode.ToUpper(r)
	return &Item{Token: token.FromRune(r), Rune: r, Pos: pos}, nil
}
