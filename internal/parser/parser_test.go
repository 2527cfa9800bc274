// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package parser

import (
	"errors"
	"testing"

	"nickandperla.net/ski/internal/term"
)

func TestParseSimple(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"S", "S"},
		{"SKI", "SKI"},
		{"ski", "SKI"},
		{"S(KSS)SK", "S(KSS)SK"},
		{"s(k(s))", "S(K(S))"},
		{"()", "()"},
		{"((I))", "((I))"},
	}

	for _, tt := range tests {
		tm, err := Parse(tt.input)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tt.input, err)
		}
		if tm.String() != tt.expected {
			t.Errorf("%q: expected '%s', got '%s'", tt.input, tt.expected, tm.String())
		}
	}
}

func TestParseStructure(t *testing.T) {
	tm, err := Parse("S(KS)I")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := term.New(term.TokS, term.GroupOf(term.New(term.TokK, term.TokS)), term.TokI)
	if !tm.Equal(want) {
		t.Errorf("expected '%s', got '%s'", want, tm)
	}

	// Head is the leftmost token.
	head, ok := tm.Head()
	if !ok || head.Kind != term.S {
		t.Errorf("expected head S, got %v", head.Kind)
	}
	if tm.Len() != 3 {
		t.Errorf("expected 3 tokens, got %d", tm.Len())
	}
}

func TestParseUnexpectedToken(t *testing.T) {
	_, err := Parse("s(sk)abc")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, ErrUnexpectedToken) {
		t.Errorf("expected ErrUnexpectedToken, got %v", err)
	}
	if err.Error() != "Unexpected token: A" {
		t.Errorf("expected 'Unexpected token: A', got '%s'", err.Error())
	}

	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SyntaxError, got %T", err)
	}
	if se.Char != 'A' || se.Pos != 5 {
		t.Errorf("expected 'A' at 5, got %q at %d", se.Char, se.Pos)
	}
}

func TestParseRejectsWhitespace(t *testing.T) {
	_, err := Parse("S K")
	if !errors.Is(err, ErrUnexpectedToken) {
		t.Errorf("expected ErrUnexpectedToken, got %v", err)
	}
}

func TestParseMismatchedParens(t *testing.T) {
	tests := []struct {
		input      string
		incomplete bool
	}{
		{"(((SKS", true},
		{"((S)", true},
		{"S)", false},
		{"(S))K", false},
		{")(", false},
	}

	for _, tt := range tests {
		tm, err := Parse(tt.input)
		if err == nil {
			t.Errorf("%q: expected error, got '%s'", tt.input, tm)
			continue
		}
		if tm != nil {
			t.Errorf("%q: expected no term on error", tt.input)
		}
		if !errors.Is(err, ErrMismatchedParens) {
			t.Errorf("%q: expected ErrMismatchedParens, got %v", tt.input, err)
		}
		if err.Error() != "Mismatched parentheses in expression" {
			t.Errorf("%q: unexpected message '%s'", tt.input, err.Error())
		}
		if IsIncomplete(err) != tt.incomplete {
			t.Errorf("%q: expected IsIncomplete=%v", tt.input, tt.incomplete)
		}
	}
}

func TestParseFirstErrorWins(t *testing.T) {
	// The bad character is reached before the end of input.
	_, err := Parse("(SX")
	if !errors.Is(err, ErrUnexpectedToken) {
		t.Errorf("expected ErrUnexpectedToken, got %v", err)
	}
	if IsIncomplete(err) {
		t.Error("unexpected token must not be reported as incomplete")
	}
}

func TestParseDeterministic(t *testing.T) {
	a, _ := Parse("S(K(SI))K")
	b, _ := Parse("s(k(si))k")
	if !a.Equal(b) {
		t.Errorf("expected equal parses, got '%s' and '%s'", a, b)
	}
}
