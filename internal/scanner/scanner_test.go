// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package scanner

import (
	"testing"

	"nickandperla.net/ski/internal/token"
)

func TestScannerTokens(t *testing.T) {
	s := NewFromString("s(Ki)x")

	want := []struct {
		tok token.Token
		r   rune
		pos int
	}{
		{token.S, 'S', 0},
		{token.LPAREN, '(', 1},
		{token.K, 'K', 2},
		{token.I, 'I', 3},
		{token.RPAREN, ')', 4},
		{token.ILLEGAL, 'X', 5},
		{token.EOF, 0, 6},
	}

	for i, w := range want {
		item, err := s.Next()
		if err != nil {
			t.Fatalf("item %d: unexpected error: %v", i, err)
		}
		if item.Token != w.tok || item.Rune != w.r || item.Pos != w.pos {
			t.Errorf("item %d: expected %v %q @%d, got %v %q @%d",
				i, w.tok, w.r, w.pos, item.Token, item.Rune, item.Pos)
		}
	}
}

func TestScannerUnicode(t *testing.T) {
	s := NewFromString("λs")
	item, _ := s.Next()
	if item.Token != token.ILLEGAL || item.Rune != 'Λ' {
		t.Errorf("expected ILLEGAL 'Λ', got %v %q", item.Token, item.Rune)
	}
	item, _ = s.Next()
	if item.Token != token.S || item.Pos != 1 {
		t.Errorf("expected S at rune offset 1, got %v at %d", item.Token, item.Pos)
	}
}
