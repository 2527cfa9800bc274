// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package token defines the lexical tokens of SKI surface syntax.
package token

// Token represents a lexical token type.
type Token int

const (
	EOF Token = iota
	ILLEGAL

	// Combinators
	S // S x y z → x z (y z)
	K // K x y → x
	I // I x → x

	// Grouping
	LPAREN // (
	RPAREN // )
)

// Runes for each token. Input is upper-cased before scanning, so only the
// upper-case letters are listed.
const (
	RuneS      = 'S'
	RuneK      = 'K'
	RuneI      = 'I'
	RuneLParen = '('
	RuneRParen = ')'
)

// FromRune returns the token type for a rune, or ILLEGAL.
func FromRune(r rune) Token {
	switch r {
	case RuneS:
		return S
	case RuneK:
		return K
	case RuneI:
		return I
	case RuneLParen:
		return LPAREN
	case RuneRParen:
		return RPAREN
	}
	return ILLEGAL
}

// String returns the string representation of a token.
func (t Token) String() string {
	switch t {
	case EOF:
		return "EOF"
	case ILLEGAL:
		return "ILLEGAL"
	case S:
		return "S"
	case K:
		return "K"
	case I:
		return "I"
	case LPAREN:
		return "LPAREN"
	case RPAREN:
		return "RPAREN"
	}
	return "UNKNOWN"
}
