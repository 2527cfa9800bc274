// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package term defines the in-memory representation of SKI terms.
package term

import "strings"

// Kind identifies what a Token holds.
type Kind int

const (
	S Kind = iota
	K
	I
	Group // Parenthesized sub-term
)

// String returns the surface form of a combinator kind.
func (k Kind) String() string {
	switch k {
	case S:
		return "S"
	case K:
		return "K"
	case I:
		return "I"
	case Group:
		return "Group"
	}
	return "UNKNOWN"
}

// Token is one element of an application chain. Sub is set only for Group
// and is owned exclusively by this token.
type Token struct {
	Kind Kind
	Sub  *Term
}

// Combinator tokens.
var (
	TokS = Token{Kind: S}
	TokK = Token{Kind: K}
	TokI = Token{Kind: I}
)

// GroupOf wraps a term as a Group token.
func GroupOf(t *Term) Token {
	return Token{Kind: Group, Sub: t}
}

// IsGroup reports whether the token is a parenthesized sub-term.
func (tok Token) IsGroup() bool {
	return tok.Kind == Group
}

// Clone returns a deep copy of the token.
func (tok Token) Clone() Token {
	if tok.Kind == Group {
		return Token{Kind: Group, Sub: tok.Sub.Clone()}
	}
	return tok
}

// Equal reports structural equality.
func (tok Token) Equal(other Token) bool {
	if tok.Kind != other.Kind {
		return false
	}
	if tok.Kind == Group {
		return tok.Sub.Equal(other.Sub)
	}
	return true
}

func (tok Token) writeTo(sb *strings.Builder) {
	if tok.Kind == Group {
		sb.WriteByte('(')
		tok.Sub.writeTo(sb)
		sb.WriteByte(')')
		return
	}
	sb.WriteString(tok.Kind.String())
}

// Sink receives a notification each time a rewrite rule fires inside a term.
type Sink interface {
	Step()
}

// Term is a left-associative application chain. Tokens are stored in
// reverse surface order so the head is the last element.
type Term struct {
	tokens []Token
	sink   Sink
}

// New builds a term from tokens given in surface (left-to-right) order.
func New(tokens ...Token) *Term {
	rev := make([]Token, len(tokens))
	for i, tok := range tokens {
		rev[len(tokens)-1-i] = tok
	}
	return &Term{tokens: rev}
}

// NewGroup builds a Group token whose sub-term reports to sink. Tokens are
// in surface order.
func NewGroup(sink Sink, tokens ...Token) Token {
	t := New(tokens...)
	t.sink = sink
	return GroupOf(t)
}

// Len returns the number of pending tokens at this level.
func (t *Term) Len() int {
	return len(t.tokens)
}

// IsEmpty returns true if the term has no tokens.
func (t *Term) IsEmpty() bool {
	return len(t.tokens) == 0
}

// Head returns the leftmost pending token without removing it.
func (t *Term) Head() (Token, bool) {
	if len(t.tokens) == 0 {
		return Token{}, false
	}
	return t.tokens[len(t.tokens)-1], true
}

// Pop removes and returns the leftmost pending token.
func (t *Term) Pop() (Token, bool) {
	n := len(t.tokens)
	if n == 0 {
		return Token{}, false
	}
	tok := t.tokens[n-1]
	t.tokens[n-1] = Token{}
	t.tokens = t.tokens[:n-1]
	return tok, true
}

// Push makes tok the new leftmost pending token.
func (t *Term) Push(tok Token) {
	t.tokens = append(t.tokens, tok)
}

// Splice moves every token of sub onto the front of t, so that sub's head
// becomes t's head. sub is left empty.
func (t *Term) Splice(sub *Term) {
	t.tokens = append(t.tokens, sub.tokens...)
	sub.tokens = nil
}

// Tokens returns the tokens in surface order. The Group sub-terms are
// shared with t, not copied.
func (t *Term) Tokens() []Token {
	out := make([]Token, len(t.tokens))
	for i, tok := range t.tokens {
		out[len(t.tokens)-1-i] = tok
	}
	return out
}

// Each calls fn for each token in surface order.
func (t *Term) Each(fn func(Token)) {
	for i := len(t.tokens) - 1; i >= 0; i-- {
		fn(t.tokens[i])
	}
}

// Sink returns the sink this term reports steps to (nil if unbound).
func (t *Term) Sink() Sink {
	return t.sink
}

// Bind sets the sink on t and every Group nested inside it.
func (t *Term) Bind(s Sink) {
	t.sink = s
	for _, tok := range t.tokens {
		if tok.Kind == Group {
			tok.Sub.Bind(s)
		}
	}
}

// Clone returns a deep copy that reports to the same sink.
func (t *Term) Clone() *Term {
	c := &Term{tokens: make([]Token, len(t.tokens)), sink: t.sink}
	for i, tok := range t.tokens {
		c.tokens[i] = tok.Clone()
	}
	return c
}

// Equal reports whether two terms have the same token structure. Sinks are
// not compared.
func (t *Term) Equal(other *Term) bool {
	if t == nil || other == nil {
		return t == other
	}
	if len(t.tokens) != len(other.tokens) {
		return false
	}
	for i := range t.tokens {
		if !t.tokens[i].Equal(other.tokens[i]) {
			return false
		}
	}
	return true
}

// String renders the term in surface syntax.
func (t *Term) String() string {
	var sb strings.Builder
	t.writeTo(&sb)
	return sb.String()
}

func (t *Term) writeTo(sb *strings.Builder) {
	for i := len(t.tokens) - 1; i >= 0; i-- {
		t.tokens[i].writeTo(sb)
	}
}
