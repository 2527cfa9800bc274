// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package term

import "testing"

type countSink struct{ n int }

func (c *countSink) Step() { c.n++ }

func TestNewKeepsSurfaceOrder(t *testing.T) {
	tm := New(TokS, TokK, TokI)
	if tm.String() != "SKI" {
		t.Errorf("expected 'SKI', got '%s'", tm)
	}

	head, _ := tm.Pop()
	if head.Kind != S {
		t.Errorf("expected head S, got %v", head.Kind)
	}
	next, _ := tm.Head()
	if next.Kind != K {
		t.Errorf("expected next K, got %v", next.Kind)
	}

	tm.Push(TokI)
	if tm.String() != "IKI" {
		t.Errorf("expected 'IKI', got '%s'", tm)
	}
}

func TestPopEmpty(t *testing.T) {
	tm := New()
	if _, ok := tm.Pop(); ok {
		t.Error("expected Pop on empty term to fail")
	}
	if _, ok := tm.Head(); ok {
		t.Error("expected Head on empty term to fail")
	}
	if !tm.IsEmpty() {
		t.Error("expected empty term")
	}
}

func TestSplice(t *testing.T) {
	sub := New(TokK, TokS)
	tm := New(TokI)
	tm.Splice(sub)
	if tm.String() != "KSI" {
		t.Errorf("expected 'KSI', got '%s'", tm)
	}
	if !sub.IsEmpty() {
		t.Errorf("expected spliced term to be empty, got '%s'", sub)
	}
}

func TestStringGroups(t *testing.T) {
	tm := New(TokS, GroupOf(New(TokK, GroupOf(New(TokI)))), GroupOf(New()))
	if tm.String() != "S(K(I))()" {
		t.Errorf("expected 'S(K(I))()', got '%s'", tm)
	}

	toks := tm.Tokens()
	if len(toks) != 3 || toks[0].Kind != S || !toks[1].IsGroup() {
		t.Errorf("unexpected tokens: %v", toks)
	}
}

func TestEqual(t *testing.T) {
	a := New(TokS, GroupOf(New(TokK, TokS)))
	b := New(TokS, GroupOf(New(TokK, TokS)))
	c := New(TokS, TokK, TokS)

	if !a.Equal(b) {
		t.Error("expected a == b")
	}
	if a.Equal(c) {
		t.Error("grouping must be significant")
	}

	b.Bind(&countSink{})
	if !a.Equal(b) {
		t.Error("sink must not affect equality")
	}
}

func TestBindReachesNestedGroups(t *testing.T) {
	inner := New(TokI)
	mid := New(TokK, GroupOf(inner))
	tm := New(TokS, GroupOf(mid))

	sink := &countSink{}
	tm.Bind(sink)
	for _, got := range []*Term{tm, mid, inner} {
		if got.Sink() != sink {
			t.Errorf("expected '%s' to be bound", got)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	sink := &countSink{}
	inner := New(TokK)
	tm := New(TokS, GroupOf(inner))
	tm.Bind(sink)

	c := tm.Clone()
	inner.Push(TokI)

	if c.String() != "S(K)" {
		t.Errorf("expected clone 'S(K)', got '%s'", c)
	}
	tok := c.Tokens()[1]
	if tok.Sub.Sink() != sink {
		t.Error("expected clone to keep the sink")
	}
}

func TestNewGroupCarriesSink(t *testing.T) {
	sink := &countSink{}
	g := NewGroup(sink, TokK, TokS)
	if g.Sub.Sink() != sink {
		t.Error("expected group bound to sink")
	}
	if g.Sub.String() != "KS" {
		t.Errorf("expected 'KS', got '%s'", g.Sub)
	}
}
