// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package eval

import "nickandperla.net/ski/internal/term"

// Evaluate drives t toward normal form: a top-level pass with Reduce, then
// NormalizeGroups over whatever Groups remain. It never fails, but it does
// not return for terms without a normal form.
func Evaluate(t *term.Term) {
	Reduce(t)
	NormalizeGroups(t)
}

// Reduce rewrites the head of t until the frame is empty or the head
// combinator is stuck for lack of arguments. It returns the number of
// rules applied at this level.
func Reduce(t *term.Term) int {
	steps := 0
	for {
		head, ok := t.Pop()
		if !ok {
			return steps
		}
		if head.IsGroup() {
			// (M) N ... → M N ...: structural, not a rewrite.
			t.Splice(head.Sub)
			continue
		}
		if t.Len() < arity(head.Kind) {
			t.Push(head)
			return steps
		}
		apply(t, head.Kind)
		steps++
		notifyStep(t)
	}
}

// NormalizeGroups evaluates every Group left in t, left to right.
func NormalizeGroups(t *term.Term) {
	t.Each(func(tok term.Token) {
		if tok.IsGroup() {
			Evaluate(tok.Sub)
		}
	})
}

func arity(k term.Kind) int {
	switch k {
	case term.S:
		return 3
	case term.K:
		return 2
	case term.I:
		return 1
	}
	return 0
}

// apply fires the rule for k; the caller has checked the arity.
func apply(t *term.Term, k term.Kind) {
	switch k {
	case term.S:
		// S x y z → x z (y z)
		x, _ := t.Pop()
		y, _ := t.Pop()
		z, _ := t.Pop()
		t.Push(term.NewGroup(t.Sink(), y, z.Clone()))
		t.Push(z)
		t.Push(x)
	case term.K:
		// K x y → x
		x, _ := t.Pop()
		t.Pop()
		t.Push(x)
	case term.I:
		// I x → x: consuming I is the whole rule.
	}
}

func notifyStep(t *term.Term) {
	if s := t.Sink(); s != nil {
		s.Step()
	}
}
