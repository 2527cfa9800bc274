// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package main

import (
	"strings"
	"testing"

	"nickandperla.net/ski/pkg/ski"
)

func runScript(t *testing.T, script string, opts ...ski.Option) string {
	t.Helper()
	var out strings.Builder
	r := ski.New(append([]ski.Option{ski.WithMemoryStore()}, opts...)...)
	defer r.Close()
	runBasicREPL(r, strings.NewReader(script), &out)
	return out.String()
}

func TestBasicREPLEvaluates(t *testing.T) {
	out := runScript(t, "SKSS\nIK\n", ski.WithNoStdlib())
	for _, want := range []string{">>> S\n", ">>> K\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got %q", want, out)
		}
	}
}

func TestBasicREPLContinuesAfterError(t *testing.T) {
	out := runScript(t, "s(sk)abc\n((S)\nKSS\n", ski.WithNoStdlib())
	if !strings.Contains(out, "Error: Unexpected token: A") {
		t.Errorf("expected unexpected token error, got %q", out)
	}
	// "((S)" is incomplete; the next line completes nothing so the
	// combined input stays open and never evaluates.
	if strings.Contains(out, "Mismatched") {
		t.Errorf("incomplete input must wait for more lines, got %q", out)
	}
	if !strings.Contains(out, promptCont) {
		t.Errorf("expected continuation prompt, got %q", out)
	}
}

func TestBasicREPLContinuationLines(t *testing.T) {
	out := runScript(t, "S(K\nSS)SK\n", ski.WithNoStdlib())
	if !strings.Contains(out, "SK(SK)\n") {
		t.Errorf("expected 'SK(SK)', got %q", out)
	}
}

func TestBasicREPLDefinitions(t *testing.T) {
	out := runScript(t, "ID = SKK\n@ID K\n:show ID\n:list\n:undef ID\n@ID\n", ski.WithNoStdlib())

	for _, want := range []string{
		"defined ID\n",
		">>> K\n",
		"ID = SKK\n",
		"Error: undefined name: ID",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got %q", want, out)
		}
	}
}

func TestBasicREPLTraceAndHistory(t *testing.T) {
	out := runScript(t, ":trace on\nIK\n:trace off\nKSS\n:history\n", ski.WithNoStdlib())

	for _, want := range []string{
		"trace on\n",
		"starting combinator: IK\n",
		"derived K after 1 steps\n",
		"trace off\n",
		"IK → K (1 steps)",
		"KSS → S (1 steps)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got %q", want, out)
		}
	}
}

func TestBasicREPLQuit(t *testing.T) {
	out := runScript(t, ":quit\nIK\n", ski.WithNoStdlib())
	if strings.Contains(out, ">>> K") {
		t.Errorf("expected REPL to stop at :quit, got %q", out)
	}
}

func TestBasicREPLUnknownCommand(t *testing.T) {
	out := runScript(t, ":frobnicate\n", ski.WithNoStdlib())
	if !strings.Contains(out, "unknown command :frobnicate") {
		t.Errorf("expected unknown command message, got %q", out)
	}
}

func TestBasicREPLTraceGoesToOutput(t *testing.T) {
	// The runtime defaults to os.Stdout; the REPL must redirect it.
	out := runScript(t, ":trace on\nSKSS\n", ski.WithNoStdlib())
	want := "starting combinator: SKSS\nKS(SS)\nS\nderived S after 2 steps\n"
	if !strings.Contains(out, want) {
		t.Errorf("expected %q in output, got %q", want, out)
	}
}

func TestHandleLineIncomplete(t *testing.T) {
	r := ski.New(ski.WithMemoryStore())
	defer r.Close()

	tests := []struct {
		input string
		more  bool
	}{
		{"", false},
		{"SKI", false},
		{"S(K", true},
		{"((S)", true},
		{"S)(", false},
		{"X = S(", true},
		{"@B (K", true},
		{"S(KX", false},
		{":help", false},
	}
	for _, tt := range tests {
		var out strings.Builder
		_, more := handleLine(r, tt.input, &out)
		if more != tt.more {
			t.Errorf("%q: expected more=%v, got %v (output %q)", tt.input, tt.more, more, out.String())
		}
		if more && out.Len() != 0 {
			t.Errorf("%q: incomplete input must not print, got %q", tt.input, out.String())
		}
	}
	if _, ok := r.Lookup("X"); ok {
		t.Error("incomplete definition must not be stored")
	}
}
