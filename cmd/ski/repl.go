// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	"github.com/samber/lo"
	"golang.org/x/term"

	"nickandperla.net/ski/internal/library"
	"nickandperla.net/ski/pkg/ski"
)

const (
	promptMain = ">>> "
	promptCont = "... "
)

const helpText = `Enter a term (S, K, I and parentheses) to evaluate it.
  NAME = TERM     define a name; use it as @NAME
  :list           show definitions
  :show NAME      show one definition
  :undef NAME     remove a definition
  :history [N]    show recent evaluations
  :trace [on|off] print every reduction step
  :help           show this text
  :quit           exit (or Ctrl+D)
`

func printBanner(w io.Writer) {
	fmt.Fprintln(w, "ski REPL (Ctrl+D to exit, :help for commands)")
	fmt.Fprintln(w)
}

func runREPL(runtime *ski.Runtime, historyPath string) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		// Not a TTY, fall back to basic mode
		runBasicREPL(runtime, os.Stdin, os.Stdout)
		return
	}
	runLinerREPL(runtime, historyPath)
}

// runBasicREPL handles non-TTY input (piped input). Results and trace
// output both go to out.
func runBasicREPL(runtime *ski.Runtime, in io.Reader, out io.Writer) {
	runtime.SetOutput(out)
	printBanner(out)
	reader := bufio.NewReader(in)
	var pending strings.Builder

	for {
		if pending.Len() > 0 {
			fmt.Fprint(out, promptCont)
		} else {
			fmt.Fprint(out, promptMain)
		}

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(out)
			return
		}
		pending.WriteString(strings.TrimRight(line, "\r\n"))

		quit, more := handleLine(runtime, pending.String(), out)
		if more {
			continue
		}
		pending.Reset()
		if quit {
			return
		}
	}
}

// runLinerREPL handles TTY input with line editing and history.
func runLinerREPL(runtime *ski.Runtime, historyPath string) {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(historyPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	runtime.SetOutput(os.Stdout)
	printBanner(os.Stdout)

	var pending strings.Builder
	for {
		prompt := promptMain
		if pending.Len() > 0 {
			prompt = promptCont
		}

		line, err := ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			pending.Reset()
			continue
		}
		if err != nil {
			// io.EOF (Ctrl+D) or a terminal error
			fmt.Println()
			return
		}
		pending.WriteString(line)

		input := pending.String()
		quit, more := handleLine(runtime, input, os.Stdout)
		if more {
			continue
		}
		pending.Reset()

		if strings.TrimSpace(input) != "" {
			ln.AppendHistory(input)
		}
		if quit {
			return
		}
	}
}

// handleLine runs one input and writes its result. quit asks the REPL to
// exit; more means input ended inside an open group and nothing was run.
func handleLine(runtime *ski.Runtime, input string, out io.Writer) (quit, more bool) {
	input = strings.TrimSpace(input)
	if input == "" || strings.HasPrefix(input, "#") {
		return false, false
	}

	if strings.HasPrefix(input, ":") {
		return runCommand(runtime, input, out), false
	}

	result, err := runtime.Exec(input)
	if ski.IsIncomplete(err) {
		return false, true
	}
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return false, false
	}
	if name, _, ok := library.ParseDefinition(input); ok {
		fmt.Fprintf(out, "defined %s\n", name)
		return false, false
	}
	if !runtime.Trace() {
		fmt.Fprintln(out, result)
	}
	return false, false
}

func runCommand(runtime *ski.Runtime, input string, out io.Writer) bool {
	fields := strings.Fields(input)
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case ":quit", ":q", ":exit":
		return true

	case ":help", ":h":
		fmt.Fprint(out, helpText)

	case ":list", ":ls":
		defs, err := runtime.Definitions()
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return false
		}
		width := lo.Max(lo.Map(defs, func(d ski.Definition, _ int) int { return len(d.Name) }))
		for _, d := range defs {
			fmt.Fprintf(out, "%-*s = %s\n", width, d.Name, d.Source)
		}

	case ":show":
		if len(args) != 1 {
			fmt.Fprintln(out, "usage: :show NAME")
			return false
		}
		src, ok := runtime.Lookup(args[0])
		if !ok {
			fmt.Fprintf(out, "Error: undefined name: %s\n", args[0])
			return false
		}
		fmt.Fprintf(out, "%s = %s\n", args[0], src)

	case ":undef":
		if len(args) != 1 {
			fmt.Fprintln(out, "usage: :undef NAME")
			return false
		}
		if err := runtime.Undefine(args[0]); err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		}

	case ":history":
		limit := 10
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				fmt.Fprintln(out, "usage: :history [N]")
				return false
			}
			limit = n
		}
		runs, err := runtime.History(limit)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return false
		}
		for _, r := range lo.Reverse(runs) {
			fmt.Fprintf(out, "%4d  %s → %s (%d steps)\n", r.ID, r.Input, r.Result, r.Steps)
		}

	case ":trace":
		switch {
		case len(args) == 0:
			runtime.SetTrace(!runtime.Trace())
		case strings.EqualFold(args[0], "on"):
			runtime.SetTrace(true)
		case strings.EqualFold(args[0], "off"):
			runtime.SetTrace(false)
		default:
			fmt.Fprintln(out, "usage: :trace [on|off]")
			return false
		}
		fmt.Fprintf(out, "trace %s\n", lo.Ternary(runtime.Trace(), "on", "off"))

	default:
		fmt.Fprintf(out, "unknown command %s. Type :help for commands.\n", fields[0])
	}
	return false
}
