// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Command ski evaluates SKI combinator terms.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"nickandperla.net/ski/pkg/ski"
)

const historyFileName = ".ski_history"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command and returns its exit status. The runtime is
// closed before run returns on every path.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(filepath.Base(os.Args[0]), flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		evalStr     = fs.String("e", "", "Evaluate a term and print its normal form")
		file        = fs.String("f", "", "Execute a file of definitions and terms")
		dbPath      = fs.String("db", "ski.db", "SQLite database path")
		noDB        = fs.Bool("no-db", false, "Keep definitions and history in memory only")
		trace       = fs.Bool("trace", false, "Print every reduction step")
		quiet       = fs.Bool("quiet", false, "In file mode, print only normal forms")
		noStdlib    = fs.Bool("no-stdlib", false, "Disable standard prelude")
		noHistory   = fs.Bool("no-history", false, "Do not record evaluations")
		interactive = fs.Bool("i", false, "Start the REPL even when stdin is not a terminal")
		historyFile = fs.String("history-file", defaultHistoryPath(), "REPL line history file")
	)

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [flags] [file]\n", fs.Name())
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	// A single positional argument is the file to run.
	switch fs.NArg() {
	case 0:
	case 1:
		if *file != "" {
			fmt.Fprintln(stderr, "Error: both -f and a file argument given")
			return 2
		}
		*file = fs.Arg(0)
	default:
		fmt.Fprintln(stderr, "Error: too many args")
		return 2
	}

	// File mode prints every step unless asked to be quiet.
	traceOn := *trace || (*file != "" && !*quiet)

	// Build options
	opts := []ski.Option{ski.WithOutput(stdout)}
	if *noDB {
		opts = append(opts, ski.WithMemoryStore())
	} else {
		opts = append(opts, ski.WithSQLiteStore(*dbPath))
	}
	if traceOn {
		opts = append(opts, ski.WithTrace())
	}
	if *noStdlib {
		opts = append(opts, ski.WithNoStdlib())
	}
	if *noHistory {
		opts = append(opts, ski.WithNoHistory())
	}

	runtime := ski.New(opts...)
	defer runtime.Close()

	if err := runtime.Err(); err != nil {
		fmt.Fprintf(stderr, "Warning: %v\n", err)
	}

	switch {
	case *file != "":
		results, err := runtime.EvalFile(*file)
		if !traceOn {
			printResults(stdout, results)
		}
		if err != nil {
			return fail(stderr, err)
		}

	case *evalStr != "":
		result, err := runtime.Eval(*evalStr)
		if err != nil {
			return fail(stderr, err)
		}
		if !traceOn {
			fmt.Fprintln(stdout, result)
		}

	case *interactive || term.IsTerminal(int(os.Stdin.Fd())):
		runREPL(runtime, *historyFile)

	default:
		// Piped input
		results, err := runtime.EvalReader(os.Stdin)
		if !traceOn {
			printResults(stdout, results)
		}
		if err != nil {
			return fail(stderr, err)
		}
	}
	return 0
}

func printResults(w io.Writer, results []string) {
	for _, r := range results {
		fmt.Fprintln(w, r)
	}
}

func fail(w io.Writer, err error) int {
	fmt.Fprintf(w, "Error: %v\n", err)
	return 1
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, historyFileName)
}
