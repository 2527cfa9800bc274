// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package parser turns SKI token strings into terms.
package parser

import (
	"errors"
	"fmt"

	"nickandperla.net/ski/internal/scanner"
	"nickandperla.net/ski/internal/term"
	"nickandperla.net/ski/internal/token"
)

var (
	// ErrUnexpectedToken is the cause of a SyntaxError for a character
	// outside the SKI alphabet.
	ErrUnexpectedToken = errors.New("unexpected token")
	// ErrMismatchedParens is the cause of a SyntaxError for an unbalanced
	// parenthesis in either direction.
	ErrMismatchedParens = errors.New("mismatched parentheses")
)

// SyntaxError is the only error the parser returns.
type SyntaxError struct {
	Cause error
	Char  rune // Offending character (upper-cased); 0 for an unclosed group
	Pos   int  // Rune offset of the offending character or of end of input

	// Incomplete is set when input ended inside an open group.
	Incomplete bool
}

func (e *SyntaxError) Error() string {
	if errors.Is(e.Cause, ErrUnexpectedToken) {
		return fmt.Sprintf("Unexpected token: %c", e.Char)
	}
	return "Mismatched parentheses in expression"
}

func (e *SyntaxError) Unwrap() error {
	return e.Cause
}

// IsIncomplete reports whether err came from input that ended while a
// parenthesized group was still open, i.e. more input could complete it.
func IsIncomplete(err error) bool {
	var se *SyntaxError
	return errors.As(err, &se) && se.Incomplete
}

// Parse parses a token string into a term.
func Parse(s string) (*term.Term, error) {
	return parse(scanner.NewFromString(s))
}

func parse(sc *scanner.Scanner) (*term.Term, error) {
	tokens, err := parseSeq(sc, false)
	if err != nil {
		return nil, err
	}
	return term.New(tokens...), nil
}

// parseSeq collects one nesting level in surface order. term.New reverses
// it, so each level is reversed exactly once.
func parseSeq(sc *scanner.Scanner, inGroup bool) ([]term.Token, error) {
	var tokens []term.Token
	for {
		item, err := sc.Next()
		if err != nil {
			return nil, err
		}

		switch item.Token {
		case token.S:
			tokens = append(tokens, term.TokS)
		case token.K:
			tokens = append(tokens, term.TokK)
		case token.I:
			tokens = append(tokens, term.TokI)
		case token.LPAREN:
			sub, err := parseSeq(sc, true)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, term.GroupOf(term.New(sub...)))
		case token.RPAREN:
			if !inGroup {
				return nil, &SyntaxError{Cause: ErrMismatchedParens, Char: item.Rune, Pos: item.Pos}
			}
			return tokens, nil
		case token.EOF:
			if inGroup {
				return nil, &SyntaxError{Cause: ErrMismatchedParens, Pos: item.Pos, Incomplete: true}
			}
			return tokens, nil
		default:
			return nil, &SyntaxError{Cause: ErrUnexpectedToken, Char: item.Rune, Pos: item.Pos}
		}
	}
}
