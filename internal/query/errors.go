// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package query

import "fmt"

// ErrorKind classifies a compile failure.
type ErrorKind int

const (
	// LexError covers unterminated quotes or parentheses, stray or dangling
	// operators and empty operands.
	LexError ErrorKind = iota
	// UnknownPrefix is a keyword followed by ':' or a comparison operator
	// that names no attribute available in this build.
	UnknownPrefix
	// UnsupportedAttribute is a known prefix given the wrong operand
	// category, e.g. a quoted string for cpu or a comparison for name.
	UnsupportedAttribute
	// InvalidRegex is a pattern that does not compile.
	InvalidRegex
	// InvalidNumberOrUnit is a malformed number or unit, or a missing
	// operand after a comparison operator.
	InvalidNumberOrUnit
)

var errorKindNames = map[ErrorKind]string{
	LexError:             "lex error",
	UnknownPrefix:        "unknown prefix",
	UnsupportedAttribute: "unsupported attribute",
	InvalidRegex:         "invalid regex",
	InvalidNumberOrUnit:  "invalid number or unit",
}

func (k ErrorKind) String() string {
	if s, ok := errorKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is the single error a failed compile returns. Text holds the
// offending fragment of the input, if any.
type Error struct {
	Kind ErrorKind
	Msg  string
	Text string
}

func (e *Error) Error() string {
	if e.Text == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %q", e.Msg, e.Text)
}

func newError(kind ErrorKind, text string, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Text: text}
}
