// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package query

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// StringMatcher tests a string field either with a compiled regular
// expression or against a normalized literal. It is built once per compile
// and never changes afterwards.
type StringMatcher struct {
	re *regexp.Regexp

	normalized string
	wholeWord  bool
	ignoreCase bool
}

// normalize applies NFKC composition and, with ignoreCase, full case
// folding. Literal operands and candidates go through the same rule.
func normalize(value string, ignoreCase bool) string {
	normalized := norm.NFKC.String(value)
	if ignoreCase {
		// A Caser holds state, so each call gets its own.
		normalized = cases.Fold().String(normalized)
	}
	return normalized
}

// newRegex compiles base honoring the case and whole word options.
func newRegex(base string, opts Options) (*regexp.Regexp, error) {
	pattern := base
	if opts.WholeWord {
		pattern = "^(?:" + pattern + ")$"
	}
	if opts.IgnoreCase {
		pattern = "(?i)" + pattern
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, newError(InvalidRegex, base, "invalid regex")
	}
	return re, nil
}

func newStringMatcher(base string, opts Options) (*StringMatcher, error) {
	if opts.UseRegex {
		re, err := newRegex(base, opts)
		if err != nil {
			return nil, err
		}
		return &StringMatcher{re: re}, nil
	}

	return &StringMatcher{
		normalized: normalize(base, opts.IgnoreCase),
		wholeWord:  opts.WholeWord,
		ignoreCase: opts.IgnoreCase,
	}, nil
}

// Match reports whether value satisfies the matcher. Regexes search the
// whole value unanchored; literals need equality in whole word mode and
// containment otherwise.
func (m *StringMatcher) Match(value string) bool {
	if m.re != nil {
		return m.re.MatchString(value)
	}

	candidate := normalize(value, m.ignoreCase)
	if m.wholeWord {
		return candidate == m.normalized
	}
	return strings.Contains(candidate, m.normalized)
}

func (m *StringMatcher) String() string {
	if m.re != nil {
		return "/" + m.re.String() + "/"
	}

	var flags string
	if m.wholeWord {
		flags += "w"
	}
	if m.ignoreCase {
		flags += "i"
	}
	s := strconv.Quote(m.normalized)
	if flags != "" {
		s += "/" + flags
	}
	return s
}

// attribute is a leaf of the expression tree. Exactly one of str, num and tm
// is meaningful, selected by kind.
type attribute struct {
	kind PrefixType
	str  *StringMatcher
	num  NumericalQuery
	tm   TimeQuery
}

func (*attribute) isExpr() {}

func (a *attribute) String() string {
	switch a.kind.category() {
	case categoryString:
		if a.kind == Empty {
			return "empty"
		}
		return a.kind.String() + ":" + a.str.String()
	case categoryDuration:
		return a.kind.String() + a.tm.String()
	}
	return a.kind.String() + a.num.String()
}

// newStringAttribute builds a string matched leaf for Pid, Name, State or
// User.
func newStringAttribute(prefix PrefixType, base string, opts Options) (*attribute, error) {
	switch prefix {
	case Pid, Name, State, User:
		m, err := newStringMatcher(base, opts)
		if err != nil {
			return nil, err
		}
		return &attribute{kind: prefix, str: m}, nil
	}
	return nil, newError(UnsupportedAttribute, base,
		"%s is not a supported string attribute", prefix)
}

// newNumericalAttribute builds a numerically compared leaf.
func newNumericalAttribute(prefix PrefixType, q NumericalQuery) (*attribute, error) {
	switch prefix {
	case CPUPercentage, MemBytes, MemPercentage, ReadPerSecond, WritePerSecond,
		TotalRead, TotalWrite, Nice, Priority,
		GPUPercentage, GPUMemoryPercentage, GPUMemoryBytes:
		return &attribute{kind: prefix, num: q}, nil
	}
	return nil, newError(UnsupportedAttribute, "",
		"%s is not a supported numerical attribute", prefix)
}

// newTimeAttribute builds a duration compared leaf.
func newTimeAttribute(prefix PrefixType, q TimeQuery) (*attribute, error) {
	if prefix == Time {
		return &attribute{kind: prefix, tm: q}, nil
	}
	return nil, newError(UnsupportedAttribute, "",
		"%s is not a supported time attribute", prefix)
}
