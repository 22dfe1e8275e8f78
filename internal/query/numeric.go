// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package query

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/dustin/go-humanize"
)

// CompareOp is one of the comparison operators accepted before a numeric or
// duration operand.
type CompareOp int

const (
	OpEqual CompareOp = iota
	OpLess
	OpLessEqual
	OpGreater
	OpGreaterEqual
)

var compareOps = map[string]CompareOp{
	"=":  OpEqual,
	"<":  OpLess,
	"<=": OpLessEqual,
	">":  OpGreater,
	">=": OpGreaterEqual,
}

func (op CompareOp) String() string {
	switch op {
	case OpLess:
		return "<"
	case OpLessEqual:
		return "<="
	case OpGreater:
		return ">"
	case OpGreaterEqual:
		return ">="
	}
	return "="
}

// NumericalQuery compares a numeric field against a fixed threshold.
type NumericalQuery struct {
	Op    CompareOp
	Value float64
}

// Check applies the operator. A NaN on either side never matches.
func (q NumericalQuery) Check(v float64) bool {
	switch q.Op {
	case OpLess:
		return v < q.Value
	case OpLessEqual:
		return v <= q.Value
	case OpGreater:
		return v > q.Value
	case OpGreaterEqual:
		return v >= q.Value
	}
	return v == q.Value
}

func (q NumericalQuery) String() string {
	return q.Op.String() + strconv.FormatFloat(q.Value, 'f', -1, 64)
}

// TimeQuery compares a duration field against a fixed threshold.
type TimeQuery struct {
	Op    CompareOp
	Value time.Duration
}

// Check applies the operator to duration magnitudes.
func (q TimeQuery) Check(d time.Duration) bool {
	switch q.Op {
	case OpLess:
		return d < q.Value
	case OpLessEqual:
		return d <= q.Value
	case OpGreater:
		return d > q.Value
	case OpGreaterEqual:
		return d >= q.Value
	}
	return d == q.Value
}

func (q TimeQuery) String() string {
	return q.Op.String() + q.Value.String()
}

// parseNumber reads a numeric operand for a prefix of the given category.
// The text may carry a fused or space separated unit.
func parseNumber(cat operandCategory, text string) (float64, error) {
	text = strings.TrimSpace(text)

	switch cat {
	case categoryPercent:
		text = strings.TrimSpace(strings.TrimSuffix(text, "%"))
	case categoryBytes:
		if v, err := strconv.ParseFloat(text, 64); err == nil {
			return v, nil
		}
		n, err := humanize.ParseBytes(text)
		if err != nil {
			return 0, newError(InvalidNumberOrUnit, text, "invalid size")
		}
		return float64(n), nil
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, newError(InvalidNumberOrUnit, text, "invalid number")
	}
	return v, nil
}

// durationUnits maps accepted time unit spellings to their length.
var durationUnits = map[string]time.Duration{
	"ms":      time.Millisecond,
	"s":       time.Second,
	"sec":     time.Second,
	"secs":    time.Second,
	"second":  time.Second,
	"seconds": time.Second,
	"m":       time.Minute,
	"min":     time.Minute,
	"mins":    time.Minute,
	"minute":  time.Minute,
	"minutes": time.Minute,
	"h":       time.Hour,
	"hr":      time.Hour,
	"hrs":     time.Hour,
	"hour":    time.Hour,
	"hours":   time.Hour,
	"d":       24 * time.Hour,
	"day":     24 * time.Hour,
	"days":    24 * time.Hour,
}

// parseDuration reads "90", "90s", "1.5 h" or compounds like "1h30m". A
// bare number counts seconds.
func parseDuration(text string) (time.Duration, error) {
	s := strings.ToLower(strings.Join(strings.Fields(text), ""))
	if s == "" {
		return 0, newError(InvalidNumberOrUnit, text, "invalid duration")
	}

	var total time.Duration
	for s != "" {
		i := 0
		for i < len(s) && (s[i] == '.' || (s[i] >= '0' && s[i] <= '9')) {
			i++
		}
		if i == 0 {
			return 0, newError(InvalidNumberOrUnit, text, "invalid duration")
		}
		n, err := strconv.ParseFloat(s[:i], 64)
		if err != nil {
			return 0, newError(InvalidNumberOrUnit, text, "invalid duration")
		}
		s = s[i:]

		j := 0
		for j < len(s) && unicode.IsLetter(rune(s[j])) {
			j++
		}
		unit := time.Second
		if j > 0 {
			u, ok := durationUnits[s[:j]]
			if !ok {
				return 0, newError(InvalidNumberOrUnit, text, "unknown time unit %q", s[:j])
			}
			unit = u
		} else if s != "" {
			// A bare number may only appear last.
			return 0, newError(InvalidNumberOrUnit, text, "invalid duration")
		}
		s = s[j:]

		part := n * float64(unit)
		if part >= math.MaxInt64-float64(total) {
			return 0, newError(InvalidNumberOrUnit, text, "duration out of range")
		}
		total += time.Duration(part)
	}

	return total, nil
}

var byteUnits = map[string]bool{
	"b": true,
	"k": true, "kb": true, "ki": true, "kib": true,
	"m": true, "mb": true, "mi": true, "mib": true,
	"g": true, "gb": true, "gi": true, "gib": true,
	"t": true, "tb": true, "ti": true, "tib": true,
	"p": true, "pb": true, "pi": true, "pib": true,
}

// isUnit reports whether word can follow a number as its unit.
func isUnit(cat operandCategory, word string) bool {
	w := strings.ToLower(word)
	switch cat {
	case categoryPercent:
		return w == "%"
	case categoryBytes:
		return byteUnits[w]
	case categoryDuration:
		_, ok := durationUnits[w]
		return ok
	}
	return false
}
