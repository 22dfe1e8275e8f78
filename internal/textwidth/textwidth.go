// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package textwidth measures and truncates strings by terminal display width,
// one grapheme cluster at a time.
package textwidth

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Mode selects how ambiguous and unusual characters are measured.
type Mode int

const (
	// Normal measures East Asian ambiguous characters as one column.
	Normal Mode = iota
	// CJK measures East Asian ambiguous characters as two columns, matching
	// terminals configured for CJK locales.
	CJK
	// UnicodeApprox uses plain Unicode widths but never less than one column
	// per grapheme, so zero-width clusters still take a cell.
	UnicodeApprox
)

// Ellipsis marks a truncated string.
const Ellipsis = "…"

var modeNames = [...]string{
	Normal:        "normal",
	CJK:           "cjk",
	UnicodeApprox: "unicode-approx",
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode reads a mode name. Case and surrounding space are ignored and
// "unicode_approx" is accepted as a spelling of "unicode-approx".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal":
		return Normal, nil
	case "cjk":
		return CJK, nil
	case "unicode-approx", "unicode_approx":
		return UnicodeApprox, nil
	}
	return Normal, fmt.Errorf("invalid width mode %q (want normal, cjk or unicode-approx)", s)
}

var (
	cjkCondition    = &runewidth.Condition{EastAsianWidth: true}
	approxCondition = &runewidth.Condition{EastAsianWidth: false}
)

// graphemeWidth returns the width of one grapheme cluster. uw is the width
// uniseg computed for it.
func graphemeWidth(cluster string, uw int, mode Mode) int {
	switch mode {
	case CJK:
		return cjkCondition.StringWidth(cluster)
	case UnicodeApprox:
		return max(approxCondition.StringWidth(cluster), 1)
	default:
		return uw
	}
}

// Width returns the display width of s in mode.
func Width(s string, mode Mode) int {
	width := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		width += graphemeWidth(g.Str(), g.Width(), mode)
	}
	return width
}

// Truncate shortens s to at most width columns, ending it with Ellipsis when
// anything was cut. A string that fits is returned unchanged.
func Truncate(s string, width int, mode Mode) string {
	if width <= 0 {
		return ""
	}
	if Width(s, mode) <= width {
		return s
	}

	ellipsisWidth := max(Width(Ellipsis, mode), 1)
	if width <= ellipsisWidth {
		return Ellipsis
	}

	budget := width - ellipsisWidth
	used := 0
	var b strings.Builder
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := graphemeWidth(g.Str(), g.Width(), mode)
		if used+w > budget {
			break
		}
		used += w
		b.WriteString(g.Str())
	}
	b.WriteString(Ellipsis)

	return b.String()
}

// Pad right-pads s with spaces to width columns. Strings already at or over
// width are returned unchanged.
func Pad(s string, width int, mode Mode) string {
	if w := Width(s, mode); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
