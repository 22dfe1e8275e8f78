// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package query

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/ptop/internal/process"
)

func sampleRecord() process.Record {
	return process.Record{
		PID:         4242,
		Name:        "firefox",
		Command:     "/usr/lib/firefox/firefox --new-window",
		CPUPercent:  75.0,
		MemBytes:    2 << 30,
		MemPercent:  12.5,
		ReadPerSec:  4096,
		WritePerSec: 1 << 20,
		TotalRead:   10 << 20,
		TotalWrite:  3 << 30,
		State:       "running",
		User:        process.StringPtr("alice"),
		Elapsed:     90 * time.Minute,
		Nice:        -5,
		Priority:    15,
		GPUPercent:  30,
	}
}

func mustCompile(t *testing.T, input string, opts Options) *Query {
	t.Helper()
	q, err := CompileWith(input, opts, allCaps)
	require.NoError(t, err, "compile %q", input)
	return q
}

func TestMatches(t *testing.T) {
	rec := sampleRecord()

	tests := []struct {
		name      string
		input     string
		opts      Options
		byCommand bool
		want      bool
	}{
		{name: "empty matches", input: "", want: true},
		{name: "empty group matches", input: "()", want: true},
		{name: "cpu above", input: "cpu > 50", want: true},
		{name: "cpu below", input: "cpu < 50", want: false},
		{name: "cpu equal", input: "cpu = 75", want: true},
		{name: "memory bytes", input: "memb >= 2 GiB", want: true},
		{name: "memory bytes strict", input: "memb > 2GiB", want: false},
		{name: "memory percent", input: "mem <= 12.5%", want: true},
		{name: "read rate", input: "read = 4KiB", want: true},
		{name: "write rate", input: "write > 1MB", want: true},
		{name: "total read", input: "tread < 11MiB", want: true},
		{name: "total write", input: "twrite < 3GiB", want: false},
		{name: "nice", input: "nice < 0", want: true},
		{name: "priority", input: "pri >= 20", want: false},
		{name: "gpu", input: "gpu% > 25", want: true},
		{name: "time", input: "time > 1h", want: true},
		{name: "time compound", input: "time = 1h30m", want: true},
		{name: "pid substring", input: "pid:42", want: true},
		{name: "pid whole word", input: "pid:42", opts: Options{WholeWord: true}, want: false},
		{name: "pid exact", input: "pid=4242", opts: Options{WholeWord: true}, want: true},
		{name: "bare name", input: "fox", want: true},
		{name: "name misses command args", input: "new-window", want: false},
		{name: "command search", input: "new-window", byCommand: true, want: true},
		{name: "name prefix searches command too", input: "name:lib", byCommand: true, want: true},
		{name: "user", input: "user=alice", want: true},
		{name: "state", input: "state:run", want: true},
		{name: "and", input: "cpu > 50 and user=alice", want: true},
		{name: "and short", input: "cpu > 50 and user=bob", want: false},
		{name: "or", input: "user=bob or firefox", want: true},
		{name: "not", input: "!firefox", want: false},
		{name: "precedence", input: "chrome and bash or firefox", want: true},
		{name: "group", input: "chrome and (bash or firefox)", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := mustCompile(t, tt.input, tt.opts)
			assert.Equal(t, tt.want, q.Matches(&rec, tt.byCommand))
		})
	}
}

func TestMatches_WholeWordName(t *testing.T) {
	q := mustCompile(t, "name=firefox", Options{WholeWord: true})

	exact := process.Record{Name: "firefox"}
	bin := process.Record{Name: "firefox-bin"}

	assert.True(t, q.Matches(&exact, false))
	assert.False(t, q.Matches(&bin, false))
}

func TestMatches_IgnoreCase(t *testing.T) {
	rec := process.Record{Name: "firefox"}

	assert.True(t, mustCompile(t, "FireFox", Options{IgnoreCase: true}).Matches(&rec, false))
	assert.False(t, mustCompile(t, "FireFox", Options{}).Matches(&rec, false))
}

func TestMatches_NegatedState(t *testing.T) {
	q := mustCompile(t, "!(state=running)", Options{WholeWord: true})

	for state, want := range map[string]bool{
		"running":  false,
		"sleep":    true,
		"zombie":   true,
		"runnable": true,
	} {
		rec := process.Record{State: state}
		assert.Equal(t, want, q.Matches(&rec, false), "state %q", state)
	}
}

func TestMatches_Regex(t *testing.T) {
	q := mustCompile(t, "^fire.*", Options{UseRegex: true})

	for name, want := range map[string]bool{
		"firefox":  true,
		"firewall": true,
		"icefire":  false,
	} {
		rec := process.Record{Name: name}
		assert.Equal(t, want, q.Matches(&rec, false), "name %q", name)
	}
}

func TestMatches_QuotedRegexEscapes(t *testing.T) {
	q := mustCompile(t, `"a\.b"`, Options{UseRegex: true})
	assert.True(t, q.Matches(&process.Record{Name: "a.b"}, false))
	assert.False(t, q.Matches(&process.Record{Name: "axb"}, false))

	q = mustCompile(t, `"\(x\)"`, Options{UseRegex: true})
	assert.True(t, q.Matches(&process.Record{Name: "(x)"}, false))
	assert.False(t, q.Matches(&process.Record{Name: "x"}, false))
}

func TestMatches_RegexUnanchoredSearch(t *testing.T) {
	q := mustCompile(t, "fox", Options{UseRegex: true})
	rec := process.Record{Name: "firefox-bin"}
	assert.True(t, q.Matches(&rec, false))

	q = mustCompile(t, "FOX", Options{UseRegex: true, IgnoreCase: true})
	assert.True(t, q.Matches(&rec, false))

	q = mustCompile(t, "fire.*", Options{UseRegex: true, WholeWord: true})
	assert.True(t, q.Matches(&rec, false))
	q = mustCompile(t, "fire", Options{UseRegex: true, WholeWord: true})
	assert.False(t, q.Matches(&rec, false))
}

func TestMatches_FullWidth(t *testing.T) {
	half := process.Record{Name: "firefox"}
	full := process.Record{Name: "ｆｉｒｅｆｏｘ"}

	for _, opts := range []Options{{}, {IgnoreCase: true}, {WholeWord: true}} {
		assert.True(t, mustCompile(t, "ｆｉｒｅｆｏｘ", opts).Matches(&half, false), "%+v", opts)
		assert.True(t, mustCompile(t, "firefox", opts).Matches(&full, false), "%+v", opts)
	}
}

func TestMatches_MissingUser(t *testing.T) {
	rec := process.Record{Name: "kworker"}

	assert.True(t, mustCompile(t, "user=N/A", Options{WholeWord: true}).Matches(&rec, false))
	assert.False(t, mustCompile(t, "user=root", Options{}).Matches(&rec, false))
}

func TestMatches_NaN(t *testing.T) {
	rec := process.Record{CPUPercent: 10}

	for _, op := range []string{"<", "<=", ">", ">=", "="} {
		q := mustCompile(t, "cpu "+op+" NaN", Options{})
		assert.False(t, q.Matches(&rec, false), "op %s", op)
	}

	nan := process.Record{CPUPercent: math.NaN()}
	assert.False(t, mustCompile(t, "cpu >= 0", Options{}).Matches(&nan, false))
}

func TestMatches_NilQuery(t *testing.T) {
	var q *Query
	rec := sampleRecord()
	assert.True(t, q.Matches(&rec, false))
	assert.True(t, MatchAll.Matches(&rec, true))
}

func TestMatches_SharedAcrossGoroutines(t *testing.T) {
	q := mustCompile(t, "FIREFOX and cpu > 50", Options{IgnoreCase: true})
	rec := sampleRecord()

	done := make(chan bool)
	for i := 0; i < 8; i++ {
		go func() {
			ok := true
			for j := 0; j < 200; j++ {
				ok = ok && q.Matches(&rec, false)
			}
			done <- ok
		}()
	}
	for i := 0; i < 8; i++ {
		assert.True(t, <-done)
	}
}
