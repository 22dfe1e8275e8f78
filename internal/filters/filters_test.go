// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package filters

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/ptop/internal/process"
	"github.com/staranto/ptop/internal/query"
)

func records() []process.Record {
	return []process.Record{
		{PID: 1, Name: "systemd", Command: "/sbin/init splash", CPUPercent: 0.1, MemBytes: 12 << 20, State: "sleep", User: process.StringPtr("root"), Elapsed: 48 * time.Hour},
		{PID: 812, Name: "firefox", Command: "/usr/lib/firefox/firefox", CPUPercent: 42, MemBytes: 2 << 30, State: "running", User: process.StringPtr("alice"), Elapsed: 3 * time.Hour},
		{PID: 813, Name: "Web Content", Command: "/usr/lib/firefox/firefox -contentproc", CPUPercent: 7.5, MemBytes: 300 << 20, State: "sleep", User: process.StringPtr("alice"), Elapsed: 2 * time.Hour},
		{PID: 990, Name: "bash", Command: "bash", CPUPercent: 0, MemBytes: 5 << 20, State: "sleep", Elapsed: 10 * time.Minute},
	}
}

func pids(recs []process.Record) []int32 {
	out := make([]int32, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.PID)
	}
	return out
}

func TestApply(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		byCommand bool
		want      []int32
	}{
		{name: "empty matches all", input: "", want: []int32{1, 812, 813, 990}},
		{name: "bare name", input: "fire", want: []int32{812}},
		{name: "by command", input: "firefox", byCommand: true, want: []int32{812, 813}},
		{name: "cpu and user", input: "cpu > 5 and user:alice", want: []int32{812, 813}},
		{name: "memory unit", input: "memb >= 1GiB", want: []int32{812}},
		{name: "time", input: "time < 1h", want: []int32{990}},
		{name: "missing user", input: "user:N/A", want: []int32{990}},
		{name: "negated group", input: "!(state:sleep)", want: []int32{812}},
		{name: "nothing", input: "pid:4242", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := query.CompileWith(tt.input, query.Options{}, query.Capabilities{Nice: true, GPU: true})
			require.NoError(t, err)

			recs := records()
			got := Apply(recs, q, tt.byCommand)

			if tt.want == nil {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, tt.want, pids(got))
			}
			assert.Equal(t, records(), recs, "input must not be modified")
		})
	}
}

func TestApply_NilQuery(t *testing.T) {
	got := Apply(records(), nil, false)
	assert.Len(t, got, 4)
}

func TestActive_KeepsLastGoodQuery(t *testing.T) {
	a := NewActive(query.Capabilities{Nice: true})

	assert.Nil(t, a.Query())
	assert.Equal(t, "", a.Text())

	require.NoError(t, a.Set("cpu > 5", query.Options{}))
	good := a.Query()
	require.NotNil(t, good)
	assert.Equal(t, "cpu > 5", a.Text())

	err := a.Set("cpu > ", query.Options{})
	require.Error(t, err)

	var qe *query.Error
	require.True(t, errors.As(err, &qe))
	assert.Equal(t, query.InvalidNumberOrUnit, qe.Kind)

	assert.Same(t, good, a.Query(), "previous query stays active")
	assert.Equal(t, "cpu > 5", a.Text())
	assert.Equal(t, "cpu > ", a.Pending())
	assert.Equal(t, err, a.Err())

	require.NoError(t, a.Set("cpu > 50", query.Options{}))
	assert.NoError(t, a.Err())
	assert.Equal(t, "cpu > 50", a.Text())
}

func TestActive_OptionsRecompile(t *testing.T) {
	a := NewActive(query.DefaultCapabilities())

	require.NoError(t, a.Set("Fire", query.Options{}))
	first := a.Query()

	require.NoError(t, a.Set("Fire", query.Options{}))
	assert.Same(t, first, a.Query(), "same text and options reuse the query")

	require.NoError(t, a.Set("Fire", query.Options{IgnoreCase: true}))
	assert.NotSame(t, first, a.Query())
	assert.True(t, a.Query().Options().IgnoreCase)

	rec := process.Record{PID: 1, Name: "firefox"}
	assert.True(t, a.Query().Matches(&rec, false))
}

func TestActive_ZeroValue(t *testing.T) {
	var a Active
	require.NoError(t, a.Set("bash", query.Options{}))
	assert.Len(t, Apply(records(), a.Query(), false), 1)
}

func TestActive_Concurrent(t *testing.T) {
	a := NewActive(query.DefaultCapabilities())
	require.NoError(t, a.Set("sleep", query.Options{}))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_ = a.Set("state:sleep", query.Options{})
				return
			}
			_ = Apply(records(), a.Query(), false)
		}(i)
	}
	wg.Wait()

	assert.NotNil(t, a.Query())
}
