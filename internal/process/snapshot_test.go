// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package process

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSnapshot_Shapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"bare array", `[{"pid": 1, "name": "init"}, {"pid": 2, "name": "kthreadd"}]`, 2},
		{"wrapped", `{"processes": [{"pid": 1, "name": "init"}]}`, 1},
		{"empty array", `[]`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadSnapshot(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestLoadSnapshot_Fields(t *testing.T) {
	input := `[{
		"pid": 4242,
		"name": "firefox",
		"cmdline": "/usr/lib/firefox/firefox --new-window",
		"cpu": 12.5,
		"rss": 1073741824,
		"mem_percent": 3.25,
		"read_per_sec": 2048,
		"write_per_sec": 1024,
		"total_read": 99,
		"total_write": 98,
		"status": "sleep",
		"user": "alice",
		"elapsed": "1h30m",
		"nice": -5
	}, {
		"pid": 1,
		"name": "init",
		"user": null,
		"elapsed": 90
	}]`

	got, err := LoadSnapshot(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 2)

	ff := got[0]
	assert.Equal(t, int32(4242), ff.PID)
	assert.Equal(t, "firefox", ff.Name)
	assert.Equal(t, "/usr/lib/firefox/firefox --new-window", ff.Command)
	assert.InDelta(t, 12.5, ff.CPUPercent, 1e-9)
	assert.Equal(t, uint64(1<<30), ff.MemBytes)
	assert.InDelta(t, 3.25, ff.MemPercent, 1e-9)
	assert.Equal(t, uint64(2048), ff.ReadPerSec)
	assert.Equal(t, uint64(1024), ff.WritePerSec)
	assert.Equal(t, uint64(99), ff.TotalRead)
	assert.Equal(t, uint64(98), ff.TotalWrite)
	assert.Equal(t, "sleep", ff.State)
	assert.Equal(t, "alice", ff.UserName())
	assert.Equal(t, 90*time.Minute, ff.Elapsed)
	assert.Equal(t, int32(-5), ff.Nice)

	pinit := got[1]
	assert.Equal(t, "init", pinit.Command, "command falls back to name")
	assert.Nil(t, pinit.User)
	assert.Equal(t, 90*time.Second, pinit.Elapsed)
}

func TestLoadSnapshot_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"invalid json", `[{"pid": 1`, "not valid JSON"},
		{"no array", `{"items": []}`, "no process array"},
		{"scalar", `42`, "no process array"},
		{"row not object", `[1]`, "row 0"},
		{"missing pid", `[{"name": "x"}]`, "missing pid"},
		{"bad elapsed", `[{"pid": 1, "elapsed": "soon"}]`, "invalid elapsed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSnapshot(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestWriteSnapshot_RoundTrip(t *testing.T) {
	records := []Record{
		{
			PID:        10,
			Name:       "bash",
			Command:    "bash -l",
			CPUPercent: 1.5,
			MemBytes:   2048,
			State:      "running",
			User:       StringPtr("bob"),
			Elapsed:    2 * time.Hour,
			Nice:       3,
			Priority:   23,
		},
		{PID: 11, Name: "ghost", Command: "ghost"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSnapshot(&buf, records))

	got, err := LoadSnapshot(&buf)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}
