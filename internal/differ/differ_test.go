// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package differ

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/ptop/internal/process"
)

func TestCompare(t *testing.T) {
	before := []process.Record{
		{PID: 1, Name: "init", Command: "/sbin/init", State: "S", Elapsed: time.Hour},
		{PID: 20, Name: "vim", Command: "vim notes", State: "S", MemBytes: 100},
		{PID: 30, Name: "sleep", Command: "sleep 5", State: "S"},
		{PID: 40, Name: "old", Command: "old --serve", State: "S"},
	}
	after := []process.Record{
		{PID: 1, Name: "init", Command: "/sbin/init", State: "S", Elapsed: 2 * time.Hour, CPUPercent: 3},
		{PID: 20, Name: "vim", Command: "vim notes", State: "R", MemBytes: 200},
		{PID: 40, Name: "new", Command: "new --serve", State: "S"},
		{PID: 50, Name: "make", Command: "make all", State: "R"},
	}

	changes, err := Compare(before, after, DefaultIgnore, false)
	require.NoError(t, err)

	type got struct {
		Kind Kind
		PID  int32
		Name string
	}
	var summary []got
	for _, c := range changes {
		summary = append(summary, got{c.Kind, c.PID, c.Name})
	}

	assert.Equal(t, []got{
		{Changed, 20, "vim"},
		{Exited, 30, "sleep"},
		{Exited, 40, "old"},
		{Started, 40, "new"},
		{Started, 50, "make"},
	}, summary, "pid 1 only moved in ignored fields")

	assert.Contains(t, changes[0].Delta, "mem_bytes")
	assert.Contains(t, changes[0].Delta, "state")
}

func TestCompare_NoIgnore(t *testing.T) {
	before := []process.Record{{PID: 1, Name: "init", Command: "/sbin/init", Elapsed: time.Hour}}
	after := []process.Record{{PID: 1, Name: "init", Command: "/sbin/init", Elapsed: 2 * time.Hour}}

	changes, err := Compare(before, after, nil, false)
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, Changed, changes[0].Kind)
	assert.Contains(t, changes[0].Delta, "elapsed")
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil))
	assert.Equal(t, "The snapshots are identical.\n", buf.String())

	buf.Reset()
	require.NoError(t, Write(&buf, []Change{
		{Kind: Exited, PID: 30, Name: "sleep"},
		{Kind: Started, PID: 50, Name: "make"},
	}))
	assert.Equal(t, "- 30 sleep\n+ 50 make\n", buf.String())
}
