// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/ptop/internal/config"
	"github.com/staranto/ptop/internal/locale"
	"github.com/staranto/ptop/internal/process"
	"github.com/staranto/ptop/internal/query"
)

type fakeSource struct {
	records []process.Record
	calls   int
}

func (f *fakeSource) Snapshot(context.Context) ([]process.Record, error) {
	f.calls++
	return f.records, nil
}

var testRecords = []process.Record{
	{PID: 1, Name: "bash", Command: "/bin/bash -l", CPUPercent: 5, MemBytes: 1 << 20, MemPercent: 0.5},
	{PID: 2, Name: "go", Command: "/usr/local/go/bin/go test", CPUPercent: 50, MemBytes: 1 << 30, MemPercent: 12},
}

func newTestModel(t *testing.T, filter string) Model {
	t.Helper()
	m := New(context.Background(), Settings{
		Source:   &fakeSource{records: testRecords},
		Filter:   filter,
		Caps:     query.DefaultCapabilities(),
		Language: locale.English,
		Keys:     config.DefaultKeyBindings(),
	})
	return update(t, m, recordsMsg{records: testRecords})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = update(t, m, runes(string(r)))
	}
	return m
}

func TestModel_InitialFilter(t *testing.T) {
	m := newTestModel(t, "cpu>10")

	assert.NoError(t, m.Err())
	assert.Equal(t, "cpu>10", m.Filter())
	assert.Equal(t, 1, m.shown)
	assert.Contains(t, m.View(), "1 of 2 processes")
}

func TestModel_DebounceIgnoresStaleEdits(t *testing.T) {
	m := newTestModel(t, "")
	m = update(t, m, runes("/"))
	require.True(t, m.editing)

	m = typeText(t, m, "go")
	assert.Equal(t, 2, m.editSeq)
	assert.Equal(t, "", m.Filter(), "nothing recompiles before the pause")

	m = update(t, m, recompileMsg{seq: 1})
	assert.Equal(t, "", m.Filter(), "stale edit is ignored")

	m = update(t, m, recompileMsg{seq: 2})
	assert.Equal(t, "go", m.Filter())
	assert.Equal(t, 1, m.shown)
}

func TestModel_InvalidFilterKeepsPrevious(t *testing.T) {
	m := newTestModel(t, "cpu>10")
	m = update(t, m, runes("/"))
	m = typeText(t, m, " and (")
	m = update(t, m, recompileMsg{seq: m.editSeq})

	var qe *query.Error
	require.ErrorAs(t, m.Err(), &qe)
	assert.Equal(t, "cpu>10", m.Filter())
	assert.Equal(t, 1, m.shown)
	assert.Contains(t, m.statusView(), "Error")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	m = update(t, m, recompileMsg{seq: m.editSeq})
	// "cpu>10 and " still dangles.
	assert.Error(t, m.Err())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	m = update(t, m, recompileMsg{seq: m.editSeq})
	assert.NoError(t, m.Err())
	assert.Equal(t, 2, m.shown)
}

func TestModel_OptionToggles(t *testing.T) {
	m := newTestModel(t, "BASH")
	assert.Equal(t, 0, m.shown)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c"), Alt: true})
	assert.True(t, m.Options().IgnoreCase)
	assert.Equal(t, 1, m.shown)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("w"), Alt: true})
	assert.True(t, m.Options().WholeWord)
	assert.Equal(t, 1, m.shown)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r"), Alt: true})
	assert.True(t, m.Options().UseRegex)
	assert.NoError(t, m.Err())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, m.byCommand)
	// Whole-word regex against "/bin/bash -l" no longer matches.
	assert.Equal(t, 0, m.shown)
}

func TestModel_Freeze(t *testing.T) {
	m := newTestModel(t, "")
	m = update(t, m, runes("f"))
	require.True(t, m.frozen)

	m = update(t, m, recordsMsg{records: testRecords[:1]})
	assert.Len(t, m.records, 2, "frozen table ignores new snapshots")
	assert.Contains(t, m.statusView(), "Frozen, press 'f' to unfreeze")

	_, cmd := m.Update(tickMsg{})
	assert.NotNil(t, cmd, "ticks keep being scheduled while frozen")

	m = update(t, m, runes("f"))
	m = update(t, m, recordsMsg{records: testRecords[:1]})
	assert.Len(t, m.records, 1)
}

func TestModel_MemoryToggle(t *testing.T) {
	m := newTestModel(t, "")

	hasKey := func(m Model, k string) bool {
		for _, c := range m.columns() {
			if c.Key == k {
				return true
			}
		}
		return false
	}

	require.True(t, m.memPercent)
	m = update(t, m, runes("%"))
	assert.False(t, m.memPercent)
	assert.False(t, hasKey(m, "mem"))
	assert.True(t, hasKey(m, "memb"))

	m = update(t, m, runes("%"))
	assert.True(t, m.memPercent)
}

func TestModel_SortAndCursor(t *testing.T) {
	m := newTestModel(t, "")
	require.Len(t, m.visible, 2)
	assert.Equal(t, int32(2), m.visible[0]["pid"], "default sort is cpu descending")

	m = update(t, m, runes("r"))
	assert.Equal(t, int32(1), m.visible[0]["pid"])

	m = update(t, m, runes("j"))
	m = update(t, m, runes("j"))
	assert.Equal(t, 1, m.cursor, "cursor stops at the last row")
	m = update(t, m, runes("k"))
	assert.Equal(t, 0, m.cursor)
}

func TestModel_HelpAndQuit(t *testing.T) {
	m := newTestModel(t, "")

	m = update(t, m, runes("?"))
	require.True(t, m.showHelp)
	assert.Contains(t, m.View(), "Esc to close")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.showHelp)

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestModel_JapaneseStatus(t *testing.T) {
	m := New(context.Background(), Settings{
		Filter:   "bogus:1",
		Caps:     query.DefaultCapabilities(),
		Language: locale.Japanese,
		Keys:     config.DefaultKeyBindings(),
	})

	require.Error(t, m.Err())
	assert.Contains(t, m.statusView(), "エラー")
}
