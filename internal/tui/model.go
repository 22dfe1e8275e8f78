// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/staranto/ptop/internal/attrs"
	"github.com/staranto/ptop/internal/config"
	"github.com/staranto/ptop/internal/filters"
	"github.com/staranto/ptop/internal/locale"
	"github.com/staranto/ptop/internal/log"
	"github.com/staranto/ptop/internal/output"
	"github.com/staranto/ptop/internal/process"
	"github.com/staranto/ptop/internal/query"
	"github.com/staranto/ptop/internal/textwidth"
)

// Source produces a fresh process snapshot on each call.
type Source interface {
	Snapshot(ctx context.Context) ([]process.Record, error)
}

// Settings configures a monitor session.
type Settings struct {
	Source    Source
	Refresh   time.Duration
	Debounce  time.Duration
	Filter    string
	Options   query.Options
	ByCommand bool
	Caps      query.Capabilities
	Language  locale.Language
	WidthMode textwidth.Mode
	Keys      config.KeyBindings
	Attrs     attrs.AttrList
	Sort      string
}

const (
	defaultRefresh  = time.Second
	defaultDebounce = 150 * time.Millisecond
)

type (
	tickMsg    time.Time
	recordsMsg struct {
		records []process.Record
		err     error
	}
	// recompileMsg fires once typing pauses. Only the message carrying the
	// latest edit sequence recompiles.
	recompileMsg struct{ seq int }
)

// Model is the bubbletea model of the monitor.
type Model struct {
	ctx      context.Context
	settings Settings
	keys     keyMap
	help     help.Model
	input    textinput.Model

	active    *filters.Active
	options   query.Options
	byCommand bool

	records    []process.Record
	visible    []map[string]interface{}
	shown      int
	harvestErr error

	editSeq    int
	editing    bool
	frozen     bool
	showHelp   bool
	memPercent bool
	sortIdx    int
	sortDesc   bool
	cursor     int
	offset     int
	width      int
	height     int
}

// New builds a Model from s. The initial filter is compiled right away; if
// it fails the error shows in the status line and every process matches.
func New(ctx context.Context, s Settings) Model {
	if s.Refresh <= 0 {
		s.Refresh = defaultRefresh
	}
	if s.Debounce <= 0 {
		s.Debounce = defaultDebounce
	}
	if len(s.Attrs) == 0 {
		_ = s.Attrs.Set(attrs.DefaultSpec)
	}

	ti := textinput.New()
	ti.Prompt = locale.T(s.Language, locale.FilterPrompt)
	ti.CharLimit = 1024
	ti.SetValue(s.Filter)
	ti.CursorEnd()

	m := Model{
		ctx:        ctx,
		settings:   s,
		keys:       newKeyMap(s.Keys, s.Language),
		help:       help.New(),
		input:      ti,
		active:     filters.NewActive(s.Caps),
		options:    s.Options,
		byCommand:  s.ByCommand,
		memPercent: true,
		width:      80,
		height:     24,
		sortDesc:   true,
	}
	m.sortIdx = m.initialSort()
	_ = m.compile()

	return m
}

// initialSort maps the settings' sort spec to a column index, defaulting to
// CPU descending.
func (m *Model) initialSort() int {
	spec := m.settings.Sort
	if spec == "" {
		spec = "-cpu"
	}
	m.sortDesc = len(spec) > 0 && spec[0] == '-'
	if m.sortDesc {
		spec = spec[1:]
	}
	for i, a := range m.columns() {
		if a.Key == spec || a.OutputKey == spec {
			return i
		}
	}
	return 0
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.harvest(), m.tick())
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.settings.Refresh, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) harvest() tea.Cmd {
	src, ctx := m.settings.Source, m.ctx
	if src == nil {
		return nil
	}
	return func() tea.Msg {
		recs, err := src.Snapshot(ctx)
		return recordsMsg{records: recs, err: err}
	}
}

// compile replaces the active query with the input text. On failure the
// previous query stays in effect.
func (m *Model) compile() error {
	err := m.active.Set(m.input.Value(), m.options)
	if err != nil {
		log.Debugf("filter error: %v", err)
	}
	m.refresh()
	return err
}

// edited schedules a recompile after the debounce delay.
func (m *Model) edited() tea.Cmd {
	m.editSeq++
	seq := m.editSeq
	return tea.Tick(m.settings.Debounce, func(time.Time) tea.Msg { return recompileMsg{seq: seq} })
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.clampCursor()
		return m, nil

	case tickMsg:
		if m.frozen {
			return m, m.tick()
		}
		return m, tea.Batch(m.harvest(), m.tick())

	case recordsMsg:
		if msg.err != nil {
			log.Errorf("snapshot: %v", msg.err)
			m.harvestErr = msg.err
			return m, nil
		}
		m.harvestErr = nil
		if !m.frozen {
			m.records = msg.records
			m.refresh()
		}
		return m, nil

	case recompileMsg:
		if msg.seq == m.editSeq {
			_ = m.compile()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	// Option toggles work while typing too.
	switch {
	case key.Matches(msg, m.keys.Regex):
		m.options.UseRegex = !m.options.UseRegex
		_ = m.compile()
		return m, nil
	case key.Matches(msg, m.keys.IgnoreCase):
		m.options.IgnoreCase = !m.options.IgnoreCase
		_ = m.compile()
		return m, nil
	case key.Matches(msg, m.keys.WholeWord):
		m.options.WholeWord = !m.options.WholeWord
		_ = m.compile()
		return m, nil
	case key.Matches(msg, m.keys.Command):
		m.byCommand = !m.byCommand
		m.refresh()
		return m, nil
	}

	if m.editing {
		switch {
		case key.Matches(msg, m.keys.Leave):
			m.editing = false
			m.input.Blur()
			_ = m.compile()
			return m, nil
		case key.Matches(msg, m.keys.Clear):
			m.input.SetValue("")
			return m, m.edited()
		}

		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() != before {
			return m, tea.Batch(cmd, m.edited())
		}
		return m, cmd
	}

	if m.showHelp {
		if key.Matches(msg, m.keys.Help, m.keys.Leave) {
			m.showHelp = false
		} else if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.Filter):
		m.editing = true
		m.input.CursorEnd()
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Clear):
		m.input.SetValue("")
		_ = m.compile()
	case key.Matches(msg, m.keys.Freeze):
		m.frozen = !m.frozen
	case key.Matches(msg, m.keys.ToggleMemory):
		m.memPercent = !m.memPercent
		m.refresh()
	case key.Matches(msg, m.keys.ShowPercent):
		m.memPercent = true
		m.refresh()
	case key.Matches(msg, m.keys.ShowValues):
		m.memPercent = false
		m.refresh()
	case key.Matches(msg, m.keys.Sort):
		m.sortIdx = (m.sortIdx + 1) % max(len(m.columns()), 1)
		m.refresh()
	case key.Matches(msg, m.keys.Reverse):
		m.sortDesc = !m.sortDesc
		m.refresh()
	case key.Matches(msg, m.keys.Up):
		m.cursor--
		m.clampCursor()
	case key.Matches(msg, m.keys.Down):
		m.cursor++
		m.clampCursor()
	case key.Matches(msg, m.keys.PageUp):
		m.cursor -= m.pageSize()
		m.clampCursor()
	case key.Matches(msg, m.keys.PageDown):
		m.cursor += m.pageSize()
		m.clampCursor()
	}

	return m, nil
}

// columns returns the attrs on screen, with the memory column showing
// either percent or bytes.
func (m *Model) columns() attrs.AttrList {
	cols := m.settings.Attrs.Included()
	out := make(attrs.AttrList, 0, len(cols))
	for _, a := range cols {
		switch {
		case a.Key == "mem" && !m.memPercent:
			a = attrs.Attr{Key: "memb", OutputKey: "memb", Include: true, TransformSpec: "b"}
		case a.Key == "memb" && m.memPercent:
			a = attrs.Attr{Key: "mem", OutputKey: "mem", Include: true}
		case a.Key == "memb" && a.TransformSpec == "":
			a.TransformSpec = "b"
		}
		out = append(out, a)
	}
	return out
}

// refresh filters, sorts and formats the current records.
func (m *Model) refresh() {
	matched := filters.Apply(m.records, m.active.Query(), m.byCommand)
	m.shown = len(matched)

	cols := m.columns()
	rows := output.Rows(matched, cols)
	if m.sortIdx < len(cols) {
		spec := cols[m.sortIdx].OutputKey
		if m.sortDesc {
			spec = "-" + spec
		}
		output.SortDataset(rows, spec)
	}
	output.Transform(rows, cols, m.settings.WidthMode)

	m.visible = rows
	m.clampCursor()
}

func (m *Model) pageSize() int {
	return max(m.tableHeight()-1, 1)
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	h := m.tableHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// Filter returns the text of the query in effect.
func (m Model) Filter() string { return m.active.Text() }

// Err returns the current filter compile error.
func (m Model) Err() error { return m.active.Err() }

// Options returns the current query options.
func (m Model) Options() query.Options { return m.options }

// Run starts the monitor on the terminal and blocks until the user quits.
func Run(ctx context.Context, s Settings) error {
	p := tea.NewProgram(New(ctx, s), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
