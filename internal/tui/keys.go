// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/staranto/ptop/internal/config"
	"github.com/staranto/ptop/internal/locale"
)

// keyMap holds every binding the monitor reacts to. It implements
// help.KeyMap so the help overlay lists whatever is enabled.
type keyMap struct {
	Quit         key.Binding
	ForceQuit    key.Binding
	Help         key.Binding
	Filter       key.Binding
	Leave        key.Binding
	Clear        key.Binding
	Regex        key.Binding
	IgnoreCase   key.Binding
	WholeWord    key.Binding
	Command      key.Binding
	Freeze       key.Binding
	ToggleMemory key.Binding
	ShowPercent  key.Binding
	ShowValues   key.Binding
	Sort         key.Binding
	Reverse      key.Binding
	Up           key.Binding
	Down         key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
}

// binding builds a binding for k, disabled when k is empty.
func binding(k, desc string) key.Binding {
	if k == "" {
		return key.NewBinding(key.WithDisabled())
	}
	return key.NewBinding(key.WithKeys(k), key.WithHelp(k, desc))
}

func newKeyMap(kb config.KeyBindings, lang locale.Language) keyMap {
	t := func(s string) string { return locale.T(lang, s) }

	return keyMap{
		Quit:         binding(kb.Quit, t(locale.KeyQuit)),
		ForceQuit:    key.NewBinding(key.WithKeys("ctrl+c")),
		Help:         binding(kb.Help, t(locale.KeyHelp)),
		Filter:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", t(locale.KeyFilter))),
		Leave:        key.NewBinding(key.WithKeys("esc", "enter"), key.WithHelp("esc", t(locale.EscToClose))),
		Clear:        key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", t(locale.KeyClear))),
		Regex:        binding("alt+r", t(locale.KeyRegex)),
		IgnoreCase:   binding("alt+c", t(locale.KeyIgnoreCase)),
		WholeWord:    binding("alt+w", t(locale.KeyWholeWord)),
		Command:      binding("tab", t(locale.KeyCommand)),
		Freeze:       binding("f", t(locale.KeyFreeze)),
		ToggleMemory: binding(kb.TogglePercentages, t(locale.KeyMemory)),
		ShowPercent:  binding(kb.ShowPercentages, t(locale.KeyShowPercent)),
		ShowValues:   binding(kb.ShowValues, t(locale.KeyShowValues)),
		Sort:         binding("s", t(locale.KeySort)),
		Reverse:      binding("r", t(locale.KeyReverse)),
		Up:           key.NewBinding(key.WithKeys("up", "k")),
		Down:         key.NewBinding(key.WithKeys("down", "j")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Filter, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Filter, k.Leave, k.Clear, k.Regex, k.IgnoreCase, k.WholeWord, k.Command},
		{k.Freeze, k.ToggleMemory, k.ShowPercent, k.ShowValues, k.Sort, k.Reverse, k.Help, k.Quit},
	}
}
