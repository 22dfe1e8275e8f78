// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

// KeyBindings maps the monitor's rebindable actions to key names as
// bubbletea reports them ("q", "ctrl+c", "%"). An empty binding disables the
// action.
type KeyBindings struct {
	Quit              string `yaml:"quit"`
	Help              string `yaml:"help"`
	TogglePercentages string `yaml:"toggle_percentages"`
	ShowPercentages   string `yaml:"show_percentages"`
	ShowValues        string `yaml:"show_values"`
}

// DefaultKeyBindings returns the bindings used when the config file is silent.
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Quit:              "q",
		Help:              "?",
		TogglePercentages: "%",
	}
}

// GetKeyBindings reads keybindings.* from the config file over the defaults.
func GetKeyBindings() KeyBindings {
	kb := DefaultKeyBindings()
	kb.Quit, _ = GetString("keybindings.quit", kb.Quit)
	kb.Help, _ = GetString("keybindings.help", kb.Help)
	kb.TogglePercentages, _ = GetString("keybindings.toggle_percentages", kb.TogglePercentages)
	kb.ShowPercentages, _ = GetString("keybindings.show_percentages", kb.ShowPercentages)
	kb.ShowValues, _ = GetString("keybindings.show_values", kb.ShowValues)
	return kb
}
