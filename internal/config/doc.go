// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for ptop's user
// configuration. The configuration is a YAML document located by
// PTOP_CFG_FILE or, failing that, in the user's configuration directory:
//   - Linux: $XDG_CONFIG_HOME/ptop.yaml or $HOME/.config/ptop.yaml
//   - macOS: $HOME/Library/Application Support/ptop.yaml
//   - Windows: %APPDATA%/ptop.yaml
//
// A typical file:
//
//	language: ja
//	width_mode: cjk
//	refresh: 2s
//	query:
//	  ignore_case: true
//	keybindings:
//	  quit: x
//	colors:
//	  title: "#00ffff"
package config
