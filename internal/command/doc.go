// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command defines the CLI command set for ptop. It wires flags,
// config file defaults, validators and actions for the check, ps and top
// subcommands.
package command
