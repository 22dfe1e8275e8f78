// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package tui is the interactive process monitor behind `ptop top`.
//
// The model refreshes the process table on a timer and filters it with the
// expression typed into the filter line. Edits are recompiled once typing
// pauses. A filter that does not compile is reported in the status line
// while the last good one keeps filtering the table.
package tui
