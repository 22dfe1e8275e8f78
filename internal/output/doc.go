// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output shapes filtered process records into rows, sorts them and
// emits them as a text table, json or yaml.
package output
