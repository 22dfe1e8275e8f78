// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package locale holds ptop's UI strings in English and Japanese and renders
// query compile errors for display. The language is always passed in
// explicitly; nothing here keeps global state beyond the read-only catalog.
package locale
