// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters applies compiled process queries to harvested records and
// keeps the last good query alive while the user is still typing an invalid
// one.
//
// Typical use from an input loop:
//
//	active := filters.NewActive(query.DefaultCapabilities())
//	if err := active.Set(input, opts); err != nil {
//		status = locale.Describe(lang, err) // previous query still applies
//	}
//	rows := filters.Apply(records, active.Query(), byCommand)
package filters
