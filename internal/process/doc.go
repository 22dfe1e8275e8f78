// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package process defines the process record and reads records from the
// running system or from JSON snapshot files.
package process
