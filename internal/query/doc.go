// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package query compiles process filter expressions and evaluates them
// against process records.
//
// An expression is a boolean combination of attribute tests:
//
//   - firefox : name (or command line) contains "firefox"
//   - "visual studio" : quoted literal, spaces allowed
//   - cpu > 50 : CPU usage above 50%
//   - memb >= 1.5 GiB : resident memory of at least 1.5 GiB
//   - read > 1MB : reading more than 1 MB/s
//   - user=root : owned by root
//   - state:running : process state contains "running"
//   - time > 1h : running for more than an hour
//   - !(pid=1) : negation and grouping
//   - a and b or c : and binds tighter than or; adjacent terms are and-ed
//
// Recognized prefixes are pid, name, state, user, cpu, mem, memb, read,
// write, tread, twrite, time, nice and pri, plus gpu%, gmem and gmem% in
// builds with the gpu tag. A prefix only counts when followed by ':' or a
// comparison operator; otherwise the word is a name search.
//
// String tests honor Options: regex mode compiles the operand with
// regexp, ignore case folds both sides, and whole word requires equality
// instead of containment. Literals are compared after NFKC normalization, so
// full width and half width forms of the same text match each other.
//
// Compile returns either a *Query or an *Error. A Query never fails at
// evaluation and may be shared freely between goroutines.
package query
