// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"sync"

	"github.com/apex/log"

	"github.com/staranto/ptop/internal/process"
	"github.com/staranto/ptop/internal/query"
)

// Active is the filter currently applied to the process table. It always
// holds a usable Query: a failed Set leaves the previous one in place and
// records the error so the caller can show it. The zero value matches every
// process. Active is safe for concurrent use.
type Active struct {
	mu      sync.RWMutex
	query   *query.Query
	pending string
	err     error
	caps    *query.Capabilities
}

// NewActive returns an Active that resolves prefixes against caps.
func NewActive(caps query.Capabilities) *Active {
	return &Active{caps: &caps}
}

// Set compiles text with opts. On success the new Query replaces the old
// one; on failure the old one is kept and the compile error is returned and
// remembered until the next successful Set.
func (a *Active) Set(text string, opts query.Options) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.pending = text

	if a.query != nil && a.query.Text() == text && a.query.Options() == opts {
		a.err = nil
		return nil
	}

	var (
		q   *query.Query
		err error
	)
	if a.caps != nil {
		q, err = query.CompileWith(text, opts, *a.caps)
	} else {
		q, err = query.Compile(text, opts)
	}
	if err != nil {
		log.Debugf("filter %q rejected, keeping %q: %v", text, a.textLocked(), err)
		a.err = err
		return err
	}

	log.Debugf("filter compiled: %s", q)
	a.query = q
	a.err = nil
	return nil
}

// Query returns the last successfully compiled Query, or nil when none has
// been set. A nil Query matches everything.
func (a *Active) Query() *query.Query {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.query
}

// Err returns the error of the most recent Set, or nil if it succeeded.
func (a *Active) Err() error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.err
}

// Text returns the source text of the Query in effect.
func (a *Active) Text() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.textLocked()
}

// Pending returns the text passed to the most recent Set, which differs from
// Text while that text fails to compile.
func (a *Active) Pending() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.pending
}

func (a *Active) textLocked() string {
	if a.query == nil {
		return ""
	}
	return a.query.Text()
}

// Apply returns the records matching q, in their original order. Name tests
// look at the full command line when byCommand is set. records is not
// modified.
func Apply(records []process.Record, q *query.Query, byCommand bool) []process.Record {
	//nolint:prealloc // Don't prealloc because we don't know what len will be.
	var matched []process.Record
	for i := range records {
		if q.Matches(&records[i], byCommand) {
			matched = append(matched, records[i])
		}
	}
	return matched
}
