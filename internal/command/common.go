// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/staranto/ptop/internal/attrs"
	"github.com/staranto/ptop/internal/locale"
	"github.com/staranto/ptop/internal/log"
	"github.com/staranto/ptop/internal/meta"
	"github.com/staranto/ptop/internal/output"
	"github.com/staranto/ptop/internal/process"
	"github.com/staranto/ptop/internal/query"
	"github.com/staranto/ptop/internal/textwidth"
)

// BuildAttrs constructs an AttrList from defaults and optional extras from
// --attrs. The global transform spec is applied when rendering.
func BuildAttrs(cmd *cli.Command, defaults ...string) (attrs.AttrList, error) {
	var al attrs.AttrList
	for _, d := range defaults {
		if err := al.Set(d); err != nil {
			return nil, err
		}
	}
	if extras := cmd.String("attrs"); extras != "" {
		if err := al.Set(extras); err != nil {
			return nil, fmt.Errorf("--attrs: %w", err)
		}
	}
	return al, nil
}

// DumpSchemaIfRequested writes the attribute schema to stdout when --schema
// is set, and returns true if it handled the request.
func DumpSchemaIfRequested(cmd *cli.Command, caps query.Capabilities) bool {
	if cmd.Bool("schema") {
		output.DumpSchema(stdout(cmd), caps.GPU)
		return true
	}
	return false
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// QueryOptions reads the string matching flags.
func QueryOptions(cmd *cli.Command) query.Options {
	return query.Options{
		UseRegex:   cmd.Bool("regex"),
		IgnoreCase: cmd.Bool("ignore-case"),
		WholeWord:  cmd.Bool("whole-word"),
	}
}

// Language is --language when given, else the language resolved at startup.
func Language(cmd *cli.Command) locale.Language {
	if s := cmd.String("language"); s != "" {
		if l, err := locale.Parse(s); err == nil {
			return l
		}
	}
	return GetMeta(cmd).Language
}

// WidthMode is --width-mode; validation already rejected bad values.
func WidthMode(cmd *cli.Command) textwidth.Mode {
	m, _ := textwidth.ParseMode(cmd.String("width-mode"))
	return m
}

// LoadSnapshotFile reads records from a snapshot file, or stdin for "-".
func LoadSnapshotFile(path string) ([]process.Record, error) {
	if path == "-" {
		return process.LoadSnapshot(os.Stdin)
	}

	if info, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("snapshot file does not exist: %s", path)
	} else if info.IsDir() {
		return nil, fmt.Errorf("snapshot cannot be a directory: %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	recs, err := process.LoadSnapshot(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}

// stdout is the root command's writer, which tests replace.
func stdout(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}
	return os.Stdout
}

// staticSource replays the same records on every refresh.
type staticSource []process.Record

func (s staticSource) Snapshot(context.Context) ([]process.Record, error) {
	return s, nil
}

// sampledSnapshot harvests twice, interval apart, so the second snapshot
// carries CPU and I/O rates. A zero interval harvests once.
func sampledSnapshot(ctx context.Context, h *process.Harvester, interval time.Duration) ([]process.Record, error) {
	recs, err := h.Snapshot(ctx)
	if err != nil || interval <= 0 {
		return recs, err
	}

	log.Debugf("sampling rates over %v", interval)
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(interval):
	}

	return h.Snapshot(ctx)
}

// compileFilter compiles the --filter expression. A failure is reported in
// the UI language.
func compileFilter(cmd *cli.Command, caps query.Capabilities) (*query.Query, error) {
	q, err := query.CompileWith(cmd.String("filter"), QueryOptions(cmd), caps)
	if err != nil {
		return nil, localize(Language(cmd), err)
	}
	return q, nil
}

// localizedError renders a query error in the UI language while keeping the
// *query.Error reachable through errors.As.
type localizedError struct {
	msg string
	err error
}

func (e *localizedError) Error() string { return e.msg }
func (e *localizedError) Unwrap() error { return e.err }

func localize(l locale.Language, err error) error {
	return &localizedError{
		msg: locale.T(l, locale.ErrorTitle) + ": " + locale.Describe(l, err),
		err: err,
	}
}
