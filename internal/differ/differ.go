// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/apex/log"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/staranto/ptop/internal/process"
)

// Kind classifies one entry of a snapshot comparison.
type Kind int

const (
	Started Kind = iota
	Exited
	Changed
)

func (k Kind) String() string {
	switch k {
	case Started:
		return "+"
	case Exited:
		return "-"
	default:
		return "~"
	}
}

// Change is one process that differs between two snapshots. Delta is the
// rendered field diff for Changed entries.
type Change struct {
	Kind  Kind
	PID   int32
	Name  string
	Delta string
}

// DefaultIgnore lists record fields that move on every sample.
var DefaultIgnore = []string{"elapsed", "cpu_percent", "read_per_sec", "write_per_sec"}

// Compare matches processes by PID. A PID present in both snapshots with a
// different command is reported as one exit and one start. Fields named in
// ignore are left out of the comparison.
func Compare(before, after []process.Record, ignore []string, coloring bool) ([]Change, error) {
	log.Debugf(">> differ.Compare(%d, %d)", len(before), len(after))

	old := index(before)
	cur := index(after)
	differ := gojsondiff.New()

	var changes []Change
	for pid, a := range old {
		b, ok := cur[pid]
		if !ok || a.Command != b.Command {
			changes = append(changes, Change{Kind: Exited, PID: pid, Name: a.Name})
			continue
		}

		left, err := toObject(a, ignore)
		if err != nil {
			return nil, err
		}
		right, err := toObject(b, ignore)
		if err != nil {
			return nil, err
		}

		delta := differ.CompareObjects(left, right)
		if !delta.Modified() {
			continue
		}

		f := formatter.NewAsciiFormatter(left, formatter.AsciiFormatterConfig{
			ShowArrayIndex: false,
			Coloring:       coloring,
		})
		text, err := f.Format(delta)
		if err != nil {
			return nil, fmt.Errorf("failed to format diff for pid %d: %w", pid, err)
		}
		changes = append(changes, Change{Kind: Changed, PID: pid, Name: b.Name, Delta: text})
	}

	for pid, b := range cur {
		if a, ok := old[pid]; !ok || a.Command != b.Command {
			changes = append(changes, Change{Kind: Started, PID: pid, Name: b.Name})
		}
	}

	sort.SliceStable(changes, func(i, j int) bool {
		if changes[i].PID != changes[j].PID {
			return changes[i].PID < changes[j].PID
		}
		return changes[i].Kind > changes[j].Kind
	})

	return changes, nil
}

func index(records []process.Record) map[int32]*process.Record {
	m := make(map[int32]*process.Record, len(records))
	for i := range records {
		m[records[i].PID] = &records[i]
	}
	return m
}

// toObject turns rec into the generic object the JSON differ works on.
func toObject(rec *process.Record, ignore []string) (map[string]interface{}, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal pid %d: %w", rec.PID, err)
	}

	var obj map[string]interface{}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pid %d: %w", rec.PID, err)
	}

	for _, key := range ignore {
		delete(obj, key)
	}
	return obj, nil
}

// Write renders changes one per line, with field diffs indented below each
// changed process.
func Write(w io.Writer, changes []Change) error {
	if len(changes) == 0 {
		_, err := fmt.Fprintln(w, "The snapshots are identical.")
		return err
	}

	for _, c := range changes {
		if _, err := fmt.Fprintf(w, "%s %d %s\n", c.Kind, c.PID, c.Name); err != nil {
			return err
		}
		if c.Delta != "" {
			if _, err := fmt.Fprintln(w, c.Delta); err != nil {
				return err
			}
		}
	}
	return nil
}
