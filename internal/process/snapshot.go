// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/tidwall/gjson"
)

// fieldKeys lists, per record field, the JSON keys a snapshot may use. The
// first key present wins. The first key of each list is what WriteSnapshot
// emits.
var fieldKeys = map[string][]string{
	"pid":           {"pid", "PID"},
	"name":          {"name", "Name"},
	"command":       {"command", "cmdline", "cmd"},
	"cpu":           {"cpu_percent", "cpuPercent", "cpu"},
	"memb":          {"mem_bytes", "mem_rss", "rss"},
	"mem":           {"mem_percent", "memPercent", "mem"},
	"read":          {"read_per_sec", "read"},
	"write":         {"write_per_sec", "write"},
	"tread":         {"total_read", "tread"},
	"twrite":        {"total_write", "twrite"},
	"state":         {"state", "status"},
	"user":          {"user", "username"},
	"elapsed":       {"elapsed", "runtime", "time"},
	"nice":          {"nice"},
	"priority":      {"priority", "pri"},
	"gpu_percent":   {"gpu_percent"},
	"gpu_mem_pct":   {"gpu_mem_percent"},
	"gpu_mem_bytes": {"gpu_mem_bytes"},
}

// lookup returns the first present key of field in row.
func lookup(row gjson.Result, field string) gjson.Result {
	for _, key := range fieldKeys[field] {
		if v := row.Get(key); v.Exists() {
			return v
		}
	}
	return gjson.Result{}
}

// LoadSnapshot reads records from a JSON document that is either an array of
// process objects or an object with such an array under "processes".
// Elapsed time may be given in seconds or as a duration string like "1h2m".
func LoadSnapshot(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("snapshot is not valid JSON")
	}

	doc := gjson.ParseBytes(data)
	if doc.IsObject() {
		doc = doc.Get("processes")
	}
	if !doc.IsArray() {
		return nil, fmt.Errorf("snapshot has no process array")
	}

	rows := doc.Array()
	records := make([]Record, 0, len(rows))
	for i, row := range rows {
		rec, err := recordFromJSON(row)
		if err != nil {
			return nil, fmt.Errorf("snapshot row %d: %w", i, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func recordFromJSON(row gjson.Result) (Record, error) {
	if !row.IsObject() {
		return Record{}, fmt.Errorf("not an object")
	}

	pid := lookup(row, "pid")
	if !pid.Exists() {
		return Record{}, fmt.Errorf("missing pid")
	}

	rec := Record{
		PID:           int32(pid.Int()),
		Name:          lookup(row, "name").String(),
		Command:       lookup(row, "command").String(),
		CPUPercent:    lookup(row, "cpu").Float(),
		MemBytes:      lookup(row, "memb").Uint(),
		MemPercent:    lookup(row, "mem").Float(),
		ReadPerSec:    lookup(row, "read").Uint(),
		WritePerSec:   lookup(row, "write").Uint(),
		TotalRead:     lookup(row, "tread").Uint(),
		TotalWrite:    lookup(row, "twrite").Uint(),
		State:         lookup(row, "state").String(),
		Nice:          int32(lookup(row, "nice").Int()),
		Priority:      int32(lookup(row, "priority").Int()),
		GPUPercent:    lookup(row, "gpu_percent").Float(),
		GPUMemPercent: lookup(row, "gpu_mem_pct").Float(),
		GPUMemBytes:   lookup(row, "gpu_mem_bytes").Uint(),
	}

	if rec.Command == "" {
		rec.Command = rec.Name
	}

	if user := lookup(row, "user"); user.Exists() && user.Type != gjson.Null && user.String() != "" {
		rec.User = StringPtr(user.String())
	}

	elapsed, err := parseElapsed(lookup(row, "elapsed"))
	if err != nil {
		return Record{}, err
	}
	rec.Elapsed = elapsed

	return rec, nil
}

func parseElapsed(v gjson.Result) (time.Duration, error) {
	switch v.Type {
	case gjson.Null:
		return 0, nil
	case gjson.Number:
		return time.Duration(v.Float() * float64(time.Second)), nil
	case gjson.String:
		d, err := time.ParseDuration(v.String())
		if err != nil {
			return 0, fmt.Errorf("invalid elapsed %q: %w", v.String(), err)
		}
		return d, nil
	}
	return 0, fmt.Errorf("invalid elapsed %s", v.Raw)
}

// WriteSnapshot writes records in the format LoadSnapshot reads.
func WriteSnapshot(w io.Writer, records []Record) error {
	rows := make([]map[string]any, 0, len(records))
	for i := range records {
		r := &records[i]
		row := map[string]any{
			fieldKeys["pid"][0]:      r.PID,
			fieldKeys["name"][0]:     r.Name,
			fieldKeys["command"][0]:  r.Command,
			fieldKeys["cpu"][0]:      r.CPUPercent,
			fieldKeys["memb"][0]:     r.MemBytes,
			fieldKeys["mem"][0]:      r.MemPercent,
			fieldKeys["read"][0]:     r.ReadPerSec,
			fieldKeys["write"][0]:    r.WritePerSec,
			fieldKeys["tread"][0]:    r.TotalRead,
			fieldKeys["twrite"][0]:   r.TotalWrite,
			fieldKeys["state"][0]:    r.State,
			fieldKeys["user"][0]:     r.User,
			fieldKeys["elapsed"][0]:  r.Elapsed.Seconds(),
			fieldKeys["nice"][0]:     r.Nice,
			fieldKeys["priority"][0]: r.Priority,
		}
		if r.GPUPercent != 0 || r.GPUMemPercent != 0 || r.GPUMemBytes != 0 {
			row[fieldKeys["gpu_percent"][0]] = r.GPUPercent
			row[fieldKeys["gpu_mem_pct"][0]] = r.GPUMemPercent
			row[fieldKeys["gpu_mem_bytes"][0]] = r.GPUMemBytes
		}
		rows = append(rows, row)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string]any{"processes": rows}); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}
