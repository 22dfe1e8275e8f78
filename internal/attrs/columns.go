// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package attrs

import (
	"sort"

	"github.com/staranto/ptop/internal/process"
)

// Column describes one selectable process attribute.
type Column struct {
	Key   string
	Title string
	// Numeric columns sort by value and are right-aligned in tables.
	Numeric bool
	// GPU columns are only offered when the build carries GPU support.
	GPU     bool
	Extract func(*process.Record) any
}

var columns = map[string]Column{
	"pid":     {Key: "pid", Title: "PID", Numeric: true, Extract: func(r *process.Record) any { return r.PID }},
	"name":    {Key: "name", Title: "Name", Extract: func(r *process.Record) any { return r.Name }},
	"command": {Key: "command", Title: "Command", Extract: func(r *process.Record) any { return r.Command }},
	"cpu":     {Key: "cpu", Title: "CPU%", Numeric: true, Extract: func(r *process.Record) any { return r.CPUPercent }},
	"mem":     {Key: "mem", Title: "Mem%", Numeric: true, Extract: func(r *process.Record) any { return r.MemPercent }},
	"memb":    {Key: "memb", Title: "Mem", Numeric: true, Extract: func(r *process.Record) any { return r.MemBytes }},
	"read":    {Key: "read", Title: "R/s", Numeric: true, Extract: func(r *process.Record) any { return r.ReadPerSec }},
	"write":   {Key: "write", Title: "W/s", Numeric: true, Extract: func(r *process.Record) any { return r.WritePerSec }},
	"tread":   {Key: "tread", Title: "T.Read", Numeric: true, Extract: func(r *process.Record) any { return r.TotalRead }},
	"twrite":  {Key: "twrite", Title: "T.Write", Numeric: true, Extract: func(r *process.Record) any { return r.TotalWrite }},
	"state":   {Key: "state", Title: "State", Extract: func(r *process.Record) any { return r.State }},
	"user":    {Key: "user", Title: "User", Extract: func(r *process.Record) any { return r.UserName() }},
	"time":    {Key: "time", Title: "Time", Numeric: true, Extract: func(r *process.Record) any { return r.Elapsed }},
	"nice":    {Key: "nice", Title: "Nice", Numeric: true, Extract: func(r *process.Record) any { return r.Nice }},
	"pri":     {Key: "pri", Title: "Pri", Numeric: true, Extract: func(r *process.Record) any { return r.Priority }},
	"gpu":     {Key: "gpu", Title: "GPU%", Numeric: true, GPU: true, Extract: func(r *process.Record) any { return r.GPUPercent }},
	"gmem%":   {Key: "gmem%", Title: "GMem%", Numeric: true, GPU: true, Extract: func(r *process.Record) any { return r.GPUMemPercent }},
	"gmem":    {Key: "gmem", Title: "GMem", Numeric: true, GPU: true, Extract: func(r *process.Record) any { return r.GPUMemBytes }},
}

// DefaultSpec is the --attrs value used when none is given.
const DefaultSpec = "pid,name,cpu,mem,memb,read,write,user,time,state"

// Lookup returns the column for key.
func Lookup(key string) (Column, bool) {
	c, ok := columns[key]
	return c, ok
}

// Keys returns every column key in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(columns))
	for k := range columns {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Value extracts the attribute's raw value from rec.
func (a *Attr) Value(rec *process.Record) any {
	c, ok := columns[a.Key]
	if !ok {
		return nil
	}
	return c.Extract(rec)
}
