// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/staranto/ptop/internal/attrs"
	"github.com/staranto/ptop/internal/process"
	"github.com/staranto/ptop/internal/textwidth"
)

func sampleRecords() []process.Record {
	return []process.Record{
		{PID: 300, Name: "zsh", CPUPercent: 0.5, MemBytes: 4 << 20, User: process.StringPtr("bob"), Elapsed: 90 * time.Second},
		{PID: 20, Name: "Xorg", CPUPercent: 12.25, MemBytes: 200 << 20, User: process.StringPtr("root"), Elapsed: 2 * time.Hour},
		{PID: 1000, Name: "alacritty", CPUPercent: 3, MemBytes: 64 << 20, Elapsed: 5 * time.Minute},
	}
}

func mustAttrs(t *testing.T, spec string) attrs.AttrList {
	t.Helper()
	var list attrs.AttrList
	require.NoError(t, list.Set(spec))
	return list
}

func newCmd(output, sort string, titles bool) *cli.Command {
	return &cli.Command{
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Value: output},
			&cli.StringFlag{Name: "sort", Value: sort},
			&cli.BoolFlag{Name: "color", Value: false},
			&cli.BoolFlag{Name: "titles", Value: titles},
			&cli.IntFlag{Name: "padding", Value: 2},
		},
	}
}

func TestSortDataset(t *testing.T) {
	testData := []map[string]interface{}{
		{"name": "zebra", "pid": int32(3), "memb": uint64(10), "time": time.Minute},
		{"name": "Alpha", "pid": int32(1), "memb": uint64(30), "time": time.Hour},
		{"name": "beta", "pid": int32(2), "memb": uint64(20), "time": time.Second},
		{"name": "beta", "pid": int32(10), "memb": uint64(20), "time": time.Second},
	}

	tests := []struct {
		name    string
		spec    string
		wantPID []int32
	}{
		{name: "ascending by name", spec: "name", wantPID: []int32{1, 2, 10, 3}},
		{name: "descending by name", spec: "-name", wantPID: []int32{3, 2, 10, 1}},
		{name: "case sensitive", spec: "!name", wantPID: []int32{1, 2, 10, 3}},
		{name: "numeric not lexical", spec: "pid", wantPID: []int32{1, 2, 3, 10}},
		{name: "descending bytes then pid", spec: "-memb,-pid", wantPID: []int32{1, 10, 2, 3}},
		{name: "durations", spec: "time", wantPID: []int32{2, 10, 3, 1}},
		{name: "empty spec keeps order", spec: "", wantPID: []int32{3, 1, 2, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]map[string]interface{}, len(testData))
			copy(data, testData)
			SortDataset(data, tt.spec)

			got := make([]int32, 0, len(data))
			for _, row := range data {
				got = append(got, row["pid"].(int32))
			}
			assert.Equal(t, tt.wantPID, got)
		})
	}
}

func TestSortDataset_FloatPrecision(t *testing.T) {
	data := []map[string]interface{}{
		{"cpu": 1.9},
		{"cpu": 1.2},
	}
	SortDataset(data, "cpu")
	assert.Equal(t, 1.2, data[0]["cpu"], "fractions must not be truncated")
}

func TestResolveSortSpec(t *testing.T) {
	list := mustAttrs(t, "pid,cpu:load,name")
	assert.Equal(t, "-load,!name,pid", ResolveSortSpec("-cpu, !name,pid", list))
	assert.Equal(t, "", ResolveSortSpec("", list))
	assert.Equal(t, "state", ResolveSortSpec("state", list), "unknown keys pass through")
}

func TestInterfaceToString(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		emptyVal string
		want     string
	}{
		{name: "string", value: "hello", want: "hello"},
		{name: "empty string custom", value: "", emptyVal: "-", want: "-"},
		{name: "int", value: 42, want: "42"},
		{name: "int32", value: int32(-7), want: "-7"},
		{name: "uint64", value: uint64(1 << 40), want: "1099511627776"},
		{name: "zero uint64", value: uint64(0), want: "0"},
		{name: "float64", value: 42.25, want: "42.2"},
		{name: "zero float", value: 0.0, want: "0.0"},
		{name: "duration", value: 3*time.Hour + 5*time.Minute, want: "3h05m"},
		{name: "bool", value: true, want: "true"},
		{name: "nil default", value: nil, want: ""},
		{name: "nil custom", value: nil, emptyVal: "-", want: "-"},
		{name: "slice", value: []string{"a", "b"}, want: `["a","b"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			if tt.emptyVal != "" {
				got = InterfaceToString(tt.value, tt.emptyVal)
			} else {
				got = InterfaceToString(tt.value)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRowsAndTransform(t *testing.T) {
	list := mustAttrs(t, "pid,name:Process:u,memb::b,!cpu")
	rows := Rows(sampleRecords(), list)

	require.Len(t, rows, 3)
	assert.Equal(t, int32(300), rows[0]["pid"])
	assert.Equal(t, "zsh", rows[0]["Process"])
	assert.Equal(t, uint64(4<<20), rows[0]["memb"])
	assert.Equal(t, 0.5, rows[0]["cpu"], "excluded attrs are still shaped for sorting")

	Transform(rows, list, textwidth.Normal)
	assert.Equal(t, "ZSH", rows[0]["Process"])
	assert.Equal(t, "4.0 MiB", rows[0]["memb"])
	assert.Equal(t, int32(300), rows[0]["pid"])
}

func TestSliceDiceSpit_JSON(t *testing.T) {
	var buf bytes.Buffer
	list := mustAttrs(t, "pid,name,time,!cpu")
	err := SliceDiceSpit(sampleRecords(), list, newCmd("json", "-cpu", false), textwidth.Normal, &buf)
	require.NoError(t, err)

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 3)

	assert.Equal(t, "Xorg", got[0]["name"])
	assert.Equal(t, 7200.0, got[0]["time"], "durations are emitted as seconds")
	assert.NotContains(t, got[0], "cpu")
}

func TestSliceDiceSpit_YAML(t *testing.T) {
	var buf bytes.Buffer
	list := mustAttrs(t, "pid,user")
	err := SliceDiceSpit(sampleRecords(), list, newCmd("yaml", "pid", false), textwidth.Normal, &buf)
	require.NoError(t, err)

	var got []map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, 20, got[0]["pid"])
	assert.Equal(t, "root", got[0]["user"])
	assert.Equal(t, process.UnknownUser, got[2]["user"])
}

func TestSliceDiceSpit_Text(t *testing.T) {
	var buf bytes.Buffer
	list := mustAttrs(t, "pid,name,cpu")

	cmd := newCmd("text", "name", true)
	cmd.Metadata = map[string]any{"footer": "3 of 3 processes"}

	err := SliceDiceSpit(sampleRecords(), list, cmd, textwidth.Normal, &buf)
	require.NoError(t, err)

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 4)

	assert.Contains(t, lines[0], "PID")
	assert.Contains(t, lines[0], "CPU%")
	assert.Contains(t, out, "alacritty")
	assert.Contains(t, out, "12.2")
	assert.Less(t, strings.Index(out, "alacritty"), strings.Index(out, "zsh"))
	assert.Contains(t, lines[len(lines)-1], "3 of 3 processes")
}

func TestTableWriter_Empty(t *testing.T) {
	var buf bytes.Buffer
	TableWriter(nil, mustAttrs(t, "pid"), newCmd("text", "", true), &buf)
	assert.Empty(t, buf.String())
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "CPU%", Title(attrs.Attr{Key: "cpu", OutputKey: "cpu"}))
	assert.Equal(t, "load", Title(attrs.Attr{Key: "cpu", OutputKey: "load"}))
	assert.Equal(t, "x", Title(attrs.Attr{Key: "x", OutputKey: "x"}))
}

func TestDumpSchema(t *testing.T) {
	var buf bytes.Buffer
	DumpSchema(&buf, false)
	out := buf.String()

	assert.Contains(t, out, "memb")
	assert.Contains(t, out, "cpu_percent")
	assert.Contains(t, out, "seconds")
	assert.NotContains(t, out, "gmem%")

	buf.Reset()
	DumpSchema(&buf, true)
	assert.Contains(t, buf.String(), "gmem%")
}

func TestDumpSchemaWalker(t *testing.T) {
	type sample struct {
		Name   string `json:"name"`
		Hidden string `json:"-"`
		Bare   int
		Opt    uint64 `json:"opt,omitempty"`
	}

	got := dumpSchemaWalker(reflect.TypeOf(sample{}))
	require.Len(t, got, 2)
	assert.Equal(t, "name", got[0].Name)
	assert.Equal(t, "opt", got[1].Name)
	assert.Equal(t, "uint64", got[1].Type)
}

func TestGetColors(t *testing.T) {
	header, even, odd := getColors("colors")
	assert.NotNil(t, header)
	assert.NotNil(t, even)
	assert.NotNil(t, odd)
}
