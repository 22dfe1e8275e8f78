// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package query

import (
	"fmt"
	"strings"
)

// PrefixType tags which attribute a leaf tests.
type PrefixType int

const (
	Empty PrefixType = iota
	Pid
	Name
	State
	User
	CPUPercentage
	MemBytes
	MemPercentage
	ReadPerSecond
	WritePerSecond
	TotalRead
	TotalWrite
	Nice
	Priority
	GPUPercentage
	GPUMemoryPercentage
	GPUMemoryBytes
	Time
)

var prefixNames = [...]string{
	Empty:               "empty",
	Pid:                 "pid",
	Name:                "name",
	State:               "state",
	User:                "user",
	CPUPercentage:       "cpu",
	MemBytes:            "memb",
	MemPercentage:       "mem",
	ReadPerSecond:       "read",
	WritePerSecond:      "write",
	TotalRead:           "tread",
	TotalWrite:          "twrite",
	Nice:                "nice",
	Priority:            "pri",
	GPUPercentage:       "gpu%",
	GPUMemoryPercentage: "gmem%",
	GPUMemoryBytes:      "gmem",
	Time:                "time",
}

func (p PrefixType) String() string {
	if int(p) < len(prefixNames) {
		return prefixNames[p]
	}
	return fmt.Sprintf("PrefixType(%d)", int(p))
}

// operandCategory is the kind of operand a prefix takes.
type operandCategory int

const (
	categoryString operandCategory = iota
	categoryNumber
	categoryBytes
	categoryPercent
	categoryDuration
)

// category reports how the operand of p is parsed.
func (p PrefixType) category() operandCategory {
	switch p {
	case Empty, Pid, Name, State, User:
		return categoryString
	case CPUPercentage, MemPercentage, GPUPercentage, GPUMemoryPercentage:
		return categoryPercent
	case MemBytes, ReadPerSecond, WritePerSecond, TotalRead, TotalWrite, GPUMemoryBytes:
		return categoryBytes
	case Nice, Priority:
		return categoryNumber
	case Time:
		return categoryDuration
	}
	panic(fmt.Sprintf("query: unhandled prefix %d", int(p)))
}

// keywords maps every accepted spelling to its prefix.
var keywords = map[string]PrefixType{
	"pid":      Pid,
	"name":     Name,
	"state":    State,
	"user":     User,
	"cpu":      CPUPercentage,
	"cpu%":     CPUPercentage,
	"mem":      MemPercentage,
	"mem%":     MemPercentage,
	"memb":     MemBytes,
	"read":     ReadPerSecond,
	"r/s":      ReadPerSecond,
	"rps":      ReadPerSecond,
	"write":    WritePerSecond,
	"w/s":      WritePerSecond,
	"wps":      WritePerSecond,
	"tread":    TotalRead,
	"t.read":   TotalRead,
	"twrite":   TotalWrite,
	"t.write":  TotalWrite,
	"time":     Time,
	"nice":     Nice,
	"pri":      Priority,
	"priority": Priority,
	"gpu%":     GPUPercentage,
	"gmem":     GPUMemoryBytes,
	"gmem%":    GPUMemoryPercentage,
}

// resolvePrefix maps keyword to a prefix available under caps.
func resolvePrefix(keyword string, caps Capabilities) (PrefixType, bool) {
	p, ok := keywords[strings.ToLower(keyword)]
	if !ok {
		return Empty, false
	}

	switch p {
	case Nice:
		return p, caps.Nice
	case GPUPercentage, GPUMemoryPercentage, GPUMemoryBytes:
		return p, caps.GPU
	}
	return p, true
}
