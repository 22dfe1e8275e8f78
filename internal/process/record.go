// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"strconv"
	"time"
)

// Record is a single process row as seen on one refresh tick. Records are
// produced by a Harvester or a snapshot and are only ever read by the filter.
type Record struct {
	PID         int32         `json:"pid" yaml:"pid"`
	Name        string        `json:"name" yaml:"name"`
	Command     string        `json:"command" yaml:"command"`
	CPUPercent  float64       `json:"cpu_percent" yaml:"cpu_percent"`
	MemBytes    uint64        `json:"mem_bytes" yaml:"mem_bytes"`
	MemPercent  float64       `json:"mem_percent" yaml:"mem_percent"`
	ReadPerSec  uint64        `json:"read_per_sec" yaml:"read_per_sec"`
	WritePerSec uint64        `json:"write_per_sec" yaml:"write_per_sec"`
	TotalRead   uint64        `json:"total_read" yaml:"total_read"`
	TotalWrite  uint64        `json:"total_write" yaml:"total_write"`
	State       string        `json:"state" yaml:"state"`
	User        *string       `json:"user,omitempty" yaml:"user,omitempty"`
	Elapsed     time.Duration `json:"elapsed" yaml:"elapsed"`
	Nice        int32         `json:"nice" yaml:"nice"`
	Priority    int32         `json:"priority" yaml:"priority"`

	GPUPercent    float64 `json:"gpu_percent,omitempty" yaml:"gpu_percent,omitempty"`
	GPUMemPercent float64 `json:"gpu_mem_percent,omitempty" yaml:"gpu_mem_percent,omitempty"`
	GPUMemBytes   uint64  `json:"gpu_mem_bytes,omitempty" yaml:"gpu_mem_bytes,omitempty"`
}

// UnknownUser is what an absent owner renders and matches as.
const UnknownUser = "N/A"

// PIDString returns the PID in decimal.
func (r *Record) PIDString() string {
	return strconv.FormatInt(int64(r.PID), 10)
}

// UserName returns the owning user or UnknownUser when it is not known.
func (r *Record) UserName() string {
	if r.User == nil {
		return UnknownUser
	}
	return *r.User
}

// StringPtr is a small helper for building records with a known user.
func StringPtr(s string) *string {
	return &s
}
