// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package query

import "runtime"

// Options apply uniformly to every string leaf of one compiled Query. They
// are captured at compile time.
type Options struct {
	UseRegex   bool `yaml:"regex" json:"regex"`
	IgnoreCase bool `yaml:"ignore_case" json:"ignore_case"`
	WholeWord  bool `yaml:"whole_word" json:"whole_word"`
}

// Capabilities lists the optional attribute families the running build can
// evaluate. A prefix whose capability is missing resolves as unknown.
type Capabilities struct {
	Nice bool
	GPU  bool
}

// DefaultCapabilities reports what this binary supports: nice values on
// Unix-like targets and GPU metrics when built with the gpu tag.
func DefaultCapabilities() Capabilities {
	return Capabilities{
		Nice: runtime.GOOS != "windows" && runtime.GOOS != "plan9",
		GPU:  gpuSupport,
	}
}
