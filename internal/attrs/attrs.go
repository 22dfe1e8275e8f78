// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package attrs

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/staranto/ptop/internal/log"
	"github.com/staranto/ptop/internal/textwidth"
)

// Attr represents one column of the output, named by its process attribute
// key.
type Attr struct {
	// The process attribute key, see Keys.
	Key string `yaml:"key" json:"Key"`
	// Should this Attr be included in output or is it just
	// intended for sorting?
	Include bool `yaml:"include" json:"Include"`
	// The key to use in the output. This is also used as the column title when
	// output=text.
	OutputKey string `yaml:"outputKey" json:"OutputKey"`
	// Transformation spec to apply to the output value.
	TransformSpec string `yaml:"transformSpec" json:"TransformSpec"`
}

var lengthRe = regexp.MustCompile(`-?\d+`)

// Transform applies the attribute's transform spec to a value and returns the
// transformed result. The spec letters are:
//
//	b  humanized bytes for integer values (1.5 GiB)
//	d  compact duration for elapsed times (3h05m)
//	t  local start time for elapsed times
//	T  relative start time for elapsed times (3 hours ago)
//	l  lower case, u upper case; the last one wins
//	N  truncate to N columns, -N elide the middle
//
// Width is measured per mode.
func (a *Attr) Transform(value interface{}, mode textwidth.Mode) interface{} {
	spec := a.TransformSpec
	if spec == "" {
		return value
	}

	switch v := value.(type) {
	case uint64:
		if strings.Contains(spec, "b") {
			value = humanize.IBytes(v)
			log.Tracef("bytes: result=%v", value)
		}
	case time.Duration:
		switch {
		case strings.Contains(spec, "T"):
			value = humanize.Time(time.Now().Add(-v))
			log.Tracef("time ago: result=%v", value)
		case strings.Contains(spec, "t"):
			value = time.Now().Add(-v).Local().Format("2006-01-02T15:04:05MST")
			log.Tracef("time local: result=%v", value)
		case strings.Contains(spec, "d"):
			value = CompactDuration(v)
			log.Tracef("duration: result=%v", value)
		}
	}

	result, ok := value.(string)
	if !ok {
		log.Tracef("non-string value: value=%v", value)
		return value
	}

	// The last case letter wins so an attr's own spec overrides a global one
	// prepended to it. IOW... --attrs '*::u,name::l' will be lower case.
	lastL := strings.LastIndex(spec, "l")
	lastU := strings.LastIndex(spec, "u")
	if lastL > lastU {
		result = strings.ToLower(result)
		log.Tracef("case lower: result=%s", result)
	} else if lastU > lastL {
		result = strings.ToUpper(result)
		log.Tracef("case upper: result=%s", result)
	}

	// Same logic as above re: case. A more specific length overrides a
	// global one.
	if match := lengthRe.FindAllString(spec, -1); len(match) != 0 {
		l, _ := strconv.Atoi(match[len(match)-1])
		result = fit(result, l, mode)
	}

	return result
}

// fit shortens s to |l| columns. A negative l keeps both ends and elides the
// middle.
func fit(s string, l int, mode textwidth.Mode) string {
	abs := l
	if abs < 0 {
		abs = -abs
	}
	if textwidth.Width(s, mode) <= abs {
		return s
	}
	if l >= 0 {
		return textwidth.Truncate(s, l, mode)
	}

	runes := []rune(s)
	keep := abs/2 - 1
	if keep < 1 {
		return textwidth.Truncate(s, abs, mode)
	}
	return string(runes[:keep]) + ".." + string(runes[len(runes)-keep:])
}

// CompactDuration renders d the way ps renders elapsed time: "45s", "12m03s",
// "3h05m" or "2d04h".
func CompactDuration(d time.Duration) string {
	d = d.Truncate(time.Second)
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm%02ds", int(d/time.Minute), int(d%time.Minute/time.Second))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh%02dm", int(d/time.Hour), int(d%time.Hour/time.Minute))
	default:
		day := 24 * time.Hour
		return fmt.Sprintf("%dd%02dh", int(d/day), int(d%day/time.Hour))
	}
}

// AttrList is a collection of Attr used to shape output fields.
type AttrList []Attr

// Set parses each spec from --attrs and adds it to the AttrList. Each spec is
// key[:outputKey[:transform]]. A leading ! keeps the attr for sorting but
// drops it from the output; the key * carries a transform for every attr.
func (a *AttrList) Set(value string) error {
	if value == "" || value == "*" {
		log.Debugf("early return: value=%s", value)
		return nil
	}

	const (
		keyIdx = iota
		outputIdx
		transformIdx
	)

	specs := strings.Split(value, ",")
	log.Debugf("specs split: specs=%v", specs)
specloop:
	for _, spec := range specs {
		spec = strings.TrimSpace(spec)
		if spec == "" {
			continue
		}

		attr := Attr{Include: true}
		fields := strings.Split(spec, ":")

		attr.Key = strings.ToLower(strings.TrimSpace(fields[keyIdx]))
		if strings.HasPrefix(attr.Key, "!") {
			attr.Include = false
			attr.Key = attr.Key[1:]
		}

		if attr.Key == "*" {
			attr.Include = false
		} else if _, ok := columns[attr.Key]; !ok {
			return fmt.Errorf("unknown attribute %q (want one of %s)", attr.Key, strings.Join(Keys(), ", "))
		}
		log.Tracef("key parsed: key=%s, include=%v", attr.Key, attr.Include)

		attr.OutputKey = attr.Key
		if len(fields) > outputIdx && strings.TrimSpace(fields[outputIdx]) != "" {
			attr.OutputKey = strings.TrimSpace(fields[outputIdx])
		}

		if len(fields) > transformIdx {
			attr.TransformSpec = strings.TrimSpace(fields[transformIdx])
		}
		log.Tracef("transform set: spec=%s", attr.TransformSpec)

		// An attr already in the list (a default, or entered twice) takes the
		// new OutputKey, Include and TransformSpec.
		for i := range *a {
			if (*a)[i].Key == attr.Key || (*a)[i].OutputKey == attr.Key {
				(*a)[i].Include = attr.Include
				(*a)[i].OutputKey = attr.OutputKey
				(*a)[i].TransformSpec = attr.TransformSpec
				log.Tracef("existing updated: i=%d", i)
				continue specloop
			}
		}

		*a = append(*a, attr)
		log.Tracef("attr appended: len=%d", len(*a))
	}

	return nil
}

// SetGlobalTransformSpec inserts the * attr's transform spec at the front of
// every attr's spec.
func (a *AttrList) SetGlobalTransformSpec() error {
	spec := ""

	for i := range *a {
		if (*a)[i].Key == "*" {
			spec = (*a)[i].TransformSpec
			break
		}
	}
	log.Debugf("global spec: spec=%s", spec)

	if spec == "" {
		return nil
	}

	for i := range *a {
		if (*a)[i].Key == "*" {
			continue
		}
		(*a)[i].TransformSpec = spec + "," + (*a)[i].TransformSpec
	}

	return nil
}

// Included returns the attrs that appear in output, in order.
func (a AttrList) Included() AttrList {
	var out AttrList
	for _, attr := range a {
		if attr.Include && attr.Key != "*" {
			out = append(out, attr)
		}
	}
	return out
}

// Find returns the attr whose Key or OutputKey is name.
func (a AttrList) Find(name string) (Attr, bool) {
	for _, attr := range a {
		if attr.Key == name || attr.OutputKey == name {
			return attr, true
		}
	}
	return Attr{}, false
}

// String returns a string representation of the AttrList. This matches the
// format of the --attrs flag.
func (a *AttrList) String() string {
	result := make([]string, 0, len(*a))
	for _, attr := range *a {
		result = append(result, fmt.Sprintf("%s:%s:%s", attr.Key, attr.OutputKey, attr.TransformSpec))
	}
	return strings.Join(result, ",")
}

// Type returns the flag type for use with the flag.Value interface.
func (a *AttrList) Type() string { return "list" }
