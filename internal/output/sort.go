// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"sort"
	"strings"
	"time"

	"github.com/staranto/ptop/internal/attrs"
)

// toFloat64 reports the numeric value of v for the number types a row holds.
func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case time.Duration:
		return float64(n), true
	}
	return 0, false
}

// ResolveSortSpec rewrites the attribute keys in a --sort spec to the
// OutputKeys the rows are keyed by, keeping the - and ! markers.
func ResolveSortSpec(spec string, list attrs.AttrList) string {
	if spec == "" {
		return ""
	}

	fields := strings.Split(spec, ",")
	for i, field := range fields {
		field = strings.TrimSpace(field)
		marks := ""
		for strings.HasPrefix(field, "-") || strings.HasPrefix(field, "!") {
			marks += field[:1]
			field = field[1:]
		}
		if attr, ok := list.Find(field); ok {
			field = attr.OutputKey
		}
		fields[i] = marks + field
	}
	return strings.Join(fields, ",")
}

// SortDataset stable-sorts the result set by a comma separated list of keys.
// A leading - sorts that key descending and ! makes a string comparison case
// sensitive. Numbers compare as numbers; everything else as strings.
func SortDataset(resultSet []map[string]interface{}, spec string) {
	if spec == "" {
		return
	}
	fields := strings.Split(spec, ",")

	sort.SliceStable(resultSet, func(one, two int) bool {
		for _, field := range fields {
			field = strings.TrimSpace(field)

			ascending := true
			if strings.HasPrefix(field, "-") {
				field = strings.TrimPrefix(field, "-")
				ascending = false
			}

			caseSensitive := false
			if strings.HasPrefix(field, "!") {
				field = strings.TrimPrefix(field, "!")
				caseSensitive = true
			}

			oneValue := resultSet[one][field]
			twoValue := resultSet[two][field]

			oneNum, oneOk := toFloat64(oneValue)
			twoNum, twoOk := toFloat64(twoValue)

			if oneOk && twoOk {
				if oneNum != twoNum {
					if ascending {
						return oneNum < twoNum
					}
					return oneNum > twoNum
				}
				continue
			}

			// Fall back to string comparison which can also handle bools.
			oneStr := InterfaceToString(oneValue)
			twoStr := InterfaceToString(twoValue)
			if !caseSensitive {
				oneStr = strings.ToLower(oneStr)
				twoStr = strings.ToLower(twoStr)
			}

			if oneStr != twoStr {
				if ascending {
					return oneStr < twoStr
				}
				return oneStr > twoStr
			}
		}
		return false
	})
}
