// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/staranto/ptop/internal/attrs"
	"github.com/staranto/ptop/internal/process"
)

// schemaTag describes one record field as listed by --schema.
type schemaTag struct {
	Field string
	Name  string
	Type  string
}

// DumpSchema writes the attributes available to --attrs and --sort, followed
// by the record fields a --snapshot file may carry. If w is nil, os.Stdout
// is used.
func DumpSchema(w io.Writer, gpu bool) {
	if w == nil {
		w = os.Stdout
	}

	fmt.Fprintln(w, "Attributes available to the --attrs and --sort flags:")
	fmt.Fprintln(w, "")
	for _, key := range attrs.Keys() {
		c, _ := attrs.Lookup(key)
		if c.GPU && !gpu {
			continue
		}
		kind := "text"
		if c.Numeric {
			kind = "number"
		}
		fmt.Fprintf(w, "  %-8s %-8s %s\n", key, c.Title, kind)
	}

	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Snapshot record fields:")
	fmt.Fprintln(w, "")
	for _, tag := range dumpSchemaWalker(reflect.TypeOf(process.Record{})) {
		fmt.Fprintf(w, "  %-16s %s\n", tag.Name, tag.Type)
	}
}

var durationType = reflect.TypeOf(time.Duration(0))

// dumpSchemaWalker lists the json tags of a struct type's fields in
// declaration order.
func dumpSchemaWalker(typ reflect.Type) []schemaTag {
	tags := make([]schemaTag, 0, typ.NumField())

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		tagValue, ok := field.Tag.Lookup("json")
		if !ok || tagValue == "-" {
			continue
		}

		name, _, _ := strings.Cut(tagValue, ",")
		if name == "" {
			name = field.Name
		}
		typeName := field.Type.String()
		if field.Type == durationType {
			typeName = "seconds"
		}
		tags = append(tags, schemaTag{Field: field.Name, Name: name, Type: typeName})
	}

	return tags
}
