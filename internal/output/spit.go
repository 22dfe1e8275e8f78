// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/staranto/ptop/internal/attrs"
	"github.com/staranto/ptop/internal/config"
	"github.com/staranto/ptop/internal/process"
	"github.com/staranto/ptop/internal/textwidth"
)

// InterfaceToString converts the value types found in process rows to a
// string. A custom empty value may be provided for nil and empty strings.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	switch value := value.(type) {
	case nil:
		return emptyValue[0]
	case string:
		if value == "" {
			return emptyValue[0]
		}
		return value
	case int:
		return strconv.Itoa(value)
	case int32:
		return strconv.FormatInt(int64(value), 10)
	case uint64:
		return strconv.FormatUint(value, 10)
	case float64:
		return strconv.FormatFloat(value, 'f', 1, 64)
	case time.Duration:
		return attrs.CompactDuration(value)
	case bool:
		return strconv.FormatBool(value)
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}

// Rows shapes records into one map per record keyed by each attr's
// OutputKey. Values are raw, so sorting sees numbers; apply Transform
// afterwards.
func Rows(records []process.Record, list attrs.AttrList) []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, len(records))
	for i := range records {
		row := make(map[string]interface{}, len(list))
		for j := range list {
			if list[j].Key == "*" {
				continue
			}
			row[list[j].OutputKey] = list[j].Value(&records[i])
		}
		rows = append(rows, row)
	}
	return rows
}

// Transform applies each attr's transform spec to every row in place.
func Transform(rows []map[string]interface{}, list attrs.AttrList, mode textwidth.Mode) {
	for _, row := range rows {
		for j := range list {
			if list[j].TransformSpec != "" {
				row[list[j].OutputKey] = list[j].Transform(row[list[j].OutputKey], mode)
			}
		}
	}
}

// portable swaps durations for seconds so json and yaml output stay readable
// by other tools.
func portable(rows []map[string]interface{}, list attrs.AttrList) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		p := make(map[string]interface{}, len(row))
		for j := range list {
			if !list[j].Include || list[j].Key == "*" {
				continue
			}
			v := row[list[j].OutputKey]
			if d, ok := v.(time.Duration); ok {
				v = d.Seconds()
			}
			p[list[j].OutputKey] = v
		}
		out = append(out, p)
	}
	return out
}

// SliceDiceSpit shapes, sorts, transforms and renders records according to
// the command's --sort, --output, --color, --titles and --padding flags. The
// records are expected to be filtered already. Output goes to w, or stdout
// when w is nil.
func SliceDiceSpit(records []process.Record,
	list attrs.AttrList,
	cmd *cli.Command,
	mode textwidth.Mode,
	w io.Writer) error {

	if w == nil {
		w = os.Stdout
	}

	list = append(attrs.AttrList(nil), list...)
	if err := list.SetGlobalTransformSpec(); err != nil {
		return err
	}

	rows := Rows(records, list)
	SortDataset(rows, ResolveSortSpec(cmd.String("sort"), list))
	Transform(rows, list, mode)

	switch output := cmd.String("output"); output {
	case "json":
		// TODO Maintain attr order in the JSON document.
		jsonOutput, err := json.Marshal(portable(rows, list))
		if err != nil {
			return fmt.Errorf("json marshal: %w", err)
		}
		_, err = fmt.Fprintln(w, string(jsonOutput))
		return err
	case "yaml":
		yamlOutput, err := yaml.Marshal(portable(rows, list))
		if err != nil {
			return fmt.Errorf("yaml marshal: %w", err)
		}
		_, err = w.Write(yamlOutput)
		return err
	default:
		TableWriter(rows, list, cmd, w)
	}

	return nil
}

// TableWriter renders the result set in a tabular form honoring color,
// titles and padding options. Numeric columns are right aligned. Output is
// written to w. If w is nil, os.Stdout is used.
func TableWriter(
	resultSet []map[string]interface{},
	list attrs.AttrList,
	cmd *cli.Command,
	w io.Writer) {

	if w == nil {
		w = os.Stdout
	}

	if len(resultSet) == 0 {
		log.Debugf("no rows to render")
		return
	}

	included := list.Included()

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if cmd.Bool("color") {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(headerColor)
		evenRowStyle = evenRowStyle.Foreground(evenColor)
		oddRowStyle = oddRowStyle.Foreground(oddColor)
	}

	var rows [][]string
	for _, result := range resultSet {
		row := make([]string, 0, len(included))
		for _, attr := range included {
			row = append(row, InterfaceToString(result[attr.OutputKey], "-"))
		}
		rows = append(rows, row)
	}

	if header, ok := cmd.Metadata["header"].(string); ok {
		fmt.Fprintln(w, headerStyle.Render(header))
	}

	pad := cmd.Int("padding")
	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col < len(included) {
				if c, ok := attrs.Lookup(included[col].Key); ok && c.Numeric {
					style = style.Align(lipgloss.Right)
				}
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(rows...)

	if cmd.Bool("titles") {
		headers := make([]string, 0, len(included))
		for _, attr := range included {
			headers = append(headers, Title(attr))
		}

		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(headers...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)

	if footer, ok := cmd.Metadata["footer"].(string); ok {
		fmt.Fprintln(w, headerStyle.Render(footer))
	}
}

// Title is the column heading for attr: the OutputKey when the user renamed
// it, else the column's display title.
func Title(attr attrs.Attr) string {
	if attr.OutputKey != attr.Key {
		return attr.OutputKey
	}
	if c, ok := attrs.Lookup(attr.Key); ok {
		return c.Title
	}
	return attr.OutputKey
}

// getColors returns configured color values for table rendering. Each color is
// selected based on terminal background color and brightness so that we can
// make sure output is reasonably visible for all(?) terminal themes.
func getColors(key string) (header, even, odd color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	// Use the explicit color if found in the config and leave it up to the user
	// to choose appropriate colors for their theme. If not found, pick a
	// reasonable default based on terminal background.
	resolveColor := func(key string, light string, dark string) color.Color {
		colorCfg, err := config.GetString(key)
		if err == nil {
			return lipgloss.Color(colorCfg)
		}

		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolveColor(key+".title", "#b08800", "#f6be00")
	even = resolveColor(key+".even", "#333333", "#ffffff")
	odd = resolveColor(key+".odd", "#0088a0", "#00c8f0")

	return
}
