// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"strings"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/ptop/internal/attrs"
)

var schemaFlag *cli.BoolFlag = &cli.BoolFlag{
	Name:        "schema",
	Usage:       "dump the column and field schema",
	HideDefault: true,
}

// NewFilterFlags returns the flags that shape the filter expression. Each
// draws its default from the config file, first under the command namespace,
// then under query, then at the top level.
func NewFilterFlags(ns string, cfgFile string) []cli.Flag {
	return []cli.Flag{
		withConfig(ns, cfgFile, &cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "filter expression, e.g. 'cpu>10 and user:root'",
			Sources: cli.NewValueSourceChain(cli.EnvVar("PTOP_FILTER")),
		}),
		withConfig(ns, cfgFile, &cli.BoolFlag{
			Name:    "regex",
			Aliases: []string{"r"},
			Usage:   "treat string operands as regular expressions",
		}),
		withConfig(ns, cfgFile, &cli.BoolFlag{
			Name:    "ignore-case",
			Aliases: []string{"i"},
			Usage:   "match string operands without regard to case",
		}),
		withConfig(ns, cfgFile, &cli.BoolFlag{
			Name:    "whole-word",
			Aliases: []string{"W"},
			Usage:   "require string operands to match the whole value",
		}),
		withConfig(ns, cfgFile, &cli.BoolFlag{
			Name:  "command",
			Usage: "match bare names against the full command line",
		}),
	}
}

// NewGlobalFlags returns the flags shared by every command that renders
// processes.
func NewGlobalFlags(ns string, cfgFile string) (flags []cli.Flag) {
	flags = []cli.Flag{
		withConfig(ns, cfgFile, &cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of columns to show, e.g. " + attrs.DefaultSpec,
		}),
		NewLanguageFlag(ns, cfgFile),
		&cli.StringFlag{
			Name:  "snapshot",
			Usage: "read processes from a JSON snapshot file instead of the live system",
		},
		withConfig(ns, cfgFile, &cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of columns to sort by, - for descending",
		}),
		withConfig(ns, cfgFile, &cli.StringFlag{
			Name:  "width-mode",
			Usage: "display width rules (normal, cjk, unicode-approx)",
			Value: "normal",
			Validator: func(value string) error {
				return FlagValidators(value, WidthModeValidator)
			},
		}),
	}

	return append(flags, NewFilterFlags(ns, cfgFile)...)
}

// NewLanguageFlag constructs the --language flag. Without it the language
// comes from the config file, then $LC_ALL and $LANG.
func NewLanguageFlag(ns string, cfgFile string) *cli.StringFlag {
	return withConfig(ns, cfgFile, &cli.StringFlag{
		Name:  "language",
		Usage: "UI language (en, ja)",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("PTOP_LANG"),
		),
		Validator: func(value string) error {
			return FlagValidators(value, LanguageValidator)
		},
	})
}

// NewOutputFlags returns the flags controlling one-shot output.
func NewOutputFlags(ns string, cfgFile string) []cli.Flag {
	return []cli.Flag{
		withConfig(ns, cfgFile, &cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
		}),
		withConfig(ns, cfgFile, &cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format (text, json, yaml)",
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		}),
		withConfig(ns, cfgFile, &cli.IntFlag{
			Name:  "padding",
			Usage: "spaces around each text column",
			Value: 1,
		}),
		withConfig(ns, cfgFile, &cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
		}),
	}
}

// configKeys lists the config file keys consulted for a flag, most specific
// first. Filter options also live under the query section with underscores.
func configKeys(ns string, name string) []string {
	keys := []string{}
	if ns != "" {
		keys = append(keys, ns+"."+name)
	}
	switch name {
	case "regex", "ignore-case", "whole-word", "command":
		keys = append(keys, "query."+strings.ReplaceAll(name, "-", "_"))
	case "width-mode":
		keys = append(keys, "width_mode")
	}
	return append(keys, name)
}

// configurable is any cli flag whose value chain can be extended.
type configurable interface {
	*cli.StringFlag | *cli.BoolFlag | *cli.IntFlag | *cli.DurationFlag
}

// withConfig appends the config file sources for flag to its Sources chain.
func withConfig[F configurable](ns string, path string, flag F) F {
	var (
		name  string
		chain *cli.ValueSourceChain
	)
	switch f := any(flag).(type) {
	case *cli.StringFlag:
		name, chain = f.Name, &f.Sources
	case *cli.BoolFlag:
		name, chain = f.Name, &f.Sources
	case *cli.IntFlag:
		name, chain = f.Name, &f.Sources
	case *cli.DurationFlag:
		name, chain = f.Name, &f.Sources
	}

	if path == "" {
		return flag
	}
	for _, key := range configKeys(ns, name) {
		chain.Chain = append(chain.Chain, yaml.YAML(key, altsrc.StringSourcer(path)))
	}

	return flag
}
