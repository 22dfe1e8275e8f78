// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/ptop/internal/config"
	"github.com/staranto/ptop/internal/differ"
	"github.com/staranto/ptop/internal/filters"
	"github.com/staranto/ptop/internal/log"
	"github.com/staranto/ptop/internal/meta"
	"github.com/staranto/ptop/internal/process"
)

// diffCommandAction compares two snapshots, or one snapshot against the live
// system, after applying --filter to both.
func diffCommandAction(ctx context.Context, cmd *cli.Command) error {
	meta := GetMeta(cmd)
	log.Debugf("Executing action for %v", meta.Args[1:])

	config.Config.Namespace = "diff"

	args := cmd.Args().Slice()
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("diff needs one or two snapshot files, got %d", len(args))
	}

	q, err := compileFilter(cmd, meta.Caps)
	if err != nil {
		return err
	}

	before, err := LoadSnapshotFile(args[0])
	if err != nil {
		return err
	}

	var after []process.Record
	if len(args) == 2 {
		after, err = LoadSnapshotFile(args[1])
	} else {
		after, err = sampledSnapshot(ctx, process.NewHarvester(), cmd.Duration("interval"))
	}
	if err != nil {
		return err
	}

	byCommand := cmd.Bool("command")
	before = filters.Apply(before, q, byCommand)
	after = filters.Apply(after, q, byCommand)

	var ignore []string
	for _, f := range strings.Split(cmd.String("ignore"), ",") {
		if f = strings.TrimSpace(f); f != "" {
			ignore = append(ignore, f)
		}
	}

	changes, err := differ.Compare(before, after, ignore, cmd.Bool("color"))
	if err != nil {
		return err
	}

	return differ.Write(stdout(cmd), changes)
}

// diffCommandBuilder constructs the "diff" subcommand.
func diffCommandBuilder(meta meta.Meta) *cli.Command {
	cfgFile := config.ConfigFile()

	return &cli.Command{
		Name:      "diff",
		Usage:     "compare two process snapshots",
		UsageText: "ptop diff [options] before.json [after.json]",
		Metadata:  map[string]any{"meta": meta},
		Flags: append(NewFilterFlags("diff", cfgFile),
			NewLanguageFlag("diff", cfgFile),
			withConfig("diff", cfgFile, &cli.BoolFlag{
				Name:    "color",
				Aliases: []string{"c"},
				Usage:   "color the field diffs",
			}),
			withConfig("diff", cfgFile, &cli.StringFlag{
				Name:  "ignore",
				Usage: "comma-separated snapshot fields left out of the comparison",
				Value: strings.Join(differ.DefaultIgnore, ","),
			}),
			withConfig("diff", cfgFile, &cli.DurationFlag{
				Name:  "interval",
				Usage: "sampling interval when comparing against the live system",
				Value: 0,
			}),
		),
		Action: diffCommandAction,
	}
}
