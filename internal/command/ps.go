// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/staranto/ptop/internal/attrs"
	"github.com/staranto/ptop/internal/config"
	"github.com/staranto/ptop/internal/filters"
	"github.com/staranto/ptop/internal/locale"
	"github.com/staranto/ptop/internal/log"
	"github.com/staranto/ptop/internal/meta"
	"github.com/staranto/ptop/internal/output"
	"github.com/staranto/ptop/internal/process"
)

// psCommandAction is the action handler for the "ps" subcommand. It lists
// the processes matching --filter once, from the live system or a snapshot
// file, and renders them with the common output framework.
func psCommandAction(ctx context.Context, cmd *cli.Command) error {
	meta := GetMeta(cmd)
	log.Debugf("Executing action for %v", meta.Args[1:])

	config.Config.Namespace = "ps"

	if DumpSchemaIfRequested(cmd, meta.Caps) {
		return nil
	}

	q, err := compileFilter(cmd, meta.Caps)
	if err != nil {
		return err
	}

	var records []process.Record
	if path := cmd.String("snapshot"); path != "" {
		records, err = LoadSnapshotFile(path)
	} else {
		records, err = sampledSnapshot(ctx, process.NewHarvester(), cmd.Duration("interval"))
	}
	if err != nil {
		return err
	}

	matched := filters.Apply(records, q, cmd.Bool("command"))
	log.Debugf("%d of %d processes matched %q", len(matched), len(records), q.Text())

	if cmd.Bool("dump") {
		return process.WriteSnapshot(stdout(cmd), matched)
	}

	attrList, err := BuildAttrs(cmd, attrs.DefaultSpec)
	if err != nil {
		return err
	}

	if cmd.Bool("titles") {
		lang := Language(cmd)
		header := locale.T(lang, locale.ProcessesTitle)
		if q.Text() != "" {
			header += fmt.Sprintf(" (%s)", q.Text())
		}
		cmd.Metadata["header"] = header
		cmd.Metadata["footer"] = locale.T(lang, locale.ShownOfTotal, len(matched), len(records))
	}

	return output.SliceDiceSpit(matched, attrList, cmd, WidthMode(cmd), stdout(cmd))
}

// psCommandBuilder constructs the "ps" subcommand.
func psCommandBuilder(meta meta.Meta) *cli.Command {
	cfgFile := config.ConfigFile()

	flags := append(NewGlobalFlags("ps", cfgFile), NewOutputFlags("ps", cfgFile)...)
	flags = append(flags,
		schemaFlag,
		&cli.BoolFlag{
			Name:  "dump",
			Usage: "write the matching processes as a JSON snapshot",
		},
		withConfig("ps", cfgFile, &cli.DurationFlag{
			Name:  "interval",
			Usage: "sampling interval used to compute CPU and I/O rates, 0 to skip",
			Value: 500 * time.Millisecond,
		}),
	)

	return &cli.Command{
		Name:      "ps",
		Usage:     "list processes matching a filter",
		UsageText: "ptop ps [--filter expr] [--snapshot file] [options]",
		Metadata:  map[string]any{"meta": meta},
		Flags:     flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: psCommandAction,
	}
}
