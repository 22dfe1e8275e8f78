// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/staranto/ptop/internal/attrs"
	"github.com/staranto/ptop/internal/config"
	"github.com/staranto/ptop/internal/log"
	"github.com/staranto/ptop/internal/meta"
	"github.com/staranto/ptop/internal/process"
	"github.com/staranto/ptop/internal/tui"
)

// errNotATerminal is returned when top is started without a terminal.
var errNotATerminal = errors.New("top needs an interactive terminal; use ps for scripted output")

// topCommandAction is the action handler for the "top" subcommand.
func topCommandAction(ctx context.Context, cmd *cli.Command) error {
	meta := GetMeta(cmd)
	log.Debugf("Executing action for %v", meta.Args[1:])

	config.Config.Namespace = "top"

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNotATerminal
	}

	attrList, err := BuildAttrs(cmd, attrs.DefaultSpec)
	if err != nil {
		return err
	}

	var src tui.Source = process.NewHarvester()
	if path := cmd.String("snapshot"); path != "" {
		recs, err := LoadSnapshotFile(path)
		if err != nil {
			return err
		}
		src = staticSource(recs)
	}

	return tui.Run(ctx, tui.Settings{
		Source:    src,
		Refresh:   cmd.Duration("refresh"),
		Debounce:  cmd.Duration("debounce"),
		Filter:    cmd.String("filter"),
		Options:   QueryOptions(cmd),
		ByCommand: cmd.Bool("command"),
		Caps:      meta.Caps,
		Language:  Language(cmd),
		WidthMode: WidthMode(cmd),
		Keys:      config.GetKeyBindings(),
		Attrs:     attrList,
		Sort:      cmd.String("sort"),
	})
}

// topCommandBuilder constructs the "top" subcommand.
func topCommandBuilder(meta meta.Meta) *cli.Command {
	cfgFile := config.ConfigFile()

	return &cli.Command{
		Name:      "top",
		Usage:     "interactive process monitor",
		UsageText: "ptop top [--filter expr] [--refresh 1s] [options]",
		Metadata:  map[string]any{"meta": meta},
		Flags: append(NewGlobalFlags("top", cfgFile),
			withConfig("top", cfgFile, &cli.DurationFlag{
				Name:  "refresh",
				Usage: "time between process table refreshes",
				Value: time.Second,
			}),
			withConfig("top", cfgFile, &cli.DurationFlag{
				Name:  "debounce",
				Usage: "pause in typing before the filter is recompiled",
				Value: 150 * time.Millisecond,
			}),
		),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: topCommandAction,
	}
}
