// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/ptop/internal/config"
	"github.com/staranto/ptop/internal/locale"
	"github.com/staranto/ptop/internal/log"
	"github.com/staranto/ptop/internal/meta"
	"github.com/staranto/ptop/internal/query"
)

// InitApp builds the root command. The argument following the binary names
// the subcommand and is also the namespace preferred when reading config
// values.
func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	// arg[1] could be -h/--help, so ignore it if it appears to be a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	// A missing config file is normal; every setting has a default.
	if _, err := config.Load(); err != nil {
		log.Debugf("config not loaded: %v", err)
	}
	config.Config.Namespace = ns
	cfg := config.Config

	lang, _ := config.GetString("language", "")
	meta := meta.Meta{
		Args:     args,
		Config:   cfg,
		Context:  ctx,
		Language: locale.Resolve(lang, os.Getenv("LC_ALL"), os.Getenv("LC_MESSAGES"), os.Getenv("LANG")),
		Caps:     query.DefaultCapabilities(),
	}

	app := &cli.Command{
		Name:  "ptop",
		Usage: "process filter and monitor",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "ptop version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		checkCommandBuilder(meta),
		diffCommandBuilder(meta),
		psCommandBuilder(meta),
		topCommandBuilder(meta),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
