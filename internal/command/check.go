// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/ptop/internal/config"
	"github.com/staranto/ptop/internal/log"
	"github.com/staranto/ptop/internal/meta"
	"github.com/staranto/ptop/internal/query"
)

// checkCommandAction compiles the expression given as arguments, or --filter,
// and prints its canonical tree.
func checkCommandAction(ctx context.Context, cmd *cli.Command) error {
	meta := GetMeta(cmd)
	log.Debugf("Executing action for %v", meta.Args[1:])

	config.Config.Namespace = "check"

	expr := strings.Join(cmd.Args().Slice(), " ")
	if expr == "" {
		expr = cmd.String("filter")
	}

	return check(stdout(cmd), expr, QueryOptions(cmd), meta.Caps, cmd)
}

func check(w io.Writer, expr string, opts query.Options, caps query.Capabilities, cmd *cli.Command) error {
	q, err := query.CompileWith(expr, opts, caps)
	if err != nil {
		return localize(Language(cmd), err)
	}

	_, err = fmt.Fprintln(w, q.String())
	return err
}

// checkCommandBuilder constructs the "check" subcommand.
func checkCommandBuilder(meta meta.Meta) *cli.Command {
	cfgFile := config.ConfigFile()

	return &cli.Command{
		Name:      "check",
		Usage:     "validate a filter expression and show how it parses",
		UsageText: "ptop check [options] expr...",
		Metadata:  map[string]any{"meta": meta},
		Flags:     append(NewFilterFlags("check", cfgFile), NewLanguageFlag("check", cfgFile)),
		Action:    checkCommandAction,
	}
}
