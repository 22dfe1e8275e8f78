// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"

	"github.com/staranto/ptop/internal/config"
	"github.com/staranto/ptop/internal/locale"
	"github.com/staranto/ptop/internal/query"
)

// Meta contains runtime metadata shared by commands. It carries CLI
// arguments, loaded configuration, context, the resolved UI language and the
// attribute capabilities of this build.
type Meta struct {
	Args     []string
	Config   config.Type
	Context  context.Context
	Language locale.Language
	Caps     query.Capabilities
}
