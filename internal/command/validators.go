// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/staranto/ptop/internal/attrs"
	"github.com/staranto/ptop/internal/locale"
	"github.com/staranto/ptop/internal/textwidth"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// GlobalFlagsValidator checks flag combinations that no single validator can
// see.
func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	if c.IsSet("attrs") {
		var al attrs.AttrList
		if err := al.Set(c.String("attrs")); err != nil {
			return fmt.Errorf("--attrs: %w", err)
		}
	}
	return nil
}

func OutputValidator(value any) error {
	var validOutputFlagValues = []string{"text", "json", "yaml"}
	s, _ := value.(string)
	if !slices.Contains(validOutputFlagValues, s) {
		return fmt.Errorf("must be one of %v", validOutputFlagValues)
	}
	return nil
}

func WidthModeValidator(value any) error {
	s, _ := value.(string)
	if _, err := textwidth.ParseMode(s); err != nil {
		return err
	}
	return nil
}

// LanguageValidator accepts anything locale.Parse does. Empty means the
// environment decides.
func LanguageValidator(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := locale.Parse(s); err != nil {
		return err
	}
	return nil
}
