// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package locale

import (
	"errors"
	"fmt"

	"github.com/staranto/ptop/internal/query"
)

var kindKeys = map[query.ErrorKind]string{
	query.LexError:             LexError,
	query.UnknownPrefix:        UnknownPrefix,
	query.UnsupportedAttribute: UnsupportedAttribute,
	query.InvalidRegex:         InvalidRegex,
	query.InvalidNumberOrUnit:  InvalidNumberOrUnit,
}

// Describe renders err for display in language l. Query errors are shown as
// their localized kind plus the offending text; English keeps the detailed
// message. Other errors are returned as is.
func Describe(l Language, err error) string {
	if err == nil {
		return ""
	}

	var qe *query.Error
	if !errors.As(err, &qe) {
		return err.Error()
	}

	if l == English {
		return qe.Error()
	}

	label := T(l, kindKeys[qe.Kind])
	if qe.Text == "" {
		return label
	}
	return fmt.Sprintf("%s: %q", label, qe.Text)
}
