// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package query

import (
	"fmt"

	"github.com/staranto/ptop/internal/process"
)

// Matches reports whether rec satisfies q. With searchByCommand, bare name
// searches look at the full command line instead of the process name. A nil
// Query matches everything.
func (q *Query) Matches(rec *process.Record, searchByCommand bool) bool {
	if q == nil || q.root == nil {
		return true
	}
	return evaluate(q.root, rec, searchByCommand)
}

func evaluate(e expr, rec *process.Record, byCommand bool) bool {
	switch e := e.(type) {
	case andExpr:
		return evaluate(e.left, rec, byCommand) && evaluate(e.right, rec, byCommand)
	case orExpr:
		return evaluate(e.left, rec, byCommand) || evaluate(e.right, rec, byCommand)
	case notExpr:
		return !evaluate(e.operand, rec, byCommand)
	case groupExpr:
		return evaluate(e.inner, rec, byCommand)
	case *attribute:
		return e.check(rec, byCommand)
	}
	panic(fmt.Sprintf("query: unhandled node %T", e))
}

// check reads the one field of rec that a's kind tests.
func (a *attribute) check(rec *process.Record, byCommand bool) bool {
	switch a.kind {
	case Empty:
		return true
	case Pid:
		return a.str.Match(rec.PIDString())
	case Name:
		if byCommand {
			return a.str.Match(rec.Command)
		}
		return a.str.Match(rec.Name)
	case State:
		return a.str.Match(rec.State)
	case User:
		return a.str.Match(rec.UserName())
	case CPUPercentage:
		return a.num.Check(rec.CPUPercent)
	case MemBytes:
		return a.num.Check(float64(rec.MemBytes))
	case MemPercentage:
		return a.num.Check(rec.MemPercent)
	case ReadPerSecond:
		return a.num.Check(float64(rec.ReadPerSec))
	case WritePerSecond:
		return a.num.Check(float64(rec.WritePerSec))
	case TotalRead:
		return a.num.Check(float64(rec.TotalRead))
	case TotalWrite:
		return a.num.Check(float64(rec.TotalWrite))
	case Nice:
		return a.num.Check(float64(rec.Nice))
	case Priority:
		return a.num.Check(float64(rec.Priority))
	case GPUPercentage:
		return a.num.Check(rec.GPUPercent)
	case GPUMemoryPercentage:
		return a.num.Check(rec.GPUMemPercent)
	case GPUMemoryBytes:
		return a.num.Check(float64(rec.GPUMemBytes))
	case Time:
		return a.tm.Check(rec.Elapsed)
	}
	panic(fmt.Sprintf("query: unhandled prefix %s", a.kind))
}
