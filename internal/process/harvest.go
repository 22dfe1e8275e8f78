// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"context"
	"fmt"
	"strings"
	"time"

	psutil "github.com/shirou/gopsutil/v4/process"

	"github.com/staranto/ptop/internal/log"
)

// sample is what a Harvester remembers about a process between ticks so it
// can turn cumulative counters into rates.
type sample struct {
	cpuSeconds float64
	readBytes  uint64
	writeBytes uint64
	at         time.Time
}

// Harvester collects process records from the running system. Each call to
// Snapshot returns a fresh slice; CPU usage and I/O rates are computed from
// the difference to the previous call, so the first snapshot reports zero
// rates. A Harvester is not safe for concurrent use.
type Harvester struct {
	previous map[int32]sample
	now      func() time.Time
}

// NewHarvester returns a Harvester with no history.
func NewHarvester() *Harvester {
	return &Harvester{
		previous: make(map[int32]sample),
		now:      time.Now,
	}
}

// Snapshot lists all processes. Processes that exit while being read are
// skipped.
func (h *Harvester) Snapshot(ctx context.Context) ([]Record, error) {
	procs, err := psutil.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}

	now := h.now()
	current := make(map[int32]sample, len(procs))
	records := make([]Record, 0, len(procs))

	for _, p := range procs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rec, s, err := readProcess(ctx, p, now)
		if err != nil {
			log.Tracef("skipping pid %d: %v", p.Pid, err)
			continue
		}

		h.applyRates(&rec, s)
		current[p.Pid] = s
		records = append(records, rec)
	}

	h.previous = current
	log.Debugf("harvested %d processes", len(records))
	return records, nil
}

// applyRates fills the per-second fields of rec from the delta between s and
// the previous sample for the same PID.
func (h *Harvester) applyRates(rec *Record, s sample) {
	prev, ok := h.previous[rec.PID]
	if !ok {
		return
	}

	elapsed := s.at.Sub(prev.at).Seconds()
	if elapsed <= 0 {
		return
	}

	if d := s.cpuSeconds - prev.cpuSeconds; d > 0 {
		rec.CPUPercent = d / elapsed * 100
	}
	if s.readBytes >= prev.readBytes {
		rec.ReadPerSec = uint64(float64(s.readBytes-prev.readBytes) / elapsed)
	}
	if s.writeBytes >= prev.writeBytes {
		rec.WritePerSec = uint64(float64(s.writeBytes-prev.writeBytes) / elapsed)
	}
}

// readProcess reads one process. Only the name is mandatory; the other
// fields stay at their zero value when the OS denies access to them.
func readProcess(ctx context.Context, p *psutil.Process, now time.Time) (Record, sample, error) {
	rec := Record{PID: p.Pid}
	s := sample{at: now}

	name, err := p.NameWithContext(ctx)
	if err != nil {
		return rec, s, err
	}
	rec.Name = name

	if cmd, err := p.CmdlineWithContext(ctx); err == nil && cmd != "" {
		rec.Command = cmd
	} else {
		rec.Command = name
	}

	if mem, err := p.MemoryInfoWithContext(ctx); err == nil && mem != nil {
		rec.MemBytes = mem.RSS
	}
	if pct, err := p.MemoryPercentWithContext(ctx); err == nil {
		rec.MemPercent = float64(pct)
	}

	if times, err := p.TimesWithContext(ctx); err == nil && times != nil {
		s.cpuSeconds = times.User + times.System
	}

	if io, err := p.IOCountersWithContext(ctx); err == nil && io != nil {
		rec.TotalRead = io.ReadBytes
		rec.TotalWrite = io.WriteBytes
		s.readBytes = io.ReadBytes
		s.writeBytes = io.WriteBytes
	}

	if status, err := p.StatusWithContext(ctx); err == nil && len(status) > 0 {
		rec.State = strings.Join(status, ",")
	}

	if user, err := p.UsernameWithContext(ctx); err == nil && user != "" {
		rec.User = StringPtr(user)
	}

	if created, err := p.CreateTimeWithContext(ctx); err == nil && created > 0 {
		rec.Elapsed = now.Sub(time.UnixMilli(created)).Truncate(time.Second)
	}

	if nice, err := p.NiceWithContext(ctx); err == nil {
		rec.Nice = nice
		rec.Priority = priorityFromNice(nice)
	} else {
		log.Tracef("nice pid %d: %v", p.Pid, err)
	}

	return rec, s, nil
}

// priorityFromNice maps a nice value onto the PRI scale ps shows on Linux,
// where the default nice of 0 is priority 20.
func priorityFromNice(nice int32) int32 {
	return 20 + nice
}
