// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package snapshotter

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/hoststatus/pkg/collector"
	"github.com/NVIDIA/hoststatus/pkg/collector/cpu"
	"github.com/NVIDIA/hoststatus/pkg/collector/disk"
	"github.com/NVIDIA/hoststatus/pkg/collector/memory"
	"github.com/NVIDIA/hoststatus/pkg/errors"
	"github.com/NVIDIA/hoststatus/pkg/status"
)

// Assembler runs every collector of a cycle and shapes the results into one
// snapshot. It keeps no state between cycles.
type Assembler struct {
	// Factory creates the collectors. If nil, the default factory is used.
	Factory collector.Factory
}

// NewAssembler returns an Assembler using f.
func NewAssembler(f collector.Factory) *Assembler {
	return &Assembler{Factory: f}
}

// Assemble collects all sources for cycle concurrently and merges them.
// Any collector failure aborts the whole snapshot; there are no retries and no
// partially filled snapshots.
func (a *Assembler) Assemble(ctx context.Context, cycle status.Cycle) (*status.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if a.Factory == nil {
		a.Factory = collector.NewDefaultFactory()
	}
	f := a.Factory
	watch := f.WatchSet()

	var (
		gpus       []status.GPU
		disks      []disk.Record
		mems       []memory.Record
		numCPUs    int
		loadAvg    cpu.LoadAverage
		partitions []string

		mu      sync.Mutex
		perUser map[string]*status.PerUser
	)

	g, gctx := errgroup.WithContext(ctx)

	collect(gctx, g, cycle, "gpu", f.CreateGPUCollector(), &gpus)
	collect(gctx, g, cycle, "disk", f.CreateDiskCollector(), &disks)
	collect(gctx, g, cycle, "memory", f.CreateMemoryCollector(), &mems)
	collect(gctx, g, cycle, "cpu", f.CreateCPUCountCollector(), &numCPUs)
	collect(gctx, g, cycle, "load", f.CreateLoadCollector(), &loadAvg)
	collect(gctx, g, cycle, "partition", f.CreatePartitionCollector(), &partitions)

	if scanner := f.CreateUsageScanner(); scanner != nil {
		perUser = make(map[string]*status.PerUser, len(watch))
		for _, mp := range watch.MountPoints() {
			label := watch.Label(mp)
			g.Go(func() error {
				start := time.Now()
				defer func() {
					snapshotCollectorDuration.WithLabelValues("usage").Observe(time.Since(start).Seconds())
				}()
				pu, err := scanner.Scan(gctx, cycle.Host, label)
				if err != nil {
					slog.Error("failed to scan usage logs",
						slog.String("cycle", cycle.ID),
						slog.String("label", label),
						slog.String("error", err.Error()))
					return fmt.Errorf("failed to scan usage logs for %s: %w", mp, err)
				}
				mu.Lock()
				perUser[mp] = pu
				mu.Unlock()
				return nil
			})
		}
	}

	// Wait for all collectors to complete
	if err := g.Wait(); err != nil {
		return nil, err
	}

	mem, swap, err := SplitMemory(mems)
	if err != nil {
		return nil, err
	}

	snap := &status.Snapshot{
		Host:       cycle.Host,
		Timestamp:  cycle.Timestamp,
		GPUs:       nonNil(gpus),
		Disks:      ShapeDisks(disks, watch, perUser),
		Memory:     mem,
		Swap:       swap,
		Load:       cpu.Merge(numCPUs, loadAvg),
		Partitions: nonNil(partitions),
	}

	if err := snap.Validate(); err != nil {
		return nil, err
	}

	slog.Debug("snapshot assembled",
		slog.String("cycle", cycle.ID),
		slog.Int("gpus", len(snap.GPUs)),
		slog.Int("disks", len(snap.Disks)),
		slog.Int("partitions", len(snap.Partitions)))

	return snap, nil
}

// collect schedules c on g and stores its result in out.
func collect[T any](ctx context.Context, g *errgroup.Group, cycle status.Cycle, name string, c collector.Collector[T], out *T) {
	g.Go(func() error {
		start := time.Now()
		defer func() {
			snapshotCollectorDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
		}()

		v, err := c.Collect(ctx, cycle)
		if err != nil {
			slog.Error("collector failed",
				slog.String("cycle", cycle.ID),
				slog.String("collector", name),
				slog.String("error", err.Error()))
			return fmt.Errorf("failed to collect %s: %w", name, err)
		}
		*out = v
		return nil
	})
}

// SplitMemory picks the single "mem" and "swap" records out of records.
// Rows with other names are ignored.
func SplitMemory(records []memory.Record) (mem, swap status.Memory, err error) {
	found := make(map[string][]memory.Record, 2)
	for _, r := range records {
		switch r.Name {
		case memory.NameMemory, memory.NameSwap:
			found[r.Name] = append(found[r.Name], r)
		}
	}

	for _, name := range []string{memory.NameMemory, memory.NameSwap} {
		if n := len(found[name]); n != 1 {
			return status.Memory{}, status.Memory{}, errors.NewWithContext(errors.ErrCodeAssemblyInvariant,
				"expected exactly one memory record per name", map[string]any{
					"name":  name,
					"count": n,
				})
		}
	}

	return found[memory.NameMemory][0].Status(), found[memory.NameSwap][0].Status(), nil
}

// ShapeDisks keeps the watched records, one per mount point with the last
// one winning, sorts them by mount point and attaches per-user usage.
// perUser is nil when usage scanning is not configured.
func ShapeDisks(records []disk.Record, watch disk.WatchSet, perUser map[string]*status.PerUser) []status.Disk {
	byMount := make(map[string]disk.Record, len(records))
	for _, r := range records {
		if !watch.Contains(r.MountPoint) {
			continue
		}
		byMount[r.MountPoint] = r
	}

	out := make([]status.Disk, 0, len(byMount))
	for mp, r := range byMount {
		d := status.Disk{
			MountPoint:   mp,
			StorageUsed:  r.Used,
			StorageTotal: r.Size,
			StorageUnit:  status.UnitGiB,
		}
		if perUser != nil {
			d.PerUser = perUser[mp]
			if d.PerUser == nil {
				d.PerUser = &status.PerUser{StorageUsed: map[string]int64{}}
			}
		}
		out = append(out, d)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].MountPoint < out[j].MountPoint
	})
	return out
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
