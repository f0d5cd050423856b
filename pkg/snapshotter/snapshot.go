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
	"sync"
	"time"

	"github.com/NVIDIA/hoststatus/pkg/defaults"
	"github.com/NVIDIA/hoststatus/pkg/errors"
	"github.com/NVIDIA/hoststatus/pkg/serializer"
	"github.com/NVIDIA/hoststatus/pkg/status"
)

// HostSnapshotter collects the status of the local host and publishes it.
// Cycles never overlap: concurrent calls to Measure run one after the other.
type HostSnapshotter struct {
	// Host is the short host name written into every snapshot.
	Host string

	// Assembler builds the snapshot. If nil, an Assembler with the default factory is used.
	Assembler SnapshotAssembler

	// Serializer publishes the snapshot. If nil, a default stdout JSON serializer is used.
	Serializer serializer.Serializer

	// PublishTimeout bounds a single publish. Zero means defaults.PublishTimeout.
	PublishTimeout time.Duration

	// Now returns the cycle start time. If nil, time.Now is used.
	Now func() time.Time

	mu sync.Mutex
}

// Measure runs one cycle. See Snapshot.
func (h *HostSnapshotter) Measure(ctx context.Context) error {
	_, err := h.Snapshot(ctx)
	return err
}

// Snapshot captures a new cycle, assembles the snapshot and publishes it.
// Nothing is published unless assembly produced a complete, valid snapshot
// and the context is still live.
func (h *HostSnapshotter) Snapshot(ctx context.Context) (*status.Snapshot, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.Assembler == nil {
		h.Assembler = NewAssembler(nil)
	}
	if h.Serializer == nil {
		h.Serializer = serializer.NewStdoutWriter(serializer.FormatJSON)
	}
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}

	start := now()
	cycle := status.NewCycle(h.Host, start)
	defer func() {
		snapshotCycleDuration.Observe(now().Sub(start).Seconds())
	}()

	slog.Debug("starting snapshot cycle",
		slog.String("cycle", cycle.ID),
		slog.String("host", cycle.Host),
		slog.Int64("timestamp", cycle.Timestamp))

	snap, err := h.Assembler.Assemble(ctx, cycle)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		snapshotCycleTotal.WithLabelValues(stageAssemble).Inc()
		return nil, fmt.Errorf("failed to assemble snapshot: %w", err)
	}

	if err := h.publish(ctx, snap); err != nil {
		snapshotCycleTotal.WithLabelValues(stagePublish).Inc()
		return nil, err
	}

	snapshotCycleTotal.WithLabelValues(stageSuccess).Inc()
	snapshotLastSuccess.Set(float64(cycle.Timestamp))
	snapshotGPUCount.Set(float64(len(snap.GPUs)))

	slog.Info("snapshot published",
		slog.String("cycle", cycle.ID),
		slog.String("key", snap.Key()),
		slog.Duration("duration", now().Sub(start)))

	return snap, nil
}

func (h *HostSnapshotter) publish(ctx context.Context, snap *status.Snapshot) error {
	timeout := h.PublishTimeout
	if timeout <= 0 {
		timeout = defaults.PublishTimeout
	}
	pctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := h.Serializer.Serialize(pctx, snap); err != nil {
		slog.Error("failed to publish snapshot",
			slog.String("key", snap.Key()),
			slog.String("error", err.Error()))
		if errors.HasCode(err, errors.ErrCodePublish) {
			return err
		}
		return errors.WrapWithContext(errors.ErrCodePublish, "failed to publish snapshot", err,
			map[string]any{"key": snap.Key()})
	}
	return nil
}
