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

// Package snapshotter runs one host status cycle: it collects every source,
// assembles a single snapshot and publishes it.
//
// # Core Types
//
// Snapshotter: Interface for one cycle
//
//	type Snapshotter interface {
//	    Measure(ctx context.Context) error
//	}
//
// Assembler: Runs the collectors of a cycle concurrently and shapes the results
//
//	assembler := snapshotter.NewAssembler(collector.NewDefaultFactory(
//	    collector.WithWatch([]disk.Watch{{MountPoint: "/srv/local1"}}),
//	))
//
// HostSnapshotter: Production implementation bound to the local host
//
//	s := &snapshotter.HostSnapshotter{
//	    Host:       host,
//	    Assembler:  assembler,
//	    Serializer: ser,
//	}
//	if err := s.Measure(ctx); err != nil {
//	    slog.Error("cycle failed", "error", err)
//	}
//
// # All or Nothing
//
// A cycle either publishes one complete, valid snapshot or publishes
// nothing. Any collector failure cancels the remaining collectors and the
// cycle returns the first error. The assembled snapshot is validated before
// it is handed to the serializer, and a canceled context after assembly also
// suppresses the publish.
//
// HostSnapshotter serializes cycles: a second Measure waits for the first.
//
// # Observability
//
// Prometheus metrics:
//   - hoststatus_cycle_duration_seconds: Time spent in one cycle
//   - hoststatus_cycle_total{outcome}: Cycles by outcome (assemble, publish, success)
//   - hoststatus_collector_duration_seconds{collector}: Per-collector timing
//   - hoststatus_last_success_timestamp_seconds: Timestamp of the last published snapshot
//   - hoststatus_snapshot_gpus: GPUs in the last published snapshot
//
// Every log line of a cycle carries the cycle ID.
package snapshotter
