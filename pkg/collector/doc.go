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

// Package collector provides the interfaces used to gather host status data.
//
// # Overview
//
// Every source of a status snapshot is a Collector: it runs one external
// command, parses its output and returns a typed result. Collectors receive
// the cycle context so that every source reads the same host name and
// timestamp.
//
//	type Collector[T any] interface {
//	    Collect(ctx context.Context, cycle status.Cycle) (T, error)
//	}
//
// # Factory Pattern
//
// The Factory interface abstracts collector creation so that the assembler can
// be tested with fake runners:
//
//	f := collector.NewDefaultFactory(
//	    collector.WithWatch([]disk.Watch{{MountPoint: "/srv/local1"}}),
//	    collector.WithUsageDir("/var/log/disk-usage"),
//	    collector.WithGPU(false),
//	)
//	gpus, err := f.CreateGPUCollector().Collect(ctx, cycle)
//
// Sources disabled through WithGPU or WithPartitions return an empty result
// without running anything.
//
// # Subpackages
//
//   - collector/command - process execution with timeouts and a fake runner
//   - collector/file - line splitting for command output and logs
//   - collector/gpu - nvidia-smi utilization and memory
//   - collector/disk - df usage of watched mount points
//   - collector/memory - free memory and swap rows
//   - collector/cpu - lscpu CPU count and uptime load averages
//   - collector/partition - sinfo partitions of the host
//   - collector/usage - per-user usage logs of watched disks
package collector
