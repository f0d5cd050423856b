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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cycle stages reported in the outcome counter.
const (
	stageAssemble = "assemble"
	stagePublish  = "publish"
	stageSuccess  = "success"
)

var (
	// Snapshot cycle metrics
	snapshotCycleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hoststatus_cycle_duration_seconds",
			Help:    "Time taken to collect and publish one host snapshot",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60},
		},
	)

	snapshotCycleTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hoststatus_cycle_total",
			Help: "Total number of snapshot cycles by outcome",
		},
		[]string{"outcome"}, // success, assemble or publish
	)

	snapshotCollectorDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hoststatus_collector_duration_seconds",
			Help:    "Time taken by individual collectors",
			Buckets: []float64{0.01, 0.1, 0.5, 1, 5, 10, 30},
		},
		[]string{"collector"}, // gpu, disk, memory, cpu, load, partition, usage
	)

	snapshotLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hoststatus_last_success_timestamp_seconds",
			Help: "Timestamp of the last published snapshot",
		},
	)

	snapshotGPUCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hoststatus_snapshot_gpus",
			Help: "Number of GPUs in the last published snapshot",
		},
	)
)
