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

package collector

import (
	"time"

	"github.com/NVIDIA/hoststatus/pkg/collector/command"
	"github.com/NVIDIA/hoststatus/pkg/collector/cpu"
	"github.com/NVIDIA/hoststatus/pkg/collector/disk"
	"github.com/NVIDIA/hoststatus/pkg/collector/gpu"
	"github.com/NVIDIA/hoststatus/pkg/collector/memory"
	"github.com/NVIDIA/hoststatus/pkg/collector/partition"
	"github.com/NVIDIA/hoststatus/pkg/collector/usage"
	"github.com/NVIDIA/hoststatus/pkg/defaults"
	"github.com/NVIDIA/hoststatus/pkg/status"
)

// Factory creates collectors with their dependencies.
// This interface enables dependency injection for testing.
type Factory interface {
	CreateGPUCollector() Collector[[]status.GPU]
	CreateDiskCollector() Collector[[]disk.Record]
	CreateMemoryCollector() Collector[[]memory.Record]
	CreateCPUCountCollector() Collector[int]
	CreateLoadCollector() Collector[cpu.LoadAverage]
	CreatePartitionCollector() Collector[[]string]
	// CreateUsageScanner returns nil when per-user usage is not configured.
	CreateUsageScanner() UsageScanner
	// WatchSet returns the watched mount points and their labels.
	WatchSet() disk.WatchSet
}

// DefaultFactory creates collectors with production dependencies.
type DefaultFactory struct {
	Runner           command.Runner
	Timeout          time.Duration
	GPUTimeout       time.Duration
	Watch            disk.WatchSet
	UsageDir         string
	OwnerResolver    usage.OwnerResolver
	EnableGPU        bool
	EnablePartitions bool
}

// Option is a functional option for configuring DefaultFactory.
type Option func(*DefaultFactory)

// WithRunner sets the command runner. Defaults to the os/exec runner.
func WithRunner(r command.Runner) Option {
	return func(f *DefaultFactory) {
		f.Runner = r
	}
}

// WithTimeout sets the timeout of every command except the GPU query.
func WithTimeout(d time.Duration) Option {
	return func(f *DefaultFactory) {
		if d > 0 {
			f.Timeout = d
		}
	}
}

// WithGPUTimeout sets the timeout of the GPU query.
func WithGPUTimeout(d time.Duration) Option {
	return func(f *DefaultFactory) {
		if d > 0 {
			f.GPUTimeout = d
		}
	}
}

// WithWatch sets the watched mount points.
func WithWatch(watches []disk.Watch) Option {
	return func(f *DefaultFactory) {
		f.Watch = disk.NewWatchSet(watches)
	}
}

// WithUsageDir enables per-user usage from logs in dir.
func WithUsageDir(dir string) Option {
	return func(f *DefaultFactory) {
		f.UsageDir = dir
	}
}

// WithOwnerResolver replaces the stat(2) based owner lookup of usage logs.
func WithOwnerResolver(r usage.OwnerResolver) Option {
	return func(f *DefaultFactory) {
		f.OwnerResolver = r
	}
}

// WithGPU enables or disables the GPU query.
func WithGPU(enabled bool) Option {
	return func(f *DefaultFactory) {
		f.EnableGPU = enabled
	}
}

// WithPartitions enables or disables the scheduler partition query.
func WithPartitions(enabled bool) Option {
	return func(f *DefaultFactory) {
		f.EnablePartitions = enabled
	}
}

// NewDefaultFactory creates a factory with default settings.
func NewDefaultFactory(opts ...Option) *DefaultFactory {
	f := &DefaultFactory{
		Runner:           command.NewExecRunner(),
		Timeout:          defaults.CollectorTimeout,
		GPUTimeout:       defaults.CollectorGPUTimeout,
		Watch:            disk.WatchSet{},
		OwnerResolver:    usage.StatResolver{},
		EnableGPU:        true,
		EnablePartitions: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateGPUCollector creates the nvidia-smi collector.
func (f *DefaultFactory) CreateGPUCollector() Collector[[]status.GPU] {
	if !f.EnableGPU {
		return Disabled[[]status.GPU]()
	}
	return &gpu.Collector{Runner: f.Runner, Timeout: f.GPUTimeout}
}

// CreateDiskCollector creates the df collector.
func (f *DefaultFactory) CreateDiskCollector() Collector[[]disk.Record] {
	return &disk.Collector{Runner: f.Runner, Timeout: f.Timeout, Watch: f.Watch}
}

// CreateMemoryCollector creates the free collector.
func (f *DefaultFactory) CreateMemoryCollector() Collector[[]memory.Record] {
	return &memory.Collector{Runner: f.Runner, Timeout: f.Timeout}
}

// CreateCPUCountCollector creates the lscpu collector.
func (f *DefaultFactory) CreateCPUCountCollector() Collector[int] {
	return &cpu.CountCollector{Runner: f.Runner, Timeout: f.Timeout}
}

// CreateLoadCollector creates the uptime collector.
func (f *DefaultFactory) CreateLoadCollector() Collector[cpu.LoadAverage] {
	return &cpu.LoadCollector{Runner: f.Runner, Timeout: f.Timeout}
}

// CreatePartitionCollector creates the sinfo collector.
func (f *DefaultFactory) CreatePartitionCollector() Collector[[]string] {
	if !f.EnablePartitions {
		return Disabled[[]string]()
	}
	return &partition.Collector{Runner: f.Runner, Timeout: f.Timeout}
}

// CreateUsageScanner creates the usage log scanner.
func (f *DefaultFactory) CreateUsageScanner() UsageScanner {
	if f.UsageDir == "" {
		return nil
	}
	return &usage.Scanner{Dir: f.UsageDir, Resolver: f.OwnerResolver}
}

// WatchSet returns the watched mount points.
func (f *DefaultFactory) WatchSet() disk.WatchSet {
	return f.Watch
}
