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

package status

import (
	"github.com/NVIDIA/hoststatus/pkg/errors"
)

// Unit tags emitted alongside numeric storage fields.
const (
	UnitMiB = "MiB"
	UnitGiB = "GiB"
)

// ObjectKeySuffix is appended to the host name to form the object key.
const ObjectKeySuffix = ".json"

// Snapshot is the published unit: one flat record per host per cycle.
// It is built once by the assembler and never modified afterwards.
type Snapshot struct {
	Host       string   `json:"host" yaml:"host"`
	Timestamp  int64    `json:"timestamp" yaml:"timestamp"`
	GPUs       []GPU    `json:"gpus" yaml:"gpus"`
	Disks      []Disk   `json:"disks" yaml:"disks"`
	Memory     Memory   `json:"memory" yaml:"memory"`
	Swap       Memory   `json:"swap" yaml:"swap"`
	Load       Load     `json:"load" yaml:"load"`
	Partitions []string `json:"partitions" yaml:"partitions"`
}

// GPU is one physical device as reported by the GPU query tool.
type GPU struct {
	Utilization Float  `json:"utilization" yaml:"utilization"`
	MemoryUsed  int64  `json:"memory_used" yaml:"memory_used"`
	MemoryTotal int64  `json:"memory_total" yaml:"memory_total"`
	MemoryUnit  string `json:"memory_unit,omitempty" yaml:"memory_unit,omitempty"`
}

// Disk is the usage of one watched mount point.
type Disk struct {
	MountPoint   string   `json:"mountpoint" yaml:"mountpoint"`
	StorageUsed  int64    `json:"storage_used" yaml:"storage_used"`
	StorageTotal int64    `json:"storage_total" yaml:"storage_total"`
	StorageUnit  string   `json:"storage_unit,omitempty" yaml:"storage_unit,omitempty"`
	PerUser      *PerUser `json:"per_user,omitempty" yaml:"per_user,omitempty"`
}

// PerUser attributes disk usage to owners. StorageUsed maps the owner uid,
// rendered as a decimal string, to GiB used. DateUpdated is empty when no
// usage log was found.
type PerUser struct {
	DateUpdated string           `json:"date_updated,omitempty" yaml:"date_updated,omitempty"`
	StorageUsed map[string]int64 `json:"storage_used" yaml:"storage_used"`
}

// Memory is either physical memory or swap.
type Memory struct {
	MemoryUsed  int64  `json:"memory_used" yaml:"memory_used"`
	MemoryTotal int64  `json:"memory_total" yaml:"memory_total"`
	MemoryUnit  string `json:"memory_unit,omitempty" yaml:"memory_unit,omitempty"`
}

// Load merges the logical CPU count with the three load averages.
type Load struct {
	NumCPUs    int   `json:"num_cpus" yaml:"num_cpus"`
	LoadAvg1m  Float `json:"load_avg_1_m" yaml:"load_avg_1_m"`
	LoadAvg5m  Float `json:"load_avg_5_m" yaml:"load_avg_5_m"`
	LoadAvg15m Float `json:"load_avg_15_m" yaml:"load_avg_15_m"`
}

// Key returns the object-store key for the snapshot.
func (s *Snapshot) Key() string {
	return ObjectKey(s.Host)
}

// ObjectKey returns the object-store key for host.
func ObjectKey(host string) string {
	return host + ObjectKeySuffix
}

// Validate checks the invariants every published snapshot must hold.
func (s *Snapshot) Validate() error {
	if s.Host == "" {
		return errors.New(errors.ErrCodeAssemblyInvariant, "snapshot host is empty")
	}
	if s.Timestamp <= 0 {
		return errors.NewWithContext(errors.ErrCodeAssemblyInvariant, "snapshot timestamp is not set",
			map[string]any{"timestamp": s.Timestamp})
	}
	if s.GPUs == nil || s.Disks == nil || s.Partitions == nil {
		return errors.New(errors.ErrCodeAssemblyInvariant, "snapshot has unset list fields")
	}
	seen := make(map[string]struct{}, len(s.Disks))
	for i, d := range s.Disks {
		if _, dup := seen[d.MountPoint]; dup {
			return errors.NewWithContext(errors.ErrCodeAssemblyInvariant, "duplicate disk record",
				map[string]any{"mountpoint": d.MountPoint})
		}
		seen[d.MountPoint] = struct{}{}
		if i > 0 && s.Disks[i-1].MountPoint > d.MountPoint {
			return errors.NewWithContext(errors.ErrCodeAssemblyInvariant, "disks are not sorted by mount point",
				map[string]any{"mountpoint": d.MountPoint})
		}
	}
	return nil
}
