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
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/hoststatus/pkg/errors"
)

func validSnapshot() *Snapshot {
	return &Snapshot{
		Host:      "brtx601",
		Timestamp: 1760700000,
		GPUs: []GPU{
			{Utilization: 12.5, MemoryUsed: 1024, MemoryTotal: 81920, MemoryUnit: UnitMiB},
		},
		Disks: []Disk{
			{MountPoint: "/srv/local1", StorageUsed: 120, StorageTotal: 1800, StorageUnit: UnitGiB},
			{MountPoint: "/srv/local2", StorageUsed: 10, StorageTotal: 1800, StorageUnit: UnitGiB},
		},
		Memory:     Memory{MemoryUsed: 10, MemoryTotal: 62, MemoryUnit: UnitGiB},
		Swap:       Memory{MemoryUsed: 0, MemoryTotal: 7, MemoryUnit: UnitGiB},
		Load:       Load{NumCPUs: 32, LoadAvg1m: 0.5, LoadAvg5m: 1.2, LoadAvg15m: 0.75},
		Partitions: []string{"gpu", "cpu"},
	}
}

func TestSnapshot_Key(t *testing.T) {
	s := validSnapshot()
	assert.Equal(t, "brtx601.json", s.Key())
	assert.Equal(t, "other.json", ObjectKey("other"))
}

func TestSnapshot_JSONFieldNames(t *testing.T) {
	b, err := json.Marshal(validSnapshot())
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))

	for _, key := range []string{"host", "timestamp", "gpus", "disks", "memory", "swap", "load", "partitions"} {
		assert.Contains(t, got, key)
	}

	load := got["load"].(map[string]any)
	assert.Equal(t, float64(32), load["num_cpus"])
	assert.Equal(t, 0.5, load["load_avg_1_m"])
	assert.Equal(t, 1.2, load["load_avg_5_m"])
	assert.Equal(t, 0.75, load["load_avg_15_m"])

	gpu := got["gpus"].([]any)[0].(map[string]any)
	assert.Equal(t, 12.5, gpu["utilization"])
	assert.Equal(t, "MiB", gpu["memory_unit"])

	disk := got["disks"].([]any)[0].(map[string]any)
	assert.Equal(t, "/srv/local1", disk["mountpoint"])
	assert.Equal(t, "GiB", disk["storage_unit"])
	assert.NotContains(t, disk, "per_user")
}

func TestSnapshot_IntegersAreUnsuffixed(t *testing.T) {
	b, err := json.Marshal(validSnapshot())
	require.NoError(t, err)
	assert.Contains(t, string(b), `"memory_total":81920`)
	assert.Contains(t, string(b), `"timestamp":1760700000`)
}

func TestSnapshot_PerUserEncoding(t *testing.T) {
	d := Disk{
		MountPoint: "/srv/local1",
		PerUser:    &PerUser{StorageUsed: map[string]int64{}},
	}
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"per_user":{"storage_used":{}}`)

	d.PerUser = &PerUser{DateUpdated: "2026-10-16", StorageUsed: map[string]int64{"1001": 12}}
	b, err = json.Marshal(d)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"date_updated":"2026-10-16"`)
	assert.Contains(t, string(b), `"1001":12`)
}

func TestSnapshot_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *Snapshot)
		wantErr bool
	}{
		{"valid", func(*Snapshot) {}, false},
		{"empty lists are valid", func(s *Snapshot) {
			s.GPUs, s.Disks, s.Partitions = []GPU{}, []Disk{}, []string{}
		}, false},
		{"missing host", func(s *Snapshot) { s.Host = "" }, true},
		{"zero timestamp", func(s *Snapshot) { s.Timestamp = 0 }, true},
		{"nil gpus", func(s *Snapshot) { s.GPUs = nil }, true},
		{"duplicate disk", func(s *Snapshot) { s.Disks[1].MountPoint = s.Disks[0].MountPoint }, true},
		{"unsorted disks", func(s *Snapshot) { s.Disks[0], s.Disks[1] = s.Disks[1], s.Disks[0] }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSnapshot()
			tt.mutate(s)
			err := s.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.HasCode(err, errors.ErrCodeAssemblyInvariant))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestShortHostname(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"brtx601.cluster.example.org", "brtx601"},
		{"brtx601", "brtx601"},
		{" brtx601.local\n", "brtx601"},
		{"", ""},
		{".example", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ShortHostname(tt.in))
		})
	}
}

func TestLocalHost(t *testing.T) {
	host, err := LocalHost("override.example.org")
	require.NoError(t, err)
	assert.Equal(t, "override", host)

	host, err = LocalHost("")
	require.NoError(t, err)
	assert.NotEmpty(t, host)
	assert.NotContains(t, host, ".")
}

func TestNewCycle(t *testing.T) {
	now := time.Unix(1760700000, 999)
	c := NewCycle("brtx601", now)
	assert.Equal(t, "brtx601", c.Host)
	assert.Equal(t, int64(1760700000), c.Timestamp)
	assert.NotEmpty(t, c.ID)
	assert.NotEqual(t, c.ID, NewCycle("brtx601", now).ID)
}
