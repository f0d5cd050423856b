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

package disk

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/hoststatus/pkg/collector/command"
	"github.com/NVIDIA/hoststatus/pkg/errors"
	"github.com/NVIDIA/hoststatus/pkg/status"
)

const dfOutput = `Filesystem     1G-blocks  Used Available Capacity Mounted on
udev                 32G    0G       32G       0% /dev
/dev/sda2           439G   52G      365G      13% /
/dev/nvme1n1       1800G  900G      900G      50% /srv/local2
/dev/nvme0n1       1800G  120G     1680G       7% /srv/local1
`

func TestParseLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    Record
		wantErr bool
	}{
		{
			name: "suffixed",
			line: "/dev/nvme0n1 1800G 120G 1680G 7% /srv/local1",
			want: Record{Device: "/dev/nvme0n1", MountPoint: "/srv/local1", Size: 1800, Used: 120},
		},
		{
			name: "no suffix",
			line: "tmpfs 16 0 16 0% /run",
			want: Record{Device: "tmpfs", MountPoint: "/run", Size: 16, Used: 0},
		},
		{
			name: "mount point with spaces",
			line: "//nas/share 100G 1G 99G 1% /mnt/my share",
			want: Record{Device: "//nas/share", MountPoint: "/mnt/my share", Size: 100, Used: 1},
		},
		{name: "five columns", line: "/dev/sda1 100G 10G 90G 10%", wantErr: true},
		{name: "non-numeric size", line: "/dev/sda1 -G 10G 90G 10% /", wantErr: true},
		{name: "double suffix", line: "/dev/sda1 100GG 10G 90G 10% /", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLine(tt.line)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.HasCode(err, errors.ErrCodeMalformedLine))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewWatchSet(t *testing.T) {
	ws := NewWatchSet([]Watch{
		{MountPoint: "/srv/local2"},
		{MountPoint: "/srv/local1", Label: "scratch"},
		{MountPoint: "  "},
	})

	assert.Len(t, ws, 2)
	assert.Equal(t, "local2", ws.Label("/srv/local2"))
	assert.Equal(t, "scratch", ws.Label("/srv/local1"))
	assert.False(t, ws.Contains("/"))
	assert.Equal(t, []string{"/srv/local1", "/srv/local2"}, ws.MountPoints())
}

func TestNewWatchSet_CleansMountPoints(t *testing.T) {
	ws := NewWatchSet([]Watch{
		{MountPoint: "/srv/local1/"},
		{MountPoint: "/srv//local2"},
	})

	assert.True(t, ws.Contains("/srv/local1"))
	assert.True(t, ws.Contains("/srv/local2"))
	assert.Equal(t, "local1", ws.Label("/srv/local1"))
	assert.Equal(t, []string{"/srv/local1", "/srv/local2"}, ws.MountPoints())
}

func TestCollector_Collect_TrailingSlashWatch(t *testing.T) {
	runner := command.NewFakeRunner().SetOutput("df", dfOutput)
	ws := NewWatchSet([]Watch{{MountPoint: "/srv/local1/"}, {MountPoint: "/srv/local2"}})

	records, err := NewCollector(runner, ws).Collect(context.Background(), status.Cycle{})
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestCollector_Collect(t *testing.T) {
	runner := command.NewFakeRunner().SetOutput("df", dfOutput)
	ws := NewWatchSet([]Watch{{MountPoint: "/srv/local1"}, {MountPoint: "/srv/local2"}})

	records, err := NewCollector(runner, ws).Collect(context.Background(), status.Cycle{})
	require.NoError(t, err)
	require.Len(t, records, 2)

	// df order is kept; sorting is left to the assembler
	assert.Equal(t, "/srv/local2", records[0].MountPoint)
	assert.Equal(t, "/srv/local1", records[1].MountPoint)
	assert.Equal(t, int64(120), records[1].Used)

	spec, ok := runner.Called("df")
	require.True(t, ok)
	assert.Equal(t, []string{"-P", "-BG"}, spec.Args)
}

func TestCollector_Collect_DuplicateMountKeepsLast(t *testing.T) {
	out := dfOutput + "/dev/md0 3600G 10G 3590G 1% /srv/local1\n"
	runner := command.NewFakeRunner().SetOutput("df", out)
	ws := NewWatchSet([]Watch{{MountPoint: "/srv/local1"}})

	records, err := NewCollector(runner, ws).Collect(context.Background(), status.Cycle{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "/dev/md0", records[0].Device)
	assert.Equal(t, int64(3600), records[0].Size)
}

func TestCollector_Collect_Errors(t *testing.T) {
	ws := NewWatchSet([]Watch{{MountPoint: "/"}})

	_, err := NewCollector(command.NewFakeRunner().SetResult("df", &command.Result{ExitCode: 1}), ws).
		Collect(context.Background(), status.Cycle{})
	assert.Equal(t, errors.ErrCodeCollector, errors.CodeOf(err))

	_, err = NewCollector(command.NewFakeRunner().SetOutput("df", "header\nbroken row\n"), ws).
		Collect(context.Background(), status.Cycle{})
	assert.Equal(t, errors.ErrCodeMalformedLine, errors.CodeOf(err))
}
