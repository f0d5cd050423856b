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

package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/hoststatus/pkg/collector/command"
	"github.com/NVIDIA/hoststatus/pkg/errors"
	"github.com/NVIDIA/hoststatus/pkg/status"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    Record
		wantErr bool
	}{
		{name: "mem", line: "Mem:  62  10  40  1  12  51", want: Record{Name: "mem", Total: 62, Used: 10}},
		{name: "swap", line: "Swap: 7 0 7", want: Record{Name: "swap", Total: 7, Used: 0}},
		{name: "no colon", line: "Total 69 10 47", want: Record{Name: "total", Total: 69, Used: 10}},
		{name: "two columns", line: "Swap: 7", wantErr: true},
		{name: "non-numeric", line: "Mem: 62Gi 10Gi 40Gi", wantErr: true},
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

func TestRecord_Status(t *testing.T) {
	m := Record{Name: NameMemory, Total: 62, Used: 10}.Status()
	assert.Equal(t, status.Memory{MemoryUsed: 10, MemoryTotal: 62, MemoryUnit: status.UnitGiB}, m)
}

func TestCollector_Collect(t *testing.T) {
	out := "               total        used        free      shared  buff/cache   available\n" +
		"Mem:              62          10          40           1          12          51\n" +
		"Swap:              7           0           7\n"
	runner := command.NewFakeRunner().SetOutput("free", out)

	records, err := NewCollector(runner).Collect(context.Background(), status.Cycle{})
	require.NoError(t, err)
	assert.Equal(t, []Record{
		{Name: NameMemory, Total: 62, Used: 10},
		{Name: NameSwap, Total: 7, Used: 0},
	}, records)

	spec, _ := runner.Called("free")
	assert.Equal(t, []string{"-g"}, spec.Args)
}

func TestCollector_Collect_CommandFailure(t *testing.T) {
	runner := command.NewFakeRunner().SetResult("free", &command.Result{ExitCode: 1, Stderr: "free: bad"})

	_, err := NewCollector(runner).Collect(context.Background(), status.Cycle{})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeCollector))
}
