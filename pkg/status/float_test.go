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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloat_MarshalJSON(t *testing.T) {
	tests := []struct {
		in   Float
		want string
	}{
		{50, "50.0"},
		{0, "0.0"},
		{1, "1.0"},
		{12.25, "12.25"},
		{0.75, "0.75"},
		{-3, "-3.0"},
		{1e21, "1000000000000000000000.0"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			b, err := json.Marshal(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(b))
		})
	}
}

func TestFloat_RejectsNonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := json.Marshal(Float(v))
		assert.Error(t, err)
	}
}

func TestSnapshot_WholeFloatsKeepDecimalPoint(t *testing.T) {
	s := validSnapshot()
	s.GPUs[0].Utilization = 50
	s.Load = Load{NumCPUs: 32, LoadAvg1m: 1, LoadAvg5m: 2, LoadAvg15m: 0}

	b, err := json.Marshal(s)
	require.NoError(t, err)
	out := string(b)
	assert.Contains(t, out, `"utilization":50.0`)
	assert.Contains(t, out, `"load_avg_1_m":1.0`)
	assert.Contains(t, out, `"load_avg_5_m":2.0`)
	assert.Contains(t, out, `"load_avg_15_m":0.0`)
	assert.Contains(t, out, `"num_cpus":32,`)

	var back Snapshot
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, Float(50), back.GPUs[0].Utilization)
	assert.Equal(t, Float(2), back.Load.LoadAvg5m)
}
