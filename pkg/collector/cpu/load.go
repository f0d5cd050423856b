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

package cpu

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/NVIDIA/hoststatus/pkg/collector/command"
	"github.com/NVIDIA/hoststatus/pkg/collector/file"
	"github.com/NVIDIA/hoststatus/pkg/defaults"
	"github.com/NVIDIA/hoststatus/pkg/errors"
	"github.com/NVIDIA/hoststatus/pkg/status"
)

// LoadCommandSpec returns the uptime invocation with the given timeout.
func LoadCommandSpec(timeout time.Duration) command.Spec {
	return command.Spec{
		Name:    "uptime",
		Timeout: timeout,
	}
}

// LoadAverage holds the 1, 5 and 15 minute load averages.
type LoadAverage struct {
	One     float64
	Five    float64
	Fifteen float64
}

// LoadCollector reports the system load averages.
type LoadCollector struct {
	Runner  command.Runner
	Timeout time.Duration
}

// NewLoadCollector returns a LoadCollector with the default timeout.
func NewLoadCollector(r command.Runner) *LoadCollector {
	return &LoadCollector{
		Runner:  r,
		Timeout: defaults.CollectorTimeout,
	}
}

// Collect runs uptime and parses its last line.
func (c *LoadCollector) Collect(ctx context.Context, _ status.Cycle) (LoadAverage, error) {
	out, err := command.Output(ctx, c.Runner, LoadCommandSpec(c.Timeout))
	if err != nil {
		return LoadAverage{}, err
	}

	lines, err := file.NewParser().Lines(out)
	if err != nil {
		return LoadAverage{}, errors.Wrap(errors.ErrCodeCollector, "failed to split uptime output", err)
	}

	return ParseLoadAverage(lines[len(lines)-1])
}

// ParseLoadAverage reads the last three whitespace-separated tokens of line,
// with trailing commas removed, as the 1, 5 and 15 minute averages.
func ParseLoadAverage(line string) (LoadAverage, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return LoadAverage{}, errors.NewWithContext(errors.ErrCodeMalformedLine,
			"malformed load average line: expected at least 3 tokens", map[string]any{"line": line})
	}

	var avg [3]float64
	for i, tok := range fields[len(fields)-3:] {
		v, err := strconv.ParseFloat(strings.TrimRight(tok, ","), 64)
		if err != nil {
			return LoadAverage{}, errors.NewWithContext(errors.ErrCodeMalformedLine,
				"malformed load average line: token is not a number", map[string]any{
					"line":  line,
					"token": tok,
				})
		}
		avg[i] = v
	}

	return LoadAverage{One: avg[0], Five: avg[1], Fifteen: avg[2]}, nil
}

// Merge combines a CPU count and load averages into the snapshot load record.
func Merge(numCPUs int, avg LoadAverage) status.Load {
	return status.Load{
		NumCPUs:    numCPUs,
		LoadAvg1m:  status.Float(avg.One),
		LoadAvg5m:  status.Float(avg.Five),
		LoadAvg15m: status.Float(avg.Fifteen),
	}
}
