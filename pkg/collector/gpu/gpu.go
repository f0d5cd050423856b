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

package gpu

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/NVIDIA/hoststatus/pkg/collector/command"
	"github.com/NVIDIA/hoststatus/pkg/collector/file"
	"github.com/NVIDIA/hoststatus/pkg/defaults"
	"github.com/NVIDIA/hoststatus/pkg/errors"
	"github.com/NVIDIA/hoststatus/pkg/status"
)

const (
	commandName = "nvidia-smi"
	queryFields = "utilization.gpu,memory.used,memory.total"
)

// CommandSpec returns the nvidia-smi invocation with the given timeout.
func CommandSpec(timeout time.Duration) command.Spec {
	return command.Spec{
		Name: commandName,
		Args: []string{
			"--query-gpu=" + queryFields,
			"--format=csv,noheader,nounits",
		},
		Timeout: timeout,
	}
}

// Collector reports one record per GPU.
type Collector struct {
	Runner  command.Runner
	Timeout time.Duration
}

// NewCollector returns a Collector with the default GPU query timeout.
func NewCollector(r command.Runner) *Collector {
	return &Collector{
		Runner:  r,
		Timeout: defaults.CollectorGPUTimeout,
	}
}

// Collect runs the query and parses every row in device order.
func (c *Collector) Collect(ctx context.Context, cycle status.Cycle) ([]status.GPU, error) {
	out, err := command.Output(ctx, c.Runner, CommandSpec(c.Timeout))
	if err != nil {
		return nil, err
	}

	lines, err := file.NewParser().Lines(out)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCollector, "failed to split nvidia-smi output", err)
	}

	gpus := make([]status.GPU, 0, len(lines))
	for _, line := range lines {
		g, err := ParseLine(line)
		if err != nil {
			return nil, err
		}
		gpus = append(gpus, g)
	}

	slog.Debug("collected gpu usage",
		slog.String("cycle", cycle.ID),
		slog.Int("count", len(gpus)))

	return gpus, nil
}

// ParseLine parses one "utilization, memory_used, memory_total" row.
func ParseLine(line string) (status.GPU, error) {
	parts := strings.Split(line, ",")
	if len(parts) != 3 {
		return status.GPU{}, malformed(line, "expected 3 comma-separated fields")
	}

	util, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return status.GPU{}, malformed(line, "utilization is not a number")
	}

	used, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return status.GPU{}, malformed(line, "memory.used is not an integer")
	}

	total, err := strconv.ParseInt(strings.TrimSpace(parts[2]), 10, 64)
	if err != nil {
		return status.GPU{}, malformed(line, "memory.total is not an integer")
	}

	return status.GPU{
		Utilization: status.Float(util),
		MemoryUsed:  used,
		MemoryTotal: total,
		MemoryUnit:  status.UnitMiB,
	}, nil
}

func malformed(line, reason string) error {
	return errors.NewWithContext(errors.ErrCodeMalformedLine, "malformed GPU query line: "+reason,
		map[string]any{"line": line})
}
