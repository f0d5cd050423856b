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
	"strconv"
	"strings"
	"time"

	"github.com/NVIDIA/hoststatus/pkg/collector/command"
	"github.com/NVIDIA/hoststatus/pkg/collector/file"
	"github.com/NVIDIA/hoststatus/pkg/defaults"
	"github.com/NVIDIA/hoststatus/pkg/errors"
	"github.com/NVIDIA/hoststatus/pkg/status"
)

// Record names, as normalized by ParseLine.
const (
	NameMemory = "mem"
	NameSwap   = "swap"
)

// CommandSpec returns the free invocation with the given timeout.
func CommandSpec(timeout time.Duration) command.Spec {
	return command.Spec{
		Name:    "free",
		Args:    []string{"-g"},
		Timeout: timeout,
	}
}

// Record is one named free row. Total and Used are in GiB.
type Record struct {
	Name  string
	Total int64
	Used  int64
}

// Status converts r to its snapshot form.
func (r Record) Status() status.Memory {
	return status.Memory{
		MemoryUsed:  r.Used,
		MemoryTotal: r.Total,
		MemoryUnit:  status.UnitGiB,
	}
}

// Collector reports every named row of free.
type Collector struct {
	Runner  command.Runner
	Timeout time.Duration
}

// NewCollector returns a Collector with the default timeout.
func NewCollector(r command.Runner) *Collector {
	return &Collector{
		Runner:  r,
		Timeout: defaults.CollectorTimeout,
	}
}

// Collect runs free and returns its rows in order.
func (c *Collector) Collect(ctx context.Context, _ status.Cycle) ([]Record, error) {
	out, err := command.Output(ctx, c.Runner, CommandSpec(c.Timeout))
	if err != nil {
		return nil, err
	}

	lines, err := file.NewParser(file.WithSkipHeader(1)).Lines(out)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCollector, "failed to split free output", err)
	}

	records := make([]Record, 0, len(lines))
	for _, line := range lines {
		r, err := ParseLine(line)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

// ParseLine parses a "name total used ..." row.
func ParseLine(line string) (Record, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return Record{}, malformed(line, "expected at least 3 columns")
	}

	total, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return Record{}, malformed(line, "total is not an integer")
	}

	used, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return Record{}, malformed(line, "used is not an integer")
	}

	return Record{
		Name:  strings.ToLower(strings.TrimSuffix(fields[0], ":")),
		Total: total,
		Used:  used,
	}, nil
}

func malformed(line, reason string) error {
	return errors.NewWithContext(errors.ErrCodeMalformedLine, "malformed memory usage line: "+reason,
		map[string]any{"line": line})
}
