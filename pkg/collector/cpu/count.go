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

// CountLabel prefixes the lscpu line carrying the logical CPU count.
const CountLabel = "CPU(s):"

// CountCommandSpec returns the lscpu invocation with the given timeout.
func CountCommandSpec(timeout time.Duration) command.Spec {
	return command.Spec{
		Name:    "lscpu",
		Timeout: timeout,
	}
}

// CountCollector reports the number of logical CPUs.
type CountCollector struct {
	Runner  command.Runner
	Timeout time.Duration
}

// NewCountCollector returns a CountCollector with the default timeout.
func NewCountCollector(r command.Runner) *CountCollector {
	return &CountCollector{
		Runner:  r,
		Timeout: defaults.CollectorTimeout,
	}
}

// Collect runs lscpu and parses the logical CPU count.
func (c *CountCollector) Collect(ctx context.Context, _ status.Cycle) (int, error) {
	out, err := command.Output(ctx, c.Runner, CountCommandSpec(c.Timeout))
	if err != nil {
		return 0, err
	}
	return ParseCPUCount(out)
}

// ParseCPUCount returns the last token of the single line starting with CountLabel.
func ParseCPUCount(output string) (int, error) {
	lines, err := file.NewParser().Lines(output)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeCollector, "failed to split lscpu output", err)
	}

	var matches []string
	for _, line := range lines {
		if strings.HasPrefix(line, CountLabel) {
			matches = append(matches, line)
		}
	}

	if len(matches) != 1 {
		return 0, errors.NewWithContext(errors.ErrCodeAssemblyInvariant,
			"expected exactly one logical CPU count line", map[string]any{
				"label":   CountLabel,
				"matches": len(matches),
			})
	}

	fields := strings.Fields(matches[0])
	n, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil || n < 0 {
		return 0, errors.NewWithContext(errors.ErrCodeMalformedLine,
			"malformed CPU count line: count is not an integer", map[string]any{"line": matches[0]})
	}
	return n, nil
}
