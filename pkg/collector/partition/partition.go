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

package partition

import (
	"context"
	"time"

	"github.com/NVIDIA/hoststatus/pkg/collector/command"
	"github.com/NVIDIA/hoststatus/pkg/collector/file"
	"github.com/NVIDIA/hoststatus/pkg/defaults"
	"github.com/NVIDIA/hoststatus/pkg/errors"
	"github.com/NVIDIA/hoststatus/pkg/status"
)

// CommandSpec returns the sinfo invocation for host with the given timeout.
// The host name is passed as a single argument and never interpreted by a shell.
func CommandSpec(host string, timeout time.Duration) command.Spec {
	return command.Spec{
		Name: "sinfo",
		Args: []string{
			"--noheader",
			"--nodes=" + host,
			"--format=%R",
		},
		Timeout: timeout,
	}
}

// Collector reports the partition names of the cycle's host.
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

// Collect runs sinfo for cycle.Host.
func (c *Collector) Collect(ctx context.Context, cycle status.Cycle) ([]string, error) {
	if cycle.Host == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "partition query requires a host name")
	}

	out, err := command.Output(ctx, c.Runner, CommandSpec(cycle.Host, c.Timeout))
	if err != nil {
		return nil, err
	}
	return ParseList(out)
}

// ParseList returns the non-empty trimmed lines of output in order.
func ParseList(output string) ([]string, error) {
	lines, err := file.NewParser().Lines(output)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeMalformedLine, "malformed partition list", err,
			map[string]any{"bytes": len(output)})
	}
	return lines, nil
}
