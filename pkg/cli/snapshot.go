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

package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/hoststatus/pkg/collector"
	"github.com/NVIDIA/hoststatus/pkg/serializer"
	"github.com/NVIDIA/hoststatus/pkg/snapshotter"
)

func snapshotCmd(opts ...collector.Option) *cli.Command {
	return &cli.Command{
		Name:                  "snapshot",
		EnableShellCompletion: true,
		Usage:                 "Run one cycle and write the snapshot",
		Description: `Collects every source once and writes the snapshot. Unlike run, the
default output is stdout so the command can be used to check a host before
enabling the service.

The snapshot can be output in JSON, YAML, or table format.

Examples:
  hoststatus snapshot --disk /srv/local1 --format table
  hoststatus snapshot --config /etc/hoststatus/config.yaml --output s3://brtx-status`,
		Flags: commonFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if !cmd.IsSet("output") {
				cfg.Output = serializer.StdoutURI
			}

			host, err := cfg.ResolveHost()
			if err != nil {
				return fmt.Errorf("failed to determine host name: %w", err)
			}

			ser, err := cfg.Serializer(ctx)
			if err != nil {
				return fmt.Errorf("failed to create output: %w", err)
			}

			hs := &snapshotter.HostSnapshotter{
				Host:           host,
				Assembler:      snapshotter.NewAssembler(cfg.Factory(opts...)),
				Serializer:     ser,
				PublishTimeout: cfg.Timeouts.Publish.Std(),
			}

			ctx, cancel := context.WithTimeout(ctx, cfg.CycleTimeout.Std())
			defer cancel()

			return hs.Measure(ctx)
		},
	}
}
