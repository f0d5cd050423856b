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
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/hoststatus/pkg/collector"
	"github.com/NVIDIA/hoststatus/pkg/logging"
)

const (
	name           = "hoststatus"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Execute runs the command line and exits non-zero on failure.
// This is called by main.main().
func Execute() {
	if err := newRootCmd().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. opts are appended to every collector
// factory the subcommands build.
func newRootCmd(opts ...collector.Option) *cli.Command {
	return &cli.Command{
		Name:                  name,
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		EnableShellCompletion: true,
		Usage:                 "Publish a periodic status snapshot of this host",
		Description: `hoststatus collects GPU, disk, memory, CPU load and scheduler partition
status of the local host and publishes it as one JSON document per host,
replacing the previous one on every cycle.

run      - repeat the cycle on an interval (daemon mode)
snapshot - run one cycle and print the result`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("HOSTSTATUS_LOG_LEVEL", "LOG_LEVEL"),
			},
			configFlag(),
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level := cmd.String("log-level")
			logging.SetDefaultStructuredLoggerWithLevel(name, version, level)
			slog.Debug("starting",
				slog.String("name", name),
				slog.String("version", version),
				slog.String("commit", commit),
				slog.String("date", date),
				slog.String("logLevel", level))
			return ctx, nil
		},
		Commands: []*cli.Command{
			runCmd(opts...),
			snapshotCmd(opts...),
		},
	}
}
