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
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/hoststatus/pkg/collector/disk"
	"github.com/NVIDIA/hoststatus/pkg/config"
	"github.com/NVIDIA/hoststatus/pkg/serializer"
)

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to the YAML or JSON configuration file",
		Sources: cli.EnvVars("HOSTSTATUS_CONFIG"),
	}
}

// commonFlags are shared by every command that runs a cycle. Flags hold
// parse state, so every command gets its own instances.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "host",
			Usage:   "Host name to report (default: short local hostname)",
			Sources: cli.EnvVars("HOSTSTATUS_HOST"),
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage: fmt.Sprintf(`Where to publish: %sbucket[/prefix], %snamespace/name,
	a file path, or %q for stdout`, serializer.ObjectStoreURIScheme, serializer.ConfigMapURIScheme, serializer.StdoutURI),
			Sources: cli.EnvVars("HOSTSTATUS_OUTPUT"),
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"t"},
			Usage: fmt.Sprintf("Output format for file, stdout and ConfigMap outputs (supported: %s)",
				strings.Join(serializer.SupportedFormats(), ", ")),
			Sources: cli.EnvVars("HOSTSTATUS_FORMAT"),
		},
		&cli.StringSliceFlag{
			Name:    "disk",
			Usage:   "Watched mount point as path[=label], can be repeated",
			Sources: cli.EnvVars("HOSTSTATUS_DISKS"),
		},
		&cli.StringFlag{
			Name:    "usage-dir",
			Usage:   "Directory holding per-user disk usage logs",
			Sources: cli.EnvVars("HOSTSTATUS_USAGE_DIR"),
		},
		&cli.BoolFlag{
			Name:  "no-gpu",
			Usage: "Skip the GPU query",
		},
		&cli.BoolFlag{
			Name:  "no-partitions",
			Usage: "Skip the scheduler partition query",
		},
		&cli.DurationFlag{
			Name:  "command-timeout",
			Usage: "Timeout of each inspection command except the GPU query",
		},
		&cli.DurationFlag{
			Name:  "gpu-timeout",
			Usage: "Timeout of the GPU query",
		},
		&cli.StringFlag{
			Name:    "kubeconfig",
			Aliases: []string{"k"},
			Usage:   "Path to kubeconfig file for ConfigMap outputs (overrides KUBECONFIG env)",
		},
	}
}

// loadConfig reads the configuration file, if any, and applies the flags
// the user set on top of it.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg := config.New()
	if path := cmd.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}

	if cmd.IsSet("host") {
		cfg.Host = cmd.String("host")
	}
	if cmd.IsSet("output") {
		cfg.Output = cmd.String("output")
	}
	if cmd.IsSet("format") {
		cfg.Format = serializer.Format(cmd.String("format"))
	}
	if cmd.IsSet("disk") {
		watches, err := parseDisks(cmd.StringSlice("disk"))
		if err != nil {
			return nil, err
		}
		cfg.Disks = watches
	}
	if cmd.IsSet("usage-dir") {
		cfg.Usage.Dir = cmd.String("usage-dir")
	}
	if cmd.Bool("no-gpu") {
		off := false
		cfg.Sources.GPU = &off
	}
	if cmd.Bool("no-partitions") {
		off := false
		cfg.Sources.Partitions = &off
	}
	setDuration(cmd, "command-timeout", &cfg.Timeouts.Command)
	setDuration(cmd, "gpu-timeout", &cfg.Timeouts.GPU)
	setDuration(cmd, "interval", &cfg.Interval)
	setDuration(cmd, "cycle-timeout", &cfg.CycleTimeout)
	setDuration(cmd, "publish-timeout", &cfg.Timeouts.Publish)
	if cmd.IsSet("kubeconfig") {
		cfg.Kubeconfig = cmd.String("kubeconfig")
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setDuration(cmd *cli.Command, flag string, dst *config.Duration) {
	if cmd.IsSet(flag) {
		*dst = config.Duration(cmd.Duration(flag))
	}
}

// parseDisks parses path[=label] values.
func parseDisks(values []string) ([]disk.Watch, error) {
	watches := make([]disk.Watch, 0, len(values))
	for _, v := range values {
		mountPoint, label, _ := strings.Cut(strings.TrimSpace(v), "=")
		if mountPoint == "" {
			return nil, fmt.Errorf("invalid disk %q: empty mount point", v)
		}
		watches = append(watches, disk.Watch{MountPoint: mountPoint, Label: label})
	}
	return watches, nil
}

