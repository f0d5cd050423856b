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
	"os/signal"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/NVIDIA/hoststatus/pkg/collector"
	"github.com/NVIDIA/hoststatus/pkg/server"
	"github.com/NVIDIA/hoststatus/pkg/snapshotter"
)

func runCmd(opts ...collector.Option) *cli.Command {
	flags := append(commonFlags(),
		&cli.DurationFlag{
			Name:    "interval",
			Usage:   "Time between cycle starts",
			Sources: cli.EnvVars("HOSTSTATUS_INTERVAL"),
		},
		&cli.DurationFlag{
			Name:  "cycle-timeout",
			Usage: "Upper bound of one collect and publish cycle",
		},
		&cli.DurationFlag{
			Name:  "publish-timeout",
			Usage: "Upper bound of one publish",
		},
		&cli.BoolFlag{
			Name:  "once",
			Usage: "Run a single cycle and exit with its result",
		},
		&cli.StringFlag{
			Name:    "metrics-address",
			Usage:   "Serve /health, /ready and /metrics on this address (e.g. :9400)",
			Sources: cli.EnvVars("HOSTSTATUS_METRICS_ADDRESS"),
		},
	)

	return &cli.Command{
		Name:  "run",
		Usage: "Publish a snapshot of this host on an interval",
		Description: `Collects and publishes a snapshot every interval until interrupted.

A cycle that fails to collect any source publishes nothing; the previous
snapshot stays in place and the next cycle starts on schedule.

Examples:
  hoststatus run --disk /srv/local1 --disk /srv/local2 --output s3://brtx-status
  hoststatus run --config /etc/hoststatus/config.yaml --metrics-address :9400`,
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			host, err := cfg.ResolveHost()
			if err != nil {
				return fmt.Errorf("failed to determine host name: %w", err)
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

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

			slog.Info("reporting host status",
				slog.String("host", host),
				slog.String("output", cfg.Output),
				slog.Duration("interval", cfg.Interval.Std()),
				slog.Int("disks", len(cfg.Disks)))

			l := &loop{
				measure:      hs.Measure,
				interval:     cfg.Interval.Std(),
				cycleTimeout: cfg.CycleTimeout.Std(),
				once:         cmd.Bool("once"),
				notify:       sdNotify,
			}

			addr := cmd.String("metrics-address")
			if addr == "" {
				return l.run(ctx)
			}

			srv := server.New(
				server.WithName(name),
				server.WithVersion(version),
				server.WithAddress(addr),
			)
			l.onSuccess = func() { srv.SetReady(true) }

			g, gctx := errgroup.WithContext(ctx)
			lctx, cancel := context.WithCancel(gctx)
			g.Go(func() error {
				defer cancel()
				return l.run(lctx)
			})
			g.Go(func() error {
				return srv.Start(lctx)
			})
			return g.Wait()
		},
	}
}

// loop repeats measure on a fixed schedule.
type loop struct {
	measure      func(ctx context.Context) error
	interval     time.Duration
	cycleTimeout time.Duration
	once         bool

	// notify reports service state, e.g. to systemd. May be nil.
	notify func(state string)
	// onSuccess runs after every published snapshot. May be nil.
	onSuccess func()
}

// run blocks until ctx is done. In once mode it returns the result of the
// single cycle instead. A failed cycle is logged and the loop continues.
func (l *loop) run(ctx context.Context) error {
	l.notifyState(daemon.SdNotifyReady)
	defer l.notifyState(daemon.SdNotifyStopping)

	limiter := rate.NewLimiter(rate.Every(l.interval), 1)
	for cycles := 0; ; cycles++ {
		if err := limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				slog.Info("stopping", slog.Int("cycles", cycles))
				return nil
			}
			return fmt.Errorf("failed to wait for next cycle: %w", err)
		}

		err := l.cycle(ctx)
		if l.once {
			return err
		}
	}
}

func (l *loop) cycle(ctx context.Context) error {
	cctx, cancel := context.WithTimeout(ctx, l.cycleTimeout)
	defer cancel()

	if err := l.measure(cctx); err != nil {
		slog.Error("cycle failed", slog.String("error", err.Error()))
		return err
	}

	l.notifyState(daemon.SdNotifyWatchdog)
	if l.onSuccess != nil {
		l.onSuccess()
	}
	return nil
}

func (l *loop) notifyState(state string) {
	if l.notify != nil {
		l.notify(state)
	}
}

// sdNotify tells systemd about state changes. Outside systemd it does nothing.
func sdNotify(state string) {
	if _, err := daemon.SdNotify(false, state); err != nil {
		slog.Debug("failed to notify systemd", slog.String("state", state), slog.String("error", err.Error()))
	}
}
