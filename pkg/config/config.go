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

package config

import (
	"context"
	"path"
	"strings"

	"github.com/NVIDIA/hoststatus/pkg/collector"
	"github.com/NVIDIA/hoststatus/pkg/collector/disk"
	"github.com/NVIDIA/hoststatus/pkg/defaults"
	"github.com/NVIDIA/hoststatus/pkg/errors"
	"github.com/NVIDIA/hoststatus/pkg/serializer"
	"github.com/NVIDIA/hoststatus/pkg/status"
)

// DefaultOutput is the bucket snapshots are published to when no output is set.
const DefaultOutput = serializer.ObjectStoreURIScheme + "brtx-status"

// Config is the reporter configuration file.
type Config struct {
	// Host overrides the short host name. Empty uses the local hostname.
	Host string `json:"host,omitempty" yaml:"host,omitempty"`

	// Interval is the time between cycle starts.
	Interval Duration `json:"interval,omitempty" yaml:"interval,omitempty"`

	// CycleTimeout bounds one collect and publish cycle.
	CycleTimeout Duration `json:"cycle_timeout,omitempty" yaml:"cycle_timeout,omitempty"`

	// Output selects the sink: s3://bucket[/prefix], cm://namespace/name,
	// a file path or "-" for stdout.
	Output string `json:"output,omitempty" yaml:"output,omitempty"`

	// Format applies to file, stdout and ConfigMap outputs.
	Format serializer.Format `json:"format,omitempty" yaml:"format,omitempty"`

	// Disks lists the watched mount points.
	Disks []disk.Watch `json:"disks,omitempty" yaml:"disks,omitempty"`

	Usage    Usage    `json:"usage,omitempty" yaml:"usage,omitempty"`
	Sources  Sources  `json:"sources,omitempty" yaml:"sources,omitempty"`
	Timeouts Timeouts `json:"timeouts,omitempty" yaml:"timeouts,omitempty"`

	// S3 configures the object store client.
	S3 serializer.S3Options `json:"s3,omitempty" yaml:"s3,omitempty"`

	// Kubeconfig is used by cm:// outputs. Empty means automatic discovery.
	Kubeconfig string `json:"kubeconfig,omitempty" yaml:"kubeconfig,omitempty"`
}

// Usage configures the per-user disk usage breakdown.
type Usage struct {
	// Dir holds <host>_<label>_<YYYY-MM-DD>.log files. Empty disables the breakdown.
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`
}

// Sources toggles the optional collectors. Nil means enabled.
type Sources struct {
	GPU        *bool `json:"gpu,omitempty" yaml:"gpu,omitempty"`
	Partitions *bool `json:"partitions,omitempty" yaml:"partitions,omitempty"`
}

// Timeouts bounds individual operations of a cycle.
type Timeouts struct {
	Command Duration `json:"command,omitempty" yaml:"command,omitempty"`
	GPU     Duration `json:"gpu,omitempty" yaml:"gpu,omitempty"`
	Publish Duration `json:"publish,omitempty" yaml:"publish,omitempty"`
}

// New returns a configuration holding the defaults.
func New() *Config {
	c := &Config{}
	c.ApplyDefaults()
	return c
}

// Load reads path over the defaults. Fields the file omits keep their
// default values.
func Load(path string) (*Config, error) {
	c := New()
	if err := serializer.DecodeFile(path, c); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "failed to load configuration", err,
			map[string]any{"path": path})
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// ApplyDefaults fills every unset field.
func (c *Config) ApplyDefaults() {
	if c.Interval <= 0 {
		c.Interval = Duration(defaults.UpdateInterval)
	}
	if c.CycleTimeout <= 0 {
		c.CycleTimeout = Duration(defaults.CycleTimeout)
	}
	if strings.TrimSpace(c.Output) == "" {
		c.Output = DefaultOutput
	}
	if c.Format == "" {
		c.Format = serializer.FormatJSON
	}
	if c.Timeouts.Command <= 0 {
		c.Timeouts.Command = Duration(defaults.CollectorTimeout)
	}
	if c.Timeouts.GPU <= 0 {
		c.Timeouts.GPU = Duration(defaults.CollectorGPUTimeout)
	}
	if c.Timeouts.Publish <= 0 {
		c.Timeouts.Publish = Duration(defaults.PublishTimeout)
	}
}

// Validate checks values that defaults cannot repair.
func (c *Config) Validate() error {
	if c.Format.IsUnknown() {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, "unknown output format", map[string]any{
			"format":    c.Format,
			"supported": serializer.SupportedFormats(),
		})
	}
	if c.CycleTimeout.Std() < c.Timeouts.GPU.Std() {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"cycle timeout must not be shorter than the GPU timeout", map[string]any{
				"cycle_timeout": c.CycleTimeout.Std().String(),
				"gpu_timeout":   c.Timeouts.GPU.Std().String(),
			})
	}

	seen := make(map[string]struct{}, len(c.Disks))
	for _, d := range c.Disks {
		if !strings.HasPrefix(d.MountPoint, "/") {
			return errors.NewWithContext(errors.ErrCodeInvalidRequest, "disk mount point must be absolute",
				map[string]any{"mountpoint": d.MountPoint})
		}
		mp := path.Clean(d.MountPoint)
		if _, dup := seen[mp]; dup {
			return errors.NewWithContext(errors.ErrCodeInvalidRequest, "disk mount point listed twice",
				map[string]any{"mountpoint": d.MountPoint})
		}
		seen[mp] = struct{}{}
	}
	return nil
}

// ResolveHost returns the configured host or the local short hostname.
func (c *Config) ResolveHost() (string, error) {
	return status.LocalHost(c.Host)
}

// Factory returns the collector factory for this configuration.
func (c *Config) Factory(opts ...collector.Option) collector.Factory {
	base := []collector.Option{
		collector.WithTimeout(c.Timeouts.Command.Std()),
		collector.WithGPUTimeout(c.Timeouts.GPU.Std()),
		collector.WithWatch(c.Disks),
		collector.WithUsageDir(c.Usage.Dir),
		collector.WithGPU(enabled(c.Sources.GPU)),
		collector.WithPartitions(enabled(c.Sources.Partitions)),
	}
	return collector.NewDefaultFactory(append(base, opts...)...)
}

// Serializer returns the publisher for the configured output.
func (c *Config) Serializer(ctx context.Context) (serializer.Serializer, error) {
	return serializer.NewSerializer(ctx, c.Output, serializer.Options{
		Format:     c.Format,
		S3:         c.S3,
		Kubeconfig: c.Kubeconfig,
	})
}

func enabled(b *bool) bool {
	return b == nil || *b
}
