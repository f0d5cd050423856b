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

package disk

import (
	"context"
	"log/slog"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/NVIDIA/hoststatus/pkg/collector/command"
	"github.com/NVIDIA/hoststatus/pkg/collector/file"
	"github.com/NVIDIA/hoststatus/pkg/defaults"
	"github.com/NVIDIA/hoststatus/pkg/errors"
	"github.com/NVIDIA/hoststatus/pkg/status"
)

// minColumns is the column count of a df -P row.
const minColumns = 6

// CommandSpec returns the df invocation with the given timeout.
func CommandSpec(timeout time.Duration) command.Spec {
	return command.Spec{
		Name:    "df",
		Args:    []string{"-P", "-BG"},
		Timeout: timeout,
	}
}

// Record is one parsed df row. Size and Used are in GiB.
type Record struct {
	Device     string
	MountPoint string
	Size       int64
	Used       int64
}

// Watch names a mount point to report and the label of its usage logs.
type Watch struct {
	MountPoint string `json:"mountpoint" yaml:"mountpoint"`
	Label      string `json:"label,omitempty" yaml:"label,omitempty"`
}

// WatchSet maps watched mount points to their labels.
type WatchSet map[string]string

// NewWatchSet builds a WatchSet, defaulting empty labels to the mount point's base name.
// Mount points are cleaned so they compare equal to the paths df prints.
func NewWatchSet(watches []Watch) WatchSet {
	ws := make(WatchSet, len(watches))
	for _, w := range watches {
		mp := strings.TrimSpace(w.MountPoint)
		if mp == "" {
			continue
		}
		mp = path.Clean(mp)
		label := strings.TrimSpace(w.Label)
		if label == "" {
			label = path.Base(mp)
		}
		ws[mp] = label
	}
	return ws
}

// Contains reports whether mountPoint is watched.
func (ws WatchSet) Contains(mountPoint string) bool {
	_, ok := ws[mountPoint]
	return ok
}

// Label returns the usage-log label of mountPoint.
func (ws WatchSet) Label(mountPoint string) string {
	return ws[mountPoint]
}

// MountPoints returns the watched mount points in ascending order.
func (ws WatchSet) MountPoints() []string {
	out := make([]string, 0, len(ws))
	for mp := range ws {
		out = append(out, mp)
	}
	sort.Strings(out)
	return out
}

// Collector reports the df rows of watched mount points.
type Collector struct {
	Runner  command.Runner
	Timeout time.Duration
	Watch   WatchSet
}

// NewCollector returns a Collector for the given watch set with the default timeout.
func NewCollector(r command.Runner, watch WatchSet) *Collector {
	return &Collector{
		Runner:  r,
		Timeout: defaults.CollectorTimeout,
		Watch:   watch,
	}
}

// Collect runs df and returns one record per watched mount point found,
// in the order df reported them.
func (c *Collector) Collect(ctx context.Context, cycle status.Cycle) ([]Record, error) {
	out, err := command.Output(ctx, c.Runner, CommandSpec(c.Timeout))
	if err != nil {
		return nil, err
	}

	lines, err := file.NewParser(file.WithSkipHeader(1)).Lines(out)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCollector, "failed to split df output", err)
	}

	index := make(map[string]int)
	records := make([]Record, 0, len(c.Watch))
	for _, line := range lines {
		r, err := ParseLine(line)
		if err != nil {
			return nil, err
		}
		if !c.Watch.Contains(r.MountPoint) {
			continue
		}
		if i, dup := index[r.MountPoint]; dup {
			slog.Debug("duplicate mount point, keeping last row",
				slog.String("cycle", cycle.ID),
				slog.String("mountpoint", r.MountPoint))
			records[i] = r
			continue
		}
		index[r.MountPoint] = len(records)
		records = append(records, r)
	}

	if len(records) < len(c.Watch) {
		slog.Warn("watched mount points missing from df output",
			slog.String("cycle", cycle.ID),
			slog.Int("watched", len(c.Watch)),
			slog.Int("found", len(records)))
	}

	return records, nil
}

// ParseLine parses one "device size used available use% mountpoint" row.
// A mount point containing spaces spans the remaining columns.
func ParseLine(line string) (Record, error) {
	fields := strings.Fields(line)
	if len(fields) < minColumns {
		return Record{}, malformed(line, "expected at least 6 columns")
	}

	size, err := parseBlocks(fields[1])
	if err != nil {
		return Record{}, malformed(line, "size is not an integer")
	}

	used, err := parseBlocks(fields[2])
	if err != nil {
		return Record{}, malformed(line, "used is not an integer")
	}

	return Record{
		Device:     fields[0],
		MountPoint: strings.Join(fields[minColumns-1:], " "),
		Size:       size,
		Used:       used,
	}, nil
}

// parseBlocks strips one trailing unit letter and parses the rest.
func parseBlocks(s string) (int64, error) {
	if n := len(s); n > 0 && unicode.IsLetter(rune(s[n-1])) {
		s = s[:n-1]
	}
	return strconv.ParseInt(s, 10, 64)
}

func malformed(line, reason string) error {
	return errors.NewWithContext(errors.ErrCodeMalformedLine, "malformed disk usage line: "+reason,
		map[string]any{"line": line})
}
