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

package usage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/NVIDIA/hoststatus/pkg/collector/file"
	"github.com/NVIDIA/hoststatus/pkg/errors"
	"github.com/NVIDIA/hoststatus/pkg/status"
)

const (
	// DateLayout is the date format embedded in log file names.
	DateLayout = "2006-01-02"

	logSuffix  = ".log"
	maxLogSize = 64 << 20
)

// Entry is one parsed usage log line.
type Entry struct {
	GiB int64
	Dir string
}

// Scanner reads per-user usage logs from Dir.
type Scanner struct {
	Dir      string
	Resolver OwnerResolver
}

// NewScanner returns a Scanner over dir that resolves owners with stat(2).
func NewScanner(dir string) *Scanner {
	return &Scanner{
		Dir:      dir,
		Resolver: StatResolver{},
	}
}

// Scan returns the per-uid usage of the newest log for host and label.
func (s *Scanner) Scan(ctx context.Context, host, label string) (*status.PerUser, error) {
	res := &status.PerUser{StorageUsed: map[string]int64{}}

	path, date, err := s.Latest(host, label)
	if err != nil {
		return nil, err
	}
	if path == "" {
		slog.Debug("no usage log found",
			slog.String("dir", s.Dir),
			slog.String("host", host),
			slog.String("label", label))
		return res, nil
	}

	lines, err := file.NewParser(file.WithMaxSize(maxLogSize)).GetLines(path)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeCollector, "failed to read usage log", err,
			map[string]any{"path": path})
	}

	for _, line := range lines {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		e, err := ParseLine(line)
		if err != nil {
			slog.Debug("skipping usage log line", slog.String("path", path), slog.String("error", err.Error()))
			continue
		}

		uid, err := s.Resolver.Owner(ctx, e.Dir)
		if err != nil {
			slog.Debug("skipping unresolved directory", slog.String("dir", e.Dir), slog.String("error", err.Error()))
			continue
		}
		res.StorageUsed[strconv.FormatUint(uint64(uid), 10)] += e.GiB
	}

	res.DateUpdated = date.Format(DateLayout)
	return res, nil
}

// Latest returns the path and date of the most recently dated log for host
// and label, or an empty path when none exists.
func (s *Scanner) Latest(host, label string) (string, time.Time, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", time.Time{}, nil
		}
		return "", time.Time{}, errors.WrapWithContext(errors.ErrCodeCollector, "failed to list usage log directory", err,
			map[string]any{"dir": s.Dir})
	}

	prefix := fmt.Sprintf("%s_%s_", host, label)

	var (
		latest     string
		latestDate time.Time
	)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, logSuffix) {
			continue
		}
		date, err := time.Parse(DateLayout, strings.TrimSuffix(strings.TrimPrefix(name, prefix), logSuffix))
		if err != nil {
			continue
		}
		if latest == "" || date.After(latestDate) {
			latest = filepath.Join(s.Dir, name)
			latestDate = date
		}
	}
	return latest, latestDate, nil
}

// ParseLine parses a "<GiB>[G] <directory>" line. The directory may contain spaces.
func ParseLine(line string) (Entry, error) {
	line = strings.TrimSpace(line)
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return Entry{}, malformed(line, "expected size and directory")
	}

	sizeTok := strings.TrimSuffix(line[:i], "G")
	dir := strings.TrimSpace(line[i:])

	gib, err := strconv.ParseInt(sizeTok, 10, 64)
	if err != nil || gib < 0 {
		return Entry{}, malformed(line, "size is not a non-negative integer")
	}
	if dir == "" {
		return Entry{}, malformed(line, "directory is empty")
	}

	return Entry{GiB: gib, Dir: dir}, nil
}

func malformed(line, reason string) error {
	return errors.NewWithContext(errors.ErrCodeMalformedLine, "malformed usage log line: "+reason,
		map[string]any{"line": line})
}
