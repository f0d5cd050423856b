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

package command

import (
	"context"
	"errors"
	"strings"

	cnserrors "github.com/NVIDIA/hoststatus/pkg/errors"
)

// maxStderrContext caps how much stderr is attached to an error.
const maxStderrContext = 512

// Output runs spec and returns its stdout. A start failure, timeout, non-zero
// exit, or blank stdout is reported as an ErrCodeCollector error.
func Output(ctx context.Context, r Runner, spec Spec) (string, error) {
	res, err := r.Run(ctx, spec)
	if err != nil {
		errCtx := map[string]any{"command": spec.String()}
		if res != nil {
			errCtx["stderr"] = truncate(res.Stderr)
		}
		if errors.Is(err, ErrTimeout) {
			errCtx["timeout"] = spec.Timeout.String()
			return "", cnserrors.WrapWithContext(cnserrors.ErrCodeCollector,
				"command timed out", err, errCtx)
		}
		return "", cnserrors.WrapWithContext(cnserrors.ErrCodeCollector,
			"command failed to run", err, errCtx)
	}

	if res.ExitCode != 0 {
		return "", cnserrors.NewWithContext(cnserrors.ErrCodeCollector,
			"command exited with non-zero status", map[string]any{
				"command":   spec.String(),
				"exit_code": res.ExitCode,
				"stderr":    truncate(res.Stderr),
			})
	}

	if strings.TrimSpace(res.Stdout) == "" {
		return "", cnserrors.NewWithContext(cnserrors.ErrCodeCollector,
			"command produced no output", map[string]any{
				"command": spec.String(),
			})
	}

	return res.Stdout, nil
}

func truncate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxStderrContext {
		return s[:maxStderrContext] + "..."
	}
	return s
}
