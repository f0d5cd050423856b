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
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// Spec describes one command invocation.
type Spec struct {
	// Name is the program to execute, looked up in PATH.
	Name string
	// Args are passed verbatim, one argument per element.
	Args []string
	// Timeout bounds the execution. Zero means only the parent context applies.
	Timeout time.Duration
}

// String renders the invocation for logs.
func (s Spec) String() string {
	if len(s.Args) == 0 {
		return s.Name
	}
	return s.Name + " " + strings.Join(s.Args, " ")
}

// Result is the captured outcome of a process that was started.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Runner executes commands.
type Runner interface {
	Run(ctx context.Context, spec Spec) (*Result, error)
}

// ErrTimeout is returned, wrapped, when a command exceeds its timeout.
var ErrTimeout = errors.New("command timed out")

// ExecRunner runs commands on the local machine with os/exec.
type ExecRunner struct{}

// NewExecRunner returns a Runner backed by os/exec.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run starts spec and waits for it to exit or for its timeout to expire.
// A non-zero exit yields a Result and a nil error. Failing to start, or being
// killed by the timeout or a canceled context, yields an error.
func (r *ExecRunner) Run(ctx context.Context, spec Spec) (*Result, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("command name cannot be empty")
	}

	runCtx := ctx
	if spec.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, spec.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, spec.Name, spec.Args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Do not hang on grandchildren holding the pipes after the kill.
	cmd.WaitDelay = time.Second

	start := time.Now()
	err := cmd.Run()
	res := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: cmd.ProcessState.ExitCode(),
		Duration: time.Since(start),
	}

	slog.Debug("command finished",
		slog.String("command", spec.String()),
		slog.Int("exit_code", res.ExitCode),
		slog.Duration("duration", res.Duration))

	if ctxErr := runCtx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) && ctx.Err() == nil {
			return res, fmt.Errorf("%w after %s: %s: %w", ErrTimeout, spec.Timeout, spec.Name, ctxErr)
		}
		return res, fmt.Errorf("command %s canceled: %w", spec.Name, ctxErr)
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return res, nil
		}
		return nil, fmt.Errorf("failed to run %s: %w", spec.Name, err)
	}

	return res, nil
}
