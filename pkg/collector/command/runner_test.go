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
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cnserrors "github.com/NVIDIA/hoststatus/pkg/errors"
)

func requireTool(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not available: %v", name, err)
	}
}

func TestSpec_String(t *testing.T) {
	assert.Equal(t, "uptime", Spec{Name: "uptime"}.String())
	assert.Equal(t, "df -P -BG", Spec{Name: "df", Args: []string{"-P", "-BG"}}.String())
}

func TestExecRunner_Success(t *testing.T) {
	requireTool(t, "echo")

	res, err := NewExecRunner().Run(context.Background(), Spec{
		Name:    "echo",
		Args:    []string{"hello", "$HOME"},
		Timeout: 5 * time.Second,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	// Arguments are not shell-expanded.
	assert.Equal(t, "hello $HOME\n", res.Stdout)
}

func TestExecRunner_NonZeroExit(t *testing.T) {
	requireTool(t, "false")

	res, err := NewExecRunner().Run(context.Background(), Spec{Name: "false", Timeout: 5 * time.Second})
	require.NoError(t, err)
	assert.NotEqual(t, 0, res.ExitCode)
}

func TestExecRunner_Timeout(t *testing.T) {
	requireTool(t, "sleep")

	start := time.Now()
	_, err := NewExecRunner().Run(context.Background(), Spec{
		Name:    "sleep",
		Args:    []string{"10"},
		Timeout: 100 * time.Millisecond,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTimeout))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestExecRunner_ParentCanceled(t *testing.T) {
	requireTool(t, "sleep")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewExecRunner().Run(ctx, Spec{Name: "sleep", Args: []string{"10"}, Timeout: time.Minute})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrTimeout))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestExecRunner_MissingBinary(t *testing.T) {
	_, err := NewExecRunner().Run(context.Background(), Spec{Name: "definitely-not-a-real-tool-xyz"})
	require.Error(t, err)
}

func TestExecRunner_EmptyName(t *testing.T) {
	_, err := NewExecRunner().Run(context.Background(), Spec{})
	require.Error(t, err)
}

func TestOutput(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(f *FakeRunner)
		wantOut    string
		wantErr    bool
		wantCtxKey string
	}{
		{
			name:    "stdout returned",
			setup:   func(f *FakeRunner) { f.SetOutput("tool", "line\n") },
			wantOut: "line\n",
		},
		{
			name: "non-zero exit",
			setup: func(f *FakeRunner) {
				f.SetResult("tool", &Result{Stdout: "partial", Stderr: "boom", ExitCode: 9})
			},
			wantErr:    true,
			wantCtxKey: "exit_code",
		},
		{
			name:       "blank stdout",
			setup:      func(f *FakeRunner) { f.SetOutput("tool", " \n\n") },
			wantErr:    true,
			wantCtxKey: "command",
		},
		{
			name:       "timeout",
			setup:      func(f *FakeRunner) { f.SetError("tool", ErrTimeout) },
			wantErr:    true,
			wantCtxKey: "timeout",
		},
		{
			name:       "start failure",
			setup:      func(f *FakeRunner) { f.SetError("tool", errors.New("not found")) },
			wantErr:    true,
			wantCtxKey: "command",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFakeRunner()
			tt.setup(f)

			out, err := Output(context.Background(), f, Spec{Name: "tool", Args: []string{"-x"}, Timeout: time.Second})
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, tt.wantOut, out)
				return
			}

			require.Error(t, err)
			assert.True(t, cnserrors.HasCode(err, cnserrors.ErrCodeCollector))
			var se *cnserrors.StructuredError
			require.True(t, errors.As(err, &se))
			assert.Contains(t, se.Context, tt.wantCtxKey)
			assert.Equal(t, "tool -x", se.Context["command"])
		})
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("x", maxStderrContext+10)
	got := truncate(long)
	assert.Len(t, got, maxStderrContext+3)
	assert.Equal(t, "short", truncate(" short\n"))
}

func TestFakeRunner_RecordsCalls(t *testing.T) {
	f := NewFakeRunner().SetOutput("a", "1").SetOutput("b", "2")

	_, err := f.Run(context.Background(), Spec{Name: "a"})
	require.NoError(t, err)
	_, err = f.Run(context.Background(), Spec{Name: "b", Args: []string{"--x"}})
	require.NoError(t, err)
	_, err = f.Run(context.Background(), Spec{Name: "missing"})
	require.Error(t, err)

	assert.Len(t, f.Calls(), 3)
	spec, ok := f.Called("b")
	require.True(t, ok)
	assert.Equal(t, []string{"--x"}, spec.Args)
	_, ok = f.Called("c")
	assert.False(t, ok)
}
