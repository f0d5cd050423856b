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
	"fmt"
	"sync"
)

// FakeRunner returns canned results keyed by command name and records every call.
type FakeRunner struct {
	mu      sync.Mutex
	results map[string]*Result
	errs    map[string]error
	calls   []Spec
}

// NewFakeRunner returns an empty FakeRunner.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		results: make(map[string]*Result),
		errs:    make(map[string]error),
	}
}

// SetOutput makes name exit zero with stdout.
func (f *FakeRunner) SetOutput(name, stdout string) *FakeRunner {
	return f.SetResult(name, &Result{Stdout: stdout})
}

// SetResult makes name return res.
func (f *FakeRunner) SetResult(name string, res *Result) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[name] = res
	return f
}

// SetError makes name fail to run with err.
func (f *FakeRunner) SetError(name string, err error) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[name] = err
	return f
}

// Run implements Runner.
func (f *FakeRunner) Run(ctx context.Context, spec Spec) (*Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, spec)
	res, hasRes := f.results[spec.Name]
	err := f.errs[spec.Name]
	f.mu.Unlock()

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		return nil, err
	}
	if !hasRes {
		return nil, fmt.Errorf("failed to run %s: executable file not found", spec.Name)
	}
	cp := *res
	return &cp, nil
}

// Calls returns the specs passed to Run, in call order.
func (f *FakeRunner) Calls() []Spec {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Spec, len(f.calls))
	copy(out, f.calls)
	return out
}

// Called returns the spec of the last call to name.
func (f *FakeRunner) Called(name string) (Spec, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.calls) - 1; i >= 0; i-- {
		if f.calls[i].Name == name {
			return f.calls[i], true
		}
	}
	return Spec{}, false
}
