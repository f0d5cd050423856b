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

package collector

import (
	"context"

	"github.com/NVIDIA/hoststatus/pkg/status"
)

// Collector gathers one typed result per cycle.
type Collector[T any] interface {
	Collect(ctx context.Context, cycle status.Cycle) (T, error)
}

// Func adapts a function to Collector.
type Func[T any] func(ctx context.Context, cycle status.Cycle) (T, error)

// Collect implements Collector.
func (f Func[T]) Collect(ctx context.Context, cycle status.Cycle) (T, error) {
	return f(ctx, cycle)
}

// Disabled returns a Collector that reports the zero value of T.
func Disabled[T any]() Collector[T] {
	return Func[T](func(ctx context.Context, _ status.Cycle) (T, error) {
		var zero T
		return zero, ctx.Err()
	})
}

// UsageScanner returns the per-user usage breakdown of one watched disk.
type UsageScanner interface {
	Scan(ctx context.Context, host, label string) (*status.PerUser, error)
}
