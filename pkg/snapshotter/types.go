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

package snapshotter

import (
	"context"

	"github.com/NVIDIA/hoststatus/pkg/status"
)

// Snapshotter defines the interface for producing and publishing host status
// snapshots. One call to Measure is one collection cycle.
type Snapshotter interface {
	Measure(ctx context.Context) error
}

// SnapshotAssembler builds one snapshot for a cycle.
type SnapshotAssembler interface {
	Assemble(ctx context.Context, cycle status.Cycle) (*status.Snapshot, error)
}
