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


// Package defaults provides centralized configuration constants for hoststatus.
//
// This package defines timeout values and loop timing used across the codebase.
// Centralizing these values ensures consistency and makes tuning easier.
//
// # Timeout Categories
//
//   - Collector timeouts: for each external inspection command
//   - Cycle timing: for the update loop and a whole collection cycle
//   - Publish timeouts: for object-store and ConfigMap writes
//   - Server timeouts: for the health and metrics endpoint
//   - HTTP client timeouts: for the object-store HTTP transport
//
// # Usage
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.CollectorTimeout)
//	defer cancel()
//
// # Timeout Guidelines
//
//   - Commands: 5s, except the GPU query at 30s
//   - Publish: 30s, never retried within a cycle
//   - Cycle: long enough to absorb the slowest command plus a publish
package defaults
