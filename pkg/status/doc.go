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


// Package status defines the Status Snapshot published once per collection
// cycle, and the per-cycle context captured before any command runs.
//
// The schema uses explicit unit tags on every numeric storage field:
// GPU memory in MiB, disk storage in GiB, and system memory in GiB.
// A snapshot is keyed in the object store as "<host>.json".
package status
