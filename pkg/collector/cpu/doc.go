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

// Package cpu reports the logical CPU count and the system load averages.
//
// Two collectors live here because the snapshot merges their results into a
// single load record:
//
//   - CountCollector runs lscpu and reads the one line starting with "CPU(s):".
//   - LoadCollector runs uptime and reads the last three tokens of its line.
//
// Example inputs:
//
//	CPU(s):                          32
//
//	10:00:00 up 3 days,  2:03,  4 users,  load average: 0.50, 1.20, 0.75
//
// lscpu output must contain exactly one CPU(s): line. None, or several,
// is reported as ErrCodeAssemblyInvariant since the count would be ambiguous.
package cpu
