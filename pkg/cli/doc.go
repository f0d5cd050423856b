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

// Package cli implements the hoststatus command line.
//
// # Commands
//
// run - Publish a snapshot of this host on an interval:
//
//	hoststatus run --disk /srv/local1 --disk /srv/local2 --output s3://brtx-status
//
// Each cycle collects GPU, disk, memory, CPU load and partition status,
// assembles one snapshot and replaces the host's object. A failed cycle
// publishes nothing and the loop continues. SIGINT or SIGTERM stops the loop
// and abandons an in-flight cycle. Under systemd the command reports
// READY=1, WATCHDOG=1 after each published snapshot, and STOPPING=1.
//
// snapshot - Run one cycle and print the result:
//
//	hoststatus snapshot --disk /srv/local1 --format table
//
// # Configuration
//
// Values are resolved in this order, later wins:
//   - built-in defaults
//   - the file given with --config (HOSTSTATUS_CONFIG)
//   - HOSTSTATUS_* environment variables
//   - command line flags
//
// # Outputs
//
//	s3://bucket[/prefix]   one object per host, key <host>.json
//	cm://namespace/name    one ConfigMap data key per host
//	path                   a local file replaced atomically
//	-                      stdout
//
// # Exit Codes
//
//	0  Success
//	1  Configuration error, or a failed cycle with run --once or snapshot
package cli
