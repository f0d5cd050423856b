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

// Package disk reports capacity and usage of watched mount points.
//
// The collector runs df in POSIX mode with a fixed GiB block size so that each
// filesystem is exactly one row:
//
//	df -P -BG
//
//	Filesystem     1G-blocks  Used Available Capacity Mounted on
//	/dev/nvme0n1p1     1800G  120G     1680G       7% /srv/local1
//
// The header row is skipped. Each remaining row is parsed by ParseLine; the
// unit suffix on the size and used columns is stripped before the integer cast.
//
// # Watch Set
//
// Only mount points listed in the WatchSet reach the assembler. Every watched
// mount carries a label, used to locate its per-user usage logs. When the
// label is not configured it defaults to the last path element of the mount
// point, so /srv/local1 is labeled local1.
//
// When df reports the same watched mount point more than once (an overmount),
// the last row wins, matching what a path lookup on the host would resolve to.
package disk
