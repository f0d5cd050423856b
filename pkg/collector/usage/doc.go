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

// Package usage attributes disk usage of watched mount points to owners.
//
// An external job (typically a nightly du run) writes one log per host and
// disk label into a shared directory:
//
//	<dir>/<host>_<label>_<YYYY-MM-DD>.log
//
// Each line holds a size in GiB, optionally suffixed with G, and a directory:
//
//	120G	/srv/local1/alice
//	3G	/srv/local1/bob
//
// Scan picks the most recently dated log for a host and label, resolves the
// owner uid of every listed directory through an OwnerResolver and sums the
// sizes per uid. The date of the log becomes DateUpdated.
//
// The logs are produced by another process and read best effort: malformed
// lines and directories whose owner cannot be resolved are skipped. A missing
// log, or a missing log directory, yields an empty breakdown without a date.
//
// # Testing
//
// StatResolver reads owners from the filesystem. Tests supply their own
// OwnerResolver so that no real directories or uids are needed.
package usage
