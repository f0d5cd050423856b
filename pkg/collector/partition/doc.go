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

// Package partition reports the scheduler partitions a host belongs to.
//
// The collector asks Slurm for the partitions of the current node only:
//
//	sinfo --noheader --nodes=<host> --format=%R
//
// %R prints the bare partition name, so the default partition carries no
// trailing asterisk. Output order is kept and duplicate names are not removed.
package partition
