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

// Package memory reports physical memory and swap usage in GiB.
//
// The collector runs free with a fixed GiB unit:
//
//	free -g
//
//	               total        used        free      shared  buff/cache   available
//	Mem:              62          10          40           1          12          51
//	Swap:              7           0           7
//
// The header row is skipped and every other row becomes a Record named after
// its first column, lower-cased and without the trailing colon ("mem", "swap").
// Splitting the records into the memory and swap slots of a snapshot is left
// to the assembler, which requires exactly one of each.
package memory
