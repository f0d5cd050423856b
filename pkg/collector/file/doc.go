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


// Package file splits command output and small text files into lines.
//
// Every collector hands the raw stdout of its command to a Parser before the
// per-line field parsers see it. The Parser trims whitespace, drops blank
// lines, and can skip a fixed number of header lines:
//
//	p := file.NewParser(file.WithSkipHeader(1))
//	rows, err := p.Lines(stdout)
//
// Files are read the same way, with a size cap and UTF-8 validation:
//
//	lines, err := file.NewParser().GetLines("/var/log/disk-usage/host_local1_2026-10-16.log")
//
// # Error Handling
//
// Errors are wrapped with descriptive context:
//
//	lines, err := p.GetLines("/nonexistent")
//	// Error: failed to read file "/nonexistent": no such file or directory
//
// # Thread Safety
//
// A Parser is immutable after construction and safe for concurrent use.
package file
