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


// Package command runs external inspection tools as argument vectors with a
// bounded timeout and captures their stdout, stderr and exit code.
//
// Commands are never passed through a shell. A Runner returns a Result for
// every process that started, including ones that exited non-zero; deciding
// whether that is a failure is left to the caller.
//
// FakeRunner serves canned results keyed by command name so collectors can be
// tested without the real tools installed.
package command
