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

// Package gpu reports per-device utilization and framebuffer memory.
//
// The collector runs nvidia-smi in query mode, one CSV row per device in
// enumeration order:
//
//	nvidia-smi --query-gpu=utilization.gpu,memory.used,memory.total --format=csv,noheader,nounits
//
// Example output for a two GPU host:
//
//	12, 1024, 81920
//	0, 3, 81920
//
// Each row becomes a status.GPU with utilization in percent and memory in MiB.
//
// # Usage
//
//	c := gpu.NewCollector(command.NewExecRunner())
//	gpus, err := c.Collect(ctx, cycle)
//
// # Failure Modes
//
// A missing driver, a non-zero exit, a stalled query past the timeout or empty
// output is reported as an ErrCodeCollector error. A row that does not carry
// three numeric columns is reported as ErrCodeMalformedLine. Either aborts the
// cycle; no partial GPU list is ever returned.
//
// Driver queries can stall for several seconds while devices wake up, so the
// default timeout is defaults.CollectorGPUTimeout rather than the shorter
// timeout used by the other collectors.
package gpu
