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

// Package config loads the reporter configuration file.
//
// The file is YAML (or JSON when it ends in .json). Unknown keys are
// rejected. Every field is optional:
//
//	host: brtx601
//	interval: 15s
//	cycle_timeout: 90s
//	output: s3://brtx-status
//	disks:
//	  - mountpoint: /srv/local1
//	    label: local1
//	usage:
//	  dir: /var/log/du
//	sources:
//	  partitions: false
//	timeouts:
//	  gpu: 30s
//	s3:
//	  endpoint: https://minio.example.com
//	  path_style: true
//
// Command line flags override file values.
package config
