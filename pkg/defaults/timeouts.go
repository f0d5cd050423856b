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

package defaults

import "time"

// Collector timeouts for external command execution.
const (
	// CollectorTimeout is the default timeout for a single inspection command.
	// Collectors respect parent context deadlines when shorter.
	CollectorTimeout = 5 * time.Second

	// CollectorGPUTimeout is the timeout for the GPU query. Driver queries
	// can stall for several seconds on busy or degraded devices.
	CollectorGPUTimeout = 30 * time.Second
)

// Cycle timing for the update loop.
const (
	// UpdateInterval is the default time between collection cycles.
	UpdateInterval = 15 * time.Second

	// CycleTimeout bounds one full collect, assemble and publish cycle.
	// Must exceed CollectorGPUTimeout plus PublishTimeout.
	CycleTimeout = 90 * time.Second
)

// Publish timeouts for snapshot destinations.
const (
	// PublishTimeout is the timeout for one object-store write.
	PublishTimeout = 30 * time.Second

	// ConfigMapWriteTimeout is the timeout for writing to ConfigMaps.
	ConfigMapWriteTimeout = 30 * time.Second
)

// Server timeouts for the health and metrics endpoint.
const (
	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerReadTimeout is the maximum duration for reading a request.
	ServerReadTimeout = 10 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 10 * time.Second
)

// HTTP client timeouts for the object-store client.
const (
	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPResponseHeaderTimeout is the timeout for reading response headers.
	HTTPResponseHeaderTimeout = 10 * time.Second
)
