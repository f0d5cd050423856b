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

// Package server serves the operational endpoints of a running reporter.
//
// # Endpoints
//
//   - GET /health: always 200 while the process runs
//   - GET /ready: 200 once a snapshot has been published, 503 before
//   - GET /metrics: Prometheus exposition of the default registry
//
// Additional handlers passed with WithHandler run behind the middleware
// chain (metrics, request ID, panic recovery, rate limit, logging). The
// system endpoints bypass it.
//
// # Usage
//
//	srv := server.New(
//	    server.WithAddress(":9400"),
//	    server.WithVersion(version),
//	)
//	g.Go(func() error { return srv.Start(ctx) })
//	...
//	srv.SetReady(true)
//
// Start returns after ctx is canceled and the listener has been shut down
// within Config.ShutdownTimeout.
package server
