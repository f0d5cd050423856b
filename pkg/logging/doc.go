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

// Package logging configures the process-wide slog logger.
//
// Every record is a JSON object on stderr carrying the module name and
// build version, so lines from many hosts can be merged and filtered:
//
//	{"time":"2026-10-17T10:30:00Z","level":"INFO","msg":"snapshot published",
//	 "module":"hoststatus","version":"v0.3.0","cycle":"6f1c...","key":"brtx601.json"}
//
// # Levels
//
// debug, info (default), warn or warning, error. Matching is
// case-insensitive and unknown names fall back to info. Debug records also
// carry the source location.
//
// # Usage
//
//	logging.SetDefaultStructuredLoggerWithLevel("hoststatus", version, cmd.String("log-level"))
//	slog.Info("reporting host status", slog.String("host", host))
//
// An empty level reads LOG_LEVEL. NewLogLogger bridges libraries that only
// accept a *log.Logger.
package logging
