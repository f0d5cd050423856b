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

// Package serializer publishes snapshots and encodes them in several formats.
//
// Outputs are selected by URI through NewSerializer:
//   - s3://bucket[/prefix]: one PutObject per snapshot under "<host>.json"
//     with Content-Type application/json and Cache-Control no-cache
//   - cm://namespace/name: server-side apply of one ConfigMap data key per host
//   - a file path: the file is atomically replaced on every write
//   - "" or "-": stdout
//
// Usage:
//
//	s, err := serializer.NewSerializer(ctx, "s3://brtx-status", serializer.Options{
//		Format: serializer.FormatJSON,
//		S3:     serializer.S3Options{Region: "us-east-1"},
//	})
//	if err != nil {
//		return err
//	}
//	if err := s.Serialize(ctx, snap); err != nil {
//		return err
//	}
//
// The object store writer makes exactly one attempt per call. SDK retries are
// disabled; a failed put is returned as an ErrCodePublish error and the
// previous object stays in place.
//
// Human-readable outputs support three formats:
//   - JSON: indented structured data
//   - YAML: configuration style output
//   - Table: flattened FIELD/VALUE rows keyed by JSON path
//
// Configuration files are read with FromFile and DecodeFile, which detect
// the format from the file extension.
//
// For HTTP responses:
//
//	serializer.RespondJSON(w, http.StatusOK, data)
package serializer
