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

package serializer

import "context"

// URI schemes recognized by NewSerializer.
const (
	// ConfigMapURIScheme selects a Kubernetes ConfigMap: cm://namespace/name.
	ConfigMapURIScheme = "cm://"
	// ObjectStoreURIScheme selects an S3 bucket: s3://bucket[/prefix].
	ObjectStoreURIScheme = "s3://"
	// StdoutURI selects standard output explicitly.
	StdoutURI = "-"
)

// Serializer is an interface for publishing snapshot data.
// Implementations write to stdout, files, object stores or ConfigMaps.
//
// The context parameter is used for cancellation and timeouts, particularly
// important for implementations that perform network I/O.
type Serializer interface {
	Serialize(ctx context.Context, snapshot any) error
}

// Closer is an optional interface that Serializers can implement
// if they need to release resources (e.g., close file handles).
type Closer interface {
	Close() error
}

// Keyed is implemented by values that know their storage key, such as
// status.Snapshot whose key is "<host>.json".
type Keyed interface {
	Key() string
}
