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

import (
	"context"
	"strings"

	"github.com/NVIDIA/hoststatus/pkg/errors"
)

// Options configures the serializer selected by NewSerializer.
type Options struct {
	// Format applies to stdout, file and ConfigMap outputs. The object store
	// always receives compact JSON.
	Format Format
	// S3 configures the client for s3:// outputs.
	S3 S3Options
	// Kubeconfig is used for cm:// outputs. Empty means automatic discovery.
	Kubeconfig string
}

// NewSerializer returns the serializer for output:
//   - "" or "-" writes to stdout
//   - s3://bucket[/prefix] puts one object per snapshot
//   - cm://namespace/name applies one ConfigMap key per host
//   - anything else is a file path replaced on every write
func NewSerializer(ctx context.Context, output string, opts Options) (Serializer, error) {
	trimmed := strings.TrimSpace(output)

	switch {
	case trimmed == "" || trimmed == StdoutURI:
		return NewStdoutWriter(opts.Format), nil

	case strings.HasPrefix(trimmed, ObjectStoreURIScheme):
		bucket, prefix, err := parseObjectStoreURI(trimmed)
		if err != nil {
			return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "invalid output", err,
				map[string]any{"output": trimmed})
		}
		client, err := NewS3Client(ctx, opts.S3)
		if err != nil {
			return nil, err
		}
		return NewObjectStoreWriter(client, bucket, prefix), nil

	case strings.HasPrefix(trimmed, ConfigMapURIScheme):
		namespace, name, err := parseConfigMapURI(trimmed)
		if err != nil {
			return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "invalid output", err,
				map[string]any{"output": trimmed})
		}
		return NewConfigMapWriter(namespace, name, opts.Format).WithKubeconfig(opts.Kubeconfig), nil

	default:
		return NewFileWriter(opts.Format, trimmed), nil
	}
}
