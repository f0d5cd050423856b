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
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/NVIDIA/hoststatus/pkg/defaults"
	"github.com/NVIDIA/hoststatus/pkg/errors"
)

const (
	// ContentTypeJSON is the content type of published snapshots.
	ContentTypeJSON = "application/json"
	// CacheControlNoCache makes intermediate caches revalidate every read.
	CacheControlNoCache = "no-cache"
)

// ObjectPutter is the subset of the S3 client used to publish snapshots.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Options configures the S3 client.
type S3Options struct {
	// Region overrides the region from the environment and shared config.
	Region string `json:"region,omitempty" yaml:"region,omitempty"`
	// Endpoint points the client at an S3-compatible store.
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	// PathStyle addresses buckets as endpoint/bucket instead of bucket.endpoint.
	PathStyle bool `json:"path_style,omitempty" yaml:"path_style,omitempty"`
	// AccessKeyID and SecretAccessKey select static credentials when both are set.
	AccessKeyID     string `json:"access_key_id,omitempty" yaml:"access_key_id,omitempty"`
	SecretAccessKey string `json:"secret_access_key,omitempty" yaml:"secret_access_key,omitempty"`
}

// NewS3Client builds an S3 client from the default credential chain and opts.
// SDK retries are disabled: a publish is a single attempt.
func NewS3Client(ctx context.Context, opts S3Options) (*s3.Client, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRetryer(func() aws.Retryer { return aws.NopRetryer{} }),
		awsconfig.WithHTTPClient(newHTTPClient()),
	}

	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}

	if opts.AccessKeyID != "" && opts.SecretAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "failed to load AWS configuration", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = opts.PathStyle
	}), nil
}

func newHTTPClient() *awshttp.BuildableClient {
	return awshttp.NewBuildableClient().
		WithDialerOptions(func(d *net.Dialer) {
			d.Timeout = defaults.HTTPConnectTimeout
		}).
		WithTransportOptions(func(t *http.Transport) {
			t.TLSHandshakeTimeout = defaults.HTTPTLSHandshakeTimeout
			t.ResponseHeaderTimeout = defaults.HTTPResponseHeaderTimeout
		})
}

// ObjectStoreWriter publishes each snapshot as one JSON object under its key.
// Every call overwrites the previous object; nothing is retried or buffered.
type ObjectStoreWriter struct {
	client ObjectPutter
	bucket string
	prefix string
}

// NewObjectStoreWriter creates a writer for bucket. Keys are placed under
// prefix when it is not empty.
func NewObjectStoreWriter(client ObjectPutter, bucket, prefix string) *ObjectStoreWriter {
	return &ObjectStoreWriter{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

// Key returns the object key for a snapshot key.
func (w *ObjectStoreWriter) Key(key string) string {
	if w.prefix == "" {
		return key
	}
	return path.Join(w.prefix, key)
}

// Serialize implements Serializer. snapshot must implement Keyed.
func (w *ObjectStoreWriter) Serialize(ctx context.Context, snapshot any) error {
	keyed, ok := snapshot.(Keyed)
	if !ok {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, "object store requires a keyed value",
			map[string]any{"type": fmt.Sprintf("%T", snapshot)})
	}
	key := w.Key(keyed.Key())

	body, err := marshalJSON(snapshot, false)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to encode snapshot", err)
	}

	_, err = w.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(w.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String(ContentTypeJSON),
		CacheControl:  aws.String(CacheControlNoCache),
	}, func(o *s3.Options) {
		o.Retryer = aws.NopRetryer{}
	})
	if err != nil {
		return errors.WrapWithContext(errors.ErrCodePublish, "failed to put object", err, map[string]any{
			"bucket": w.bucket,
			"key":    key,
		})
	}

	slog.Debug("object written",
		slog.String("bucket", w.bucket),
		slog.String("key", key),
		slog.Int("bytes", len(body)))
	return nil
}

// parseObjectStoreURI splits s3://bucket[/prefix] into bucket and prefix.
func parseObjectStoreURI(uri string) (bucket, prefix string, err error) {
	if !strings.HasPrefix(uri, ObjectStoreURIScheme) {
		return "", "", fmt.Errorf("invalid object store URI: must start with %s", ObjectStoreURIScheme)
	}

	rest := strings.TrimPrefix(uri, ObjectStoreURIScheme)
	bucket, prefix, _ = strings.Cut(rest, "/")
	bucket = strings.TrimSpace(bucket)
	if bucket == "" {
		return "", "", fmt.Errorf("invalid object store URI: bucket cannot be empty")
	}
	return bucket, strings.Trim(strings.TrimSpace(prefix), "/"), nil
}
