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
	"fmt"
	"log/slog"
	"strings"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	accorev1 "k8s.io/client-go/applyconfigurations/core/v1"

	"github.com/NVIDIA/hoststatus/pkg/defaults"
	"github.com/NVIDIA/hoststatus/pkg/errors"
	"github.com/NVIDIA/hoststatus/pkg/k8s/client"
)

// fieldManagerPrefix is combined with the data key so that every host owns
// only its own entry of a shared ConfigMap.
const fieldManagerPrefix = "hoststatus-"

// ConfigMapWriter writes each snapshot into one data key of a Kubernetes
// ConfigMap. Many hosts can share one ConfigMap: each host applies only its
// own key with its own field manager.
type ConfigMapWriter struct {
	namespace  string
	name       string
	format     Format
	kubeconfig string
	client     client.Interface
}

// NewConfigMapWriter creates a new ConfigMapWriter that writes to the specified
// namespace and ConfigMap name in the given format.
func NewConfigMapWriter(namespace, name string, format Format) *ConfigMapWriter {
	return &ConfigMapWriter{
		namespace: namespace,
		name:      name,
		format:    knownOrJSON(format),
	}
}

// WithKubeconfig sets the kubeconfig used to build the client.
func (w *ConfigMapWriter) WithKubeconfig(path string) *ConfigMapWriter {
	w.kubeconfig = path
	return w
}

// WithClient sets the Kubernetes client, bypassing kubeconfig discovery.
func (w *ConfigMapWriter) WithClient(c client.Interface) *ConfigMapWriter {
	w.client = c
	return w
}

// Serialize applies the snapshot under data key "<host>.<ext>".
func (w *ConfigMapWriter) Serialize(ctx context.Context, snapshot any) error {
	// Create context with timeout for Kubernetes API operations
	writeCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapWriteTimeout)
	defer cancel()

	keyed, ok := snapshot.(Keyed)
	if !ok {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, "ConfigMap output requires a keyed value",
			map[string]any{"type": fmt.Sprintf("%T", snapshot)})
	}

	cs, err := w.kubeClient()
	if err != nil {
		return errors.Wrap(errors.ErrCodePublish, "failed to get kubernetes client", err)
	}

	cm, dataKey, err := w.applyConfig(keyed.Key(), snapshot)
	if err != nil {
		return err
	}

	slog.Debug("applying ConfigMap",
		"namespace", w.namespace,
		"name", w.name,
		"key", dataKey,
		"format", w.format)

	_, err = cs.CoreV1().ConfigMaps(w.namespace).Apply(writeCtx, cm, metav1.ApplyOptions{
		FieldManager: fieldManagerPrefix + strings.TrimSuffix(dataKey, "."+w.format.Extension()),
		Force:        true,
	})
	if err != nil {
		return errors.WrapWithContext(errors.ErrCodePublish, "failed to apply ConfigMap", err, map[string]any{
			"namespace": w.namespace,
			"name":      w.name,
			"key":       dataKey,
		})
	}
	return nil
}

func (w *ConfigMapWriter) kubeClient() (client.Interface, error) {
	if w.client != nil {
		return w.client, nil
	}
	cs, _, err := client.GetKubeClientWithConfig(w.kubeconfig)
	return cs, err
}

// applyConfig builds the apply configuration holding only this snapshot's key.
func (w *ConfigMapWriter) applyConfig(key string, snapshot any) (*accorev1.ConfigMapApplyConfiguration, string, error) {
	content, err := Marshal(w.format, snapshot, false)
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInternal, "failed to encode snapshot", err)
	}

	dataKey := strings.TrimSuffix(key, ".json") + "." + w.format.Extension()

	cm := accorev1.ConfigMap(w.name, w.namespace).
		WithLabels(map[string]string{
			"app.kubernetes.io/name":       "hoststatus",
			"app.kubernetes.io/managed-by": "hoststatus",
		}).
		WithData(map[string]string{
			dataKey: string(content),
		})
	return cm, dataKey, nil
}

// Close is a no-op for ConfigMapWriter as there are no resources to release.
// This method exists to satisfy the Closer interface.
func (w *ConfigMapWriter) Close() error {
	return nil
}

// parseConfigMapURI parses a ConfigMap URI in the format cm://namespace/name
// and returns the namespace and name components.
// Returns an error if the URI is malformed.
func parseConfigMapURI(uri string) (namespace, name string, err error) {
	if !strings.HasPrefix(uri, ConfigMapURIScheme) {
		return "", "", fmt.Errorf("invalid ConfigMap URI: must start with %s", ConfigMapURIScheme)
	}

	// Remove cm:// prefix
	path := strings.TrimPrefix(uri, ConfigMapURIScheme)

	// Split into namespace/name
	parts := strings.SplitN(path, "/", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid ConfigMap URI format: expected %snamespace/name, got %s", ConfigMapURIScheme, uri)
	}

	namespace = strings.TrimSpace(parts[0])
	name = strings.TrimSpace(parts[1])

	if namespace == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: namespace cannot be empty")
	}
	if name == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: name cannot be empty")
	}

	return namespace, name, nil
}
