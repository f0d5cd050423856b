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

package client

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"
)

// Interface is an alias for kubernetes.Interface to allow easier mocking in tests.
// This enables using fake.NewSimpleClientset() which returns kubernetes.Interface.
type Interface = kubernetes.Interface

// UserAgent identifies API requests made by this binary.
const UserAgent = "hoststatus"

type cachedClient struct {
	client Interface
	config *rest.Config
}

var (
	cacheMu sync.Mutex
	cache   = map[string]cachedClient{}
)

// GetKubeClient returns a shared Kubernetes client using automatic discovery.
//
// The client automatically discovers configuration from:
//   - KUBECONFIG environment variable
//   - ~/.kube/config (default location)
//   - In-cluster service account (when running as Kubernetes Pod)
func GetKubeClient() (Interface, *rest.Config, error) {
	return GetKubeClientWithConfig("")
}

// GetKubeClientWithConfig returns a shared client for kubeconfig, building it
// on first use. Clients are cached per kubeconfig path so a long running
// process reuses connections across cycles. Failures are not cached: the next
// call tries again, which lets the process recover once the API is reachable.
func GetKubeClientWithConfig(kubeconfig string) (Interface, *rest.Config, error) {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if c, ok := cache[kubeconfig]; ok {
		return c.client, c.config, nil
	}

	cs, config, err := BuildKubeClient(kubeconfig)
	if err != nil {
		return nil, nil, err
	}
	cache[kubeconfig] = cachedClient{client: cs, config: config}
	return cs, config, nil
}

// BuildKubeClient creates a new, uncached Kubernetes client.
//
// Parameters:
//   - kubeconfig: Path to kubeconfig file. If empty, uses automatic discovery:
//     1. KUBECONFIG environment variable
//     2. ~/.kube/config (if it exists)
//     3. In-cluster configuration (service account)
func BuildKubeClient(kubeconfig string) (*kubernetes.Clientset, *rest.Config, error) {
	var config *rest.Config
	var err error

	kubeconfig = resolveKubeconfig(kubeconfig)

	// Use InClusterConfig directly when no kubeconfig is available
	// This avoids the warning: "Neither --kubeconfig nor --master was specified"
	if kubeconfig == "" {
		config, err = rest.InClusterConfig()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get in-cluster config: %w", err)
		}
	} else {
		config, err = clientcmd.BuildConfigFromFlags("", kubeconfig)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to build kube config from %s: %w", kubeconfig, err)
		}
	}

	config.UserAgent = UserAgent

	client, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	return client, config, nil
}

// resolveKubeconfig returns explicit, then $KUBECONFIG, then ~/.kube/config
// when it exists, or "" to select in-cluster configuration.
func resolveKubeconfig(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv("KUBECONFIG"); env != "" {
		return env
	}
	home := filepath.Join(homedir.HomeDir(), ".kube", "config")
	if _, err := os.Stat(home); err == nil {
		return home
	}
	return ""
}

// resetCache drops all cached clients.
func resetCache() {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	cache = map[string]cachedClient{}
}
