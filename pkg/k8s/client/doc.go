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

// Package client builds and caches Kubernetes clients for the ConfigMap output.
//
// Clients are cached per kubeconfig path so that a long running reporter
// reuses one connection pool across cycles:
//
//	clientset, config, err := client.GetKubeClient()
//	if err != nil {
//	    return fmt.Errorf("failed to get kubernetes client: %w", err)
//	}
//
// # Authentication Modes
//
// In-cluster (running as a Pod):
//   - Uses service account credentials from /var/run/secrets/kubernetes.io/serviceaccount/
//
// Out-of-cluster (running on a host):
//   - Checks the explicit kubeconfig path first, then KUBECONFIG
//   - Falls back to ~/.kube/config when it exists
//
// A failed build is not cached, so a host that boots before the API server is
// reachable recovers on a later cycle.
package client
