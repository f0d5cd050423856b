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

package status

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Cycle holds the process state captured once at the start of a collection
// cycle. Every collector and the assembler read host and time from here so
// that a snapshot is internally consistent even when collection spans seconds.
type Cycle struct {
	// ID correlates log lines of one cycle. It is not published.
	ID string
	// Host is the short host name.
	Host string
	// Timestamp is the cycle start in seconds since the epoch.
	Timestamp int64
}

// NewCycle captures a cycle for host at now.
func NewCycle(host string, now time.Time) Cycle {
	return Cycle{
		ID:        uuid.NewString(),
		Host:      host,
		Timestamp: now.Unix(),
	}
}

// ShortHostname returns the first label of name.
func ShortHostname(name string) string {
	host, _, _ := strings.Cut(strings.TrimSpace(name), ".")
	return host
}

// LocalHost returns override when set, otherwise the short name of the local machine.
func LocalHost(override string) (string, error) {
	if h := ShortHostname(override); h != "" {
		return h, nil
	}
	name, err := os.Hostname()
	if err != nil {
		return "", fmt.Errorf("failed to read hostname: %w", err)
	}
	host := ShortHostname(name)
	if host == "" {
		return "", fmt.Errorf("hostname %q has no usable label", name)
	}
	return host, nil
}
