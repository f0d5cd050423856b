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

package usage

import (
	"context"
	"fmt"

	"golang.org/x/sys/unix"
)

// OwnerResolver returns the uid owning a path.
type OwnerResolver interface {
	Owner(ctx context.Context, path string) (uint32, error)
}

// StatResolver resolves owners with stat(2).
type StatResolver struct{}

// Owner implements OwnerResolver.
func (StatResolver) Owner(_ context.Context, path string) (uint32, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return 0, fmt.Errorf("failed to stat %q: %w", path, err)
	}
	return st.Uid, nil
}

// OwnerFunc adapts a function to OwnerResolver.
type OwnerFunc func(ctx context.Context, path string) (uint32, error)

// Owner implements OwnerResolver.
func (f OwnerFunc) Owner(ctx context.Context, path string) (uint32, error) {
	return f(ctx, path)
}
