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
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type readerConfig struct {
	Name     string        `json:"name" yaml:"name"`
	Interval time.Duration `json:"interval" yaml:"interval"`
	Tags     []string      `json:"tags" yaml:"tags"`
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFromPath("/etc/x/config.JSON"))
	assert.Equal(t, FormatYAML, FormatFromPath("config.yml"))
	assert.Equal(t, FormatYAML, FormatFromPath("config.yaml"))
	assert.Equal(t, FormatYAML, FormatFromPath("config"))
}

func TestFromFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: a\ninterval: 15s\ntags: [x, y]\n"), 0o600))

	cfg, err := FromFile[readerConfig](path)
	require.NoError(t, err)
	assert.Equal(t, "a", cfg.Name)
	assert.Equal(t, 15*time.Second, cfg.Interval)
	assert.Equal(t, []string{"x", "y"}, cfg.Tags)
}

func TestDecodeFile_KeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: b\n"), 0o600))

	cfg := readerConfig{Interval: time.Minute}
	require.NoError(t, DecodeFile(path, &cfg))
	assert.Equal(t, "b", cfg.Name)
	assert.Equal(t, time.Minute, cfg.Interval)
}

func TestDecodeFile_EmptyYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	cfg := readerConfig{Name: "default"}
	require.NoError(t, DecodeFile(path, &cfg))
	assert.Equal(t, "default", cfg.Name)
}

func TestDecodeFile_UnknownField(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("nmae: typo\n"), 0o600))
	err := DecodeFile(yamlPath, &readerConfig{})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "nmae"), err.Error())

	jsonPath := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"nmae":"typo"}`), 0o600))
	assert.Error(t, DecodeFile(jsonPath, &readerConfig{}))
}

func TestDecodeFile_Missing(t *testing.T) {
	_, err := FromFile[readerConfig](filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open file")
}

func TestDecode_Table(t *testing.T) {
	assert.Error(t, Decode(FormatTable, strings.NewReader(""), &readerConfig{}))
}
