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
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/hoststatus/pkg/status"
)

func testSnapshot() *status.Snapshot {
	return &status.Snapshot{
		Host:      "brtx601",
		Timestamp: 1760700000,
		GPUs: []status.GPU{
			{Utilization: 12.5, MemoryUsed: 1024, MemoryTotal: 81920, MemoryUnit: status.UnitMiB},
		},
		Disks: []status.Disk{
			{MountPoint: "/srv/local1", StorageUsed: 120, StorageTotal: 1800, StorageUnit: status.UnitGiB},
		},
		Memory:     status.Memory{MemoryUsed: 10, MemoryTotal: 62, MemoryUnit: status.UnitGiB},
		Swap:       status.Memory{MemoryUsed: 0, MemoryTotal: 7, MemoryUnit: status.UnitGiB},
		Load:       status.Load{NumCPUs: 32, LoadAvg1m: 0.5, LoadAvg5m: 1.2, LoadAvg15m: 0.75},
		Partitions: []string{},
	}
}

func TestWriter_SerializeJSON(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatJSON, &buf)

	if err := writer.Serialize(context.Background(), testSnapshot()); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	var result status.Snapshot
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}
	if result.Host != "brtx601" || result.Load.NumCPUs != 32 {
		t.Errorf("Unexpected data: %+v", result)
	}
	if !strings.Contains(buf.String(), "\n  \"host\"") {
		t.Errorf("expected indented JSON, got %s", buf.String())
	}
	if !strings.Contains(buf.String(), `"partitions": []`) {
		t.Errorf("expected empty partitions array, got %s", buf.String())
	}
}

func TestWriter_SerializeYAML(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatYAML, &buf)

	if err := writer.Serialize(context.Background(), testSnapshot()); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	var result status.Snapshot
	if err := yaml.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to unmarshal YAML: %v", err)
	}
	if result.Memory.MemoryTotal != 62 {
		t.Errorf("Unexpected data: %+v", result)
	}
}

func TestWriter_SerializeTable(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatTable, &buf)

	if err := writer.Serialize(context.Background(), testSnapshot()); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"FIELD",
		"host",
		"load.num_cpus",
		"gpus.[0].memory_unit",
		"disks.[0].mountpoint",
		"partitions",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestWriter_UnknownFormatDefaultsToJSON(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(Format("xml"), &buf)

	if err := writer.Serialize(context.Background(), map[string]int{"a": 1}); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if !json.Valid(buf.Bytes()) {
		t.Errorf("expected JSON output, got %q", buf.String())
	}
}

func TestWriter_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	if err := NewWriter(FormatJSON, &buf).Serialize(ctx, testSnapshot()); err == nil {
		t.Error("expected error for canceled context")
	}
	if buf.Len() != 0 {
		t.Error("nothing should be written for a canceled context")
	}
}

func TestFileWriter_ReplacesContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brtx601.json")
	writer := NewFileWriter(FormatJSON, path)

	snap := testSnapshot()
	if err := writer.Serialize(context.Background(), snap); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	snap.Timestamp++
	if err := writer.Serialize(context.Background(), snap); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	var result status.Snapshot
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("output is not a single JSON document: %v", err)
	}
	if result.Timestamp != 1760700001 {
		t.Errorf("Timestamp = %d, want the latest write", result.Timestamp)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected no leftover temporary files, found %d entries", len(entries))
	}
}

func TestFileWriter_MissingDirectory(t *testing.T) {
	writer := NewFileWriter(FormatJSON, filepath.Join(t.TempDir(), "missing", "out.json"))
	if err := writer.Serialize(context.Background(), testSnapshot()); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestMarshal_CompactJSON(t *testing.T) {
	b, err := Marshal(FormatJSON, testSnapshot(), false)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Count(b, []byte("\n")) != 1 {
		t.Errorf("expected a single line, got %q", b)
	}
	if !bytes.Contains(b, []byte(`"load_avg_1_m":0.5`)) {
		t.Errorf("float lost precision: %s", b)
	}
	if !bytes.Contains(b, []byte(`"memory_used":1024`)) {
		t.Errorf("integer not plain: %s", b)
	}
}

func TestFormat(t *testing.T) {
	if FormatJSON.IsUnknown() || FormatYAML.IsUnknown() || FormatTable.IsUnknown() {
		t.Error("known format reported unknown")
	}
	if !Format("csv").IsUnknown() {
		t.Error("csv should be unknown")
	}
	if FormatYAML.Extension() != "yaml" || FormatJSON.Extension() != "json" || FormatTable.Extension() != "txt" {
		t.Error("unexpected extensions")
	}
	if got := SupportedFormats(); len(got) != 3 {
		t.Errorf("SupportedFormats() = %v", got)
	}
}
