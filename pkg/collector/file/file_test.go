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

package file

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewParser(t *testing.T) {
	tests := []struct {
		name                 string
		opts                 []Option
		expectedDelimiter    string
		expectedMaxSize      int
		expectedSkipComments bool
		expectedSkipHeader   int
	}{
		{
			name:              "default options",
			opts:              nil,
			expectedDelimiter: "\n",
			expectedMaxSize:   1 << 20, // 1MB
		},
		{
			name:              "custom max size",
			opts:              []Option{WithMaxSize(1024)},
			expectedDelimiter: "\n",
			expectedMaxSize:   1024,
		},
		{
			name: "all options",
			opts: []Option{
				WithDelimiter(";"),
				WithMaxSize(2048),
				WithSkipComments(true),
				WithSkipHeader(2),
			},
			expectedDelimiter:    ";",
			expectedMaxSize:      2048,
			expectedSkipComments: true,
			expectedSkipHeader:   2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParser(tt.opts...)
			if p == nil {
				t.Fatal("NewParser() returned nil")
				return
			}
			if p.delimiter != tt.expectedDelimiter {
				t.Errorf("delimiter = %q, want %q", p.delimiter, tt.expectedDelimiter)
			}
			if p.maxSize != tt.expectedMaxSize {
				t.Errorf("maxSize = %d, want %d", p.maxSize, tt.expectedMaxSize)
			}
			if p.skipComments != tt.expectedSkipComments {
				t.Errorf("skipComments = %v, want %v", p.skipComments, tt.expectedSkipComments)
			}
			if p.skipHeader != tt.expectedSkipHeader {
				t.Errorf("skipHeader = %d, want %d", p.skipHeader, tt.expectedSkipHeader)
			}
		})
	}
}

func TestLines(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		opts     []Option
		expected []string
		wantErr  bool
		errMsg   string
	}{
		{
			name:     "simple newline-delimited",
			content:  "line1\nline2\nline3",
			expected: []string{"line1", "line2", "line3"},
		},
		{
			name:     "blank lines and padding dropped",
			content:  "\n  gpu  \n\n cpu\n\n",
			expected: []string{"gpu", "cpu"},
		},
		{
			name:     "order and duplicates preserved",
			content:  "b\na\nb\n",
			expected: []string{"b", "a", "b"},
		},
		{
			name:     "header skipped",
			content:  "Filesystem 1G-blocks Used Available Capacity Mounted on\n/dev/sda1 100G 10G 90G 10% /\n",
			opts:     []Option{WithSkipHeader(1)},
			expected: []string{"/dev/sda1 100G 10G 90G 10% /"},
		},
		{
			name:     "header skip ignores leading blank lines",
			content:  "\n\nheader\nrow\n",
			opts:     []Option{WithSkipHeader(1)},
			expected: []string{"row"},
		},
		{
			name:     "comments kept by default",
			content:  "# note\nvalue",
			expected: []string{"# note", "value"},
		},
		{
			name:     "comments skipped when enabled",
			content:  "# note\nvalue",
			opts:     []Option{WithSkipComments(true)},
			expected: []string{"value"},
		},
		{
			name:     "custom delimiter",
			content:  "part1;part2;",
			opts:     []Option{WithDelimiter(";")},
			expected: []string{"part1", "part2"},
		},
		{
			name:     "empty content",
			content:  "",
			expected: []string{},
		},
		{
			name:    "too large",
			content: strings.Repeat("a", 2000),
			opts:    []Option{WithMaxSize(1000)},
			wantErr: true,
			errMsg:  "exceeds maximum size",
		},
		{
			name:    "invalid UTF-8",
			content: "valid\xff\xfeinvalid",
			wantErr: true,
			errMsg:  "not valid UTF-8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewParser(tt.opts...).Lines(tt.content)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("Lines() expected error containing %q, got nil", tt.errMsg)
				}
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("Lines() error = %q, want error containing %q", err.Error(), tt.errMsg)
				}
				return
			}

			if err != nil {
				t.Fatalf("Lines() unexpected error: %v", err)
			}
			if len(result) != len(tt.expected) {
				t.Fatalf("Lines() returned %d lines, want %d: %q", len(result), len(tt.expected), result)
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("Lines()[%d] = %q, want %q", i, result[i], tt.expected[i])
				}
			}
		})
	}
}

func TestGetLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "usage.log")
	if err := os.WriteFile(path, []byte("12G\t/srv/local1/alice\n\n3G\t/srv/local1/bob\n"), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	lines, err := NewParser().GetLines(path)
	if err != nil {
		t.Fatalf("GetLines() unexpected error: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("GetLines() returned %d lines, want 2", len(lines))
	}
	if lines[1] != "3G\t/srv/local1/bob" {
		t.Errorf("GetLines()[1] = %q", lines[1])
	}
}

func TestGetLines_Errors(t *testing.T) {
	p := NewParser()

	if _, err := p.GetLines(""); err == nil {
		t.Error("GetLines(\"\") expected error")
	}

	_, err := p.GetLines(filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatal("GetLines() expected error for missing file")
	}
	if !os.IsNotExist(unwrapAll(err)) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func unwrapAll(err error) error {
	for {
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return err
		}
		next := u.Unwrap()
		if next == nil {
			return err
		}
		err = next
	}
}
