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
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"
)

// Options for configuring the Parser.
type Option func(*Parser)

// Parser splits command output and small text files into trimmed lines.
type Parser struct {
	delimiter    string
	maxSize      int
	skipComments bool
	skipHeader   int
}

// WithDelimiter sets the delimiter used to split entries.
// Default is newline ("\n").
func WithDelimiter(delim string) Option {
	return func(p *Parser) {
		p.delimiter = delim
	}
}

// WithMaxSize sets the maximum size (in bytes) of the content to be parsed.
// Default is 1MB.
func WithMaxSize(size int) Option {
	return func(p *Parser) {
		p.maxSize = size
	}
}

// WithSkipComments sets whether to skip lines starting with "#".
// Default is false; command output rarely carries comments.
func WithSkipComments(skip bool) Option {
	return func(p *Parser) {
		p.skipComments = skip
	}
}

// WithSkipHeader drops the first n non-empty lines, for tools that print a
// column header before their rows.
func WithSkipHeader(n int) Option {
	return func(p *Parser) {
		p.skipHeader = n
	}
}

// NewParser creates a new parser with the provided options.
// Default settings: newline delimiter ("\n"), 1MB max size, no header skipping.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		delimiter:    "\n",
		maxSize:      1 << 20, // 1MB default
		skipComments: false,
		skipHeader:   0,
	}

	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GetLines reads the file at the given path and splits its content into lines.
// An error is returned if the file cannot be read, exceeds the maximum size,
// or contains invalid UTF-8 content.
func (p *Parser) GetLines(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("file path cannot be empty")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", path, err)
	}

	lines, err := p.Lines(string(b))
	if err != nil {
		return nil, fmt.Errorf("file %q: %w", path, err)
	}
	return lines, nil
}

// Lines splits content by the configured delimiter and returns the trimmed,
// non-empty entries in their original order.
func (p *Parser) Lines(content string) ([]string, error) {
	if !utf8.ValidString(content) {
		return nil, fmt.Errorf("content is not valid UTF-8")
	}

	if len(content) > p.maxSize {
		return nil, fmt.Errorf("content exceeds maximum size of %d bytes", p.maxSize)
	}

	parts := strings.Split(content, p.delimiter)

	result := make([]string, 0, len(parts))
	skipped := 0
	for _, part := range parts {
		cleanPart := strings.TrimSpace(part)
		if cleanPart == "" {
			continue
		}

		if p.skipComments && strings.HasPrefix(cleanPart, "#") {
			continue
		}

		if skipped < p.skipHeader {
			slog.Debug("skipping header line", slog.String("line", cleanPart))
			skipped++
			continue
		}

		result = append(result, cleanPart)
	}

	return result, nil
}
