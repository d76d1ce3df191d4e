// Copyright gatepack authors.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package source

// File wraps a named source text and provides line/column lookups for
// reporting human-readable error positions.
type File struct {
	name  string
	text  string
	lines []Span
}

// NewSourceFile indexes the given text into lines for position lookups.
func NewSourceFile(name string, text string) *File {
	lines := splitLines(text)
	return &File{name, text, lines}
}

func splitLines(text string) []Span {
	var lines []Span
	start := 0

	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, NewSpan(start, i))
			start = i + 1
		}
	}

	lines = append(lines, NewSpan(start, len(text)))

	return lines
}

// Name returns the name of this source file (e.g. its path).
func (p *File) Name() string { return p.name }

// Text returns the complete contents of this source file.
func (p *File) Text() string { return p.text }

// LineOf returns the 1-indexed line number and 0-indexed column for a given
// byte offset into the source text.
func (p *File) LineOf(offset int) (line int, column int) {
	for i, s := range p.lines {
		if offset >= s.Start() && offset <= s.End() {
			return i + 1, offset - s.Start()
		}
	}
	// Past end-of-file: report as trailing position on the last line.
	last := len(p.lines) - 1

	return last + 1, offset - p.lines[last].Start()
}

// SpanText returns the substring of the source text covered by the span.
func (p *File) SpanText(span Span) string {
	start := max(0, span.Start())
	end := min(len(p.text), span.End())

	if start >= end {
		return ""
	}

	return p.text[start:end]
}
