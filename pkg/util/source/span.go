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

import "fmt"

// Span identifies a half-open byte range [Start,End) within a source file.
type Span struct {
	start int
	end   int
}

// NewSpan constructs a span over [start,end).
func NewSpan(start, end int) Span {
	return Span{start, end}
}

// Start returns the byte offset of the first character in this span.
func (p Span) Start() int { return p.start }

// End returns the byte offset one past the last character in this span.
func (p Span) End() int { return p.end }

// Len returns the number of bytes covered by this span.
func (p Span) Len() int { return p.end - p.start }

// String implements fmt.Stringer, mostly for debugging.
func (p Span) String() string {
	return fmt.Sprintf("%d:%d", p.start, p.end)
}

// FormatAt renders a span as "name:line:col" (or just "line:col" for an
// unnamed file) using file's line index, falling back to the raw
// "start:end" byte-offset form when file is nil (e.g. a span produced
// before the owning file was known).
func (p Span) FormatAt(file *File) string {
	if file == nil {
		return p.String()
	}

	line, col := file.LineOf(p.Start())
	if file.Name() == "" {
		return fmt.Sprintf("%d:%d", line, col)
	}

	return fmt.Sprintf("%s:%d:%d", file.Name(), line, col)
}
