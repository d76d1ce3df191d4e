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
package hdl

import (
	"fmt"

	"github.com/gatepack/synth/pkg/util/source"
)

// ParseError reports a malformed module header or port/wire declaration.
// It is fatal: the pipeline aborts the run (spec §7). Unknown constructs
// inside a module body are intentionally not reported here — they are
// silently ignored, per the parser's lenient pass-through policy.
//
// File is populated once, by Parse, after the error has bubbled back up
// to the top of the call stack — every constructor deep inside the
// parser only ever has the span available, not the file it belongs to.
// It is nil until then, in which case Error() falls back to raw
// byte-offset formatting (source.Span.FormatAt handles both cases).
type ParseError struct {
	Span   source.Span
	Reason string
	File   *source.File
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Span.FormatAt(e.File), e.Reason)
}

func parseErrf(span source.Span, format string, args ...any) *ParseError {
	return &ParseError{Span: span, Reason: fmt.Sprintf(format, args...)}
}

// Warning is a recoverable diagnostic accumulated on the warning channel
// exposed to the CLI (spec §7) — produced for a malformed assign
// statement: a missing '=', a malformed left-hand side, or a right-hand
// side the expression compiler fails to parse.
// File is populated the same way and at the same point as ParseError.File.
type Warning struct {
	Span    source.Span
	Message string
	File    *source.File
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Span.FormatAt(w.File), w.Message)
}
