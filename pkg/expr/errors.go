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
package expr

import (
	"fmt"

	"github.com/gatepack/synth/pkg/util/source"
)

// Error is a recoverable diagnostic raised while compiling the right-hand
// side of an assign statement: unbalanced parentheses, a trailing
// operator, an empty subexpression, or an unrecognised token. Per spec
// §4.2/§7, it is never returned as a fatal error — the caller records it
// on the warning channel and the offending assignment contributes zero
// gates.
type Error struct {
	Span source.Span
	Msg  string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Span.Start(), e.Span.End(), e.Msg)
}

func errf(span source.Span, format string, args ...any) *Error {
	return &Error{Span: span, Msg: fmt.Sprintf(format, args...)}
}
