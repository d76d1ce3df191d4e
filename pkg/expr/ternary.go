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

import "strings"

// RewriteTernary rewrites every top-level `cond ? t : e` into
// `((cond) & (t)) | ((~(cond)) & (e))`, recursively for nested ternaries
// appearing inside cond, t or e, per spec §4.2. "Top-level" is depth-0 with
// respect to parentheses; a `?` matches the nearest `:` at the same depth.
// Applying this rewrite twice is idempotent: a rewritten expression
// contains no top-level `?` for the rewrite to find.
func RewriteTernary(s string) string {
	qIdx, depth := -1, 0

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case '?':
			if depth == 0 {
				qIdx = i
			}
		}

		if qIdx >= 0 {
			break
		}
	}

	if qIdx < 0 {
		return s
	}

	colonIdx, depth2 := -1, 0

	for i := qIdx + 1; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth2++
		case ')':
			depth2--
		case ':':
			if depth2 == 0 {
				colonIdx = i
			}
		}

		if colonIdx >= 0 {
			break
		}
	}

	if colonIdx < 0 {
		// No matching colon: leave as-is, the parser will reject it as a
		// malformed expression.
		return s
	}

	cond := RewriteTernary(strings.TrimSpace(s[:qIdx]))
	then := RewriteTernary(strings.TrimSpace(s[qIdx+1 : colonIdx]))
	els := RewriteTernary(strings.TrimSpace(s[colonIdx+1:]))

	return "((" + cond + ") & (" + then + ")) | ((~(" + cond + ")) & (" + els + "))"
}
