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
package gate

import (
	"fmt"
	"strings"
)

// SanitizeBitSelect converts a single bit-select `name[idx]` into the flat
// net name `name_idx`, per spec §4.1/§4.3. A name with no bit-select is
// returned unchanged. A range select `name[msb:lsb]` is only rejected when
// used as an instantiation connection target (callers that forbid ranges
// should set rejectRange); elsewhere it is still flattened (joining msb
// and lsb with an underscore) since the spec leaves its treatment in
// ordinary expressions unspecified.
func SanitizeBitSelect(name string, rejectRange bool) (string, error) {
	open := strings.IndexByte(name, '[')
	if open < 0 {
		return name, nil
	}

	close := strings.IndexByte(name, ']')
	if close < open {
		return name, fmt.Errorf("malformed bit-select in %q", name)
	}

	base := name[:open]
	inner := name[open+1 : close]
	suffix := name[close+1:]

	if strings.Contains(inner, ":") {
		if rejectRange {
			return "", fmt.Errorf("range select %q not permitted as a connection target", name)
		}

		inner = strings.ReplaceAll(inner, ":", "_")
	}

	return base + "_" + inner + suffix, nil
}
