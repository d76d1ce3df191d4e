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
package pack

import "fmt"

// PackError reports a gate kind encountered with no catalog entry. Fatal
// (spec §7).
type PackError struct {
	Msg string
}

// Error implements the error interface.
func (e *PackError) Error() string { return e.Msg }

func packErrf(format string, args ...any) *PackError {
	return &PackError{Msg: fmt.Sprintf(format, args...)}
}
