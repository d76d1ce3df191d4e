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
package flatten

import "fmt"

// HierarchyError reports a structural problem that aborts the run: an
// empty module table, or — per spec §4.3's DAG requirement — a self- or
// mutual-instantiation cycle. An instantiation of an undeclared
// submodule is NOT a HierarchyError; per spec §8 scenario 10 it is
// merely a Warning and contributes zero gates. Fatal (spec §7).
type HierarchyError struct {
	Msg string
}

// Error implements the error interface.
func (e *HierarchyError) Error() string { return e.Msg }

func hierErrf(format string, args ...any) *HierarchyError {
	return &HierarchyError{Msg: fmt.Sprintf(format, args...)}
}

// Warning is a recoverable diagnostic: an instantiation of a submodule
// that was never declared contributes zero gates, per spec §8 scenario
// 10, rather than aborting the run.
type Warning struct {
	Msg string
}

func (w Warning) String() string { return w.Msg }
