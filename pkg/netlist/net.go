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
// Package netlist implements the Net Resolver (spec §4.5): materializing
// the final net set from the packed ICInstances and the top module's I/O
// ports, merging ALIAS wire-ties, tying down unused pins, and rendering
// the result as the external s-expression and JSON formats (spec §6).
package netlist

import "fmt"

// Endpoint is one (component-ref, pin) pair attached to a net.
type Endpoint struct {
	Ref string
	Pin int
}

// Equals and Hash satisfy hash.Hasher, letting Endpoint sets be
// deduplicated with pkg/util/collection/hash.
func (e Endpoint) Equals(o Endpoint) bool { return e.Ref == o.Ref && e.Pin == o.Pin }

// Hash combines Ref and Pin into a single hashcode.
func (e Endpoint) Hash() uint64 {
	h := uint64(14695981039346656037)
	for i := 0; i < len(e.Ref); i++ {
		h ^= uint64(e.Ref[i])
		h *= 1099511628211
	}

	h ^= uint64(e.Pin)
	h *= 1099511628211

	return h
}

func (e Endpoint) String() string {
	return fmt.Sprintf("%s.%d", e.Ref, e.Pin)
}

// Net is a named equipotential wire connecting one or more component
// pins — the Resolver's final, read-only derived view over the
// ICInstance list and the I/O connectors (spec §3).
type Net struct {
	Name      string
	Endpoints []Endpoint
}

// Component is one physical part emitted in the netlist document: a real
// IC, an I/O connector pin, or a decoupling capacitor (spec §6).
type Component struct {
	Ref       string
	Value     string
	Footprint string
	Tstamp    string
}
