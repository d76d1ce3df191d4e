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

import (
	"fmt"

	"github.com/gatepack/synth/pkg/gate"
)

// ICInstance is one physical 74-series package: its part number/package
// from the catalog, its sequential reference (U1, U2, ...), the gates
// assigned to its slots (in slot order) and the resulting pin -> net map
// including the bound VCC/GND pins. Produced by Pack; immutable after
// (spec §3 data model).
type ICInstance struct {
	Ref     string
	Part    string
	Package string
	PinNet  map[int]string
	Gates   []gate.Gate
}

// AliasPair is one (destination, source) wire-tie collected from an
// ALIAS gate. Per spec §4.4, aliases never become a physical IC; Pack
// returns them as a separate slice for the Net Resolver, and no
// component or reference is created for them.
type AliasPair struct {
	Dest string
	Src  string
}

// Pack groups the flat gate list by kind in declaration order, allocates
// ceil(N/capacity) real ICs per kind, and assigns gates to consecutive
// slots in pinout-declaration order, per spec §4.4. ALIAS gates produce
// no IC and are instead returned as AliasPairs. A gate kind absent from
// Catalog is a fatal PackError.
func Pack(flat []gate.Gate) ([]ICInstance, []AliasPair, error) {
	var kindOrder []gate.Kind

	groups := map[gate.Kind][]gate.Gate{}

	for _, g := range flat {
		if _, seen := groups[g.Kind]; !seen {
			kindOrder = append(kindOrder, g.Kind)
		}

		groups[g.Kind] = append(groups[g.Kind], g)
	}

	var (
		ics      []ICInstance
		aliases  []AliasPair
		refCount = 1
	)

	for _, kind := range kindOrder {
		gs := groups[kind]

		if kind == gate.ALIAS {
			for _, g := range gs {
				aliases = append(aliases, AliasPair{Dest: g.Output, Src: g.Inputs[0]})
			}

			continue
		}

		spec, ok := Catalog[kind]
		if !ok {
			return nil, nil, packErrf("no catalog entry for gate kind %s", kind)
		}

		n := len(gs)
		capacity := spec.SlotsPerIC
		numICs := (n + capacity - 1) / capacity

		for i := 0; i < numICs; i++ {
			start := i * capacity
			end := min((i+1)*capacity, n)

			ic := ICInstance{
				Ref:     fmt.Sprintf("U%d", refCount),
				Part:    spec.Part,
				Package: spec.Package,
				PinNet:  map[int]string{},
			}
			refCount++

			for slotIdx, g := range gs[start:end] {
				slot := spec.Slots[slotIdx]

				for pi, pin := range slot.Inputs {
					ic.PinNet[pin] = g.Inputs[pi]
				}

				ic.PinNet[slot.Output] = g.Output
				ic.Gates = append(ic.Gates, g)
			}

			ic.PinNet[spec.VCC] = "VCC"
			ic.PinNet[spec.GND] = "GND"

			ics = append(ics, ic)
		}
	}

	return ics, aliases, nil
}
