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
// Package pack implements the gate-to-IC packer described in spec §4.4:
// a static catalog mapping each gate kind to a 74-series part number and
// per-slot pinout, and a bin-packing algorithm that assigns each logical
// gate to a physical slot.
package pack

import "github.com/gatepack/synth/pkg/gate"

// Slot is one gate-shaped position within an IC package: the physical
// input pins (in the same order as the corresponding Gate.Inputs) and the
// physical output pin.
type Slot struct {
	Inputs []int
	Output int
}

// PartSpec is the catalog entry for one gate kind: its part number,
// package, capacity (slots per IC) and per-slot pinout, plus the fixed
// VCC/GND pin numbers shared by every real IC package in this subset
// (spec §4.4: "every real IC package has VCC=14, GND=7").
type PartSpec struct {
	Part       string
	Package    string
	SlotsPerIC int
	Slots      []Slot
	VCC        int
	GND        int
}

// Catalog is the static kind -> part table from spec §4.4. ALIAS has no
// entry: it never produces a physical IC, only a net-tie directive
// consumed directly by the Net Resolver.
var Catalog = map[gate.Kind]PartSpec{
	gate.AND: {
		Part: "74HC08", Package: "DIP-14", SlotsPerIC: 4, VCC: 14, GND: 7,
		Slots: []Slot{
			{Inputs: []int{1, 2}, Output: 3},
			{Inputs: []int{4, 5}, Output: 6},
			{Inputs: []int{9, 10}, Output: 8},
			{Inputs: []int{12, 13}, Output: 11},
		},
	},
	gate.OR: {
		Part: "74HC32", Package: "DIP-14", SlotsPerIC: 4, VCC: 14, GND: 7,
		Slots: []Slot{
			{Inputs: []int{1, 2}, Output: 3},
			{Inputs: []int{4, 5}, Output: 6},
			{Inputs: []int{9, 10}, Output: 8},
			{Inputs: []int{12, 13}, Output: 11},
		},
	},
	gate.XOR: {
		Part: "74HC86", Package: "DIP-14", SlotsPerIC: 4, VCC: 14, GND: 7,
		Slots: []Slot{
			{Inputs: []int{1, 2}, Output: 3},
			{Inputs: []int{4, 5}, Output: 6},
			{Inputs: []int{9, 10}, Output: 8},
			{Inputs: []int{12, 13}, Output: 11},
		},
	},
	gate.NOT: {
		Part: "74HC04", Package: "DIP-14", SlotsPerIC: 6, VCC: 14, GND: 7,
		Slots: []Slot{
			{Inputs: []int{1}, Output: 2},
			{Inputs: []int{3}, Output: 4},
			{Inputs: []int{5}, Output: 6},
			{Inputs: []int{9}, Output: 8},
			{Inputs: []int{11}, Output: 10},
			{Inputs: []int{13}, Output: 12},
		},
	},
	gate.DFF: {
		Part: "74HC74", Package: "DIP-14", SlotsPerIC: 2, VCC: 14, GND: 7,
		Slots: []Slot{
			{Inputs: []int{2, 3}, Output: 5},
			{Inputs: []int{12, 11}, Output: 9},
		},
	},
}

// AllPins returns every physical pin number on the package, 1..14 for the
// DIP-14 parts used throughout this catalog.
func (p PartSpec) AllPins() []int {
	pins := make([]int, 0, 14)
	for i := 1; i <= 14; i++ {
		pins = append(pins, i)
	}

	return pins
}
