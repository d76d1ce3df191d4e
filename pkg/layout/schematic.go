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
package layout

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gatepack/synth/pkg/hdl"
	"github.com/gatepack/synth/pkg/pack"
)

// schematicHeader is the fixed EESchema v4 preamble every sheet needs,
// mirroring the original's KiCadExporter.schematic_header
// (_examples/original_source/synth/verilog_to_pcb_final.py).
const schematicHeader = `EESchema Schematic File Version 4
EELAYER 30 0
EELAYER END
$Descr A4 11693 8268
encoding utf-8
Sheet 1 1
Title ""
Date ""
Rev ""
Comp ""
Comment1 ""
Comment2 ""
Comment3 ""
Comment4 ""
$EndDescr
`

// RenderSchematic renders the non-normative schematic placement side-output
// named in spec §6: every real IC placed on the Grid, plus wire lines
// between each IC pin and the net it belongs to. This is a direct port of
// the original's KiCadExporter.export_schematic/_write_component/
// _write_connections, simplified to the degree spec §6 calls this
// side-output non-normative (no real wire routing, just point-to-point
// lines). It has no bearing on net connectivity or IC packing; callers
// may discard the result without affecting pipeline correctness.
func RenderSchematic(top *hdl.Module, ics []pack.ICInstance) string {
	refs := make([]string, len(ics))
	for i, ic := range ics {
		refs[i] = ic.Ref
	}

	posByRef := make(map[string]Position, len(ics))
	for _, p := range Grid(refs) {
		posByRef[p.Ref] = p
	}

	var b strings.Builder

	b.WriteString(schematicHeader)

	for _, ic := range ics {
		writeComponent(&b, ic, posByRef[ic.Ref])
	}

	writeConnections(&b, top, ics, posByRef)

	b.WriteString("$EndSCHEMATC\n")

	return b.String()
}

func writeComponent(b *strings.Builder, ic pack.ICInstance, pos Position) {
	x, y := pos.X, pos.Y

	fmt.Fprintf(b, "$Comp\n")
	fmt.Fprintf(b, "L %s %s\n", ic.Part, ic.Ref)
	fmt.Fprintf(b, "U 1 1 00000000\n")
	fmt.Fprintf(b, "P %d %d\n", x, y)
	fmt.Fprintf(b, "F 0 \"%s\" H %d %d 50  0000 C CNN\n", ic.Ref, x, y-50)
	fmt.Fprintf(b, "F 1 \"%s\" H %d %d 50  0000 C CNN\n", ic.Part, x, y+50)
	fmt.Fprintf(b, "F 2 \"%s\" H %d %d 50  0000 C CNN\n", ic.Package, x, y+100)
	fmt.Fprintf(b, "F 3 \"\" H %d %d 50  0000 C CNN\n", x, y+150)
	fmt.Fprintf(b, "    1    %d %d\n", x, y)
	fmt.Fprintf(b, "    1    0    0    -1\n")
	b.WriteString("$EndComp\n")
}

// writeConnections assigns every net a single schematic position — I/O
// ports get a fixed column on the left/right edge, everything else takes
// the position of the first IC pin it is seen on — then draws one wire
// per (pin, net) pair from the pin's own position to that net's position,
// same two-pass structure as the original's _write_connections.
func writeConnections(b *strings.Builder, top *hdl.Module, ics []pack.ICInstance, posByRef map[string]Position) {
	type coord struct{ x, y int }

	signalPos := map[string]coord{}

	for i, sig := range top.Inputs {
		signalPos[sig.Name] = coord{500, 1000 + i*200}
	}

	for i, sig := range top.Outputs {
		signalPos[sig.Name] = coord{5000, 1000 + i*200}
	}

	for _, ic := range ics {
		pos := posByRef[ic.Ref]

		for _, pin := range sortedPins(ic.PinNet) {
			net := ic.PinNet[pin]
			if net == "VCC" || net == "GND" {
				continue
			}

			if _, ok := signalPos[net]; ok {
				continue
			}

			px, py := pinPosition(pos, pin)
			signalPos[net] = coord{px, py}
		}
	}

	for _, ic := range ics {
		pos := posByRef[ic.Ref]

		for _, pin := range sortedPins(ic.PinNet) {
			net := ic.PinNet[pin]
			if net == "VCC" || net == "GND" {
				continue
			}

			target := signalPos[net]
			px, py := pinPosition(pos, pin)

			b.WriteString("Wire Wire Line\n")
			fmt.Fprintf(b, "    %d %d %d %d\n", px, py, target.x, target.y)
		}
	}
}

// pinPosition mirrors the original's simplified DIP-14 left/right pin
// layout: pins 1-7 on the left edge, 8-14 on the right, spaced 50 units
// apart running bottom-to-top on the right side.
func pinPosition(pos Position, pin int) (int, int) {
	if pin <= 7 {
		return pos.X - 100, pos.Y - 200 + (pin-1)*50
	}

	return pos.X + 100, pos.Y - 200 + (14-pin)*50
}

func sortedPins(m map[int]string) []int {
	pins := make([]int, 0, len(m))
	for p := range m {
		pins = append(pins, p)
	}

	sort.Ints(pins)

	return pins
}
