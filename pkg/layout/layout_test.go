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
	"strings"
	"testing"

	"github.com/gatepack/synth/pkg/hdl"
	"github.com/gatepack/synth/pkg/pack"
)

func Test_Grid_01_EmptyYieldsNil(t *testing.T) {
	if got := Grid(nil); got != nil {
		t.Fatalf("got %+v, want nil", got)
	}
}

func Test_Grid_02_SingleRefAtOrigin(t *testing.T) {
	got := Grid([]string{"U1"})
	if len(got) != 1 {
		t.Fatalf("got %d positions, want 1", len(got))
	}

	if got[0] != (Position{Ref: "U1", X: OriginX, Y: OriginY}) {
		t.Fatalf("got %+v, want origin", got[0])
	}
}

func Test_Grid_03_FourRefsFillTwoByTwoGrid(t *testing.T) {
	got := Grid([]string{"U1", "U2", "U3", "U4"})
	want := []Position{
		{Ref: "U1", X: OriginX, Y: OriginY},
		{Ref: "U2", X: OriginX + SpacingX, Y: OriginY},
		{Ref: "U3", X: OriginX, Y: OriginY + SpacingY},
		{Ref: "U4", X: OriginX + SpacingX, Y: OriginY + SpacingY},
	}

	if len(got) != len(want) {
		t.Fatalf("got %d positions, want %d", len(got), len(want))
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func Test_RenderSchematic_01_SingleICProducesOneComponentBlock(t *testing.T) {
	top := &hdl.Module{
		Name:    "top",
		Inputs:  []hdl.Signal{{Name: "a", Width: 1}, {Name: "b", Width: 1}},
		Outputs: []hdl.Signal{{Name: "o", Width: 1}},
	}

	ics := []pack.ICInstance{
		{
			Ref:     "U1",
			Part:    "74HC08",
			Package: "DIP-14",
			PinNet:  map[int]string{1: "a", 2: "b", 3: "o", 14: "VCC", 7: "GND"},
		},
	}

	sch := RenderSchematic(top, ics)

	if !strings.HasPrefix(sch, "EESchema Schematic File Version 4") {
		t.Fatalf("missing EESchema header:\n%s", sch)
	}

	if !strings.Contains(sch, "L 74HC08 U1") {
		t.Fatalf("missing component line:\n%s", sch)
	}

	if strings.Count(sch, "$Comp\n") != 1 || strings.Count(sch, "$EndComp\n") != 1 {
		t.Fatalf("expected exactly one component block:\n%s", sch)
	}

	if !strings.Contains(sch, "Wire Wire Line") {
		t.Fatalf("expected at least one wire:\n%s", sch)
	}

	if !strings.HasSuffix(sch, "$EndSCHEMATC\n") {
		t.Fatalf("missing trailer:\n%s", sch)
	}

	// VCC/GND pins never get a wire: they are resolved separately by the
	// Net Resolver, not drawn on the schematic side-output.
	if strings.Contains(sch, " VCC") || strings.Contains(sch, " GND") {
		t.Fatalf("power nets should not appear in wire output:\n%s", sch)
	}
}

func Test_RenderSchematic_02_EmptyICListStillEmitsHeaderAndTrailer(t *testing.T) {
	top := &hdl.Module{Name: "top"}

	sch := RenderSchematic(top, nil)

	if !strings.HasPrefix(sch, "EESchema Schematic File Version 4") {
		t.Fatalf("missing header:\n%s", sch)
	}

	if !strings.HasSuffix(sch, "$EndSCHEMATC\n") {
		t.Fatalf("missing trailer:\n%s", sch)
	}

	if strings.Contains(sch, "$Comp") {
		t.Fatalf("unexpected component block with no ICs:\n%s", sch)
	}
}
