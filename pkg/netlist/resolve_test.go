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
package netlist

import (
	"testing"

	"github.com/gatepack/synth/pkg/gate"
	"github.com/gatepack/synth/pkg/hdl"
	"github.com/gatepack/synth/pkg/pack"
)

func simpleTop() *hdl.Module {
	return &hdl.Module{
		Name:    "top",
		Inputs:  []hdl.Signal{{Name: "a", Width: 1}, {Name: "b", Width: 1}},
		Outputs: []hdl.Signal{{Name: "o", Width: 1}},
	}
}

func Test_Resolve_01_ConnectorPerIOBit(t *testing.T) {
	top := simpleTop()
	ics := []pack.ICInstance{
		{
			Ref: "U1", Part: "74HC08", Package: "DIP-14",
			PinNet: map[int]string{1: "a", 2: "b", 3: "o", 14: "VCC", 7: "GND"},
			Gates:  []gate.Gate{gate.New(gate.AND, []string{"a", "b"}, "o", "assign1")},
		},
	}

	result := Resolve(top, ics, nil, Options{ToolName: "synth", RunCounter: 1})

	hasNet := func(name string) bool {
		for _, n := range result.Nets {
			if n.Name == name {
				return true
			}
		}

		return false
	}

	if !hasNet("a") || !hasNet("b") || !hasNet("o") {
		t.Fatalf("expected nets a/b/o, got %+v", result.Nets)
	}
}

func Test_Resolve_02_VCCAndGNDShared(t *testing.T) {
	top := simpleTop()
	ics := []pack.ICInstance{
		{
			Ref: "U1", Part: "74HC08", Package: "DIP-14",
			PinNet: map[int]string{1: "a", 2: "b", 3: "o", 14: "VCC", 7: "GND"},
			Gates:  []gate.Gate{gate.New(gate.AND, []string{"a", "b"}, "o", "assign1")},
		},
	}

	result := Resolve(top, ics, nil, Options{ToolName: "synth", RunCounter: 1})

	var vcc, gnd *Net

	for i := range result.Nets {
		switch result.Nets[i].Name {
		case "VCC":
			vcc = &result.Nets[i]
		case "GND":
			gnd = &result.Nets[i]
		}
	}

	if vcc == nil || gnd == nil {
		t.Fatal("expected VCC and GND nets")
	}

	// Every IC contributes a VCC pin and a decoupling cap pin to the
	// shared power nets.
	if len(vcc.Endpoints) < 2 || len(gnd.Endpoints) < 2 {
		t.Fatalf("expected at least 2 endpoints each on VCC/GND, got %d/%d", len(vcc.Endpoints), len(gnd.Endpoints))
	}
}

func Test_Resolve_03_AliasMergesNets(t *testing.T) {
	top := simpleTop()
	ics := []pack.ICInstance{
		{
			Ref: "U1", Part: "74HC08", Package: "DIP-14",
			PinNet: map[int]string{1: "a", 2: "b", 3: "mid", 14: "VCC", 7: "GND"},
			Gates:  []gate.Gate{gate.New(gate.AND, []string{"a", "b"}, "mid", "assign1")},
		},
	}

	aliases := []pack.AliasPair{{Dest: "o", Src: "mid"}}

	result := Resolve(top, ics, aliases, Options{ToolName: "synth", RunCounter: 1})

	for _, n := range result.Nets {
		if n.Name == "mid" {
			t.Fatal("aliased source net should have been merged away")
		}
	}

	found := false

	for _, n := range result.Nets {
		if n.Name == "o" {
			found = true
			// "o"'s connector endpoint plus the merged IC output pin.
			if len(n.Endpoints) < 2 {
				t.Fatalf("expected merged endpoints on o, got %+v", n.Endpoints)
			}
		}
	}

	if !found {
		t.Fatal("expected net \"o\" after alias merge")
	}
}

func Test_Resolve_04_UnusedPinsTiedToGndUnused(t *testing.T) {
	top := &hdl.Module{Name: "top"}
	ics := []pack.ICInstance{
		{
			Ref: "U1", Part: "74HC08", Package: "DIP-14",
			// Only one of the four AND slots used; pins for the other
			// three slots are left unassigned.
			PinNet: map[int]string{1: "a", 2: "b", 3: "o", 14: "VCC", 7: "GND"},
			Gates:  []gate.Gate{gate.New(gate.AND, []string{"a", "b"}, "o", "assign1")},
		},
	}

	result := Resolve(top, ics, nil, Options{ToolName: "synth", RunCounter: 1})

	var unused *Net

	for i := range result.Nets {
		if result.Nets[i].Name == "GND_UNUSED" {
			unused = &result.Nets[i]
		}
	}

	if unused == nil {
		t.Fatal("expected a GND_UNUSED net for the IC's unused pins")
	}

	// 14 pins - 2 power pins - 3 bound signal pins leaves 9 pins unused.
	if len(unused.Endpoints) == 0 {
		t.Fatal("expected at least one unused-pin endpoint")
	}
}

func Test_Resolve_05_MultiBitPortExpandsPerBit(t *testing.T) {
	top := &hdl.Module{
		Name:   "top",
		Inputs: []hdl.Signal{{Name: "bus", Width: 4}},
	}

	result := Resolve(top, nil, nil, Options{ToolName: "synth", RunCounter: 1})

	want := []string{"bus_0", "bus_1", "bus_2", "bus_3"}

	for _, name := range want {
		found := false

		for _, n := range result.Nets {
			if n.Name == name {
				found = true
			}
		}

		if !found {
			t.Fatalf("expected per-bit net %q", name)
		}
	}
}

func Test_Resolve_06_DuplicatePortDeclarationsDeduped(t *testing.T) {
	top := &hdl.Module{
		Name:   "top",
		Inputs: []hdl.Signal{{Name: "a", Width: 1}, {Name: "a", Width: 4}},
	}

	result := Resolve(top, nil, nil, Options{ToolName: "synth", RunCounter: 1})

	count := 0

	for _, n := range result.Nets {
		if n.Name == "a_0" {
			count++
		}
	}

	if count != 1 {
		t.Fatalf("expected the widest declaration (width 4) to win, got %d matches for a_0", count)
	}
}

func Test_Resolve_07_SelfAliasIsNoOp(t *testing.T) {
	top := simpleTop()
	aliases := []pack.AliasPair{{Dest: "a", Src: "a"}}

	result := Resolve(top, nil, aliases, Options{ToolName: "synth", RunCounter: 1})

	count := 0

	for _, n := range result.Nets {
		if n.Name == "a" {
			count++
		}
	}

	if count != 1 {
		t.Fatalf("expected exactly one net named a, got %d", count)
	}
}
