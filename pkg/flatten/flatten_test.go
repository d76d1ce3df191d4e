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

import (
	"testing"

	"github.com/gatepack/synth/pkg/gate"
	"github.com/gatepack/synth/pkg/hdl"
)

func leaf(name string) *hdl.Module {
	return &hdl.Module{
		Name:  name,
		Gates: []gate.Gate{gate.New(gate.AND, []string{"a", "b"}, "o", "assign1")},
	}
}

func Test_SelectTop_01_SingleModuleIsTop(t *testing.T) {
	m := leaf("only")
	table := &hdl.ModuleTable{Modules: []*hdl.Module{m}}

	top, err := SelectTop(table)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if top.Name != "only" {
		t.Fatalf("got %q", top.Name)
	}
}

func Test_SelectTop_02_UninstantiatedModuleWins(t *testing.T) {
	child := leaf("child")
	parent := &hdl.Module{
		Name:      "parent",
		Instances: []hdl.ModuleInstance{{SubmoduleName: "child", InstanceName: "c0", PortMap: map[string]string{}}},
	}

	table := &hdl.ModuleTable{Modules: []*hdl.Module{child, parent}}

	top, err := SelectTop(table)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if top.Name != "parent" {
		t.Fatalf("got %q, want parent", top.Name)
	}
}

func Test_SelectTop_03_EmptyTableErrors(t *testing.T) {
	_, err := SelectTop(&hdl.ModuleTable{})
	if err == nil {
		t.Fatal("expected error for empty module table")
	}
}

func Test_Flatten_01_NoInstancesPassesGatesThrough(t *testing.T) {
	m := leaf("top")
	table := &hdl.ModuleTable{Modules: []*hdl.Module{m}}

	flat, warnings, err := Flatten(table, m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %+v", warnings)
	}

	if len(flat) != 1 || flat[0].Output != "o" {
		t.Fatalf("unexpected flat gates: %+v", flat)
	}
}

func Test_Flatten_02_NetPrefixingOnInlinedSubmodule(t *testing.T) {
	child := leaf("child")
	parent := &hdl.Module{
		Name: "parent",
		Instances: []hdl.ModuleInstance{
			{SubmoduleName: "child", InstanceName: "c0", PortMap: map[string]string{}},
		},
	}

	table := &hdl.ModuleTable{Modules: []*hdl.Module{child, parent}}

	flat, _, err := Flatten(table, parent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(flat) != 1 {
		t.Fatalf("got %d gates, want 1", len(flat))
	}

	// "o" is not a formal port (PortMap is empty), so it must be mangled
	// with the instance name prefix.
	if flat[0].Output != "c0_o" {
		t.Fatalf("got output %q, want c0_o", flat[0].Output)
	}
}

func Test_Flatten_03_PortSubstitution(t *testing.T) {
	child := &hdl.Module{
		Name:  "child",
		Gates: []gate.Gate{gate.New(gate.AND, []string{"p_a", "p_b"}, "p_o", "assign1")},
	}

	parent := &hdl.Module{
		Name: "parent",
		Instances: []hdl.ModuleInstance{
			{
				SubmoduleName: "child",
				InstanceName:  "c0",
				PortMap:       map[string]string{"p_a": "x", "p_b": "y", "p_o": "z"},
			},
		},
	}

	table := &hdl.ModuleTable{Modules: []*hdl.Module{child, parent}}

	flat, _, err := Flatten(table, parent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	g := flat[0]
	if g.Inputs[0] != "x" || g.Inputs[1] != "y" || g.Output != "z" {
		t.Fatalf("unexpected substitution: %+v", g)
	}
}

func Test_Flatten_04_UndeclaredSubmoduleWarns(t *testing.T) {
	parent := &hdl.Module{
		Name: "parent",
		Instances: []hdl.ModuleInstance{
			{SubmoduleName: "missing", InstanceName: "c0", PortMap: map[string]string{}},
		},
	}

	table := &hdl.ModuleTable{Modules: []*hdl.Module{parent}}

	flat, warnings, err := Flatten(table, parent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(flat) != 0 {
		t.Fatalf("expected zero gates from undeclared instance, got %d", len(flat))
	}

	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %d", len(warnings))
	}
}

func Test_Flatten_05_CycleIsFatal(t *testing.T) {
	a := &hdl.Module{
		Name:      "a",
		Instances: []hdl.ModuleInstance{{SubmoduleName: "b", InstanceName: "bi", PortMap: map[string]string{}}},
	}
	b := &hdl.Module{
		Name:      "b",
		Instances: []hdl.ModuleInstance{{SubmoduleName: "a", InstanceName: "ai", PortMap: map[string]string{}}},
	}

	table := &hdl.ModuleTable{Modules: []*hdl.Module{a, b}}

	_, _, err := Flatten(table, a)
	if err == nil {
		t.Fatal("expected HierarchyError for instantiation cycle")
	}

	if _, ok := err.(*HierarchyError); !ok {
		t.Fatalf("got %T, want *HierarchyError", err)
	}
}

func Test_Flatten_06_VirtualPrimitiveDFFE(t *testing.T) {
	parent := &hdl.Module{
		Name: "parent",
		Instances: []hdl.ModuleInstance{
			{
				SubmoduleName: "UNIT_DFFE",
				InstanceName:  "r0",
				PortMap:       map[string]string{"D": "d_net", "CLK": "clk_net", "Q": "q_net"},
			},
		},
	}

	table := &hdl.ModuleTable{Modules: []*hdl.Module{parent}}

	flat, _, err := Flatten(table, parent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(flat) != 1 || flat[0].Kind != gate.DFF {
		t.Fatalf("unexpected gates: %+v", flat)
	}

	if flat[0].Inputs[0] != "d_net" || flat[0].Inputs[1] != "clk_net" || flat[0].Output != "q_net" {
		t.Fatalf("unexpected DFF wiring: %+v", flat[0])
	}
}

func Test_Flatten_07_VirtualPrimitiveCaseInsensitivePorts(t *testing.T) {
	parent := &hdl.Module{
		Name: "parent",
		Instances: []hdl.ModuleInstance{
			{
				SubmoduleName: "unit_dffe",
				InstanceName:  "r0",
				PortMap:       map[string]string{"d": "d_net", "clk": "clk_net", "q": "q_net"},
			},
		},
	}

	table := &hdl.ModuleTable{Modules: []*hdl.Module{parent}}

	flat, _, err := Flatten(table, parent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(flat) != 1 || flat[0].Kind != gate.DFF {
		t.Fatalf("unexpected gates: %+v", flat)
	}
}

func Test_Flatten_08_RepeatedInstantiationIsCached(t *testing.T) {
	child := leaf("child")
	parent := &hdl.Module{
		Name: "parent",
		Instances: []hdl.ModuleInstance{
			{SubmoduleName: "child", InstanceName: "c0", PortMap: map[string]string{}},
			{SubmoduleName: "child", InstanceName: "c1", PortMap: map[string]string{}},
		},
	}

	table := &hdl.ModuleTable{Modules: []*hdl.Module{child, parent}}

	flat, _, err := Flatten(table, parent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(flat) != 2 {
		t.Fatalf("got %d gates, want 2 (one per instance)", len(flat))
	}

	if flat[0].Output == flat[1].Output {
		t.Fatalf("expected distinct per-instance net names, both are %q", flat[0].Output)
	}
}
