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
// Package hdl implements the lexer and module parser described in spec
// §4.1: comment stripping, module/port/wire extraction, continuous
// assignments (handed off to pkg/expr), clocked register blocks, and
// hierarchical instantiations. Its output is a ModuleTable — the
// pre-flatten representation consumed by pkg/flatten.
package hdl

import "github.com/gatepack/synth/pkg/gate"

// Role classifies a Signal's direction.
type Role uint8

// The three signal roles named in the data model (spec §3).
const (
	Input Role = iota
	Output
	Internal
)

func (r Role) String() string {
	switch r {
	case Input:
		return "input"
	case Output:
		return "output"
	default:
		return "internal"
	}
}

// Signal is a named, widthed net declared on a module's port list or as an
// internal wire.
type Signal struct {
	Name string
	// Width is always >= 1 (spec §4.1: |msb-lsb|+1, default 1).
	Width int
	Role  Role
}

// ModuleInstance records one hierarchical instantiation: which submodule,
// under what local instance name, with which formal ports connected to
// which actual (already bit-select-sanitized) nets.
type ModuleInstance struct {
	SubmoduleName string
	InstanceName  string
	// PortMap maps formal port name -> actual net name.
	PortMap map[string]string
	// PortOrder preserves declaration order of the named-port connections,
	// purely for deterministic diagnostics/JSON output.
	PortOrder []string
}

// Module is one parsed `module ... endmodule` block: its ordered port and
// wire declarations, the gates already lowered from its continuous
// assignments and register blocks, and its submodule instantiations
// (not yet inlined).
type Module struct {
	Name string
	// Inputs, Outputs and Internals preserve declaration order.
	Inputs    []Signal
	Outputs   []Signal
	Internals []Signal
	// Gates holds everything already reduced to gate-level IR: one entry
	// per internal (operator) AST node lowered from an assign RHS, or one
	// ALIAS when the RHS is a bare identifier, plus one DFF per register
	// block assignment.
	Gates []gate.Gate
	// Instances holds submodule instantiations, in source order.
	Instances []ModuleInstance
}

// SignalByName looks up a declared signal (any role) by name.
func (m *Module) SignalByName(name string) (Signal, bool) {
	for _, s := range m.Inputs {
		if s.Name == name {
			return s, true
		}
	}

	for _, s := range m.Outputs {
		if s.Name == name {
			return s, true
		}
	}

	for _, s := range m.Internals {
		if s.Name == name {
			return s, true
		}
	}

	return Signal{}, false
}

// ModuleTable is the parser's top-level output: every module found in the
// source, in declaration order.
type ModuleTable struct {
	Modules []*Module
}

// ByName looks up a module by name, or reports ok=false.
func (t *ModuleTable) ByName(name string) (*Module, bool) {
	for _, m := range t.Modules {
		if m.Name == name {
			return m, true
		}
	}

	return nil, false
}
