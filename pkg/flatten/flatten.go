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
// Package flatten implements the hierarchy flattener described in spec
// §4.3: top-module selection, recursive submodule inlining with
// instance-prefixed net renaming, and virtual-primitive recognition. The
// module graph is walked but never mutated; flattening always produces a
// fresh, owned gate list.
package flatten

import (
	"strings"

	"github.com/gatepack/synth/pkg/gate"
	"github.com/gatepack/synth/pkg/hdl"
	"github.com/gatepack/synth/pkg/util/collection/stack"
)

// virtualPrimitives maps a reserved submodule name to the gate Kind it is
// emitted as directly, rather than being recursively flattened. Spec §4.3
// names UNIT_DFFE as the sole example in this subset.
var virtualPrimitives = map[string]gate.Kind{
	"UNIT_DFFE": gate.DFF,
}

// SelectTop computes the top-level module per spec §4.3: the set of
// instantiated module names is collected across all modules, and any
// module not in that set is a candidate. Multiple candidates resolve to
// the first by declaration order; zero candidates falls back to the
// first module in the table (spec §9's resolution of the "pick any"
// open question — made explicit as declaration order rather than left
// implementation-defined).
func SelectTop(table *hdl.ModuleTable) (*hdl.Module, error) {
	if len(table.Modules) == 0 {
		return nil, hierErrf("no modules declared")
	}

	instantiated := map[string]bool{}

	for _, m := range table.Modules {
		for _, inst := range m.Instances {
			instantiated[inst.SubmoduleName] = true
		}
	}

	for _, m := range table.Modules {
		if !instantiated[m.Name] {
			return m, nil
		}
	}

	return table.Modules[0], nil
}

// Flatten recursively inlines every submodule instantiation reachable
// from top, producing a single flat gate list with globally unique net
// names. Warnings are appended for instantiations of undeclared
// submodules (spec §8 scenario 10); a cycle in the instantiation graph is
// reported as a fatal HierarchyError (spec §4.3).
func Flatten(table *hdl.ModuleTable, top *hdl.Module) ([]gate.Gate, []Warning, error) {
	state := &flattenState{
		table:    table,
		visiting: stack.NewStack[string](),
		cache:    map[string][]gate.Gate{},
	}

	flat, err := state.flattenModule(top)
	if err != nil {
		return nil, state.warnings, err
	}

	return flat, state.warnings, nil
}

type flattenState struct {
	table    *hdl.ModuleTable
	visiting *stack.Stack[string]
	cache    map[string][]gate.Gate
	warnings []Warning
}

// flattenModule returns mod's own flat gate list (its own gates plus every
// submodule instance inlined, but with NO instance-path prefixing applied
// for mod itself — that prefixing is applied by the caller once per
// instantiation site). The result is cached per module name since a
// module may be instantiated more than once.
//
// The in-progress instantiation chain is tracked on an explicit stack
// rather than a plain visited-set, so a cycle is reported with the full
// chain that produced it rather than just the module that closed the
// loop.
func (s *flattenState) flattenModule(mod *hdl.Module) ([]gate.Gate, error) {
	if cached, ok := s.cache[mod.Name]; ok {
		return cached, nil
	}

	if stack.Contains(s.visiting, mod.Name) {
		chain := append(s.visiting.Snapshot(), mod.Name)
		return nil, hierErrf("instantiation cycle detected: %s", strings.Join(chain, " -> "))
	}

	s.visiting.Push(mod.Name)
	defer s.visiting.Pop()

	flat := make([]gate.Gate, len(mod.Gates))
	copy(flat, mod.Gates)

	for _, inst := range mod.Instances {
		if kind, ok := virtualPrimitives[strings.ToUpper(inst.SubmoduleName)]; ok {
			g, err := lowerVirtualPrimitive(inst, kind)
			if err != nil {
				return nil, err
			}

			flat = append(flat, g)

			continue
		}

		sub, ok := s.table.ByName(inst.SubmoduleName)
		if !ok {
			s.warnings = append(s.warnings, Warning{
				Msg: "instance " + inst.InstanceName + " references undeclared module " + inst.SubmoduleName,
			})

			continue
		}

		subFlat, err := s.flattenModule(sub)
		if err != nil {
			return nil, err
		}

		for _, g := range subFlat {
			inputs := make([]string, len(g.Inputs))
			for i, n := range g.Inputs {
				inputs[i] = substituteNet(n, inst)
			}

			output := substituteNet(g.Output, inst)
			tag := inst.InstanceName + "_" + g.Tag

			flat = append(flat, gate.New(g.Kind, inputs, output, tag))
		}
	}

	s.cache[mod.Name] = flat

	return flat, nil
}

// substituteNet implements the per-gate renaming rule of spec §4.3: a net
// that names one of the submodule's formal ports is replaced by the
// actual net connected at the instantiation site; every other net
// (internal wires, temporaries) is mangled to `L_n` where L is the local
// instance name.
func substituteNet(n string, inst hdl.ModuleInstance) string {
	if actual, ok := inst.PortMap[n]; ok {
		return actual
	}

	return inst.InstanceName + "_" + n
}

// lowerVirtualPrimitive emits a single DFF gate for an instantiation of a
// reserved virtual-primitive submodule, using the fixed, case-insensitive
// port-name convention D/d, CLK/clk, Q/q (spec §4.3).
func lowerVirtualPrimitive(inst hdl.ModuleInstance, kind gate.Kind) (gate.Gate, error) {
	d, ok := lookupCaseInsensitive(inst.PortMap, "D")
	if !ok {
		return gate.Gate{}, hierErrf("virtual primitive %q: missing data port D/d", inst.InstanceName)
	}

	clk, ok := lookupCaseInsensitive(inst.PortMap, "CLK")
	if !ok {
		return gate.Gate{}, hierErrf("virtual primitive %q: missing clock port CLK/clk", inst.InstanceName)
	}

	q, ok := lookupCaseInsensitive(inst.PortMap, "Q")
	if !ok {
		return gate.Gate{}, hierErrf("virtual primitive %q: missing output port Q/q", inst.InstanceName)
	}

	return gate.New(kind, []string{d, clk}, q, inst.InstanceName+"_dffe"), nil
}

func lookupCaseInsensitive(m map[string]string, key string) (string, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}

	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}

	return "", false
}
