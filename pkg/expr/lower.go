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
package expr

import "github.com/gatepack/synth/pkg/gate"

// Lower performs a post-order walk of the AST rooted at n, emitting one
// gate per internal node. The root node's output net is lhs (the
// left-hand side of the assign statement); every other internal node gets
// a fresh temporary net from counter. Leaf identifiers never emit gates —
// the parent gate receives the identifier name directly as an input, per
// spec §4.2.
//
// If n is a bare Identifier (the entire right-hand side was a single net
// name), Lower instead emits a single ALIAS gate: output = lhs, input =
// that identifier, per the aliasing rule in §4.2.
func Lower(n Node, lhs string, counter *gate.Counter, tag string) []gate.Gate {
	if id, ok := n.(Identifier); ok {
		return []gate.Gate{gate.New(gate.ALIAS, []string{id.Name}, lhs, tag)}
	}

	var gates []gate.Gate
	lowerNode(n, lhs, true, counter, tag, &gates)

	return gates
}

// lowerNode returns the net name carrying this subexpression's value
// (either a leaf identifier, or the output net of the gate it just
// appended to *gates), recursing in post-order. isRoot is true only for
// the single top-level call, whose gate takes rootOutput as its output
// net instead of a fresh temporary.
func lowerNode(n Node, rootOutput string, isRoot bool, counter *gate.Counter, tag string, gates *[]gate.Gate) string {
	output := func(nodeTag string) string {
		if isRoot {
			return rootOutput
		}

		return counter.Next(nodeTag)
	}

	switch v := n.(type) {
	case Identifier:
		return v.Name
	case Not:
		x := lowerNode(v.X, rootOutput, false, counter, tag, gates)
		out := output(v.tag())
		*gates = append(*gates, gate.New(gate.NOT, []string{x}, out, tag))

		return out
	case And:
		l := lowerNode(v.L, rootOutput, false, counter, tag, gates)
		r := lowerNode(v.R, rootOutput, false, counter, tag, gates)
		out := output(v.tag())
		*gates = append(*gates, gate.New(gate.AND, []string{l, r}, out, tag))

		return out
	case Or:
		l := lowerNode(v.L, rootOutput, false, counter, tag, gates)
		r := lowerNode(v.R, rootOutput, false, counter, tag, gates)
		out := output(v.tag())
		*gates = append(*gates, gate.New(gate.OR, []string{l, r}, out, tag))

		return out
	case Xor:
		l := lowerNode(v.L, rootOutput, false, counter, tag, gates)
		r := lowerNode(v.R, rootOutput, false, counter, tag, gates)
		out := output(v.tag())
		*gates = append(*gates, gate.New(gate.XOR, []string{l, r}, out, tag))

		return out
	default:
		panic("expr.lowerNode: unknown node type")
	}
}
