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
// Package gate defines the gate-level intermediate representation shared by
// the expression compiler, the hierarchy flattener and the IC packer.
//
// Gate is a tagged variant over a fixed set of primitive kinds (mirroring
// the teacher's discriminated-sum AST nodes rather than a class hierarchy):
// each Gate knows its own Kind, an ordered list of input nets, a single
// output net, and an instance tag used to keep flattened gates traceable
// back to their originating source construct.
package gate

import "fmt"

// Kind identifies a primitive gate type in the IR.
type Kind uint8

// The six primitive kinds named in the data model: two-input AND/OR/XOR,
// one-input NOT, two-input DFF (data, clock), and the zero-cost ALIAS
// wire-tie produced for single-identifier right-hand sides.
const (
	AND Kind = iota
	OR
	XOR
	NOT
	DFF
	ALIAS
)

// String renders a Kind using its canonical HDL spelling.
func (k Kind) String() string {
	switch k {
	case AND:
		return "AND"
	case OR:
		return "OR"
	case XOR:
		return "XOR"
	case NOT:
		return "NOT"
	case DFF:
		return "DFF"
	case ALIAS:
		return "ALIAS"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Arity returns the fixed number of inputs for the given kind, per the
// invariant in spec §3: AND/OR/XOR take two, NOT and ALIAS take one, DFF
// takes two (data, clock).
func (k Kind) Arity() int {
	switch k {
	case NOT, ALIAS:
		return 1
	default:
		return 2
	}
}

// Gate is one primitive operation in the flat (or pre-flatten, per-module)
// gate list: a kind, its ordered input nets, its single output net, and an
// instance tag identifying the source construct (assignment, register
// block, or mangled sub-instance path) that produced it.
type Gate struct {
	Kind   Kind
	Inputs []string
	Output string
	Tag    string
}

// New constructs a gate, panicking if the input count does not match the
// kind's fixed arity — a violation here is always a compiler bug upstream,
// never a user-facing condition.
func New(kind Kind, inputs []string, output, tag string) Gate {
	if len(inputs) != kind.Arity() {
		panic(fmt.Sprintf("gate.New: %s expects %d inputs, got %d", kind, kind.Arity(), len(inputs)))
	}

	return Gate{kind, inputs, output, tag}
}

// Counter generates the monotonically increasing temporary net names
// `tmp_<tag>_<n>` described in spec §4.2/§9. A fresh Counter is seeded at
// zero per top-level synthesis run so output is reproducible across runs
// given identical input.
type Counter struct {
	n uint
}

// Next returns the next temporary net name for the given AST tag
// ("and", "or", "xor", "not") and advances the counter.
func (c *Counter) Next(tag string) string {
	name := fmt.Sprintf("tmp_%s_%d", tag, c.n)
	c.n++

	return name
}
