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

import (
	"testing"

	"github.com/gatepack/synth/pkg/gate"
)

func Test_Lower_01_BareIdentifierProducesAlias(t *testing.T) {
	n, err := Parse("a", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var counter gate.Counter

	gates := Lower(n, "out", &counter, "assign1")
	if len(gates) != 1 {
		t.Fatalf("got %d gates, want 1", len(gates))
	}

	g := gates[0]
	if g.Kind != gate.ALIAS || g.Output != "out" || g.Inputs[0] != "a" {
		t.Fatalf("unexpected gate: %+v", g)
	}
}

func Test_Lower_02_SingleAndGateUsesLhsDirectly(t *testing.T) {
	n, err := Parse("a & b", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var counter gate.Counter

	gates := Lower(n, "out", &counter, "assign1")
	if len(gates) != 1 {
		t.Fatalf("got %d gates, want 1: %+v", len(gates), gates)
	}

	g := gates[0]
	if g.Kind != gate.AND || g.Output != "out" {
		t.Fatalf("unexpected gate: %+v", g)
	}

	if g.Inputs[0] != "a" || g.Inputs[1] != "b" {
		t.Fatalf("unexpected inputs: %+v", g.Inputs)
	}
}

func Test_Lower_03_NestedExpressionUsesTemporaries(t *testing.T) {
	n, err := Parse("a & b | c", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var counter gate.Counter

	gates := Lower(n, "out", &counter, "assign1")
	if len(gates) != 2 {
		t.Fatalf("got %d gates, want 2: %+v", len(gates), gates)
	}

	// Post-order: the AND sub-expression lowers first into a temporary,
	// then the root OR gate consumes it and writes to "out".
	andGate := gates[0]
	if andGate.Kind != gate.AND || andGate.Output == "out" {
		t.Fatalf("unexpected first gate: %+v", andGate)
	}

	orGate := gates[1]
	if orGate.Kind != gate.OR || orGate.Output != "out" {
		t.Fatalf("unexpected second gate: %+v", orGate)
	}

	if orGate.Inputs[0] != andGate.Output {
		t.Fatalf("root gate should consume the temporary %q, got inputs %+v", andGate.Output, orGate.Inputs)
	}
}

func Test_Lower_04_CounterIsNotGlobalState(t *testing.T) {
	n, err := Parse("a & b | c", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var counterA, counterB gate.Counter

	gatesA := Lower(n, "out", &counterA, "assign1")
	gatesB := Lower(n, "out", &counterB, "assign1")

	// Two independent counters starting at zero must produce identical
	// temporary names: nothing leaks state across calls.
	if gatesA[0].Output != gatesB[0].Output {
		t.Fatalf("expected reproducible temp names, got %q and %q", gatesA[0].Output, gatesB[0].Output)
	}
}
