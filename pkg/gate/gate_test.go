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
package gate

import "testing"

func Test_Gate_01_NewEnforcesArity(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for wrong arity")
		}
	}()

	New(AND, []string{"a"}, "out", "t")
}

func Test_Gate_02_NewAcceptsCorrectArity(t *testing.T) {
	g := New(NOT, []string{"a"}, "out", "t")
	if g.Kind != NOT || g.Output != "out" {
		t.Fatalf("unexpected gate: %+v", g)
	}
}

func Test_Gate_03_CounterMonotonic(t *testing.T) {
	var c Counter

	first := c.Next("and")
	second := c.Next("and")

	if first == second {
		t.Fatalf("expected distinct names, got %q twice", first)
	}

	if first != "tmp_and_0" || second != "tmp_and_1" {
		t.Fatalf("unexpected names: %q, %q", first, second)
	}
}

func Test_Gate_04_KindString(t *testing.T) {
	cases := map[Kind]string{AND: "AND", OR: "OR", XOR: "XOR", NOT: "NOT", DFF: "DFF", ALIAS: "ALIAS"}

	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}

func Test_Gate_05_Arity(t *testing.T) {
	if AND.Arity() != 2 || NOT.Arity() != 1 || ALIAS.Arity() != 1 || DFF.Arity() != 2 {
		t.Fatal("unexpected arity")
	}
}
