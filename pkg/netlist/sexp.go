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
	"strconv"
	"strings"
)

// SExp is a node in the s-expression document the downstream netlist
// formatter consumes (spec §6). This mirrors the teacher's sexp.List /
// sexp.Symbol model, repurposed here as an output *builder* rather than
// an input parser: the teacher reads Lisp-like constraint source into
// this shape, this package only ever constructs and serializes it.
type SExp interface {
	write(b *strings.Builder, indent int)
}

// List is an ordered sequence of child s-expressions, rendered as
// `(a b c)`.
type List struct {
	Elements []SExp
}

func (l *List) write(b *strings.Builder, indent int) {
	b.WriteByte('(')

	for i, e := range l.Elements {
		if i > 0 {
			b.WriteByte(' ')
		}

		e.write(b, indent)
	}

	b.WriteByte(')')
}

// Symbol is a bare, unquoted atom (a keyword or a bare number).
type Symbol string

func (s Symbol) write(b *strings.Builder, _ int) { b.WriteString(string(s)) }

// Quoted is a double-quoted string atom.
type Quoted string

func (q Quoted) write(b *strings.Builder, _ int) {
	b.WriteString(strconv.Quote(string(q)))
}

// Field builds `(name value...)`, the recurring shape used throughout
// the netlist grammar (spec §6): `(ref U1)`, `(value 74HC08)`, etc.
func Field(name string, values ...SExp) *List {
	return &List{Elements: append([]SExp{Symbol(name)}, values...)}
}

// Render serializes an SExp to its textual form.
func Render(n SExp) string {
	var b strings.Builder

	n.write(&b, 0)

	return b.String()
}

// RenderPretty serializes an SExp with one child per line and
// indentation proportional to nesting depth, matching how real EDA
// tools lay out netlist files for human review.
func RenderPretty(n SExp) string {
	var b strings.Builder

	writePretty(&b, n, 0)
	b.WriteByte('\n')

	return b.String()
}

func writePretty(b *strings.Builder, n SExp, depth int) {
	list, ok := n.(*List)
	if !ok {
		n.write(b, depth)
		return
	}

	if !hasListChild(list) {
		list.write(b, depth)
		return
	}

	b.WriteByte('(')

	for i, e := range list.Elements {
		if i > 0 {
			b.WriteByte('\n')
			b.WriteString(strings.Repeat("  ", depth+1))
		}

		writePretty(b, e, depth+1)
	}

	b.WriteByte(')')
}

func hasListChild(l *List) bool {
	for _, e := range l.Elements {
		if child, ok := e.(*List); ok && len(child.Elements) > 0 {
			return true
		}
	}

	return false
}
