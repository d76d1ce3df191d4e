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
	"strings"

	"github.com/gatepack/synth/pkg/gate"
	"github.com/gatepack/synth/pkg/util/collection/stack"
	"github.com/gatepack/synth/pkg/util/source"
)

type tokenKind uint8

const (
	tokIdent tokenKind = iota
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// tokenize splits a (post ternary-rewrite) expression into identifiers,
// the operators `~ & ^ |`, and parentheses. Whitespace is skipped; any
// other character is rejected.
func tokenize(s string, base int) ([]token, *Error) {
	var toks []token

	i := 0
	for i < len(s) {
		c := s[i]

		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '(':
			toks = append(toks, token{tokLParen, "(", i})
			i++
		case c == ')':
			toks = append(toks, token{tokRParen, ")", i})
			i++
		case c == '&' || c == '|' || c == '^' || c == '~':
			toks = append(toks, token{tokOp, string(c), i})
			i++
		case isIdentStart(c):
			j := i + 1
			for j < len(s) && isIdentPart(s[j]) {
				j++
			}
			// Allow a trailing bit-select `[...]` as part of the identifier.
			if j < len(s) && s[j] == '[' {
				k := strings.IndexByte(s[j:], ']')
				if k < 0 {
					return nil, errf(source.NewSpan(base+i, base+len(s)), "unterminated bit-select")
				}
				j += k + 1
			}

			toks = append(toks, token{tokIdent, s[i:j], i})
			i = j
		default:
			return nil, errf(source.NewSpan(base+i, base+i+1), "unexpected character %q", c)
		}
	}

	return toks, nil
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// precedence ranks binary operators; `~` is handled separately as a unary
// prefix operator since it is not left-associative-binary.
func precedence(op string) int {
	switch op {
	case "|":
		return 1
	case "^":
		return 2
	case "&":
		return 3
	default:
		return 0
	}
}

// Parse runs the shunting-yard algorithm over the tokenized, ternary-
// rewritten expression text and builds the AST described in ast.go. base
// is the byte offset of the start of s within the original source file,
// used to produce accurate error spans.
func Parse(s string, base int) (Node, *Error) {
	rewritten := RewriteTernary(s)

	toks, err := tokenize(rewritten, base)
	if err != nil {
		return nil, err
	}

	if len(toks) == 0 {
		return nil, errf(source.NewSpan(base, base+len(s)), "empty expression")
	}

	var (
		output = stack.NewStack[Node]()
		ops    = stack.NewStack[token]()
	)

	applyOp := func(t token) *Error {
		switch t.text {
		case "~":
			if output.IsEmpty() {
				return errf(source.NewSpan(base+t.pos, base+t.pos+1), "missing operand for ~")
			}

			output.Push(Not{output.Pop()})
		case "&", "|", "^":
			if output.Len() < 2 {
				return errf(source.NewSpan(base+t.pos, base+t.pos+1), "missing operand for %s", t.text)
			}

			r := output.Pop()
			l := output.Pop()

			switch t.text {
			case "&":
				output.Push(And{l, r})
			case "|":
				output.Push(Or{l, r})
			case "^":
				output.Push(Xor{l, r})
			}
		}

		return nil
	}

	expectOperand := true

	for _, t := range toks {
		switch t.kind {
		case tokIdent:
			if !expectOperand {
				return nil, errf(source.NewSpan(base+t.pos, base+t.pos+len(t.text)), "unexpected identifier %q", t.text)
			}

			name, serr := gate.SanitizeBitSelect(t.text, false)
			if serr != nil {
				return nil, errf(source.NewSpan(base+t.pos, base+t.pos+len(t.text)), "%s", serr.Error())
			}

			output.Push(Identifier{name})
			expectOperand = false
		case tokLParen:
			ops.Push(t)
			expectOperand = true
		case tokRParen:
			found := false

			for !ops.IsEmpty() {
				top := ops.Pop()
				if top.kind == tokLParen {
					found = true
					break
				}

				if err := applyOp(top); err != nil {
					return nil, err
				}
			}

			if !found {
				return nil, errf(source.NewSpan(base+t.pos, base+t.pos+1), "unbalanced parentheses")
			}

			expectOperand = false
		case tokOp:
			if t.text == "~" {
				// Unary prefix: right-associative, binds tighter than any
				// binary operator. It is pushed onto the operator stack and
				// applied to its operand when the next binary operator, a
				// closing parenthesis or the end of input pops it.
				ops.Push(t)
				expectOperand = true

				continue
			}

			if expectOperand {
				return nil, errf(source.NewSpan(base+t.pos, base+t.pos+1), "unexpected operator %q", t.text)
			}

			for !ops.IsEmpty() {
				top := ops.Peek(0)
				if top.kind != tokOp {
					break
				}

				if top.text == "~" || precedence(top.text) >= precedence(t.text) {
					ops.Pop()

					if err := applyOp(top); err != nil {
						return nil, err
					}

					continue
				}

				break
			}

			ops.Push(t)
			expectOperand = true
		}
	}

	if expectOperand {
		return nil, errf(source.NewSpan(base, base+len(s)), "trailing operator")
	}

	for !ops.IsEmpty() {
		top := ops.Pop()
		if top.kind == tokLParen {
			return nil, errf(source.NewSpan(base+top.pos, base+top.pos+1), "unbalanced parentheses")
		}

		if err := applyOp(top); err != nil {
			return nil, err
		}
	}

	if output.Len() != 1 {
		return nil, errf(source.NewSpan(base, base+len(s)), "malformed expression")
	}

	return output.Pop(), nil
}
