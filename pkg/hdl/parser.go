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
package hdl

import (
	"strconv"
	"strings"

	"github.com/gatepack/synth/pkg/expr"
	"github.com/gatepack/synth/pkg/gate"
	"github.com/gatepack/synth/pkg/util/source"
)

// Parse consumes HDL source text and produces a ModuleTable, per spec
// §4.1. It fails fatally with a *ParseError when a module header or
// port/wire declaration is malformed. Unknown constructs inside a module
// body are ignored, not fatal. Recoverable expression errors are appended
// to the returned warning slice.
func Parse(text string) (*ModuleTable, []Warning, error) {
	file := source.NewSourceFile("", text)
	stripped := stripComments(text)

	var (
		table    ModuleTable
		warnings []Warning
		counter  gate.Counter
		pos      = 0
	)

	for pos < len(stripped) {
		pos = skipSpace(stripped, pos)
		if pos >= len(stripped) {
			break
		}

		word, next := readWord(stripped, pos)
		if word != "module" {
			if word == "" {
				pos++
				continue
			}

			pos = next

			continue
		}

		mod, headerEnd, err := parseModuleHeader(stripped, next)
		if err != nil {
			return nil, withFile(warnings, file), attachFile(err, file)
		}

		endKwStart, afterEnd, err := findModuleEnd(stripped, headerEnd)
		if err != nil {
			return nil, withFile(warnings, file), attachFile(err, file)
		}

		if err := parseModuleBody(stripped[headerEnd:endKwStart], headerEnd, mod, &counter, &warnings); err != nil {
			return nil, withFile(warnings, file), attachFile(err, file)
		}

		table.Modules = append(table.Modules, mod)
		pos = afterEnd
	}

	return &table, withFile(warnings, file), nil
}

// attachFile stamps a freshly-constructed *ParseError with the source file
// it belongs to, so Error() can report a real line:col instead of raw byte
// offsets. Every constructor deep in the parser only has a span, not the
// file, at the point it is built.
func attachFile(err error, file *source.File) error {
	if pe, ok := err.(*ParseError); ok {
		pe.File = file
	}

	return err
}

// withFile stamps every accumulated Warning with the source file, the same
// way attachFile does for the fatal error path.
func withFile(warnings []Warning, file *source.File) []Warning {
	for i := range warnings {
		warnings[i].File = file
	}

	return warnings
}

// findModuleEnd scans from start (just after a module header's terminating
// ';') for the matching "endmodule" keyword, tolerating (but not
// requiring) stray nested "module"/"endmodule" pairs per spec §4.1's
// depth-aware scanner. It returns the offset of the matching "endmodule"
// keyword (i.e. the end of the module body) and the offset just past it.
func findModuleEnd(s string, start int) (bodyEnd int, afterEnd int, err error) {
	depth := 1
	pos := start

	for pos < len(s) {
		pos = skipSpace(s, pos)
		if pos >= len(s) {
			break
		}

		word, next := readWord(s, pos)

		switch word {
		case "module":
			depth++
			pos = next
		case "endmodule":
			depth--
			if depth == 0 {
				return pos, next, nil
			}

			pos = next
		case "":
			pos++
		default:
			pos = next
		}
	}

	return 0, 0, parseErrf(source.NewSpan(start, len(s)), "missing endmodule")
}

// parseModuleHeader parses the name and parenthesized port list following
// the `module` keyword, up to and including the terminating ';'. It
// returns the partially-populated Module (ports declared header-style
// already recorded) and the offset just past the ';'.
func parseModuleHeader(s string, pos int) (*Module, int, error) {
	pos = skipSpace(s, pos)

	name, next := readWord(s, pos)
	if name == "" {
		return nil, 0, parseErrf(source.NewSpan(pos, pos+1), "expected module name")
	}

	pos = skipSpace(s, next)

	if pos >= len(s) || s[pos] != '(' {
		return nil, 0, parseErrf(source.NewSpan(pos, pos+1), "expected '(' after module name %q", name)
	}

	closeIdx := matchingParen(s, pos)
	if closeIdx < 0 {
		return nil, 0, parseErrf(source.NewSpan(pos, len(s)), "unbalanced parentheses in port list of module %q", name)
	}

	portList := s[pos+1 : closeIdx]

	mod := &Module{Name: name}
	if err := parseHeaderPortList(portList, pos+1, mod); err != nil {
		return nil, 0, err
	}

	semiPos := skipSpace(s, closeIdx+1)
	if semiPos >= len(s) || s[semiPos] != ';' {
		return nil, 0, parseErrf(source.NewSpan(semiPos, semiPos+1), "expected ';' after port list of module %q", name)
	}

	return mod, semiPos + 1, nil
}

// matchingParen returns the index of the ')' matching the '(' at open, or
// -1 if unbalanced.
func matchingParen(s string, open int) int {
	depth := 0

	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

// matchingBracket returns the index of ']' matching the '[' at open.
func matchingBracket(s string, open int) int {
	for i := open; i < len(s); i++ {
		if s[i] == ']' {
			return i
		}
	}

	return -1
}

// parseHeaderPortList parses the ANSI-style comma-separated port list
// appearing directly inside a module's parentheses: each entry is either
// `direction [range] name` (header-style) or a bare `name` (non-ANSI
// style, whose direction is supplied later by a body-style declaration).
// base is text's absolute offset within the source file, so errors deep
// inside one comma-separated segment still carry a true file position
// rather than an offset relative to the segment itself.
func parseHeaderPortList(text string, base int, mod *Module) error {
	for _, seg := range splitTopLevelIndexed(text, ',') {
		trimmed := strings.TrimSpace(seg.text)
		if trimmed == "" {
			continue
		}

		segBase := base + seg.start + (strings.Index(seg.text, trimmed))

		if err := parsePortSegment(trimmed, segBase, mod, true); err != nil {
			return err
		}
	}

	return nil
}

// parsePortSegment parses one port declaration, either from the header
// port list (allowDirectionless=true, recording a nameless/internal
// placeholder when no direction is given) or from a body-style statement
// (allowDirectionless=false, direction is mandatory). base is seg's
// absolute offset within the source file.
func parsePortSegment(seg string, base int, mod *Module, allowDirectionless bool) error {
	i := 0
	i = skipSpace(seg, i)

	role := Internal
	hasDirection := false

	word, next := readWord(seg, i)

	switch word {
	case "input":
		role, hasDirection = Input, true
		i = next
	case "output":
		role, hasDirection = Output, true
		i = next
	case "inout":
		role, hasDirection = Input, true
		i = next
	default:
		if !allowDirectionless {
			return parseErrf(source.NewSpan(base+i, base+i+len(seg)), "expected input/output/inout in declaration %q", seg)
		}
	}

	i = skipSpace(seg, i)
	// Optional net-type keyword, e.g. "wire"/"reg".
	if w, n := readWord(seg, i); w == "wire" || w == "reg" {
		i = skipSpace(seg, n)
	}

	width := 1
	if i < len(seg) && seg[i] == '[' {
		close := matchingBracket(seg, i)
		if close < 0 {
			return parseErrf(source.NewSpan(base+i, base+len(seg)), "unbalanced '[' in declaration %q", seg)
		}

		w, err := parseRangeWidth(seg[i+1 : close])
		if err != nil {
			return parseErrf(source.NewSpan(base+i, base+close+1), "%s", err.Error())
		}

		width = w
		i = skipSpace(seg, close+1)
	}

	name := strings.TrimSpace(seg[i:])
	if name == "" {
		return parseErrf(source.NewSpan(base+i, base+len(seg)), "missing name in declaration %q", seg)
	}

	if !isValidSignalName(name) {
		return parseErrf(source.NewSpan(base+i, base+len(seg)), "malformed port declaration %q: expected a single signal name, possibly missing a comma", seg)
	}

	if !hasDirection && !allowDirectionless {
		return parseErrf(source.NewSpan(base+i, base+len(seg)), "missing direction for %q", name)
	}

	declareSignal(mod, name, width, role, hasDirection)

	return nil
}

// parseBodyPortDecl parses a body-style declaration's tail — everything
// after the already-consumed "input"/"output"/"inout" keyword, up to (but
// excluding) the terminating ';' — e.g. " wire [3:0] a, b, c". All names
// share the single direction and width given by role/the optional range.
// base is text's absolute offset within the source file.
func parseBodyPortDecl(role Role, text string, base int, mod *Module) error {
	i := skipSpace(text, 0)

	if w, n := readWord(text, i); w == "wire" || w == "reg" {
		i = skipSpace(text, n)
	}

	width := 1
	if i < len(text) && text[i] == '[' {
		close := matchingBracket(text, i)
		if close < 0 {
			return parseErrf(source.NewSpan(base+i, base+len(text)), "unbalanced '[' in declaration")
		}

		w, err := parseRangeWidth(text[i+1 : close])
		if err != nil {
			return parseErrf(source.NewSpan(base+i, base+close+1), "%s", err.Error())
		}

		width = w
		i = close + 1
	}

	for _, seg := range splitTopLevelIndexed(text[i:], ',') {
		name := strings.TrimSpace(seg.text)
		if name == "" {
			continue
		}

		if !isValidSignalName(name) {
			nameBase := base + i + seg.start + strings.Index(seg.text, name)
			return parseErrf(source.NewSpan(nameBase, nameBase+len(name)), "malformed port declaration %q: expected a single signal name, possibly missing a comma", name)
		}

		declareSignal(mod, name, width, role, true)
	}

	return nil
}

// parseRangeWidth computes width = |msb-lsb|+1 from a "[msb:lsb]" range
// body (without the brackets).
func parseRangeWidth(rng string) (int, error) {
	parts := strings.SplitN(rng, ":", 2)
	if len(parts) != 2 {
		return 1, nil
	}

	msb, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, err
	}

	lsb, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, err
	}

	width := msb - lsb
	if width < 0 {
		width = -width
	}

	return width + 1, nil
}

// isValidSignalName reports whether name is exactly one identifier,
// optionally followed by a single `[...]` bit/range select and nothing
// else — i.e. it could only have come from a single, well-formed
// declaration entry. A name containing embedded whitespace or trailing
// garbage (e.g. "a output b", produced by a missing comma between two
// port declarations) is not a valid signal name.
func isValidSignalName(name string) bool {
	word, rest := readWord(name, 0)
	if word == "" {
		return false
	}

	if rest == len(name) {
		return true
	}

	if name[rest] != '[' {
		return false
	}

	close := matchingBracket(name, rest)

	return close == len(name)-1
}

// declareSignal records (or widens) a signal declaration. Per spec §4.1,
// duplicate declarations of the same port name collapse to the maximum
// width; a directionless (non-ANSI) header entry is recorded as Internal
// until a body-style statement later supplies its real direction.
func declareSignal(mod *Module, name string, width int, role Role, hasDirection bool) {
	if !hasDirection {
		// Non-ANSI placeholder: record under Internal for now; a later
		// body-style declaration with the same name will upgrade it.
		upsert(&mod.Internals, name, width)
		return
	}

	switch role {
	case Input:
		// If a placeholder exists in Internals (from the header list),
		// remove it now that we know the real direction.
		removeByName(&mod.Internals, name)
		upsert(&mod.Inputs, name, width)
	case Output:
		removeByName(&mod.Internals, name)
		upsert(&mod.Outputs, name, width)
	default:
		upsert(&mod.Internals, name, width)
	}
}

func upsert(list *[]Signal, name string, width int) {
	for i, s := range *list {
		if s.Name == name {
			if width > s.Width {
				(*list)[i].Width = width
			}

			return
		}
	}

	*list = append(*list, Signal{Name: name, Width: width})
}

func removeByName(list *[]Signal, name string) {
	out := (*list)[:0]

	for _, s := range *list {
		if s.Name != name {
			out = append(out, s)
		}
	}

	*list = out
}

// splitTopLevel splits s on sep, ignoring occurrences nested inside ()/[].
func splitTopLevel(s string, sep byte) []string {
	var (
		parts []string
		depth int
		start int
	)

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		default:
			if s[i] == sep && depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}

	parts = append(parts, s[start:])

	return parts
}

// indexedSegment is one comma-separated segment returned by
// splitTopLevelIndexed: its raw (untrimmed) text plus the offset of that
// text's first byte within the string that was split.
type indexedSegment struct {
	text  string
	start int
}

// splitTopLevelIndexed behaves like splitTopLevel but also records each
// segment's starting offset, so callers needing to report an error inside
// one segment can recover that segment's true position in the enclosing
// text (and, by extension, in the original source file).
func splitTopLevelIndexed(s string, sep byte) []indexedSegment {
	var (
		segs  []indexedSegment
		depth int
		start int
	)

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		default:
			if s[i] == sep && depth == 0 {
				segs = append(segs, indexedSegment{text: s[start:i], start: start})
				start = i + 1
			}
		}
	}

	segs = append(segs, indexedSegment{text: s[start:], start: start})

	return segs
}

// parseModuleBody walks the statements of a module body (already sliced
// to exclude the trailing "endmodule"), dispatching to the relevant
// per-construct handler. base is the offset of body[0] within the
// original (comment-stripped) source, used for error spans. An unknown
// leading keyword is skipped together with its statement (up to the next
// top-level ';') or, when followed by `begin`, its whole begin/end block,
// per the parser's lenient ignore-unknown-statements policy.
func parseModuleBody(body string, base int, mod *Module, counter *gate.Counter, warnings *[]Warning) error {
	assignIdx := 0
	pos := 0

	for pos < len(body) {
		pos = skipSpace(body, pos)
		if pos >= len(body) {
			break
		}

		word, next := readWord(body, pos)
		if word == "" {
			pos++
			continue
		}

		switch word {
		case "input", "output", "inout":
			end := findTopLevelSemicolon(body, next)
			if end < 0 {
				return parseErrf(source.NewSpan(base+pos, base+len(body)), "missing ';' after %s declaration", word)
			}

			role := Internal
			if word == "output" {
				role = Output
			} else {
				role = Input
			}

			if err := parseBodyPortDecl(role, body[next:end], base+next, mod); err != nil {
				return err
			}

			pos = end + 1
		case "wire":
			end := findTopLevelSemicolon(body, next)
			if end < 0 {
				return parseErrf(source.NewSpan(base+pos, base+len(body)), "missing ';' after wire declaration")
			}

			if err := parseWireDecl(body[next:end], base+next, mod); err != nil {
				return err
			}

			pos = end + 1
		case "assign":
			end := findTopLevelSemicolon(body, next)
			if end < 0 {
				return parseErrf(source.NewSpan(base+pos, base+len(body)), "missing ';' after assign statement")
			}

			assignIdx++

			parseAssign(body[next:end], base+next, mod, counter, assignIdx, warnings)
			pos = end + 1
		case "always":
			newPos, err := parseAlwaysBlock(body, next, base, mod)
			if err != nil {
				return err
			}

			pos = newPos
		default:
			// Candidate instantiation: `Submodule instanceName ( ... ) ;`
			if handled, newPos, err := tryParseInstance(body, pos, base, word, next, mod); err != nil {
				return err
			} else if handled {
				pos = newPos
				continue
			}
			// Truly unknown construct: ignore its statement, or its whole
			// begin/end block when the keyword is followed by `begin`.
			pos = skipStatementOrBlock(body, skipSpace(body, next))
		}
	}

	return nil
}

// parseWireDecl parses `[range] name, name, ... ;` (the keyword `wire`
// already consumed; leading whitespace is skipped here).
func parseWireDecl(text string, base int, mod *Module) error {
	i := skipSpace(text, 0)

	width := 1
	if i < len(text) && text[i] == '[' {
		close := matchingBracket(text, i)
		if close < 0 {
			return parseErrf(source.NewSpan(base+i, base+len(text)), "unbalanced '[' in wire declaration")
		}

		w, err := parseRangeWidth(text[i+1 : close])
		if err != nil {
			return parseErrf(source.NewSpan(base+i, base+close+1), "%s", err.Error())
		}

		width = w
		i = close + 1
	}

	for _, seg := range splitTopLevelIndexed(text[i:], ',') {
		name := strings.TrimSpace(seg.text)
		if name == "" {
			continue
		}

		if !isValidSignalName(name) {
			nameBase := base + i + seg.start + strings.Index(seg.text, name)
			return parseErrf(source.NewSpan(nameBase, nameBase+len(name)), "malformed wire declaration %q: expected a single signal name, possibly missing a comma", name)
		}

		upsert(&mod.Internals, name, width)
	}

	return nil
}

// parseAssign parses `lhs = rhs` (the keyword `assign` already consumed).
// A malformed rhs produces a Warning and contributes zero gates, per spec
// §4.2/§7 — it is never a fatal ParseError.
func parseAssign(text string, base int, mod *Module, counter *gate.Counter, assignIdx int, warnings *[]Warning) {
	eq := strings.IndexByte(text, '=')
	if eq < 0 {
		*warnings = append(*warnings, Warning{Span: source.NewSpan(base, base+len(text)), Message: "assign missing '='"})
		return
	}

	lhsRaw := strings.TrimSpace(text[:eq])

	lhs, err := gate.SanitizeBitSelect(lhsRaw, false)
	if err != nil {
		*warnings = append(*warnings, Warning{Span: source.NewSpan(base, base+eq), Message: err.Error()})
		return
	}

	rhsText := text[eq+1:]
	rhsBase := base + eq + 1

	node, perr := expr.Parse(rhsText, rhsBase)
	if perr != nil {
		*warnings = append(*warnings, Warning{Span: perr.Span, Message: perr.Msg})
		return
	}

	tag := "assign" + strconv.Itoa(assignIdx)
	mod.Gates = append(mod.Gates, expr.Lower(node, lhs, counter, tag)...)
}

// parseAlwaysBlock parses an edge-triggered register block starting just
// after the `always` keyword: `@ ( posedge clk ) <stmt-or-block> ;`. It
// returns the offset just past the block. Blocks not sensitive to
// posedge are treated as an unsupported construct and ignored.
func parseAlwaysBlock(body string, pos int, base int, mod *Module) (int, error) {
	pos = skipSpace(body, pos)

	if pos >= len(body) || body[pos] != '@' {
		return skipUnknownStatement(body, pos), nil
	}

	pos = skipSpace(body, pos+1)

	if pos >= len(body) || body[pos] != '(' {
		return skipUnknownStatement(body, pos), nil
	}

	close := matchingParen(body, pos)
	if close < 0 {
		return 0, parseErrf(source.NewSpan(base+pos, base+len(body)), "unbalanced '(' in always sensitivity list")
	}

	sense := strings.TrimSpace(body[pos+1 : close])

	edgeWord, rest := readWord(sense, 0)
	clockRaw := strings.TrimSpace(sense[rest:])

	pos = skipSpace(body, close+1)

	if edgeWord != "posedge" {
		// negedge / level-sensitive blocks are outside the accepted
		// subset (spec §6); ignore the whole construct.
		return skipStatementOrBlock(body, pos), nil
	}

	clock, err := gate.SanitizeBitSelect(clockRaw, false)
	if err != nil {
		return 0, parseErrf(source.NewSpan(base+pos+1, base+close), "%s", err.Error())
	}

	if w, n := readWord(body, pos); w == "begin" {
		pos = n
		end := findMatchingEnd(body, pos)

		if end < 0 {
			return 0, parseErrf(source.NewSpan(base+pos, base+len(body)), "missing 'end' for always block")
		}

		for _, stmt := range splitTopLevel(body[pos:end], ';') {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" {
				continue
			}

			if err := parseRegisterAssign(stmt, clock, mod); err != nil {
				return 0, err
			}
		}

		afterEnd := end + len("end")

		return afterEnd, nil
	}

	end := findTopLevelSemicolon(body, pos)
	if end < 0 {
		return 0, parseErrf(source.NewSpan(base+pos, base+len(body)), "missing ';' after register assignment")
	}

	if err := parseRegisterAssign(strings.TrimSpace(body[pos:end]), clock, mod); err != nil {
		return 0, err
	}

	return end + 1, nil
}

// parseRegisterAssign parses one `q <= d` non-blocking assignment,
// emitting a DFF gate with inputs [d, clock] and output q, per spec
// §4.1.
func parseRegisterAssign(stmt string, clock string, mod *Module) error {
	idx := strings.Index(stmt, "<=")
	if idx < 0 {
		// Not a non-blocking assignment: ignore (lenient policy).
		return nil
	}

	lhsRaw := strings.TrimSpace(stmt[:idx])
	rhsRaw := strings.TrimSpace(stmt[idx+2:])

	q, err := gate.SanitizeBitSelect(lhsRaw, false)
	if err != nil {
		return nil //nolint:nilerr // malformed register target: ignored per lenient policy
	}

	d, err := gate.SanitizeBitSelect(rhsRaw, false)
	if err != nil {
		return nil //nolint:nilerr
	}

	mod.Gates = append(mod.Gates, gate.New(gate.DFF, []string{d, clock}, q, "reg_"+q))

	return nil
}

// findMatchingEnd finds the `end` keyword matching a `begin` starting at
// pos (just past the `begin` keyword), tolerating nested begin/end pairs.
func findMatchingEnd(body string, pos int) int {
	depth := 1

	for pos < len(body) {
		pos = skipSpace(body, pos)
		if pos >= len(body) {
			break
		}

		word, next := readWord(body, pos)

		switch word {
		case "begin":
			depth++
			pos = next
		case "end":
			depth--

			if depth == 0 {
				return pos
			}

			pos = next
		case "":
			pos++
		default:
			pos = next
		}
	}

	return -1
}

// skipStatementOrBlock skips over either a single `stmt ;` or a
// `begin ... end` block, returning the offset just past it.
func skipStatementOrBlock(body string, pos int) int {
	if w, n := readWord(body, pos); w == "begin" {
		end := findMatchingEnd(body, n)
		if end < 0 {
			return len(body)
		}

		return end + len("end")
	}

	end := findTopLevelSemicolon(body, pos)
	if end < 0 {
		return len(body)
	}

	return end + 1
}

// skipUnknownStatement skips to just past the next top-level ';'.
func skipUnknownStatement(body string, pos int) int {
	end := findTopLevelSemicolon(body, pos)
	if end < 0 {
		return len(body)
	}

	return end + 1
}

// tryParseInstance attempts to parse `Submodule instanceName ( .p(n), ... ) ;`
// starting at the already-read first word (the candidate submodule name).
// It reports handled=false (with no error) when the construct does not
// match this shape, letting the caller fall back to the unknown-statement
// skip.
func tryParseInstance(body string, segStart, base int, subName string, afterSub int, mod *Module) (handled bool, newPos int, err error) {
	pos := skipSpace(body, afterSub)

	instName, next := readWord(body, pos)
	if instName == "" {
		return false, 0, nil
	}

	pos = skipSpace(body, next)

	if pos >= len(body) || body[pos] != '(' {
		return false, 0, nil
	}

	close := matchingParen(body, pos)
	if close < 0 {
		return false, 0, parseErrf(source.NewSpan(base+pos, base+len(body)), "unbalanced '(' in instantiation of %q", subName)
	}

	semi := skipSpace(body, close+1)
	if semi >= len(body) || body[semi] != ';' {
		return false, 0, nil
	}

	inst := ModuleInstance{SubmoduleName: subName, InstanceName: instName, PortMap: map[string]string{}}

	for _, conn := range splitTopLevel(body[pos+1:close], ',') {
		conn = strings.TrimSpace(conn)
		if conn == "" {
			continue
		}

		if conn[0] != '.' {
			continue
		}

		lp := strings.IndexByte(conn, '(')
		rp := strings.LastIndexByte(conn, ')')

		if lp < 0 || rp < 0 || rp < lp {
			continue
		}

		formal := strings.TrimSpace(conn[1:lp])
		actualRaw := strings.TrimSpace(conn[lp+1 : rp])

		actual, serr := gate.SanitizeBitSelect(actualRaw, true)
		if serr != nil {
			// Range select used as a connection target: not a legal
			// instantiation; ignore this connection (lenient policy).
			continue
		}

		inst.PortMap[formal] = actual
		inst.PortOrder = append(inst.PortOrder, formal)
	}

	mod.Instances = append(mod.Instances, inst)

	return true, semi + 1, nil
}
