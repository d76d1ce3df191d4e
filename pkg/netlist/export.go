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

import "strconv"

// ExportVersion is the document version reported in `(export (version D))`.
const ExportVersion = "D"

// Document builds the full s-expression netlist document described in
// spec §6:
//
//	(export (version D)
//	  (design (source "<top>") (date "<ts>") (tool "..."))
//	  (components (comp (ref …) (value …) (footprint …) (fields …)
//	                    (libsource …) (sheetpath …) (tstamp …)) …)
//	  (nets (net (code N) (name "…") (node (ref …) (pin …)) …) …))
func Document(r *Result, opts Options) *List {
	design := Field("design",
		Field("source", Quoted(r.TopName)),
		Field("date", Quoted(runTimestamp(opts.RunCounter))),
		Field("tool", Quoted(opts.ToolName)),
	)

	comps := &List{Elements: []SExp{Symbol("components")}}
	for _, c := range r.Components {
		comps.Elements = append(comps.Elements, componentField(c))
	}

	nets := &List{Elements: []SExp{Symbol("nets")}}
	for i, n := range r.Nets {
		nets.Elements = append(nets.Elements, netField(i+1, n))
	}

	return Field("export",
		Field("version", Symbol(ExportVersion)),
		design,
		comps,
		nets,
	)
}

func componentField(c Component) *List {
	return Field("comp",
		Field("ref", Symbol(c.Ref)),
		Field("value", Quoted(c.Value)),
		Field("footprint", Quoted(c.Footprint)),
		Field("fields"),
		Field("libsource"),
		Field("sheetpath"),
		Field("tstamp", Symbol(c.Tstamp)),
	)
}

func netField(code int, n Net) *List {
	fields := []SExp{
		Symbol("net"),
		Field("code", Symbol(strconv.Itoa(code))),
		Field("name", Quoted(n.Name)),
	}

	for _, ep := range n.Endpoints {
		fields = append(fields, Field("node", Field("ref", Symbol(ep.Ref)), Field("pin", Symbol(strconv.Itoa(ep.Pin)))))
	}

	return &List{Elements: fields}
}

// runTimestamp derives a deterministic, byte-stable "date" field from the
// run counter instead of time.Now(), per spec §5/§9.
func runTimestamp(runCounter uint64) string {
	return "run-" + strconv.FormatUint(runCounter, 10)
}
