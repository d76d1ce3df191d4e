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
// Package synth wires the lexer/parser, expression compiler, hierarchy
// flattener, IC packer and net resolver into the single pipeline described
// in spec §4: parse -> flatten -> pack -> resolve. It is the one place
// that knows about every stage; each stage package otherwise only knows
// about the gate.Gate IR it produces or consumes.
package synth

import (
	log "github.com/sirupsen/logrus"

	"github.com/gatepack/synth/pkg/flatten"
	"github.com/gatepack/synth/pkg/hdl"
	"github.com/gatepack/synth/pkg/netlist"
	"github.com/gatepack/synth/pkg/pack"
)

// Config holds the knobs spec §6 exposes to the external CLI collaborator:
// output shape (s-expression vs. JSON), verbosity, and the deterministic
// run seed used in place of wall-clock timestamps (spec §5/§9).
type Config struct {
	EmitJSON   bool
	Verbose    bool
	OutputPath string
	ToolName   string
	RunCounter uint64
}

// Warning is a recoverable diagnostic surfaced from any pipeline stage,
// normalized to a plain string for the CLI's warning channel (spec §7).
// The richer per-stage Warning types (hdl.Warning carries a source.Span;
// flatten.Warning carries a plain message) are flattened here since a
// caller past this point has no use for stage-specific structure.
type Warning struct {
	Stage   string
	Message string
}

// Result is everything a caller needs to render either output format
// (spec §6): the resolved net/component document and the packed IC list
// (for the --ic-report tally and the JSON IR's per-IC gate listing).
type Result struct {
	Doc *netlist.Result
	ICs []pack.ICInstance
	Top *hdl.Module
}

// Synthesize runs the full pipeline over source text, per spec §4: lex and
// parse into a ModuleTable, select and flatten the top module, pack the
// flat gate list into ICs, and resolve the final net set. A ParseError,
// HierarchyError or PackError aborts the run (spec §7); every other
// diagnostic is accumulated and returned on the warning channel alongside
// a populated Result.
func Synthesize(source string, cfg Config) (*Result, []Warning, error) {
	var warnings []Warning

	table, hdlWarnings, err := hdl.Parse(source)
	if err != nil {
		return nil, warnings, err
	}

	for _, w := range hdlWarnings {
		warnings = append(warnings, Warning{Stage: "parse", Message: w.String()})
	}

	log.Debugf("parse complete: %d modules", len(table.Modules))

	top, err := flatten.SelectTop(table)
	if err != nil {
		return nil, warnings, err
	}

	log.Infof("selected top module %q", top.Name)

	flat, flattenWarnings, err := flatten.Flatten(table, top)
	if err != nil {
		return nil, warnings, err
	}

	for _, w := range flattenWarnings {
		warnings = append(warnings, Warning{Stage: "flatten", Message: w.String()})
	}

	log.Debugf("flatten complete: %d gates", len(flat))

	ics, aliases, err := pack.Pack(flat)
	if err != nil {
		return nil, warnings, err
	}

	log.Infof("pack complete: %d ICs, %d aliases", len(ics), len(aliases))

	doc := netlist.Resolve(top, ics, aliases, netlist.Options{
		ToolName:   cfg.ToolName,
		RunCounter: cfg.RunCounter,
	})

	log.Debugf("resolve complete: %d nets, %d components", len(doc.Nets), len(doc.Components))

	for _, w := range warnings {
		log.Warnf("%s: %s", w.Stage, w.Message)
	}

	return &Result{Doc: doc, ICs: ics, Top: top}, warnings, nil
}
