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
	"fmt"
	"sort"

	"github.com/gatepack/synth/pkg/hdl"
	"github.com/gatepack/synth/pkg/pack"
	"github.com/gatepack/synth/pkg/util/collection/hash"
)

// Options configures emission details that spec §5/§9 require to be
// deterministic rather than wall-clock-seeded: a per-run counter seeds
// every timestamp and net code so output is byte-stable across runs
// given identical input.
type Options struct {
	ToolName   string
	RunCounter uint64
}

// Result is the Resolver's output: the final component list and net set
// described in spec §4.5/§6, ready for s-expression or JSON rendering.
type Result struct {
	TopName    string
	Components []Component
	Nets       []Net
}

// Resolve materializes the final net set and component list for top,
// given the packer's ICInstances and collected alias pairs, per spec
// §4.5:
//
//  1. one single-endpoint net per bit of every top-level input/output
//     port, anchored to a JIN_/JOUT_ connector;
//  2. one endpoint per (IC, pin) in every real IC's pin map;
//  3. the VCC/GND power nets, plus one decoupling capacitor per IC;
//  4. ALIAS merges, unioning src's endpoints into dst and deleting src;
//  5. a shared GND_UNUSED net collecting every real IC's unassigned,
//     non-power pins;
//  6. port-declaration deduplication (defensive — the parser already
//     collapses duplicates to their widest declared width, per spec
//     §4.1, so this is a second line of defense rather than load-bearing).
func Resolve(top *hdl.Module, ics []pack.ICInstance, aliases []pack.AliasPair, opts Options) *Result {
	nb := newNetBuilder()

	var components []Component

	tstamp := uint64(0)
	nextTstamp := func() string {
		tstamp++
		return fmt.Sprintf("%08X", opts.RunCounter*1_000_000+tstamp)
	}

	for _, sig := range dedupSignals(top.Inputs) {
		addConnector(nb, &components, "JIN", sig, nextTstamp)
	}

	for _, sig := range dedupSignals(top.Outputs) {
		addConnector(nb, &components, "JOUT", sig, nextTstamp)
	}

	for _, ic := range ics {
		components = append(components, Component{Ref: ic.Ref, Value: ic.Part, Footprint: ic.Package, Tstamp: nextTstamp()})

		for _, pin := range sortedPins(ic.PinNet) {
			net := ic.PinNet[pin]
			if net == "VCC" || net == "GND" {
				continue
			}

			nb.add(net, Endpoint{Ref: ic.Ref, Pin: pin})
		}
	}

	for _, ic := range ics {
		for _, pin := range sortedPins(ic.PinNet) {
			switch ic.PinNet[pin] {
			case "VCC":
				nb.add("VCC", Endpoint{Ref: ic.Ref, Pin: pin})
			case "GND":
				nb.add("GND", Endpoint{Ref: ic.Ref, Pin: pin})
			}
		}
	}

	for i := range ics {
		capRef := fmt.Sprintf("C%d", i+1)
		components = append(components, Component{Ref: capRef, Value: "100nF", Footprint: "CAP-0603", Tstamp: nextTstamp()})
		nb.add("VCC", Endpoint{Ref: capRef, Pin: 1})
		nb.add("GND", Endpoint{Ref: capRef, Pin: 2})
	}

	for _, a := range aliases {
		nb.merge(a.Dest, a.Src)
	}

	for _, ic := range ics {
		if len(ic.Gates) == 0 {
			continue
		}

		spec := pack.Catalog[ic.Gates[0].Kind]

		used := hash.NewSet[pinKey](uint(len(ic.PinNet) + 2))
		used.Insert(pinKey(spec.VCC))
		used.Insert(pinKey(spec.GND))

		for pin := range ic.PinNet {
			used.Insert(pinKey(pin))
		}

		for _, pin := range spec.AllPins() {
			if !used.Contains(pinKey(pin)) {
				nb.add("GND_UNUSED", Endpoint{Ref: ic.Ref, Pin: pin})
			}
		}
	}

	return &Result{TopName: top.Name, Components: components, Nets: nb.snapshot()}
}

func addConnector(nb *netBuilder, components *[]Component, prefix string, sig hdl.Signal, nextTstamp func() string) {
	for i, netName := range expandSignalNets(sig) {
		ref := fmt.Sprintf("%s_%s", prefix, sig.Name)
		if sig.Width > 1 {
			ref = fmt.Sprintf("%s_%s_%d", prefix, sig.Name, i)
		}

		*components = append(*components, Component{Ref: ref, Value: "conn", Footprint: "", Tstamp: nextTstamp()})
		nb.add(netName, Endpoint{Ref: ref, Pin: 1})
	}
}

// expandSignalNets returns the per-bit net names for a port: a width-1
// port keeps its bare name; a wider port expands to name_0..name_{W-1}
// (spec §4.5).
func expandSignalNets(sig hdl.Signal) []string {
	if sig.Width <= 1 {
		return []string{sig.Name}
	}

	names := make([]string, sig.Width)
	for i := range names {
		names[i] = fmt.Sprintf("%s_%d", sig.Name, i)
	}

	return names
}

// dedupSignals collapses duplicate port declarations by name, keeping
// the widest declared width, preserving first-seen order.
func dedupSignals(sigs []hdl.Signal) []hdl.Signal {
	var (
		order []string
		byName = map[string]hdl.Signal{}
	)

	for _, s := range sigs {
		if existing, ok := byName[s.Name]; ok {
			if s.Width > existing.Width {
				existing.Width = s.Width
				byName[s.Name] = existing
			}

			continue
		}

		order = append(order, s.Name)
		byName[s.Name] = s
	}

	out := make([]hdl.Signal, len(order))
	for i, n := range order {
		out[i] = byName[n]
	}

	return out
}

// pinKey adapts a bare pin number to hash.Hasher so the unused-pin
// computation above can use hash.Set instead of a bespoke bool map.
type pinKey int

func (k pinKey) Equals(o pinKey) bool { return k == o }
func (k pinKey) Hash() uint64         { return uint64(k) }

func sortedPins(m map[int]string) []int {
	pins := make([]int, 0, len(m))
	for p := range m {
		pins = append(pins, p)
	}

	sort.Ints(pins)

	return pins
}

// netAccum is one in-progress net: an ordered endpoint slice for
// deterministic output plus a hash.Set mirror so repeated add() calls for
// the same (ref, pin) — e.g. an ALIAS merge re-adding an endpoint already
// present on the destination net — are rejected in O(1) instead of a
// linear scan of Endpoints.
type netAccum struct {
	name      string
	endpoints []Endpoint
	seen      *hash.Set[Endpoint]
}

func newNetAccum(name string) *netAccum {
	return &netAccum{name: name, seen: hash.NewSet[Endpoint](4)}
}

func (a *netAccum) add(ep Endpoint) {
	if a.seen.Insert(ep) {
		return
	}

	a.endpoints = append(a.endpoints, ep)
}

// netBuilder accumulates Nets in first-referenced order — a plain map
// would make iteration order (and therefore emitted net order)
// nondeterministic, which spec §5 explicitly forbids.
type netBuilder struct {
	order  []string
	byName map[string]*netAccum
}

func newNetBuilder() *netBuilder {
	return &netBuilder{byName: map[string]*netAccum{}}
}

func (b *netBuilder) get(name string) *netAccum {
	if n, ok := b.byName[name]; ok {
		return n
	}

	n := newNetAccum(name)
	b.byName[name] = n
	b.order = append(b.order, name)

	return n
}

func (b *netBuilder) add(name string, ep Endpoint) {
	b.get(name).add(ep)
}

// merge unions src's endpoints into dst and deletes src, per the ALIAS
// rule in spec §4.5. A self-alias (dst == src) is a no-op.
func (b *netBuilder) merge(dst, src string) {
	if dst == src {
		return
	}

	s, ok := b.byName[src]
	if !ok {
		return
	}

	d := b.get(dst)
	for _, ep := range s.endpoints {
		d.add(ep)
	}

	delete(b.byName, src)

	for i, n := range b.order {
		if n == src {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

func (b *netBuilder) snapshot() []Net {
	nets := make([]Net, len(b.order))
	for i, n := range b.order {
		acc := b.byName[n]
		nets[i] = Net{Name: acc.name, Endpoints: acc.endpoints}
	}

	return nets
}
