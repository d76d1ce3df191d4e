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
// Package layout computes the non-normative schematic placement
// side-output described in spec §6: a grid of component positions
// decoupled from the pipeline's correctness contract, suitable for
// seeding a PCB/schematic tool's initial component scatter.
package layout

import "math"

// Spacing is the fixed x/y pitch between grid cells, in schematic units.
const (
	SpacingX = 2000
	SpacingY = 1500
)

// Origin is the grid's top-left anchor, in schematic units.
const (
	OriginX = 1000
	OriginY = 1000
)

// Position is one component's placed (x, y) coordinate.
type Position struct {
	Ref string
	X   int
	Y   int
}

// Grid places refs on a ceil(sqrt(n))-column grid, row-major in the
// given order, starting at Origin and spaced by Spacing. Purely
// presentational: it has no bearing on net connectivity or IC packing
// and callers may discard it without affecting correctness.
func Grid(refs []string) []Position {
	n := len(refs)
	if n == 0 {
		return nil
	}

	cols := int(math.Ceil(math.Sqrt(float64(n))))

	positions := make([]Position, n)
	for i, ref := range refs {
		row := i / cols
		col := i % cols

		positions[i] = Position{
			Ref: ref,
			X:   OriginX + col*SpacingX,
			Y:   OriginY + row*SpacingY,
		}
	}

	return positions
}
