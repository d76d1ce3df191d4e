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
package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/term"

	"github.com/gatepack/synth/pkg/pack"
)

// defaultReportWidth is used when stdout is not a terminal (spec §A.4
// falls back to a fixed width rather than failing), mirroring the
// teacher's termio package falling back gracefully when term.GetSize
// cannot determine real dimensions.
const defaultReportWidth = 80

// printICReport prints a per-part-number IC tally to stdout, sized to the
// terminal width the same way the teacher's pkg/util/termio detects
// width via golang.org/x/term before laying out a table.
func printICReport(ics []pack.ICInstance) {
	width := defaultReportWidth
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}

	counts := map[string]int{}
	for _, ic := range ics {
		counts[ic.Part]++
	}

	var parts []string
	for part := range counts {
		parts = append(parts, part)
	}

	sort.Strings(parts)

	fmt.Println(strings.Repeat("-", min(width, 40)))
	fmt.Printf("%-12s %s\n", "PART", "COUNT")
	fmt.Println(strings.Repeat("-", min(width, 40)))

	total := 0

	for _, part := range parts {
		fmt.Printf("%-12s %d\n", part, counts[part])
		total += counts[part]
	}

	fmt.Println(strings.Repeat("-", min(width, 40)))
	fmt.Printf("%-12s %d\n", "TOTAL", total)
}
