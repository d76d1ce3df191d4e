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
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gatepack/synth/pkg/flatten"
	"github.com/gatepack/synth/pkg/hdl"
	"github.com/gatepack/synth/pkg/layout"
	"github.com/gatepack/synth/pkg/netlist"
	"github.com/gatepack/synth/pkg/pack"
	"github.com/gatepack/synth/pkg/synth"
)

// rootCmd is the single flat command this CLI exposes: the spec's surface
// has no subcommands, unlike the teacher's multi-command tree.
var rootCmd = &cobra.Command{
	Use:   "synth [flags] source.hdl",
	Short: "Synthesize a 74-series discrete-logic netlist from HDL source.",
	Long:  "Compile a restricted HDL subset into a gate-level netlist packed onto 74-series discrete logic ICs.",
	Args:  cobra.ExactArgs(1),
	Run:   run,
}

// Execute runs the root command, exiting with status 1 if cobra reports
// an error. Called once by cmd/synth/main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) {
	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}

	inputPath := args[0]

	source, err := os.ReadFile(inputPath)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	cfg := synth.Config{
		EmitJSON:   GetFlag(cmd, "json"),
		Verbose:    GetFlag(cmd, "verbose"),
		OutputPath: resolveOutputPath(cmd, inputPath),
		ToolName:   "synth",
		RunCounter: 1,
	}

	result, warnings, err := synth.Synthesize(string(source), cfg)
	if err != nil {
		reportFatal(err)
	}

	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s: %s\n", w.Stage, w.Message)
	}

	if err := writeOutput(result, cfg); err != nil {
		fmt.Println(err)
		os.Exit(4)
	}

	if GetFlag(cmd, "schematic") {
		sch := layout.RenderSchematic(result.Top, result.ICs)
		if err := os.WriteFile(schematicPath(cfg.OutputPath), []byte(sch), 0o644); err != nil {
			fmt.Println(err)
			os.Exit(4)
		}
	}

	if GetFlag(cmd, "ic-report") {
		printICReport(result.ICs)
	}
}

// reportFatal classifies the three fatal error kinds spec §7 names and
// exits with the matching code from spec §6: 2 for input problems
// (handled earlier, at the os.ReadFile call site), 3 for every
// pipeline-fatal condition.
func reportFatal(err error) {
	switch err.(type) {
	case *hdl.ParseError, *flatten.HierarchyError, *pack.PackError:
		fmt.Println(err)
		os.Exit(3)
	default:
		fmt.Println(err)
		os.Exit(1)
	}
}

func writeOutput(result *synth.Result, cfg synth.Config) error {
	if cfg.EmitJSON {
		data, err := netlist.ToJSON(result.Top, result.ICs)
		if err != nil {
			return err
		}

		return os.WriteFile(jsonPath(cfg.OutputPath), data, 0o644)
	}

	doc := netlist.Document(result.Doc, netlist.Options{ToolName: cfg.ToolName, RunCounter: cfg.RunCounter})

	return os.WriteFile(cfg.OutputPath, []byte(netlist.RenderPretty(doc)), 0o644)
}

// resolveOutputPath honors -o/--output, or derives name.net from the
// input's base name when the flag was not set.
func resolveOutputPath(cmd *cobra.Command, inputPath string) string {
	if cmd.Flags().Changed("output") {
		return GetString(cmd, "output")
	}

	base := filepath.Base(inputPath)
	ext := filepath.Ext(base)

	return strings.TrimSuffix(base, ext) + ".net"
}

func jsonPath(outputPath string) string {
	ext := filepath.Ext(outputPath)
	return strings.TrimSuffix(outputPath, ext) + ".json"
}

// schematicPath derives the side-output's path from the main output path,
// the same way jsonPath does: same base name, .sch extension.
func schematicPath(outputPath string) string {
	ext := filepath.Ext(outputPath)
	return strings.TrimSuffix(outputPath, ext) + ".sch"
}

func init() {
	rootCmd.Flags().StringP("output", "o", "", "output netlist file path (default: <input base name>.net)")
	rootCmd.Flags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.Flags().Bool("json", false, "emit the JSON IR instead of the s-expression netlist")
	rootCmd.Flags().Bool("ic-report", false, "print a per-part-number IC tally to stdout")
	rootCmd.Flags().Bool("schematic", false, "also emit a non-normative .sch component-placement side-output")
}
