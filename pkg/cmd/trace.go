// Copyright Consensys Software Inc.
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
	"math"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/consensys/go-tracevm/pkg/trace"
	"github.com/consensys/go-tracevm/pkg/trace/lt"
	"github.com/consensys/go-tracevm/pkg/vm"
)

// traceCmd represents the trace command, which executes a program and emits
// its column trace.
var traceCmd = &cobra.Command{
	Use:   "trace [flags] elf_file",
	Short: "Execute a program and emit its column trace.",
	Long: `Execute a 32-bit RISC-V executable to completion and generate the
	column trace consumed by the proof pipeline.  The trace is written as a
	binary trace file with --out, and otherwise printed as a table.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		program := readProgram(args[0])
		opts, _ := machineOptions(cmd)
		// Go!
		record := vm.NewMachine(program, opts...).Run()
		columns := trace.Generate(record)
		//
		if GetFlag(cmd, "pad") {
			trace.PadToPowerOfTwo(columns)
		}
		//
		log.Debugf("generated %d columns of %d rows", columns.Width(), columns.Height())
		//
		if filename := GetString(cmd, "out"); filename != "" {
			writeTraceFile(filename, columns)
		} else {
			printTrace(cmd, columns)
		}
	},
}

// writeTraceFile serialises a trace in the binary trace file format.
func writeTraceFile(filename string, columns *trace.ArrayTrace) {
	bytes, err := lt.ToBytes(lt.NewTraceFile(columns))
	//
	if err == nil {
		err = afero.WriteFile(fs, filename, bytes, 0644)
	}
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
}

// printTrace renders the configured window of the trace as a table on
// standard output.
func printTrace(cmd *cobra.Command, columns *trace.ArrayTrace) {
	printer := trace.NewPrinter().Start(GetUint(cmd, "start"))
	//
	if end := GetUint(cmd, "end"); end != math.MaxUint {
		printer.End(end)
	}
	//
	if GetFlag(cmd, "non-zero") {
		printer.Columns(trace.NonZeroColumns)
	}
	//
	printer.Print(columns)
}

func init() {
	rootCmd.AddCommand(traceCmd)
	traceCmd.Flags().StringP("out", "o", "", "write the trace as a binary trace file")
	traceCmd.Flags().Bool("pad", false, "pad columns to a power-of-two height")
	traceCmd.Flags().String("input", "", "file feeding the guest's read calls")
	traceCmd.Flags().Uint("start", 0, "first step to print")
	traceCmd.Flags().Uint("end", math.MaxUint, "last step to print (inclusive)")
	traceCmd.Flags().Bool("non-zero", false, "print only columns with a non-zero entry")
}
