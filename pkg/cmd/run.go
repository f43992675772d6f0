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
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/consensys/go-tracevm/pkg/riscv"
	"github.com/consensys/go-tracevm/pkg/util/termio"
	"github.com/consensys/go-tracevm/pkg/vm"
)

// runCmd represents the run command, which executes a program to completion
// and reports how it halted.
var runCmd = &cobra.Command{
	Use:   "run [flags] elf_file",
	Short: "Execute a program and report how it halted.",
	Long: `Execute a 32-bit RISC-V executable to completion.  The guest's
	read environment calls consume the --input file; its write calls are
	captured and written to the --output file (or standard output).  There
	is no step budget: a program which never halts runs forever.`,
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
		opts, io := machineOptions(cmd)
		// Go!
		record := vm.NewMachine(program, opts...).Run()
		//
		reportHalt(record)
		writeGuestOutput(cmd, io)
		//
		if GetFlag(cmd, "dump-regs") {
			dumpRegisters(record.LastState())
		}
	},
}

// writeGuestOutput delivers the bytes the guest wrote through its output
// channel, either to the --output file or to standard output.
func writeGuestOutput(cmd *cobra.Command, io *vm.BufferIO) {
	output := io.Output()
	//
	if filename := GetString(cmd, "output"); filename != "" {
		if err := afero.WriteFile(fs, filename, output, 0644); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
	} else if len(output) > 0 {
		os.Stdout.Write(output)
	}
}

// dumpRegisters renders the final register file as a four-wide table.
func dumpRegisters(state *vm.State) {
	var (
		cols = uint(4)
		rows = uint(riscv.NumRegs) / cols
		tp   = termio.NewTablePrinter(cols, rows)
	)
	//
	for reg := riscv.Reg(0); reg < riscv.NumRegs; reg++ {
		var (
			cell = fmt.Sprintf("%v = 0x%08x", reg, state.Register(reg))
			col  = uint(reg) / rows
			row  = uint(reg) % rows
		)
		//
		tp.Set(col, row, cell)
	}
	//
	fmt.Printf("pc = 0x%08x, clk = %d\n", state.PC(), state.Clk())
	tp.Print()
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().String("input", "", "file feeding the guest's read calls")
	runCmd.Flags().StringP("output", "o", "", "file capturing the guest's write calls")
	runCmd.Flags().Bool("dump-regs", false, "print the final register file")
}
