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

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/consensys/go-tracevm/pkg/riscv"
	"github.com/consensys/go-tracevm/pkg/vm"
)

// fs is the filesystem commands read programs from and write traces to.
// Tests swap in an in-memory filesystem here.
var fs afero.Fs = afero.NewOsFs()

// GetFlag gets an expected flag, or panic if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string, or panic if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetUint gets an expected uint, or panic if an error arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// readProgram loads an executable from the filesystem, exiting with a report
// when the file cannot be read or is not a valid 32-bit RISC-V executable.
func readProgram(filename string) riscv.Program {
	bytes, err := afero.ReadFile(fs, filename)
	//
	if err == nil {
		var program riscv.Program
		//
		if program, err = riscv.LoadELF(bytes); err == nil {
			return program
		}
	}
	// Handle error
	fmt.Println(err)
	os.Exit(2)
	// unreachable
	return riscv.Program{}
}

// machineOptions assembles the machine options shared by the run and trace
// commands: initial register seeds and the host input channel.
func machineOptions(cmd *cobra.Command) ([]vm.Option, *vm.BufferIO) {
	var (
		opts  []vm.Option
		input []byte
	)
	//
	if filename := GetString(cmd, "input"); filename != "" {
		bytes, err := afero.ReadFile(fs, filename)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		input = bytes
	}
	// A buffered channel is always attached, so guest writes are captured
	// even when no input file was supplied.
	io := vm.NewBufferIO(input)
	opts = append(opts, vm.WithHostIO(io))
	//
	return opts, io
}

// reportHalt summarises how a run ended: a voluntary halt reports the guest's
// exit code, whilst a trap reports its kind and the offending instruction.
func reportHalt(record *vm.Record) {
	if trap, trapped := record.Trapped(); trapped {
		final := record.Rows()[record.Len()-1]
		fmt.Printf("trap (%v) at pc 0x%x: %v [%d steps]\n",
			trap, final.State.PC(), final.Aux.Insn, record.Len())
	} else {
		code, _ := record.ExitCode()
		fmt.Printf("halted with exit code %d [%d steps]\n", code, record.Len())
	}
}
