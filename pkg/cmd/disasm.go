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
	"sort"

	"github.com/spf13/cobra"

	"github.com/consensys/go-tracevm/pkg/riscv"
)

// disasmCmd represents the disasm command, which prints a decoded listing of
// a loaded program image.
var disasmCmd = &cobra.Command{
	Use:   "disasm [flags] elf_file",
	Short: "Print a decoded listing of a program image.",
	Long: `Load a 32-bit RISC-V executable and print each word of its image
	alongside its decoded form.  Words without a supported encoding are
	listed as raw data rather than rejected, exactly as the execution
	engine would treat them.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		program := readProgram(args[0])
		//
		fmt.Printf("entry: 0x%x\n", program.Entry)
		disassemble(program)
	},
}

// disassemble lists the image word by word, in address order, with a blank
// line separating discontiguous regions.
func disassemble(program riscv.Program) {
	var previous uint32
	//
	for i, addr := range imageWords(program) {
		if i > 0 && addr != previous+4 {
			fmt.Println()
		}
		//
		word := imageWord(program, addr)
		fmt.Printf("%8x:\t%08x\t%v\n", addr, word, riscv.Decode(addr, word))
		//
		previous = addr
	}
}

// imageWords determines the word-aligned addresses covering the image, in
// ascending order.
func imageWords(program riscv.Program) []uint32 {
	seen := make(map[uint32]bool)
	//
	for addr := range program.Image {
		seen[addr&^3] = true
	}
	//
	addrs := make([]uint32, 0, len(seen))
	for addr := range seen {
		addrs = append(addrs, addr)
	}
	//
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
	//
	return addrs
}

// imageWord composes the little-endian word at the given address, with absent
// bytes reading as zero.
func imageWord(program riscv.Program, addr uint32) uint32 {
	var word uint32
	//
	for i := uint32(0); i < 4; i++ {
		word |= uint32(program.Image[addr+i]) << (8 * i)
	}
	//
	return word
}

func init() {
	rootCmd.AddCommand(disasmCmd)
}
