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
package trace

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"

	"github.com/consensys/go-tracevm/pkg/riscv"
	"github.com/consensys/go-tracevm/pkg/vm"
)

// clkColumn names the step counter column, the one column which keeps
// counting upwards under padding.
const clkColumn = "clk"

// Generate materialises the column trace of a run, one row per executed step.
// Each row embeds the pre-step machine state (clock, program counter, every
// register), the flattened operand view of the executed instruction (one-hot
// register selectors, operand and destination values, immediate), a halt flag
// and a one-hot selector over the operation mnemonics.
//
// Column heights equal the number of executed steps; use PadToPowerOfTwo
// before handing the trace to consumers requiring power-of-two heights.
func Generate(record *vm.Record) *ArrayTrace {
	var (
		rows = record.Rows()
		n    = len(rows)
		one  = fr.One()
		//
		clk  = make([]fr.Element, n)
		pc   = make([]fr.Element, n)
		op1  = make([]fr.Element, n)
		op2  = make([]fr.Element, n)
		dst  = make([]fr.Element, n)
		imm  = make([]fr.Element, n)
		halt = make([]fr.Element, n)
		//
		rs1Select = makeGrid(riscv.NumRegs, n)
		rs2Select = makeGrid(riscv.NumRegs, n)
		rdSelect  = makeGrid(riscv.NumRegs, n)
		selectors = makeGrid(int(riscv.NumOps), n)
		regs      = makeGrid(riscv.NumRegs, n)
	)
	//
	for i, row := range rows {
		var (
			state    = row.State
			operands = row.Aux.Insn.Operands()
		)
		//
		clk[i] = fr.NewElement(state.Clk())
		pc[i] = fr.NewElement(uint64(state.PC()))
		op1[i] = fr.NewElement(uint64(state.Register(operands.Rs1)))
		op2[i] = fr.NewElement(uint64(state.Register(operands.Rs2)))
		dst[i] = fr.NewElement(uint64(row.Aux.Dst))
		imm[i] = fr.NewElement(uint64(operands.Imm))
		//
		if row.Aux.WillHalt {
			halt[i] = one
		}
		// Instructions without some operand select register zero there,
		// keeping every selector column exactly one-hot.
		rs1Select[operands.Rs1][i] = one
		rs2Select[operands.Rs2][i] = one
		rdSelect[operands.Rd][i] = one
		selectors[row.Aux.Insn.Opcode()][i] = one
		//
		for r := 0; r < riscv.NumRegs; r++ {
			regs[r][i] = fr.NewElement(uint64(state.Register(riscv.Reg(r))))
		}
	}
	//
	tr := EmptyArrayTrace()
	tr.AddColumn(clkColumn, clk)
	tr.AddColumn("pc", pc)
	addGrid(tr, "rs1_select", rs1Select)
	addGrid(tr, "rs2_select", rs2Select)
	addGrid(tr, "rd_select", rdSelect)
	tr.AddColumn("op1_value", op1)
	tr.AddColumn("op2_value", op2)
	tr.AddColumn("dst_value", dst)
	tr.AddColumn("imm_value", imm)
	tr.AddColumn("s_halt", halt)
	//
	for op := riscv.Op(0); op < riscv.NumOps; op++ {
		tr.AddColumn("s_"+op.String(), selectors[op])
	}
	//
	addGrid(tr, "reg", regs)
	//
	return tr
}

// makeGrid allocates a family of zeroed columns of the given height.
func makeGrid(count int, height int) [][]fr.Element {
	grid := make([][]fr.Element, count)
	//
	for i := range grid {
		grid[i] = make([]fr.Element, height)
	}
	//
	return grid
}

// addGrid registers a family of columns under indexed names (e.g. "reg[7]").
func addGrid(tr *ArrayTrace, prefix string, grid [][]fr.Element) {
	for i, data := range grid {
		tr.AddColumn(fmt.Sprintf("%s[%d]", prefix, i), data)
	}
}
