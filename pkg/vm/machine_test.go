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
package vm

import (
	"testing"

	"github.com/consensys/go-tracevm/pkg/riscv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Machine_StartsAtEntry(t *testing.T) {
	program := riscv.ProgramFromInsns(0x40,
		riscv.AluImm{Op: riscv.Add, Rd: 5, Rs1: 0, Imm: 1})
	//
	m := NewMachine(program, WithRegister(7, 99))
	//
	assert.Equal(t, uint32(0x40), m.State().PC())
	assert.Equal(t, uint64(0), m.State().Clk())
	assert.Equal(t, uint32(99), m.State().Register(7))
	assert.False(t, m.Halted())
	//
	m.Step()
	assert.Equal(t, uint32(1), m.State().Register(5))
}

// A single indirect jump lands at 4; the fetch there finds a zero word,
// which records an illegal-instruction trap and advances the counter once
// more.  Hence the run takes two steps and finishes at 8.
func Test_Machine_SingleJump(t *testing.T) {
	program := riscv.ProgramFromInsns(0,
		riscv.Jalr{Rd: 1, Rs1: 0, Imm: 4})
	//
	record := NewMachine(program).Run()
	//
	require.Equal(t, 2, record.Len())
	assert.Equal(t, uint32(8), record.LastState().PC())
	assert.Equal(t, uint64(2), record.LastState().Clk())
	//
	trap, trapped := record.Trapped()
	assert.True(t, trapped)
	assert.Equal(t, TrapIllegal, trap)
	//
	_, exited := record.ExitCode()
	assert.False(t, exited)
}

// Three chained indirect jumps visit 4, 8 and 12 in turn; the trap at 12
// leaves the final counter at 16.
func Test_Machine_ChainedJumps(t *testing.T) {
	program := riscv.ProgramFromInsns(0,
		riscv.Jalr{Rd: 0, Rs1: 0, Imm: 4},
		riscv.Jalr{Rd: 0, Rs1: 0, Imm: 8},
		riscv.Jalr{Rd: 0, Rs1: 0, Imm: 12})
	//
	record := NewMachine(program).Run()
	//
	require.Equal(t, 4, record.Len())
	assert.Equal(t, uint32(16), record.LastState().PC())
	// The rows walk the jump chain in order.
	pcs := []uint32{0, 4, 8, 12}
	for i, row := range record.Rows() {
		assert.Equal(t, pcs[i], row.State.PC())
	}
}

// Storing byte 200 and reloading it unsigned yields 200 again, exercising
// the full store / load / halt path end to end.
func Test_Machine_StoreLoadRoundTrip(t *testing.T) {
	program := riscv.ProgramFromInsns(0,
		riscv.AluImm{Op: riscv.Add, Rd: riscv.RegA0, Rs1: 0, Imm: 200},
		riscv.Store{Width: riscv.Byte, Rs1: 0, Rs2: riscv.RegA0, Imm: 0x100},
		riscv.Load{Width: riscv.Byte, Signed: false, Rd: 11, Rs1: 0, Imm: 0x100},
		riscv.Ecall{})
	//
	record := NewMachine(program).Run()
	//
	require.Equal(t, 4, record.Len())
	assert.Equal(t, uint32(200), record.Rows()[2].Aux.Dst)
	assert.Equal(t, uint32(200), record.LastState().Register(11))
	//
	code, exited := record.ExitCode()
	assert.True(t, exited)
	assert.Equal(t, uint32(200), code)
	//
	_, trapped := record.Trapped()
	assert.False(t, trapped)
}

// A voluntary halt freezes the program counter at the halting instruction,
// unlike a trap.
func Test_Machine_HaltFreezesPC(t *testing.T) {
	program := riscv.ProgramFromInsns(0,
		riscv.AluImm{Op: riscv.Add, Rd: 5, Rs1: 0, Imm: 1},
		riscv.Ecall{})
	//
	record := NewMachine(program).Run()
	//
	assert.Equal(t, uint32(4), record.LastState().PC())
	assert.Equal(t, uint32(4), record.StateBeforeFinal().PC())
	assert.True(t, record.Rows()[1].Aux.WillHalt)
	assert.Equal(t, TrapNone, record.Rows()[1].Aux.Trap)
}

// Two runs of the same program with identical inputs produce records
// identical in every field, clocks included.
func Test_Machine_Deterministic(t *testing.T) {
	program := riscv.ProgramFromInsns(0,
		riscv.AluImm{Op: riscv.Add, Rd: riscv.RegA7, Rs1: 0, Imm: uint32(EcallRead)},
		riscv.AluImm{Op: riscv.Add, Rd: riscv.RegA0, Rs1: 0, Imm: 0x100},
		riscv.AluImm{Op: riscv.Add, Rd: riscv.RegA1, Rs1: 0, Imm: 4},
		riscv.Ecall{},
		riscv.Load{Width: riscv.Word, Signed: true, Rd: 5, Rs1: 0, Imm: 0x100},
		riscv.AluImm{Op: riscv.Add, Rd: riscv.RegA7, Rs1: 0, Imm: uint32(EcallHalt)},
		riscv.AluImm{Op: riscv.Add, Rd: riscv.RegA0, Rs1: 5, Imm: 0},
		riscv.Ecall{})
	//
	input := []byte{1, 2, 3, 4}
	first := NewMachine(program, WithHostIO(NewBufferIO(input))).Run()
	second := NewMachine(program, WithHostIO(NewBufferIO(input))).Run()
	//
	require.Equal(t, first.Rows(), second.Rows())
	//
	code, exited := first.ExitCode()
	require.True(t, exited)
	assert.Equal(t, uint32(0x04030201), code)
}

// The loaded image is shared between runs but never written: each machine
// layers its own stores over it.
func Test_Machine_RunsDoNotInterfere(t *testing.T) {
	program := riscv.ProgramFromInsns(0,
		riscv.AluImm{Op: riscv.Add, Rd: 5, Rs1: 0, Imm: 7},
		riscv.Store{Width: riscv.Byte, Rs1: 0, Rs2: 5, Imm: 0x40},
		riscv.Ecall{})
	//
	first := NewMachine(program)
	record := first.Run()
	assert.Equal(t, byte(7), record.LastState().Byte(0x40))
	//
	// A second machine from the same program must not see the first's store.
	second := NewMachine(program)
	assert.Equal(t, byte(0), second.State().Byte(0x40))
	//
	_, dirty := program.Image[0x40]
	assert.False(t, dirty)
}

// Every recorded row is a genuine pre-step snapshot: interrogating an early
// row after the run still shows memory and registers as they were then.
func Test_Machine_RowsSnapshotState(t *testing.T) {
	program := riscv.ProgramFromInsns(0,
		riscv.AluImm{Op: riscv.Add, Rd: 5, Rs1: 0, Imm: 9},
		riscv.Store{Width: riscv.Byte, Rs1: 0, Rs2: 5, Imm: 0x80},
		riscv.Ecall{})
	//
	record := NewMachine(program).Run()
	rows := record.Rows()
	//
	// Before the addi, register five is still zero.
	assert.Equal(t, uint32(0), rows[0].State.Register(5))
	assert.Equal(t, uint32(9), rows[1].State.Register(5))
	// Before the store, the byte is still zero; afterwards it is nine.
	assert.Equal(t, byte(0), rows[1].State.Byte(0x80))
	assert.Equal(t, byte(9), rows[2].State.Byte(0x80))
	assert.Equal(t, byte(9), record.LastState().Byte(0x80))
}

func Test_Machine_StepAfterHaltPanics(t *testing.T) {
	program := riscv.ProgramFromInsns(0, riscv.Ecall{})
	m := NewMachine(program)
	//
	m.Step()
	require.True(t, m.Halted())
	//
	assert.Panics(t, func() { m.Step() })
}
