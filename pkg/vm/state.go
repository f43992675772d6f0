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
	"github.com/consensys/go-tracevm/pkg/riscv"
)

// State is the complete machine state at one point in time: the register
// file, program counter, clock and a view of memory at that clock.  States
// are plain values; the machine advances by computing a fresh state each
// step, and the states stored in the execution record remain valid snapshots
// for the lifetime of the run.
//
// All program counter and register arithmetic is performed on uint32, whose
// operations Go defines modulo 2^32.  That wraparound is the deterministic
// modular reduction the trace relies upon; overflow is never an error.
type State struct {
	// regs is the general-purpose register file.  Index zero is hardwired to
	// zero: reads yield 0 and writes are discarded.
	regs [riscv.NumRegs]uint32
	// pc is the program counter.
	pc uint32
	// clk counts executed steps, starting from zero in the initial state and
	// increasing by exactly one per step, including the halting step.
	clk uint64
	// mem is the memory of the run this state belongs to, read through clk.
	mem *Memory
}

// Register reads the value of the given register.  Register zero always
// reads as zero.
func (p *State) Register(reg riscv.Reg) uint32 {
	if reg == riscv.RegZero {
		return 0
	}
	//
	return p.regs[reg]
}

// PC returns the program counter of this state.
func (p *State) PC() uint32 {
	return p.pc
}

// Clk returns the clock of this state, which equals the number of steps
// executed before it.
func (p *State) Clk() uint64 {
	return p.clk
}

// Byte reads the byte of memory at the given address, as observed by this
// state.  Writes performed by this or any later step are not visible.
func (p *State) Byte(addr uint32) byte {
	return p.mem.byteAt(addr, p.clk)
}

// Word reads the little-endian word of memory at the given address, as
// observed by this state.
func (p *State) Word(addr uint32) uint32 {
	return p.mem.loadAt(addr, riscv.Word, p.clk)
}

// CurrentInstruction decodes the instruction this state is about to execute,
// that is the word its program counter points at.
func (p *State) CurrentInstruction() riscv.Instruction {
	return riscv.Decode(p.pc, p.Word(p.pc))
}

// setRegister writes a value to the given register, returning the value the
// register holds afterwards.  Writes to register zero are discarded, so the
// returned value is zero in that case.
func (p *State) setRegister(reg riscv.Reg, value uint32) uint32 {
	if reg == riscv.RegZero {
		return 0
	}
	//
	p.regs[reg] = value
	//
	return value
}
