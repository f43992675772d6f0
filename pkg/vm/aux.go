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

// Trap classifies the abnormal ways a step can terminate the run.  Traps are
// modelled behaviour, not host errors: a trapping step is recorded like any
// other and simply marks the run as halted.
type Trap uint8

const (
	// TrapNone indicates the step did not trap.
	TrapNone Trap = iota
	// TrapIllegal indicates the fetched word has no supported encoding.
	TrapIllegal
	// TrapBreakpoint indicates an ebreak instruction was executed.
	TrapBreakpoint
	// TrapUnaligned indicates a word or halfword access at an address which
	// is not naturally aligned.
	TrapUnaligned
	// TrapIO indicates an environment call which could not be serviced: an
	// unknown call number, or an absent or exhausted host channel.
	TrapIO
)

// String returns a short human-readable name for this trap.
func (p Trap) String() string {
	switch p {
	case TrapNone:
		return "none"
	case TrapIllegal:
		return "illegal instruction"
	case TrapBreakpoint:
		return "breakpoint"
	case TrapUnaligned:
		return "unaligned access"
	case TrapIO:
		return "i/o failure"
	}
	//
	return "???"
}

// MemAccess describes the memory operation of a load or store step.  For a
// load, Value is the register-visible value after any sign or zero
// extension; for a store, Value is the bytes actually written, zero extended
// to a word.
type MemAccess struct {
	// Addr is the first byte address touched.
	Addr uint32
	// Width is the number of bytes touched.
	Width riscv.Width
	// Value is the value loaded or stored.
	Value uint32
	// Store is true for stores and false for loads.
	Store bool
}

// IOEvent describes the byte transfer of a serviced environment call.
type IOEvent struct {
	// Call identifies the environment call performed.
	Call EcallNum
	// Addr is the guest address the bytes were copied to or from.
	Addr uint32
	// Data is the bytes transferred, in address order.
	Data []byte
}

// Aux is the auxiliary facts captured for one executed step: everything a
// trace consumer needs beyond the pre-step state itself, so that no
// re-execution or re-decoding is ever necessary downstream.
type Aux struct {
	// Dst is the value written to the destination register, or zero when the
	// instruction writes no register or its destination is register zero.
	Dst uint32
	// WillHalt marks the halting step, whether by voluntary halt or by trap.
	WillHalt bool
	// Trap distinguishes a trapping step from a voluntary halt.
	Trap Trap
	// Mem describes the memory access of a load or store step, if any.
	Mem *MemAccess
	// IO describes the byte transfer of a serviced environment call, if any.
	IO *IOEvent
	// Insn is the decoded instruction this step executed.
	Insn riscv.Instruction
}

// Row pairs the machine state before a step with the auxiliary facts of that
// step.  The execution record is an ordered sequence of rows, one per
// executed instruction.
type Row struct {
	// State is the machine state immediately before the step.
	State State
	// Aux is the auxiliary facts captured by the step.
	Aux Aux
}
