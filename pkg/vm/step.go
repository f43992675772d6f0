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

// Step executes exactly one instruction, advancing the machine and returning
// the recorded row: the state the step executed from paired with its
// auxiliary facts.  Run-time failures never surface as host errors here;
// illegal instructions, breakpoints, unaligned accesses and unserviceable
// environment calls all become recorded trap steps which halt the run.
// Stepping a halted machine is a caller bug and panics.
func (p *Machine) Step() Row {
	if p.halted {
		panic("machine already halted")
	}
	//
	var (
		s    = p.state
		word = s.mem.loadAt(s.pc, riscv.Word, s.clk)
		aux  = Aux{Insn: riscv.Decode(s.pc, word)}
		next = s
	)
	// The clock ticks on every step, including the halting one, and stamps
	// the memory writes of this step: they become visible to next but not to
	// s, which the record keeps as the pre-step snapshot.
	next.clk = s.clk + 1
	// Sequential advance unless control flow or a voluntary halt overrides.
	next.pc = s.pc + 4
	//
	switch t := aux.Insn.(type) {
	case riscv.AluReg:
		aux.Dst = next.setRegister(t.Rd, aluValue(t.Op, s.Register(t.Rs1), s.Register(t.Rs2)))
	case riscv.AluImm:
		aux.Dst = next.setRegister(t.Rd, aluValue(t.Op, s.Register(t.Rs1), t.Imm))
	case riscv.ShiftImm:
		aux.Dst = next.setRegister(t.Rd, aluValue(t.Op, s.Register(t.Rs1), t.Shamt))
	case riscv.Load:
		p.load(&s, &next, &aux, t)
	case riscv.Store:
		p.store(&s, &next, &aux, t)
	case riscv.Branch:
		if branchTaken(t.Cond, s.Register(t.Rs1), s.Register(t.Rs2)) {
			next.pc = s.pc + t.Imm
		}
	case riscv.Jal:
		aux.Dst = next.setRegister(t.Rd, s.pc+4)
		next.pc = s.pc + t.Imm
	case riscv.Jalr:
		// Target computed from the pre-step state, so rd == rs1 is sound;
		// the lowest bit of the target is discarded.
		target := (s.Register(t.Rs1) + t.Imm) &^ 1
		aux.Dst = next.setRegister(t.Rd, s.pc+4)
		next.pc = target
	case riscv.Lui:
		aux.Dst = next.setRegister(t.Rd, t.Imm)
	case riscv.Auipc:
		aux.Dst = next.setRegister(t.Rd, s.pc+t.Imm)
	case riscv.Ecall:
		p.ecall(&s, &next, &aux)
	case riscv.Ebreak:
		aux.trap(TrapBreakpoint)
	case riscv.Unknown:
		aux.trap(TrapIllegal)
	}
	//
	p.state = next
	p.halted = aux.WillHalt
	//
	return Row{State: s, Aux: aux}
}

// trap marks this step as a trapping, halting step.  Unlike a voluntary
// halt, a trap leaves the sequential program counter advance in place.
func (p *Aux) trap(kind Trap) {
	p.Trap = kind
	p.WillHalt = true
}

// load executes a memory load, extending narrower values to a full word as
// the instruction dictates.  Word and halfword loads at unaligned addresses
// trap rather than truncating or wrapping the address.
func (p *Machine) load(s, next *State, aux *Aux, insn riscv.Load) {
	addr := s.Register(insn.Rs1) + insn.Imm
	//
	if !aligned(addr, insn.Width) {
		aux.trap(TrapUnaligned)
		return
	}
	//
	value := s.mem.loadAt(addr, insn.Width, s.clk)
	if insn.Signed {
		value = signExtend(value, insn.Width)
	}
	//
	aux.Dst = next.setRegister(insn.Rd, value)
	aux.Mem = &MemAccess{Addr: addr, Width: insn.Width, Value: value}
}

// store executes a memory store, writing the lowest bytes of rs2 in
// little-endian order.  Alignment rules mirror those of loads.
func (p *Machine) store(s, next *State, aux *Aux, insn riscv.Store) {
	addr := s.Register(insn.Rs1) + insn.Imm
	//
	if !aligned(addr, insn.Width) {
		aux.trap(TrapUnaligned)
		return
	}
	//
	value := truncate(s.Register(insn.Rs2), insn.Width)
	next.mem.store(addr, insn.Width, value, next.clk)
	//
	aux.Mem = &MemAccess{Addr: addr, Width: insn.Width, Value: value, Store: true}
}

// ecall dispatches an environment call on the call number held in a7.  The
// halt call freezes the program counter; I/O calls transfer bytes through
// the host channel and trap fatally when the channel is absent, errors, or
// the call number is not recognised.
func (p *Machine) ecall(s, next *State, aux *Aux) {
	var (
		num  = EcallNum(s.Register(riscv.RegA7))
		addr = s.Register(riscv.RegA0)
		n    = s.Register(riscv.RegA1)
	)
	//
	switch num {
	case EcallHalt:
		aux.WillHalt = true
		next.pc = s.pc
	case EcallRead:
		if p.io == nil {
			aux.trap(TrapIO)
			return
		}
		//
		data, err := p.io.Read(n)
		if err != nil || uint32(len(data)) != n {
			aux.trap(TrapIO)
			return
		}
		//
		for i, b := range data {
			next.mem.storeByte(addr+uint32(i), b, next.clk)
		}
		//
		aux.IO = &IOEvent{Call: EcallRead, Addr: addr, Data: data}
	case EcallWrite:
		if p.io == nil {
			aux.trap(TrapIO)
			return
		}
		//
		data := make([]byte, n)
		for i := range data {
			data[i] = s.mem.byteAt(addr+uint32(i), s.clk)
		}
		//
		if err := p.io.Write(data); err != nil {
			aux.trap(TrapIO)
			return
		}
		//
		aux.IO = &IOEvent{Call: EcallWrite, Addr: addr, Data: data}
	default:
		aux.trap(TrapIO)
	}
}

// aluValue computes the result of an arithmetic or logical operation on two
// operand words.  Additive operations wrap modulo 2^32, shift amounts are
// masked to five bits, and division follows the conventions of the
// instruction set: division by zero yields all ones (quotient) or the
// dividend (remainder), and the one signed overflow case yields the dividend
// (quotient) or zero (remainder).  Go panics on that overflow and on zero
// divisors, so both are resolved explicitly before dividing.
func aluValue(op riscv.AluOp, a, b uint32) uint32 {
	switch op {
	case riscv.Add:
		return a + b
	case riscv.Sub:
		return a - b
	case riscv.Sll:
		return a << (b & 31)
	case riscv.Slt:
		return boolToWord(int32(a) < int32(b))
	case riscv.Sltu:
		return boolToWord(a < b)
	case riscv.Xor:
		return a ^ b
	case riscv.Srl:
		return a >> (b & 31)
	case riscv.Sra:
		return uint32(int32(a) >> (b & 31))
	case riscv.Or:
		return a | b
	case riscv.And:
		return a & b
	case riscv.Mul:
		return a * b
	case riscv.Mulh:
		return uint32(uint64(int64(int32(a))*int64(int32(b))) >> 32)
	case riscv.Mulhsu:
		return uint32(uint64(int64(int32(a))*int64(b)) >> 32)
	case riscv.Mulhu:
		return uint32(uint64(a) * uint64(b) >> 32)
	case riscv.Div:
		switch {
		case b == 0:
			return ^uint32(0)
		case a == 1<<31 && b == ^uint32(0):
			return a
		}
		//
		return uint32(int32(a) / int32(b))
	case riscv.Divu:
		if b == 0 {
			return ^uint32(0)
		}
		//
		return a / b
	case riscv.Rem:
		switch {
		case b == 0:
			return a
		case a == 1<<31 && b == ^uint32(0):
			return 0
		}
		//
		return uint32(int32(a) % int32(b))
	case riscv.Remu:
		if b == 0 {
			return a
		}
		//
		return a % b
	default:
		panic("unreachable")
	}
}

// branchTaken evaluates a branch predicate over two register values.
func branchTaken(cond riscv.Cond, a, b uint32) bool {
	switch cond {
	case riscv.Eq:
		return a == b
	case riscv.Ne:
		return a != b
	case riscv.Lt:
		return int32(a) < int32(b)
	case riscv.Ge:
		return int32(a) >= int32(b)
	case riscv.Ltu:
		return a < b
	case riscv.Geu:
		return a >= b
	default:
		panic("unreachable")
	}
}

// signExtend widens a narrow loaded value to a full word, replicating its
// sign bit.
func signExtend(value uint32, width riscv.Width) uint32 {
	switch width {
	case riscv.Byte:
		return uint32(int32(int8(value)))
	case riscv.Half:
		return uint32(int32(int16(value)))
	default:
		return value
	}
}

// truncate keeps the lowest width bytes of a value.
func truncate(value uint32, width riscv.Width) uint32 {
	switch width {
	case riscv.Byte:
		return value & 0xff
	case riscv.Half:
		return value & 0xffff
	default:
		return value
	}
}

func boolToWord(b bool) uint32 {
	if b {
		return 1
	}
	//
	return 0
}
