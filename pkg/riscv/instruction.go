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
package riscv

import "fmt"

// AluOp identifies the arithmetic or logical operation applied by a
// register-register or register-immediate instruction.  The operation is
// shared between both addressing forms, hence Add covers "add" as well as
// "addi", etc.
type AluOp uint8

// Operations of the base integer instruction set, followed by those of the
// multiply / divide extension.  Their semantics are those of the execution
// engine: every result is reduced modulo 2^32.
const (
	Add AluOp = iota
	Sub
	Sll
	Slt
	Sltu
	Xor
	Srl
	Sra
	Or
	And
	Mul
	Mulh
	Mulhsu
	Mulhu
	Div
	Divu
	Rem
	Remu
	numAluOps
)

// aluRegOps maps each AluOp to the opcode of its register-register form.
var aluRegOps = [numAluOps]Op{
	OpAdd, OpSub, OpSll, OpSlt, OpSltu, OpXor, OpSrl, OpSra, OpOr, OpAnd,
	OpMul, OpMulh, OpMulhsu, OpMulhu, OpDiv, OpDivu, OpRem, OpRemu,
}

// aluImmOps maps each AluOp to the opcode of its register-immediate form,
// for those operations which have one.  Operations without an immediate form
// map to OpUnknown.
var aluImmOps = [numAluOps]Op{
	Add: OpAddi, Sll: OpSlli, Slt: OpSlti, Sltu: OpSltiu,
	Xor: OpXori, Srl: OpSrli, Sra: OpSrai, Or: OpOri, And: OpAndi,
}

// String returns the mnemonic of the register-register form of this
// operation.
func (p AluOp) String() string {
	if p < numAluOps {
		return aluRegOps[p].String()
	}
	//
	return "???"
}

// Cond identifies the comparison predicate of a conditional branch.
type Cond uint8

// Branch predicates.  Lt / Ge compare as two's complement signed values,
// whilst Ltu / Geu compare unsigned.
const (
	Eq Cond = iota
	Ne
	Lt
	Ge
	Ltu
	Geu
	numConds
)

// condOps maps each branch predicate to its opcode.
var condOps = [numConds]Op{OpBeq, OpBne, OpBlt, OpBge, OpBltu, OpBgeu}

// String returns the mnemonic of the branch using this predicate.
func (p Cond) String() string {
	if p < numConds {
		return condOps[p].String()
	}
	//
	return "???"
}

// Width is the size, in bytes, of a memory access.
type Width uint8

// Supported access widths.  Word accesses must be 4-byte aligned and
// halfword accesses 2-byte aligned; byte accesses carry no alignment
// requirement.
const (
	Byte Width = 1
	Half Width = 2
	Word Width = 4
)

// Operands is the flattened operand view of an instruction, with fields the
// instruction does not use reading as zero.  Trace generation relies on this
// uniform shape when building its register selector columns.
type Operands struct {
	// Rd is the destination register, or zero when none is written.
	Rd Reg
	// Rs1 is the first source register.
	Rs1 Reg
	// Rs2 is the second source register.
	Rs2 Reg
	// Imm is the immediate operand, already sign- or zero-extended to the
	// full word as its format requires.
	Imm uint32
}

// Instruction is a decoded machine instruction.  This is a closed sum: the
// only implementations are the variant types of this package, one per
// operand shape.  Values are produced exclusively by Decode, are immutable
// and are safe to copy.
type Instruction interface {
	fmt.Stringer
	// Opcode returns the mnemonic-level operation tag of this instruction.
	Opcode() Op
	// Operands returns the flattened operand view of this instruction.
	Operands() Operands
	// isInstruction restricts implementations to this package.
	isInstruction()
}

// ============================================================================
// Register-register arithmetic
// ============================================================================

// AluReg is a register-register arithmetic or logical instruction, writing
// op(rs1, rs2) to rd.
type AluReg struct {
	// Op is the operation applied.
	Op AluOp
	// Rd is the destination register.
	Rd Reg
	// Rs1 is the first source register.
	Rs1 Reg
	// Rs2 is the second source register.
	Rs2 Reg
}

// Opcode implementation for the Instruction interface.
func (p AluReg) Opcode() Op {
	return aluRegOps[p.Op]
}

// Operands implementation for the Instruction interface.
func (p AluReg) Operands() Operands {
	return Operands{Rd: p.Rd, Rs1: p.Rs1, Rs2: p.Rs2}
}

func (p AluReg) String() string {
	return fmt.Sprintf("%v %v, %v, %v", p.Opcode(), p.Rd, p.Rs1, p.Rs2)
}

func (p AluReg) isInstruction() {}

// ============================================================================
// Register-immediate arithmetic
// ============================================================================

// AluImm is a register-immediate arithmetic or logical instruction, writing
// op(rs1, imm) to rd.  Shifts by immediate are represented separately by
// ShiftImm, since their immediate is a five bit shift amount rather than a
// sign-extended word.
type AluImm struct {
	// Op is the operation applied.
	Op AluOp
	// Rd is the destination register.
	Rd Reg
	// Rs1 is the source register.
	Rs1 Reg
	// Imm is the sign-extended twelve bit immediate.
	Imm uint32
}

// Opcode implementation for the Instruction interface.
func (p AluImm) Opcode() Op {
	return aluImmOps[p.Op]
}

// Operands implementation for the Instruction interface.
func (p AluImm) Operands() Operands {
	return Operands{Rd: p.Rd, Rs1: p.Rs1, Imm: p.Imm}
}

func (p AluImm) String() string {
	return fmt.Sprintf("%v %v, %v, %d", p.Opcode(), p.Rd, p.Rs1, int32(p.Imm))
}

func (p AluImm) isInstruction() {}

// ============================================================================
// Shift by immediate
// ============================================================================

// ShiftImm is a shift of rs1 by a constant amount, writing the result to rd.
type ShiftImm struct {
	// Op is the shift applied, one of Sll, Srl or Sra.
	Op AluOp
	// Rd is the destination register.
	Rd Reg
	// Rs1 is the source register.
	Rs1 Reg
	// Shamt is the shift amount, in the range 0..31.
	Shamt uint32
}

// Opcode implementation for the Instruction interface.
func (p ShiftImm) Opcode() Op {
	return aluImmOps[p.Op]
}

// Operands implementation for the Instruction interface.
func (p ShiftImm) Operands() Operands {
	return Operands{Rd: p.Rd, Rs1: p.Rs1, Imm: p.Shamt}
}

func (p ShiftImm) String() string {
	return fmt.Sprintf("%v %v, %v, %d", p.Opcode(), p.Rd, p.Rs1, p.Shamt)
}

func (p ShiftImm) isInstruction() {}

// ============================================================================
// Memory loads
// ============================================================================

// Load reads Width bytes of memory at rs1 + imm into rd, extending narrower
// values to the full word as Signed dictates.
type Load struct {
	// Width is the number of bytes read.
	Width Width
	// Signed determines whether a narrower value is sign- or zero-extended.
	Signed bool
	// Rd is the destination register.
	Rd Reg
	// Rs1 is the base address register.
	Rs1 Reg
	// Imm is the sign-extended twelve bit address offset.
	Imm uint32
}

// Opcode implementation for the Instruction interface.
func (p Load) Opcode() Op {
	switch p.Width {
	case Byte:
		if p.Signed {
			return OpLb
		}
		//
		return OpLbu
	case Half:
		if p.Signed {
			return OpLh
		}
		//
		return OpLhu
	default:
		return OpLw
	}
}

// Operands implementation for the Instruction interface.
func (p Load) Operands() Operands {
	return Operands{Rd: p.Rd, Rs1: p.Rs1, Imm: p.Imm}
}

func (p Load) String() string {
	return fmt.Sprintf("%v %v, %d(%v)", p.Opcode(), p.Rd, int32(p.Imm), p.Rs1)
}

func (p Load) isInstruction() {}

// ============================================================================
// Memory stores
// ============================================================================

// Store writes the lowest Width bytes of rs2 to memory at rs1 + imm.
type Store struct {
	// Width is the number of bytes written.
	Width Width
	// Rs1 is the base address register.
	Rs1 Reg
	// Rs2 is the register whose value is stored.
	Rs2 Reg
	// Imm is the sign-extended twelve bit address offset.
	Imm uint32
}

// Opcode implementation for the Instruction interface.
func (p Store) Opcode() Op {
	switch p.Width {
	case Byte:
		return OpSb
	case Half:
		return OpSh
	default:
		return OpSw
	}
}

// Operands implementation for the Instruction interface.
func (p Store) Operands() Operands {
	return Operands{Rs1: p.Rs1, Rs2: p.Rs2, Imm: p.Imm}
}

func (p Store) String() string {
	return fmt.Sprintf("%v %v, %d(%v)", p.Opcode(), p.Rs2, int32(p.Imm), p.Rs1)
}

func (p Store) isInstruction() {}

// ============================================================================
// Conditional branches
// ============================================================================

// Branch transfers control to pc + imm when cond(rs1, rs2) holds, and falls
// through to pc + 4 otherwise.
type Branch struct {
	// Cond is the comparison predicate.
	Cond Cond
	// Rs1 is the first compared register.
	Rs1 Reg
	// Rs2 is the second compared register.
	Rs2 Reg
	// Imm is the sign-extended branch offset, a multiple of two.
	Imm uint32
}

// Opcode implementation for the Instruction interface.
func (p Branch) Opcode() Op {
	return condOps[p.Cond]
}

// Operands implementation for the Instruction interface.
func (p Branch) Operands() Operands {
	return Operands{Rs1: p.Rs1, Rs2: p.Rs2, Imm: p.Imm}
}

func (p Branch) String() string {
	return fmt.Sprintf("%v %v, %v, %d", p.Opcode(), p.Rs1, p.Rs2, int32(p.Imm))
}

func (p Branch) isInstruction() {}

// ============================================================================
// Unconditional jumps
// ============================================================================

// Jal jumps to pc + imm, writing the return address pc + 4 to rd.
type Jal struct {
	// Rd is the link register, conventionally ra, or zero for a plain jump.
	Rd Reg
	// Imm is the sign-extended jump offset, a multiple of two.
	Imm uint32
}

// Opcode implementation for the Instruction interface.
func (p Jal) Opcode() Op {
	return OpJal
}

// Operands implementation for the Instruction interface.
func (p Jal) Operands() Operands {
	return Operands{Rd: p.Rd, Imm: p.Imm}
}

func (p Jal) String() string {
	return fmt.Sprintf("%v %v, %d", p.Opcode(), p.Rd, int32(p.Imm))
}

func (p Jal) isInstruction() {}

// Jalr jumps indirectly to (rs1 + imm) with the lowest bit cleared, writing
// the return address pc + 4 to rd.
type Jalr struct {
	// Rd is the link register, or zero for a plain indirect jump.
	Rd Reg
	// Rs1 is the base address register.
	Rs1 Reg
	// Imm is the sign-extended twelve bit target offset.
	Imm uint32
}

// Opcode implementation for the Instruction interface.
func (p Jalr) Opcode() Op {
	return OpJalr
}

// Operands implementation for the Instruction interface.
func (p Jalr) Operands() Operands {
	return Operands{Rd: p.Rd, Rs1: p.Rs1, Imm: p.Imm}
}

func (p Jalr) String() string {
	return fmt.Sprintf("%v %v, %d(%v)", p.Opcode(), p.Rd, int32(p.Imm), p.Rs1)
}

func (p Jalr) isInstruction() {}

// ============================================================================
// Upper immediates
// ============================================================================

// Lui writes a twenty bit immediate, shifted into the upper bits, to rd.
// The immediate is stored pre-shifted, so execution copies it verbatim.
type Lui struct {
	// Rd is the destination register.
	Rd Reg
	// Imm is the immediate with its twelve lowest bits zero.
	Imm uint32
}

// Opcode implementation for the Instruction interface.
func (p Lui) Opcode() Op {
	return OpLui
}

// Operands implementation for the Instruction interface.
func (p Lui) Operands() Operands {
	return Operands{Rd: p.Rd, Imm: p.Imm}
}

func (p Lui) String() string {
	return fmt.Sprintf("%v %v, 0x%x", p.Opcode(), p.Rd, p.Imm>>12)
}

func (p Lui) isInstruction() {}

// Auipc writes pc plus a twenty bit immediate, shifted into the upper bits,
// to rd.  As for Lui, the immediate is stored pre-shifted.
type Auipc struct {
	// Rd is the destination register.
	Rd Reg
	// Imm is the immediate with its twelve lowest bits zero.
	Imm uint32
}

// Opcode implementation for the Instruction interface.
func (p Auipc) Opcode() Op {
	return OpAuipc
}

// Operands implementation for the Instruction interface.
func (p Auipc) Operands() Operands {
	return Operands{Rd: p.Rd, Imm: p.Imm}
}

func (p Auipc) String() string {
	return fmt.Sprintf("%v %v, 0x%x", p.Opcode(), p.Rd, p.Imm>>12)
}

func (p Auipc) isInstruction() {}

// ============================================================================
// System instructions
// ============================================================================

// Ecall requests a service from the execution environment.  The service is
// selected by register a7, with arguments in a0 and a1.
type Ecall struct{}

// Opcode implementation for the Instruction interface.
func (p Ecall) Opcode() Op {
	return OpEcall
}

// Operands implementation for the Instruction interface.
func (p Ecall) Operands() Operands {
	return Operands{}
}

func (p Ecall) String() string {
	return "ecall"
}

func (p Ecall) isInstruction() {}

// Ebreak is a breakpoint.  The execution engine models it as a trap which
// terminates the run.
type Ebreak struct{}

// Opcode implementation for the Instruction interface.
func (p Ebreak) Opcode() Op {
	return OpEbreak
}

// Operands implementation for the Instruction interface.
func (p Ebreak) Operands() Operands {
	return Operands{}
}

func (p Ebreak) String() string {
	return "ebreak"
}

func (p Ebreak) isInstruction() {}

// ============================================================================
// Unknown encodings
// ============================================================================

// Unknown is a word with no supported encoding.  Decoding never fails;
// instead the execution engine treats Unknown as an illegal-instruction
// trap, so malformed programs terminate in a reportable way.
type Unknown struct {
	// Addr is the address the word was decoded at.
	Addr uint32
	// Word is the raw little-endian instruction word.
	Word uint32
}

// Opcode implementation for the Instruction interface.
func (p Unknown) Opcode() Op {
	return OpUnknown
}

// Operands implementation for the Instruction interface.
func (p Unknown) Operands() Operands {
	return Operands{}
}

func (p Unknown) String() string {
	return fmt.Sprintf(".word 0x%08x", p.Word)
}

func (p Unknown) isInstruction() {}
