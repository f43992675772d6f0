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

// aluRegEnc gives the function fields of the register-register form of each
// operation.
var aluRegEnc = [numAluOps]struct{ funct3, funct7 uint32 }{
	Add:    {0x0, 0x00},
	Sub:    {0x0, 0x20},
	Sll:    {0x1, 0x00},
	Slt:    {0x2, 0x00},
	Sltu:   {0x3, 0x00},
	Xor:    {0x4, 0x00},
	Srl:    {0x5, 0x00},
	Sra:    {0x5, 0x20},
	Or:     {0x6, 0x00},
	And:    {0x7, 0x00},
	Mul:    {0x0, 0x01},
	Mulh:   {0x1, 0x01},
	Mulhsu: {0x2, 0x01},
	Mulhu:  {0x3, 0x01},
	Div:    {0x4, 0x01},
	Divu:   {0x5, 0x01},
	Rem:    {0x6, 0x01},
	Remu:   {0x7, 0x01},
}

// aluImmEnc gives the function field of the register-immediate form of each
// operation which has one.
var aluImmEnc = [numAluOps]uint32{
	Add: 0x0, Sll: 0x1, Slt: 0x2, Sltu: 0x3,
	Xor: 0x4, Srl: 0x5, Sra: 0x5, Or: 0x6, And: 0x7,
}

// condEnc gives the function field of each branch predicate.
var condEnc = [numConds]uint32{
	Eq: 0x0, Ne: 0x1, Lt: 0x4, Ge: 0x5, Ltu: 0x6, Geu: 0x7,
}

// loadEnc gives the function field of a load of the given width and
// signedness.
func loadEnc(width Width, signed bool) uint32 {
	switch width {
	case Byte:
		if signed {
			return 0x0
		}
		//
		return 0x4
	case Half:
		if signed {
			return 0x1
		}
		//
		return 0x5
	default:
		return 0x2
	}
}

// storeEnc gives the function field of a store of the given width.
func storeEnc(width Width) uint32 {
	switch width {
	case Byte:
		return 0x0
	case Half:
		return 0x1
	default:
		return 0x2
	}
}

// Encode assembles the little-endian word encoding the given instruction.
// Encode is the right inverse of Decode: decoding an encoded instruction
// yields the original, whereas an Unknown instruction encodes back to its
// raw word.
func Encode(insn Instruction) uint32 {
	switch t := insn.(type) {
	case AluReg:
		enc := aluRegEnc[t.Op]
		return encodeR(opcodeAluReg, enc.funct3, enc.funct7, t.Rd, t.Rs1, t.Rs2)
	case AluImm:
		return encodeI(opcodeAluImm, aluImmEnc[t.Op], t.Rd, t.Rs1, t.Imm)
	case ShiftImm:
		var funct7 uint32
		if t.Op == Sra {
			funct7 = 0x20
		}
		//
		return encodeR(opcodeAluImm, aluImmEnc[t.Op], funct7, t.Rd, t.Rs1, Reg(t.Shamt))
	case Load:
		return encodeI(opcodeLoad, loadEnc(t.Width, t.Signed), t.Rd, t.Rs1, t.Imm)
	case Store:
		return encodeS(opcodeStore, storeEnc(t.Width), t.Rs1, t.Rs2, t.Imm)
	case Branch:
		return encodeB(opcodeBranch, condEnc[t.Cond], t.Rs1, t.Rs2, t.Imm)
	case Jal:
		return encodeJ(opcodeJal, t.Rd, t.Imm)
	case Jalr:
		return encodeI(opcodeJalr, 0x0, t.Rd, t.Rs1, t.Imm)
	case Lui:
		return encodeU(opcodeLui, t.Rd, t.Imm)
	case Auipc:
		return encodeU(opcodeAuipc, t.Rd, t.Imm)
	case Ecall:
		return wordEcall
	case Ebreak:
		return wordEbreak
	case Unknown:
		return t.Word
	default:
		panic("unreachable")
	}
}

func encodeR(opcode, funct3, funct7 uint32, rd, rs1, rs2 Reg) uint32 {
	return opcode | uint32(rd)<<7 | funct3<<12 | uint32(rs1)<<15 | uint32(rs2)<<20 | funct7<<25
}

func encodeI(opcode, funct3 uint32, rd, rs1 Reg, imm uint32) uint32 {
	return opcode | uint32(rd)<<7 | funct3<<12 | uint32(rs1)<<15 | imm&0xfff<<20
}

func encodeS(opcode, funct3 uint32, rs1, rs2 Reg, imm uint32) uint32 {
	return opcode | imm&0x1f<<7 | funct3<<12 | uint32(rs1)<<15 | uint32(rs2)<<20 | imm>>5&0x7f<<25
}

func encodeB(opcode, funct3 uint32, rs1, rs2 Reg, imm uint32) uint32 {
	word := opcode | funct3<<12 | uint32(rs1)<<15 | uint32(rs2)<<20
	word |= imm >> 11 & 0x1 << 7
	word |= imm >> 1 & 0xf << 8
	word |= imm >> 5 & 0x3f << 25
	word |= imm >> 12 & 0x1 << 31
	//
	return word
}

func encodeU(opcode uint32, rd Reg, imm uint32) uint32 {
	return opcode | uint32(rd)<<7 | imm&0xfffff000
}

func encodeJ(opcode uint32, rd Reg, imm uint32) uint32 {
	word := opcode | uint32(rd)<<7
	word |= imm & 0xff000
	word |= imm >> 11 & 0x1 << 20
	word |= imm >> 1 & 0x3ff << 21
	word |= imm >> 20 & 0x1 << 31
	//
	return word
}
