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

// Major opcode field (the lowest seven bits) of each supported instruction
// format.
const (
	opcodeLoad   uint32 = 0x03
	opcodeAluImm uint32 = 0x13
	opcodeAuipc  uint32 = 0x17
	opcodeStore  uint32 = 0x23
	opcodeAluReg uint32 = 0x33
	opcodeLui    uint32 = 0x37
	opcodeBranch uint32 = 0x63
	opcodeJalr   uint32 = 0x67
	opcodeJal    uint32 = 0x6f
	opcodeSystem uint32 = 0x73
)

// Encodings of the system instructions, which have no variable fields.
const (
	wordEcall  uint32 = 0x00000073
	wordEbreak uint32 = 0x00100073
)

// Decode maps a raw little-endian instruction word, located at the given
// address, into its structured form.  Decoding is a pure, total function:
// words without a supported encoding decode to Unknown rather than failing,
// leaving illegal-instruction handling to the execution engine.
func Decode(addr, word uint32) Instruction {
	var (
		rd     = Reg(word >> 7 & 0x1f)
		funct3 = word >> 12 & 0x7
		rs1    = Reg(word >> 15 & 0x1f)
		rs2    = Reg(word >> 20 & 0x1f)
		funct7 = word >> 25
	)
	//
	switch word & 0x7f {
	case opcodeAluReg:
		if op, ok := aluRegOf(funct3, funct7); ok {
			return AluReg{Op: op, Rd: rd, Rs1: rs1, Rs2: rs2}
		}
	case opcodeAluImm:
		if insn, ok := decodeAluImm(word, funct3, funct7, rd, rs1); ok {
			return insn
		}
	case opcodeLoad:
		if width, signed, ok := loadOf(funct3); ok {
			return Load{Width: width, Signed: signed, Rd: rd, Rs1: rs1, Imm: immI(word)}
		}
	case opcodeStore:
		if width, ok := storeOf(funct3); ok {
			return Store{Width: width, Rs1: rs1, Rs2: rs2, Imm: immS(word)}
		}
	case opcodeBranch:
		if cond, ok := condOf(funct3); ok {
			return Branch{Cond: cond, Rs1: rs1, Rs2: rs2, Imm: immB(word)}
		}
	case opcodeJal:
		return Jal{Rd: rd, Imm: immJ(word)}
	case opcodeJalr:
		if funct3 == 0 {
			return Jalr{Rd: rd, Rs1: rs1, Imm: immI(word)}
		}
	case opcodeLui:
		return Lui{Rd: rd, Imm: immU(word)}
	case opcodeAuipc:
		return Auipc{Rd: rd, Imm: immU(word)}
	case opcodeSystem:
		switch word {
		case wordEcall:
			return Ecall{}
		case wordEbreak:
			return Ebreak{}
		}
	}
	// No supported encoding
	return Unknown{Addr: addr, Word: word}
}

// aluRegOf determines the operation of a register-register instruction from
// its function fields, if there is one.
func aluRegOf(funct3, funct7 uint32) (AluOp, bool) {
	switch funct7 {
	case 0x00:
		return [8]AluOp{Add, Sll, Slt, Sltu, Xor, Srl, Or, And}[funct3], true
	case 0x01:
		return [8]AluOp{Mul, Mulh, Mulhsu, Mulhu, Div, Divu, Rem, Remu}[funct3], true
	case 0x20:
		switch funct3 {
		case 0x0:
			return Sub, true
		case 0x5:
			return Sra, true
		}
	}
	// Reserved
	return 0, false
}

// decodeAluImm decodes the register-immediate format, covering both the
// arithmetic operations and the constant shifts.  For shifts, the rs2 field
// holds the shift amount and funct7 discriminates logical from arithmetic.
func decodeAluImm(word, funct3, funct7 uint32, rd, rs1 Reg) (Instruction, bool) {
	shamt := word >> 20 & 0x1f
	//
	switch funct3 {
	case 0x0:
		return AluImm{Op: Add, Rd: rd, Rs1: rs1, Imm: immI(word)}, true
	case 0x1:
		if funct7 == 0x00 {
			return ShiftImm{Op: Sll, Rd: rd, Rs1: rs1, Shamt: shamt}, true
		}
	case 0x2:
		return AluImm{Op: Slt, Rd: rd, Rs1: rs1, Imm: immI(word)}, true
	case 0x3:
		return AluImm{Op: Sltu, Rd: rd, Rs1: rs1, Imm: immI(word)}, true
	case 0x4:
		return AluImm{Op: Xor, Rd: rd, Rs1: rs1, Imm: immI(word)}, true
	case 0x5:
		switch funct7 {
		case 0x00:
			return ShiftImm{Op: Srl, Rd: rd, Rs1: rs1, Shamt: shamt}, true
		case 0x20:
			return ShiftImm{Op: Sra, Rd: rd, Rs1: rs1, Shamt: shamt}, true
		}
	case 0x6:
		return AluImm{Op: Or, Rd: rd, Rs1: rs1, Imm: immI(word)}, true
	case 0x7:
		return AluImm{Op: And, Rd: rd, Rs1: rs1, Imm: immI(word)}, true
	}
	// Reserved
	return nil, false
}

// loadOf determines the width and extension of a load from its function
// field, if the combination is supported.
func loadOf(funct3 uint32) (Width, bool, bool) {
	switch funct3 {
	case 0x0:
		return Byte, true, true
	case 0x1:
		return Half, true, true
	case 0x2:
		return Word, true, true
	case 0x4:
		return Byte, false, true
	case 0x5:
		return Half, false, true
	}
	// Reserved
	return 0, false, false
}

// storeOf determines the width of a store from its function field, if
// supported.
func storeOf(funct3 uint32) (Width, bool) {
	switch funct3 {
	case 0x0:
		return Byte, true
	case 0x1:
		return Half, true
	case 0x2:
		return Word, true
	}
	// Reserved
	return 0, false
}

// condOf determines the predicate of a conditional branch from its function
// field, if supported.
func condOf(funct3 uint32) (Cond, bool) {
	switch funct3 {
	case 0x0:
		return Eq, true
	case 0x1:
		return Ne, true
	case 0x4:
		return Lt, true
	case 0x5:
		return Ge, true
	case 0x6:
		return Ltu, true
	case 0x7:
		return Geu, true
	}
	// Reserved
	return 0, false
}

// immI extracts the sign-extended immediate of the I format, which occupies
// the twelve uppermost bits of the word.
func immI(word uint32) uint32 {
	return uint32(int32(word) >> 20)
}

// immS extracts the sign-extended immediate of the S format, whose bits are
// split either side of the funct3 field.
func immS(word uint32) uint32 {
	return uint32(int32(word)>>25)<<5 | word>>7&0x1f
}

// immB extracts the sign-extended immediate of the B format.  Branch offsets
// are multiples of two, so bit zero is implicit and the remaining bits are
// shuffled to share encoding positions with the S format.
func immB(word uint32) uint32 {
	imm := uint32(int32(word)>>31) << 12
	imm |= word >> 25 & 0x3f << 5
	imm |= word >> 8 & 0xf << 1
	imm |= word >> 7 & 0x1 << 11
	//
	return imm
}

// immU extracts the immediate of the U format, which is the twenty uppermost
// bits of the word left in place.
func immU(word uint32) uint32 {
	return word & 0xfffff000
}

// immJ extracts the sign-extended immediate of the J format.  As for
// branches, bit zero is implicit and the remaining bits are shuffled.
func immJ(word uint32) uint32 {
	imm := uint32(int32(word)>>31) << 20
	imm |= word >> 21 & 0x3ff << 1
	imm |= word >> 20 & 0x1 << 11
	imm |= word & 0xff000
	//
	return imm
}
