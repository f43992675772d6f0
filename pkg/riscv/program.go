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

// Program is an executable image: an entry point plus a sparse byte-indexed
// memory image.  Programs are immutable once loaded; execution layers its
// own writes over the image copy-on-write, so one Program can back any
// number of runs.  Addresses absent from the image read as zero.
type Program struct {
	// Entry is the address execution starts at, always a multiple of four.
	Entry uint32
	// Image maps byte addresses to their initial contents.
	Image map[uint32]byte
}

// NewProgram constructs a program directly from an entry point and memory
// image, bypassing the executable container format.  The image is used as
// is, not copied.
func NewProgram(entry uint32, image map[uint32]byte) Program {
	return Program{Entry: entry, Image: image}
}

// ProgramFromWords assembles a program whose image is the given instruction
// words laid out consecutively from the entry address, in little-endian byte
// order.  This is primarily a convenience for tests and tooling.
func ProgramFromWords(entry uint32, words []uint32) Program {
	image := make(map[uint32]byte, len(words)*4)
	//
	for i, word := range words {
		addr := entry + uint32(i)*4
		image[addr] = byte(word)
		image[addr+1] = byte(word >> 8)
		image[addr+2] = byte(word >> 16)
		image[addr+3] = byte(word >> 24)
	}
	//
	return Program{Entry: entry, Image: image}
}

// ProgramFromInsns assembles a program from instructions laid out
// consecutively from the entry address.
func ProgramFromInsns(entry uint32, insns ...Instruction) Program {
	words := make([]uint32, len(insns))
	//
	for i, insn := range insns {
		words[i] = Encode(insn)
	}
	//
	return ProgramFromWords(entry, words)
}
