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

import (
	"bytes"
	"debug/elf"
	"errors"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
)

// MaxSegments bounds the number of program headers accepted by the loader,
// guarding against pathological inputs.
const MaxSegments = 256

// ErrInvalidFormat flags an executable rejected by LoadELF.  Every loader
// failure wraps this sentinel, so callers can test for it with errors.Is
// whilst still reporting the specific defect.
var ErrInvalidFormat = errors.New("invalid executable")

// LoadELF parses a 32-bit little-endian RISC-V executable into a Program.
// Only statically linked executables are accepted, and of those only the
// loadable segments contribute to the image: for each, min(filesize,
// memsize) bytes are copied to its virtual address, with any remaining
// declared memory left implicitly zero.
func LoadELF(data []byte) (Program, error) {
	f, err := elf.NewFile(bytes.NewReader(data))
	//
	if err != nil {
		return Program{}, fmt.Errorf("%w: %s", ErrInvalidFormat, err)
	}
	//
	if f.Class != elf.ELFCLASS32 {
		return Program{}, fmt.Errorf("%w: not a 32-bit executable", ErrInvalidFormat)
	}
	//
	if f.Data != elf.ELFDATA2LSB {
		return Program{}, fmt.Errorf("%w: not little-endian", ErrInvalidFormat)
	}
	//
	if f.Machine != elf.EM_RISCV {
		return Program{}, fmt.Errorf("%w: machine type is %v, must be RISC-V", ErrInvalidFormat, f.Machine)
	}
	//
	if f.Type != elf.ET_EXEC {
		return Program{}, fmt.Errorf("%w: type is %v, must be executable", ErrInvalidFormat, f.Type)
	}
	//
	entry := uint32(f.Entry)
	if entry%4 != 0 {
		return Program{}, fmt.Errorf("%w: entrypoint 0x%x is not 4-byte aligned", ErrInvalidFormat, entry)
	}
	//
	if len(f.Progs) > MaxSegments {
		return Program{}, fmt.Errorf("%w: too many program headers (%d)", ErrInvalidFormat, len(f.Progs))
	}
	//
	image := make(map[uint32]byte)
	//
	for _, prog := range f.Progs {
		if prog.Type != elf.PT_LOAD {
			continue
		}
		// Bytes beyond the file size are implicitly zero, whilst bytes
		// beyond the memory size are never materialized at all.
		n := min(prog.Filesz, prog.Memsz)
		contents := make([]byte, n)
		//
		if _, err := io.ReadFull(prog.Open(), contents); err != nil {
			return Program{}, fmt.Errorf("%w: truncated segment at 0x%x", ErrInvalidFormat, prog.Vaddr)
		}
		//
		vaddr := uint32(prog.Vaddr)
		for i, b := range contents {
			image[vaddr+uint32(i)] = b
		}
		//
		log.Debugf("placed segment of %d bytes at 0x%x (declares %d)", n, vaddr, prog.Memsz)
	}
	//
	return Program{Entry: entry, Image: image}, nil
}
