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
	"sort"

	"github.com/consensys/go-tracevm/pkg/riscv"
)

// Memory is the byte-addressable memory of one machine.  It layers the writes
// of a run over the immutable image of the loaded program: the image map is
// shared between every machine backed by the same program and is never
// written, so distinct runs cannot interfere.  Addresses defined by neither
// the image nor a write read as zero.
//
// Writes are versioned by the machine clock rather than applied in place.
// Every recorded state carries its clock, and reading a byte through a state
// observes exactly the writes which preceded it.  This is what lets the
// execution record hand out per-step state snapshots without copying the
// memory on every step.
type Memory struct {
	// image holds the initial program contents, shared and read-only.
	image map[uint32]byte
	// cells holds the write history of each written address, ordered by
	// strictly increasing clock.
	cells map[uint32][]memCell
}

// memCell is a single write: the byte stored and the clock of the state which
// first observes it.
type memCell struct {
	clk   uint64
	value byte
}

func newMemory(image map[uint32]byte) *Memory {
	return &Memory{image: image, cells: make(map[uint32][]memCell)}
}

// byteAt reads the byte at the given address as observed at the given clock.
func (p *Memory) byteAt(addr uint32, clk uint64) byte {
	if cells := p.cells[addr]; len(cells) > 0 {
		// Executing instructions always read at the current clock, which is
		// the newest write.  Older clocks arise only when reading through a
		// recorded state.
		if last := cells[len(cells)-1]; last.clk <= clk {
			return last.value
		}
		//
		i := sort.Search(len(cells), func(i int) bool { return cells[i].clk > clk })
		if i > 0 {
			return cells[i-1].value
		}
	}
	//
	return p.image[addr]
}

// loadAt reads width bytes starting at the given address, composed in
// little-endian order, as observed at the given clock.  Alignment is a policy
// of the execution engine, not of the memory, so loadAt accepts any address.
func (p *Memory) loadAt(addr uint32, width riscv.Width, clk uint64) uint32 {
	var value uint32
	//
	for i := uint32(0); i < uint32(width); i++ {
		value |= uint32(p.byteAt(addr+i, clk)) << (8 * i)
	}
	//
	return value
}

// store writes the lowest width bytes of value at the given address in
// little-endian order, stamped with the given clock.  Stamps must never
// decrease across calls, which the machine guarantees by stamping every write
// with the clock of the state it produces.
func (p *Memory) store(addr uint32, width riscv.Width, value uint32, clk uint64) {
	for i := uint32(0); i < uint32(width); i++ {
		p.storeByte(addr+i, byte(value>>(8*i)), clk)
	}
}

func (p *Memory) storeByte(addr uint32, value byte, clk uint64) {
	p.cells[addr] = append(p.cells[addr], memCell{clk: clk, value: value})
}

// aligned determines whether an access of the given width at the given
// address is naturally aligned.  Byte accesses always are.
func aligned(addr uint32, width riscv.Width) bool {
	return addr%uint32(width) == 0
}
