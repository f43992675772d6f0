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
)

func Test_Memory_ReadsZeroByDefault(t *testing.T) {
	mem := newMemory(nil)
	//
	assert.Equal(t, byte(0), mem.byteAt(0, 0))
	assert.Equal(t, byte(0), mem.byteAt(0xffffffff, 99))
	assert.Equal(t, uint32(0), mem.loadAt(0x1000, riscv.Word, 0))
}

func Test_Memory_ImageVisibleAtEveryClock(t *testing.T) {
	mem := newMemory(map[uint32]byte{5: 0xab})
	//
	assert.Equal(t, byte(0xab), mem.byteAt(5, 0))
	assert.Equal(t, byte(0xab), mem.byteAt(5, 1000))
	assert.Equal(t, byte(0), mem.byteAt(6, 0))
}

// Each write is stamped with a clock; a read observes the latest write at or
// before its own clock, falling back to the image before the first.
func Test_Memory_VersionedReads(t *testing.T) {
	mem := newMemory(map[uint32]byte{0x10: 1})
	//
	mem.storeByte(0x10, 2, 3)
	mem.storeByte(0x10, 3, 7)
	//
	tests := []struct {
		clk      uint64
		expected byte
	}{
		{0, 1}, {2, 1},
		{3, 2}, {4, 2}, {6, 2},
		{7, 3}, {8, 3}, {1000, 3},
	}
	//
	for _, test := range tests {
		assert.Equal(t, test.expected, mem.byteAt(0x10, test.clk),
			"reading at clock %d", test.clk)
	}
}

// Words are stored and composed little-endian, whatever the access width.
func Test_Memory_LittleEndianWidths(t *testing.T) {
	mem := newMemory(nil)
	mem.store(0x20, riscv.Word, 0x11223344, 1)
	//
	assert.Equal(t, uint32(0x44), mem.loadAt(0x20, riscv.Byte, 1))
	assert.Equal(t, uint32(0x3344), mem.loadAt(0x20, riscv.Half, 1))
	assert.Equal(t, uint32(0x2233), mem.loadAt(0x21, riscv.Half, 1))
	assert.Equal(t, uint32(0x11223344), mem.loadAt(0x20, riscv.Word, 1))
}

// Address arithmetic wraps modulo 2^32: a multi-byte access at the very top
// of the address space continues at address zero.
func Test_Memory_AddressWraparound(t *testing.T) {
	mem := newMemory(map[uint32]byte{0xffffffff: 0x22, 0x0: 0x11})
	//
	assert.Equal(t, uint32(0x1122), mem.loadAt(0xffffffff, riscv.Half, 0))
}

func Test_Memory_Alignment(t *testing.T) {
	tests := []struct {
		addr     uint32
		width    riscv.Width
		expected bool
	}{
		{0, riscv.Word, true},
		{4, riscv.Word, true},
		{2, riscv.Word, false},
		{0xffffffff, riscv.Word, false},
		{0, riscv.Half, true},
		{2, riscv.Half, true},
		{1, riscv.Half, false},
		{1, riscv.Byte, true},
		{0xffffffff, riscv.Byte, true},
	}
	//
	for _, test := range tests {
		assert.Equal(t, test.expected, aligned(test.addr, test.width),
			"alignment of %d byte access at 0x%x", test.width, test.addr)
	}
}
