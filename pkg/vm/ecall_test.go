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
	"errors"
	"io"
	"testing"

	"github.com/consensys/go-tracevm/pkg/riscv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A read call copies exactly a1 bytes from the host channel into guest
// memory at a0, recording the transfer in the step's auxiliary facts.
func Test_Ecall_ReadTransfersBytes(t *testing.T) {
	row, m := stepOne(t, riscv.Ecall{},
		WithHostIO(NewBufferIO([]byte{0xaa, 0xbb, 0xcc})),
		WithRegister(riscv.RegA7, uint32(EcallRead)),
		WithRegister(riscv.RegA0, 0x200),
		WithRegister(riscv.RegA1, 3))
	//
	assert.False(t, row.Aux.WillHalt)
	require.NotNil(t, row.Aux.IO)
	assert.Equal(t, EcallRead, row.Aux.IO.Call)
	assert.Equal(t, uint32(0x200), row.Aux.IO.Addr)
	assert.Equal(t, []byte{0xaa, 0xbb, 0xcc}, row.Aux.IO.Data)
	// The bytes land in memory, visible after the step but not before it.
	s := m.State()
	assert.Equal(t, byte(0xaa), s.Byte(0x200))
	assert.Equal(t, byte(0xbb), s.Byte(0x201))
	assert.Equal(t, byte(0xcc), s.Byte(0x202))
	assert.Equal(t, byte(0), row.State.Byte(0x200))
	// Execution continues sequentially.
	assert.Equal(t, uint32(4), s.PC())
}

// A write call copies a1 bytes of guest memory at a0 to the host channel.
func Test_Ecall_WriteTransfersBytes(t *testing.T) {
	program := riscv.ProgramFromInsns(0, riscv.Ecall{})
	program.Image[0x300] = 'h'
	program.Image[0x301] = 'i'
	//
	buffer := NewBufferIO(nil)
	m := NewMachine(program,
		WithHostIO(buffer),
		WithRegister(riscv.RegA7, uint32(EcallWrite)),
		WithRegister(riscv.RegA0, 0x300),
		WithRegister(riscv.RegA1, 2))
	//
	row := m.Step()
	//
	assert.False(t, row.Aux.WillHalt)
	assert.Equal(t, []byte("hi"), buffer.Output())
	require.NotNil(t, row.Aux.IO)
	assert.Equal(t, EcallWrite, row.Aux.IO.Call)
	assert.Equal(t, []byte("hi"), row.Aux.IO.Data)
}

// A halt call needs no host channel: it terminates the run voluntarily with
// the exit code in a0.
func Test_Ecall_HaltNeedsNoChannel(t *testing.T) {
	row, m := stepOne(t, riscv.Ecall{},
		WithRegister(riscv.RegA0, 42))
	//
	assert.True(t, row.Aux.WillHalt)
	assert.Equal(t, TrapNone, row.Aux.Trap)
	assert.Nil(t, row.Aux.IO)
	assert.True(t, m.Halted())
	assert.Equal(t, uint32(0), m.State().PC())
}

// Requesting more input than the channel holds is a fatal input trap, and no
// partial bytes reach guest memory.
func Test_Ecall_ShortReadTraps(t *testing.T) {
	row, m := stepOne(t, riscv.Ecall{},
		WithHostIO(NewBufferIO([]byte{0xaa, 0xbb})),
		WithRegister(riscv.RegA7, uint32(EcallRead)),
		WithRegister(riscv.RegA0, 0x200),
		WithRegister(riscv.RegA1, 4))
	//
	assert.True(t, row.Aux.WillHalt)
	assert.Equal(t, TrapIO, row.Aux.Trap)
	assert.Nil(t, row.Aux.IO)
	assert.Equal(t, byte(0), m.State().Byte(0x200))
	// Traps advance the program counter as usual.
	assert.Equal(t, uint32(4), m.State().PC())
}

// Input and output calls without a host channel trap.
func Test_Ecall_WithoutChannelTraps(t *testing.T) {
	for _, num := range []EcallNum{EcallRead, EcallWrite} {
		t.Run(num.String(), func(t *testing.T) {
			row, _ := stepOne(t, riscv.Ecall{},
				WithRegister(riscv.RegA7, uint32(num)),
				WithRegister(riscv.RegA1, 1))
			//
			assert.True(t, row.Aux.WillHalt)
			assert.Equal(t, TrapIO, row.Aux.Trap)
		})
	}
}

// Call numbers outside the supported set trap, whether or not a channel is
// attached.
func Test_Ecall_UnknownCallTraps(t *testing.T) {
	row, _ := stepOne(t, riscv.Ecall{},
		WithHostIO(NewBufferIO(nil)),
		WithRegister(riscv.RegA7, 57))
	//
	assert.True(t, row.Aux.WillHalt)
	assert.Equal(t, TrapIO, row.Aux.Trap)
}

// A failing host write is a fatal trap on the calling step.
func Test_Ecall_WriteErrorTraps(t *testing.T) {
	row, _ := stepOne(t, riscv.Ecall{},
		WithHostIO(brokenIO{}),
		WithRegister(riscv.RegA7, uint32(EcallWrite)),
		WithRegister(riscv.RegA1, 1))
	//
	assert.True(t, row.Aux.WillHalt)
	assert.Equal(t, TrapIO, row.Aux.Trap)
}

func Test_BufferIO(t *testing.T) {
	buffer := NewBufferIO([]byte{1, 2, 3})
	//
	data, err := buffer.Read(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, data)
	// The remaining input cannot satisfy a two byte read.
	_, err = buffer.Read(2)
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	//
	require.NoError(t, buffer.Write([]byte("out")))
	assert.Equal(t, []byte("out"), buffer.Output())
}

// ===================================================================
// Test Helpers
// ===================================================================

// brokenIO fails every transfer.
type brokenIO struct{}

func (p brokenIO) Read(n uint32) ([]byte, error) {
	return nil, errors.New("broken channel")
}

func (p brokenIO) Write(data []byte) error {
	return errors.New("broken channel")
}
