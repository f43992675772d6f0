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
	"fmt"
	"io"
)

// EcallNum identifies the service requested by an ecall instruction.  The
// guest places the call number in register a7; address and length arguments,
// where the call takes them, travel in a0 and a1.  These constants are the
// contract between the execution engine and the host: both sides must agree
// on them, so they are named here rather than written inline.
type EcallNum uint32

const (
	// EcallHalt terminates the run voluntarily.  Register a0 holds the exit
	// code.  The program counter is frozen on the halting step, so the final
	// recorded row repeats cleanly under trace padding.
	EcallHalt EcallNum = 0
	// EcallRead transfers a1 bytes from the host input channel into guest
	// memory at address a0.
	EcallRead EcallNum = 1
	// EcallWrite transfers a1 bytes of guest memory at address a0 to the
	// host output channel.
	EcallWrite EcallNum = 2
)

// String returns a short name for this call number.
func (p EcallNum) String() string {
	switch p {
	case EcallHalt:
		return "halt"
	case EcallRead:
		return "read"
	case EcallWrite:
		return "write"
	}
	//
	return fmt.Sprintf("ecall#%d", uint32(p))
}

// HostIO is the side channel backing the read and write environment calls.
// The engine only defines this contract; implementations belong to the host.
// Calls are synchronous and are never retried: any error, including a short
// read, becomes a fatal trap on the calling step.
type HostIO interface {
	// Read returns exactly n bytes of input, or an error if the channel
	// cannot supply them.
	Read(n uint32) ([]byte, error)
	// Write consumes the given output bytes, or returns an error if the
	// channel cannot accept them.
	Write(data []byte) error
}

// BufferIO is a HostIO over in-memory buffers: reads consume a fixed input
// slice from the front, and writes accumulate into an output slice.  Being
// deterministic and replayable, it is the channel of choice for tests and
// for feeding recorded inputs back through a run.
type BufferIO struct {
	input  []byte
	output []byte
}

// NewBufferIO constructs a BufferIO whose reads consume the given input.
// The input slice is not copied.
func NewBufferIO(input []byte) *BufferIO {
	return &BufferIO{input: input}
}

// Read implementation for the HostIO interface.
func (p *BufferIO) Read(n uint32) ([]byte, error) {
	if uint64(n) > uint64(len(p.input)) {
		return nil, fmt.Errorf("reading %d input bytes: %w", n, io.ErrUnexpectedEOF)
	}
	//
	data := p.input[:n]
	p.input = p.input[n:]
	//
	return data, nil
}

// Write implementation for the HostIO interface.
func (p *BufferIO) Write(data []byte) error {
	p.output = append(p.output, data...)
	return nil
}

// Output returns all bytes written by the guest so far.
func (p *BufferIO) Output() []byte {
	return p.output
}
