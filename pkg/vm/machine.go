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

// Package vm executes loaded programs instruction by instruction, recording
// for every step the machine state it started from together with the
// auxiliary facts needed to reconstruct its side effects.  The resulting
// execution record is the sole input of the downstream trace generation: it
// is exact, deterministic, and complete, so nothing ever needs to be
// re-executed or re-decoded.
package vm

import (
	log "github.com/sirupsen/logrus"

	"github.com/consensys/go-tracevm/pkg/riscv"
)

// Machine drives the execution of one program: it owns the mutable state of
// a run and advances it one instruction at a time.  A machine is a
// forward-only sequence of steps; callers wanting the whole run materialised
// use Run, whilst callers imposing their own limits simply stop calling
// Step.  Machines are single-threaded and not safe for concurrent use.
//
// Execution is deterministic: two machines built from the same program, the
// same initial registers and host channels supplying the same bytes produce
// records identical in every field, including clocks.
type Machine struct {
	// state is the machine state the next step executes from.
	state State
	// io is the host side channel consumed by read and write environment
	// calls, or nil when the host provides none.
	io HostIO
	// halted is set once a step has recorded its halting step.
	halted bool
}

// Option configures a machine at construction time.
type Option func(*Machine)

// WithHostIO supplies the host side channel backing the read and write
// environment calls.  Without one, any I/O call traps.
func WithHostIO(io HostIO) Option {
	return func(p *Machine) {
		p.io = io
	}
}

// WithRegister seeds an initial register value before execution begins.
// Seeding register zero has no effect.
func WithRegister(reg riscv.Reg, value uint32) Option {
	return func(p *Machine) {
		p.state.setRegister(reg, value)
	}
}

// NewMachine constructs a machine at the entry point of the given program,
// with all registers zero and the clock at its epoch.  The program's image
// is shared, never copied and never written: each machine layers its own
// writes over it, so any number of runs can be launched from one program.
func NewMachine(program riscv.Program, opts ...Option) *Machine {
	m := &Machine{
		state: State{pc: program.Entry, mem: newMemory(program.Image)},
	}
	//
	for _, opt := range opts {
		opt(m)
	}
	//
	return m
}

// State returns the current machine state, that is the state the next step
// would execute from.
func (p *Machine) State() *State {
	return &p.state
}

// Halted reports whether a halting step has been executed.  Once halted, a
// machine takes no further steps.
func (p *Machine) Halted() bool {
	return p.halted
}

// Run executes the machine until it halts, materialising the full execution
// record.  There is no step budget and no timeout: a guest program which
// never halts is a genuine non-termination, and bounding it is the caller's
// concern.  The record's final row is exactly the halting step, so consumers
// can always distinguish a voluntary halt from a trap.
func (p *Machine) Run() *Record {
	var rows []Row
	//
	for !p.halted {
		rows = append(rows, p.Step())
	}
	//
	record := &Record{rows: rows, final: p.state}
	//
	log.Debugf("run halted after %d steps at pc 0x%x", record.Len(), p.state.PC())
	//
	return record
}
