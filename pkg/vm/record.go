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
	"github.com/consensys/go-tracevm/pkg/riscv"
)

// Record is the complete execution record of one run: an ordered row per
// executed step, from the first instruction at the entry point through the
// halting step, plus the state the machine was left in.  Records are
// immutable once returned by Run.
type Record struct {
	rows  []Row
	final State
}

// Len returns the number of executed steps, which is also the clock of the
// final state.
func (p *Record) Len() int {
	return len(p.rows)
}

// Rows returns every recorded step in execution order.  The final row is the
// halting step.
func (p *Record) Rows() []Row {
	return p.rows
}

// LastState returns the machine state after the final step.
func (p *Record) LastState() *State {
	return &p.final
}

// StateBeforeFinal returns the state the halting step executed from.  Some
// consumers validate the instruction immediately before the halt, which this
// exposes without searching the rows.
func (p *Record) StateBeforeFinal() *State {
	return &p.rows[len(p.rows)-1].State
}

// ExitCode returns the exit code of a voluntarily halted run, that is the
// value of a0 when the halt call was made.  The second result is false when
// the run was instead terminated by a trap.
func (p *Record) ExitCode() (uint32, bool) {
	if _, trapped := p.Trapped(); trapped {
		return 0, false
	}
	//
	return p.StateBeforeFinal().Register(riscv.RegA0), true
}

// Trapped returns the trap which terminated the run, if the run did not halt
// voluntarily.
func (p *Record) Trapped() (Trap, bool) {
	final := p.rows[len(p.rows)-1].Aux
	//
	return final.Trap, final.Trap != TrapNone
}
