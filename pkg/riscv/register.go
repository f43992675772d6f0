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

import "fmt"

// Reg identifies one of the 32 general-purpose registers of the machine.
// Register x0 is hardwired to zero: reads always observe 0 and writes to it
// are silently discarded by the execution engine.
type Reg uint8

// NumRegs is the size of the general-purpose register file.
const NumRegs = 32

// Registers with a distinguished role in the calling or system-call
// conventions.  The remaining registers are only ever named through their
// index.
const (
	RegZero Reg = 0  // hardwired zero
	RegRA   Reg = 1  // link register written by jal / jalr
	RegSP   Reg = 2  // stack pointer
	RegA0   Reg = 10 // first argument and result of a system call
	RegA1   Reg = 11 // second argument of a system call
	RegA7   Reg = 17 // system-call number
)

// IsValid determines whether this register index falls within the register
// file.  Decoded instructions always carry valid indices since every field is
// five bits wide.
func (p Reg) IsValid() bool {
	return p < NumRegs
}

// String returns the conventional ABI name of this register (e.g. "zero",
// "ra", "a0").  Out-of-range indices are rendered in raw "x<n>" form.
func (p Reg) String() string {
	if p < NumRegs {
		return regNames[p]
	}
	//
	return fmt.Sprintf("x%d", p)
}
