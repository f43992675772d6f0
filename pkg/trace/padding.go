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
package trace

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
)

// PadToPowerOfTwo extends every column to the next power of two by repeating
// its final value, except for the clock column which keeps counting upwards.
// A repeated halting row with a live clock is exactly the shape downstream
// transition constraints accept, since power-of-two heights are a requirement
// of their commitment schemes.
func PadToPowerOfTwo(p *ArrayTrace) {
	var (
		height = p.Height()
		target = nextPowerOfTwo(height)
		one    = fr.One()
	)
	//
	if height == 0 || target == height {
		return
	}
	//
	for _, column := range p.columns {
		last := column.data[len(column.data)-1]
		//
		for uint(len(column.data)) < target {
			if column.name == clkColumn {
				last.Add(&last, &one)
			}
			//
			column.data = append(column.data, last)
		}
	}
	//
	p.height = target
}

// nextPowerOfTwo rounds n up to the nearest power of two.
func nextPowerOfTwo(n uint) uint {
	next := uint(1)
	//
	for next < n {
		next <<= 1
	}
	//
	return next
}
