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
	"strings"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	"github.com/stretchr/testify/assert"
)

func Test_Printer_RendersAllSteps(t *testing.T) {
	var out strings.Builder
	//
	NewPrinter().Render(&out, printerTrace())
	rendered := out.String()
	//
	assert.Contains(t, rendered, "clk")
	assert.Contains(t, rendered, "pc")
	// Values are rendered in hex.
	assert.Contains(t, rendered, "0x20")
	assert.Contains(t, rendered, "0xff")
}

func Test_Printer_Window(t *testing.T) {
	var out strings.Builder
	//
	NewPrinter().Start(1).End(1).Render(&out, printerTrace())
	rendered := out.String()
	//
	// Only step one remains: its pc value appears, its neighbours' do not.
	assert.Contains(t, rendered, "0x24")
	assert.NotContains(t, rendered, "0x20")
	assert.NotContains(t, rendered, "0x28")
}

func Test_Printer_WindowBeyondTrace(t *testing.T) {
	var out strings.Builder
	//
	NewPrinter().Start(100).Render(&out, printerTrace())
	//
	// Nothing to print except the header column.
	for _, line := range strings.Split(out.String(), "\n") {
		assert.LessOrEqual(t, strings.Count(line, "|"), 1)
	}
}

func Test_Printer_ColumnFilter(t *testing.T) {
	var out strings.Builder
	//
	NewPrinter().Columns(NonZeroColumns).Render(&out, printerTrace())
	rendered := out.String()
	//
	assert.Contains(t, rendered, "pc")
	assert.NotContains(t, rendered, "s_halt")
}

func Test_Printer_TruncatesWideCells(t *testing.T) {
	var out strings.Builder
	//
	NewPrinter().MaxCellWidth(6).Render(&out, printerTrace())
	//
	// The dst_value label exceeds the bound and is truncated with a marker.
	assert.Contains(t, out.String(), "dst_..")
}

// printerTrace is a tiny three-step trace with one all-zero column.
func printerTrace() *ArrayTrace {
	tr := EmptyArrayTrace()
	tr.AddColumn("clk", []fr.Element{fr.NewElement(0), fr.NewElement(1), fr.NewElement(2)})
	tr.AddColumn("pc", []fr.Element{fr.NewElement(0x20), fr.NewElement(0x24), fr.NewElement(0x28)})
	tr.AddColumn("dst_value", []fr.Element{fr.NewElement(0xff), fr.NewElement(0), fr.NewElement(0)})
	tr.AddColumn("s_halt", []fr.Element{fr.NewElement(0), fr.NewElement(0), fr.NewElement(0)})
	//
	return tr
}
