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
	"fmt"
	"io"
	"math"
	"os"

	"github.com/consensys/go-tracevm/pkg/util/termio"
)

// ColumnFilter is a predicate which determines whether a given column should
// be included in the print out, or not.
type ColumnFilter = func(*Column) bool

// Printer encapsulates various configuration options useful for printing out
// traces in human-readable forms.  It renders a window of steps as a
// fixed-width table with one table row per trace column and one table column
// per step, which suits traces that are far wider than they are tall.
type Printer struct {
	// First step to print
	startRow uint
	// Last step to print (inclusive)
	endRow uint
	// Which columns to include
	colFilter ColumnFilter
	// Maximum width to print for any cell
	maxCellWidth uint
}

// NewPrinter constructs a default printer: every column, every step,
// unbounded cell width.
func NewPrinter() *Printer {
	// Include all columns by default
	emptyFilter := func(*Column) bool {
		return true
	}
	//
	return &Printer{0, math.MaxUint, emptyFilter, math.MaxUint}
}

// Start configures the first step included by this printer.
func (p *Printer) Start(start uint) *Printer {
	p.startRow = start
	return p
}

// End configures the last step (inclusive) included by this printer.
func (p *Printer) End(end uint) *Printer {
	p.endRow = end
	return p
}

// Columns configures a filter which selects the columns to be included in
// the final print out.
func (p *Printer) Columns(filter ColumnFilter) *Printer {
	p.colFilter = filter
	return p
}

// MaxCellWidth sets the maximum width to use for the cell data.
func (p *Printer) MaxCellWidth(width uint) *Printer {
	p.maxCellWidth = width
	return p
}

// Render writes the configured window of the given trace to a writer.  This
// is the pure form: nothing is clamped to any terminal.
func (p *Printer) Render(w io.Writer, tr *ArrayTrace) {
	var (
		start, end = p.window(tr)
		columns    = p.selectColumns(tr)
	)
	//
	tp := termio.NewTablePrinter(1+end-start, uint(1+len(columns)))
	// Header row carries the step indices.
	for row := start; row < end; row++ {
		tp.Set(1+row-start, 0, fmt.Sprintf("%d", row))
	}
	// One table row per column.
	for i, column := range columns {
		tp.Set(0, uint(i+1), column.Name())
		//
		last := min(end, column.Height())
		for row := start; row < last; row++ {
			jth := column.Get(row)
			tp.Set(1+row-start, uint(i+1), fmt.Sprintf("0x%s", jth.Text(16)))
		}
	}
	//
	tp.SetMaxWidths(p.maxCellWidth)
	tp.Render(w)
}

// Print renders the configured window to standard output.  When standard
// output is a terminal, cell widths are clamped so a useful number of steps
// stays visible per line.
func (p *Printer) Print(tr *ArrayTrace) {
	if width, ok := termio.TerminalWidth(); ok {
		p.maxCellWidth = min(p.maxCellWidth, max(8, width/4))
	}
	//
	p.Render(os.Stdout, tr)
}

// window clamps the configured step range to the trace.
func (p *Printer) window(tr *ArrayTrace) (uint, uint) {
	var (
		height = tr.Height()
		start  = min(p.startRow, height)
		end    = height
	)
	// Guard the inclusive bound against overflow.
	if p.endRow < height {
		end = p.endRow + 1
	}
	//
	return start, max(start, end)
}

func (p *Printer) selectColumns(tr *ArrayTrace) []*Column {
	columns := make([]*Column, 0, tr.Width())
	//
	for _, column := range tr.Columns() {
		if p.colFilter(column) {
			columns = append(columns, column)
		}
	}
	//
	return columns
}

// NonZeroColumns is a column filter retaining only columns with at least one
// non-zero entry.  With one-hot selector families this cuts the print out to
// the columns a run actually touched.
func NonZeroColumns(column *Column) bool {
	for _, value := range column.Data() {
		if !value.IsZero() {
			return true
		}
	}
	//
	return false
}
