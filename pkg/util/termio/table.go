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
package termio

import (
	"fmt"
	"io"
	"os"
)

// TablePrinter renders small tables of text cells.  Each column is padded to
// the width of its widest cell; an upper bound can be imposed per column, in
// which case longer cells are truncated with a ".." marker.
type TablePrinter struct {
	widths []uint
	rows   [][]string
}

// NewTablePrinter constructs an empty table with the given dimensions.
func NewTablePrinter(width uint, height uint) *TablePrinter {
	rows := make([][]string, height)
	//
	for i := range rows {
		rows[i] = make([]string, width)
	}
	//
	return &TablePrinter{widths: make([]uint, width), rows: rows}
}

// Set the contents of a given cell in this table.
func (p *TablePrinter) Set(col uint, row uint, val string) {
	p.widths[col] = max(p.widths[col], uint(len(val)))
	p.rows[row][col] = val
}

// Get the contents of a given cell in this table.
func (p *TablePrinter) Get(col uint, row uint) string {
	return p.rows[row][col]
}

// Height returns the number of rows in this table.
func (p *TablePrinter) Height() uint {
	return uint(len(p.rows))
}

// SetRow sets the contents of an entire row in this table.
func (p *TablePrinter) SetRow(row uint, vals ...string) {
	if len(vals) != len(p.widths) {
		panic("incorrect number of columns")
	}
	//
	for i, val := range vals {
		p.widths[i] = max(p.widths[i], uint(len(val)))
	}
	//
	p.rows[row] = vals
}

// SetMaxWidth puts an upper bound on the width of one column.  Bounds below
// the width of the truncation marker are ignored.
func (p *TablePrinter) SetMaxWidth(col uint, width uint) {
	if width >= 4 {
		p.widths[col] = min(p.widths[col], width)
	}
}

// SetMaxWidths puts an upper bound on the width of every column.
func (p *TablePrinter) SetMaxWidths(width uint) {
	for i := range p.widths {
		p.SetMaxWidth(uint(i), width)
	}
}

// Render writes the table to the given writer.
func (p *TablePrinter) Render(w io.Writer) {
	for _, row := range p.rows {
		for j, cell := range row {
			width := p.widths[j]
			// Truncate cells which exceed their column bound.
			if uint(len(cell)) > width {
				fmt.Fprintf(w, " %*s..", width-2, cell[0:width-2])
			} else {
				fmt.Fprintf(w, " %*s", width, cell)
			}
			//
			fmt.Fprint(w, " |")
		}
		//
		fmt.Fprintln(w)
	}
}

// Print renders the table to standard output.
func (p *TablePrinter) Print() {
	p.Render(os.Stdout)
}
